package puppet

import (
	"errors"
	"fmt"

	"github.com/akmonengine/puppet/live2d"
)

func (a *ModelAdjuster) SupportAnimationMode() bool { return true }
func (a *ModelAdjuster) SupportExpressionMode() bool { return true }
func (a *ModelAdjuster) HasMotions() bool { return true }

// main reports the main pose, false while no model is loaded
func (a *ModelAdjuster) main() (*Pose, bool) {
	if len(a.poses) == 0 {
		return nil, false
	}
	return a.poses[0], true
}

func (a *ModelAdjuster) CurMotionName() string {
	if main, ok := a.main(); ok {
		return main.curMotionName
	}
	return ""
}

func (a *ModelAdjuster) CurExpName() string {
	if main, ok := a.main(); ok {
		return main.curExpName
	}
	return ""
}

func (a *ModelAdjuster) ExpPairs() []live2d.ExpPair {
	if _, ok := a.main(); !ok {
		return nil
	}
	return a.mainModel().ExpPairs()
}

func (a *ModelAdjuster) MotionPairs() []live2d.MotionPair {
	if _, ok := a.main(); !ok {
		return nil
	}
	return a.mainModel().MotionPairs()
}

func (a *ModelAdjuster) DisplayMode() live2d.DisplayMode {
	if main, ok := a.main(); ok {
		return main.displayMode
	}
	return live2d.DisplayModeNormal
}

func (a *ModelAdjuster) PlayMotion(name string) {
	for _, pose := range a.poses {
		pose.curMotionName = name
		pose.model.PlayMotion(name)
	}
}

func (a *ModelAdjuster) PlayExp(name string) {
	for _, pose := range a.poses {
		pose.curExpName = name
		pose.model.PlayExp(name)
	}
}

func (a *ModelAdjuster) EmotionEditorList() []live2d.ParamInfo {
	if _, ok := a.main(); !ok {
		return nil
	}
	return a.mainModel().EmotionEditor().List()
}

func (a *ModelAdjuster) IsMotionParamSetContains(name string) bool {
	if _, ok := a.main(); !ok {
		return false
	}
	return a.mainModel().EmotionEditor().Contains(name)
}

func (a *ModelAdjuster) MotionParamValue(name string) float64 {
	if _, ok := a.main(); !ok {
		return 0
	}
	return a.mainModel().EmotionEditor().Value(name)
}

func (a *ModelAdjuster) AddMotionParamControl(name string) {
	for _, pose := range a.poses {
		pose.model.EmotionEditor().AddControl(name)
	}
}

func (a *ModelAdjuster) RemoveMotionParamControl(name string) {
	for _, pose := range a.poses {
		pose.model.EmotionEditor().RemoveControl(name)
	}
}

func (a *ModelAdjuster) SetMotionParamValue(name string, value float64) {
	for _, pose := range a.poses {
		pose.model.EmotionEditor().SetParam(name, value)
	}
}

func (a *ModelAdjuster) ApplyMotionParamValue() {
	for _, pose := range a.poses {
		pose.model.EmotionEditor().ApplyValue(pose.model)
	}
}

func (a *ModelAdjuster) CopyFromExp(exp live2d.Expression) {
	for _, pose := range a.poses {
		editor := pose.model.EmotionEditor()
		editor.CopyFromExp(exp)
		editor.ApplyValue(pose.model)
	}
}

// MotionEditorExp is the main model's emotion editor content as an expression
func (a *ModelAdjuster) MotionEditorExp() live2d.Expression {
	if _, ok := a.main(); !ok {
		return live2d.Expression{}
	}

	exp := a.mainModel().EmotionEditor().Snapshot()
	exp.Name = a.meta.Name
	return exp
}

// Sample writes a parameter straight into every model, bypassing the editor
func (a *ModelAdjuster) Sample(paramName string, value float64) {
	for _, pose := range a.poses {
		pose.model.SetParamFloat(paramName, value)
	}
}

// SetDisplayMode resets the emotion editor of every model. Back in normal
// mode the current motion and expression are replayed.
func (a *ModelAdjuster) SetDisplayMode(mode live2d.DisplayMode, force bool) {
	main, ok := a.main()
	if !ok || (!force && main.displayMode == mode) {
		return
	}

	curMotionName := main.curMotionName
	curExpName := main.curExpName

	for _, pose := range a.poses {
		pose.displayMode = mode
		editor := pose.model.EmotionEditor()

		switch mode {
		case live2d.DisplayModeNormal:
			editor.Reset()
			editor.ApplyValue(pose.model)
			if curMotionName != "" {
				pose.model.PlayMotion(curMotionName)
			}
			if curExpName != "" {
				pose.model.PlayExp(curExpName)
			}
		case live2d.DisplayModeEmotionEditor:
			editor.Reset()
			editor.ApplyValue(pose.model)
		}
	}

	a.events.emit(DisplayModeChangedEvent{Mode: mode})
	a.events.flush()
}

func (a *ModelAdjuster) MotionExpressionParamsText() string {
	if _, ok := a.main(); !ok {
		return ""
	}
	return a.mainModel().OutputText()
}

func (a *ModelAdjuster) ReloadTextures() error {
	var errs []error
	for _, pose := range a.poses {
		if err := pose.model.ReloadTextures(); err != nil {
			errs = append(errs, fmt.Errorf("model %d: %w", pose.index, err))
		}
	}

	return errors.Join(errs...)
}

package puppet

import (
	"errors"
	"testing"

	"github.com/akmonengine/puppet/config"
	"github.com/akmonengine/puppet/live2d"
	"github.com/akmonengine/puppet/live2d/headless"
)

var editorParams = []live2d.ParamInfo{
	{ID: "ParamAngleX", Min: -30, Max: 30},
	{ID: "ParamMouthOpenY", Min: 0, Max: 1},
}

func newAnimatedAdjuster(t *testing.T) (*ModelAdjuster, *headless.Loader) {
	t.Helper()

	loader := &headless.Loader{Params: editorParams}
	a := NewModelAdjuster(newTestNode(), newTestMeta(t, twoModels), loader, config.Default())
	a.CreateModel()
	a.Adjust()

	return a, loader
}

func TestPlayMotionAndExp_AllModels(t *testing.T) {
	a, loader := newAnimatedAdjuster(t)

	a.PlayMotion("idle")
	a.PlayExp("smile")

	for i, model := range loader.Models {
		if len(model.PlayedMotions) != 1 || model.PlayedMotions[0] != "idle" {
			t.Errorf("model %d motions = %v", i, model.PlayedMotions)
		}
		if len(model.PlayedExps) != 1 || model.PlayedExps[0] != "smile" {
			t.Errorf("model %d expressions = %v", i, model.PlayedExps)
		}
	}
	if a.CurMotionName() != "idle" || a.CurExpName() != "smile" {
		t.Errorf("current = (%q, %q), want (idle, smile)", a.CurMotionName(), a.CurExpName())
	}
	if got := a.MotionExpressionParamsText(); got != "motion:idle expression:smile" {
		t.Errorf("MotionExpressionParamsText() = %q", got)
	}
}

func TestReloadModels_ReplaysCurrentState(t *testing.T) {
	a, loader := newAnimatedAdjuster(t)
	a.PlayMotion("wave")
	a.PlayExp("angry")

	a.ReloadModels()

	if len(loader.Models) != 4 {
		t.Fatalf("loader created %d models, want 4", len(loader.Models))
	}
	for _, model := range loader.Models[2:] {
		if len(model.PlayedMotions) != 1 || model.PlayedMotions[0] != "wave" {
			t.Errorf("reloaded motions = %v, want [wave]", model.PlayedMotions)
		}
		if len(model.PlayedExps) != 1 || model.PlayedExps[0] != "angry" {
			t.Errorf("reloaded expressions = %v, want [angry]", model.PlayedExps)
		}
	}
	if a.CurMotionName() != "wave" {
		t.Errorf("CurMotionName() = %q, want wave", a.CurMotionName())
	}
}

func TestMotionParams(t *testing.T) {
	a, loader := newAnimatedAdjuster(t)

	a.AddMotionParamControl("ParamAngleX")
	a.SetMotionParamValue("ParamAngleX", 15)

	if !a.IsMotionParamSetContains("ParamAngleX") {
		t.Fatal("ParamAngleX is not controlled")
	}
	if got := a.MotionParamValue("ParamAngleX"); got != 15 {
		t.Errorf("MotionParamValue() = %v, want 15", got)
	}
	if loader.Models[1].Param("ParamAngleX") != 0 {
		t.Error("values reached the model before ApplyMotionParamValue")
	}

	a.ApplyMotionParamValue()
	for i, model := range loader.Models {
		if got := model.Param("ParamAngleX"); got != 15 {
			t.Errorf("model %d ParamAngleX = %v, want 15", i, got)
		}
	}

	exp := a.MotionEditorExp()
	if exp.Name != "anon" || len(exp.Params) != 1 || exp.Params[0].Value != 15 {
		t.Errorf("MotionEditorExp() = %+v", exp)
	}

	a.RemoveMotionParamControl("ParamAngleX")
	if a.IsMotionParamSetContains("ParamAngleX") {
		t.Error("ParamAngleX is still controlled")
	}
	if len(a.EmotionEditorList()) != len(editorParams) {
		t.Errorf("EmotionEditorList() has %d entries", len(a.EmotionEditorList()))
	}
}

func TestCopyFromExp_Applies(t *testing.T) {
	a, loader := newAnimatedAdjuster(t)

	a.CopyFromExp(live2d.Expression{Params: []live2d.ExpressionParam{{ID: "ParamMouthOpenY", Value: 0.8}}})

	for i, model := range loader.Models {
		if got := model.Param("ParamMouthOpenY"); got != 0.8 {
			t.Errorf("model %d ParamMouthOpenY = %v, want 0.8", i, got)
		}
	}
}

func TestSample_WritesEveryModel(t *testing.T) {
	a, loader := newAnimatedAdjuster(t)

	a.Sample("ParamAngleX", -12)

	for i, model := range loader.Models {
		if got := model.Param("ParamAngleX"); got != -12 {
			t.Errorf("model %d ParamAngleX = %v, want -12", i, got)
		}
	}
	if a.IsMotionParamSetContains("ParamAngleX") {
		t.Error("Sample must not touch the emotion editor")
	}
}

func TestSetDisplayMode(t *testing.T) {
	a, loader := newAnimatedAdjuster(t)
	a.PlayMotion("idle")
	a.PlayExp("smile")

	changes := 0
	a.Events().Subscribe(DISPLAY_MODE_CHANGED, func(Event) { changes++ })

	a.AddMotionParamControl("ParamAngleX")
	a.SetDisplayMode(live2d.DisplayModeEmotionEditor, false)

	if a.DisplayMode() != live2d.DisplayModeEmotionEditor {
		t.Fatalf("DisplayMode() = %v", a.DisplayMode())
	}
	if a.IsMotionParamSetContains("ParamAngleX") {
		t.Error("entering the emotion editor should reset it")
	}

	a.SetDisplayMode(live2d.DisplayModeEmotionEditor, false)
	if changes != 1 {
		t.Errorf("unforced same-mode call fired %d changes, want 1", changes)
	}

	a.SetDisplayMode(live2d.DisplayModeNormal, false)
	for i, model := range loader.Models {
		if n := len(model.PlayedMotions); n != 2 || model.PlayedMotions[n-1] != "idle" {
			t.Errorf("model %d motions = %v, want idle replayed", i, model.PlayedMotions)
		}
		if n := len(model.PlayedExps); n != 2 || model.PlayedExps[n-1] != "smile" {
			t.Errorf("model %d expressions = %v, want smile replayed", i, model.PlayedExps)
		}
	}

	a.SetDisplayMode(live2d.DisplayModeNormal, true)
	if changes != 3 {
		t.Errorf("forced call: %d changes, want 3", changes)
	}
}

type failingModel struct {
	*headless.Model
	err error
}

func (m failingModel) ReloadTextures() error { return m.err }

type failingLoader struct {
	err error
}

func (l failingLoader) LoadConfig(path string) (live2d.Model, error) {
	return failingModel{Model: headless.NewModel(path, nil), err: l.err}, nil
}

func TestReloadTextures(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a, loader := newAnimatedAdjuster(t)
		if err := a.ReloadTextures(); err != nil {
			t.Fatalf("ReloadTextures() error: %v", err)
		}
		for i, model := range loader.Models {
			if model.TextureReloads != 1 {
				t.Errorf("model %d reloaded %d times", i, model.TextureReloads)
			}
		}
	})

	t.Run("errors joined", func(t *testing.T) {
		boom := errors.New("boom")
		a := NewModelAdjuster(newTestNode(), newTestMeta(t, twoModels), failingLoader{err: boom}, config.Default())
		a.CreateModel()

		err := a.ReloadTextures()
		if !errors.Is(err, boom) {
			t.Errorf("ReloadTextures() = %v, want wrapped boom", err)
		}
	})
}

type brokenLoader struct{}

func (brokenLoader) LoadConfig(path string) (live2d.Model, error) {
	return nil, errors.New("corrupt model")
}

func TestCreateModel_LoadFailureSkips(t *testing.T) {
	a := NewModelAdjuster(newTestNode(), newTestMeta(t, twoModels), brokenLoader{}, config.Default())

	failed := 0
	a.Events().Subscribe(MODEL_LOAD_FAILED, func(Event) { failed++ })
	a.CreateModel()
	a.Adjust()

	if a.ModelCount() != 0 {
		t.Errorf("ModelCount() = %d, want 0", a.ModelCount())
	}
	if failed != 2 {
		t.Errorf("load failures = %d, want 2", failed)
	}
	if a.MainPos() != nil || a.CurMotionName() != "" || a.ExpPairs() != nil {
		t.Error("empty adjuster should report zero values")
	}

	// no models: mutations must not panic
	a.SetReverseXScale(true)
	a.SetCharacterWorldPosition(1, 2)
	a.AfterGroupTransform(10)
}

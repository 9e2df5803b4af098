// Package headless provides an in-memory avatar runtime. It keeps parameters
// in a map and records what was played; model files are never parsed.
package headless

import (
	"fmt"

	"github.com/akmonengine/puppet/live2d"
	"github.com/go-gl/mathgl/mgl64"
)

type Model struct {
	Path string

	params  map[string]float64
	editor  *Editor
	exps    []live2d.ExpPair
	motions []live2d.MotionPair

	// Played motions and expressions, in call order
	PlayedMotions []string
	PlayedExps    []string

	TextureReloads int
	LastTransform  mgl64.Mat4
	Renders        int
}

func NewModel(path string, list []live2d.ParamInfo) *Model {
	m := &Model{
		Path:   path,
		params: make(map[string]float64, len(list)),
		editor: NewEditor(list),
	}
	for _, info := range list {
		m.params[info.ID] = info.Default
	}

	return m
}

// SetPairs declares the expressions and motions the model advertises
func (m *Model) SetPairs(exps []live2d.ExpPair, motions []live2d.MotionPair) {
	m.exps = exps
	m.motions = motions
}

func (m *Model) SetParamFloat(name string, value float64) {
	m.params[name] = value
}

func (m *Model) Param(name string) float64 {
	return m.params[name]
}

func (m *Model) PlayMotion(name string) {
	m.PlayedMotions = append(m.PlayedMotions, name)
}

func (m *Model) PlayExp(name string) {
	m.PlayedExps = append(m.PlayedExps, name)
}

func (m *Model) EmotionEditor() live2d.EmotionEditor {
	return m.editor
}

func (m *Model) ExpPairs() []live2d.ExpPair {
	return m.exps
}

func (m *Model) MotionPairs() []live2d.MotionPair {
	return m.motions
}

func (m *Model) OutputText() string {
	return fmt.Sprintf("motion:%s expression:%s", last(m.PlayedMotions), last(m.PlayedExps))
}

func (m *Model) ReloadTextures() error {
	m.TextureReloads++
	return nil
}

func (m *Model) Render(transform mgl64.Mat4) {
	m.LastTransform = transform
	m.Renders++
}

func last(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1]
}

// Loader creates headless models sharing one parameter list
type Loader struct {
	Params []live2d.ParamInfo
	Models []*Model
}

func (l *Loader) LoadConfig(path string) (live2d.Model, error) {
	m := NewModel(path, l.Params)
	l.Models = append(l.Models, m)

	return m, nil
}

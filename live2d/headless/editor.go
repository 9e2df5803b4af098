package headless

import (
	"sort"

	"github.com/akmonengine/puppet/live2d"
)

// Editor is a map-backed live2d.EmotionEditor
type Editor struct {
	list     []live2d.ParamInfo
	defaults map[string]float64
	values   map[string]float64
}

func NewEditor(list []live2d.ParamInfo) *Editor {
	defaults := make(map[string]float64, len(list))
	for _, info := range list {
		defaults[info.ID] = info.Default
	}

	return &Editor{
		list:     list,
		defaults: defaults,
		values:   make(map[string]float64),
	}
}

func (e *Editor) List() []live2d.ParamInfo {
	return e.list
}

func (e *Editor) Contains(name string) bool {
	_, ok := e.values[name]
	return ok
}

func (e *Editor) Value(name string) float64 {
	return e.values[name]
}

// AddControl starts controlling name from its default value
func (e *Editor) AddControl(name string) {
	if e.Contains(name) {
		return
	}
	e.values[name] = e.defaults[name]
}

func (e *Editor) RemoveControl(name string) {
	delete(e.values, name)
}

// SetParam only affects controlled parameters
func (e *Editor) SetParam(name string, value float64) {
	if !e.Contains(name) {
		return
	}
	e.values[name] = value
}

func (e *Editor) ApplyValue(target live2d.ParamSetter) {
	for _, name := range e.names() {
		target.SetParamFloat(name, e.values[name])
	}
}

func (e *Editor) Reset() {
	clear(e.values)
}

func (e *Editor) CopyFromExp(exp live2d.Expression) {
	e.Reset()
	for _, p := range exp.Params {
		e.values[p.ID] = p.Value
	}
}

func (e *Editor) Snapshot() live2d.Expression {
	names := e.names()
	exp := live2d.Expression{Params: make([]live2d.ExpressionParam, 0, len(names))}
	for _, name := range names {
		exp.Params = append(exp.Params, live2d.ExpressionParam{ID: name, Value: e.values[name]})
	}

	return exp
}

func (e *Editor) names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

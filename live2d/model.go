// Package live2d is the boundary between the adjuster and an avatar runtime.
// The runtime owns model files, textures and the parameter database; the
// adjuster only dispatches by name and never inspects parameter internals.
package live2d

import "github.com/go-gl/mathgl/mgl64"

// DisplayMode selects who drives the model parameters
type DisplayMode int

const (
	// DisplayModeNormal plays motions and expressions
	DisplayModeNormal DisplayMode = iota
	// DisplayModeEmotionEditor hands the parameters to the emotion editor
	DisplayModeEmotionEditor
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayModeNormal:
		return "normal"
	case DisplayModeEmotionEditor:
		return "emotion-editor"
	default:
		return "unknown"
	}
}

type ExpPair struct {
	Name string
	File string
}

type MotionPair struct {
	Name string
	File string
}

// ParamInfo describes one model parameter the emotion editor may control
type ParamInfo struct {
	ID      string
	Min     float64
	Max     float64
	Default float64
}

type ExpressionParam struct {
	ID    string
	Value float64
	Blend string
}

// Expression is a set of parameter values, as stored in an expression file
type Expression struct {
	Name   string
	Params []ExpressionParam
}

// ParamSetter writes a single model parameter
type ParamSetter interface {
	SetParamFloat(name string, value float64)
}

// EmotionEditor is the runtime's parameter store used while editing
// expressions. Values are only pushed to a model by ApplyValue.
type EmotionEditor interface {
	List() []ParamInfo
	Contains(name string) bool
	Value(name string) float64
	AddControl(name string)
	RemoveControl(name string)
	SetParam(name string, value float64)
	ApplyValue(target ParamSetter)
	Reset()
	CopyFromExp(exp Expression)
	Snapshot() Expression
}

// Model is one loaded sub-model
type Model interface {
	ParamSetter

	PlayMotion(name string)
	PlayExp(name string)
	EmotionEditor() EmotionEditor
	ExpPairs() []ExpPair
	MotionPairs() []MotionPair
	// OutputText is the motion/expression parameter listing shown to the user
	OutputText() string
	ReloadTextures() error
	// Render draws the model with the given local-to-world matrix
	Render(transform mgl64.Mat4)
}

// Loader creates a model from a model config path
type Loader interface {
	LoadConfig(path string) (Model, error)
}

// Package puppet places Live2D avatars on a visual-novel stage.
//
// An avatar is a host node carrying a root node (the script anchor) and a
// pivot node (scale, rotation and mirroring). Sub-models hang below the pivot;
// the first one is the main sub-model and every world-space conversion is
// anchored on it.
package puppet

import (
	"github.com/akmonengine/puppet/config"
	"github.com/akmonengine/puppet/live2d"
	"github.com/akmonengine/puppet/meta"
	"github.com/akmonengine/puppet/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Placement is the transform side of an avatar
type Placement interface {
	InitTransform(position mgl64.Vec3, scale, rotation float64, reverseXScale bool)
	CreateModel()
	Adjust()
	ReloadModels()
	ReloadTextures() error

	SetPosition(x, y float64)
	SetScale(scale float64)
	SetRotation(rotation float64)
	SetReverseXScale(reverse bool)
	SetCharacterWorldPosition(worldX, worldY float64)
	CharacterSpecWorldPosition(modelIndex int) mgl64.Vec3
	WebGalRotation() float64
	CopyRotationFromRoot()
	CopyScaleFromRoot()

	BeforeGroupTransform(parent *scene.Node)
	AfterGroupTransform(rotationDelta float64)

	RootPosition() mgl64.Vec3
	RootScale() mgl64.Vec3
	RootRotation() float64
	RootScaleValue() float64
	ReverseXScale() bool
	MainPos() *scene.Node
	ModelCount() int
	ZValue() float64
	SetZValue(z float64)
}

// Animator is the motion, expression and emotion-editor side of an avatar
type Animator interface {
	SupportAnimationMode() bool
	SupportExpressionMode() bool
	HasMotions() bool

	PlayMotion(name string)
	PlayExp(name string)
	CurMotionName() string
	CurExpName() string
	ExpPairs() []live2d.ExpPair
	MotionPairs() []live2d.MotionPair

	DisplayMode() live2d.DisplayMode
	SetDisplayMode(mode live2d.DisplayMode, force bool)

	EmotionEditorList() []live2d.ParamInfo
	IsMotionParamSetContains(name string) bool
	MotionParamValue(name string) float64
	AddMotionParamControl(name string)
	RemoveMotionParamControl(name string)
	SetMotionParamValue(name string, value float64)
	ApplyMotionParamValue()
	CopyFromExp(exp live2d.Expression)
	MotionEditorExp() live2d.Expression
	Sample(paramName string, value float64)
	MotionExpressionParamsText() string
	DoRender()
}

// Adjuster is everything the host can ask of an avatar
type Adjuster interface {
	Placement
	Animator

	Name() string
	TransformTemplate() string
	MotionTemplate() string

	SetFilterValue(name string, value float64)
	FilterValue(name string) float64
	Events() *Events
}

var (
	_ Adjuster = (*Base)(nil)
	_ Adjuster = (*ModelAdjuster)(nil)
)

// New picks the implementation: without metadata there is nothing to load and
// the avatar only carries the shared defaults.
func New(node *scene.Node, m *meta.Meta, loader live2d.Loader, opts config.Options) Adjuster {
	if m == nil || loader == nil {
		return NewBase(node)
	}

	return NewModelAdjuster(node, m, loader, opts)
}

// state is owned by every implementation
type state struct {
	node          *scene.Node
	zValue        float64
	reverseXScale bool
	filterValues  map[string]float64
	events        Events
}

func newState(node *scene.Node) state {
	return state{
		node:         node,
		filterValues: make(map[string]float64),
		events:       NewEvents(),
	}
}

func (s *state) ZValue() float64 {
	return s.zValue
}

// SetZValue moves the avatar node along the world Z axis
func (s *state) SetZValue(z float64) {
	s.zValue = z
	pos := s.node.Position()
	pos[2] = z
	s.node.SetPosition(pos)
}

func (s *state) ReverseXScale() bool {
	return s.reverseXScale
}

func (s *state) SetFilterValue(name string, value float64) {
	s.filterValues[name] = value
	s.events.emit(FilterChangedEvent{Name: name, Value: value})
	s.events.flush()
}

func (s *state) FilterValue(name string) float64 {
	return s.filterValues[name]
}

func (s *state) Events() *Events {
	return &s.events
}

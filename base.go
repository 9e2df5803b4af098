package puppet

import (
	"github.com/akmonengine/puppet/live2d"
	"github.com/akmonengine/puppet/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Base is an avatar without models. It supports no animation and treats every
// mutation as a no-op, but still tracks depth, mirroring and filters.
type Base struct {
	state
}

func NewBase(node *scene.Node) *Base {
	return &Base{state: newState(node)}
}

func (b *Base) Name() string { return "" }
func (b *Base) TransformTemplate() string { return "" }
func (b *Base) MotionTemplate() string { return "" }

func (b *Base) SupportAnimationMode() bool { return false }
func (b *Base) SupportExpressionMode() bool { return false }
func (b *Base) HasMotions() bool { return false }

func (b *Base) InitTransform(position mgl64.Vec3, scale, rotation float64, reverseXScale bool) {}
func (b *Base) CreateModel() {}
func (b *Base) Adjust() {}
func (b *Base) ReloadModels() {}
func (b *Base) ReloadTextures() error { return nil }

func (b *Base) SetPosition(x, y float64) {}
func (b *Base) SetScale(scale float64) {}
func (b *Base) SetRotation(rotation float64) {}
func (b *Base) SetReverseXScale(reverse bool) {}
func (b *Base) SetCharacterWorldPosition(worldX, worldY float64) {}
func (b *Base) CharacterSpecWorldPosition(int) mgl64.Vec3 { return mgl64.Vec3{} }
func (b *Base) WebGalRotation() float64 { return 0 }
func (b *Base) CopyRotationFromRoot() {}
func (b *Base) CopyScaleFromRoot() {}

func (b *Base) BeforeGroupTransform(parent *scene.Node) {}
func (b *Base) AfterGroupTransform(rotationDelta float64) {}

func (b *Base) RootPosition() mgl64.Vec3 { return mgl64.Vec3{} }
func (b *Base) RootScale() mgl64.Vec3 { return mgl64.Vec3{} }
func (b *Base) RootRotation() float64 { return 0 }
func (b *Base) RootScaleValue() float64 { return 0 }
func (b *Base) MainPos() *scene.Node { return nil }
func (b *Base) ModelCount() int { return 1 }

func (b *Base) PlayMotion(name string) {}
func (b *Base) PlayExp(name string) {}
func (b *Base) CurMotionName() string { return "" }
func (b *Base) CurExpName() string { return "" }
func (b *Base) ExpPairs() []live2d.ExpPair { return nil }
func (b *Base) MotionPairs() []live2d.MotionPair { return nil }
func (b *Base) DisplayMode() live2d.DisplayMode { return live2d.DisplayModeNormal }
func (b *Base) SetDisplayMode(live2d.DisplayMode, bool) {}

func (b *Base) EmotionEditorList() []live2d.ParamInfo { return nil }
func (b *Base) IsMotionParamSetContains(name string) bool { return false }
func (b *Base) MotionParamValue(name string) float64 { return 0 }
func (b *Base) AddMotionParamControl(name string) {}
func (b *Base) RemoveMotionParamControl(name string) {}
func (b *Base) SetMotionParamValue(name string, value float64) {}
func (b *Base) ApplyMotionParamValue() {}
func (b *Base) CopyFromExp(exp live2d.Expression) {}
func (b *Base) MotionEditorExp() live2d.Expression { return live2d.Expression{} }
func (b *Base) Sample(paramName string, value float64) {}
func (b *Base) MotionExpressionParamsText() string { return "" }
func (b *Base) DoRender() {}

package puppet

import (
	"log"
	"math"
	"os"

	"github.com/akmonengine/puppet/config"
	"github.com/akmonengine/puppet/live2d"
	"github.com/akmonengine/puppet/meta"
	"github.com/akmonengine/puppet/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// model units per canvas pixel
const unitScale = 0.01

// ModelAdjuster is an avatar built from the model files declared in its meta.
//
// Hierarchy: node -> root -> pivot -> poses. The host moves root; scale,
// rotation and mirroring live on pivot. Pivot local scale is always
// (mirror ? -scale : scale, scale, 1) and its local rotation is the avatar
// rotation around Z.
type ModelAdjuster struct {
	state

	meta   *meta.Meta
	loader live2d.Loader
	opts   config.Options

	root  *scene.Node
	pivot *scene.Node
	poses []*Pose

	rootScale    float64
	rootRotation float64
}

// NewModelAdjuster builds the root and pivot nodes under node. Poses are created by CreateModel.
func NewModelAdjuster(node *scene.Node, m *meta.Meta, loader live2d.Loader, opts config.Options) *ModelAdjuster {
	a := &ModelAdjuster{
		state:     newState(node),
		meta:      m,
		loader:    loader,
		opts:      opts,
		root:      scene.New("root"),
		pivot:     scene.New("pivot"),
		rootScale: 1,
	}
	node.AddChild(a.root)
	a.root.AddChild(a.pivot)

	return a
}

func (a *ModelAdjuster) Name() string { return a.meta.Name }
func (a *ModelAdjuster) MotionTemplate() string { return a.meta.FormatText }
func (a *ModelAdjuster) TransformTemplate() string { return a.meta.TransformFormatText }

func (a *ModelAdjuster) Root() *scene.Node { return a.root }
func (a *ModelAdjuster) Pivot() *scene.Node { return a.pivot }
func (a *ModelAdjuster) Poses() []*Pose { return a.poses }

func (a *ModelAdjuster) Options() config.Options { return a.opts }

func (a *ModelAdjuster) RootPosition() mgl64.Vec3 { return a.root.LocalPosition() }
func (a *ModelAdjuster) RootScale() mgl64.Vec3 { return a.pivot.LocalScale() }
func (a *ModelAdjuster) RootRotation() float64 { return a.rootRotation }
func (a *ModelAdjuster) RootScaleValue() float64 { return a.rootScale }
func (a *ModelAdjuster) ModelCount() int { return len(a.poses) }

// MainPos is the main sub-model node, nil before CreateModel found any model
func (a *ModelAdjuster) MainPos() *scene.Node {
	if len(a.poses) == 0 {
		return nil
	}
	return a.poses[0].node
}

func (a *ModelAdjuster) mainModel() live2d.Model {
	return a.poses[0].model
}

func (a *ModelAdjuster) InitTransform(position mgl64.Vec3, scale, rotation float64, reverseXScale bool) {
	a.reverseXScale = reverseXScale
	a.SetScale(scale)
	a.SetRotation(rotation)
	a.SetPosition(position.X(), position.Y())
}

// CreateModel replaces the poses with one per declared model file. Files that
// do not exist or fail to load are logged and skipped; the others keep their
// declared order.
func (a *ModelAdjuster) CreateModel() {
	for _, pose := range a.poses {
		pose.destroy()
	}
	a.poses = a.poses[:0]

	for i := 0; i < a.meta.ModelCount(); i++ {
		if pose := a.createPose(i, a.meta.ModelFilePath(i)); pose != nil {
			a.poses = append(a.poses, pose)
		}
	}

	a.events.emit(ModelsCreatedEvent{Count: len(a.poses)})
	a.events.flush()
}

func (a *ModelAdjuster) createPose(index int, path string) *Pose {
	if _, err := os.Stat(path); err != nil {
		log.Printf("[ModelAdjuster] Warning: model file does not exist: %q", path)
		a.events.emit(ModelMissingEvent{Index: index, Path: path})
		return nil
	}

	model, err := a.loader.LoadConfig(path)
	if err != nil {
		log.Printf("[ModelAdjuster] Warning: failed to load model %s: %v", path, err)
		a.events.emit(ModelLoadFailedEvent{Index: index, Path: path, Err: err})
		return nil
	}

	pose := newPose(index, model)
	pose.node.SetParent(a.pivot, false)
	return pose
}

// Adjust lays the poses out from the meta offsets and calibrates the avatar
// node against the canvas.
func (a *ModelAdjuster) Adjust() {
	if !a.opts.UsePivotOffset || len(a.poses) == 0 {
		a.pivot.SetLocalPosition(mgl64.Vec3{})
	}

	// meta offsets point down, the scene points up. Offsets follow the loaded
	// poses, so a skipped file shifts the later ones down by one.
	for i, pose := range a.poses {
		offsetX, offsetY := a.meta.ModelOffset(i)
		pose.Adjust(offsetX, -offsetY)
	}

	if a.opts.UsePivotOffset && len(a.poses) > 0 {
		mainPos := a.poses[0].node.LocalPosition()
		for _, pose := range a.poses {
			pose.node.SetLocalPosition(pose.node.LocalPosition().Sub(mainPos))
		}
		a.pivot.SetLocalPosition(mainPos)
	}

	a.node.SetLocalScale(mgl64.Vec3{unitScale, unitScale, unitScale})
	a.node.SetPosition(mgl64.Vec3{
		a.opts.CanvasWidth * unitScale * 0.5 * -1,
		a.opts.CanvasHeight * unitScale * 0.5 * 1,
		a.zValue,
	})
}

// SetUsePivotOffset switches the anchoring strategy without moving the avatar
// on screen. Only later scale and rotation changes turn around a different point.
func (a *ModelAdjuster) SetUsePivotOffset(use bool) {
	if a.opts.UsePivotOffset == use {
		return
	}

	main := a.MainPos()
	if main == nil {
		a.opts.UsePivotOffset = use
		a.Adjust()
		return
	}

	old := main.Position()
	a.opts.UsePivotOffset = use
	a.Adjust()
	a.SetCharacterWorldPosition(old.X(), old.Y())
}

func (a *ModelAdjuster) ReloadModels() {
	expName := a.CurExpName()
	motionName := a.CurMotionName()

	a.CreateModel()
	a.Adjust()
	a.PlayExp(expName)
	a.PlayMotion(motionName)
}

// SetPosition is the raw path: root goes to (x, y) in the avatar node space
func (a *ModelAdjuster) SetPosition(x, y float64) {
	a.root.SetLocalPosition(mgl64.Vec3{x, y, 0})
}

// SetScale does not keep the main sub-model in place; callers reposition
// afterwards when they need to.
func (a *ModelAdjuster) SetScale(scale float64) {
	a.rootScale = scale
	a.applyPivotScale()
}

func (a *ModelAdjuster) applyPivotScale() {
	scaleX := a.rootScale
	if a.reverseXScale {
		scaleX = -a.rootScale
	}
	a.pivot.SetLocalScale(mgl64.Vec3{scaleX, a.rootScale, 1})
}

// SetReverseXScale mirrors the avatar horizontally, keeping the main
// sub-model where it is on screen.
func (a *ModelAdjuster) SetReverseXScale(reverse bool) {
	if a.reverseXScale == reverse {
		return
	}

	main := a.MainPos()
	if main == nil {
		a.reverseXScale = reverse
		a.applyPivotScale()
		return
	}

	old := main.Position()
	a.reverseXScale = reverse
	a.applyPivotScale()
	a.SetCharacterWorldPosition(old.X(), old.Y())
}

func (a *ModelAdjuster) SetRotation(rotation float64) {
	a.rootRotation = rotation
	a.pivot.SetLocalEulerZ(rotation)
}

// characterWorldPosition is the root world position that puts child at (worldX, worldY)
func (a *ModelAdjuster) characterWorldPosition(worldX, worldY float64, child *scene.Node) mgl64.Vec3 {
	rootPos := a.root.Position()
	offset := child.Position().Sub(rootPos)

	return mgl64.Vec3{worldX - offset.X(), worldY - offset.Y(), rootPos.Z()}
}

// SetCharacterWorldPosition moves root so the main sub-model lands on (worldX, worldY)
func (a *ModelAdjuster) SetCharacterWorldPosition(worldX, worldY float64) {
	main := a.MainPos()
	if main == nil {
		return
	}

	a.root.SetPosition(a.characterWorldPosition(worldX, worldY, main))
}

// CharacterSpecWorldPosition resolves the root position, in root's parent
// space, that brings the main sub-model onto the current screen position of
// sub-model modelIndex.
func (a *ModelAdjuster) CharacterSpecWorldPosition(modelIndex int) mgl64.Vec3 {
	worldPos := a.poses[modelIndex].node.Position()
	target := a.characterWorldPosition(worldPos.X(), worldPos.Y(), a.MainPos())

	parent := a.root.Parent()
	if parent == nil {
		return target
	}
	return parent.InverseTransformPoint(target)
}

// WebGalRotation is the rotation in radians for WebGAL, whose Y axis points down
func (a *ModelAdjuster) WebGalRotation() float64 {
	return -a.rootRotation * math.Pi / 180
}

func (a *ModelAdjuster) CopyRotationFromRoot() {
	a.rootRotation = a.pivot.LocalEulerZ()
}

// CopyScaleFromRoot folds the root scale into the pivot and reads the scale
// back from Y, the axis mirroring never touches.
func (a *ModelAdjuster) CopyScaleFromRoot() {
	pivotScale := a.pivot.LocalScale()
	rootScale := a.root.LocalScale()
	a.pivot.SetLocalScale(mgl64.Vec3{
		pivotScale.X() * rootScale.X(),
		pivotScale.Y() * rootScale.Y(),
		pivotScale.Z() * rootScale.Z(),
	})
	a.root.SetLocalScale(mgl64.Vec3{1, 1, 1})
	a.rootScale = a.pivot.LocalScale().Y()
}

// BeforeGroupTransform hangs root under a shared group pivot, keeping its world transform
func (a *ModelAdjuster) BeforeGroupTransform(parent *scene.Node) {
	a.root.SetParent(parent, true)
}

// AfterGroupTransform brings root back under the avatar node and folds what
// the group did to it into the avatar rotation and scale.
func (a *ModelAdjuster) AfterGroupTransform(rotationDelta float64) {
	main := a.MainPos()
	var old mgl64.Vec3
	if main != nil {
		old = main.Position()
	}

	a.root.SetParent(a.node, true)
	a.root.SetRotation(mgl64.QuatIdent())
	a.SetRotation(a.rootRotation + rotationDelta)
	a.CopyScaleFromRoot()
	a.SetCharacterWorldPosition(old.X(), old.Y())
}

func (a *ModelAdjuster) DoRender() {
	for _, pose := range a.poses {
		pose.render()
	}
}

package puppet

import (
	"testing"

	"github.com/akmonengine/puppet/config"
	"github.com/akmonengine/puppet/meta"
	"github.com/akmonengine/puppet/scene"
	"github.com/go-gl/mathgl/mgl64"
)

func poseWorldPositions(a *ModelAdjuster) []mgl64.Vec3 {
	positions := make([]mgl64.Vec3, 0, len(a.Poses()))
	for _, pose := range a.Poses() {
		positions = append(positions, pose.Node().Position())
	}
	return positions
}

func TestGroup_AddRemove(t *testing.T) {
	g := NewGroup(nil)
	a := NewBase(scene.New("a"))
	b := NewBase(scene.New("b"))

	g.Add(a)
	g.Add(b)
	g.Remove(a)

	if len(g.Members) != 1 || g.Members[0] != b {
		t.Errorf("Members = %v, want [b]", g.Members)
	}

	g.Remove(a)
	if len(g.Members) != 1 {
		t.Error("removing an absent member changed the group")
	}
}

func TestGroup_UntouchedRoundTrip(t *testing.T) {
	a, _ := newTestAdjuster(t, config.Default(), twoModels)
	a.InitTransform(mgl64.Vec3{120, 30, 0}, 1.1, 12, false)
	before := poseWorldPositions(a)

	g := NewGroup(nil)
	g.Add(a)
	g.Begin(mgl64.Vec2{2, -1})
	if !g.Active() {
		t.Fatal("group is not active after Begin")
	}
	g.End()

	for i, got := range poseWorldPositions(a) {
		if !vec3AlmostEqual(got, before[i], 1e-9) {
			t.Errorf("pose %d moved to %v, want %v", i, got, before[i])
		}
	}
	if !almostEqual(a.RootRotation(), 12, 1e-9) {
		t.Errorf("RootRotation() = %v, want 12", a.RootRotation())
	}
}

func TestGroup_RotateScaleFoldsIntoMembers(t *testing.T) {
	first, _ := newTestAdjuster(t, config.Default(), twoModels)
	first.InitTransform(mgl64.Vec3{-300, 0, 0}, 1, 0, false)

	second, _ := newTestAdjuster(t, config.Default(), []meta.Offset{{X: -15, Y: 40}, {X: 5, Y: 5}, {X: 0, Y: 60}})
	second.InitTransform(mgl64.Vec3{300, 100, 0}, 0.8, 10, true)

	g := NewGroup(nil)
	g.Add(first)
	g.Add(second)
	g.Add(NewBase(scene.New("empty")))

	g.Begin(mgl64.Vec2{0, 0})
	g.Rotate(30)
	g.Scale(2)

	duringFirst := poseWorldPositions(first)
	duringSecond := poseWorldPositions(second)

	g.End()

	for i, got := range poseWorldPositions(first) {
		if !vec3AlmostEqual(got, duringFirst[i], 1e-9) {
			t.Errorf("first pose %d = %v, want %v", i, got, duringFirst[i])
		}
	}
	for i, got := range poseWorldPositions(second) {
		if !vec3AlmostEqual(got, duringSecond[i], 1e-9) {
			t.Errorf("second pose %d = %v, want %v", i, got, duringSecond[i])
		}
	}

	if !almostEqual(first.RootRotation(), 30, 1e-9) || !almostEqual(second.RootRotation(), 40, 1e-9) {
		t.Errorf("rotations = (%v, %v), want (30, 40)", first.RootRotation(), second.RootRotation())
	}
	if !almostEqual(first.RootScaleValue(), 2, 1e-9) || !almostEqual(second.RootScaleValue(), 1.6, 1e-9) {
		t.Errorf("scales = (%v, %v), want (2, 1.6)", first.RootScaleValue(), second.RootScaleValue())
	}
	if !second.ReverseXScale() || second.Pivot().LocalScale().X() >= 0 {
		t.Error("mirroring was lost in the group transform")
	}
	if g.Active() {
		t.Error("group still active after End")
	}
	if g.Pivot().LocalEulerZ() != 0 {
		t.Errorf("group pivot not reset: %v", g.Pivot().LocalEulerZ())
	}
}

func TestGroup_EndWithoutBegin(t *testing.T) {
	a, _ := newTestAdjuster(t, config.Default(), twoModels)
	g := NewGroup(nil)
	g.Add(a)
	before := a.RootPosition()

	g.End()

	if a.RootPosition() != before {
		t.Error("End without Begin moved a member")
	}
}

func TestGroup_RemoveWhileActive(t *testing.T) {
	a, _ := newTestAdjuster(t, config.Default(), twoModels)
	a.InitTransform(mgl64.Vec3{-200, 0, 0}, 1, 0, false)

	g := NewGroup(nil)
	g.Add(a)
	g.Begin(mgl64.Vec2{0, 0})
	g.Rotate(30)
	during := poseWorldPositions(a)

	g.Remove(a)

	if a.Root().Parent() == g.Pivot() {
		t.Fatal("removed member still hangs under the group pivot")
	}
	if !almostEqual(a.RootRotation(), 30, 1e-9) {
		t.Errorf("RootRotation() = %v, want 30", a.RootRotation())
	}
	for i, got := range poseWorldPositions(a) {
		if !vec3AlmostEqual(got, during[i], 1e-9) {
			t.Errorf("pose %d = %v, want %v", i, got, during[i])
		}
	}

	g.Rotate(20)
	g.End()

	if !almostEqual(a.RootRotation(), 30, 1e-9) {
		t.Errorf("RootRotation() after End = %v, want 30", a.RootRotation())
	}
	for i, got := range poseWorldPositions(a) {
		if !vec3AlmostEqual(got, during[i], 1e-9) {
			t.Errorf("pose %d moved after removal: %v, want %v", i, got, during[i])
		}
	}
}

func TestGroup_AddWhileActive(t *testing.T) {
	first, _ := newTestAdjuster(t, config.Default(), twoModels)
	first.InitTransform(mgl64.Vec3{-200, 0, 0}, 1, 0, false)
	late, _ := newTestAdjuster(t, config.Default(), twoModels)
	late.InitTransform(mgl64.Vec3{200, 50, 0}, 1, 0, false)
	before := poseWorldPositions(late)

	g := NewGroup(nil)
	g.Add(first)
	g.Begin(mgl64.Vec2{0, 0})
	g.Rotate(30)

	g.Add(late)
	if late.Root().Parent() != g.Pivot() {
		t.Fatal("late member was not attached to the group pivot")
	}
	for i, got := range poseWorldPositions(late) {
		if !vec3AlmostEqual(got, before[i], 1e-9) {
			t.Errorf("joining moved pose %d to %v, want %v", i, got, before[i])
		}
	}

	g.Rotate(10)
	during := poseWorldPositions(late)
	g.End()

	if !almostEqual(first.RootRotation(), 40, 1e-9) {
		t.Errorf("first rotation = %v, want 40", first.RootRotation())
	}
	if !almostEqual(late.RootRotation(), 10, 1e-9) {
		t.Errorf("late rotation = %v, want 10", late.RootRotation())
	}
	for i, got := range poseWorldPositions(late) {
		if !vec3AlmostEqual(got, during[i], 1e-9) {
			t.Errorf("late pose %d = %v, want %v", i, got, during[i])
		}
	}
}

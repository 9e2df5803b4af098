package puppet

import (
	"github.com/akmonengine/puppet/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Group moves several avatars together. Between Begin and End every member's
// root hangs under the group pivot, so rotating or scaling the pivot affects
// all members around one shared point.
type Group struct {
	// Members of the group, in insertion order
	Members []Placement

	pivot    *scene.Node
	rotation float64
	scale    float64
	active   bool

	// group rotation when each member joined the active group
	baselines map[Placement]float64
}

// NewGroup creates a group whose pivot lives under stage (nil for world space)
func NewGroup(stage *scene.Node) *Group {
	pivot := scene.New("group-pivot")
	if stage != nil {
		stage.AddChild(pivot)
	}

	return &Group{pivot: pivot, scale: 1, baselines: make(map[Placement]float64)}
}

// Add adds a member to the group. While the group is active the member is
// attached to the pivot at once and only later rotation applies to it.
func (g *Group) Add(member Placement) {
	g.Members = append(g.Members, member)
	if g.active {
		g.attach(member)
	}
}

// Remove removes a member from the group. While the group is active the
// member is handed back its root with what the group did to it so far.
func (g *Group) Remove(member Placement) {
	k := -1
	for i, m := range g.Members {
		if m == member {
			k = i
			break
		}
	}

	if k == -1 {
		return
	}

	if g.active {
		g.detach(member)
	}
	g.Members = append(g.Members[:k], g.Members[k+1:]...)
}

func (g *Group) attach(member Placement) {
	if g.baselines == nil {
		g.baselines = make(map[Placement]float64)
	}
	g.baselines[member] = g.rotation
	member.BeforeGroupTransform(g.pivot)
}

func (g *Group) detach(member Placement) {
	member.AfterGroupTransform(g.rotation - g.baselines[member])
	delete(g.baselines, member)
}

func (g *Group) Pivot() *scene.Node {
	return g.pivot
}

func (g *Group) Active() bool {
	return g.active
}

// Begin places the group pivot at the world point center and attaches every member
func (g *Group) Begin(center mgl64.Vec2) {
	if g.active {
		return
	}

	g.pivot.SetLocalRotation(mgl64.QuatIdent())
	g.pivot.SetLocalScale(mgl64.Vec3{1, 1, 1})
	g.pivot.SetPosition(center.Vec3(0))
	g.rotation = 0
	g.scale = 1

	for _, member := range g.Members {
		g.attach(member)
	}
	g.active = true
}

// Rotate turns the whole group by degrees around the pivot
func (g *Group) Rotate(degrees float64) {
	g.rotation += degrees
	g.pivot.SetLocalEulerZ(g.rotation)
}

// Scale multiplies the group scale by factor
func (g *Group) Scale(factor float64) {
	g.scale *= factor
	g.pivot.SetLocalScale(mgl64.Vec3{g.scale, g.scale, 1})
}

// End hands every member back its own root and resets the pivot
func (g *Group) End() {
	if !g.active {
		return
	}

	for _, member := range g.Members {
		g.detach(member)
	}

	g.pivot.SetLocalRotation(mgl64.QuatIdent())
	g.pivot.SetLocalScale(mgl64.Vec3{1, 1, 1})
	g.rotation = 0
	g.scale = 1
	g.active = false
}

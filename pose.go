package puppet

import (
	"github.com/akmonengine/puppet/live2d"
	"github.com/akmonengine/puppet/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is one placed sub-model: a node under the pivot carrying the model node
type Pose struct {
	// index in the meta model list, reported in load and reload errors
	index int

	node      *scene.Node
	modelNode *scene.Node
	model     live2d.Model

	curMotionName string
	curExpName    string
	displayMode   live2d.DisplayMode
}

func newPose(index int, model live2d.Model) *Pose {
	p := &Pose{
		index:     index,
		node:      scene.New("pose"),
		modelNode: scene.New("model"),
		model:     model,
	}
	p.node.AddChild(p.modelNode)

	return p
}

func (p *Pose) Index() int {
	return p.index
}

func (p *Pose) Node() *scene.Node {
	return p.node
}

func (p *Pose) Model() live2d.Model {
	return p.model
}

// Adjust places the pose at (x, y) in pivot space
func (p *Pose) Adjust(x, y float64) {
	p.node.SetLocalPosition(mgl64.Vec3{x, y, 0})
}

func (p *Pose) render() {
	p.model.Render(p.modelNode.WorldMatrix())
}

func (p *Pose) destroy() {
	p.node.Destroy()
}

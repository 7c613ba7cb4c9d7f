package component

import "github.com/jakecoffman/cp"

// Transform is an entity's placement in the world. Behavior only ever moves
// things in the XY plane; Z is carried through untouched for render layering.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

func (t Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X = p.X
	t.Y = p.Y
}

var TransformComponent = NewComponent[Transform]()

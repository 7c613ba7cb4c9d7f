package component

import "github.com/jakecoffman/cp"

// Viewport describes the world-space rectangle the camera shows, plus the
// padding fraction kept clear on each axis when sampling points inside it.
type Viewport struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64

	PaddingX float64
	PaddingY float64
}

// WorldPoint maps normalized viewport coordinates (0..1 on each axis) to a
// world-space point.
func (v Viewport) WorldPoint(nx, ny float64) cp.Vector {
	return cp.Vector{
		X: v.MinX + nx*(v.MaxX-v.MinX),
		Y: v.MinY + ny*(v.MaxY-v.MinY),
	}
}

var ViewportComponent = NewComponent[Viewport]()

package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/coldsnap/flurry/common"
	"github.com/coldsnap/flurry/ecs/component"
)

const (
	// departureSafety widens the minimum-distance constraint so a sampled
	// point is comfortably outside the hover radius.
	departureSafety   = 1.5
	maxDepartureDraws = 20
)

// SampleDeparturePoint picks a world point inside the padded viewport that
// is at least minDistance*departureSafety away from the attractor. It draws
// up to maxDepartureDraws uniform candidates; if none qualify, the last
// draw is pushed out radially from the attractor onto the constraint
// circle, so the returned point always satisfies the distance bound.
func SampleDeparturePoint(rng *rand.Rand, attractor cp.Vector, vp component.Viewport, minDistance float64) cp.Vector {
	safe := minDistance * departureSafety

	var candidate cp.Vector
	for i := 0; i < maxDepartureDraws; i++ {
		nx := common.Lerp(vp.PaddingX, 1-vp.PaddingX, rng.Float64())
		ny := common.Lerp(vp.PaddingY, 1-vp.PaddingY, rng.Float64())
		candidate = vp.WorldPoint(nx, ny)
		if candidate.Distance(attractor) >= safe {
			return candidate
		}
	}

	dir := candidate.Sub(attractor)
	if dir.LengthSq() < 1e-12 {
		// Last draw landed exactly on the attractor; any direction works.
		dir = cp.Vector{X: 1}
	}
	return attractor.Add(dir.Normalize().Mult(safe))
}

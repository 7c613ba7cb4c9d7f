package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// epsilon below which a direction vector is treated as degenerate.
const degenerateSq = 1e-12

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ArcPoint returns the point on the parabolic arc from start to end that
// corresponds to current's progress along it. Progress is derived from the
// remaining distance to end, so callers can feed the position back in each
// tick without tracking a separate parameter. The arc is the straight-line
// interpolation displaced along +Y by 4*h*p*(1-p), which peaks at apexHeight
// midway and is zero at both endpoints.
func ArcPoint(current, start, end cp.Vector, apexHeight float64) cp.Vector {
	total := start.Distance(end)
	if total*total < degenerateSq {
		// start and end coincide; the naive ratio would divide by zero.
		return end
	}
	t := Clamp(current.Distance(end)/total, 0, 1)
	p := 1 - t
	out := start.Lerp(end, p)
	out.Y += 4 * apexHeight * p * (1 - p)
	return out
}

// SmoothDamp moves current toward target with a critically damped spring,
// easing both in and out. velocity carries the integrator state between
// calls; it is not a physical velocity. The move converges in roughly
// smoothTime seconds regardless of frame rate and never exceeds maxSpeed.
func SmoothDamp(current, target, velocity cp.Vector, smoothTime, maxSpeed, dt float64) (cp.Vector, cp.Vector) {
	smoothTime = math.Max(1e-4, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	original := target

	maxChange := maxSpeed * smoothTime
	change = change.Clamp(maxChange)
	target = current.Sub(change)

	temp := velocity.Add(change.Mult(omega)).Mult(dt)
	velocity = velocity.Sub(temp.Mult(omega)).Mult(exp)
	out := target.Add(change.Add(temp).Mult(exp))

	// Clamp away overshoot past the original target.
	if original.Sub(current).Dot(out.Sub(original)) > 0 {
		out = original
		velocity = cp.Vector{}
	}
	return out, velocity
}

// LerpAngle interpolates between two angles in radians along the shortest
// wrap, so heading never spins the long way around.
func LerpAngle(a, b, t float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return a + d*Clamp(t, 0, 1)
}

// The sprite's forward axis points opposite world-forward, hence the half
// turn added to the target angle.
const headingFlip = math.Pi

const headingLerpRate = 5.0

// SmoothHeading turns current toward the direction from fromPos to
// towardPos at a fixed rate scaled by dt. When the two positions coincide
// there is no direction to face, so the previous heading is held rather
// than evaluating atan2(0, 0).
func SmoothHeading(current float64, fromPos, towardPos cp.Vector, dt float64) float64 {
	dir := towardPos.Sub(fromPos)
	if dir.LengthSq() < degenerateSq {
		return current
	}
	return LerpAngle(current, dir.ToAngle()+headingFlip, headingLerpRate*dt)
}

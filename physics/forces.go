package physics

import (
	"math"
)

// Body is the read-only view of a particle that the force model needs
type Body struct {
	Position Vector
	Velocity Vector
	Radius   float64
	Noise    float64
}

// Equilibrium returns the distance from the center at which the spring force
// on body is zero. It grows with the body's radius and is shifted by the
// body's noise so equal-weight satellites do not share a single ring.
func (t Tuning) Equilibrium(body, center Body) float64 {
	return math.Pow(body.Radius+t.RadiusPadding, t.RadiusExponent) +
		body.Noise + t.SafeZone*2 + center.Radius
}

// CenterForce returns the damped spring acceleration pulling body toward its
// equilibrium distance from center. Too far pulls in, too close pushes out.
func (t Tuning) CenterForce(body, center Body) Vector {
	dir, distance := Direction(center.Position, body.Position, body.Noise)
	delta := distance - t.Equilibrium(body, center)
	magnitude := -t.Attraction * delta

	return dir.Scale(magnitude).Sub(body.Velocity.Scale(t.Amortization))
}

// Repulsion returns the push other exerts on body. Bodies further apart than
// their summed radii plus a softening margin do not interact.
func (t Tuning) Repulsion(body, other Body) Vector {
	dir, distance := Direction(other.Position, body.Position, separationAngle(body.Noise, other.Noise))
	overlap := body.Radius + other.Radius - distance + t.SafeZone/4
	if overlap <= 0 {
		return Vector{}
	}
	return dir.Scale(t.RepulsionGain * overlap)
}

// Combine blends the two forces and applies the rest guard. It returns the
// acceleration to integrate and the (possibly damped) velocity.
func (t Tuning) Combine(velocity, center, repulsion Vector) (Vector, Vector) {
	acc := center.Scale(t.CenterWeight).Add(repulsion.Scale(t.RepulsionWeight))
	if velocity.Add(acc).Norm() < t.RestThreshold {
		return Vector{}, velocity.Scale(t.RestDamping)
	}
	return acc, velocity
}

// separationAngle picks opposite fallback directions for the two bodies of a
// coincident pair
func separationAngle(own, other float64) float64 {
	angle := own + other
	if own > other {
		angle += math.Pi
	}
	return angle
}

package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// coincidentEpsilon is the distance under which two points are treated as the same point
const coincidentEpsilon = 1e-9

// Vector is a 2D point or displacement. It shares its layout with r2.Vec so
// the gonum helpers can do the arithmetic.
type Vector r2.Vec

// V is a convenience constructor for Vector
func V(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors
func (v Vector) Add(o Vector) Vector {
	return Vector(r2.Add(r2.Vec(v), r2.Vec(o)))
}

// Sub returns v - o
func (v Vector) Sub(o Vector) Vector {
	return Vector(r2.Sub(r2.Vec(v), r2.Vec(o)))
}

// Scale multiplies both components by k
func (v Vector) Scale(k float64) Vector {
	return Vector(r2.Scale(k, r2.Vec(v)))
}

// Norm returns the length of the vector
func (v Vector) Norm() float64 {
	return r2.Norm(r2.Vec(v))
}

// Distance returns the Euclidean distance between two points
func (v Vector) Distance(o Vector) float64 {
	return o.Sub(v).Norm()
}

// Angle returns the direction from v to o in radians, in (-π, π].
// The angle between coincident points is 0.
func (v Vector) Angle(o Vector) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Offset moves v by dist along angle. A negative dist moves backwards.
func (v Vector) Offset(angle, dist float64) Vector {
	return Vector{
		X: v.X + math.Cos(angle)*dist,
		Y: v.Y + math.Sin(angle)*dist,
	}
}

// IsFinite reports whether both components are neither NaN nor infinite
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Direction returns the unit vector pointing from `from` to `to` along with
// the distance between them. When the points coincide the unit vector at
// fallback radians is returned instead, so callers never divide by zero.
func Direction(from, to Vector, fallback float64) (Vector, float64) {
	d := to.Sub(from)
	dist := d.Norm()
	if dist < coincidentEpsilon {
		return Vector{X: math.Cos(fallback), Y: math.Sin(fallback)}, 0
	}
	return d.Scale(1 / dist), dist
}

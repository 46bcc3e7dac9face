package physics

import (
	"math"
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source yields uniform samples in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// GlobalSource draws from the process-wide math/rand/v2 generator
var GlobalSource Source = globalSource{}

// NewSource returns a deterministic PCG-backed source for seed
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Noise samples the fixed per-node equilibrium perturbation for a body of
// the given radius.
func (t Tuning) Noise(src Source, radius float64) float64 {
	return (src.Float64() - 0.5) * t.NoiseAmplitude / radius
}

// Spawner chooses where the n-th added satellite appears relative to the
// main node.
type Spawner interface {
	Offset(n int) Vector
}

// SimplexSpawner places consecutive nodes along a smooth simplex noise field,
// so bursts of new nodes fan out instead of stacking on one spot.
type SimplexSpawner struct {
	noise  opensimplex.Noise
	radius float64
	scale  float64
}

// NewSimplexSpawner creates a spawner whose offsets never exceed radius
func NewSimplexSpawner(seed int64, radius float64) *SimplexSpawner {
	return &SimplexSpawner{
		noise:  opensimplex.New(seed),
		radius: radius,
		scale:  0.61,
	}
}

// Offset returns a non-zero offset of length in [radius/2, radius]
func (s *SimplexSpawner) Offset(n int) Vector {
	step := float64(n) * s.scale
	angle := math.Pi * (1 + s.noise.Eval2(step, 1.3))
	dist := s.radius * (0.5 + 0.5*math.Abs(s.noise.Eval2(1.7, step)))
	return Vector{}.Offset(angle, dist)
}

// UniformSpawner draws offsets from a uniform source
type UniformSpawner struct {
	src    Source
	radius float64
}

// NewUniformSpawner creates a spawner backed by src
func NewUniformSpawner(src Source, radius float64) *UniformSpawner {
	return &UniformSpawner{src: src, radius: radius}
}

// Offset returns a random offset of length in [radius/2, radius]
func (s *UniformSpawner) Offset(int) Vector {
	angle := s.src.Float64() * 2 * math.Pi
	dist := s.radius * (0.5 + 0.5*s.src.Float64())
	return Vector{}.Offset(angle, dist)
}

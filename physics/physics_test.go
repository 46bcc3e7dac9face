package physics

import (
	"math"
	"strings"
	"testing"
)

func TestVectorDistanceAndAngle(t *testing.T) {
	a := V(1, 1)
	b := V(4, 5)

	if d := a.Distance(b); d != 5 {
		t.Errorf("expected distance 5, got %v", d)
	}
	if d := a.Distance(a); d != 0 {
		t.Errorf("expected distance to self 0, got %v", d)
	}
	if got := a.Angle(a); got != 0 {
		t.Errorf("expected angle to self 0, got %v", got)
	}
	if got := V(0, 0).Angle(V(0, 3)); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("expected angle pi/2, got %v", got)
	}
	if got := V(0, 0).Angle(V(-1, 0)); got != math.Pi {
		t.Errorf("expected angle pi, got %v", got)
	}
}

func TestVectorArithmetic(t *testing.T) {
	v := V(2, -3).Add(V(1, 1)).Scale(2)
	if v != V(6, -4) {
		t.Errorf("expected (6,-4), got %v", v)
	}
	if got := V(5, 5).Sub(V(2, 1)); got != V(3, 4) {
		t.Errorf("expected (3,4), got %v", got)
	}
	if n := V(3, 4).Norm(); n != 5 {
		t.Errorf("expected norm 5, got %v", n)
	}
}

func TestDirectionFallsBackOnCoincidentPoints(t *testing.T) {
	dir, dist := Direction(V(7, 7), V(7, 7), 0)
	if dist != 0 {
		t.Fatalf("expected zero distance, got %v", dist)
	}
	if !dir.IsFinite() {
		t.Fatalf("expected finite direction, got %v", dir)
	}
	if math.Abs(dir.Norm()-1) > 1e-12 {
		t.Errorf("expected unit fallback, got norm %v", dir.Norm())
	}

	dir, dist = Direction(V(0, 0), V(0, 10), 0)
	if dist != 10 || math.Abs(dir.Y-1) > 1e-12 {
		t.Errorf("expected (0,1) at 10, got %v at %v", dir, dist)
	}
}

func TestEquilibriumGrowsWithRadius(t *testing.T) {
	tn := DefaultTuning()
	center := Body{Radius: 3}

	prev := math.Inf(-1)
	for _, r := range []float64{2, 3, 5, 8, 13} {
		eq := tn.Equilibrium(Body{Radius: r}, center)
		if eq <= prev {
			t.Errorf("equilibrium should grow with radius: r=%v gave %v after %v", r, eq, prev)
		}
		prev = eq
	}

	low := tn.Equilibrium(Body{Radius: 3, Noise: -5}, center)
	high := tn.Equilibrium(Body{Radius: 3, Noise: 5}, center)
	if high-low != 10 {
		t.Errorf("noise should shift equilibrium one to one, got %v", high-low)
	}
}

func TestCenterForceIsRestoring(t *testing.T) {
	tn := DefaultTuning()
	center := Body{Radius: 3}
	eq := tn.Equilibrium(Body{Radius: 3}, center)

	tests := []struct {
		name     string
		distance float64
		wantSign float64
	}{
		{"too far pulls in", eq + 20, -1},
		{"too close pushes out", eq - 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := Body{Position: V(tt.distance, 0), Radius: 3}
			f := tn.CenterForce(body, center)
			if math.Signbit(f.X) == (tt.wantSign > 0) {
				t.Errorf("expected sign %v, got force %v", tt.wantSign, f)
			}
			if f.Y != 0 {
				t.Errorf("expected purely radial force, got %v", f)
			}
		})
	}
}

func TestCenterForceDampsVelocity(t *testing.T) {
	tn := DefaultTuning()
	center := Body{Radius: 3}
	eq := tn.Equilibrium(Body{Radius: 3}, center)

	body := Body{Position: V(eq, 0), Velocity: V(0, 10), Radius: 3}
	f := tn.CenterForce(body, center)
	if math.Abs(f.Y+10*tn.Amortization) > 1e-12 {
		t.Errorf("expected damping -%v on Y, got %v", 10*tn.Amortization, f.Y)
	}
}

func TestCenterForceCoincidentIsFinite(t *testing.T) {
	tn := DefaultTuning()
	f := tn.CenterForce(Body{Radius: 3, Noise: 1.2}, Body{Radius: 3})
	if !f.IsFinite() || f.Norm() == 0 {
		t.Errorf("expected a finite outward push, got %v", f)
	}
}

func TestRepulsion(t *testing.T) {
	tn := DefaultTuning()

	far := tn.Repulsion(Body{Position: V(100, 0), Radius: 3}, Body{Radius: 3})
	if far != (Vector{}) {
		t.Errorf("expected no repulsion between distant bodies, got %v", far)
	}

	near := tn.Repulsion(Body{Position: V(4, 0), Radius: 3}, Body{Radius: 3})
	want := tn.RepulsionGain * (3 + 3 - 4 + tn.SafeZone/4)
	if math.Abs(near.X-want) > 1e-12 || near.Y != 0 {
		t.Errorf("expected (%v,0), got %v", want, near)
	}

	same := tn.Repulsion(Body{Radius: 3, Noise: 2}, Body{Radius: 3, Noise: 1})
	if !same.IsFinite() || same.Norm() == 0 {
		t.Errorf("expected finite push for coincident bodies, got %v", same)
	}
}

func TestCombineRestGuard(t *testing.T) {
	tn := DefaultTuning()

	acc, vel := tn.Combine(V(0.01, 0), V(0.01, 0), V(0, 0))
	if acc != (Vector{}) {
		t.Errorf("expected zero acceleration at rest, got %v", acc)
	}
	if vel != V(0.01*tn.RestDamping, 0) {
		t.Errorf("expected damped velocity, got %v", vel)
	}

	acc, vel = tn.Combine(V(1, 0), V(1, 0), V(0, 2))
	if acc != V(tn.CenterWeight, 2*tn.RepulsionWeight) {
		t.Errorf("unexpected blend %v", acc)
	}
	if vel != V(1, 0) {
		t.Errorf("velocity should be untouched when moving, got %v", vel)
	}
}

func TestFaderMonotonicWithoutOvershoot(t *testing.T) {
	for _, target := range []float64{1, 0.2, 0} {
		f := Fader{Current: 0.6, Target: target}
		prev := f.Current
		for i := 0; i < 200; i++ {
			cur := f.Step(0.15)
			if target > 0.6 {
				if cur < prev || cur > target {
					t.Fatalf("target %v: step %d went from %v to %v", target, i, prev, cur)
				}
			} else {
				if cur > prev || cur < target {
					t.Fatalf("target %v: step %d went from %v to %v", target, i, prev, cur)
				}
			}
			prev = cur
		}
		if math.Abs(f.Current-target) > 1e-9 {
			t.Errorf("target %v: expected convergence, got %v", target, f.Current)
		}
	}
}

func TestTuningValidate(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning should be valid: %v", err)
	}

	tn := DefaultTuning()
	tn.Smoothing = 0
	tn.Attraction = -1
	tn.RadiusExponent = math.NaN()
	err := tn.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"smoothing", "attraction", "radius_exponent"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestNoiseRange(t *testing.T) {
	tn := DefaultTuning()
	src := NewSource(42)
	for i := 0; i < 1000; i++ {
		n := tn.Noise(src, 4)
		if n < -tn.NoiseAmplitude/8 || n >= tn.NoiseAmplitude/8 {
			t.Fatalf("noise %v out of range for radius 4", n)
		}
	}
}

func TestSpawnersStayInRing(t *testing.T) {
	spawners := map[string]Spawner{
		"simplex": NewSimplexSpawner(7, 12),
		"uniform": NewUniformSpawner(NewSource(7), 12),
	}
	for name, s := range spawners {
		t.Run(name, func(t *testing.T) {
			for n := 0; n < 100; n++ {
				d := s.Offset(n).Norm()
				if d < 6-1e-9 || d > 12+1e-9 {
					t.Fatalf("offset %d has length %v, want [6,12]", n, d)
				}
			}
		})
	}
}

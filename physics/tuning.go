package physics

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// Tuning holds the empirically chosen constants of the two-force model
type Tuning struct {
	Attraction      float64 `mapstructure:"attraction" toml:"attraction"`             // spring constant toward the equilibrium ring
	Amortization    float64 `mapstructure:"amortization" toml:"amortization"`         // velocity damping in the center force
	SafeZone        float64 `mapstructure:"safe_zone" toml:"safe_zone"`               // spacing added around the main node
	RadiusPadding   float64 `mapstructure:"radius_padding" toml:"radius_padding"`     // added to the radius before the power law
	RadiusExponent  float64 `mapstructure:"radius_exponent" toml:"radius_exponent"`   // power applied to the padded radius
	RepulsionGain   float64 `mapstructure:"repulsion_gain" toml:"repulsion_gain"`     // acceleration per pixel of overlap
	CenterWeight    float64 `mapstructure:"center_weight" toml:"center_weight"`       // blend weight of the center force
	RepulsionWeight float64 `mapstructure:"repulsion_weight" toml:"repulsion_weight"` // blend weight of the repulsion
	RestThreshold   float64 `mapstructure:"rest_threshold" toml:"rest_threshold"`     // |v+a| under which a node snaps to rest
	RestDamping     float64 `mapstructure:"rest_damping" toml:"rest_damping"`         // velocity multiplier while resting
	Smoothing       float64 `mapstructure:"smoothing" toml:"smoothing"`               // opacity easing factor per draw
	NoiseAmplitude  float64 `mapstructure:"noise_amplitude" toml:"noise_amplitude"`   // spread of the per-node equilibrium noise
	SpawnRadius     float64 `mapstructure:"spawn_radius" toml:"spawn_radius"`         // max distance of a new node from the main node
}

// DefaultTuning returns the constants the layout was tuned with
func DefaultTuning() Tuning {
	return Tuning{
		Attraction:      0.01,
		Amortization:    0.1,
		SafeZone:        20,
		RadiusPadding:   10,
		RadiusExponent:  1.4,
		RepulsionGain:   0.1,
		CenterWeight:    1.0,
		RepulsionWeight: 1.25,
		RestThreshold:   0.05,
		RestDamping:     0.5,
		Smoothing:       0.15,
		NoiseAmplitude:  100,
		SpawnRadius:     12,
	}
}

// Validate reports every constant that would make the simulation diverge or
// produce NaN values.
func (t Tuning) Validate() error {
	var errs []error

	nonNegative := map[string]float64{
		"attraction":       t.Attraction,
		"safe_zone":        t.SafeZone,
		"radius_padding":   t.RadiusPadding,
		"repulsion_gain":   t.RepulsionGain,
		"center_weight":    t.CenterWeight,
		"repulsion_weight": t.RepulsionWeight,
		"rest_threshold":   t.RestThreshold,
		"noise_amplitude":  t.NoiseAmplitude,
		"spawn_radius":     t.SpawnRadius,
	}
	for _, name := range slices.Sorted(maps.Keys(nonNegative)) {
		v := nonNegative[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%s must be a finite value >= 0, got %v", name, v))
		}
	}

	if !(t.Amortization >= 0 && t.Amortization < 1) {
		errs = append(errs, fmt.Errorf("amortization must be in [0, 1), got %v", t.Amortization))
	}
	if !(t.RestDamping >= 0 && t.RestDamping < 1) {
		errs = append(errs, fmt.Errorf("rest_damping must be in [0, 1), got %v", t.RestDamping))
	}
	if !(t.Smoothing > 0 && t.Smoothing <= 1) {
		errs = append(errs, fmt.Errorf("smoothing must be in (0, 1], got %v", t.Smoothing))
	}
	if !(t.RadiusExponent > 0) || math.IsInf(t.RadiusExponent, 0) {
		errs = append(errs, fmt.Errorf("radius_exponent must be > 0, got %v", t.RadiusExponent))
	}

	return errors.Join(errs...)
}

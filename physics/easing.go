package physics

// Fader eases a value toward a target with an exponential moving average.
// It is stepped once per drawn frame and is not frame-time compensated.
type Fader struct {
	Current float64
	Target  float64
}

// Step moves Current toward Target by factor of the remaining gap and
// returns the new value. With factor in (0, 1] the sequence is monotonic and
// never passes the target.
func (f *Fader) Step(factor float64) float64 {
	f.Current += (f.Target - f.Current) * factor
	return f.Current
}

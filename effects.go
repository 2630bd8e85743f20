package marquee

import "math"

// Decorative effects are pure functions of time. They keep no state, never
// settle and can be restarted by simply resetting the clock they are fed.

// Pulse oscillates between lo and hi with the given period in seconds,
// starting at lo. A non-positive period returns lo.
func Pulse(t, period, lo, hi float64) float64 {
	if period <= 0 {
		return lo
	}
	phase := (1 - math.Cos(2*math.Pi*t/period)) / 2
	return lo + (hi-lo)*phase
}

// Sway returns a sinusoidal offset in [-amplitude, amplitude].
func Sway(t, period, amplitude float64) float64 {
	if period <= 0 {
		return 0
	}
	return amplitude * math.Sin(2*math.Pi*t/period)
}

// PulseAlpha returns an OnUpdate hook that pulses n's alpha forever, like a
// breathing glow behind a call to action.
func PulseAlpha(n *Node, period, lo, hi float64) func(dt float64) {
	var t float64
	return func(dt float64) {
		t += dt
		n.SetAlpha(Pulse(t, period, lo, hi))
	}
}

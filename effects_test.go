package marquee

import (
	"math"
	"testing"
)

func TestPulse(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"start", 0, 0.2},
		{"quarter", 0.5, 0.5},
		{"half", 1, 0.8},
		{"full", 2, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "Pulse", Pulse(tt.t, 2, 0.2, 0.8), tt.want)
		})
	}
	if got := Pulse(1, 0, 0.3, 0.9); got != 0.3 {
		t.Errorf("zero period = %v, want lo", got)
	}
}

func TestSway(t *testing.T) {
	assertNear(t, "Sway(0)", Sway(0, 4, 10), 0)
	assertNear(t, "Sway(1)", Sway(1, 4, 10), 10)
	assertNear(t, "Sway(3)", Sway(3, 4, 10), -10)
	if got := Sway(1, -1, 10); got != 0 {
		t.Errorf("negative period = %v, want 0", got)
	}
}

func TestPulseAlphaStaysInRange(t *testing.T) {
	n := NewRect("glow", 10, 10, ColorWhite)
	hook := PulseAlpha(n, 1.5, 0.3, 0.6)
	for i := 0; i < 200; i++ {
		hook(1.0 / 60)
		if n.Alpha < 0.3-epsilon || n.Alpha > 0.6+epsilon {
			t.Fatalf("alpha %v out of [0.3, 0.6] at step %d", n.Alpha, i)
		}
	}
	if math.IsNaN(n.Alpha) {
		t.Fatal("alpha is NaN")
	}
}

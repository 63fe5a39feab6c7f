package game

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{12*time.Minute + 5*time.Second + 900*time.Millisecond, "12:05"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRectFraction(t *testing.T) {
	r := rect{x: 20, y: 750, w: 760, h: 20}
	if !r.contains(20, 750) || !r.contains(780, 770) || r.contains(19, 760) || r.contains(400, 771) {
		t.Fatal("contains boundaries wrong")
	}
	for _, tt := range []struct {
		x    int
		want float64
	}{
		{0, 0},
		{20, 0},
		{400, 0.5},
		{780, 1},
		{900, 1},
	} {
		if got := r.fraction(tt.x); got != tt.want {
			t.Errorf("fraction(%d) = %v, want %v", tt.x, got, tt.want)
		}
	}
	if (rect{}).fraction(10) != 0 {
		t.Error("empty rect fraction should be zero")
	}
}

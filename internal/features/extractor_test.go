package features

import (
	"math"
	"testing"
)

func testConfig() Config {
	return Config{
		Alpha:   0.7,
		DBFloor: 30,
		DBRange: 100,
		Bass:    Band{0, 10},
		Treble:  Band{100, 180},
	}
}

func constant(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestZeroSpectrumGivesZeroEnergy(t *testing.T) {
	e := NewExtractor(testConfig(), 180)
	for i := 0; i < 10; i++ {
		b := e.Update(make([]float64, 180))
		if b.Bass != 0 || b.Treble != 0 {
			t.Fatalf("tick %d: bands = %+v, want zero", i, b)
		}
	}
	// the analyzer floor for digital silence is -200 dB
	b := e.Update(constant(180, -200))
	if b != (Bands{}) {
		t.Fatalf("silence floor bands = %+v, want zero", b)
	}
}

func TestEmptyInputsYieldZero(t *testing.T) {
	e := NewExtractor(testConfig(), 0)
	if b := e.Update(nil); b != (Bands{}) {
		t.Fatalf("empty extractor bands = %+v", b)
	}

	if got := Mean([]float64{1, 1}, Band{5, 9}); got != 0 {
		t.Fatalf("out of range band mean = %v, want 0", got)
	}
	if got := Mean([]float64{1, 1}, Band{1, 1}); got != 0 {
		t.Fatalf("empty band mean = %v, want 0", got)
	}
}

func TestNormalizeClips(t *testing.T) {
	tests := []struct {
		db, want float64
	}{
		{-200, 0},
		{30, 0},
		{80, 0.5},
		{130, 1},
		{400, 1},
	}
	for _, tt := range tests {
		if got := Normalize(tt.db, 30, 100); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Normalize(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}
	if Normalize(100, 30, 0) != 0 {
		t.Errorf("zero range must normalize to 0")
	}
}

func TestSmoothingConvergesMonotonically(t *testing.T) {
	for _, alpha := range []float64{0.05, 0.6, 0.85, 0.99} {
		cfg := testConfig()
		cfg.Alpha = alpha
		e := NewExtractor(cfg, 180)

		// 90 dB normalizes to 0.6
		raw := constant(180, 90)
		target := 0.6

		prev := 0.0
		for tick := 0; tick < 5000; tick++ {
			e.Update(raw)
			cur := e.Smoothed()[0]
			if cur < prev-1e-12 {
				t.Fatalf("alpha %v tick %d: smoothed decreased %v -> %v", alpha, tick, prev, cur)
			}
			if cur > target+1e-12 {
				t.Fatalf("alpha %v tick %d: overshoot %v", alpha, tick, cur)
			}
			prev = cur
		}
		if math.Abs(prev-target) > 1e-6 {
			t.Fatalf("alpha %v: converged to %v, want %v", alpha, prev, target)
		}
		b := e.Bands()
		if math.Abs(b.Bass-target) > 1e-6 || math.Abs(b.Treble-target) > 1e-6 {
			t.Fatalf("alpha %v: bands %+v, want %v", alpha, b, target)
		}
	}
}

func TestSmoothedStaysInUnitRange(t *testing.T) {
	e := NewExtractor(testConfig(), 64)
	raw := make([]float64, 64)
	for tick := 0; tick < 200; tick++ {
		for i := range raw {
			// swings far outside the normalization window
			raw[i] = float64((tick*37+i*11)%600) - 200
		}
		b := e.Update(raw)
		for i, v := range e.Smoothed() {
			if v < 0 || v > 1 {
				t.Fatalf("tick %d bin %d: %v outside [0,1]", tick, i, v)
			}
		}
		if b.Bass < 0 || b.Bass > 1 || b.Treble < 0 || b.Treble > 1 {
			t.Fatalf("tick %d: bands out of range %+v", tick, b)
		}
	}
}

func TestSilenceDecays(t *testing.T) {
	e := NewExtractor(testConfig(), 180)
	e.Update(constant(180, 130))
	before := e.Bands().Bass
	after := e.Silence().Bass
	if !(after < before) {
		t.Fatalf("silence did not decay: %v -> %v", before, after)
	}
	if math.Abs(after-before*0.7) > 1e-12 {
		t.Fatalf("silence decay = %v, want %v", after, before*0.7)
	}
}

func TestShortRawCountsAsSilence(t *testing.T) {
	cfg := testConfig()
	cfg.Alpha = 0.5
	e := NewExtractor(cfg, 20)
	e.Update(constant(5, 130))
	s := e.Smoothed()
	if s[0] != 0.5 || s[4] != 0.5 || s[5] != 0 || s[19] != 0 {
		t.Fatalf("unexpected smoothed %v", s)
	}
}

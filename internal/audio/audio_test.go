package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/faiface/beep"
)

// counter streams 1/1000, 2/1000, ... on both channels.
func counter() beep.Streamer {
	var n int
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			n++
			v := float64(n) / 1000
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

func TestTapBlockIsLatestChronological(t *testing.T) {
	tp := newTap(counter(), 8)
	buf := make([][2]float64, 5)
	tp.Stream(buf)
	tp.Stream(buf) // 10 samples through an 8 slot ring

	dst := make([]int16, 4)
	tp.block(dst)
	for i, want := range []float64{7, 8, 9, 10} {
		if got := dst[i]; got != toPCM16(want/1000) {
			t.Fatalf("dst[%d] = %d, want %d", i, got, toPCM16(want/1000))
		}
	}
}

func TestTapZeroPadsUntilFilled(t *testing.T) {
	tp := newTap(counter(), 16)
	tp.Stream(make([][2]float64, 3))

	dst := []int16{9, 9, 9, 9, 9, 9}
	tp.block(dst)
	if dst[0] != 0 || dst[1] != 0 || dst[2] != 0 {
		t.Fatalf("missing samples not zeroed: %v", dst)
	}
	if dst[3] != toPCM16(0.001) || dst[5] != toPCM16(0.003) {
		t.Fatalf("recorded samples misplaced: %v", dst)
	}
}

func TestTapMixesToMono(t *testing.T) {
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, -0.1}
		}
		return len(samples), true
	})
	tp := newTap(src, 4)
	tp.Stream(make([][2]float64, 4))
	dst := make([]int16, 4)
	tp.block(dst)
	if dst[0] != toPCM16(0.2) {
		t.Fatalf("mono mix = %d, want %d", dst[0], toPCM16(0.2))
	}
}

func TestToPCM16Clips(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{2, math.MaxInt16},
		{-1, -math.MaxInt16},
		{-3, -math.MaxInt16},
	}
	for _, tt := range tests {
		if got := toPCM16(tt.in); got != tt.want {
			t.Errorf("toPCM16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToneBlocksAndBeat(t *testing.T) {
	tone := NewTone(ToneConfig{SampleRate: 44100, BlockSize: 1024, Freqs: []float64{100}, Amplitude: 0.5, Beat: 4096})
	if tone.SampleRate() != 44100 {
		t.Fatalf("SampleRate = %d", tone.SampleRate())
	}

	block := make([]int16, 1024)
	peak := func() int16 {
		var p int16
		for _, s := range block {
			if s > p {
				p = s
			}
		}
		return p
	}

	// two blocks on, two blocks off
	for i, wantOn := range []bool{true, true, false, false, true} {
		if err := tone.Read(block); err != nil {
			t.Fatalf("block %d: %v", i, err)
		}
		on := peak() > 10000
		if on != wantOn {
			t.Fatalf("block %d: on=%v want %v (peak %d)", i, on, wantOn, peak())
		}
	}

	if err := tone.Read(make([]int16, 10)); !errors.Is(err, ErrBlockSize) {
		t.Fatalf("short block error = %v, want ErrBlockSize", err)
	}
	if err := tone.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tone.Read(block); !errors.Is(err, ErrClosed) {
		t.Fatalf("read after close = %v, want ErrClosed", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"mic", "file", "tone"} {
		if k, err := ParseKind(s); err != nil || string(k) != s {
			t.Errorf("ParseKind(%q) = %q, %v", s, k, err)
		}
	}
	if _, err := ParseKind("line-in"); err == nil {
		t.Errorf("expected error for unknown source")
	}
}

package audio

import (
	"math"

	"github.com/faiface/beep"
)

// ToneConfig describes a synthetic test signal: a sum of sines that is
// switched on and off with a fixed beat period.
type ToneConfig struct {
	SampleRate int
	BlockSize  int
	Freqs      []float64
	Amplitude  float64 // per sine, full scale is 1
	// Beat is the on+off period in samples; zero keeps the tone always on.
	Beat int
}

// Tone is a deterministic Source that produces exactly one block of
// signal per Read. It never blocks.
type Tone struct {
	cfg    ToneConfig
	tap    *tap
	buf    [][2]float64
	closed bool
}

// NewTone builds the generator on a beep.StreamerFunc.
func NewTone(cfg ToneConfig) *Tone {
	var pos int
	gen := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			var v float64
			if cfg.Beat <= 0 || pos%cfg.Beat < cfg.Beat/2 {
				for _, f := range cfg.Freqs {
					v += cfg.Amplitude * math.Sin(2*math.Pi*f*float64(pos)/float64(cfg.SampleRate))
				}
			}
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	})

	return &Tone{
		cfg: cfg,
		tap: newTap(gen, cfg.BlockSize),
		buf: make([][2]float64, cfg.BlockSize),
	}
}

func (t *Tone) SampleRate() int { return t.cfg.SampleRate }

func (t *Tone) Read(block []int16) error {
	if t.closed {
		return ErrClosed
	}
	if err := checkBlock(block, t.cfg.BlockSize); err != nil {
		return err
	}
	t.tap.Stream(t.buf)
	t.tap.block(block)
	return nil
}

func (t *Tone) Close() error {
	t.closed = true
	return nil
}

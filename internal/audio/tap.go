package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// tap wraps a beep.Streamer and records the last N samples, mixed down to
// mono, into a ring buffer so the engine can read the most recently played
// audio as a block.
type tap struct {
	Source    beep.Streamer
	buffer    []float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newTap(src beep.Streamer, ringSize int) *tap {
	return &tap{
		Source: src,
		buffer: make([]float64, ringSize),
	}
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = (samples[i][0] + samples[i][1]) * 0.5
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled += n
		if t.filled > len(t.buffer) {
			t.filled = len(t.buffer)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *tap) Err() error { return t.Source.Err() }

// block fills dst with the latest len(dst) samples, oldest first. Samples
// not yet recorded are left as zero at the start of dst.
func (t *tap) block(dst []int16) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := len(dst)
	if n > t.filled {
		n = t.filled
	}
	lead := len(dst) - n
	zero(dst[:lead])

	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := lead; i < len(dst); i++ {
		dst[i] = toPCM16(t.buffer[idx])
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
}

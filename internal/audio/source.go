// Package audio provides the sample block sources the engine pulls from:
// a live microphone, file playback and a synthetic tone.
package audio

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrCapture marks a failed or overflowed read. The engine recovers by
	// treating the tick as silence.
	ErrCapture = errors.New("audio capture failed")
	// ErrBlockSize is returned when the destination does not match the
	// source's block size.
	ErrBlockSize = errors.New("block size mismatch")
	// ErrClosed is returned by reads after Close.
	ErrClosed = errors.New("source closed")
)

// Source delivers fixed-size blocks of mono signed 16-bit samples.
type Source interface {
	SampleRate() int
	// Read fills block completely. Errors wrap ErrCapture, ErrBlockSize or
	// ErrClosed.
	Read(block []int16) error
	Close() error
}

// Kind names a source implementation.
type Kind string

const (
	KindMic  Kind = "mic"
	KindFile Kind = "file"
	KindTone Kind = "tone"
)

// ParseKind validates a source name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMic, KindFile, KindTone:
		return k, nil
	}
	return "", fmt.Errorf("unknown audio source %q (want mic, file or tone)", s)
}

func checkBlock(block []int16, size int) error {
	if len(block) != size {
		return fmt.Errorf("%w: got %d, want %d", ErrBlockSize, len(block), size)
	}
	return nil
}

func toPCM16(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(math.Round(v * math.MaxInt16))
}

func zero(block []int16) {
	for i := range block {
		block[i] = 0
	}
}

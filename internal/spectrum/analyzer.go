// Package spectrum turns blocks of 16-bit PCM into a decibel magnitude
// spectrum: Hann window, real FFT, 20*log10(|X|+eps), truncated to the
// first bars bins.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Epsilon keeps log10 away from zero magnitudes.
const Epsilon = 1e-10

// Analyzer is not safe for concurrent use; it owns its scratch buffers.
type Analyzer struct {
	size int
	bars int

	win     []float64
	samples []float64
	out     []float64
	fft     transform
}

// NewAnalyzer builds an analyzer for blocks of size samples returning bars
// bins. bars must not exceed size/2.
func NewAnalyzer(size, bars int, backend Backend) (*Analyzer, error) {
	if size < 2 {
		return nil, fmt.Errorf("spectrum: block size %d too small", size)
	}
	if bars < 1 || bars > size/2 {
		return nil, fmt.Errorf("spectrum: %d bars out of range for block size %d (max %d)", bars, size, size/2)
	}
	fft, err := newTransform(backend, size)
	if err != nil {
		return nil, err
	}

	ones := make([]float64, size)
	for i := range ones {
		ones[i] = 1
	}

	return &Analyzer{
		size:    size,
		bars:    bars,
		win:     window.Hann(ones),
		samples: make([]float64, size),
		out:     make([]float64, bars),
		fft:     fft,
	}, nil
}

// Size is the expected block length.
func (a *Analyzer) Size() int { return a.size }

// Bars is the output spectrum length.
func (a *Analyzer) Bars() int { return a.bars }

// Analyze returns the dB spectrum of block. The returned slice is reused by
// the next call. A block of the wrong length is a programming error.
func (a *Analyzer) Analyze(block []int16) []float64 {
	if len(block) != a.size {
		panic(fmt.Sprintf("spectrum: block length %d, analyzer expects %d", len(block), a.size))
	}

	for i, s := range block {
		a.samples[i] = float64(s)
	}
	floats.Mul(a.samples, a.win)

	coeffs := a.fft.coefficients(a.samples)
	for i := range a.out {
		a.out[i] = 20 * math.Log10(cmplx.Abs(coeffs[i])+Epsilon)
	}
	return a.out
}

package spectrum

import (
	"fmt"

	godsp "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend selects the FFT implementation.
type Backend string

const (
	BackendGonum Backend = "gonum"
	BackendGoDSP Backend = "godsp"
)

// Backends lists the supported backends.
func Backends() []Backend { return []Backend{BackendGonum, BackendGoDSP} }

// transform returns at least the size/2+1 non-negative frequency
// coefficients of a real sequence.
type transform interface {
	coefficients(seq []float64) []complex128
}

func newTransform(b Backend, size int) (transform, error) {
	switch b {
	case BackendGonum, "":
		return &gonumFFT{fft: fourier.NewFFT(size), dst: make([]complex128, size/2+1)}, nil
	case BackendGoDSP:
		return godspFFT{}, nil
	}
	return nil, fmt.Errorf("spectrum: unknown fft backend %q", b)
}

type gonumFFT struct {
	fft *fourier.FFT
	dst []complex128
}

func (g *gonumFFT) coefficients(seq []float64) []complex128 {
	return g.fft.Coefficients(g.dst, seq)
}

// go-dsp handles any length but returns the full two-sided spectrum.
type godspFFT struct{}

func (godspFFT) coefficients(seq []float64) []complex128 {
	return godsp.FFTReal(seq)
}

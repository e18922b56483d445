package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the Fast Fourier Transform of a real signal
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes, including non-power-of-2
	return fft.FFTReal(x)
}

// Magnitude returns |X[k]| for bins 0..N/2.
func (f *FFT) Magnitude(x []float64) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	spectrum := f.Compute(x)
	magnitude := make([]float64, len(x)/2+1)
	for k := range magnitude {
		magnitude[k] = cmplx.Abs(spectrum[k])
	}
	return magnitude
}

// BinResolution is the width of one bin in Hz.
func BinResolution(sampleRate, size int) float64 {
	return float64(sampleRate) / float64(size)
}

package windowing

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
)

// Hann represents a symmetric Hann window
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a new Hann window
func NewHann(size int) *Hann {
	return &Hann{
		size:         size,
		coefficients: window.Hann(size),
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hann) Apply(signal []float64) ([]float64, error) {
	if len(signal) != h.size {
		return nil, fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	windowed := make([]float64, h.size)
	floats.MulTo(windowed, signal, h.coefficients)
	return windowed, nil
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hann) ApplyInPlace(signal []float64) error {
	if len(signal) != h.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	floats.Mul(signal, h.coefficients)
	return nil
}

// CoherentGain is the mean coefficient: a windowed sinusoid of amplitude A
// peaks at A * CoherentGain * size / 2 in the magnitude spectrum.
func (h *Hann) CoherentGain() float64 {
	if h.size == 0 {
		return 0
	}
	return common.Mean(h.coefficients)
}

// GetCoefficients returns a copy of the window coefficients
func (h *Hann) GetCoefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}

// GetSize returns the window size
func (h *Hann) GetSize() int {
	return h.size
}

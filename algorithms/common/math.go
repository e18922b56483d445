package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Concert pitch reference: A4 = MIDI 69 = 440 Hz.
const (
	ReferenceFrequency = 440.0
	ReferenceMIDI      = 69
)

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.StdDev(data, nil)
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// IsPowerOfTwo checks if n is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Peak is a local maximum of a sampled curve. Position is the interpolated
// sub-sample location of the maximum.
type Peak struct {
	Index    int
	Position float64
	Height   float64
}

// FindPeaks returns the strict local maxima of data[lo:hi] whose height is at
// least minHeight, ordered by index.
func FindPeaks(data []float64, lo, hi int, minHeight float64) []Peak {
	lo = max(lo, 1)
	hi = min(hi, len(data)-1)

	var peaks []Peak
	for i := lo; i < hi; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] && data[i] >= minHeight {
			offset, height := ParabolicVertex(data[i-1], data[i], data[i+1])
			peaks = append(peaks, Peak{
				Index:    i,
				Position: float64(i) + offset,
				Height:   height,
			})
		}
	}
	return peaks
}

// ParabolicVertex fits a parabola through three equally spaced samples
// centred on y2 and returns the vertex offset (-0.5..0.5) and height.
func ParabolicVertex(y1, y2, y3 float64) (offset, height float64) {
	denom := y1 - 2.0*y2 + y3
	if math.Abs(denom) < 1e-12 {
		return 0, y2
	}
	offset = 0.5 * (y1 - y3) / denom
	height = y2 - 0.25*(y1-y3)*offset
	return offset, height
}

// MaxNormalize scales data so its largest value is 1. All-zero input is
// returned as zeros.
func MaxNormalize(data []float64) []float64 {
	normalized := make([]float64, len(data))
	if len(data) == 0 {
		return normalized
	}
	peak := floats.Max(data)
	if peak <= 0 {
		return normalized
	}
	floats.ScaleTo(normalized, 1/peak, data)
	return normalized
}

// FrequencyToMIDI converts Hz to a fractional MIDI note number.
func FrequencyToMIDI(frequency float64) float64 {
	return ReferenceMIDI + 12*math.Log2(frequency/ReferenceFrequency)
}

// MIDIToFrequency converts a MIDI note number to Hz.
func MIDIToFrequency(note float64) float64 {
	return ReferenceFrequency * math.Pow(2, (note-ReferenceMIDI)/12)
}

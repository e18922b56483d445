package harmonic

import (
	"math"
	"sort"

	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
	"github.com/RyanBlaney/sonido-teoria/algorithms/spectral"
)

// SpectralPeak represents a detected spectral peak
type SpectralPeak struct {
	Frequency float64 // Interpolated peak frequency in Hz
	Magnitude float64 // Interpolated peak magnitude
	BinIndex  int     // Original FFT bin index
}

// SpectralPeaks finds the strongest peaks of a magnitude spectrum
type SpectralPeaks struct {
	sampleRate int
	windowSize int
	freqRange  [2]float64
	threshold  float64 // relative to the strongest bin in range
	maxPeaks   int
}

// NewSpectralPeaks creates a new spectral peaks analyzer
func NewSpectralPeaks(sampleRate, windowSize int, freqRange [2]float64, threshold float64, maxPeaks int) *SpectralPeaks {
	return &SpectralPeaks{
		sampleRate: sampleRate,
		windowSize: windowSize,
		freqRange:  freqRange,
		threshold:  threshold,
		maxPeaks:   maxPeaks,
	}
}

// DetectPeaks returns up to maxPeaks peaks inside the frequency range, strongest first.
func (sp *SpectralPeaks) DetectPeaks(magnitudeSpectrum []float64) []SpectralPeak {
	if len(magnitudeSpectrum) == 0 {
		return []SpectralPeak{}
	}

	resolution := spectral.BinResolution(sp.sampleRate, sp.windowSize)
	lo := int(math.Ceil(sp.freqRange[0] / resolution))
	hi := min(int(sp.freqRange[1]/resolution)+1, len(magnitudeSpectrum))
	if lo >= hi {
		return []SpectralPeak{}
	}

	strongest := 0.0
	for _, m := range magnitudeSpectrum[lo:hi] {
		strongest = math.Max(strongest, m)
	}
	if strongest == 0 {
		return []SpectralPeak{}
	}

	found := common.FindPeaks(magnitudeSpectrum, lo, hi, sp.threshold*strongest)
	peaks := make([]SpectralPeak, len(found))
	for i, p := range found {
		peaks[i] = SpectralPeak{
			Frequency: p.Position * resolution,
			Magnitude: p.Height,
			BinIndex:  p.Index,
		}
	}

	// Sort peaks by magnitude (descending)
	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].Magnitude > peaks[j].Magnitude
	})

	if len(peaks) > sp.maxPeaks {
		peaks = peaks[:sp.maxPeaks]
	}

	return peaks
}

// FilterHarmonicPeaks drops every peak lying within toleranceCents of an
// integer multiple (2 to maxHarmonic) of a stronger, lower peak. Input order
// is kept.
func FilterHarmonicPeaks(peaks []SpectralPeak, maxHarmonic int, toleranceCents float64) []SpectralPeak {
	filtered := make([]SpectralPeak, 0, len(peaks))
	for _, p := range peaks {
		if !isHarmonicOf(p, peaks, maxHarmonic, toleranceCents) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func isHarmonicOf(p SpectralPeak, peaks []SpectralPeak, maxHarmonic int, toleranceCents float64) bool {
	for _, f0 := range peaks {
		if f0.Frequency >= p.Frequency || f0.Magnitude < p.Magnitude {
			continue
		}
		for k := 2; k <= maxHarmonic; k++ {
			cents := 1200 * math.Log2(p.Frequency/(float64(k)*f0.Frequency))
			if math.Abs(cents) <= toleranceCents {
				return true
			}
		}
	}
	return false
}

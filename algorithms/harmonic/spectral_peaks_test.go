package harmonic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPeaks(t *testing.T) {
	// 100 Hz bins
	spectrum := make([]float64, 65)
	spectrum[5] = 1.0
	spectrum[10], spectrum[11] = 4.0, 2.0
	spectrum[20] = 0.1
	spectrum[40] = 3.0

	sp := NewSpectralPeaks(12800, 128, [2]float64{300, 5000}, 0.2, 8)
	peaks := sp.DetectPeaks(spectrum)

	require.Len(t, peaks, 3)
	assert.Equal(t, 10, peaks[0].BinIndex)
	assert.Equal(t, 5, peaks[2].BinIndex)
	assert.Equal(t, 40, peaks[1].BinIndex)

	// The heavier right neighbour pulls the estimate above the bin centre.
	assert.Greater(t, peaks[0].Frequency, 1000.0)
	assert.Less(t, peaks[0].Frequency, 1050.0)
	assert.GreaterOrEqual(t, peaks[0].Magnitude, 4.0)
}

func TestDetectPeaksLimitsAndRange(t *testing.T) {
	spectrum := make([]float64, 65)
	spectrum[5] = 1.0
	spectrum[10] = 4.0
	spectrum[40] = 3.0

	assert.Len(t, NewSpectralPeaks(12800, 128, [2]float64{300, 5000}, 0.1, 1).DetectPeaks(spectrum), 1)
	assert.Len(t, NewSpectralPeaks(12800, 128, [2]float64{800, 2000}, 0.1, 8).DetectPeaks(spectrum), 1)
	assert.Empty(t, NewSpectralPeaks(12800, 128, [2]float64{300, 5000}, 0.1, 8).DetectPeaks(make([]float64, 65)))
	assert.Empty(t, NewSpectralPeaks(12800, 128, [2]float64{300, 5000}, 0.1, 8).DetectPeaks(nil))
}

func TestFilterHarmonicPeaks(t *testing.T) {
	peaks := []SpectralPeak{
		{Frequency: 110, Magnitude: 1.0},
		{Frequency: 220.5, Magnitude: 0.6},
		{Frequency: 330, Magnitude: 0.4},
		{Frequency: 277.2, Magnitude: 0.9},
		{Frequency: 440, Magnitude: 1.2},
	}

	filtered := FilterHarmonicPeaks(peaks, 6, 25)

	frequencies := make([]float64, len(filtered))
	for i, p := range filtered {
		frequencies[i] = p.Frequency
	}
	// 440 is stronger than its fundamental and survives.
	assert.Equal(t, []float64{110, 277.2, 440}, frequencies)
}

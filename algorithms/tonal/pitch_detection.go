package tonal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
	"github.com/RyanBlaney/sonido-teoria/algorithms/harmonic"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/algorithms/spectral"
	"github.com/RyanBlaney/sonido-teoria/algorithms/windowing"
	"github.com/RyanBlaney/sonido-teoria/config"
	"github.com/RyanBlaney/sonido-teoria/logging"
)

var ErrEmptyFrame = errors.New("empty audio frame")

const (
	harmonicLimit     = 6
	harmonicTolerance = 25.0 // cents
)

// DetectedPitch is a spectral peak snapped to the nearest equal-tempered pitch.
type DetectedPitch struct {
	Pitch     pitch.Pitch `json:"pitch"`
	Frequency float64     `json:"frequency"` // Hz
	Cents     float64     `json:"cents"`     // deviation from Pitch, -50..50
	Magnitude float64     `json:"magnitude"` // relative to the strongest bin
}

// PitchDetectionParams contains parameters for sounded-pitch detection
type PitchDetectionParams struct {
	SampleRate        int        `json:"sample_rate"`
	WindowSize        int        `json:"window_size"` // frames are zero-padded or truncated to this
	FreqRange         [2]float64 `json:"freq_range"`
	PeakThreshold     float64    `json:"peak_threshold"`
	MaxPeaks          int        `json:"max_peaks"`
	SuppressHarmonics bool       `json:"suppress_harmonics"`
	PreferFlats       bool       `json:"prefer_flats"`
}

// PitchDetector finds the pitches sounding in a block of samples from the
// peaks of its windowed magnitude spectrum.
type PitchDetector struct {
	params PitchDetectionParams

	// Analysis components
	window *windowing.Hann
	fft    *spectral.FFT
	peaks  *harmonic.SpectralPeaks

	logger logging.Logger
}

func paramsFromConfig(cfg config.DetectionConfig) PitchDetectionParams {
	return PitchDetectionParams{
		SampleRate:        cfg.SampleRate,
		WindowSize:        cfg.WindowSize,
		FreqRange:         cfg.FreqRange,
		PeakThreshold:     cfg.PeakThreshold,
		MaxPeaks:          cfg.MaxPeaks,
		SuppressHarmonics: cfg.SuppressHarmonics,
	}
}

// NewPitchDetector creates a new pitch detector with default parameters
func NewPitchDetector(sampleRate int) *PitchDetector {
	params := paramsFromConfig(config.DefaultDetectionConfig())
	params.SampleRate = sampleRate
	return NewPitchDetectorWithParams(params)
}

// NewPitchDetectorWithParams creates a pitch detector with custom parameters
func NewPitchDetectorWithParams(params PitchDetectionParams) *PitchDetector {
	return &PitchDetector{
		params: params,
		window: windowing.NewHann(params.WindowSize),
		fft:    spectral.NewFFT(),
		peaks: harmonic.NewSpectralPeaks(
			params.SampleRate,
			params.WindowSize,
			params.FreqRange,
			params.PeakThreshold,
			params.MaxPeaks,
		),
		logger: logging.WithFields(logging.Fields{
			"component":   "pitch_detector",
			"sample_rate": params.SampleRate,
			"window_size": params.WindowSize,
		}),
	}
}

// NewPitchDetectorFromConfig validates cfg before building the detector.
func NewPitchDetectorFromConfig(cfg config.DetectionConfig) (*PitchDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pitch detector: %w", err)
	}
	return NewPitchDetectorWithParams(paramsFromConfig(cfg)), nil
}

// DetectPitches returns the distinct pitches sounding in frame, lowest first.
func (pd *PitchDetector) DetectPitches(frame []float64) ([]DetectedPitch, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}

	buffer := make([]float64, pd.params.WindowSize)
	copy(buffer, frame)
	if err := pd.window.ApplyInPlace(buffer); err != nil {
		return nil, fmt.Errorf("failed to window frame: %w", err)
	}

	peaks := pd.peaks.DetectPeaks(common.MaxNormalize(pd.fft.Magnitude(buffer)))
	if pd.params.SuppressHarmonics {
		peaks = harmonic.FilterHarmonicPeaks(peaks, harmonicLimit, harmonicTolerance)
	}

	byNote := make(map[int]DetectedPitch)
	for _, peak := range peaks {
		detected, err := pd.snap(peak)
		if err != nil {
			pd.logger.Warn("Dropping peak outside the pitch range", logging.Fields{
				"frequency": peak.Frequency,
				"error":     err.Error(),
			})
			continue
		}
		note, _ := detected.Pitch.MIDI()
		if existing, ok := byNote[note]; !ok || detected.Magnitude > existing.Magnitude {
			byNote[note] = detected
		}
	}

	detected := make([]DetectedPitch, 0, len(byNote))
	for _, d := range byNote {
		detected = append(detected, d)
	}
	sort.Slice(detected, func(i, j int) bool {
		return detected[i].Frequency < detected[j].Frequency
	})

	pd.logger.Debug("Detected pitches", logging.Fields{
		"frame_length": len(frame),
		"peaks":        len(peaks),
		"pitches":      len(detected),
	})

	return detected, nil
}

// SoundedPitches is DetectPitches reduced to the pitches themselves.
func (pd *PitchDetector) SoundedPitches(frame []float64) ([]pitch.Pitch, error) {
	detected, err := pd.DetectPitches(frame)
	if err != nil {
		return nil, err
	}
	pitches := make([]pitch.Pitch, len(detected))
	for i, d := range detected {
		pitches[i] = d.Pitch
	}
	return pitches, nil
}

func (pd *PitchDetector) snap(peak harmonic.SpectralPeak) (DetectedPitch, error) {
	p, cents, err := PitchFromFrequency(peak.Frequency, pd.params.PreferFlats)
	if err != nil {
		return DetectedPitch{}, err
	}
	return DetectedPitch{
		Pitch:     p,
		Frequency: peak.Frequency,
		Cents:     cents,
		Magnitude: peak.Magnitude,
	}, nil
}

// PitchFromFrequency returns the nearest equal-tempered pitch (A4 = 440 Hz)
// and the deviation from it in cents.
func PitchFromFrequency(frequency float64, preferFlats bool) (pitch.Pitch, float64, error) {
	if frequency <= 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return pitch.Pitch{}, 0, fmt.Errorf("frequency %.2f Hz: %w", frequency, pitch.ErrInvalidPitch)
	}

	exact := common.FrequencyToMIDI(frequency)
	note := math.Round(exact)
	if note < 12 || note > 127 {
		return pitch.Pitch{}, 0, fmt.Errorf("frequency %.2f Hz maps to midi %d: %w", frequency, int(note), pitch.ErrInvalidPitch)
	}

	p, err := pitch.FromMIDI(int(note), preferFlats)
	if err != nil {
		return pitch.Pitch{}, 0, err
	}
	return p, (exact - note) * 100, nil
}

// Frequency returns the equal-tempered frequency of p (A4 = 440 Hz).
func Frequency(p pitch.Pitch) (float64, error) {
	note, err := p.MIDI()
	if err != nil {
		return 0, err
	}
	return common.MIDIToFrequency(float64(note)), nil
}

func (pd *PitchDetector) GetParameters() PitchDetectionParams {
	return pd.params
}

package config

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
)

// Instrument selects tuning and detection presets.
type Instrument string

const (
	InstrumentGuitar  Instrument = "guitar"
	InstrumentBass    Instrument = "bass"
	InstrumentUkulele Instrument = "ukulele"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config bundles the settings of every engine component.
type Config struct {
	Identifier IdentifierConfig `json:"identifier"`
	Fretboard  FretboardConfig  `json:"fretboard"`
	Detection  DetectionConfig  `json:"detection"`
}

// IdentifierConfig configures chord identification for callers that want a
// filtered, truncated candidate list.
type IdentifierConfig struct {
	MinConfidence float64 `json:"min_confidence"`           // 0.0-1.0
	MaxCandidates int     `json:"max_candidates,omitempty"` // 0 keeps every candidate

	// Clarity and ambiguity of each result
	EnableDetailedMetrics bool `json:"enable_detailed_metrics,omitempty"`
}

// FretboardConfig describes the instrument neck and the default fret window.
type FretboardConfig struct {
	Tuning    []string `json:"tuning"` // highest-pitched string first, with octaves
	MaxFret   int      `json:"max_fret"`
	FretStart int      `json:"fret_start"`
	FretEnd   int      `json:"fret_end"`
}

type DetectionConfig struct {
	SampleRate int        `json:"sample_rate"`
	WindowSize int        `json:"window_size"`
	FreqRange  [2]float64 `json:"freq_range"` // [min, max] Hz

	// Peaks below PeakThreshold * strongest peak are ignored
	PeakThreshold float64 `json:"peak_threshold"`
	MaxPeaks      int     `json:"max_peaks"`

	// Drop peaks at integer multiples of a stronger, lower peak
	SuppressHarmonics bool `json:"suppress_harmonics"`
}

// DefaultIdentifierConfig returns the identifier defaults
func DefaultIdentifierConfig() IdentifierConfig {
	return IdentifierConfig{
		MinConfidence:         0.5,
		MaxCandidates:         0,
		EnableDetailedMetrics: true,
	}
}

// DefaultFretboardConfig returns a six-string guitar in standard tuning
func DefaultFretboardConfig() FretboardConfig {
	return FretboardConfig{
		Tuning:    []string{"E4", "B3", "G3", "D3", "A2", "E2"},
		MaxFret:   22,
		FretStart: 0,
		FretEnd:   12,
	}
}

func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		SampleRate:        44100,
		WindowSize:        8192,
		FreqRange:         [2]float64{60, 2000},
		PeakThreshold:     0.1,
		MaxPeaks:          6,
		SuppressHarmonics: true,
	}
}

// DefaultConfig returns the guitar preset.
func DefaultConfig() *Config {
	return &Config{
		Identifier: DefaultIdentifierConfig(),
		Fretboard:  DefaultFretboardConfig(),
		Detection:  DefaultDetectionConfig(),
	}
}

// ForInstrument returns a config tuned for the given instrument. Unknown
// instruments get the guitar defaults.
func ForInstrument(instrument Instrument) *Config {
	config := DefaultConfig()

	switch instrument {
	case InstrumentBass:
		config.Fretboard.Tuning = []string{"G2", "D2", "A1", "E1"}
		config.Fretboard.MaxFret = 20
		config.Detection.FreqRange = [2]float64{30, 800}
		config.Detection.WindowSize = 16384 // low E1 needs the finer bins
		config.Detection.MaxPeaks = 4

	case InstrumentUkulele:
		config.Fretboard.Tuning = []string{"A4", "E4", "C4", "G4"}
		config.Fretboard.MaxFret = 15
		config.Detection.FreqRange = [2]float64{200, 3000}
		config.Detection.MaxPeaks = 4
	}

	return config
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Identifier.Validate(); err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	if err := c.Fretboard.Validate(); err != nil {
		return fmt.Errorf("fretboard: %w", err)
	}
	if err := c.Detection.Validate(); err != nil {
		return fmt.Errorf("detection: %w", err)
	}
	return nil
}

func (c IdentifierConfig) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence %.2f outside 0..1: %w", c.MinConfidence, ErrInvalidConfig)
	}
	if c.MaxCandidates < 0 {
		return fmt.Errorf("max_candidates %d is negative: %w", c.MaxCandidates, ErrInvalidConfig)
	}
	return nil
}

// Validate checks the fret window only; tuning strings are parsed by the fretboard.
func (c FretboardConfig) Validate() error {
	if len(c.Tuning) == 0 {
		return fmt.Errorf("tuning has no strings: %w", ErrInvalidConfig)
	}
	if c.MaxFret < 0 {
		return fmt.Errorf("max_fret %d is negative: %w", c.MaxFret, ErrInvalidConfig)
	}
	if c.FretStart < 0 || c.FretStart > c.FretEnd || c.FretEnd > c.MaxFret {
		return fmt.Errorf("fret window %d..%d outside 0..%d: %w", c.FretStart, c.FretEnd, c.MaxFret, ErrInvalidConfig)
	}
	return nil
}

func (c DetectionConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate %d must be positive: %w", c.SampleRate, ErrInvalidConfig)
	}
	if !common.IsPowerOfTwo(c.WindowSize) {
		return fmt.Errorf("window_size %d must be a power of two: %w", c.WindowSize, ErrInvalidConfig)
	}
	nyquist := float64(c.SampleRate) / 2
	if c.FreqRange[0] <= 0 || c.FreqRange[0] >= c.FreqRange[1] || c.FreqRange[1] > nyquist {
		return fmt.Errorf("freq_range %v outside (0, %.0f]: %w", c.FreqRange, nyquist, ErrInvalidConfig)
	}
	if c.PeakThreshold < 0 || c.PeakThreshold >= 1 {
		return fmt.Errorf("peak_threshold %.2f outside 0..1: %w", c.PeakThreshold, ErrInvalidConfig)
	}
	if c.MaxPeaks <= 0 {
		return fmt.Errorf("max_peaks %d must be positive: %w", c.MaxPeaks, ErrInvalidConfig)
	}
	return nil
}

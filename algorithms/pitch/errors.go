package pitch

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("malformed pitch string")

	// ErrInvalidPitch is matched by every *InvalidPitchError.
	ErrInvalidPitch = errors.New("invalid pitch")

	// ErrNoOctave is returned by operations that need an absolute pitch.
	ErrNoOctave = errors.New("pitch has no octave")
)

// FormatError reports a pitch string that does not match [A-G][#b]?\d*
// or carries an octave outside MinOctave..MaxOctave.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pitch: cannot parse %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// InvalidPitchError reports a letter or accidental rejected by the constructor.
type InvalidPitchError struct {
	Letter     string
	Accidental Accidental
	Reason     string
}

func (e *InvalidPitchError) Error() string {
	return fmt.Sprintf("pitch: invalid pitch (letter %q, accidental %d): %s", e.Letter, int(e.Accidental), e.Reason)
}

func (e *InvalidPitchError) Unwrap() error { return ErrInvalidPitch }

package fretboard

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
)

// Tuning lists the open strings from highest-pitched (string 1) to lowest.
// Every open string carries an octave.
type Tuning []pitch.Pitch

// StandardTuning is six-string guitar E4 B3 G3 D3 A2 E2.
func StandardTuning() Tuning {
	return Tuning{
		pitch.MustParse("E4"),
		pitch.MustParse("B3"),
		pitch.MustParse("G3"),
		pitch.MustParse("D3"),
		pitch.MustParse("A2"),
		pitch.MustParse("E2"),
	}
}

// ParseTuning reads open strings such as "E4 B3 G3 D3 A2 E2".
func ParseTuning(s string) (Tuning, error) {
	pitches, err := pitch.ParseList(s)
	if err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	t := Tuning(pitches)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// TuningFromStrings parses one open string per element.
func TuningFromStrings(strs []string) (Tuning, error) {
	return ParseTuning(strings.Join(strs, " "))
}

func (t Tuning) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("tuning has no strings: %w", ErrTuning)
	}
	for i, open := range t {
		if !open.HasOctave() {
			return fmt.Errorf("string %d (%s): %w", i+1, open, pitch.ErrNoOctave)
		}
	}
	return nil
}

func (t Tuning) String() string {
	names := make([]string, len(t))
	for i, open := range t {
		names[i] = open.String()
	}
	return strings.Join(names, " ")
}

// Package pitch is the canonical pitch representation shared by every other
// package: a letter, an accidental and an optional octave, with arithmetic
// over the 12-step chromatic cycle (C = 0).
package pitch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Accidental is the alteration applied to a letter.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

func (a Accidental) String() string {
	switch a {
	case Natural:
		return ""
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return "?"
	}
}

func (a Accidental) offset() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

// Octave bounds accepted by Parse. C4 is middle C.
const (
	MinOctave = 0
	MaxOctave = 9
)

// Semitone offset of each natural letter from C
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

type spelling struct {
	letter     byte
	accidental Accidental
}

var sharpSpellings = [12]spelling{
	{'C', Natural}, {'C', Sharp}, {'D', Natural}, {'D', Sharp},
	{'E', Natural}, {'F', Natural}, {'F', Sharp}, {'G', Natural},
	{'G', Sharp}, {'A', Natural}, {'A', Sharp}, {'B', Natural},
}

var nextLetter = map[byte]byte{
	'C': 'D', 'D': 'E', 'E': 'F', 'F': 'G', 'G': 'A', 'A': 'B', 'B': 'C',
}

var pitchPattern = regexp.MustCompile(`^([A-G])([#b]?)(\d*)$`)

// Pitch is an immutable pitch class with an optional octave. The zero value
// is not a valid pitch; build one with New, NewWithOctave, Parse or FromIndex.
type Pitch struct {
	letter     byte
	accidental Accidental
	octave     int
	hasOctave  bool
}

// New validates letter and accidental and returns an octave-less pitch.
// The letter must be exactly one of "C".."B"; a letter that already embeds an
// accidental (e.g. "C#") is rejected.
func New(letter string, accidental Accidental) (Pitch, error) {
	if len(letter) != 1 {
		return Pitch{}, &InvalidPitchError{Letter: letter, Accidental: accidental, Reason: "letter must be a single character"}
	}
	if _, ok := letterOffsets[letter[0]]; !ok {
		return Pitch{}, &InvalidPitchError{Letter: letter, Accidental: accidental, Reason: "letter outside C-B"}
	}
	if accidental < Natural || accidental > Flat {
		return Pitch{}, &InvalidPitchError{Letter: letter, Accidental: accidental, Reason: "accidental must be natural, sharp or flat"}
	}
	return Pitch{letter: letter[0], accidental: accidental}, nil
}

// NewWithOctave is New plus an absolute octave.
func NewWithOctave(letter string, accidental Accidental, octave int) (Pitch, error) {
	p, err := New(letter, accidental)
	if err != nil {
		return Pitch{}, err
	}
	return p.WithOctave(octave), nil
}

// Parse reads the compact form used throughout the engine, e.g. "C", "F#3", "Bb".
func Parse(s string) (Pitch, error) {
	m := pitchPattern.FindStringSubmatch(s)
	if m == nil {
		return Pitch{}, &FormatError{Input: s, Reason: "expected [A-G][#b]?<octave>"}
	}

	accidental := Natural
	switch m[2] {
	case "#":
		accidental = Sharp
	case "b":
		accidental = Flat
	}

	p, err := New(m[1], accidental)
	if err != nil {
		return Pitch{}, &FormatError{Input: s, Reason: err.Error()}
	}
	if m[3] == "" {
		return p, nil
	}

	octave, err := strconv.Atoi(m[3])
	if err != nil || octave < MinOctave || octave > MaxOctave {
		return Pitch{}, &FormatError{Input: s, Reason: fmt.Sprintf("octave out of range %d..%d", MinOctave, MaxOctave)}
	}
	return p.WithOctave(octave), nil
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) Pitch {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseList parses pitches separated by whitespace or commas.
func ParseList(s string) ([]Pitch, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	pitches := make([]Pitch, 0, len(fields))
	for _, f := range fields {
		p, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse pitch list: %w", err)
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

// FromIndex spells chromatic index 0..11 without an octave. Sharps are used
// unless preferFlats is set, in which case a sharp spelling becomes the flat
// of the next letter (1 -> C# or Db). An index outside 0..11 panics: callers
// reduce modulo 12 before asking.
func FromIndex(index int, preferFlats bool) Pitch {
	if index < 0 || index >= len(sharpSpellings) {
		panic(fmt.Sprintf("pitch: chromatic index %d outside 0..11", index))
	}
	sp := sharpSpellings[index]
	if preferFlats && sp.accidental == Sharp {
		return Pitch{letter: nextLetter[sp.letter], accidental: Flat}
	}
	return Pitch{letter: sp.letter, accidental: sp.accidental}
}

// FromMIDI spells a MIDI note number (C4 = 60) with its octave.
func FromMIDI(note int, preferFlats bool) (Pitch, error) {
	if note < 0 || note > 127 {
		return Pitch{}, fmt.Errorf("midi note %d outside 0..127: %w", note, ErrInvalidPitch)
	}
	return FromIndex(note%12, preferFlats).WithOctave(note/12 - 1), nil
}

// Letter returns the natural letter without accidental.
func (p Pitch) Letter() string { return string(p.letter) }

func (p Pitch) Accidental() Accidental { return p.accidental }

// Octave returns the octave and whether one is set.
func (p Pitch) Octave() (int, bool) { return p.octave, p.hasOctave }

func (p Pitch) HasOctave() bool { return p.hasOctave }

// Index is the chromatic position 0..11 with C = 0, so Cb is 11 and B# is 0.
func (p Pitch) Index() int {
	offset, ok := letterOffsets[p.letter]
	if !ok {
		panic(fmt.Sprintf("pitch: letter %q not in chromatic table", p.letter))
	}
	return (offset + p.accidental.offset() + 12) % 12
}

// Name is the pitch-class spelling, letter plus accidental ("Bb").
func (p Pitch) Name() string {
	return string(p.letter) + p.accidental.String()
}

func (p Pitch) String() string {
	if !p.hasOctave {
		return p.Name()
	}
	return p.Name() + strconv.Itoa(p.octave)
}

// WithOctave returns a copy of p at the given octave.
func (p Pitch) WithOctave(octave int) Pitch {
	p.octave = octave
	p.hasOctave = true
	return p
}

// PitchClass returns a copy of p without its octave.
func (p Pitch) PitchClass() Pitch {
	p.octave = 0
	p.hasOctave = false
	return p
}

// MIDI returns the MIDI note number, spelled by letter: Cb4 is 59, B#3 is 60.
func (p Pitch) MIDI() (int, error) {
	if !p.hasOctave {
		return 0, fmt.Errorf("midi number of %s: %w", p, ErrNoOctave)
	}
	return (p.octave+1)*12 + letterOffsets[p.letter] + p.accidental.offset(), nil
}

// Transpose shifts p by semitones. Octave-less pitches stay octave-less.
func (p Pitch) Transpose(semitones int, preferFlats bool) Pitch {
	if !p.hasOctave {
		return FromIndex(mod12(p.Index()+semitones), preferFlats)
	}
	n, _ := p.MIDI()
	n += semitones
	octave := floorDiv(n, 12) - 1
	return FromIndex(mod12(n), preferFlats).WithOctave(octave)
}

// Equals compares pitch classes (letter and accidental) and, unless
// ignoreOctave is set, the octave as well. Enharmonic spellings differ.
func Equals(a, b Pitch, ignoreOctave bool) bool {
	if a.letter != b.letter || a.accidental != b.accidental {
		return false
	}
	if ignoreOctave {
		return true
	}
	return a.hasOctave == b.hasOctave && a.octave == b.octave
}

// SameClass reports whether a and b sound the same pitch class regardless of spelling.
func SameClass(a, b Pitch) bool {
	return a.Index() == b.Index()
}

// Interval is the upward distance in semitones from one pitch class to another, 0..11.
func Interval(from, to Pitch) int {
	return mod12(to.Index() - from.Index())
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

package scale

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
)

// Kind identifies a seven-note scale formula
type Kind int

const (
	Major Kind = iota
	NaturalMinor
	HarmonicMinor
	MelodicMinor
)

// Size is the number of notes in every supported scale
const Size = 7

var formulas = map[Kind][Size]int{
	Major:         {0, 2, 4, 5, 7, 9, 11},
	NaturalMinor:  {0, 2, 3, 5, 7, 8, 10},
	HarmonicMinor: {0, 2, 3, 5, 7, 8, 11},
	MelodicMinor:  {0, 2, 3, 5, 7, 9, 11},
}

var kindNames = map[Kind]string{
	Major:         "major",
	NaturalMinor:  "natural_minor",
	HarmonicMinor: "harmonic_minor",
	MelodicMinor:  "melodic_minor",
}

// Keys that are spelled with flats
var flatKeys = map[string]bool{
	"F": true, "Bb": true, "Eb": true, "Ab": true, "Db": true, "Gb": true, "Cb": true,
}

// Minor roots whose relative major is a flat key
var flatMinorKeys = map[string]bool{
	"D": true, "G": true, "C": true, "F": true, "Bb": true, "Eb": true, "Ab": true,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{Major, NaturalMinor, HarmonicMinor, MelodicMinor}
}

// ParseKind accepts the names produced by Kind.String, plus "minor" for natural minor.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "minor" {
		return NaturalMinor, nil
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown scale kind %q", s)
}

// Formula returns the semitone offsets from the root for kind.
// An unknown kind is a programming error and panics.
func Formula(kind Kind) [Size]int {
	f, ok := formulas[kind]
	if !ok {
		panic(fmt.Sprintf("scale: no formula for kind %d", int(kind)))
	}
	return f
}

// ShouldUseFlats reports whether a scale on root is spelled with flats: the
// root is one of F, Bb, Eb, Ab, Db, Gb, Cb, or carries a flat. The scale kind
// and the conventional spelling of non-root members are not considered.
func ShouldUseFlats(root pitch.Pitch) bool {
	return flatKeys[root.Name()] || root.Accidental() == pitch.Flat
}

// UsesFlats extends ShouldUseFlats to minor kinds: a minor scale is also
// spelled with flats when its relative major is a flat key (D minor, G minor).
func UsesFlats(root pitch.Pitch, kind Kind) bool {
	if ShouldUseFlats(root) {
		return true
	}
	return kind != Major && flatMinorKeys[root.Name()]
}

// Generate returns the seven pitch classes of kind built on root. The first
// note keeps the root's own spelling.
func Generate(root pitch.Pitch, kind Kind) [Size]pitch.Pitch {
	formula := Formula(kind)
	flats := UsesFlats(root, kind)
	rootIndex := root.Index()

	var notes [Size]pitch.Pitch
	notes[0] = root.PitchClass()
	for i := 1; i < Size; i++ {
		notes[i] = pitch.FromIndex((rootIndex+formula[i])%12, flats)
	}
	return notes
}

// Degree returns the 0-based position of p's pitch class in notes.
func Degree(notes [Size]pitch.Pitch, p pitch.Pitch) (int, bool) {
	for i, n := range notes {
		if pitch.SameClass(n, p) {
			return i, true
		}
	}
	return 0, false
}

// Name renders a key name such as "Bb major" or "F# harmonic minor".
func Name(root pitch.Pitch, kind Kind) string {
	return root.Name() + " " + strings.ReplaceAll(kind.String(), "_", " ")
}

package harmony

import (
	"fmt"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
)

type degreeEntry struct {
	quality Quality
	numeral string
}

var triadTable = [...][scale.Size]degreeEntry{
	scale.Major: {
		{Major, "I"}, {Minor, "ii"}, {Minor, "iii"}, {Major, "IV"},
		{Major, "V"}, {Minor, "vi"}, {Diminished, "vii°"},
	},
	scale.NaturalMinor: {
		{Minor, "i"}, {Diminished, "ii°"}, {Major, "III"}, {Minor, "iv"},
		{Minor, "v"}, {Major, "VI"}, {Major, "VII"},
	},
	scale.HarmonicMinor: {
		{Minor, "i"}, {Diminished, "ii°"}, {Augmented, "III+"}, {Minor, "iv"},
		{Major, "V"}, {Major, "VI"}, {Diminished, "vii°"},
	},
	scale.MelodicMinor: {
		{Minor, "i"}, {Minor, "ii"}, {Augmented, "III+"}, {Major, "IV"},
		{Major, "V"}, {Diminished, "vi°"}, {Diminished, "vii°"},
	},
}

// Harmonic and melodic minor use minor7 for i and major7 for III+ in place of
// minor-major7 and augmented-major7, which are not in the quality set.
var seventhTable = [...][scale.Size]degreeEntry{
	scale.Major: {
		{Major7, "Imaj7"}, {Minor7, "ii7"}, {Minor7, "iii7"}, {Major7, "IVmaj7"},
		{Dominant7, "V7"}, {Minor7, "vi7"}, {HalfDiminished7, "viiø7"},
	},
	scale.NaturalMinor: {
		{Minor7, "i7"}, {HalfDiminished7, "iiø7"}, {Major7, "IIImaj7"}, {Minor7, "iv7"},
		{Minor7, "v7"}, {Major7, "VImaj7"}, {Dominant7, "VII7"},
	},
	scale.HarmonicMinor: {
		{Minor7, "i7"}, {HalfDiminished7, "iiø7"}, {Major7, "III+maj7"}, {Minor7, "iv7"},
		{Dominant7, "V7"}, {Major7, "VImaj7"}, {Diminished7, "vii°7"},
	},
	scale.MelodicMinor: {
		{Minor7, "i7"}, {Minor7, "ii7"}, {Major7, "III+maj7"}, {Dominant7, "IV7"},
		{Dominant7, "V7"}, {HalfDiminished7, "viø7"}, {HalfDiminished7, "viiø7"},
	},
}

func tableFor(table [][scale.Size]degreeEntry, kind scale.Kind) [scale.Size]degreeEntry {
	if kind < 0 || int(kind) >= len(table) {
		panic(fmt.Sprintf("harmony: no degree table for scale kind %d", int(kind)))
	}
	return table[kind]
}

// Triads stacks thirds on every degree of notes: degree i uses notes
// i, i+2 and i+4, wrapping modulo 7.
func Triads(notes [scale.Size]pitch.Pitch, kind scale.Kind) []Chord {
	return stack(notes, tableFor(triadTable[:], kind), 3)
}

// Sevenths is Triads plus the note at i+6.
func Sevenths(notes [scale.Size]pitch.Pitch, kind scale.Kind) []Chord {
	return stack(notes, tableFor(seventhTable[:], kind), 4)
}

func stack(notes [scale.Size]pitch.Pitch, table [scale.Size]degreeEntry, size int) []Chord {
	chords := make([]Chord, scale.Size)
	for i := 0; i < scale.Size; i++ {
		members := make([]pitch.Pitch, size)
		for j := 0; j < size; j++ {
			members[j] = notes[(i+2*j)%scale.Size]
		}

		entry := table[i]
		chords[i] = Chord{
			Root:         notes[i],
			Quality:      entry.quality,
			Notes:        members,
			RomanNumeral: entry.numeral,
			DisplayName:  DisplayName(notes[i], entry.quality),
		}
	}
	return chords
}

// Scale is a generated scale together with its diatonic chords: seven
// triads followed by seven seventh chords.
type Scale struct {
	Root   pitch.Pitch
	Kind   scale.Kind
	Notes  [scale.Size]pitch.Pitch
	Chords []Chord
}

// NewScale generates the notes of kind on root and harmonises every degree.
func NewScale(root pitch.Pitch, kind scale.Kind) Scale {
	notes := scale.Generate(root, kind)

	chords := make([]Chord, 0, 2*scale.Size)
	chords = append(chords, Triads(notes, kind)...)
	chords = append(chords, Sevenths(notes, kind)...)

	return Scale{
		Root:   root.PitchClass(),
		Kind:   kind,
		Notes:  notes,
		Chords: chords,
	}
}

// Triads returns the seven diatonic triads.
func (s Scale) Triads() []Chord { return s.Chords[:scale.Size] }

// Sevenths returns the seven diatonic seventh chords.
func (s Scale) Sevenths() []Chord { return s.Chords[scale.Size:] }

// Name renders the key, e.g. "D natural minor".
func (s Scale) Name() string { return scale.Name(s.Root, s.Kind) }

// ChordFor returns the diatonic chord whose display name or numeral matches symbol.
func (s Scale) ChordFor(symbol string) (Chord, bool) {
	for _, c := range s.Chords {
		if c.DisplayName == symbol || c.RomanNumeral == symbol {
			return c, true
		}
	}
	return Chord{}, false
}

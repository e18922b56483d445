package harmony

import (
	"strings"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
)

// Chord is a set of pitch classes built on a root. Notes[0] always has the
// pitch class of Root. RomanNumeral is empty outside a key context.
type Chord struct {
	Root         pitch.Pitch
	Quality      Quality
	Notes        []pitch.Pitch
	RomanNumeral string
	DisplayName  string
}

// BuildChord spells quality on root outside any key. Members are spelled with
// the root's flat/sharp preference; the root keeps its own spelling.
func BuildChord(root pitch.Pitch, quality Quality) Chord {
	flats := scale.ShouldUseFlats(root)
	offsets := quality.PitchClassOffsets()

	notes := make([]pitch.Pitch, len(offsets))
	notes[0] = root.PitchClass()
	for i := 1; i < len(offsets); i++ {
		notes[i] = pitch.FromIndex((root.Index()+offsets[i])%12, flats)
	}

	return Chord{
		Root:        root.PitchClass(),
		Quality:     quality,
		Notes:       notes,
		DisplayName: DisplayName(root, quality),
	}
}

// DisplayName renders a chord symbol: root spelling plus quality suffix.
func DisplayName(root pitch.Pitch, quality Quality) string {
	return root.Name() + quality.Suffix()
}

// Contains reports whether p's pitch class is a chord member.
func (c Chord) Contains(p pitch.Pitch) bool {
	for _, n := range c.Notes {
		if pitch.SameClass(n, p) {
			return true
		}
	}
	return false
}

// NoteNames returns the member spellings, e.g. "C E G".
func (c Chord) NoteNames() string {
	names := make([]string, len(c.Notes))
	for i, n := range c.Notes {
		names[i] = n.Name()
	}
	return strings.Join(names, " ")
}

func (c Chord) String() string {
	if c.RomanNumeral == "" {
		return c.DisplayName
	}
	return c.DisplayName + " (" + c.RomanNumeral + ")"
}

package tonal

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
)

// Key roots as conventionally spelled, indexed by pitch class.
var (
	majorKeyRoots = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
	minorKeyRoots = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}
)

var degreeNumerals = [scale.Size]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Key is a tonic and scale kind.
type Key struct {
	Root pitch.Pitch
	Kind scale.Kind
}

// NewKey spells the tonic at pitch-class index the conventional way for kind.
func NewKey(index int, kind scale.Kind) Key {
	roots := majorKeyRoots
	if kind != scale.Major {
		roots = minorKeyRoots
	}
	return Key{
		Root: pitch.MustParse(roots[((index%12)+12)%12]),
		Kind: kind,
	}
}

func (k Key) Name() string { return scale.Name(k.Root, k.Kind) }

func (k Key) String() string { return k.Name() }

// KeyMembership places a chord in a key by the degree of its root.
type KeyMembership struct {
	Key          pitch.Pitch
	Kind         scale.Kind
	RomanNumeral string
}

func (m KeyMembership) String() string {
	return m.RomanNumeral + " in " + scale.Name(m.Key, m.Kind)
}

type keyScale struct {
	key   Key
	notes [scale.Size]pitch.Pitch
}

// every major key, then every natural minor key, each in pitch-class order
var keyScales = buildKeyScales()

func buildKeyScales() []keyScale {
	scales := make([]keyScale, 0, 24)
	for _, kind := range []scale.Kind{scale.Major, scale.NaturalMinor} {
		for i := 0; i < 12; i++ {
			key := NewKey(i, kind)
			scales = append(scales, keyScale{key: key, notes: scale.Generate(key.Root, kind)})
		}
	}
	return scales
}

// KeyMemberships lists every major and natural minor key whose scale contains
// root, with the degree numeral cased for quality: lowercase for the minor
// family, lowercase with "°" for the diminished family.
func KeyMemberships(root pitch.Pitch, quality harmony.Quality) []KeyMembership {
	var memberships []KeyMembership
	for _, ks := range keyScales {
		degree, ok := scale.Degree(ks.notes, root)
		if !ok {
			continue
		}
		memberships = append(memberships, KeyMembership{
			Key:          ks.key.Root,
			Kind:         ks.key.Kind,
			RomanNumeral: DegreeNumeral(degree, quality),
		})
	}
	return memberships
}

// DegreeNumeral renders a 0-based scale degree as a Roman numeral for a chord
// of the given quality.
func DegreeNumeral(degree int, quality harmony.Quality) string {
	if degree < 0 || degree >= len(degreeNumerals) {
		panic(fmt.Sprintf("tonal: scale degree %d outside 0..%d", degree, len(degreeNumerals)-1))
	}
	numeral := degreeNumerals[degree]
	switch {
	case quality.IsDiminishedFamily():
		return strings.ToLower(numeral) + "°"
	case quality.IsMinorFamily():
		return strings.ToLower(numeral)
	}
	return numeral
}

// Public utility functions

// RelativeKey returns the relative minor of a major key and the relative
// major of any minor kind.
func RelativeKey(k Key) Key {
	if k.Kind == scale.Major {
		return NewKey(k.Root.Index()-3, scale.NaturalMinor)
	}
	return NewKey(k.Root.Index()+3, scale.Major)
}

// ParallelKey swaps major and natural minor on the same tonic.
func ParallelKey(k Key) Key {
	if k.Kind == scale.Major {
		return NewKey(k.Root.Index(), scale.NaturalMinor)
	}
	return NewKey(k.Root.Index(), scale.Major)
}

// DominantKey returns the key a fifth above
func DominantKey(k Key) Key {
	return NewKey(k.Root.Index()+7, k.Kind)
}

// SubdominantKey returns the key a fifth below
func SubdominantKey(k Key) Key {
	return NewKey(k.Root.Index()+5, k.Kind)
}

// IsKeyRelated reports whether b is a, or its relative, parallel, dominant or
// subdominant key.
func IsKeyRelated(a, b Key) bool {
	same := func(x, y Key) bool {
		return x.Kind == y.Kind && pitch.SameClass(x.Root, y.Root)
	}
	for _, candidate := range []Key{a, RelativeKey(a), ParallelKey(a), DominantKey(a), SubdominantKey(a)} {
		if same(candidate, b) {
			return true
		}
	}
	return false
}

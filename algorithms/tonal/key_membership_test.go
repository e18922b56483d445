package tonal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
)

func TestKeyMemberships(t *testing.T) {
	memberships := KeyMemberships(pitch.MustParse("C"), harmony.Major)
	assert.Len(t, memberships, 14)

	numerals := map[string]string{}
	for _, m := range memberships {
		numerals[scale.Name(m.Key, m.Kind)] = m.RomanNumeral
	}
	assert.Equal(t, "I", numerals["C major"])
	assert.Equal(t, "V", numerals["F major"])
	assert.Equal(t, "IV", numerals["G major"])
	assert.Equal(t, "II", numerals["Bb major"])
	assert.Equal(t, "III", numerals["A natural minor"])
	assert.NotContains(t, numerals, "D major")

	// Majors come first in pitch-class order.
	assert.Equal(t, "I in C major", memberships[0].String())
	assert.Equal(t, scale.NaturalMinor, memberships[len(memberships)-1].Kind)
}

func TestKeyMembershipsEnharmonicRoot(t *testing.T) {
	sharp := KeyMemberships(pitch.MustParse("A#"), harmony.Minor)
	flat := KeyMemberships(pitch.MustParse("Bb"), harmony.Minor)
	assert.Equal(t, flat, sharp)
}

func TestDegreeNumeral(t *testing.T) {
	tests := []struct {
		degree   int
		quality  harmony.Quality
		expected string
	}{
		{0, harmony.Major, "I"},
		{1, harmony.Minor, "ii"},
		{4, harmony.Dominant7, "V"},
		{6, harmony.Diminished, "vii°"},
		{6, harmony.Diminished7, "vii°"},
		{6, harmony.HalfDiminished7, "vii"},
		{5, harmony.Minor9, "vi"},
		{2, harmony.Augmented, "III"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DegreeNumeral(tt.degree, tt.quality))
	}

	assert.Panics(t, func() { DegreeNumeral(7, harmony.Major) })
	assert.Panics(t, func() { DegreeNumeral(-1, harmony.Minor) })
}

func TestKeyRelations(t *testing.T) {
	cMajor := Key{Root: pitch.MustParse("C"), Kind: scale.Major}
	dMinor := Key{Root: pitch.MustParse("D"), Kind: scale.NaturalMinor}

	tests := []struct {
		name     string
		got      Key
		expected string
	}{
		{"relative of C major", RelativeKey(cMajor), "A natural minor"},
		{"relative of D minor", RelativeKey(dMinor), "F major"},
		{"relative of A harmonic minor", RelativeKey(Key{pitch.MustParse("A"), scale.HarmonicMinor}), "C major"},
		{"parallel of Eb major", ParallelKey(Key{pitch.MustParse("Eb"), scale.Major}), "Eb natural minor"},
		{"parallel of D minor", ParallelKey(dMinor), "D major"},
		{"dominant of F major", DominantKey(Key{pitch.MustParse("F"), scale.Major}), "C major"},
		{"dominant of E minor", DominantKey(Key{pitch.MustParse("E"), scale.NaturalMinor}), "B natural minor"},
		{"subdominant of C major", SubdominantKey(cMajor), "F major"},
		{"dominant of B major", DominantKey(Key{pitch.MustParse("B"), scale.Major}), "Gb major"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got.Name())
		})
	}
}

func TestIsKeyRelated(t *testing.T) {
	cMajor := NewKey(0, scale.Major)

	assert.True(t, IsKeyRelated(cMajor, cMajor))
	assert.True(t, IsKeyRelated(cMajor, NewKey(9, scale.NaturalMinor)))
	assert.True(t, IsKeyRelated(cMajor, NewKey(7, scale.Major)))
	assert.True(t, IsKeyRelated(cMajor, Key{Root: pitch.MustParse("B#"), Kind: scale.NaturalMinor}))
	assert.False(t, IsKeyRelated(cMajor, NewKey(2, scale.Major)))
	assert.False(t, IsKeyRelated(cMajor, NewKey(11, scale.NaturalMinor)))
}

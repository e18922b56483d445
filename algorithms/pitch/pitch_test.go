package pitch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"C", "C"},
		{"C#4", "C#4"},
		{"Bb", "Bb"},
		{"Eb3", "Eb3"},
		{"G0", "G0"},
		{"A9", "A9"},
		{"F#04", "F#4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.String())
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	inputs := []string{"", "H", "c", "C##", "Cb#", "#C", "C-1", "C10", "Db 4", "Cx"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)

			var fe *FormatError
			assert.True(t, errors.As(err, &fe), "expected *FormatError, got %T", err)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestNewRejectsEmbeddedAccidental(t *testing.T) {
	tests := []struct {
		name       string
		letter     string
		accidental Accidental
	}{
		{"two-character letter", "C#", Natural},
		{"empty letter", "", Sharp},
		{"letter out of range", "H", Natural},
		{"lowercase letter", "c", Natural},
		{"bad accidental", "D", Accidental(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.letter, tt.accidental)
			var ie *InvalidPitchError
			require.True(t, errors.As(err, &ie))
			assert.ErrorIs(t, err, ErrInvalidPitch)
		})
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		input string
		index int
	}{
		{"C", 0}, {"C#", 1}, {"Db", 1}, {"E", 4}, {"F", 5},
		{"Gb", 6}, {"A", 9}, {"Bb", 10}, {"B", 11}, {"Cb", 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.index, MustParse(tt.input).Index(), tt.input)
	}
}

func TestFromIndex(t *testing.T) {
	sharps := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flats := []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	for i := 0; i < 12; i++ {
		assert.Equal(t, sharps[i], FromIndex(i, false).String())
		assert.Equal(t, flats[i], FromIndex(i, true).String())
		assert.Equal(t, i, FromIndex(i, true).Index())
		assert.False(t, FromIndex(i, false).HasOctave())
	}
}

func TestFromIndexPanicsOutsideTable(t *testing.T) {
	assert.Panics(t, func() { FromIndex(12, false) })
	assert.Panics(t, func() { FromIndex(-1, true) })
}

func TestEquals(t *testing.T) {
	c4 := MustParse("C4")
	c5 := MustParse("C5")
	c := MustParse("C")

	assert.True(t, Equals(c4, c5, true))
	assert.False(t, Equals(c4, c5, false))
	assert.True(t, Equals(c4, c, true))
	assert.False(t, Equals(c4, c, false))
	assert.True(t, Equals(c4, MustParse("C4"), false))

	// enharmonic spellings are different pitches but the same class
	assert.False(t, Equals(MustParse("C#"), MustParse("Db"), true))
	assert.True(t, SameClass(MustParse("C#"), MustParse("Db")))
}

func TestMIDI(t *testing.T) {
	tests := []struct {
		input string
		midi  int
	}{
		{"C4", 60}, {"A4", 69}, {"E2", 40}, {"Cb4", 59}, {"C0", 12},
	}

	for _, tt := range tests {
		n, err := MustParse(tt.input).MIDI()
		require.NoError(t, err)
		assert.Equal(t, tt.midi, n, tt.input)
	}

	_, err := MustParse("C").MIDI()
	assert.ErrorIs(t, err, ErrNoOctave)
}

func TestFromMIDI(t *testing.T) {
	p, err := FromMIDI(61, true)
	require.NoError(t, err)
	assert.Equal(t, "Db4", p.String())

	p, err = FromMIDI(40, false)
	require.NoError(t, err)
	assert.Equal(t, "E2", p.String())

	_, err = FromMIDI(128, false)
	assert.Error(t, err)
}

func TestTranspose(t *testing.T) {
	assert.Equal(t, "C5", MustParse("B4").Transpose(1, false).String())
	assert.Equal(t, "A3", MustParse("C4").Transpose(-3, false).String())
	assert.Equal(t, "Eb", MustParse("C").Transpose(3, true).String())
	assert.Equal(t, "B", MustParse("C").Transpose(-1, false).String())
}

func TestInterval(t *testing.T) {
	assert.Equal(t, 7, Interval(MustParse("C"), MustParse("G")))
	assert.Equal(t, 5, Interval(MustParse("G"), MustParse("C")))
	assert.Equal(t, 0, Interval(MustParse("C#"), MustParse("Db")))
}

func TestParseList(t *testing.T) {
	pitches, err := ParseList("C4, E4 G4")
	require.NoError(t, err)
	require.Len(t, pitches, 3)
	assert.Equal(t, "G4", pitches[2].String())

	_, err = ParseList("C4, X")
	assert.ErrorIs(t, err, ErrFormat)
}

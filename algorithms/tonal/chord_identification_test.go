package tonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
	"github.com/RyanBlaney/sonido-teoria/config"
)

func mustList(t *testing.T, s string) []pitch.Pitch {
	t.Helper()
	pitches, err := pitch.ParseList(s)
	require.NoError(t, err)
	return pitches
}

func TestIdentifyChordsCompleteTriad(t *testing.T) {
	matches := IdentifyChords(mustList(t, "C E G"))
	require.NotEmpty(t, matches)

	best := matches[0]
	assert.Equal(t, "C", best.Chord.Root.Name())
	assert.Equal(t, harmony.Major, best.Chord.Quality)
	assert.Equal(t, 1.0, best.Confidence)
	assert.Empty(t, best.Missing)
	assert.Empty(t, best.Extra)
	assert.Equal(t, KeyMembership{Key: pitch.MustParse("C"), Kind: scale.Major, RomanNumeral: "I"}, best.KeyMemberships[0])
}

func TestIdentifyChordsIncompleteTriad(t *testing.T) {
	matches := IdentifyChords(mustList(t, "C E"))
	require.GreaterOrEqual(t, len(matches), 3)

	best := matches[0]
	assert.Equal(t, harmony.Major, best.Chord.Quality)
	assert.Equal(t, "C", best.Chord.Root.Name())
	assert.Greater(t, best.Confidence, 0.0)
	assert.Less(t, best.Confidence, 1.0)
	assert.InDelta(t, 2.0/3.0, best.Confidence, 1e-9)
	require.Len(t, best.Missing, 1)
	assert.Equal(t, "G", best.Missing[0].Name())
	assert.Equal(t, "C 67% (missing G)", best.String())

	// Ties keep root order, then quality order.
	assert.Equal(t, "C+", matches[1].Chord.DisplayName)
	assert.Equal(t, "E+", matches[2].Chord.DisplayName)
	assert.Equal(t, best.Confidence, matches[2].Confidence)
}

func TestIdentifyChordsEmpty(t *testing.T) {
	assert.Empty(t, IdentifyChords(nil))
	assert.Empty(t, IdentifyChords([]pitch.Pitch{}))
}

func TestIdentifyChordsIgnoresOctaveAndSpelling(t *testing.T) {
	matches := IdentifyChords(mustList(t, "C4 Fb5 G3 C5"))
	require.NotEmpty(t, matches)

	assert.Equal(t, "C", matches[0].Chord.DisplayName)
	assert.Equal(t, 1.0, matches[0].Confidence)
	assert.Empty(t, matches[0].Extra)
}

func TestIdentifyChordsExtraNotesPenalised(t *testing.T) {
	matches := IdentifyChords(mustList(t, "C E G A"))
	require.NotEmpty(t, matches)

	assert.Equal(t, "Am7", matches[0].Chord.DisplayName)
	assert.Equal(t, 1.0, matches[0].Confidence)

	for _, m := range matches {
		if m.Chord.DisplayName == "C" {
			assert.InDelta(t, 0.85, m.Confidence, 1e-9)
			require.Len(t, m.Extra, 1)
			assert.Equal(t, "A", m.Extra[0].Name())
			return
		}
	}
	t.Fatal("C major not among candidates")
}

func TestIdentifyChordsProperties(t *testing.T) {
	inputs := []string{
		"C", "C E", "C E G", "C Eb Gb A", "D F# A C E", "B D F", "C C# D D# E",
		"G B D F A", "F# A# C#", "E G# C",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			matches := IdentifyChords(mustList(t, input))
			require.NotEmpty(t, matches)

			for i, m := range matches {
				assert.Greater(t, m.Confidence, 0.0)
				assert.LessOrEqual(t, m.Confidence, 1.0)
				if i > 0 {
					assert.GreaterOrEqual(t, matches[i-1].Confidence, m.Confidence)
				}

				offsets := m.Chord.Quality.PitchClassOffsets()
				expected := len(offsets)
				matched := expected - len(m.Missing)
				want := math.Max(0, float64(matched)/float64(expected)-ExtraPenalty*float64(len(m.Extra)))
				assert.InDelta(t, want, m.Confidence, 1e-9, m.String())
			}
		})
	}
}

func TestIdentifyChordsAddingChordToneRaisesConfidence(t *testing.T) {
	confidenceOf := func(input, display string) float64 {
		for _, m := range IdentifyChords(mustList(t, input)) {
			if m.Chord.DisplayName == display {
				return m.Confidence
			}
		}
		return 0
	}

	assert.Less(t, confidenceOf("G B", "G7"), confidenceOf("G B D", "G7"))
	assert.Less(t, confidenceOf("G B D", "G7"), confidenceOf("G B D F", "G7"))
	assert.Greater(t, confidenceOf("A C E", "Am"), confidenceOf("A C E F#", "Am"))
}

func TestChordIdentifier(t *testing.T) {
	ci := NewChordIdentifier()
	result := ci.Identify(mustList(t, "C E G"))

	require.NotNil(t, result.Best)
	assert.Equal(t, "C", result.Best.Chord.DisplayName)
	assert.Len(t, result.Input, 3)
	for _, c := range result.Candidates {
		assert.GreaterOrEqual(t, c.Confidence, 0.5)
	}
	assert.InDelta(t, 0.25, result.Clarity, 1e-9)
	assert.Greater(t, result.Ambiguity, 0.0)
	assert.InDelta(t, math.Log2(3), result.Entropy, 1e-9)
	assert.InDelta(t, 1.0, result.Fit, 1e-9)
}

func TestChordIdentifierTruncation(t *testing.T) {
	ci := NewChordIdentifierWithParams(ChordIdentificationParams{
		MinConfidence:         0.5,
		MaxCandidates:         2,
		EnableDetailedMetrics: true,
	})

	result := ci.Identify(mustList(t, "C E"))
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "C", result.Candidates[0].Chord.DisplayName)
	assert.Equal(t, "C+", result.Candidates[1].Chord.DisplayName)
	assert.Zero(t, result.Clarity)
	assert.InDelta(t, 2/math.Sqrt(6), result.Fit, 1e-9)
	assert.Equal(t, "G", result.Best.Missing[0].Name())

	result = ci.Identify(nil)
	assert.Empty(t, result.Candidates)
	assert.Nil(t, result.Best)
}

func TestNewChordIdentifierFromConfig(t *testing.T) {
	cfg := config.DefaultIdentifierConfig()
	cfg.MinConfidence = 0.9

	ci, err := NewChordIdentifierFromConfig(cfg)
	require.NoError(t, err)
	result := ci.Identify(mustList(t, "C E G"))
	assert.Len(t, result.Candidates, 1)

	cfg.MinConfidence = 2
	_, err = NewChordIdentifierFromConfig(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

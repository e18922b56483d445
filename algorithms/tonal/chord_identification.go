package tonal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/RyanBlaney/sonido-teoria/algorithms/chroma"
	"github.com/RyanBlaney/sonido-teoria/algorithms/common"
	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/config"
	"github.com/RyanBlaney/sonido-teoria/logging"
)

// ExtraPenalty is subtracted from a candidate's confidence for every input
// pitch class outside the chord.
const ExtraPenalty = 0.15

// ChordMatch is one identification candidate.
type ChordMatch struct {
	Chord          harmony.Chord   `json:"chord"`
	Confidence     float64         `json:"confidence"` // (0, 1]
	Missing        []pitch.Pitch   `json:"missing"`    // chord tones not sounded
	Extra          []pitch.Pitch   `json:"extra"`      // sounded classes outside the chord
	KeyMemberships []KeyMembership `json:"key_memberships"`
}

// String renders e.g. "C 67% (missing G)".
func (m ChordMatch) String() string {
	s := fmt.Sprintf("%s %.0f%%", m.Chord.DisplayName, m.Confidence*100)

	var notes []string
	if len(m.Missing) > 0 {
		notes = append(notes, "missing "+joinNames(m.Missing))
	}
	if len(m.Extra) > 0 {
		notes = append(notes, "extra "+joinNames(m.Extra))
	}
	if len(notes) > 0 {
		s += " (" + strings.Join(notes, "; ") + ")"
	}
	return s
}

func joinNames(pitches []pitch.Pitch) string {
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.Name()
	}
	return strings.Join(names, " ")
}

// UniquePitchClasses drops octaves and repeated pitch classes, keeping the
// spelling and order of first appearance.
func UniquePitchClasses(pitches []pitch.Pitch) []pitch.Pitch {
	seen := chroma.New()
	var unique []pitch.Pitch
	for _, p := range pitches {
		if seen.Has(p.Index()) {
			continue
		}
		seen[p.Index()] = 1
		unique = append(unique, p.PitchClass())
	}
	return unique
}

// IdentifyChords scores every input pitch class as a root against every chord
// quality. Candidates with confidence above zero are returned, best first;
// equal confidences keep root order, then quality order.
func IdentifyChords(pitches []pitch.Pitch) []ChordMatch {
	roots := UniquePitchClasses(pitches)
	matches := []ChordMatch{}
	if len(roots) == 0 {
		return matches
	}

	input := chroma.FromPitches(roots)
	for _, root := range roots {
		for _, quality := range harmony.Qualities() {
			template := chroma.Template(root.Index(), quality.PitchClassOffsets())

			matched := chroma.Overlap(input, template)
			extra := len(roots) - matched
			confidence := common.Clamp(float64(matched)/float64(template.Count())-ExtraPenalty*float64(extra), 0, 1)
			if confidence <= 0 {
				continue
			}

			chord := harmony.BuildChord(root, quality)
			matches = append(matches, ChordMatch{
				Chord:          chord,
				Confidence:     confidence,
				Missing:        chroma.Difference(template, input).Select(chord.Notes),
				Extra:          chroma.Difference(input, template).Select(roots),
				KeyMemberships: KeyMemberships(root, quality),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	return matches
}

// ChordIdentificationParams contains parameters for chord identification
type ChordIdentificationParams struct {
	MinConfidence         float64 `json:"min_confidence"`          // Candidates below are dropped
	MaxCandidates         int     `json:"max_candidates"`          // 0 keeps all
	EnableDetailedMetrics bool    `json:"enable_detailed_metrics"` // Clarity, ambiguity, entropy
}

// ChordIdentificationResult contains the output of a chord identification run
type ChordIdentificationResult struct {
	Candidates []ChordMatch  `json:"candidates"`
	Input      []pitch.Pitch `json:"input"` // unique pitch classes
	Best       *ChordMatch   `json:"best,omitempty"`

	// Quality metrics
	Clarity   float64 `json:"clarity"`   // best minus runner-up confidence
	Ambiguity float64 `json:"ambiguity"` // spread of reported confidences
	Entropy   float64 `json:"entropy"`   // of the input pitch-class profile, bits
	Fit       float64 `json:"fit"`       // cosine similarity of input and best chord

	ProcessTime float64 `json:"process_time"` // ms
}

// ChordIdentifier applies a reporting threshold and truncation to IdentifyChords.
type ChordIdentifier struct {
	params ChordIdentificationParams
	logger logging.Logger
}

// NewChordIdentifier creates an identifier with default parameters
func NewChordIdentifier() *ChordIdentifier {
	return NewChordIdentifierWithParams(DefaultChordIdentificationParams())
}

func DefaultChordIdentificationParams() ChordIdentificationParams {
	cfg := config.DefaultIdentifierConfig()
	return ChordIdentificationParams{
		MinConfidence:         cfg.MinConfidence,
		MaxCandidates:         cfg.MaxCandidates,
		EnableDetailedMetrics: cfg.EnableDetailedMetrics,
	}
}

// NewChordIdentifierWithParams creates an identifier with custom parameters
func NewChordIdentifierWithParams(params ChordIdentificationParams) *ChordIdentifier {
	return &ChordIdentifier{
		params: params,
		logger: logging.WithFields(logging.Fields{
			"component": "chord_identifier",
		}),
	}
}

// NewChordIdentifierFromConfig validates cfg before building the identifier.
func NewChordIdentifierFromConfig(cfg config.IdentifierConfig) (*ChordIdentifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("chord identifier: %w", err)
	}
	return NewChordIdentifierWithParams(ChordIdentificationParams{
		MinConfidence:         cfg.MinConfidence,
		MaxCandidates:         cfg.MaxCandidates,
		EnableDetailedMetrics: cfg.EnableDetailedMetrics,
	}), nil
}

// Identify runs IdentifyChords and keeps the candidates at or above
// MinConfidence, at most MaxCandidates of them.
func (ci *ChordIdentifier) Identify(pitches []pitch.Pitch) *ChordIdentificationResult {
	startTime := time.Now()

	all := IdentifyChords(pitches)
	candidates := make([]ChordMatch, 0, len(all))
	for _, m := range all {
		if m.Confidence >= ci.params.MinConfidence {
			candidates = append(candidates, m)
		}
	}
	if ci.params.MaxCandidates > 0 && len(candidates) > ci.params.MaxCandidates {
		candidates = candidates[:ci.params.MaxCandidates]
	}

	result := &ChordIdentificationResult{
		Candidates: candidates,
		Input:      UniquePitchClasses(pitches),
	}
	if len(candidates) > 0 {
		result.Best = &candidates[0]
	}

	if ci.params.EnableDetailedMetrics {
		ci.calculateQualityMetrics(result)
	}
	result.ProcessTime = float64(time.Since(startTime).Nanoseconds()) / 1e6

	fields := logging.Fields{
		"input":      joinNames(result.Input),
		"scored":     len(all),
		"candidates": len(candidates),
	}
	if result.Best != nil {
		fields["best"] = result.Best.Chord.DisplayName
		fields["confidence"] = result.Best.Confidence
	}
	ci.logger.Debug("Identified chords", fields)

	return result
}

func (ci *ChordIdentifier) calculateQualityMetrics(result *ChordIdentificationResult) {
	result.Entropy = chroma.FromPitches(result.Input).Entropy()

	if len(result.Candidates) == 0 {
		return
	}

	confidences := make([]float64, len(result.Candidates))
	for i, c := range result.Candidates {
		confidences[i] = c.Confidence
	}

	// How much the best candidate stands out
	if len(confidences) > 1 {
		result.Clarity = confidences[0] - confidences[1]
	} else {
		result.Clarity = confidences[0]
	}

	result.Ambiguity = common.StandardDeviation(confidences)

	best := result.Best.Chord
	template := chroma.Template(best.Root.Index(), best.Quality.PitchClassOffsets())
	result.Fit = chroma.Similarity(chroma.FromPitches(result.Input), template)
}

func (ci *ChordIdentifier) GetParameters() ChordIdentificationParams {
	return ci.params
}

func (ci *ChordIdentifier) SetParameters(params ChordIdentificationParams) {
	ci.params = params
}

package fretboard

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
	"github.com/RyanBlaney/sonido-teoria/config"
	"github.com/RyanBlaney/sonido-teoria/logging"
)

var (
	ErrStringRange = errors.New("string index out of range")
	ErrFretRange   = errors.New("fret out of range")
	ErrTuning      = errors.New("invalid tuning")
)

// DefaultMaxFret is used when no config is given.
const DefaultMaxFret = 22

// Position is one string/fret coordinate tagged against a chord or scale.
// String is 1-based with 1 the highest-pitched string. Degree is 0 when the
// note has no degree label.
type Position struct {
	String   int
	Fret     int
	Note     pitch.Pitch
	IsRoot   bool
	IsMember bool
	Degree   int
}

// chordDegrees labels chord members by semitone distance from the root.
var chordDegrees = map[int]int{
	0: 1, 2: 2, 3: 3, 4: 3, 5: 4, 7: 5, 9: 6, 10: 7, 11: 7,
}

// Selection is the chord or scale positions are tagged against.
type Selection struct {
	name    string
	root    pitch.Pitch
	members []pitch.Pitch
	degree  func(p pitch.Pitch) int
}

// ForChord tags chord members with their interval-derived degree.
func ForChord(c harmony.Chord) Selection {
	return Selection{
		name:    c.DisplayName,
		root:    c.Root,
		members: c.Notes,
		degree: func(p pitch.Pitch) int {
			return chordDegrees[pitch.Interval(c.Root, p)]
		},
	}
}

// ForScale tags scale members with their 1-based scale position.
func ForScale(s harmony.Scale) Selection {
	return Selection{
		name:    s.Name(),
		root:    s.Root,
		members: s.Notes[:],
		degree: func(p pitch.Pitch) int {
			if d, ok := scale.Degree(s.Notes, p); ok {
				return d + 1
			}
			return 0
		},
	}
}

func (s Selection) contains(p pitch.Pitch) bool {
	for _, m := range s.members {
		if pitch.SameClass(m, p) {
			return true
		}
	}
	return false
}

// Fretboard maps string/fret coordinates of a tuned neck to pitches.
type Fretboard struct {
	tuning    Tuning
	maxFret   int
	fretStart int // default window for PositionsInWindow
	fretEnd   int
	logger    logging.Logger
}

// New creates a fretboard with frets 0..maxFret. The default window covers
// the whole neck.
func New(tuning Tuning, maxFret int) (*Fretboard, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if maxFret < 0 {
		return nil, fmt.Errorf("max fret %d: %w", maxFret, ErrFretRange)
	}
	return &Fretboard{
		tuning:  append(Tuning(nil), tuning...),
		maxFret: maxFret,
		fretEnd: maxFret,
		logger: logging.WithFields(logging.Fields{
			"component": "fretboard",
			"strings":   len(tuning),
		}),
	}, nil
}

// NewStandard is a standard-tuned guitar with DefaultMaxFret frets.
func NewStandard() *Fretboard {
	fb, err := New(StandardTuning(), DefaultMaxFret)
	if err != nil {
		panic(err)
	}
	return fb
}

// NewFromConfig builds the fretboard described by cfg, with its fret window
// as the default window.
func NewFromConfig(cfg config.FretboardConfig) (*Fretboard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tuning, err := TuningFromStrings(cfg.Tuning)
	if err != nil {
		return nil, err
	}
	fb, err := New(tuning, cfg.MaxFret)
	if err != nil {
		return nil, err
	}
	if err := fb.SetWindow(cfg.FretStart, cfg.FretEnd); err != nil {
		return nil, err
	}
	return fb, nil
}

func (f *Fretboard) Tuning() Tuning { return append(Tuning(nil), f.tuning...) }

func (f *Fretboard) Strings() int { return len(f.tuning) }

func (f *Fretboard) MaxFret() int { return f.maxFret }

// Window returns the default fret window used by PositionsInWindow.
func (f *Fretboard) Window() (fretStart, fretEnd int) { return f.fretStart, f.fretEnd }

// SetWindow changes the default fret window.
func (f *Fretboard) SetWindow(fretStart, fretEnd int) error {
	if err := f.checkWindow(fretStart, fretEnd); err != nil {
		return err
	}
	f.fretStart, f.fretEnd = fretStart, fretEnd
	return nil
}

func (f *Fretboard) checkWindow(fretStart, fretEnd int) error {
	if fretStart < 0 || fretEnd > f.maxFret || fretStart > fretEnd {
		return fmt.Errorf("fret window %d..%d not in 0..%d: %w", fretStart, fretEnd, f.maxFret, ErrFretRange)
	}
	return nil
}

// NoteAt returns the sounding pitch, with octave, at a 0-based string index
// and fret. Notes are spelled with sharps; display spelling is left to the
// caller. The octave follows the sounding pitch, so a B#3 open string
// sounds C4 at fret 0.
func (f *Fretboard) NoteAt(stringIndex, fret int) (pitch.Pitch, error) {
	if stringIndex < 0 || stringIndex >= len(f.tuning) {
		return pitch.Pitch{}, fmt.Errorf("string index %d not in 0..%d: %w", stringIndex, len(f.tuning)-1, ErrStringRange)
	}
	if fret < 0 || fret > f.maxFret {
		return pitch.Pitch{}, fmt.Errorf("fret %d not in 0..%d: %w", fret, f.maxFret, ErrFretRange)
	}

	open, err := f.tuning[stringIndex].MIDI()
	if err != nil {
		return pitch.Pitch{}, err
	}
	note, err := pitch.FromMIDI(open+fret, false)
	if err != nil {
		return pitch.Pitch{}, fmt.Errorf("string %d fret %d: %w", stringIndex+1, fret, err)
	}
	return note, nil
}

// Positions computes every string × fret coordinate in fretStart..fretEnd and
// tags it against sel by pitch class. Results are ordered by string, then fret.
func (f *Fretboard) Positions(sel Selection, fretStart, fretEnd int) ([]Position, error) {
	if err := f.checkWindow(fretStart, fretEnd); err != nil {
		return nil, err
	}

	positions := make([]Position, 0, len(f.tuning)*(fretEnd-fretStart+1))
	members := 0
	for s := range f.tuning {
		for fret := fretStart; fret <= fretEnd; fret++ {
			note, err := f.NoteAt(s, fret)
			if err != nil {
				return nil, err
			}

			pos := Position{String: s + 1, Fret: fret, Note: note}
			if sel.contains(note) {
				pos.IsMember = true
				pos.IsRoot = pitch.SameClass(note, sel.root)
				pos.Degree = sel.degree(note)
				members++
			}
			positions = append(positions, pos)
		}
	}

	f.logger.Debug("Computed fretboard positions", logging.Fields{
		"selection":  sel.name,
		"fret_start": fretStart,
		"fret_end":   fretEnd,
		"positions":  len(positions),
		"members":    members,
	})

	return positions, nil
}

// PositionsInWindow is Positions over the default window.
func (f *Fretboard) PositionsInWindow(sel Selection) ([]Position, error) {
	return f.Positions(sel, f.fretStart, f.fretEnd)
}

// Locate returns every coordinate that sounds p, which must carry an octave.
func (f *Fretboard) Locate(p pitch.Pitch) ([]Position, error) {
	target, err := p.MIDI()
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", p, err)
	}

	var found []Position
	for s, open := range f.tuning {
		base, err := open.MIDI()
		if err != nil {
			return nil, err
		}
		fret := target - base
		if fret < 0 || fret > f.maxFret {
			continue
		}
		note, err := f.NoteAt(s, fret)
		if err != nil {
			return nil, err
		}
		found = append(found, Position{String: s + 1, Fret: fret, Note: note})
	}
	return found, nil
}

// Pitches flattens a selection of positions into their sounding pitches.
func Pitches(positions []Position) []pitch.Pitch {
	out := make([]pitch.Pitch, len(positions))
	for i, pos := range positions {
		out[i] = pos.Note
	}
	return out
}

// Members keeps the positions tagged as chord or scale members.
func Members(positions []Position) []Position {
	var out []Position
	for _, pos := range positions {
		if pos.IsMember {
			out = append(out, pos)
		}
	}
	return out
}

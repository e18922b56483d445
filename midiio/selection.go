package midiio

import (
	"sort"
	"sync"

	"gitlab.com/gomidi/midi/v2"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
	"github.com/RyanBlaney/sonido-teoria/logging"
)

// Selection tracks the keys currently held on a MIDI input. Listener
// callbacks may run on another goroutine, so access is serialised.
type Selection struct {
	mu          sync.Mutex
	held        map[uint8]uint8 // key -> velocity
	preferFlats bool
	logger      logging.Logger
}

func NewSelection(preferFlats bool) *Selection {
	return &Selection{
		held:        make(map[uint8]uint8),
		preferFlats: preferFlats,
		logger: logging.WithFields(logging.Fields{
			"component": "midi_selection",
		}),
	}
}

// Handle applies a note start or end. It reports whether msg changed the
// held set.
func (s *Selection) Handle(msg midi.Message) bool {
	var ch, key, vel uint8

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		_, had := s.held[key]
		s.held[key] = vel
		return !had
	case msg.GetNoteEnd(&ch, &key):
		if _, had := s.held[key]; !had {
			return false
		}
		delete(s.held, key)
		return true
	}

	s.logger.Debug("Ignoring midi message", logging.Fields{"msg": msg.String()})
	return false
}

// Pitches returns the held keys as pitches, lowest first.
func (s *Selection) Pitches() []pitch.Pitch {
	s.mu.Lock()
	keys := make([]int, 0, len(s.held))
	for k := range s.held {
		keys = append(keys, int(k))
	}
	s.mu.Unlock()

	sort.Ints(keys)
	pitches := make([]pitch.Pitch, 0, len(keys))
	for _, k := range keys {
		p, err := pitch.FromMIDI(k, s.preferFlats)
		if err != nil {
			continue
		}
		pitches = append(pitches, p)
	}
	return pitches
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}

// Reset releases every held key.
func (s *Selection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.held)
}

package midiio

import (
	"errors"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"

	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
)

var ErrKeyRange = errors.New("pitch outside the midi key range")

// Key converts an absolute pitch to a MIDI key number.
func Key(p pitch.Pitch) (uint8, error) {
	n, err := p.MIDI()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%s is midi %d: %w", p, n, ErrKeyRange)
	}
	return uint8(n), nil
}

// NoteOnMessages sounds every pitch at once on channel.
func NoteOnMessages(channel uint8, pitches []pitch.Pitch, velocity uint8) ([]midi.Message, error) {
	msgs := make([]midi.Message, 0, len(pitches))
	for _, p := range pitches {
		key, err := Key(p)
		if err != nil {
			return nil, fmt.Errorf("note on: %w", err)
		}
		msgs = append(msgs, midi.NoteOn(channel, key, velocity))
	}
	return msgs, nil
}

// NoteOffMessages releases every pitch on channel.
func NoteOffMessages(channel uint8, pitches []pitch.Pitch) ([]midi.Message, error) {
	msgs := make([]midi.Message, 0, len(pitches))
	for _, p := range pitches {
		key, err := Key(p)
		if err != nil {
			return nil, fmt.Errorf("note off: %w", err)
		}
		msgs = append(msgs, midi.NoteOff(channel, key))
	}
	return msgs, nil
}

// PitchesFromMessages collects the pitches of the note-on messages in msgs,
// in message order. Other messages are skipped.
func PitchesFromMessages(msgs []midi.Message, preferFlats bool) ([]pitch.Pitch, error) {
	var pitches []pitch.Pitch
	for _, msg := range msgs {
		var ch, key, vel uint8
		if !msg.GetNoteStart(&ch, &key, &vel) {
			continue
		}
		p, err := pitch.FromMIDI(int(key), preferFlats)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

// VoiceChord places the chord in close position: the root at octave, each
// following member the nearest pitch above the one before. Member spellings
// are kept.
func VoiceChord(c harmony.Chord, octave int) ([]pitch.Pitch, error) {
	voiced := make([]pitch.Pitch, 0, len(c.Notes))
	previous := -1
	for _, note := range c.Notes {
		target := (octave+1)*12 + note.Index()
		for target <= previous {
			target += 12
		}

		p, err := atMIDI(note, target)
		if err != nil {
			return nil, fmt.Errorf("voice %s: %w", c.DisplayName, err)
		}
		voiced = append(voiced, p)
		previous = target
	}
	return voiced, nil
}

// atMIDI gives note's spelling the octave that sounds target.
func atMIDI(note pitch.Pitch, target int) (pitch.Pitch, error) {
	if target < 0 || target > 127 {
		return pitch.Pitch{}, fmt.Errorf("%s at midi %d: %w", note.Name(), target, ErrKeyRange)
	}
	p := note.WithOctave(target/12 - 1)
	n, err := p.MIDI()
	if err != nil {
		return pitch.Pitch{}, err
	}
	return note.WithOctave(target/12 - 1 + (target-n)/12), nil
}

// SortAscending orders absolute pitches from lowest to highest sounding.
// Pitches without an octave sort first.
func SortAscending(pitches []pitch.Pitch) []pitch.Pitch {
	sorted := append([]pitch.Pitch(nil), pitches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, errA := sorted[i].MIDI()
		b, errB := sorted[j].MIDI()
		if errA != nil || errB != nil {
			return errA != nil && errB == nil
		}
		return a < b
	})
	return sorted
}

// AbsoluteNames renders pitches as "C#4" style strings.
func AbsoluteNames(pitches []pitch.Pitch) []string {
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.String()
	}
	return names
}

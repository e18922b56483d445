package harmony

import (
	"fmt"
	"strings"
)

// Quality represents the quality/type of a chord
type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
	Major7
	Minor7
	Dominant7
	HalfDiminished7
	Diminished7
	Sus2
	Sus4
	Add9
	Major9
	Minor9
)

type qualityInfo struct {
	name      string
	suffix    string
	intervals []int // semitones above the root; 14 is the ninth
}

var qualities = map[Quality]qualityInfo{
	Major:           {"major", "", []int{0, 4, 7}},
	Minor:           {"minor", "m", []int{0, 3, 7}},
	Diminished:      {"diminished", "°", []int{0, 3, 6}},
	Augmented:       {"augmented", "+", []int{0, 4, 8}},
	Major7:          {"major7", "maj7", []int{0, 4, 7, 11}},
	Minor7:          {"minor7", "m7", []int{0, 3, 7, 10}},
	Dominant7:       {"dominant7", "7", []int{0, 4, 7, 10}},
	HalfDiminished7: {"half-diminished7", "m7♭5", []int{0, 3, 6, 10}},
	Diminished7:     {"diminished7", "°7", []int{0, 3, 6, 9}},
	Sus2:            {"sus2", "sus2", []int{0, 2, 7}},
	Sus4:            {"sus4", "sus4", []int{0, 5, 7}},
	Add9:            {"add9", "add9", []int{0, 4, 7, 14}},
	Major9:          {"major9", "maj9", []int{0, 4, 7, 11, 14}},
	Minor9:          {"minor9", "m9", []int{0, 3, 7, 10, 14}},
}

// Qualities returns every supported quality: triads, sevenths, then the
// suspended and added-tone chords. Chord identification iterates in this order.
func Qualities() []Quality {
	return []Quality{
		Major, Minor, Diminished, Augmented,
		Major7, Minor7, Dominant7, HalfDiminished7, Diminished7,
		Sus2, Sus4, Add9, Major9, Minor9,
	}
}

func (q Quality) info() qualityInfo {
	info, ok := qualities[q]
	if !ok {
		panic(fmt.Sprintf("harmony: unknown chord quality %d", int(q)))
	}
	return info
}

// String returns the human-readable name for a chord quality
func (q Quality) String() string {
	if info, ok := qualities[q]; ok {
		return info.name
	}
	return "unknown"
}

// Suffix is appended to the root spelling to form a chord symbol.
func (q Quality) Suffix() string { return q.info().suffix }

// Intervals returns the semitone offsets above the root, including
// compound intervals (the ninth is 14).
func (q Quality) Intervals() []int {
	src := q.info().intervals
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// PitchClassOffsets returns Intervals reduced modulo 12.
func (q Quality) PitchClassOffsets() []int {
	out := q.Intervals()
	for i := range out {
		out[i] %= 12
	}
	return out
}

// IsMinorFamily covers qualities written with a lowercase numeral.
func (q Quality) IsMinorFamily() bool {
	switch q {
	case Minor, Minor7, Minor9, HalfDiminished7:
		return true
	}
	return false
}

// IsDiminishedFamily covers qualities written with a lowercase numeral and "°".
func (q Quality) IsDiminishedFamily() bool {
	return q == Diminished || q == Diminished7
}

// ParseQuality accepts a quality name or chord-symbol suffix ("m7", "dominant7").
func ParseQuality(s string) (Quality, error) {
	needle := strings.TrimSpace(s)
	for _, q := range Qualities() {
		info := qualities[q]
		if needle == info.suffix || strings.EqualFold(needle, info.name) {
			return q, nil
		}
	}
	switch needle {
	case "maj", "M":
		return Major, nil
	case "min", "-":
		return Minor, nil
	case "dim":
		return Diminished, nil
	case "aug":
		return Augmented, nil
	case "dim7":
		return Diminished7, nil
	case "m7b5", "ø7":
		return HalfDiminished7, nil
	}
	return 0, fmt.Errorf("unknown chord quality %q", s)
}

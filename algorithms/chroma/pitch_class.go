package chroma

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-teoria/algorithms/pitch"
)

// Bins is the number of pitch classes, C = 0 through B = 11.
const Bins = 12

// Vector is a 12-bin pitch-class profile. Binary vectors hold 1 for every
// sounding class; weighted vectors hold arbitrary non-negative energy.
type Vector []float64

// New returns an empty vector.
func New() Vector {
	return make(Vector, Bins)
}

// FromPitches marks the pitch class of every pitch, ignoring octave and
// spelling. Repeated classes are counted once.
func FromPitches(pitches []pitch.Pitch) Vector {
	v := New()
	for _, p := range pitches {
		v[p.Index()] = 1
	}
	return v
}

// FromIndices marks each index reduced modulo 12.
func FromIndices(indices []int) Vector {
	v := New()
	for _, i := range indices {
		v[((i%Bins)+Bins)%Bins] = 1
	}
	return v
}

// Template is the binary pattern of offsets rotated onto root.
func Template(root int, offsets []int) Vector {
	return FromIndices(offsets).Rotate(root)
}

// Rotate shifts every bin up by semitones.
func (v Vector) Rotate(semitones int) Vector {
	out := New()
	for i, val := range v {
		out[((i+semitones)%Bins+Bins)%Bins] = val
	}
	return out
}

// Count is the number of marked classes of a binary vector.
func (v Vector) Count() int {
	return int(math.Round(floats.Sum(v)))
}

// Overlap counts the classes marked in both binary vectors.
func Overlap(a, b Vector) int {
	return int(math.Round(floats.Dot(a, b)))
}

// Difference marks the classes set in a and not in b.
func Difference(a, b Vector) Vector {
	out := New()
	for i := range out {
		if a[i] > 0 && b[i] == 0 {
			out[i] = 1
		}
	}
	return out
}

// Classes lists the marked bins in ascending order.
func (v Vector) Classes() []int {
	var classes []int
	for i, val := range v {
		if val > 0 {
			classes = append(classes, i)
		}
	}
	return classes
}

func (v Vector) Has(index int) bool {
	return v[((index%Bins)+Bins)%Bins] > 0
}

// Select keeps the pitches whose class is marked in v, in order.
func (v Vector) Select(pitches []pitch.Pitch) []pitch.Pitch {
	out := []pitch.Pitch{}
	for _, p := range pitches {
		if v.Has(p.Index()) {
			out = append(out, p)
		}
	}
	return out
}

// Similarity is the cosine similarity of two profiles, 0 when either is empty.
func Similarity(a, b Vector) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// Entropy of the profile normalised to a distribution, in bits. A single
// class gives 0 and all twelve give log2(12).
func (v Vector) Entropy() float64 {
	total := floats.Sum(v)
	if total <= 0 {
		return 0
	}
	p := make([]float64, len(v))
	floats.ScaleTo(p, 1/total, v)
	return stat.Entropy(p) / math.Ln2
}

// Package scale builds seven-note scales from a root and an interval formula.
//
// Spelling follows a single rule keyed off the root: roots in the flat-key
// set (F, Bb, Eb, Ab, Db, Gb, Cb) or roots carrying a flat produce flat
// spellings, everything else produces sharps. Minor kinds additionally take
// flats when the relative major is a flat key, so D minor has Bb. The rule
// ignores conventional spelling of non-root members: G harmonic minor spells
// its raised seventh Gb, not F#.
package scale

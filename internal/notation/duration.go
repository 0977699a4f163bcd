// Package notation implements the Quantizer and MIDI Emitter: snapping
// detected note durations to a rhythmic grid and writing the result out
// as a standard MIDI file.
package notation

import "math"

// Type is a rhythmic symbol a quantized note duration classifies into.
type Type int

const (
	Semidemiquaver Type = iota
	Semiquaver
	DottedSemiquaver
	Quaver
	DottedQuaver
	Crotchet
	DottedCrotchet
	Minim
	DottedMinim
	Semibreve
)

// crotchetMultiple is each symbol's duration expressed as a multiple of
// one crotchet (quarter note).
var crotchetMultiple = map[Type]float64{
	Semidemiquaver:   0.125,
	Semiquaver:       0.25,
	DottedSemiquaver: 0.375,
	Quaver:           0.5,
	DottedQuaver:     0.75,
	Crotchet:         1.0,
	DottedCrotchet:   1.5,
	Minim:            2.0,
	DottedMinim:      3.0,
	Semibreve:        4.0,
}

var orderedTypes = []Type{
	Semidemiquaver, Semiquaver, DottedSemiquaver, Quaver, DottedQuaver,
	Crotchet, DottedCrotchet, Minim, DottedMinim, Semibreve,
}

const classifyEpsilon = 1e-6

// classify returns the rhythmic symbol whose duration in seconds equals
// noteSec. If no exact match exists, it recursively retries with
// noteSec-minPerSec, dropping the remainder — a known lossiness carried
// over from the reference algorithm rather than redistributing it.
func classify(noteSec, crotchetSec, minPerSec float64) Type {
	for _, t := range orderedTypes {
		if math.Abs(noteSec-crotchetMultiple[t]*crotchetSec) < classifyEpsilon {
			return t
		}
	}
	remainder := noteSec - minPerSec
	if remainder <= classifyEpsilon {
		return Semidemiquaver
	}
	return classify(remainder, crotchetSec, minPerSec)
}

// Seconds returns a symbol's duration given the tempo's crotchet length.
func (t Type) Seconds(crotchetSec float64) float64 {
	return crotchetMultiple[t] * crotchetSec
}

// String names the rhythmic symbol.
func (t Type) String() string {
	switch t {
	case Semidemiquaver:
		return "semidemiquaver"
	case Semiquaver:
		return "semiquaver"
	case DottedSemiquaver:
		return "dotted semiquaver"
	case Quaver:
		return "quaver"
	case DottedQuaver:
		return "dotted quaver"
	case Crotchet:
		return "crotchet"
	case DottedCrotchet:
		return "dotted crotchet"
	case Minim:
		return "minim"
	case DottedMinim:
		return "dotted minim"
	case Semibreve:
		return "semibreve"
	default:
		return "unknown"
	}
}

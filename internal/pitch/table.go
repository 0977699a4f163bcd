// Package pitch implements the reference pitch table and the Harmonic
// Product Spectrum fundamental-frequency estimator.
package pitch

import (
	"math"
	"strconv"
)

// Note is one entry in the reference pitch table.
type Note struct {
	Name      string
	MIDI      int
	Frequency float64
}

// Table is the static C3..C6 reference table (37 entries, MIDI 48..84
// inclusive), strictly increasing by frequency.
type Table struct {
	Notes []Note
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

const (
	startMIDI = 48 // C3
	endMIDI   = 84 // C6
)

// NewTable builds the C3..C6 semitone table with equal-tempered
// frequencies referenced to A4 (MIDI 69) = 440 Hz.
func NewTable() *Table {
	notes := make([]Note, 0, endMIDI-startMIDI+1)
	for m := startMIDI; m <= endMIDI; m++ {
		octave := m/12 - 1
		name := noteNames[m%12] + strconv.Itoa(octave)
		freq := 440 * math.Pow(2, float64(m-69)/12)
		notes = append(notes, Note{Name: name, MIDI: m, Frequency: freq})
	}
	return &Table{Notes: notes}
}

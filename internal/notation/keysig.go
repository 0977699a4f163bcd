package notation

import "strings"

// majorSharps maps each major key name to its MIDI key-signature sharps
// (positive) or flats (negative) count.
var majorSharps = map[string]int8{
	"C major": 0, "G major": 1, "D major": 2, "A major": 3, "E major": 4,
	"B major": 5, "F# major": 6, "C# major": 7,
	"F major": -1, "Bb major": -2, "Eb major": -3, "Ab major": -4,
	"Db major": -5, "Gb major": -6, "Cb major": -7,
}

// relativeMajor maps each minor key name to the name of its relative
// major. Minor-key inputs are deliberately collapsed to their relative
// major's accidentals, since a MIDI key signature meta-event's mode byte
// is not distinguished downstream by this emitter — see the doc comment
// on keySigMetaEvent.
var relativeMajor = map[string]string{
	"A minor": "C major", "E minor": "G major", "B minor": "D major",
	"F# minor": "A major", "C# minor": "E major", "G# minor": "B major",
	"D# minor": "F# major", "A# minor": "C# major",
	"D minor": "F major", "G minor": "Bb major", "C minor": "Eb major",
	"F minor": "Ab major", "Bb minor": "Db major", "Eb minor": "Gb major",
	"Ab minor": "Cb major",
}

// KeySignatureSharps returns the MIDI key-signature sharps/flats count
// for the given key name. Minor keys resolve through their relative
// major, so e.g. "A minor" and "C major" return the same value.
func KeySignatureSharps(key string) int8 {
	key = strings.TrimSpace(key)
	if major, ok := relativeMajor[key]; ok {
		key = major
	}
	if sf, ok := majorSharps[key]; ok {
		return sf
	}
	return 0
}

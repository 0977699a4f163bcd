package notation

import (
	"bytes"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/notescribe/notescribed/internal/config"
)

const (
	ticksPerQuarter = 480
	channel         = 0
	velocity        = 64 // "half" velocity for every emitted note

	// programElectricGrandPiano is GM patch 3 (Electric Grand Piano),
	// zero-indexed as the MIDI wire format requires.
	programElectricGrandPiano = 2
)

// tempoMetaEvent builds the 0xFF 0x51 0x03 tempo meta-event for the
// given BPM, expressed as microseconds per quarter note.
func tempoMetaEvent(bpm int) smf.Message {
	microsPerBeat := uint32(60000000 / bpm)
	return smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsPerBeat >> 16),
		byte(microsPerBeat >> 8),
		byte(microsPerBeat),
	})
}

// timeSigMetaEvent builds the 0xFF 0x58 0x04 time-signature meta-event.
func timeSigMetaEvent(beatsPerBar int, denom config.TimeDenom) smf.Message {
	return smf.Message([]byte{
		0xFF, 0x58, 0x04,
		byte(beatsPerBar),
		TimeSigDenominator(denom),
		0x18, // MIDI clocks per metronome click
		0x08, // 32nd-notes per quarter note
	})
}

// keySigMetaEvent builds the 0xFF 0x59 0x02 key-signature meta-event.
// The mode byte is always 0 (major): minor keys were already collapsed
// to their relative major's accidentals in KeySignatureSharps, so the
// emitted event is byte-identical to that major key's.
func keySigMetaEvent(key string) smf.Message {
	sf := KeySignatureSharps(key)
	return smf.Message([]byte{0xFF, 0x59, 0x02, byte(sf), 0x00})
}

// WriteMIDI emits the quantized note sequence to a standard MIDI file:
// tempo, time signature, and key signature meta-events, a program change
// to an electric grand piano, then the note_on/note_off pairs in order
// with no rests between them.
func WriteMIDI(path string, notes []QuantizedNote, music config.MusicConfig) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track
	track.Add(0, tempoMetaEvent(music.TempoBPM))
	track.Add(0, timeSigMetaEvent(music.BeatsPerBar, music.TimeDenom))
	track.Add(0, keySigMetaEvent(music.KeySignature))
	track.Add(0, midi.ProgramChange(channel, programElectricGrandPiano))

	crotchetSec := 60.0 / float64(music.TempoBPM)
	for _, note := range notes {
		durationTicks := uint32(note.Seconds / crotchetSec * float64(ticksPerQuarter))
		if durationTicks == 0 {
			durationTicks = 1
		}
		track.Add(0, midi.NoteOn(channel, uint8(note.MIDINote), velocity))
		track.Add(durationTicks, midi.NoteOff(channel, uint8(note.MIDINote)))
	}

	track.Close(0)
	if err := s.Add(track); err != nil {
		return fmt.Errorf("notation: add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return fmt.Errorf("notation: encode midi: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("notation: write midi file: %w", err)
	}
	return nil
}

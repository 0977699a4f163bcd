package notation

import (
	"testing"

	"github.com/notescribe/notescribed/internal/config"
	"github.com/notescribe/notescribed/internal/segment"
)

func testMusicConfig() config.MusicConfig {
	return config.MusicConfig{
		TempoBPM:     120,
		BeatsPerBar:  4,
		TimeDenom:    config.TimeDenomCrotchet,
		KeySignature: "C major",
		Quantization: config.QuantSixteenth,
		OutputPath:   "out.mid",
	}
}

func TestQuantizeSkipsSilence(t *testing.T) {
	events := []segment.Event{
		{PitchName: "C4", MIDINote: 60, LengthInFrames: 8},
		{PitchName: segment.SilenceName, MIDINote: 0, LengthInFrames: 4},
	}
	// frameTime chosen so 8 frames = 1 crotchet at 120 BPM (0.5s); the
	// 4-frame silence folds into the note, giving 12 frames = 0.75s.
	frameTime := 0.0625
	got := Quantize(events, testMusicConfig(), frameTime)
	if len(got) != 1 {
		t.Fatalf("Quantize returned %d notes, want 1", len(got))
	}
	if got[0].MIDINote != 60 {
		t.Errorf("MIDINote = %d, want 60", got[0].MIDINote)
	}
	if got[0].Type != DottedCrotchet {
		t.Errorf("Type = %v, want DottedCrotchet", got[0].Type)
	}
}

func TestQuantizeFoldsTrailingSilenceIntoNote(t *testing.T) {
	events := []segment.Event{
		{PitchName: "E4", MIDINote: 64, LengthInFrames: 6},
		{PitchName: segment.SilenceName, MIDINote: 0, LengthInFrames: 2},
		{PitchName: "G4", MIDINote: 67, LengthInFrames: 4},
	}
	frameTime := 0.0625
	got := Quantize(events, testMusicConfig(), frameTime)
	if len(got) != 2 {
		t.Fatalf("Quantize returned %d notes, want 2", len(got))
	}
	// E4 note absorbs the 2-frame silence: (6+2)*0.0625 = 0.5s = 1 crotchet.
	if got[0].Seconds != 0.5 {
		t.Errorf("first note Seconds = %v, want 0.5", got[0].Seconds)
	}
	if got[1].MIDINote != 67 {
		t.Errorf("second note MIDINote = %d, want 67", got[1].MIDINote)
	}
}

func TestQuantizeNeverZeroDuration(t *testing.T) {
	events := []segment.Event{
		{PitchName: "C4", MIDINote: 60, LengthInFrames: 0},
	}
	got := Quantize(events, testMusicConfig(), 0.0625)
	if len(got) != 1 {
		t.Fatalf("Quantize returned %d notes, want 1", len(got))
	}
	if got[0].Seconds <= 0 {
		t.Errorf("Seconds = %v, want > 0", got[0].Seconds)
	}
}

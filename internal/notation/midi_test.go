package notation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notescribe/notescribed/internal/config"
)

func TestTempoMetaEventBytes(t *testing.T) {
	msg := tempoMetaEvent(120)
	// 120 BPM -> 500000 microseconds per beat -> 0x07 0xA1 0x20
	want := []byte{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}
	if string(msg) != string(want) {
		t.Errorf("tempoMetaEvent(120) = % X, want % X", []byte(msg), want)
	}
}

func TestTimeSigMetaEventBytes(t *testing.T) {
	msg := timeSigMetaEvent(4, config.TimeDenomCrotchet)
	want := []byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}
	if string(msg) != string(want) {
		t.Errorf("timeSigMetaEvent(4, Crotchet) = % X, want % X", []byte(msg), want)
	}
}

func TestKeySigMetaEventBytes(t *testing.T) {
	msg := keySigMetaEvent("A minor")
	want := []byte{0xFF, 0x59, 0x02, 0x00, 0x00}
	if string(msg) != string(want) {
		t.Errorf("keySigMetaEvent(A minor) = % X, want % X", []byte(msg), want)
	}
}

func TestWriteMIDIProducesNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mid")

	notes := []QuantizedNote{
		{MIDINote: 60, Type: Crotchet, Seconds: 0.5},
		{MIDINote: 64, Type: Quaver, Seconds: 0.25},
	}
	music := testMusicConfig()

	if err := WriteMIDI(path, notes, music); err != nil {
		t.Fatalf("WriteMIDI returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output MIDI file is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if string(data[:4]) != "MThd" {
		t.Errorf("output file missing MThd header, got %q", data[:4])
	}
}

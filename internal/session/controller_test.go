package session

import (
	"errors"
	"testing"

	"github.com/notescribe/notescribed/internal/config"
)

func testMusicConfig(output string) config.MusicConfig {
	return config.MusicConfig{
		TempoBPM:     120,
		BeatsPerBar:  4,
		TimeDenom:    config.TimeDenomCrotchet,
		KeySignature: "C major",
		Quantization: config.QuantSixteenth,
		OutputPath:   output,
	}
}

func TestStartUploadRejectsIncompleteConfig(t *testing.T) {
	c := NewController(config.DefaultAudioConfig())
	music := testMusicConfig("") // missing output path
	err := c.StartUpload(music, "nonexistent.wav")
	if !errors.Is(err, ErrConfigIncomplete) {
		t.Fatalf("StartUpload error = %v, want ErrConfigIncomplete", err)
	}
	if c.IsRunning() {
		t.Error("controller should not be running after a rejected start")
	}
}

func TestStartLiveRejectsIncompleteConfig(t *testing.T) {
	c := NewController(config.DefaultAudioConfig())
	music := testMusicConfig("out")
	music.TempoBPM = 0 // invalid
	err := c.StartLive(music)
	if !errors.Is(err, ErrConfigIncomplete) {
		t.Fatalf("StartLive error = %v, want ErrConfigIncomplete", err)
	}
}

func TestFrameTimeSecondsUsesActualAnalysisFrameCount(t *testing.T) {
	// 5 raw frames of windowSize 8 produce 2*5-1=9 analysis frames, not
	// a naive windowSize/sampleRate figure.
	sampleRate := 16
	windowSize := 8
	rawFrames := 5
	analysisFrames := 2*rawFrames - 1

	got := frameTimeSeconds(rawFrames, analysisFrames, sampleRate, windowSize)
	totalSeconds := float64(rawFrames*windowSize) / float64(sampleRate)
	want := totalSeconds / float64(analysisFrames)
	if got != want {
		t.Errorf("frameTimeSeconds = %v, want %v", got, want)
	}
	naive := float64(windowSize) / float64(sampleRate)
	if got == naive {
		t.Errorf("frameTimeSeconds should not equal the naive windowSize/sampleRate figure")
	}
}

func TestFrameTimeSecondsZeroAnalysisFramesFallsBack(t *testing.T) {
	got := frameTimeSeconds(0, 0, 16, 8)
	if got != 0.5 {
		t.Errorf("frameTimeSeconds fallback = %v, want 0.5", got)
	}
}

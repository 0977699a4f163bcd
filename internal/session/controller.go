// Package session wires the capture, DSP, pitch, segmentation, and
// notation stages together into a single running transcription session,
// for either a live device capture or an uploaded WAV file.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/notescribe/notescribed/internal/capture"
	"github.com/notescribe/notescribed/internal/config"
	"github.com/notescribe/notescribed/internal/dsp"
	"github.com/notescribe/notescribed/internal/notation"
	"github.com/notescribe/notescribed/internal/onset"
	"github.com/notescribe/notescribed/internal/pitch"
	"github.com/notescribe/notescribed/internal/segment"
)

// Re-exported sentinel errors, so callers never need to import the
// lower-level packages directly.
var (
	ErrConfigIncomplete  = config.ErrConfigIncomplete
	ErrUnsupportedUpload = capture.ErrUnsupportedUpload
	ErrDeviceUnavailable = capture.ErrDeviceUnavailable
)

// ErrAlreadyRunning is returned by StartLive/StartUpload when a session
// is already active.
var ErrAlreadyRunning = errors.New("session: already running")

// Controller owns exactly one transcription session at a time: it reads
// frames from a capture.Source, runs them through the DSP/pitch/segment
// pipeline, and emits a MIDI file once the source is exhausted or Stop
// is called.
type Controller struct {
	audio config.AudioConfig

	mu      sync.Mutex
	running bool

	procMu     sync.Mutex
	processing bool

	stop chan struct{}
	done chan error
}

// NewController creates a Controller for the given pipeline parameters.
func NewController(audio config.AudioConfig) *Controller {
	return &Controller{audio: audio}
}

// IsRunning reports whether a capture session is currently active.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// IsProcessing reports whether the post-capture analysis pass (replay of
// a finished live recording, or the initial pass over an upload) is
// currently running.
func (c *Controller) IsProcessing() bool {
	c.procMu.Lock()
	defer c.procMu.Unlock()
	return c.processing
}

// StartLive begins capturing from the default input device, tees the
// recording to music.WAVPath() for replay, and transcribes it once the
// session is stopped.
func (c *Controller) StartLive(music config.MusicConfig) error {
	if err := music.Validate(); err != nil {
		return err
	}
	if !c.beginRunning() {
		return ErrAlreadyRunning
	}

	src, err := capture.NewDeviceSource(c.audio.SampleRate, c.audio.WindowSize)
	if err != nil {
		c.endRunning()
		return fmt.Errorf("session: open device: %w", err)
	}

	recordingPath := music.WAVPath()
	tee, err := capture.NewWAVWriter(recordingPath, c.audio.SampleRate)
	if err != nil {
		src.Close()
		c.endRunning()
		return fmt.Errorf("session: open recording tee: %w", err)
	}

	c.stop = make(chan struct{})
	c.done = make(chan error, 1)

	go c.runLive(src, tee, recordingPath, music)
	return nil
}

// StartUpload transcribes an already-recorded WAV file directly, with no
// live capture phase.
func (c *Controller) StartUpload(music config.MusicConfig, wavPath string) error {
	if err := music.Validate(); err != nil {
		return err
	}
	if !c.beginRunning() {
		return ErrAlreadyRunning
	}

	c.stop = make(chan struct{})
	c.done = make(chan error, 1)

	go c.runUpload(wavPath, music)
	return nil
}

// Stop signals a running live capture to stop accepting new audio. It
// has no effect on the upload path, which runs to completion on its own.
func (c *Controller) Stop() {
	c.mu.Lock()
	stop := c.stop
	c.mu.Unlock()
	if stop != nil {
		select {
		case <-stop:
		default:
			close(stop)
		}
	}
}

// Wait blocks until the active session (capture plus analysis) finishes,
// or ctx is cancelled first.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) beginRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return false
	}
	c.running = true
	return true
}

func (c *Controller) endRunning() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

func (c *Controller) beginProcessing() {
	c.procMu.Lock()
	c.processing = true
	c.procMu.Unlock()
}

func (c *Controller) endProcessing() {
	c.procMu.Lock()
	c.processing = false
	c.procMu.Unlock()
}

// runLive captures raw frames from the device until Stop is called, tees
// every frame to disk, then replays the recording through the analysis
// chain. Device read errors are logged and capture continues.
func (c *Controller) runLive(src *capture.DeviceSource, tee *capture.WAVWriter, recordingPath string, music config.MusicConfig) {
	defer c.endRunning()

	raw := make([]float32, c.audio.WindowSize)
captureLoop:
	for {
		select {
		case <-c.stop:
			break captureLoop
		default:
		}

		res, err := src.ReadFrame(raw)
		switch res {
		case capture.ResultDeviceError:
			log.Printf("[SESSION] device read error: %v", err)
			continue
		case capture.ResultEOF:
			break captureLoop
		}

		if werr := tee.WriteFrame(raw); werr != nil {
			log.Printf("[SESSION] recording tee write failed: %v", werr)
		}
	}

	src.Close()
	if err := tee.Close(); err != nil {
		log.Printf("[SESSION] recording tee close failed: %v", err)
		c.done <- fmt.Errorf("session: close recording: %w", err)
		return
	}

	log.Printf("[SESSION] live capture finished, replaying %s for transcription", recordingPath)
	c.analyzeFile(recordingPath, music)
}

// runUpload transcribes an existing WAV file with no live capture phase.
func (c *Controller) runUpload(wavPath string, music config.MusicConfig) {
	defer c.endRunning()
	c.analyzeFile(wavPath, music)
}

// analyzeFile replays a WAV file's samples through the full analysis
// chain and writes the resulting MIDI file to music.MIDIPath().
func (c *Controller) analyzeFile(wavPath string, music config.MusicConfig) {
	c.beginProcessing()
	defer c.endProcessing()

	src, err := capture.NewWAVSource(wavPath)
	if err != nil {
		log.Printf("[SESSION] open wav source failed: %v", err)
		c.done <- fmt.Errorf("session: open wav source: %w", err)
		return
	}
	defer src.Close()

	overlapper := dsp.NewOverlapper(c.audio.WindowSize)
	preCond := dsp.NewPreConditioner(c.audio.SampleRate, c.audio.WindowSize, c.audio.MaxFreq)
	spectral := dsp.NewSpectralAnalyzer(c.audio.WindowSize)
	onsetDet := onset.NewDetector(c.audio.MedianSpan)
	estimator := pitch.NewEstimator(c.audio)
	segmenter := segment.NewSegmenter()

	rawFrames := 0
	analysisFrames := 0
	raw := make([]float32, c.audio.WindowSize)

frameLoop:
	for {
		res, err := src.ReadFrame(raw)
		if err != nil {
			log.Printf("[SESSION] frame read error: %v", err)
			break
		}
		if res == capture.ResultEOF {
			break
		}
		rawFrames++

		for _, frame := range overlapper.Push(raw) {
			conditioned := preCond.Process(frame)
			spectrum := spectral.Analyze(conditioned)

			isOnset := onsetDet.Process(spectrum)
			pe := estimator.Estimate(spectrum)
			pe.OnsetFlag = isOnset
			analysisFrames++

			if stop := segmenter.Process(pe); stop {
				log.Printf("[SESSION] segmenter hit MaxNotes, stopping early")
				break frameLoop
			}
		}
	}
	segmenter.Finalize()

	frameTime := frameTimeSeconds(rawFrames, analysisFrames, c.audio.SampleRate, c.audio.WindowSize)
	notes := notation.Quantize(segmenter.Events(), music, frameTime)

	midiPath := music.MIDIPath()
	if err := notation.WriteMIDI(midiPath, notes, music); err != nil {
		log.Printf("[SESSION] write midi failed: %v", err)
		c.done <- fmt.Errorf("session: write midi: %w", err)
		return
	}

	log.Printf("[SESSION] wrote %d notes to %s", len(notes), midiPath)
	c.done <- nil
}

// frameTimeSeconds returns the duration of one analysis frame. This is
// not simply windowSize/sampleRate: the overlapper turns N raw frames
// into 2N-1 analysis frames, so the true per-analysis-frame duration is
// the total captured audio time divided by the actual analysis frame
// count.
func frameTimeSeconds(rawFrames, analysisFrames, sampleRate, windowSize int) float64 {
	if analysisFrames == 0 {
		return float64(windowSize) / float64(sampleRate)
	}
	totalSeconds := float64(rawFrames*windowSize) / float64(sampleRate)
	return totalSeconds / float64(analysisFrames)
}

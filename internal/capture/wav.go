package capture

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavBitDepth is the PCM bit depth used for both the live-recording tee
// and the samples read back from any WAV file, matching the 16-bit PCM
// convention used throughout the reference WAV-handling code this
// package is grounded on.
const wavBitDepth = 16

const fullScale = 1 << (wavBitDepth - 1)

// WAVWriter tees mono float32 samples into a 16-bit PCM WAV file, used to
// persist a live capture session for replay through the analysis chain.
type WAVWriter struct {
	file *os.File
	enc  *wav.Encoder
}

// NewWAVWriter creates a mono WAV file at path.
func NewWAVWriter(path string, sampleRate int) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: create wav file: %w", err)
	}
	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, 1, 1)
	return &WAVWriter{file: f, enc: enc}, nil
}

// WriteFrame appends one frame of samples to the file.
func (w *WAVWriter) WriteFrame(samples []float32) error {
	ints := make([]int, len(samples))
	for i, s := range samples {
		v := int(s * fullScale)
		if v > fullScale-1 {
			v = fullScale - 1
		}
		if v < -fullScale {
			v = -fullScale
		}
		ints[i] = v
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: w.enc.SampleRate},
		Data:           ints,
		SourceBitDepth: wavBitDepth,
	}
	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("capture: write wav frame: %w", err)
	}
	return nil
}

// Close flushes the WAV header and closes the file.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("capture: close wav encoder: %w", err)
	}
	return w.file.Close()
}

// WAVSource reads mono samples back out of a WAV file, normalized to
// float32 in [-1, 1]. It serves both the upload path and the replay
// phase of a live session.
type WAVSource struct {
	file       *os.File
	sampleRate int
	data       []int
	pos        int
}

// NewWAVSource opens path and fully decodes it into memory.
func NewWAVSource(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: open wav file: %w", err)
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() || d.NumChans != 1 {
		f.Close()
		return nil, ErrUnsupportedUpload
	}

	full, err := d.FullPCMBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("capture: decode wav: %w", err)
	}

	return &WAVSource{
		file:       f,
		sampleRate: int(d.SampleRate),
		data:       full.Data,
	}, nil
}

// SampleRate returns the WAV file's sample rate.
func (s *WAVSource) SampleRate() int { return s.sampleRate }

// ReadFrame fills buf with the next len(buf) samples, zero-padding (and
// flagging EOF on the following call) if the file runs out mid-frame.
func (s *WAVSource) ReadFrame(buf []float32) (Result, error) {
	remaining := len(s.data) - s.pos
	if remaining <= 0 {
		return ResultEOF, nil
	}

	n := len(buf)
	if remaining < n {
		n = remaining
	}
	for i := 0; i < n; i++ {
		buf[i] = float32(s.data[s.pos+i]) / float32(fullScale)
	}
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	s.pos += n
	return ResultOK, nil
}

// Close releases the underlying file handle.
func (s *WAVSource) Close() error {
	return s.file.Close()
}

// Package capture implements the Frame Source: live device capture via
// PortAudio, WAV file playback for the upload path, and a WAV tee used to
// persist live recordings for replay through the analysis chain.
package capture

import "errors"

// ErrDeviceUnavailable is returned when no usable input device exists.
var ErrDeviceUnavailable = errors.New("capture: no input device available")

// ErrUnsupportedUpload is returned when an uploaded file is not a
// readable mono WAV.
var ErrUnsupportedUpload = errors.New("capture: upload file is not a supported wav")

// Result classifies the outcome of one ReadFrame call.
type Result int

const (
	// ResultOK means buf was filled with a full frame of samples.
	ResultOK Result = iota
	// ResultEOF means the source is exhausted; buf was not modified.
	ResultEOF
	// ResultDeviceError means a transient device read error occurred;
	// the caller should log it and keep reading.
	ResultDeviceError
)

// Source is the Frame Source interface: a blocking read of one
// window-sized frame of mono float32 samples in [-1, 1].
type Source interface {
	ReadFrame(buf []float32) (Result, error)
	Close() error
}

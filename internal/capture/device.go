package capture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DeviceSource reads frames from the system's default input device using
// PortAudio's blocking stream API.
type DeviceSource struct {
	stream *portaudio.Stream
	buffer []float32
}

// NewDeviceSource opens the default input device at sampleRate and
// returns a Source that yields windowSize-sample frames.
func NewDeviceSource(sampleRate, windowSize int) (*DeviceSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: portaudio init: %w", err)
	}

	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil {
		portaudio.Terminate()
		return nil, ErrDeviceUnavailable
	}

	buffer := make([]float32, windowSize)
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: 1,
			Latency:  dev.DefaultHighInputLatency,
		},
		SampleRate:      float64(sampleRate),
		FramesPerBuffer: windowSize,
	}

	stream, err := portaudio.OpenStream(params, buffer)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("capture: open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("capture: start stream: %w", err)
	}

	return &DeviceSource{stream: stream, buffer: buffer}, nil
}

// ReadFrame blocks until one windowSize-sample frame is captured.
func (d *DeviceSource) ReadFrame(buf []float32) (Result, error) {
	if err := d.stream.Read(); err != nil {
		return ResultDeviceError, fmt.Errorf("capture: device read: %w", err)
	}
	copy(buf, d.buffer)
	return ResultOK, nil
}

// Close stops the stream and releases the PortAudio session.
func (d *DeviceSource) Close() error {
	stopErr := d.stream.Stop()
	closeErr := d.stream.Close()
	portaudio.Terminate()
	if stopErr != nil {
		return fmt.Errorf("capture: stop stream: %w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("capture: close stream: %w", closeErr)
	}
	return nil
}

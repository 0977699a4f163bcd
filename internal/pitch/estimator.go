package pitch

import (
	"math"

	"github.com/notescribe/notescribed/internal/config"
	"github.com/notescribe/notescribed/internal/dsp"
)

// harmonics are the downsampling factors the Harmonic Product Spectrum
// multiplies together.
var harmonics = [4]int{2, 3, 4, 5}

// Event is a candidate pitch estimate for one analysis frame.
type Event struct {
	Found     bool
	MIDINote  int
	PitchName string
	Frequency float64
	OnsetFlag bool
}

// Estimator locates the fundamental frequency of a frame's spectrum
// using the Harmonic Product Spectrum.
type Estimator struct {
	table      *Table
	windowSize int
	binSize    float64
	minFreq    float64
	noiseFloor float64
}

// NewEstimator builds an estimator for the given pipeline parameters.
func NewEstimator(cfg config.AudioConfig) *Estimator {
	return &Estimator{
		table:      NewTable(),
		windowSize: cfg.WindowSize,
		binSize:    dsp.BinSize(cfg.SampleRate, cfg.WindowSize),
		minFreq:    cfg.MinFreq,
		noiseFloor: cfg.NoiseFloor,
	}
}

// clampMag implements the deliberate |(r,0)| = max(|r|,1) convention: a
// harmonic bin's magnitude below 1 (including exactly zero) is clamped
// up to 1 so a single empty harmonic can't collapse the whole product
// toward zero. It applies only to the four H_2..H_5 harmonic terms, never
// to the fundamental itself. Clamping the fundamental would make every
// bin's product (and thus value) at least 1, defeating the noise floor.
func clampMag(m float64) float64 {
	return math.Max(m, 1)
}

// Estimate runs the Harmonic Product Spectrum over one frame's
// half-spectrum and returns the best pitch candidate, if any.
func (e *Estimator) Estimate(spectrum []complex128) Event {
	limit := int(math.Ceil(float64(e.windowSize) / 5.0))

	bestBin := -1
	bestValue := 0.0

	for i := 0; i < limit; i++ {
		freq := float64(i) * e.binSize
		if freq <= e.minFreq {
			continue
		}

		product := dsp.MagAt(spectrum, i, e.windowSize)
		for _, m := range harmonics {
			idx := m * i
			if idx >= e.windowSize {
				continue
			}
			product *= clampMag(math.Abs(dsp.RealAt(spectrum, idx, e.windowSize)))
		}

		value := math.Sqrt(product)
		if value < e.noiseFloor {
			continue
		}
		if bestBin < 0 || value > bestValue {
			bestValue = value
			bestBin = i
		}
	}

	if bestBin < 0 {
		return Event{}
	}

	freq := e.interpolate(bestBin)
	return e.mapToPitch(freq)
}

// interpolate applies the deliberate asymmetric approximation
// f_hat = f_low + 0.66*(f_high - f_low); interpolation is skipped at the
// spectrum's edges, where the peak bin's own frequency is used instead.
func (e *Estimator) interpolate(bin int) float64 {
	half := e.windowSize/2 + 1
	if bin <= 0 || bin >= half-1 {
		return float64(bin) * e.binSize
	}
	fLow := float64(bin-1) * e.binSize
	fHigh := float64(bin+1) * e.binSize
	return fLow + 0.66*(fHigh-fLow)
}

// mapToPitch finds the unique table entry i with ref[i-1] < freq <
// ref[i+1] and |ref[i]-freq| < |ref[i+1]-freq|.
func (e *Estimator) mapToPitch(freq float64) Event {
	notes := e.table.Notes
	for i := 1; i < len(notes)-1; i++ {
		if notes[i-1].Frequency < freq && freq < notes[i+1].Frequency {
			if math.Abs(notes[i].Frequency-freq) < math.Abs(notes[i+1].Frequency-freq) {
				return Event{
					Found:     true,
					MIDINote:  notes[i].MIDI,
					PitchName: notes[i].Name,
					Frequency: freq,
				}
			}
		}
	}
	return Event{}
}

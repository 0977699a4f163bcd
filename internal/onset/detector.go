// Package onset implements a complex-domain onset detection function
// (ODF) with a rolling-median adaptive threshold, used to flag the frame
// where a new note begins.
package onset

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// thresholdScale and thresholdOffset add a margin above the rolling
// median so that ordinary frame-to-frame jitter within a sustained note
// doesn't cross the threshold. Roughly half of any non-constant ODF's
// frames exceed the bare median.
const (
	thresholdScale  = 1.5
	thresholdOffset = 1e-3
)

// refractoryFrames is the minimum number of frames that must elapse
// after a reported onset before another one can fire, so a single
// attack's transient can't be reported as more than one onset.
const refractoryFrames = 3

// Detector tracks the last two frames' spectra to predict each bin's
// expected value, and a rolling window of ODF values to threshold
// against their median.
type Detector struct {
	medianSpan int
	history    []float64

	prevSpectrum     []complex128
	prevPrevSpectrum []complex128

	framesSinceOnset int
}

// NewDetector creates a Detector with the given rolling-median window
// length.
func NewDetector(medianSpan int) *Detector {
	if medianSpan < 1 {
		medianSpan = 1
	}
	return &Detector{medianSpan: medianSpan, framesSinceOnset: refractoryFrames}
}

// Process consumes one frame's half-spectrum and returns whether it
// marks the onset of a new note. It always returns false during the
// warm-up period before two prior spectra and a full median history are
// available, and is suppressed for refractoryFrames after any reported
// onset.
func (d *Detector) Process(spectrum []complex128) bool {
	odf := d.deviation(spectrum)

	onset := false
	if len(d.history) == d.medianSpan && d.prevPrevSpectrum != nil {
		threshold := d.medianThreshold()*thresholdScale + thresholdOffset
		if odf > threshold && d.framesSinceOnset >= refractoryFrames {
			onset = true
		}
	}

	if onset {
		d.framesSinceOnset = 0
	} else {
		d.framesSinceOnset++
	}

	d.pushHistory(odf)
	d.prevPrevSpectrum = d.prevSpectrum
	d.prevSpectrum = spectrum

	return onset
}

// deviation computes the ODF value: the summed Euclidean distance
// between each bin's actual complex value and a linear-phase prediction
// extrapolated from the two previous frames.
func (d *Detector) deviation(spectrum []complex128) float64 {
	if d.prevSpectrum == nil || d.prevPrevSpectrum == nil {
		return 0
	}

	n := len(spectrum)
	if len(d.prevSpectrum) < n {
		n = len(d.prevSpectrum)
	}
	if len(d.prevPrevSpectrum) < n {
		n = len(d.prevPrevSpectrum)
	}

	var sum float64
	for k := 0; k < n; k++ {
		mag := cmplx.Abs(d.prevSpectrum[k])
		phase := cmplx.Phase(d.prevSpectrum[k])
		prevPhase := cmplx.Phase(d.prevPrevSpectrum[k])
		predictedPhase := 2*phase - prevPhase
		predicted := cmplx.Rect(mag, predictedPhase)
		sum += cmplx.Abs(spectrum[k] - predicted)
	}
	return sum
}

func (d *Detector) pushHistory(v float64) {
	d.history = append(d.history, v)
	if len(d.history) > d.medianSpan {
		d.history = d.history[1:]
	}
}

func (d *Detector) medianThreshold() float64 {
	sorted := append([]float64(nil), d.history...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

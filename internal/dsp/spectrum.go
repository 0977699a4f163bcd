package dsp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectralAnalyzer runs the forward DFT of one windowed real-valued frame,
// using gonum's real-input FFT. Coefficients returns the non-redundant
// half of the spectrum (length windowSize/2+1); the conjugate-symmetric
// remainder is reconstructed on demand via RealAt/MagAt.
type SpectralAnalyzer struct {
	fft        *fourier.FFT
	windowSize int
}

// NewSpectralAnalyzer creates an analyzer for the given frame size.
func NewSpectralAnalyzer(windowSize int) *SpectralAnalyzer {
	return &SpectralAnalyzer{
		fft:        fourier.NewFFT(windowSize),
		windowSize: windowSize,
	}
}

// Analyze computes the half-spectrum of one conditioned frame.
func (s *SpectralAnalyzer) Analyze(samples []float64) []complex128 {
	return s.fft.Coefficients(nil, samples)
}

// WindowSize returns the frame size this analyzer was built for.
func (s *SpectralAnalyzer) WindowSize() int { return s.windowSize }

// BinSize returns the frequency resolution of one FFT bin.
func BinSize(sampleRate, windowSize int) float64 {
	return float64(sampleRate) / float64(windowSize)
}

// fold maps a full-spectrum index k in [0, windowSize) onto its
// counterpart in the non-redundant half-spectrum, using the conjugate
// symmetry of a real-input DFT: X[windowSize-k] = conj(X[k]).
func fold(k, windowSize int) int {
	if windowSize <= 0 {
		return 0
	}
	k %= windowSize
	if k < 0 {
		k += windowSize
	}
	if k > windowSize/2 {
		k = windowSize - k
	}
	return k
}

// RealAt returns real(X[k]) for any k in [0, windowSize), reconstructing
// it from the half-spectrum half via conjugate symmetry when k falls
// beyond the Nyquist bin.
func RealAt(half []complex128, k, windowSize int) float64 {
	idx := fold(k, windowSize)
	if idx >= len(half) {
		idx = len(half) - 1
	}
	return real(half[idx])
}

// MagAt returns |X[k]| for any k in [0, windowSize); magnitude is
// invariant under conjugation, so no fold-dependent sign correction is
// needed.
func MagAt(half []complex128, k, windowSize int) float64 {
	idx := fold(k, windowSize)
	if idx >= len(half) {
		idx = len(half) - 1
	}
	return cmplx.Abs(half[idx])
}

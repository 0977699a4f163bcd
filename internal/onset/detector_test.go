package onset

import "testing"

// steadySpectrum returns an unchanging spectrum: a steady tone should
// never be flagged as an onset once past warm-up.
func steadySpectrum() []complex128 {
	return []complex128{1, 2 + 1i, 0.5, 3 - 2i, 1 + 1i}
}

func TestDetectorNoOnsetOnSteadySignal(t *testing.T) {
	d := NewDetector(4)
	spectrum := steadySpectrum()

	for i := 0; i < 20; i++ {
		if d.Process(spectrum) {
			t.Fatalf("frame %d: unexpected onset on an unchanging spectrum", i)
		}
	}
}

func TestDetectorWarmUpNeverFiresEarly(t *testing.T) {
	d := NewDetector(4)
	// Fewer frames than medianSpan: onset must never fire regardless of
	// how different each spectrum is.
	spectra := [][]complex128{
		{1, 1, 1},
		{100, 100, 100},
		{-50, 200, 1},
	}
	for i, s := range spectra {
		if d.Process(s) {
			t.Fatalf("frame %d: onset fired during warm-up", i)
		}
	}
}

func TestDetectorFlagsSuddenChange(t *testing.T) {
	d := NewDetector(4)
	steady := steadySpectrum()

	// Warm up on a steady signal.
	for i := 0; i < 6; i++ {
		d.Process(steady)
	}

	loud := []complex128{50 + 50i, -40 + 20i, 30, -10 - 10i, 5 + 5i}
	if !d.Process(loud) {
		t.Error("expected onset to fire on a large sudden spectral change")
	}
}

// sustainedTone is a slowly drifting, non-constant ODF: every frame's
// spectrum differs slightly from the last, as a real sustained note's
// analysis frames do, without any genuine attack after the first.
func sustainedTone(i int) []complex128 {
	d := float64(i%3) * 0.01
	return []complex128{1 + complex(d, 0), 2 + 1i, 0.5 + complex(d, d), 3 - 2i, 1 + 1i}
}

func TestDetectorFiresAtMostOncePerSustainedNote(t *testing.T) {
	d := NewDetector(4)

	onsets := 0
	for i := 0; i < 40; i++ {
		if d.Process(sustainedTone(i)) {
			onsets++
		}
	}
	if onsets > 1 {
		t.Errorf("got %d onsets over a sustained note, want at most 1", onsets)
	}
}

package notation

import (
	"math"

	"github.com/notescribe/notescribed/internal/config"
	"github.com/notescribe/notescribed/internal/segment"
)

// QuantizedNote is a finalized, rhythm-snapped note ready for emission.
type QuantizedNote struct {
	MIDINote int
	Type     Type
	Seconds  float64
}

// Quantize folds each silence event into the preceding note's duration
// (silences are never emitted) and snaps each note's duration onto the
// configured rhythmic grid.
func Quantize(events []segment.Event, music config.MusicConfig, frameTime float64) []QuantizedNote {
	factor, ok := music.Quantization.Factor()
	if !ok {
		factor = 1
	}
	crotchetSec := 60.0 / float64(music.TempoBPM)
	minPerSec := crotchetSec / factor

	var out []QuantizedNote
	for i, ev := range events {
		if ev.PitchName == segment.SilenceName {
			continue
		}

		length := ev.LengthInFrames
		if i+1 < len(events) && events[i+1].PitchName == segment.SilenceName {
			length += events[i+1].LengthInFrames
		}

		rawSec := frameTime * float64(length)
		noteSec := math.Round(rawSec/minPerSec) * minPerSec
		if noteSec <= 0 {
			noteSec = minPerSec
		}

		out = append(out, QuantizedNote{
			MIDINote: ev.MIDINote,
			Type:     classify(noteSec, crotchetSec, minPerSec),
			Seconds:  noteSec,
		})
	}
	return out
}

package notation

import "github.com/notescribe/notescribed/internal/config"

// TimeSigDenominator returns the MIDI time-signature meta-event's
// denominator exponent dd, such that the real denominator is 2^dd —
// the standard encoding used by the 0xFF 0x58 meta-event.
//
// The reference algorithm this system is descended from used a
// library-specific magic number for "Quavers" that didn't correspond to
// the literal exponent; this emitter builds the meta-event bytes
// directly, so no such quirk applies here — Quavers (eighth notes) is
// simply exponent 3 (2^3 = 8).
func TimeSigDenominator(denom config.TimeDenom) uint8 {
	switch denom {
	case config.TimeDenomMinim:
		return 1 // 2^1 = 2 (half notes)
	case config.TimeDenomCrotchet:
		return 2 // 2^2 = 4 (quarter notes)
	case config.TimeDenomQuaver:
		return 3 // 2^3 = 8 (eighth notes)
	default:
		return 2
	}
}

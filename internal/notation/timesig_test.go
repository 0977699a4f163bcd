package notation

import (
	"testing"

	"github.com/notescribe/notescribed/internal/config"
)

func TestTimeSigDenominator(t *testing.T) {
	cases := []struct {
		denom config.TimeDenom
		want  uint8
	}{
		{config.TimeDenomMinim, 1},
		{config.TimeDenomCrotchet, 2},
		{config.TimeDenomQuaver, 3},
	}
	for _, c := range cases {
		if got := TimeSigDenominator(c.denom); got != c.want {
			t.Errorf("TimeSigDenominator(%v) = %d, want %d", c.denom, got, c.want)
		}
	}
}

func TestTimeSigDenominatorDefault(t *testing.T) {
	if got := TimeSigDenominator(config.TimeDenom("bogus")); got != 2 {
		t.Errorf("TimeSigDenominator(bogus) = %d, want 2", got)
	}
}

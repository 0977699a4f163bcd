package notation

import "testing"

func TestKeySignatureMinorCollapsesToRelativeMajor(t *testing.T) {
	a := KeySignatureSharps("A minor")
	c := KeySignatureSharps("C major")
	if a != c {
		t.Errorf("A minor = %d, C major = %d, want equal", a, c)
	}
}

func TestKeySignatureSharpsAndFlats(t *testing.T) {
	cases := map[string]int8{
		"C major":  0,
		"G major":  1,
		"D major":  2,
		"F major":  -1,
		"Bb major": -2,
		"E minor":  1, // relative minor of G major
	}
	for key, want := range cases {
		if got := KeySignatureSharps(key); got != want {
			t.Errorf("KeySignatureSharps(%q) = %d, want %d", key, got, want)
		}
	}
}

func TestKeySignatureUnknownDefaultsToZero(t *testing.T) {
	if got := KeySignatureSharps("not a key"); got != 0 {
		t.Errorf("KeySignatureSharps(unknown) = %d, want 0", got)
	}
}

func TestKeySignatureTrimsWhitespace(t *testing.T) {
	if got := KeySignatureSharps("  D major  "); got != 2 {
		t.Errorf("KeySignatureSharps with whitespace = %d, want 2", got)
	}
}

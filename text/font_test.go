package text

import "testing"

func TestMapDirectionCoversAllDirections(t *testing.T) {
	dirs := []Direction{DirectionLTR, DirectionRTL, DirectionTTB, DirectionBTT}
	seen := map[any]bool{}
	for _, d := range dirs {
		seen[mapDirection(d)] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct go-text directions, got %d", len(seen))
	}
}

func TestDetectScriptSkipsLeadingWhitespace(t *testing.T) {
	script := detectScript([]rune("   hello"))
	if script != detectScript([]rune("hello")) {
		t.Fatalf("expected leading whitespace to be skipped when detecting script")
	}
}

func TestFixedPointRoundTrip(t *testing.T) {
	for _, px := range []float64{0, 1, 12, 16.5, 96} {
		got := fixedToFloat(floatToFixed(px))
		if got != px {
			t.Fatalf("floatToFixed/fixedToFloat round trip: got %v, want %v", got, px)
		}
	}
}

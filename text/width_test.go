package text

import "testing"

func TestEastAsianWidthUnitsDoublesWideRunes(t *testing.T) {
	if got := EastAsianWidthUnits('A'); got != 1 {
		t.Fatalf("EastAsianWidthUnits('A') = %v, want 1", got)
	}
	if got := EastAsianWidthUnits('一'); got != 2 {
		t.Fatalf("EastAsianWidthUnits('一') = %v, want 2", got)
	}
}

func TestDefaultMeasureSumsPerRuneWidth(t *testing.T) {
	m := DefaultMeasure(10)
	if got, want := m("AB"), 20.0; got != want {
		t.Fatalf("DefaultMeasure(10)(\"AB\") = %v, want %v", got, want)
	}
	if got, want := m("一二"), 40.0; got != want {
		t.Fatalf("DefaultMeasure(10)(\"一二\") = %v, want %v", got, want)
	}
}

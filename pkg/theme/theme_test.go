package theme

import (
	"image/color"
	"testing"
)

func TestByNameFallsBackToDark(t *testing.T) {
	if got := ByName("light").Name(); got != "light" {
		t.Fatalf("ByName(\"light\").Name() = %q, want \"light\"", got)
	}
	if got := ByName("dark").Name(); got != "dark" {
		t.Fatalf("ByName(\"dark\").Name() = %q, want \"dark\"", got)
	}
	if got := ByName("nonsense").Name(); got != "dark" {
		t.Fatalf("ByName(\"nonsense\").Name() = %q, want \"dark\" (fallback)", got)
	}
}

func TestResolveIsTotal(t *testing.T) {
	dark := Dark()
	if got := dark.Resolve(Token(-1)); got != (color.RGBA{}) {
		t.Fatalf("Resolve(-1) = %v, want zero value", got)
	}
	if got := dark.Resolve(tokenCount); got != (color.RGBA{}) {
		t.Fatalf("Resolve(tokenCount) = %v, want zero value", got)
	}
	if got := dark.Resolve(BarFill); got == (color.RGBA{}) {
		t.Fatalf("Resolve(BarFill) should not be the zero value")
	}
}

func TestDarkAndLightDiffer(t *testing.T) {
	dark, light := Dark(), Light()
	for _, tok := range []Token{Background, TextPrimary, FlameHot} {
		if dark.Resolve(tok) == light.Resolve(tok) {
			t.Errorf("token %d resolves the same in dark and light themes", tok)
		}
	}
}

func TestFlameRampCoversSixDistinctTokens(t *testing.T) {
	seen := make(map[Token]bool)
	for _, tok := range FlameRamp {
		seen[tok] = true
	}
	if len(seen) != len(FlameRamp) {
		t.Fatalf("FlameRamp has duplicate tokens: %v", FlameRamp)
	}
}

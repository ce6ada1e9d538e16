package colormap

import (
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

func newTestProfile(t *testing.T) *model.Profile {
	t.Helper()
	p := model.NewProfile(model.FormatChrome)
	return p
}

func TestResolveByNameIsStableAcrossCalls(t *testing.T) {
	p := newTestProfile(t)
	nameID := p.Interner().Intern("parseHTML")
	span := &model.Span{Name: nameID, Category: -1}

	m := New(p, ByName)
	first := m.Resolve(span)
	second := m.Resolve(span)
	if first != second {
		t.Fatalf("Resolve is not stable for the same span: %v != %v", first, second)
	}
}

func TestResolveByDepthCyclesRamp(t *testing.T) {
	p := newTestProfile(t)
	nameID := p.Interner().Intern("x")
	m := New(p, ByDepth)

	for depth := 0; depth < len(m.Ramp); depth++ {
		span := &model.Span{Name: nameID, Category: -1, Depth: uint16(depth)}
		if got, want := m.Resolve(span), m.Ramp[depth]; got != want {
			t.Errorf("Resolve(depth=%d) = %v, want %v", depth, got, want)
		}
	}
	// Depth beyond the ramp length wraps around.
	span := &model.Span{Name: nameID, Category: -1, Depth: uint16(len(m.Ramp))}
	if got, want := m.Resolve(span), m.Ramp[0]; got != want {
		t.Fatalf("Resolve(depth=len(ramp)) = %v, want wrap to %v", got, want)
	}
}

func TestResolveCategoryOverridesMode(t *testing.T) {
	p := newTestProfile(t)
	catID := p.Interner().Intern("gc")
	span := &model.Span{Category: catID, Depth: 3}

	m := New(p, ByDepth)
	if got := m.Resolve(span); got != theme.FlameCold {
		t.Fatalf("Resolve with category=gc = %v, want theme.FlameCold", got)
	}
}

func TestResolveUnknownCategoryFallsThroughToMode(t *testing.T) {
	p := newTestProfile(t)
	catID := p.Interner().Intern("some-unrecognized-category")
	nameID := p.Interner().Intern("x")
	span := &model.Span{Category: catID, Name: nameID, Depth: 2}

	m := New(p, ByDepth)
	if got, want := m.Resolve(span), m.Ramp[2]; got != want {
		t.Fatalf("Resolve with unknown category = %v, want fallback to depth ramp %v", got, want)
	}
}

func TestResolveNegativeCategorySkipsOverride(t *testing.T) {
	p := newTestProfile(t)
	nameID := p.Interner().Intern("x")
	span := &model.Span{Category: -1, Name: nameID, Depth: 1}

	m := New(p, ByDepth)
	if got, want := m.Resolve(span), m.Ramp[1]; got != want {
		t.Fatalf("Resolve with no category = %v, want depth ramp %v", got, want)
	}
}

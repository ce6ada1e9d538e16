// Package colormap assigns theme.Token colors to spans. The mode set is
// closed: ByName hashes a span's name into a fixed ramp for a hue that is
// stable across frames and across views; ByDepth cycles the same ramp by
// nesting depth. A span whose category is gc, network, component or idle
// takes that category's token in either mode; other categories do not
// affect the color.
package colormap

import (
	"hash/fnv"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// Mode selects how Resolve assigns a span its color ramp position.
type Mode int

const (
	ByName Mode = iota
	ByDepth
)

// categoryTokens maps well-known category strings to a specific token,
// overriding the ramp regardless of Mode.
var categoryTokens = map[string]theme.Token{
	"gc":        theme.FlameCold,
	"network":   theme.NetworkBar,
	"component": theme.FlameWarm,
	"idle":      theme.FlameNeutral,
}

// Mapper resolves a Token for a span, given the active Mode and palette.
type Mapper struct {
	Mode    Mode
	Ramp    [6]theme.Token
	profile *model.Profile
}

// New returns a Mapper over profile's name interning table, using the
// default flame ramp.
func New(profile *model.Profile, mode Mode) Mapper {
	return Mapper{Mode: mode, Ramp: theme.FlameRamp, profile: profile}
}

// Resolve returns the token for span, honoring category overrides before
// falling back to the active Mode.
func (m Mapper) Resolve(span *model.Span) theme.Token {
	if span.Category >= 0 {
		if cat := m.profile.Name(span.Category); cat != "" {
			if tok, ok := categoryTokens[cat]; ok {
				return tok
			}
		}
	}
	switch m.Mode {
	case ByDepth:
		return m.Ramp[int(span.Depth)%len(m.Ramp)]
	default:
		return m.Ramp[hashName(m.profile.Name(span.Name))%len(m.Ramp)]
	}
}

func hashName(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32())
}

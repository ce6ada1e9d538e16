package speedscopeformat

import (
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

func TestParseEventedProfile(t *testing.T) {
	data := []byte(`{
		"$schema": "https://www.speedscope.app/file-format-schema.json",
		"shared": {"frames": [{"name": "main"}, {"name": "work"}]},
		"profiles": [{
			"type": "evented",
			"name": "thread0",
			"unit": "microseconds",
			"events": [
				{"type": "O", "at": 0, "frame": 0},
				{"type": "O", "at": 10, "frame": 1},
				{"type": "C", "at": 40, "frame": 1},
				{"type": "C", "at": 50, "frame": 0}
			]
		}]
	}`)
	p, err := Parser{}.Parse("demo", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Format != model.FormatSpeedscope {
		t.Fatalf("Format = %v, want %v", p.Format, model.FormatSpeedscope)
	}
	if len(p.Arena) != 2 {
		t.Fatalf("Arena len = %d, want 2", len(p.Arena))
	}
}

func TestParseSampledProfileWithWeights(t *testing.T) {
	data := []byte(`{
		"$schema": "https://www.speedscope.app/file-format-schema.json",
		"shared": {"frames": [{"name": "main"}, {"name": "work"}]},
		"profiles": [{
			"type": "sampled",
			"name": "thread0",
			"unit": "milliseconds",
			"startValue": 0,
			"samples": [[0], [0, 1]],
			"weights": [5, 5]
		}]
	}`)
	p, err := Parser{}.Parse("demo", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Arena) == 0 {
		t.Fatalf("expected spans reconstructed from samples")
	}
	// milliseconds unit: weight 5ms == 5000us total span duration.
	if p.EndTimeUs-p.StartTimeUs != 10000 {
		t.Fatalf("total duration = %d, want 10000 (two 5ms samples)", p.EndTimeUs-p.StartTimeUs)
	}
}

func TestParseUnsupportedProfileTypeErrors(t *testing.T) {
	data := []byte(`{
		"$schema": "https://www.speedscope.app/file-format-schema.json",
		"shared": {"frames": []},
		"profiles": [{"type": "weird"}]
	}`)
	if _, err := (Parser{}).Parse("demo", data); err == nil {
		t.Fatalf("Parse with an unsupported profile type should error")
	}
}

func TestParseNoProfilesErrors(t *testing.T) {
	data := []byte(`{"$schema": "x", "shared": {"frames": []}, "profiles": []}`)
	if _, err := (Parser{}).Parse("demo", data); err == nil {
		t.Fatalf("Parse with no profiles should error")
	}
}

func TestUnitScaleConvertsToMicroseconds(t *testing.T) {
	cases := map[string]float64{
		"nanoseconds":  0.001,
		"microseconds": 1,
		"milliseconds": 1000,
		"seconds":      1e6,
		"":             1,
	}
	for unit, want := range cases {
		if got := unitScale(unit); got != want {
			t.Fatalf("unitScale(%q) = %v, want %v", unit, got, want)
		}
	}
}

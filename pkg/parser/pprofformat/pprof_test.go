package pprofformat

import (
	"bytes"
	"testing"

	gpprof "github.com/google/pprof/profile"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

func encodeProfile(t *testing.T, p *gpprof.Profile) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Profile.Write() error = %v", err)
	}
	return buf.Bytes()
}

func samplePprofProfile() *gpprof.Profile {
	mainFn := &gpprof.Function{ID: 1, Name: "main"}
	workFn := &gpprof.Function{ID: 2, Name: "work"}
	mainLoc := &gpprof.Location{ID: 1, Line: []gpprof.Line{{Function: mainFn}}}
	workLoc := &gpprof.Location{ID: 2, Line: []gpprof.Line{{Function: workFn}}}

	return &gpprof.Profile{
		SampleType: []*gpprof.ValueType{{Type: "samples", Unit: "count"}, {Type: "cpu", Unit: "nanoseconds"}},
		PeriodType: &gpprof.ValueType{Type: "cpu", Unit: "nanoseconds"},
		Period:     1000,
		Function:   []*gpprof.Function{mainFn, workFn},
		Location:   []*gpprof.Location{mainLoc, workLoc},
		Sample: []*gpprof.Sample{
			{Location: []*gpprof.Location{workLoc, mainLoc}, Value: []int64{1, 5000}},
			{Location: []*gpprof.Location{mainLoc}, Value: []int64{1, 3000}},
		},
	}
}

func TestParseConvertsLocationsToRootFirstStacks(t *testing.T) {
	data := encodeProfile(t, samplePprofProfile())
	p, err := Parser{}.Parse("demo", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Format != model.FormatPprof {
		t.Fatalf("Format = %v, want %v", p.Format, model.FormatPprof)
	}
	if len(p.Arena) == 0 {
		t.Fatalf("expected spans reconstructed from pprof samples")
	}

	var sawMain, sawWork bool
	for i := range p.Arena {
		switch p.Name(p.Arena[i].Name) {
		case "main":
			sawMain = true
		case "work":
			sawWork = true
		}
	}
	if !sawMain || !sawWork {
		t.Fatalf("expected both main and work frames, got arena=%+v", p.Arena)
	}
}

func TestParseNanosecondsValueConvertedToMicroseconds(t *testing.T) {
	data := encodeProfile(t, samplePprofProfile())
	p, err := Parser{}.Parse("demo", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// first sample's nanoseconds value (5000ns) becomes 5us of cursor advance.
	if p.EndTimeUs-p.StartTimeUs < 5 {
		t.Fatalf("total duration = %d, want at least 5us", p.EndTimeUs-p.StartTimeUs)
	}
}

func TestParseNoSamplesErrors(t *testing.T) {
	data := encodeProfile(t, &gpprof.Profile{
		SampleType: []*gpprof.ValueType{{Type: "samples", Unit: "count"}},
		PeriodType: &gpprof.ValueType{Type: "cpu", Unit: "nanoseconds"},
	})
	if _, err := (Parser{}).Parse("demo", data); err == nil {
		t.Fatalf("Parse with no samples should error")
	}
}

func TestParseInvalidDataErrors(t *testing.T) {
	if _, err := (Parser{}).Parse("demo", []byte("not a pprof profile")); err == nil {
		t.Fatalf("Parse with invalid data should error")
	}
}

// Package pprofformat parses gzipped protobuf pprof profiles using
// google/pprof's own decoder, which transparently handles the gzip framing.
package pprofformat

import (
	"bytes"

	gpprof "github.com/google/pprof/profile"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "pprof"

// Parser implements parser.Parser for gzipped protobuf pprof profiles.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatPprof }

func (Parser) Sniff(data []byte) bool { return parser.Sniff(data) == model.FormatPprof }

func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	prof, err := gpprof.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, err)
	}
	if len(prof.Sample) == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, nil)
	}

	valueIdx := sampleValueIndex(prof)
	nanoUnit := valueIdx < len(prof.SampleType) && prof.SampleType[valueIdx].Unit == "nanoseconds"

	b := parser.NewBuilder(model.FormatPprof)
	var cursor int64
	for _, s := range prof.Sample {
		value := int64(1)
		if valueIdx < len(s.Value) {
			value = s.Value[valueIdx]
		}
		duration := value
		if nanoUnit {
			duration /= 1000
		}
		if duration <= 0 {
			duration = 1
		}

		stack := stackFromLocations(s.Location)
		b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: 1, ThreadName: prof.PeriodType.Type, TimestampUs: cursor, Stack: stack})
		cursor += duration
	}
	b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: 1, ThreadName: prof.PeriodType.Type, TimestampUs: cursor, Stack: nil})

	return b.Finish(name), nil
}

// stackFromLocations converts pprof's leaf-first Location slice to a
// root-first frame stack, flattening inlined Lines within each Location.
func stackFromLocations(locs []*gpprof.Location) []parser.StackFrame {
	var frames []parser.StackFrame
	for i := len(locs) - 1; i >= 0; i-- {
		loc := locs[i]
		for j := len(loc.Line) - 1; j >= 0; j-- {
			fn := loc.Line[j].Function
			name := "(unknown)"
			if fn != nil && fn.Name != "" {
				name = fn.Name
			}
			frames = append(frames, parser.StackFrame{Name: name})
		}
	}
	return frames
}

func sampleValueIndex(prof *gpprof.Profile) int {
	for i, st := range prof.SampleType {
		if st.Unit == "nanoseconds" {
			return i
		}
	}
	return 0
}


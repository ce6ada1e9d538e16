// Package speedscopeformat parses the speedscope file format
// (https://github.com/jlfwong/speedscope), supporting both its
// event-based ("evented") and sampled sub-schemas.
package speedscopeformat

import (
	"encoding/json"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "speedscope"

type frame struct {
	Name string `json:"name"`
	File string `json:"file"`
}

type evented struct {
	Type  string `json:"type"`
	At    float64 `json:"at"`
	Frame int     `json:"frame"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue float64   `json:"startValue"`
	EndValue   float64   `json:"endValue"`
	Events     []evented `json:"events"`
	Samples    [][]int   `json:"samples"`
	Weights    []float64 `json:"weights"`
}

type ssFile struct {
	Schema string `json:"$schema"`
	Shared struct {
		Frames []frame `json:"frames"`
	} `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
}

// Parser implements parser.Parser for speedscope JSON.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatSpeedscope }

func (Parser) Sniff(data []byte) bool { return parser.Sniff(data) == model.FormatSpeedscope }

// unitScale converts a profile's declared time unit to microseconds.
func unitScale(unit string) float64 {
	switch unit {
	case "nanoseconds":
		return 0.001
	case "milliseconds":
		return 1000
	case "seconds":
		return 1e6
	default: // "microseconds" or unspecified
		return 1
	}
}

func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	var f ssFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, err)
	}
	if len(f.Profiles) == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, nil)
	}

	b := parser.NewBuilder(model.FormatSpeedscope)
	for tid, p := range f.Profiles {
		scale := unitScale(p.Unit)
		threadName := p.Name
		if threadName == "" {
			threadName = "profile"
		}
		switch p.Type {
		case "evented":
			for _, ev := range p.Events {
				if ev.Frame < 0 || ev.Frame >= len(f.Shared.Frames) {
					continue
				}
				fr := f.Shared.Frames[ev.Frame]
				ts := int64(ev.At * scale)
				switch ev.Type {
				case "O":
					b.AddEvent(parser.Event{Kind: parser.Begin, ThreadID: int64(tid), ThreadName: threadName, TimestampUs: ts, Name: fr.Name, Category: fr.File})
				case "C":
					b.AddEvent(parser.Event{Kind: parser.End, ThreadID: int64(tid), ThreadName: threadName, TimestampUs: ts})
				}
			}
		case "sampled":
			ts := int64(p.StartValue * scale)
			for i, sample := range p.Samples {
				stack := make([]parser.StackFrame, 0, len(sample))
				for _, idx := range sample {
					if idx < 0 || idx >= len(f.Shared.Frames) {
						continue
					}
					stack = append(stack, parser.StackFrame{Name: f.Shared.Frames[idx].Name, Category: f.Shared.Frames[idx].File})
				}
				b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: int64(tid), ThreadName: threadName, TimestampUs: ts, Stack: stack})
				if i < len(p.Weights) {
					ts += int64(p.Weights[i] * scale)
				}
			}
			if len(p.Samples) > 0 {
				b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: int64(tid), ThreadName: threadName, TimestampUs: ts})
			}
		default:
			return nil, spanerr.NewParseError(formatName, spanerr.UnsupportedVersion, nil)
		}
	}

	return b.Finish(name), nil
}

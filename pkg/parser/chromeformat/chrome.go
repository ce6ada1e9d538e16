// Package chromeformat parses the Chrome/Chromium "trace event format"
// (traceEvents JSON array), handling B/E (begin/end) and X (complete)
// phases plus M (metadata) thread-name events.
package chromeformat

import (
	"encoding/json"
	"sort"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "chrome"

type rawEvent struct {
	Name string          `json:"name"`
	Cat  string          `json:"cat"`
	Ph   string           `json:"ph"`
	Ts   float64          `json:"ts"`
	Dur  float64          `json:"dur"`
	Pid  int64            `json:"pid"`
	Tid  int64            `json:"tid"`
	Args json.RawMessage `json:"args"`
}

type traceFile struct {
	TraceEvents []rawEvent `json:"traceEvents"`
}

// Parser implements parser.Parser for Chrome trace JSON.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatChrome }

func (Parser) Sniff(data []byte) bool {
	return parser.Sniff(data) == model.FormatChrome
}

// Parse builds a Profile from raw Chrome trace-event JSON, accepting both
// the `{"traceEvents": [...]}` wrapper and a bare top-level array.
func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	events, err := decode(data)
	if err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, err)
	}
	if len(events) == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, nil)
	}

	threadNames := map[int64]string{}
	var timed []rawEvent
	for _, e := range events {
		tid := threadKey(e.Pid, e.Tid)
		switch e.Ph {
		case "M":
			if e.Name == "thread_name" {
				var args struct {
					Name string `json:"name"`
				}
				_ = json.Unmarshal(e.Args, &args)
				if args.Name != "" {
					threadNames[tid] = args.Name
				}
			}
		case "B", "E", "X":
			timed = append(timed, e)
		}
	}

	sort.SliceStable(timed, func(i, j int) bool { return timed[i].Ts < timed[j].Ts })

	b := parser.NewBuilder(model.FormatChrome)
	for _, e := range timed {
		tid := threadKey(e.Pid, e.Tid)
		tname := threadNames[tid]
		switch e.Ph {
		case "B":
			b.AddEvent(parser.Event{Kind: parser.Begin, ThreadID: tid, ThreadName: tname, TimestampUs: int64(e.Ts), Name: e.Name, Category: e.Cat})
		case "E":
			b.AddEvent(parser.Event{Kind: parser.End, ThreadID: tid, ThreadName: tname, TimestampUs: int64(e.Ts)})
		case "X":
			b.AddEvent(parser.Event{Kind: parser.Complete, ThreadID: tid, ThreadName: tname, TimestampUs: int64(e.Ts), DurationUs: int64(e.Dur), Name: e.Name, Category: e.Cat})
		}
	}

	return b.Finish(name), nil
}

func threadKey(pid, tid int64) int64 { return pid<<32 | (tid & 0xffffffff) }

func decode(data []byte) ([]rawEvent, error) {
	var asObj traceFile
	if err := json.Unmarshal(data, &asObj); err == nil && asObj.TraceEvents != nil {
		return asObj.TraceEvents, nil
	}
	var asArr []rawEvent
	if err := json.Unmarshal(data, &asArr); err == nil {
		return asArr, nil
	}
	return nil, json.Unmarshal(data, &asObj)
}

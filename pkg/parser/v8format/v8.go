// Package v8format parses V8's CPU profile JSON (`nodes`/`samples`/
// `timeDeltas`): a tree of call nodes plus a flat stream of sampled node
// ids and inter-sample deltas.
package v8format

import (
	"encoding/json"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "v8"

type callFrame struct {
	FunctionName string `json:"functionName"`
	URL          string `json:"url"`
}

type node struct {
	ID        int       `json:"id"`
	CallFrame callFrame `json:"callFrame"`
	Children  []int     `json:"children"`
}

type cpuProfile struct {
	Nodes      []node  `json:"nodes"`
	Samples    []int   `json:"samples"`
	TimeDeltas []int64 `json:"timeDeltas"`
	StartTime  int64   `json:"startTime"`
	EndTime    int64   `json:"endTime"`
}

// Parser implements parser.Parser for V8 CPU profiles.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatV8 }

func (Parser) Sniff(data []byte) bool { return parser.Sniff(data) == model.FormatV8 }

func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	var p cpuProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, err)
	}
	if len(p.Nodes) == 0 || len(p.Samples) == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, nil)
	}

	byID := make(map[int]node, len(p.Nodes))
	parentOf := make(map[int]int, len(p.Nodes))
	for _, n := range p.Nodes {
		byID[n.ID] = n
	}
	for _, n := range p.Nodes {
		for _, c := range n.Children {
			parentOf[c] = n.ID
		}
	}

	stackCache := make(map[int][]parser.StackFrame)
	stackFor := func(id int) []parser.StackFrame {
		if cached, ok := stackCache[id]; ok {
			return cached
		}
		var chain []int
		for cur, ok := id, true; ok; cur, ok = parentOf[cur] {
			chain = append(chain, cur)
			if _, hasParent := parentOf[cur]; !hasParent {
				break
			}
		}
		stack := make([]parser.StackFrame, len(chain))
		for i, nid := range chain {
			n := byID[nid]
			stack[len(chain)-1-i] = parser.StackFrame{Name: n.CallFrame.FunctionName, Category: n.CallFrame.URL}
		}
		stackCache[id] = stack
		return stack
	}

	b := parser.NewBuilder(model.FormatV8)
	ts := p.StartTime
	for i, nodeID := range p.Samples {
		if i > 0 && i-1 < len(p.TimeDeltas) {
			ts += p.TimeDeltas[i-1]
		}
		stack := stackFor(nodeID)
		b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: 1, ThreadName: "main", TimestampUs: ts, Stack: stack})
	}

	return b.Finish(name), nil
}

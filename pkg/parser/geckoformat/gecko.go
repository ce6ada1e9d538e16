// Package geckoformat parses Firefox's Gecko profiler JSON format: a
// `meta`+`threads[]` document where each thread carries column-schema'd
// sample/stack/frame tables referencing a shared string table.
package geckoformat

import (
	"encoding/json"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "gecko"

type table struct {
	Schema map[string]int  `json:"schema"`
	Data   [][]interface{} `json:"data"`
}

type geckoThread struct {
	Name        string `json:"name"`
	Tid         int64  `json:"tid"`
	StringTable []string `json:"stringTable"`
	FrameTable  table    `json:"frameTable"`
	StackTable  table    `json:"stackTable"`
	Samples     table    `json:"samples"`
}

type geckoFile struct {
	Meta struct {
		Version int `json:"version"`
	} `json:"meta"`
	Threads []geckoThread `json:"threads"`
}

// Parser implements parser.Parser for Firefox Gecko profiles.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatGecko }

func (Parser) Sniff(data []byte) bool { return parser.Sniff(data) == model.FormatGecko }

func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	var f geckoFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, err)
	}
	if len(f.Threads) == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, nil)
	}

	b := parser.NewBuilder(model.FormatGecko)
	for tidx, th := range f.Threads {
		if err := addThread(b, int64(tidx), th); err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.TreeConstructionFailed, err)
		}
	}
	return b.Finish(name), nil
}

func col(schema map[string]int, key string) (int, bool) {
	i, ok := schema[key]
	return i, ok
}

func addThread(b *parser.Builder, fallbackTid int64, th geckoThread) error {
	tid := th.Tid
	if tid == 0 {
		tid = fallbackTid
	}

	frameCol, _ := col(th.FrameTable.Schema, "location")
	stackFrameCol, _ := col(th.StackTable.Schema, "frame")
	stackPrefixCol, _ := col(th.StackTable.Schema, "prefix")
	sampleStackCol, _ := col(th.Samples.Schema, "stack")
	sampleTimeCol, hasTime := col(th.Samples.Schema, "time")

	frameName := func(frameIdx int) string {
		if frameIdx < 0 || frameIdx >= len(th.FrameTable.Data) {
			return "(unknown)"
		}
		row := th.FrameTable.Data[frameIdx]
		if frameCol >= len(row) {
			return "(unknown)"
		}
		strIdx, ok := asInt(row[frameCol])
		if !ok || strIdx < 0 || strIdx >= len(th.StringTable) {
			return "(unknown)"
		}
		return th.StringTable[strIdx]
	}

	// stackToFrames resolves a stack-table index into an ordered (root
	// first) list of frame names by walking the prefix chain.
	memo := make(map[int][]string)
	var stackToFrames func(stackIdx int) []string
	stackToFrames = func(stackIdx int) []string {
		if stackIdx < 0 || stackIdx >= len(th.StackTable.Data) {
			return nil
		}
		if cached, ok := memo[stackIdx]; ok {
			return cached
		}
		row := th.StackTable.Data[stackIdx]
		var prefixFrames []string
		if prefixCol := stackPrefixCol; prefixCol < len(row) {
			if prefixIdx, ok := asInt(row[prefixCol]); ok && prefixIdx >= 0 {
				prefixFrames = stackToFrames(prefixIdx)
			}
		}
		var frameIdx int
		if stackFrameCol < len(row) {
			frameIdx, _ = asInt(row[stackFrameCol])
		}
		frames := append(append([]string(nil), prefixFrames...), frameName(frameIdx))
		memo[stackIdx] = frames
		return frames
	}

	for _, row := range th.Samples.Data {
		if sampleStackCol >= len(row) {
			continue
		}
		stackIdx, ok := asInt(row[sampleStackCol])
		if !ok || stackIdx < 0 {
			continue
		}
		var ts int64
		if hasTime && sampleTimeCol < len(row) {
			if ms, ok := asFloat(row[sampleTimeCol]); ok {
				ts = int64(ms * 1000)
			}
		}
		frames := stackToFrames(stackIdx)
		stack := make([]parser.StackFrame, len(frames))
		for i, n := range frames {
			stack[i] = parser.StackFrame{Name: n}
		}
		b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: tid, ThreadName: th.Name, TimestampUs: ts, Stack: stack})
	}
	return nil
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

func asFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

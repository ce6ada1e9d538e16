// Package perfformat parses `perf script` / eBPF script text output: one
// header line per sample (`command pid/tid [cpu] timestamp: ...`) followed
// by indented stack frame lines, blank-line separated.
package perfformat

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "perf"

// Parser implements parser.Parser for perf/eBPF script text output.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatPerf }

func (Parser) Sniff(data []byte) bool { return parser.Sniff(data) == model.FormatPerf }

func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	b := parser.NewBuilder(model.FormatPerf)

	var curThread int64 = -1
	var curTs int64
	var curFrames []string
	sampleCount := 0

	flush := func() {
		if curThread < 0 || len(curFrames) == 0 {
			return
		}
		stack := make([]parser.StackFrame, len(curFrames))
		for i, n := range curFrames {
			stack[i] = parser.StackFrame{Name: n}
		}
		b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: curThread, TimestampUs: curTs, Stack: stack})
		sampleCount++
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			curThread, curFrames = -1, nil
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			flush()
			curFrames = nil
			tid, ts, ok := parseHeader(line)
			if !ok {
				curThread = -1
				continue
			}
			curThread, curTs = tid, ts
			continue
		}
		if curThread < 0 {
			continue
		}
		if fn := parseStackLine(trimmed); fn != "" {
			// Leaf frame appears first; prepend so curFrames ends root-first.
			curFrames = append([]string{fn}, curFrames...)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, err)
	}
	if sampleCount == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, nil)
	}

	return b.Finish(name), nil
}

// parseHeader extracts the tid and timestamp (in microseconds) from a perf
// script header line, e.g. "myapp 1234/1235 [002] 123456.789012: cycles:".
func parseHeader(line string) (int64, int64, bool) {
	fields := strings.Fields(line)
	var tid int64 = -1
	var ts int64
	foundTs := false
	for _, f := range fields {
		if strings.Contains(f, "/") {
			parts := strings.SplitN(f, "/", 2)
			if v, err := strconv.ParseInt(parts[len(parts)-1], 10, 64); err == nil {
				tid = v
			}
			continue
		}
		if strings.HasSuffix(f, ":") && !foundTs {
			sec := strings.TrimSuffix(f, ":")
			if v, err := strconv.ParseFloat(sec, 64); err == nil {
				ts = int64(v * 1e6)
				foundTs = true
			}
		}
	}
	if tid < 0 || !foundTs {
		return 0, 0, false
	}
	return tid, ts, true
}

// parseStackLine extracts the symbol name from a stack frame line such as
// "    7f1234 some_function+0x20 (/lib/libc.so.6)".
func parseStackLine(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	sym := fields[1]
	if idx := strings.Index(sym, "+"); idx >= 0 {
		sym = sym[:idx]
	}
	return sym
}

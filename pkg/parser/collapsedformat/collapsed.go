// Package collapsedformat parses "collapsed stacks" text (Brendan Gregg's
// flamegraph.pl input format): one line per unique stack, `frame;frame;...
// count`.
package collapsedformat

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "collapsed"

// Parser implements parser.Parser for collapsed-stack text.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatCollapsed }

func (Parser) Sniff(data []byte) bool { return parser.Sniff(data) == model.FormatCollapsed }

func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	b := parser.NewBuilder(model.FormatCollapsed)
	var cursor int64
	lines := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.LastIndex(line, " ")
		if idx < 0 {
			continue
		}
		countStr := strings.TrimSpace(line[idx+1:])
		count, err := strconv.ParseInt(countStr, 10, 64)
		if err != nil || count <= 0 {
			continue
		}
		stackStr := line[:idx]
		frames := strings.Split(stackStr, ";")
		stack := make([]parser.StackFrame, len(frames))
		for i, f := range frames {
			stack[i] = parser.StackFrame{Name: f}
		}

		b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: 1, ThreadName: "collapsed", TimestampUs: cursor, Stack: stack})
		cursor += count
		lines++
	}
	// Close out the final stack.
	b.AddEvent(parser.Event{Kind: parser.Sample, ThreadID: 1, ThreadName: "collapsed", TimestampUs: cursor, Stack: nil})

	if err := scanner.Err(); err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, err)
	}
	if lines == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, nil)
	}

	return b.Finish(name), nil
}

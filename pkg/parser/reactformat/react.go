// Package reactformat parses React DevTools profiler commit exports: a
// `dataForRoots`-less, per-commit JSON document carrying one tree of
// rendered fibers per commit, each with its own actual (inclusive)
// duration. Each commit becomes a Frame boundary; each fiber becomes a
// nested Span whose self time falls out of the normal duration-minus-
// children computation.
package reactformat

import (
	"encoding/json"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "react-devtools"

// Fiber is one rendered component in a commit's tree.
type Fiber struct {
	Name             string  `json:"name"`
	ActualDurationMs float64 `json:"actualDuration"`
	Children         []Fiber `json:"children"`
}

// Commit is one React commit: a render pass starting at TimestampMs.
type Commit struct {
	TimestampMs float64 `json:"timestamp"`
	Fibers      []Fiber `json:"fibers"`
}

type reactFile struct {
	CommitData []Commit `json:"commitData"`
}

// Parser implements parser.Parser for React DevTools commit exports.
type Parser struct{}

func (Parser) Format() model.Format { return model.FormatReactDevTools }

func (Parser) Sniff(data []byte) bool { return parser.Sniff(data) == model.FormatReactDevTools }

func (Parser) Parse(name string, data []byte) (*model.Profile, error) {
	var f reactFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, err)
	}
	if len(f.CommitData) == 0 {
		return nil, spanerr.NewParseError(formatName, spanerr.Truncated, nil)
	}

	b := parser.NewBuilder(model.FormatReactDevTools)
	const threadID int64 = 1

	frameIdx := 0
	for _, commit := range f.CommitData {
		startUs := int64(commit.TimestampMs * 1000)
		cursor := startUs
		for _, fiber := range commit.Fibers {
			cursor = addFiber(b, threadID, fiber, cursor)
		}
		frameIdx++
	}

	p := b.Finish(name)
	buildCommitFrames(p, f.CommitData)
	return p, nil
}

func addFiber(b *parser.Builder, threadID int64, fiber Fiber, startUs int64) int64 {
	b.AddEvent(parser.Event{Kind: parser.Begin, ThreadID: threadID, ThreadName: "react", TimestampUs: startUs, Name: fiber.Name, Category: "component"})
	cursor := startUs
	for _, child := range fiber.Children {
		cursor = addFiber(b, threadID, child, cursor)
	}
	end := startUs + int64(fiber.ActualDurationMs*1000)
	if end < cursor {
		end = cursor
	}
	b.AddEvent(parser.Event{Kind: parser.End, ThreadID: threadID, TimestampUs: end})
	return end
}

// buildCommitFrames attaches one Frame per commit boundary, classified
// Good if the commit finished within a 16.667ms (60fps) budget.
func buildCommitFrames(p *model.Profile, commits []Commit) {
	const budgetUs = 16_667
	cursor := int64(0)
	for i, c := range commits {
		start := int64(c.TimestampMs * 1000)
		if start < cursor {
			start = cursor
		}
		var total int64
		for _, fb := range c.Fibers {
			total += int64(fb.ActualDurationMs * 1000)
		}
		end := start + total
		class := model.FrameGood
		if total > budgetUs {
			class = model.FrameWarning
		}
		if total > budgetUs*3 {
			class = model.FrameDropped
		}
		p.Frames = append(p.Frames, model.Frame{
			Index:          i,
			StartUs:        start,
			EndUs:          end,
			BudgetUs:       budgetUs,
			Classification: class,
		})
		cursor = end
	}
}

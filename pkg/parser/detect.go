package parser

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

// Parser is implemented by every format module. Parse never returns a
// partial Profile: on error the returned Profile is nil.
type Parser interface {
	Format() model.Format
	Sniff(data []byte) bool
	Parse(name string, data []byte) (*model.Profile, error)
}

var gzipMagic = []byte{0x1f, 0x8b}
var pixMagic = []byte("PIXC")
var tracyMagic = []byte("TracyP")

var collapsedLine = regexp.MustCompile(`^[^;\s][^\s]*(?:;[^;\s]+)*\s+\d+\s*$`)
var perfLine = regexp.MustCompile(`^\S.*\s+\d+/\d+\s+\[\d+\]`)

// Sniff content-detects the format of raw profile bytes, per §6's format
// table. It does not validate the payload beyond the cheap shape/magic
// check; a positive sniff can still fail to Parse.
func Sniff(data []byte) model.Format {
	trimmed := bytes.TrimSpace(data)

	if bytes.HasPrefix(data, gzipMagic) {
		return model.FormatPprof
	}
	if bytes.HasPrefix(data, pixMagic) {
		return model.FormatPIX
	}
	if bytes.HasPrefix(data, tracyMagic) {
		return model.FormatTracy
	}

	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return sniffJSON(trimmed)
	}

	lines := bytes.Split(trimmed, []byte("\n"))
	collapsed, perf := 0, 0
	checked := 0
	for _, line := range lines {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		checked++
		if checked > 20 {
			break
		}
		if collapsedLine.Match(line) {
			collapsed++
		}
		if perfLine.Match(line) {
			perf++
		}
	}
	if perf > 0 {
		return model.FormatPerf
	}
	if collapsed > 0 {
		return model.FormatCollapsed
	}
	return ""
}

func sniffJSON(data []byte) model.Format {
	var probe struct {
		TraceEvents json.RawMessage `json:"traceEvents"`
		Meta        json.RawMessage `json:"meta"`
		Threads     json.RawMessage `json:"threads"`
		Schema      string          `json:"$schema"`
		Nodes       json.RawMessage `json:"nodes"`
		Samples     json.RawMessage `json:"samples"`
		TimeDeltas  json.RawMessage `json:"timeDeltas"`
		CommitData  json.RawMessage `json:"commitData"`
	}
	if err := json.Unmarshal(data, &probe); err == nil {
		switch {
		case probe.TraceEvents != nil:
			return model.FormatChrome
		case probe.Meta != nil && probe.Threads != nil:
			return model.FormatGecko
		case bytes.Contains([]byte(probe.Schema), []byte("speedscope")):
			return model.FormatSpeedscope
		case probe.Nodes != nil && probe.Samples != nil && probe.TimeDeltas != nil:
			return model.FormatV8
		case probe.CommitData != nil:
			return model.FormatReactDevTools
		}
	}
	// top-level array is Chrome's bare traceEvents shorthand.
	trimmedStart := bytes.TrimSpace(data)
	if len(trimmedStart) > 0 && trimmedStart[0] == '[' {
		return model.FormatChrome
	}
	return ""
}

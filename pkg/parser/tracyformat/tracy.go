// Package tracyformat parses Tracy profiler captures. Per the open
// question on protocol coverage (§9), this parser reads the zone stream
// every capture carries and gates lock-contention and plot (counter)
// events behind explicit Capabilities flags.
package tracyformat

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dicklesworthstone/spanscope/internal/log"
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "tracy"

// magic is a documented placeholder header constant for this capture
// format, not a reverse-engineered byte-for-byte match of any particular
// upstream Tracy wire version.
var magic = []byte("TracyP")

// Capabilities gates which optional sections of a Tracy capture this
// parser reads. Defaults cover only the zone stream.
type Capabilities struct {
	Locks bool
	Plots bool
}

// DefaultCapabilities covers the guaranteed-present zone stream only.
func DefaultCapabilities() Capabilities { return Capabilities{} }

// Parser implements parser.Parser for Tracy captures.
type Parser struct {
	Caps   Capabilities
	Logger log.Logger
}

// NewParser returns a Parser with the given capability flags, logging to the
// standard library's default logger until SetLogger overrides it.
func NewParser(caps Capabilities) Parser { return Parser{Caps: caps, Logger: log.Default()} }

// SetLogger installs a custom logger, returning the updated Parser.
func (p Parser) SetLogger(l log.Logger) Parser {
	p.Logger = l
	return p
}

func (p Parser) logger() log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

func (Parser) Format() model.Format { return model.FormatTracy }

func (Parser) Sniff(data []byte) bool { return bytes.HasPrefix(data, magic) }

func (p Parser) Parse(name string, data []byte) (*model.Profile, error) {
	r := bytes.NewReader(data)
	hdr := make([]byte, len(magic))
	if _, err := io.ReadFull(r, hdr); err != nil || !bytes.Equal(hdr, magic) {
		return nil, spanerr.NewParseError(formatName, spanerr.InvalidFormat, nil)
	}

	var version, zoneCount, threadCount uint32
	for _, v := range []*uint32{&version, &zoneCount, &threadCount} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.Truncated, err)
		}
	}
	if version > 1 {
		return nil, spanerr.NewParseError(formatName, spanerr.UnsupportedVersion, nil)
	}

	threadNames := make(map[int64]string, threadCount)
	for i := uint32(0); i < threadCount; i++ {
		var tid int64
		if err := binary.Read(r, binary.LittleEndian, &tid); err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.Truncated, err)
		}
		name, err := readString(r)
		if err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.Truncated, err)
		}
		threadNames[tid] = name
	}

	b := parser.NewBuilder(model.FormatTracy)
	for i := uint32(0); i < zoneCount; i++ {
		var tid int64
		if err := binary.Read(r, binary.LittleEndian, &tid); err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.TreeConstructionFailed, err)
		}
		zname, err := readString(r)
		if err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.TreeConstructionFailed, err)
		}
		var start, end int64
		if err := binary.Read(r, binary.LittleEndian, &start); err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.TreeConstructionFailed, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &end); err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.TreeConstructionFailed, err)
		}
		b.AddEvent(parser.Event{Kind: parser.Begin, ThreadID: tid, ThreadName: threadNames[tid], TimestampUs: start, Name: zname})
		b.AddEvent(parser.Event{Kind: parser.End, ThreadID: tid, TimestampUs: end})
	}

	prof := b.Finish(name)

	if p.Caps.Plots {
		readPlots(r, prof, p.logger())
	} else {
		p.logger().Printf("tracy: plots capability disabled, skipping trailing section for %q", name)
	}
	// Lock-contention events are read as Markers when enabled, sharing the
	// same trailing-section tolerance as PIX's frame markers: a short or
	// absent section is not a parse failure.
	if p.Caps.Locks {
		readLocks(r, prof, p.logger())
	} else {
		p.logger().Printf("tracy: locks capability disabled, skipping trailing section for %q", name)
	}

	return prof, nil
}

func readString(r *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readPlots(r *bytes.Reader, prof *model.Profile, logger log.Logger) {
	var plotCount uint32
	if binary.Read(r, binary.LittleEndian, &plotCount) != nil {
		logger.Printf("tracy: no plot section present")
		return
	}
	for i := uint32(0); i < plotCount; i++ {
		pname, err := readString(r)
		if err != nil {
			logger.Printf("tracy: plot section truncated after %d/%d plots", i, plotCount)
			return
		}
		var sampleCount uint32
		if binary.Read(r, binary.LittleEndian, &sampleCount) != nil {
			logger.Printf("tracy: plot section truncated after %d/%d plots", i, plotCount)
			return
		}
		counter := model.Counter{Name: pname}
		ok := true
		for j := uint32(0); j < sampleCount; j++ {
			var ts int64
			var val float64
			if binary.Read(r, binary.LittleEndian, &ts) != nil || binary.Read(r, binary.LittleEndian, &val) != nil {
				ok = false
				break
			}
			counter.Samples = append(counter.Samples, model.CounterSample{TimestampUs: ts, Value: val})
		}
		prof.Counters = append(prof.Counters, counter)
		if !ok {
			logger.Printf("tracy: plot %q truncated mid-sample", pname)
			return
		}
	}
}

func readLocks(r *bytes.Reader, prof *model.Profile, logger log.Logger) {
	var lockCount uint32
	if binary.Read(r, binary.LittleEndian, &lockCount) != nil {
		logger.Printf("tracy: no lock section present")
		return
	}
	for i := uint32(0); i < lockCount; i++ {
		lname, err := readString(r)
		if err != nil {
			logger.Printf("tracy: lock section truncated after %d/%d locks", i, lockCount)
			return
		}
		var ts int64
		if binary.Read(r, binary.LittleEndian, &ts) != nil {
			logger.Printf("tracy: lock section truncated after %d/%d locks", i, lockCount)
			return
		}
		prof.Markers = append(prof.Markers, model.Marker{TimestampUs: ts, Name: lname, Category: "lock"})
	}
}

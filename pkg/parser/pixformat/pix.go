// Package pixformat parses PIX GPU capture timing data. Per the open
// question on protocol coverage (§9), this parser covers the common
// subset every capture carries — the zone (named timed span) stream — and
// gates PIX-specific extensions (frame markers) behind explicit
// Capabilities flags rather than silently ignoring or guessing at them.
package pixformat

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dicklesworthstone/spanscope/internal/log"
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

const formatName = "pix"

var magic = []byte("PIXC")

// Capabilities gates which optional sections of a PIX capture this parser
// reads. Defaults cover only the zone stream every capture has.
type Capabilities struct {
	FrameMarkers bool
}

// DefaultCapabilities covers the guaranteed-present zone stream only.
func DefaultCapabilities() Capabilities { return Capabilities{} }

// Parser implements parser.Parser for PIX captures.
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

func (Parser) Format() model.Format { return model.FormatPIX }

func (Parser) Sniff(data []byte) bool { return bytes.HasPrefix(data, magic) }

func (p Parser) Parse(name string, data []byte) (*model.Profile, error) {
	r := bytes.NewReader(data)
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil || !bytes.Equal(hdr[:], magic) {
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
		tid, name, err := readThreadRecord(r)
		if err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.Truncated, err)
		}
		threadNames[tid] = name
	}

	b := parser.NewBuilder(model.FormatPIX)
	for i := uint32(0); i < zoneCount; i++ {
		tid, zoneName, start, end, err := readZoneRecord(r)
		if err != nil {
			return nil, spanerr.NewParseError(formatName, spanerr.TreeConstructionFailed, err)
		}
		b.AddEvent(parser.Event{Kind: parser.Begin, ThreadID: tid, ThreadName: threadNames[tid], TimestampUs: start, Name: zoneName})
		b.AddEvent(parser.Event{Kind: parser.End, ThreadID: tid, TimestampUs: end})
	}

	prof := b.Finish(name)

	if p.Caps.FrameMarkers {
		readFrameMarkers(r, prof, p.logger())
	} else {
		p.logger().Printf("pix: frame markers capability disabled, skipping trailing section for %q", name)
	}

	return prof, nil
}

func readThreadRecord(r *bytes.Reader) (int64, string, error) {
	var tid int64
	if err := binary.Read(r, binary.LittleEndian, &tid); err != nil {
		return 0, "", err
	}
	name, err := readString(r)
	return tid, name, err
}

func readZoneRecord(r *bytes.Reader) (tid int64, name string, start, end int64, err error) {
	if err = binary.Read(r, binary.LittleEndian, &tid); err != nil {
		return
	}
	name, err = readString(r)
	if err != nil {
		return
	}
	if err = binary.Read(r, binary.LittleEndian, &start); err != nil {
		return
	}
	err = binary.Read(r, binary.LittleEndian, &end)
	return
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

// readFrameMarkers reads the optional trailing frame-boundary section. A
// missing or short section is tolerated: frame markers are an extension,
// not required for a valid capture. Any truncation is logged rather than
// surfaced as a parse failure.
func readFrameMarkers(r *bytes.Reader, prof *model.Profile, logger log.Logger) {
	var frameCount uint32
	if err := binary.Read(r, binary.LittleEndian, &frameCount); err != nil {
		logger.Printf("pix: no frame marker section present: %v", err)
		return
	}
	for i := uint32(0); i < frameCount; i++ {
		var start, end, budget int64
		var class uint8
		if binary.Read(r, binary.LittleEndian, &start) != nil {
			logger.Printf("pix: frame marker section truncated after %d/%d frames", i, frameCount)
			return
		}
		if binary.Read(r, binary.LittleEndian, &end) != nil {
			logger.Printf("pix: frame marker section truncated after %d/%d frames", i, frameCount)
			return
		}
		if binary.Read(r, binary.LittleEndian, &budget) != nil {
			logger.Printf("pix: frame marker section truncated after %d/%d frames", i, frameCount)
			return
		}
		if binary.Read(r, binary.LittleEndian, &class) != nil {
			logger.Printf("pix: frame marker section truncated after %d/%d frames", i, frameCount)
			return
		}
		prof.Frames = append(prof.Frames, model.Frame{
			Index:          int(i),
			StartUs:        start,
			EndUs:          end,
			BudgetUs:       budget,
			Classification: model.FrameClass(class),
		})
	}
}

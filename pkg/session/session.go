// Package session holds the ordered collection of profiles an interactive
// viewer is working with, and aligns each onto a single virtual timeline.
package session

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dicklesworthstone/spanscope/internal/log"
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/parser"
	"github.com/dicklesworthstone/spanscope/pkg/parser/chromeformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/collapsedformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/geckoformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/perfformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/pixformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/pprofformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/reactformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/speedscopeformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/tracyformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/v8format"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

// Handle identifies one profile within a Session.
type Handle int

// Entry is one loaded profile and its timeline offset.
type Entry struct {
	Handle   Handle
	Label    string
	Profile  *model.Profile
	OffsetUs int64
}

// Info summarizes a Session for display.
type Info struct {
	ProfileCount int
	VirtualStart int64
	VirtualEnd   int64
	Entries      []EntryInfo
}

// EntryInfo is the display-facing summary of one Entry.
type EntryInfo struct {
	Handle   Handle
	Label    string
	Format   model.Format
	OffsetUs int64
}

// Source is one profile to load: its display label and raw bytes.
type Source struct {
	Label string
	Data  []byte
}

// Session holds an ordered list of profiles, each with an independent
// timeline offset, per the alignment rule: a profile's local timestamp t
// maps to t - profile.StartTimeUs + offset on the shared timeline.
type Session struct {
	mu      sync.RWMutex
	logger  log.Logger
	next    Handle
	entries []*Entry

	parsers []parser.Parser
}

// New returns an empty Session wired with every known format parser.
func New() *Session {
	return &Session{
		logger: log.Default(),
		next:   1,
		parsers: []parser.Parser{
			chromeformat.Parser{},
			geckoformat.Parser{},
			speedscopeformat.Parser{},
			v8format.Parser{},
			pprofformat.Parser{},
			perfformat.Parser{},
			collapsedformat.Parser{},
			reactformat.Parser{},
			pixformat.NewParser(pixformat.DefaultCapabilities()),
			tracyformat.NewParser(tracyformat.DefaultCapabilities()),
		},
	}
}

// SetLogger installs a custom logger, propagating it to the PIX and Tracy
// parsers so their skipped-capability notices land in the same place.
func (s *Session) SetLogger(l log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
	for i, p := range s.parsers {
		switch tp := p.(type) {
		case pixformat.Parser:
			s.parsers[i] = tp.SetLogger(l)
		case tracyformat.Parser:
			s.parsers[i] = tp.SetLogger(l)
		}
	}
}

// SetPIXCapabilities swaps in a PIX parser configured with the given
// capability flags, per the format-capability open question.
func (s *Session) SetPIXCapabilities(caps pixformat.Capabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceParser(model.FormatPIX, pixformat.NewParser(caps).SetLogger(s.logger))
}

// SetTracyCapabilities swaps in a Tracy parser configured with the given
// capability flags.
func (s *Session) SetTracyCapabilities(caps tracyformat.Capabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceParser(model.FormatTracy, tracyformat.NewParser(caps).SetLogger(s.logger))
}

func (s *Session) replaceParser(format model.Format, p parser.Parser) {
	for i, existing := range s.parsers {
		if existing.Format() == format {
			s.parsers[i] = p
			return
		}
	}
	s.parsers = append(s.parsers, p)
}

// AddProfile detects the format of data, parses it, and appends it to the
// session at offset zero. Returns the new entry's handle.
func (s *Session) AddProfile(label string, data []byte) (Handle, error) {
	prof, err := s.parse(label, data)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.next
	s.next++
	s.entries = append(s.entries, &Entry{Handle: h, Label: label, Profile: prof})
	return h, nil
}

// AddProfiles parses every source concurrently via an errgroup, mirroring
// the teacher's parallel-repo-load pattern: per-source failures are
// collected rather than aborting the whole batch, and each profile is
// appended to the session atomically once fully parsed.
func (s *Session) AddProfiles(ctx context.Context, sources []Source) ([]Handle, []error) {
	type result struct {
		prof *model.Profile
		err  error
	}
	results := make([]result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = result{err: gctx.Err()}
				return nil
			default:
			}
			prof, err := s.parse(src.Label, src.Data)
			results[i] = result{prof: prof, err: err}
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	handles := make([]Handle, len(sources))
	var errs []error
	for i, r := range results {
		if r.err != nil {
			s.logger.Printf("session: failed to load %q: %v", sources[i].Label, r.err)
			errs = append(errs, r.err)
			continue
		}
		h := s.next
		s.next++
		s.entries = append(s.entries, &Entry{Handle: h, Label: sources[i].Label, Profile: r.prof})
		handles[i] = h
	}
	return handles, errs
}

func (s *Session) parse(label string, data []byte) (*model.Profile, error) {
	format := parser.Sniff(data)
	for _, p := range s.parsers {
		if p.Format() == format || p.Sniff(data) {
			prof, err := p.Parse(label, data)
			if err != nil {
				return nil, err
			}
			return prof, nil
		}
	}
	return nil, spanerr.NewParseError("unknown", spanerr.InvalidFormat, fmt.Errorf("no parser recognizes %q", label))
}

// Clear drops every profile and any derived state the caller holds.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// SetOffset shifts a profile's timeline alignment.
func (s *Session) SetOffset(h Handle, offsetUs int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.find(h)
	if e == nil {
		return spanerr.NewSessionError("setOffset", spanerr.UnknownProfileHandle)
	}
	e.OffsetUs = offsetUs
	return nil
}

// Remove drops one profile from the session.
func (s *Session) Remove(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.Handle == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return spanerr.NewSessionError("remove", spanerr.UnknownProfileHandle)
}

func (s *Session) find(h Handle) *Entry {
	for _, e := range s.entries {
		if e.Handle == h {
			return e
		}
	}
	return nil
}

// Profile returns the profile for h, or nil if unknown.
func (s *Session) Profile(h Handle) *model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.find(h); e != nil {
		return e.Profile
	}
	return nil
}

// Align converts a profile-local timestamp to the session's shared
// timeline: t - profile.StartTimeUs + offset.
func (s *Session) Align(h Handle, localUs int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.find(h)
	if e == nil {
		return 0, false
	}
	return localUs - e.Profile.StartTimeUs + e.OffsetUs, true
}

// Entries returns every loaded entry in insertion order. Callers must not
// mutate the returned slice's Profile pointers.
func (s *Session) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Info summarizes the session for display, per §4.2's info() operation.
func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := Info{ProfileCount: len(s.entries)}
	first := true
	for _, e := range s.entries {
		start := e.Profile.StartTimeUs - e.Profile.StartTimeUs + e.OffsetUs
		end := start + (e.Profile.EndTimeUs - e.Profile.StartTimeUs)
		if first {
			info.VirtualStart, info.VirtualEnd = start, end
			first = false
		} else {
			if start < info.VirtualStart {
				info.VirtualStart = start
			}
			if end > info.VirtualEnd {
				info.VirtualEnd = end
			}
		}
		info.Entries = append(info.Entries, EntryInfo{
			Handle:   e.Handle,
			Label:    e.Label,
			Format:   e.Profile.Format,
			OffsetUs: e.OffsetUs,
		})
	}
	return info
}

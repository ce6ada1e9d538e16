package parser

import (
	"sort"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

// threadBuild tracks the in-progress tree-construction state for one thread.
type threadBuild struct {
	id   int64
	name string

	// openStack holds the FrameIDs of spans currently open, root to leaf.
	openStack []model.FrameID
	// openNames/openCats parallel openStack, used by sample-based
	// reconstruction to find the longest shared stack prefix.
	openNames []int32
	openCats  []int32

	lastChildOf map[model.FrameID]model.FrameID // parent id -> last child id
	rootIDs     []model.FrameID
	rootLast    model.FrameID

	maxDepth uint16
	count    int
}

// Builder consumes a stream of Events (in per-thread timestamp order) and
// incrementally constructs a Profile's span arena and thread list. Format
// modules translate their native representation into Events and never
// build the tree themselves.
type Builder struct {
	Profile *model.Profile
	threads map[int64]*threadBuild
	order   []int64
	lastTs  int64
	minTs   int64
	maxTs   int64
	haveTs  bool
}

// NewBuilder returns a Builder writing into a fresh profile of the given
// format.
func NewBuilder(format model.Format) *Builder {
	return &Builder{
		Profile: model.NewProfile(format),
		threads: make(map[int64]*threadBuild),
	}
}

func (b *Builder) thread(id int64, name string) *threadBuild {
	tb, ok := b.threads[id]
	if !ok {
		tb = &threadBuild{id: id, name: name, lastChildOf: make(map[model.FrameID]model.FrameID)}
		b.threads[id] = tb
		b.order = append(b.order, id)
	} else if name != "" && tb.name == "" {
		tb.name = name
	}
	return tb
}

func (b *Builder) observeTs(ts int64) {
	if !b.haveTs {
		b.minTs, b.maxTs, b.haveTs = ts, ts, true
	}
	if ts < b.minTs {
		b.minTs = ts
	}
	if ts > b.maxTs {
		b.maxTs = ts
	}
	if ts > b.lastTs {
		b.lastTs = ts
	}
}

func (b *Builder) linkChild(tb *threadBuild, parent model.FrameID, child model.FrameID) {
	if parent == 0 {
		if tb.rootLast != 0 {
			b.Profile.SpanByID(tb.rootLast).NextSibling = child
		} else {
			tb.rootIDs = append(tb.rootIDs, child)
		}
		tb.rootLast = child
		return
	}
	if last, ok := tb.lastChildOf[parent]; ok {
		b.Profile.SpanByID(last).NextSibling = child
	} else {
		b.Profile.SpanByID(parent).FirstChild = child
	}
	tb.lastChildOf[parent] = child
}

func (b *Builder) newSpan(tb *threadBuild, parent model.FrameID, name, category string, start int64, depth uint16, flags model.SpanFlags) model.FrameID {
	in := b.Profile.Interner()
	nameID := in.Intern(name)
	catID := int32(-1)
	if category != "" {
		catID = in.Intern(category)
	}
	span := model.Span{
		Parent:   parent,
		ThreadID: tb.id,
		Depth:    depth,
		StartUs:  start,
		Name:     nameID,
		Category: catID,
		Flags:    flags,
	}
	id := b.Profile.AddSpan(span)
	b.linkChild(tb, parent, id)
	if depth+1 > tb.maxDepth {
		tb.maxDepth = depth + 1
	}
	tb.count++
	return id
}

// AddEvent feeds one event into the builder. Events for a given thread must
// arrive in non-decreasing timestamp order.
func (b *Builder) AddEvent(e Event) {
	b.observeTs(e.TimestampUs)
	switch e.Kind {
	case Begin:
		b.handleBegin(e)
	case End:
		b.handleEnd(e)
	case Complete:
		b.observeTs(e.TimestampUs + e.DurationUs)
		b.handleComplete(e)
	case Sample:
		b.handleSample(e)
	}
}

func (b *Builder) handleBegin(e Event) {
	tb := b.thread(e.ThreadID, e.ThreadName)
	var parent model.FrameID
	if n := len(tb.openStack); n > 0 {
		parent = tb.openStack[n-1]
	}
	id := b.newSpan(tb, parent, e.Name, e.Category, e.TimestampUs, uint16(len(tb.openStack)), 0)
	tb.openStack = append(tb.openStack, id)
}

func (b *Builder) handleEnd(e Event) {
	tb := b.thread(e.ThreadID, e.ThreadName)
	n := len(tb.openStack)
	if n == 0 {
		return // unmatched End: ignore rather than fail the whole parse
	}
	id := tb.openStack[n-1]
	tb.openStack = tb.openStack[:n-1]
	span := b.Profile.SpanByID(id)
	end := e.TimestampUs
	if end < span.StartUs {
		end = span.StartUs
	}
	span.EndUs = end
}

func (b *Builder) handleComplete(e Event) {
	tb := b.thread(e.ThreadID, e.ThreadName)
	start := e.TimestampUs
	end := start + e.DurationUs
	if end < start {
		end = start
	}
	// Pop frames that have already closed (non-overlapping with this one).
	for len(tb.openStack) > 0 {
		top := b.Profile.SpanByID(tb.openStack[len(tb.openStack)-1])
		if top.EndUs <= start {
			tb.openStack = tb.openStack[:len(tb.openStack)-1]
			continue
		}
		break
	}
	var parent model.FrameID
	if n := len(tb.openStack); n > 0 {
		parent = tb.openStack[n-1]
	}
	id := b.newSpan(tb, parent, e.Name, e.Category, start, uint16(len(tb.openStack)), 0)
	b.Profile.SpanByID(id).EndUs = end
	tb.openStack = append(tb.openStack, id)
}

// handleSample reconstructs approximate spans from a sampled stack: the
// longest shared prefix with the previous sample's stack stays open;
// frames beyond it close at this sample's timestamp, and new frames for
// the sampled stack's remaining depths open at this sample's timestamp.
func (b *Builder) handleSample(e Event) {
	tb := b.thread(e.ThreadID, e.ThreadName)
	in := b.Profile.Interner()

	prefix := 0
	for prefix < len(tb.openStack) && prefix < len(e.Stack) {
		nameID := in.Intern(e.Stack[prefix].Name)
		catID := int32(-1)
		if e.Stack[prefix].Category != "" {
			catID = in.Intern(e.Stack[prefix].Category)
		}
		if tb.openNames[prefix] != nameID || tb.openCats[prefix] != catID {
			break
		}
		prefix++
	}

	for i := len(tb.openStack) - 1; i >= prefix; i-- {
		span := b.Profile.SpanByID(tb.openStack[i])
		span.EndUs = e.TimestampUs
	}
	tb.openStack = tb.openStack[:prefix]
	tb.openNames = tb.openNames[:prefix]
	tb.openCats = tb.openCats[:prefix]

	for depth := prefix; depth < len(e.Stack); depth++ {
		var parent model.FrameID
		if n := len(tb.openStack); n > 0 {
			parent = tb.openStack[n-1]
		}
		frame := e.Stack[depth]
		id := b.newSpan(tb, parent, frame.Name, frame.Category, e.TimestampUs, uint16(depth), 0)
		tb.openStack = append(tb.openStack, id)

		nameID := in.Intern(frame.Name)
		catID := int32(-1)
		if frame.Category != "" {
			catID = in.Intern(frame.Category)
		}
		tb.openNames = append(tb.openNames, nameID)
		tb.openCats = append(tb.openCats, catID)
	}
}

// Finish closes any still-open spans at the stream's last observed
// timestamp, computes self time for every span, sorts threads by (name,
// id), and returns the completed Profile.
func (b *Builder) Finish(name string) *model.Profile {
	for _, tid := range b.order {
		tb := b.threads[tid]
		for _, id := range tb.openStack {
			span := b.Profile.SpanByID(id)
			if span.EndUs == 0 {
				span.EndUs = b.lastTs
			}
		}
	}

	b.computeSelfTimes()

	sort.Slice(b.order, func(i, j int) bool {
		ti, tj := b.threads[b.order[i]], b.threads[b.order[j]]
		if ti.name != tj.name {
			return ti.name < tj.name
		}
		return ti.id < tj.id
	})

	threads := make([]model.Thread, 0, len(b.order))
	for _, tid := range b.order {
		tb := b.threads[tid]
		threads = append(threads, model.Thread{
			ID:       tb.id,
			Name:     tb.name,
			SortKey:  tb.name,
			RootIDs:  tb.rootIDs,
			Count:    tb.count,
			MaxDepth: tb.maxDepth,
		})
	}

	b.Profile.Label = name
	b.Profile.Threads = threads
	if !b.haveTs {
		b.minTs, b.maxTs = 0, 0
	}
	b.Profile.StartTimeUs = b.minTs
	b.Profile.EndTimeUs = b.maxTs
	return b.Profile
}

func (b *Builder) computeSelfTimes() {
	arena := b.Profile.Arena
	for i := range arena {
		arena[i].SelfUs = arena[i].Duration()
	}
	for i := range arena {
		s := &arena[i]
		if s.Parent == 0 {
			continue
		}
		parent := b.Profile.SpanByID(s.Parent)
		parent.SelfUs -= s.Duration()
	}
	for i := range arena {
		if arena[i].SelfUs < 0 {
			arena[i].SelfUs = 0
		}
	}
}

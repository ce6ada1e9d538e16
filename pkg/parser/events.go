// Package parser provides format detection and the shared span-tree builder
// every format module translates its events into, per the re-architecture
// note against "multiple parsers sharing ad-hoc code": format modules only
// need to produce a stream of begin/end/sample events, never build a tree
// themselves.
package parser

// EventKind discriminates the four event shapes (Begin, End, Sample,
// Complete) a format module can produce.
type EventKind int

const (
	// Begin opens a span; must be matched by a later End on the same thread.
	Begin EventKind = iota
	// End closes the most recently opened span on the thread.
	End
	// Sample carries a full stack snapshot at an instant, for sampled
	// formats (V8, perf, pprof) that never observe explicit begin/end pairs.
	Sample
	// Complete carries a flat, already-durationed span (Chrome's "X" phase,
	// speedscope's event-based schema).
	Complete
)

// Event is one entry in the stream a format module feeds to the Builder.
type Event struct {
	Kind EventKind

	ThreadID    int64
	ThreadName  string
	TimestampUs int64
	DurationUs  int64 // only set for Complete

	Name     string
	Category string

	// Stack is only set for Sample events: innermost-last list of frame
	// names from the root to the currently executing frame.
	Stack []StackFrame
}

// StackFrame is one entry in a Sample event's call stack.
type StackFrame struct {
	Name     string
	Category string
}

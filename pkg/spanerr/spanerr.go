// Package spanerr defines the typed error kinds from the error-handling
// design: parsers and exports surface errors; every other façade command
// validates/clamps its inputs and never fails.
package spanerr

import "fmt"

// ParseKind enumerates parser failure modes.
type ParseKind string

const (
	InvalidFormat          ParseKind = "invalid_format"
	Truncated              ParseKind = "truncated"
	UnsupportedVersion     ParseKind = "unsupported_version"
	InconsistentTimestamps ParseKind = "inconsistent_timestamps"
	TreeConstructionFailed ParseKind = "tree_construction_failed"
)

// SessionKind enumerates session-level failure modes.
type SessionKind string

const (
	UnknownProfileHandle SessionKind = "unknown_profile_handle"
	EmptySession         SessionKind = "empty_session"
)

// ViewKind enumerates view-transform failure modes.
type ViewKind string

const (
	SandwichRequiresSelection ViewKind = "sandwich_requires_selection"
)

// ExportKind enumerates export failure modes.
type ExportKind string

const (
	NoProfileLoaded    ExportKind = "no_profile_loaded"
	SerializationFailed ExportKind = "serialization_failed"
)

// ParseError wraps a ParseKind with the format and an optional underlying
// cause. A parse failure always yields no partial profile.
type ParseError struct {
	Kind   ParseKind
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Format, e.Kind, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Format, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError builds a ParseError.
func NewParseError(format string, kind ParseKind, err error) *ParseError {
	return &ParseError{Kind: kind, Format: format, Err: err}
}

// SessionError wraps a SessionKind.
type SessionError struct {
	Kind SessionKind
	Op   string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s", e.Op, e.Kind)
}

// NewSessionError builds a SessionError.
func NewSessionError(op string, kind SessionKind) *SessionError {
	return &SessionError{Kind: kind, Op: op}
}

// ViewError wraps a ViewKind.
type ViewError struct {
	Kind ViewKind
	View string
}

func (e *ViewError) Error() string {
	return fmt.Sprintf("view %s: %s", e.View, e.Kind)
}

// NewViewError builds a ViewError.
func NewViewError(view string, kind ViewKind) *ViewError {
	return &ViewError{Kind: kind, View: view}
}

// ExportError wraps an ExportKind.
type ExportError struct {
	Kind ExportKind
	Err  error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("export: %s", e.Kind)
}

func (e *ExportError) Unwrap() error { return e.Err }

// NewExportError builds an ExportError.
func NewExportError(kind ExportKind, err error) *ExportError {
	return &ExportError{Kind: kind, Err: err}
}

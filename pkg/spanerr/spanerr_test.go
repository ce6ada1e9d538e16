package spanerr

import (
	"errors"
	"testing"
)

func TestParseErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewParseError("chrome", Truncated, cause)

	if got, want := err.Error(), "parse chrome: truncated: unexpected EOF"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should unwrap to cause")
	}
}

func TestParseErrorWithoutCause(t *testing.T) {
	err := NewParseError("v8", InvalidFormat, nil)
	if got, want := err.Error(), "parse v8: invalid_format"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if err.Unwrap() != nil {
		t.Fatalf("Unwrap() should be nil when Err is nil")
	}
}

func TestSessionErrorMessage(t *testing.T) {
	err := NewSessionError("selectSpan", EmptySession)
	if got, want := err.Error(), "session selectSpan: empty_session"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestViewErrorMessage(t *testing.T) {
	err := NewViewError("sandwich", SandwichRequiresSelection)
	if got, want := err.Error(), "view sandwich: sandwich_requires_selection"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestExportErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewExportError(SerializationFailed, cause)
	if got, want := err.Error(), "export: serialization_failed: disk full"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should unwrap to cause")
	}

	bare := NewExportError(NoProfileLoaded, nil)
	if got, want := bare.Error(), "export: no_profile_loaded"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

package domain

import dErrors "clienthub/pkg/domain-errors"

// Source is a provenance tag recording which channel contributed to a client
// record.
// Invariant: the value must be one of the supported channels.
//
// Usage: construct via ParseSource at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Source string

// Supported submission channels.
const (
	SourceNewsletter        Source = "newsletter"
	SourceEventRegistration Source = "event-registration"
	SourceAdmin             Source = "admin"
)

// validSources is the single source of truth for valid provenance tags.
var validSources = map[Source]bool{
	SourceNewsletter:        true,
	SourceEventRegistration: true,
	SourceAdmin:             true,
}

// ParseSource constructs a Source from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported; no
// other errors are expected.
func ParseSource(s string) (Source, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "source cannot be empty")
	}
	src := Source(s)
	if !src.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid source")
	}
	return src, nil
}

// IsValid checks if the source is one of the supported enum values.
func (s Source) IsValid() bool {
	return validSources[s]
}

// String returns the string representation of the source.
func (s Source) String() string {
	return string(s)
}

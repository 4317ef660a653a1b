// Package domain provides type-safe identifiers and closed vocabularies used
// across the CRM core. Construct values via the Parse functions at trust
// boundaries; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "clienthub/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a RegistrationID where a
// ClientID is expected.
type (
	ClientID       uuid.UUID
	RegistrationID uuid.UUID
)

// EventID identifies an event document. Events are authored by the content
// management side, which assigns opaque string identifiers, so the type is a
// string rather than a UUID.
type EventID string

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseClientID(s string) (ClientID, error) {
	id, err := parseUUID(s, "client ID")
	return ClientID(id), err
}

func ParseRegistrationID(s string) (RegistrationID, error) {
	id, err := parseUUID(s, "registration ID")
	return RegistrationID(id), err
}

func ParseEventID(s string) (EventID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "event ID cannot be empty")
	}
	return EventID(s), nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	return id, nil
}

// String methods - for logging and debugging.

func (id ClientID) String() string       { return uuid.UUID(id).String() }
func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id EventID) String() string        { return string(id) }

// IsNil checks - used for service-layer validation.

func (id ClientID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id RegistrationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshalling - IDs appear in JSON documents in their string form, not
// as raw byte arrays.

func (id ClientID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *ClientID) UnmarshalText(b []byte) error {
	parsed, err := ParseClientID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id RegistrationID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *RegistrationID) UnmarshalText(b []byte) error {
	parsed, err := ParseRegistrationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

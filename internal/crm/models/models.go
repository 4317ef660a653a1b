package models

import (
	"slices"
	"time"

	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
)

// ContactFields carries the scalar contact attributes a submission may supply.
// Any field may be empty; the merge policy decides what an empty value means.
type ContactFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Client is the deduplicated contact entity unifying submissions from
// multiple channels.
//
// Invariants:
//   - at least one of Email/Phone is non-empty at creation time
//   - Sources behaves as a set over the closed Source vocabulary and grows
//     monotonically; it never shrinks automatically
//   - CreatedAt is set exactly once, at first creation
//   - UpdatedAt is refreshed on every successful write
type Client struct {
	ID        id.ClientID `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	City      string      `json:"city"`
	Country   string      `json:"country"`
	Sources   []id.Source `json:"sources"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewClient constructs a first-creation client record from incoming fields.
func NewClient(clientID id.ClientID, in ContactFields, source id.Source, now time.Time) (*Client, error) {
	if in.Email == "" && in.Phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client requires an email or a phone")
	}
	if !source.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid source")
	}
	return &Client{
		ID:        clientID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		City:      in.City,
		Country:   in.Country,
		Sources:   []id.Source{source},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasSource reports whether the provenance set already contains the tag.
func (c *Client) HasSource(source id.Source) bool {
	return slices.Contains(c.Sources, source)
}

// AddSource unions the tag into the provenance set. Adding a tag that is
// already present is a no-op, so repeated submissions from one channel never
// duplicate entries.
func (c *Client) AddSource(source id.Source) {
	if !c.HasSource(source) {
		c.Sources = append(c.Sources, source)
	}
}

// Clone returns a deep copy so in-memory stores can hand out records without
// aliasing the stored slice.
func (c *Client) Clone() *Client {
	dup := *c
	dup.Sources = slices.Clone(c.Sources)
	return &dup
}

// Contact returns the client's scalar fields as a ContactFields value.
func (c *Client) Contact() ContactFields {
	return ContactFields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		City:    c.City,
		Country: c.Country,
	}
}

// Registration is an immutable record of one event sign-up. A registration is
// correlated to a client only by matching contact fields, never by a stored
// foreign key, so registration writes cannot block on identity resolution.
type Registration struct {
	ID           id.RegistrationID     `json:"id"`
	EventID      id.EventID            `json:"event_id"`
	EventTitle   string                `json:"event_title"`
	Name         string                `json:"name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email"`
	Message      string                `json:"message,omitempty"`
	SubmittedVia string                `json:"submitted_via,omitempty"`
	Status       id.RegistrationStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
}

// NewRegistration constructs a pending registration.
func NewRegistration(regID id.RegistrationID, eventID id.EventID, eventTitle, name, phone, email, message, submittedVia string, now time.Time) (*Registration, error) {
	if eventID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "registration requires an event ID")
	}
	if name == "" || phone == "" || email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "registration requires name, phone and email")
	}
	return &Registration{
		ID:           regID,
		EventID:      eventID,
		EventTitle:   eventTitle,
		Name:         name,
		Phone:        phone,
		Email:        email,
		Message:      message,
		SubmittedVia: submittedVia,
		Status:       id.RegistrationStatusPending,
		CreatedAt:    now,
	}, nil
}

// EventAggregate is the per-event registration counter. It is a convenience
// cache updated through a store-native atomic increment; undercounting after
// a failed increment is accepted.
type EventAggregate struct {
	EventID            id.EventID `json:"event_id"`
	RegistrationCount  int64      `json:"registration_count"`
	LastRegistrationAt time.Time  `json:"last_registration_at"`
}

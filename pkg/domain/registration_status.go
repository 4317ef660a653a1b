package domain

import dErrors "clienthub/pkg/domain-errors"

// RegistrationStatus is the lifecycle state of an event registration.
// Registrations are created pending; status changes are an admin concern and
// never rewrite the rest of the record.
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

var validRegistrationStatuses = map[RegistrationStatus]bool{
	RegistrationStatusPending:   true,
	RegistrationStatusConfirmed: true,
	RegistrationStatusCancelled: true,
}

// ParseRegistrationStatus constructs a RegistrationStatus from external input.
func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	st := RegistrationStatus(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status")
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s RegistrationStatus) IsValid() bool {
	return validRegistrationStatuses[s]
}

func (s RegistrationStatus) String() string {
	return string(s)
}

//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseClientID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
//
// Trust boundary functions must handle arbitrary input safely.
func FuzzParseClientID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE clients;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseClientID(input)

		// Either valid ID or error, never both
		if err == nil {
			roundTrip, err2 := ParseClientID(id.String())
			if err2 != nil {
				t.Errorf("Valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("Round-trip changed ID value")
			}
		}

		// Non-UTF8 input must be rejected
		if !utf8.ValidString(input) && err == nil {
			t.Error("Non-UTF8 input was accepted")
		}
	})
}

// FuzzParseUUIDIDs ensures both UUID-backed ID types validate identically.
func FuzzParseUUIDIDs(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		_, errClient := ParseClientID(input)
		_, errRegistration := ParseRegistrationID(input)

		if (errClient == nil) != (errRegistration == nil) {
			t.Error("Inconsistent validation across ID types")
		}
	})
}

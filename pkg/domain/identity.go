package domain

import "strings"

// NormalizeEmail canonicalizes an email address for lookups: surrounding
// whitespace removed, lowercased. An empty result means "no email supplied".
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone canonicalizes a phone number for lookups: formatting
// characters (spaces, dashes, dots, parentheses) are stripped, a single
// leading + is preserved. An empty result means "no phone supplied".
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(phone))
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IdentityKey derives the deterministic dedup key for a contact: normalized
// email when present, otherwise normalized phone. Email wins when both are
// supplied because it is the stronger identity signal for this domain.
// Returns "" when neither field carries a value.
func IdentityKey(email, phone string) string {
	if e := NormalizeEmail(email); e != "" {
		return "email:" + e
	}
	if p := NormalizePhone(phone); p != "" {
		return "phone:" + p
	}
	return ""
}

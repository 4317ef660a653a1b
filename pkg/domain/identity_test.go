package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Dana@Example.COM", "dana@example.com"},
		{"trims whitespace", "  dana@example.com \t", "dana@example.com"},
		{"already canonical", "dana@example.com", "dana@example.com"},
		{"empty stays empty", "", ""},
		{"whitespace only collapses to empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips spaces", "+40 721 555 333", "+40721555333"},
		{"strips dashes and dots", "0721-555.333", "0721555333"},
		{"strips parentheses", "(0721) 555 333", "0721555333"},
		{"keeps leading plus", "+40721555333", "+40721555333"},
		{"drops interior plus", "40+721", "40721"},
		{"empty stays empty", "", ""},
		{"letters are dropped", "call 0721555333", "0721555333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestIdentityKey(t *testing.T) {
	t.Run("email wins over phone", func(t *testing.T) {
		key := IdentityKey("Dana@Example.com", "+40721555333")
		assert.Equal(t, "email:dana@example.com", key)
	})

	t.Run("falls back to phone", func(t *testing.T) {
		key := IdentityKey("", "+40 721 555 333")
		assert.Equal(t, "phone:+40721555333", key)
	})

	t.Run("empty when neither supplied", func(t *testing.T) {
		assert.Empty(t, IdentityKey("", ""))
		assert.Empty(t, IdentityKey("  ", " - "))
	})

	t.Run("equivalent spellings share a key", func(t *testing.T) {
		assert.Equal(t,
			IdentityKey(" DANA@example.com", ""),
			IdentityKey("dana@example.com ", ""),
		)
		assert.Equal(t,
			IdentityKey("", "0721 555 333"),
			IdentityKey("", "0721-555-333"),
		)
	})
}

package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestNewClient(t *testing.T) {
	t.Run("requires email or phone", func(t *testing.T) {
		_, err := NewClient(id.ClientID(uuid.New()), ContactFields{Name: "No Contact"}, id.SourceNewsletter, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("phone alone is enough", func(t *testing.T) {
		c, err := NewClient(id.ClientID(uuid.New()), ContactFields{Phone: "+40721555333"}, id.SourceAdmin, now)
		require.NoError(t, err)
		assert.Equal(t, "+40721555333", c.Phone)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		_, err := NewClient(id.ClientID(uuid.New()), ContactFields{Email: "a@b.com"}, id.Source("webhook"), now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("stamps both timestamps at creation", func(t *testing.T) {
		c, err := NewClient(id.ClientID(uuid.New()), ContactFields{Email: "a@b.com"}, id.SourceNewsletter, now)
		require.NoError(t, err)
		assert.Equal(t, now, c.CreatedAt)
		assert.Equal(t, now, c.UpdatedAt)
		assert.Equal(t, []id.Source{id.SourceNewsletter}, c.Sources)
	})
}

func TestClientSources(t *testing.T) {
	c, err := NewClient(id.ClientID(uuid.New()), ContactFields{Email: "a@b.com"}, id.SourceNewsletter, now)
	require.NoError(t, err)

	assert.True(t, c.HasSource(id.SourceNewsletter))
	assert.False(t, c.HasSource(id.SourceAdmin))

	c.AddSource(id.SourceAdmin)
	c.AddSource(id.SourceAdmin)
	assert.Equal(t, []id.Source{id.SourceNewsletter, id.SourceAdmin}, c.Sources,
		"provenance is a set; re-adding must not duplicate")
}

func TestClientClone(t *testing.T) {
	c, err := NewClient(id.ClientID(uuid.New()), ContactFields{Email: "a@b.com"}, id.SourceNewsletter, now)
	require.NoError(t, err)

	dup := c.Clone()
	dup.Email = "changed@b.com"
	dup.AddSource(id.SourceAdmin)

	assert.Equal(t, "a@b.com", c.Email)
	assert.Equal(t, []id.Source{id.SourceNewsletter}, c.Sources, "clone must not alias the sources slice")
}

func TestClientContact(t *testing.T) {
	c, err := NewClient(id.ClientID(uuid.New()), ContactFields{
		Name:    "Dana",
		Email:   "a@b.com",
		City:    "Cluj",
		Country: "Romania",
	}, id.SourceNewsletter, now)
	require.NoError(t, err)

	assert.Equal(t, ContactFields{
		Name:    "Dana",
		Email:   "a@b.com",
		City:    "Cluj",
		Country: "Romania",
	}, c.Contact())
}

func TestNewRegistration(t *testing.T) {
	regID := id.RegistrationID(uuid.New())

	t.Run("requires an event", func(t *testing.T) {
		_, err := NewRegistration(regID, "", "Gala", "Dana", "+40721", "a@b.com", "", "", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("requires name, phone and email", func(t *testing.T) {
		for _, tc := range []struct{ name, phone, email string }{
			{"", "+40721", "a@b.com"},
			{"Dana", "", "a@b.com"},
			{"Dana", "+40721", ""},
		} {
			_, err := NewRegistration(regID, "evt-gala", "Gala", tc.name, tc.phone, tc.email, "", "", now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		}
	})

	t.Run("starts pending", func(t *testing.T) {
		r, err := NewRegistration(regID, "evt-gala", "Gala", "Dana", "+40721", "a@b.com", "two seats", "Chrome on macOS", now)
		require.NoError(t, err)
		assert.Equal(t, id.RegistrationStatusPending, r.Status)
		assert.Equal(t, now, r.CreatedAt)
		assert.Equal(t, "two seats", r.Message)
		assert.Equal(t, "Chrome on macOS", r.SubmittedVia)
	})
}

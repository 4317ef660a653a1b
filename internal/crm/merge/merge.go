// Package merge implements the fill-forward merge policy for client records.
//
// The policy is "fill-forward, never erase": a non-empty incoming field
// overwrites the stored value, an empty incoming field never blanks a
// previously stored one. A client enriched by one channel must not be
// degraded by a sparser submission from another channel.
package merge

import (
	"time"

	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
)

// Apply computes the write payload combining an existing record with incoming
// fields and a provenance tag. When existing is nil the result is a
// first-creation payload: CreatedAt is set to now. Otherwise CreatedAt is
// carried over unchanged. UpdatedAt is always refreshed. The provenance set
// is updated via set-union, so re-applying the same source is a no-op.
//
// Apply is pure: it never mutates existing and touches no store.
func Apply(existing *models.Client, clientID id.ClientID, in models.ContactFields, source id.Source, now time.Time) *models.Client {
	if existing == nil {
		return &models.Client{
			ID:        clientID,
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			City:      in.City,
			Country:   in.Country,
			Sources:   []id.Source{source},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	merged := existing.Clone()
	merged.Name = fillForward(existing.Name, in.Name)
	merged.Email = fillForward(existing.Email, in.Email)
	merged.Phone = fillForward(existing.Phone, in.Phone)
	merged.City = fillForward(existing.City, in.City)
	merged.Country = fillForward(existing.Country, in.Country)
	merged.AddSource(source)
	merged.UpdatedAt = now
	return merged
}

func fillForward(existing, incoming string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}

package service

import (
	"context"

	"github.com/google/uuid"

	"clienthub/internal/crm/merge"
	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
)

// upsertIdentity runs the shared resolve-merge-write sequence for a
// submission. It returns the written client and whether the submission
// merged into an existing record.
//
// Default mode resolves first and then writes blind, so two concurrent
// first-time submissions of the same person may create two records. Strict
// mode delegates to the store's atomic CreateOrMerge instead.
func (s *Service) upsertIdentity(ctx context.Context, in models.ContactFields, source id.Source) (*models.Client, bool, error) {
	now := s.clock()
	newID := id.ClientID(uuid.New())

	if s.strictIdentity {
		c, err := s.clients.CreateOrMerge(ctx, newID, in, source, now)
		if err != nil {
			return nil, false, dErrors.Wrap(err, dErrors.CodeStore, "failed to write client")
		}
		merged := c.ID != newID
		if merged {
			s.incrementClientsMerged(source)
		} else {
			s.incrementClientsCreated(source)
		}
		return c, merged, nil
	}

	existing, err := s.Resolve(ctx, in.Email, in.Phone)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		c := merge.Apply(nil, newID, in, source, now)
		if err := s.clients.Create(ctx, c); err != nil {
			return nil, false, dErrors.Wrap(err, dErrors.CodeStore, "failed to create client")
		}
		s.incrementClientsCreated(source)
		return c, false, nil
	}

	c := merge.Apply(existing, existing.ID, in, source, now)
	if err := s.clients.MergeWrite(ctx, c); err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeStore, "failed to merge client")
	}
	s.incrementClientsMerged(source)
	return c, true, nil
}

package service

import (
	"context"
	"errors"

	"clienthub/internal/crm/models"
	"clienthub/internal/crm/tracer"
	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
	"clienthub/pkg/platform/sentinel"
)

// Resolve finds the existing client for a submission, email match first,
// phone second. Inputs must already be normalized. A clean miss returns
// (nil, nil) so callers can branch create vs merge without error plumbing.
//
// The two lookups are independent reads, not a snapshot: a concurrent write
// between them can slip past resolution. That window is accepted; see
// CreateOrMerge for the strict alternative.
func (s *Service) Resolve(ctx context.Context, email, phone string) (*models.Client, error) {
	if email == "" && phone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one of email or phone is required")
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanResolve,
		tracer.String(tracer.AttrIdentityKey, tracer.HashContact(id.IdentityKey(email, phone))),
	)
	start := s.clock()
	var resolveErr error
	defer func() {
		s.observeResolveDuration(s.clock().Sub(start))
		span.End(resolveErr)
	}()

	if email != "" {
		c, err := s.clients.FindByEmail(ctx, email)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			resolveErr = dErrors.Wrap(err, dErrors.CodeStore, "failed to look up client by email")
			return nil, resolveErr
		}
	}

	if phone != "" {
		c, err := s.clients.FindByPhone(ctx, phone)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			resolveErr = dErrors.Wrap(err, dErrors.CodeStore, "failed to look up client by phone")
			return nil, resolveErr
		}
	}

	return nil, nil
}

package service

import (
	"context"
	"errors"

	"clienthub/internal/crm/models"
	"clienthub/internal/crm/store/registration"
	"clienthub/internal/crm/tracer"
	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
	"clienthub/pkg/platform/sentinel"
)

// AdminCreateClient creates or merges a client from a manual admin entry.
// Same resolve-merge path as the public gateways, tagged with source admin,
// so an admin re-entering a known person enriches instead of duplicating.
func (s *Service) AdminCreateClient(ctx context.Context, in models.ContactFields) (*models.Client, error) {
	in.Email = id.NormalizeEmail(in.Email)
	in.Phone = id.NormalizePhone(in.Phone)
	if in.Name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if in.Email == "" && in.Phone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one of email or phone is required")
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanAdminUpsert,
		tracer.String(tracer.AttrSource, id.SourceAdmin.String()),
	)
	c, merged, err := s.upsertIdentity(ctx, in, id.SourceAdmin)
	span.SetAttributes(tracer.Bool(tracer.AttrMerged, merged))
	span.End(err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "admin client entry recorded",
		"client_id", c.ID,
		"merged", merged,
	)
	return c, nil
}

// AdminEditClient replaces a client's contact fields wholesale. Unlike the
// merge path, blank fields blank the stored values: the admin is the
// authority on an existing record. The resolver is bypassed entirely.
func (s *Service) AdminEditClient(ctx context.Context, clientID id.ClientID, in models.ContactFields) (*models.Client, error) {
	in.Email = id.NormalizeEmail(in.Email)
	in.Phone = id.NormalizePhone(in.Phone)
	if in.Name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if in.Email == "" && in.Phone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one of email or phone is required")
	}

	existing, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "failed to load client")
	}

	updated := existing.Clone()
	updated.Name = in.Name
	updated.Email = in.Email
	updated.Phone = in.Phone
	updated.City = in.City
	updated.Country = in.Country
	updated.AddSource(id.SourceAdmin)
	updated.UpdatedAt = s.clock()

	if err := s.clients.Overwrite(ctx, updated); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "failed to overwrite client")
	}

	s.logger.InfoContext(ctx, "admin client edit recorded", "client_id", updated.ID)
	return updated, nil
}

// ListClients returns all clients, most recently updated first.
func (s *Service) ListClients(ctx context.Context) ([]*models.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "failed to list clients")
	}
	return clients, nil
}

// ListRegistrations returns registrations newest first, optionally filtered
// by event, email, or phone.
func (s *Service) ListRegistrations(ctx context.Context, f registration.Filter) ([]*models.Registration, error) {
	f.Email = id.NormalizeEmail(f.Email)
	f.Phone = id.NormalizePhone(f.Phone)
	regs, err := s.registrations.List(ctx, f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "failed to list registrations")
	}
	return regs, nil
}

// GetEventAggregate returns the registration counter for one event.
func (s *Service) GetEventAggregate(ctx context.Context, eventID id.EventID) (*models.EventAggregate, error) {
	agg, err := s.aggregates.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "event has no registrations")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "failed to load event aggregate")
	}
	return agg, nil
}

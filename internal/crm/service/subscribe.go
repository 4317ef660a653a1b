package service

import (
	"context"

	"clienthub/internal/crm/models"
	"clienthub/internal/crm/tracer"
	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
)

// Subscribe records a newsletter signup. Email is required; any failure on
// this path propagates to the caller, there is nothing to salvage.
func (s *Service) Subscribe(ctx context.Context, in models.ContactFields) (*models.Client, error) {
	in.Email = id.NormalizeEmail(in.Email)
	in.Phone = id.NormalizePhone(in.Phone)
	if in.Email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanSubscribe,
		tracer.String(tracer.AttrSource, id.SourceNewsletter.String()),
	)
	c, merged, err := s.upsertIdentity(ctx, in, id.SourceNewsletter)
	span.SetAttributes(tracer.Bool(tracer.AttrMerged, merged))
	span.End(err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "newsletter subscription recorded",
		"client_id", c.ID,
		"merged", merged,
	)
	return c, nil
}

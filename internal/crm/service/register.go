package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clienthub/internal/crm/models"
	"clienthub/internal/crm/tracer"
	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
)

// StepName identifies one step of the event-registration sequence.
type StepName string

const (
	StepRegistration  StepName = "registration"
	StepIdentityMerge StepName = "identity_merge"
	StepCounter       StepName = "counter"
	StepNotify        StepName = "notify"
)

// StepStatus is the outcome of a single registration step.
type StepStatus string

const (
	StepOK     StepStatus = "ok"
	StepFailed StepStatus = "failed"
)

// StepResult records the outcome of one step, in execution order.
type StepResult struct {
	Step   StepName
	Status StepStatus
	Err    error
}

// RegisterInput carries an event registration submission.
type RegisterInput struct {
	EventID      string
	EventTitle   string
	Name         string
	Phone        string
	Email        string
	Message      string
	SubmittedVia string
}

// RegistrationResult is the outcome of RegisterForEvent: the stored
// registration plus the ordered per-step outcomes.
type RegistrationResult struct {
	Registration *models.Registration
	Steps        []StepResult
}

// RegisterForEvent runs the registration sequence: store the registration,
// merge the registrant into the client base, bump the event counter, publish
// the created notification. Only the registration write is load-bearing; the
// remaining steps log and continue so a CRM hiccup never loses a signup.
func (s *Service) RegisterForEvent(ctx context.Context, in RegisterInput) (*RegistrationResult, error) {
	in.Email = id.NormalizeEmail(in.Email)
	in.Phone = id.NormalizePhone(in.Phone)

	eventID, err := id.ParseEventID(in.EventID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "eventId is required")
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanRegister,
		tracer.String(tracer.AttrEventID, eventID.String()),
	)
	var spanErr error
	defer func() { span.End(spanErr) }()

	now := s.clock()
	reg, err := models.NewRegistration(
		id.RegistrationID(uuid.New()),
		eventID,
		in.EventTitle,
		in.Name,
		in.Phone,
		in.Email,
		in.Message,
		in.SubmittedVia,
		now,
	)
	if err != nil {
		// Invariant violations from the constructor are input problems here.
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			err = dErrors.New(dErrors.CodeValidation, "name, phone and email are required")
		}
		spanErr = err
		return nil, err
	}

	result := &RegistrationResult{}

	if err := s.registrations.Create(ctx, reg); err != nil {
		spanErr = dErrors.Wrap(err, dErrors.CodeStore, "failed to store registration")
		result.Steps = append(result.Steps, StepResult{Step: StepRegistration, Status: StepFailed, Err: err})
		return nil, spanErr
	}
	result.Registration = reg
	result.Steps = append(result.Steps, StepResult{Step: StepRegistration, Status: StepOK})
	s.incrementRegistrationsCreated()

	result.Steps = append(result.Steps, s.mergeRegistrant(ctx, in, reg))
	result.Steps = append(result.Steps, s.bumpEventCounter(ctx, eventID, now, reg))
	result.Steps = append(result.Steps, s.publishCreated(ctx, reg))

	return result, nil
}

// mergeRegistrant folds the registrant into the client base. Failure is
// logged and absorbed: the registration already exists, losing the CRM
// enrichment is the lesser harm.
func (s *Service) mergeRegistrant(ctx context.Context, in RegisterInput, reg *models.Registration) StepResult {
	fields := models.ContactFields{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if _, _, err := s.upsertIdentity(ctx, fields, id.SourceEventRegistration); err != nil {
		s.logger.ErrorContext(ctx, "failed to merge registrant into client base",
			"error", err,
			"registration_id", reg.ID,
		)
		s.incrementStepFailures(StepIdentityMerge)
		return StepResult{Step: StepIdentityMerge, Status: StepFailed, Err: err}
	}
	return StepResult{Step: StepIdentityMerge, Status: StepOK}
}

func (s *Service) bumpEventCounter(ctx context.Context, eventID id.EventID, now time.Time, reg *models.Registration) StepResult {
	if err := s.aggregates.IncrementRegistrationCount(ctx, eventID, now); err != nil {
		s.logger.ErrorContext(ctx, "failed to increment event registration count",
			"error", err,
			"event_id", eventID,
			"registration_id", reg.ID,
		)
		s.incrementStepFailures(StepCounter)
		return StepResult{Step: StepCounter, Status: StepFailed, Err: err}
	}
	return StepResult{Step: StepCounter, Status: StepOK}
}

func (s *Service) publishCreated(ctx context.Context, reg *models.Registration) StepResult {
	if s.publisher == nil {
		return StepResult{Step: StepNotify, Status: StepOK}
	}
	if err := s.publisher.PublishRegistrationCreated(ctx, reg); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish registration notification",
			"error", err,
			"registration_id", reg.ID,
		)
		s.incrementStepFailures(StepNotify)
		return StepResult{Step: StepNotify, Status: StepFailed, Err: err}
	}
	return StepResult{Step: StepNotify, Status: StepOK}
}

// Package service orchestrates identity resolution, merging, and the three
// intake gateways (newsletter, event registration, admin). Handlers stay
// thin; every write path to the client store goes through here.
package service

import (
	"context"
	"log/slog"
	"time"

	"clienthub/internal/crm/metrics"
	"clienthub/internal/crm/models"
	"clienthub/internal/crm/store/registration"
	"clienthub/internal/crm/tracer"
	id "clienthub/pkg/domain"
)

// ClientStore is the client persistence contract. Create and MergeWrite are
// blind writes: resolution happens before them without a lock, so two
// concurrent first-time submissions of the same person may produce two
// records. CreateOrMerge is the opt-in atomic path that closes that window.
type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	MergeWrite(ctx context.Context, c *models.Client) error
	Overwrite(ctx context.Context, c *models.Client) error
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	FindByPhone(ctx context.Context, phone string) (*models.Client, error)
	FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	CreateOrMerge(ctx context.Context, clientID id.ClientID, in models.ContactFields, source id.Source, now time.Time) (*models.Client, error)
}

// RegistrationStore persists immutable event registrations.
type RegistrationStore interface {
	Create(ctx context.Context, r *models.Registration) error
	FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error)
	List(ctx context.Context, f registration.Filter) ([]*models.Registration, error)
}

// EventAggregates maintains the per-event registration counters.
type EventAggregates interface {
	IncrementRegistrationCount(ctx context.Context, eventID id.EventID, now time.Time) error
	Get(ctx context.Context, eventID id.EventID) (*models.EventAggregate, error)
}

// Publisher emits domain notifications. Publishing is always best-effort.
type Publisher interface {
	PublishRegistrationCreated(ctx context.Context, r *models.Registration) error
}

// Service implements the CRM intake gateways over the stores above.
type Service struct {
	clients        ClientStore
	registrations  RegistrationStore
	aggregates     EventAggregates
	publisher      Publisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         tracer.Tracer
	clock          func() time.Time
	strictIdentity bool
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithStrictIdentity routes intake writes through the store's atomic
// CreateOrMerge, trading write concurrency for a guaranteed single record
// per identity key. Off by default.
func WithStrictIdentity(strict bool) Option {
	return func(s *Service) {
		s.strictIdentity = strict
	}
}

// New constructs a Service.
func New(clients ClientStore, registrations RegistrationStore, aggregates EventAggregates, opts ...Option) *Service {
	s := &Service{
		clients:       clients,
		registrations: registrations,
		aggregates:    aggregates,
		logger:        slog.Default(),
		tracer:        tracer.NewNoop(),
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) incrementClientsCreated(source id.Source) {
	if s.metrics != nil {
		s.metrics.IncrementClientsCreated(source.String())
	}
}

func (s *Service) incrementClientsMerged(source id.Source) {
	if s.metrics != nil {
		s.metrics.IncrementClientsMerged(source.String())
	}
}

func (s *Service) incrementRegistrationsCreated() {
	if s.metrics != nil {
		s.metrics.IncrementRegistrationsCreated()
	}
}

func (s *Service) incrementStepFailures(step StepName) {
	if s.metrics != nil {
		s.metrics.IncrementStepFailures(string(step))
	}
}

func (s *Service) observeResolveDuration(d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveResolveDuration(d)
	}
}

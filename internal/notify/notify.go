// Package notify publishes submission notifications for downstream consumers
// (the confirmation-mail worker, reporting). Publishing is strictly
// best-effort: a failed publish is logged by the caller and never fails the
// triggering request.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clienthub/internal/crm/models"
	"clienthub/internal/platform/kafka/producer"
)

// TopicRegistrationCreated carries one message per accepted event
// registration.
const TopicRegistrationCreated = "crm.registration.created"

// RegistrationCreated is the wire payload for a new registration.
type RegistrationCreated struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// KafkaPublisher publishes notifications through the platform Kafka producer.
type KafkaPublisher struct {
	producer *producer.Producer
}

// NewKafka creates a Kafka-backed publisher and ensures the topic exists.
func NewKafka(ctx context.Context, p *producer.Producer) (*KafkaPublisher, error) {
	if err := p.EnsureTopic(ctx, TopicRegistrationCreated, 1, 1); err != nil {
		return nil, fmt.Errorf("ensure notify topic: %w", err)
	}
	return &KafkaPublisher{producer: p}, nil
}

// PublishRegistrationCreated emits one registration.created message, keyed by
// event so per-event ordering survives partitioning.
func (p *KafkaPublisher) PublishRegistrationCreated(ctx context.Context, r *models.Registration) error {
	payload, err := json.Marshal(RegistrationCreated{
		RegistrationID: r.ID.String(),
		EventID:        r.EventID.String(),
		EventTitle:     r.EventTitle,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Status:         r.Status.String(),
		CreatedAt:      r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal registration created: %w", err)
	}
	return p.producer.Produce(ctx, &producer.Message{
		Topic: TopicRegistrationCreated,
		Key:   []byte(r.EventID.String()),
		Value: payload,
	})
}

// NoopPublisher discards all notifications. Used when Kafka is not configured
// and in tests.
type NoopPublisher struct{}

// NewNoop creates a publisher that discards all messages.
func NewNoop() *NoopPublisher {
	return &NoopPublisher{}
}

// PublishRegistrationCreated discards the notification.
func (p *NoopPublisher) PublishRegistrationCreated(context.Context, *models.Registration) error {
	return nil
}

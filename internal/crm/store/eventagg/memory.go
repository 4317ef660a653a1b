// Package eventagg maintains the per-event registration counter.
//
// The counter is the one resource in this core where concurrent correctness
// matters: increments must go through a store-native atomic operation, never
// read-modify-write.
package eventagg

import (
	"context"
	"sync"
	"time"

	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
	"clienthub/pkg/platform/sentinel"
)

// ErrNotFound is returned when no aggregate exists for an event.
var ErrNotFound = sentinel.ErrNotFound

// InMemory keeps event aggregates in memory for tests.
type InMemory struct {
	mu         sync.Mutex
	aggregates map[id.EventID]*models.EventAggregate
}

// NewInMemory creates an in-memory aggregate store.
func NewInMemory() *InMemory {
	return &InMemory{aggregates: make(map[id.EventID]*models.EventAggregate)}
}

// IncrementRegistrationCount atomically bumps the counter and records the
// increment time. Missing aggregates are created on first increment.
func (s *InMemory) IncrementRegistrationCount(_ context.Context, eventID id.EventID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg, ok := s.aggregates[eventID]
	if !ok {
		agg = &models.EventAggregate{EventID: eventID}
		s.aggregates[eventID] = agg
	}
	agg.RegistrationCount++
	agg.LastRegistrationAt = now
	return nil
}

// Get returns the aggregate for an event.
func (s *InMemory) Get(_ context.Context, eventID id.EventID) (*models.EventAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if agg, ok := s.aggregates[eventID]; ok {
		dup := *agg
		return &dup, nil
	}
	return nil, ErrNotFound
}

package registration

import (
	"context"
	"sort"
	"sync"

	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
	"clienthub/pkg/platform/sentinel"
)

// ErrNotFound is returned when no registration matches a lookup.
var ErrNotFound = sentinel.ErrNotFound

// Filter narrows a registration listing. Zero-value fields are ignored; set
// fields are ANDed together.
type Filter struct {
	EventID id.EventID
	Email   string
	Phone   string
}

// InMemory stores registrations in memory for tests.
// Registrations are immutable after creation, so no update path exists.
type InMemory struct {
	mu            sync.RWMutex
	registrations map[id.RegistrationID]*models.Registration
}

// NewInMemory creates an in-memory registration store.
func NewInMemory() *InMemory {
	return &InMemory{registrations: make(map[id.RegistrationID]*models.Registration)}
}

// Create persists a new registration.
func (s *InMemory) Create(_ context.Context, r *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := *r
	s.registrations[r.ID] = &dup
	return nil
}

// FindByID retrieves a registration by id.
func (s *InMemory) FindByID(_ context.Context, regID id.RegistrationID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.registrations[regID]; ok {
		dup := *r
		return &dup, nil
	}
	return nil, ErrNotFound
}

// List returns registrations matching the filter, newest first by CreatedAt.
func (s *InMemory) List(_ context.Context, f Filter) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Registration
	for _, r := range s.registrations {
		if f.EventID != "" && r.EventID != f.EventID {
			continue
		}
		if f.Email != "" && r.Email != f.Email {
			continue
		}
		if f.Phone != "" && r.Phone != f.Phone {
			continue
		}
		dup := *r
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

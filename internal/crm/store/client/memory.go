package client

import (
	"context"
	"sort"
	"sync"
	"time"

	"clienthub/internal/crm/merge"
	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
	"clienthub/pkg/platform/sentinel"
)

// ErrNotFound is returned when no client matches a lookup. ErrConflict only
// ever surfaces from an id collision, which the uuid generator makes
// practically impossible.
var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)

// InMemory stores clients in memory for tests and single-process deployments.
// Maintains secondary indexes for O(1) email and phone lookups.
//
// The email/phone indexes are deliberately NOT unique: Create is a blind
// insert, and two concurrent first-time submissions with the same email may
// both land. The index then points at the most recently written record, which
// matches the "at most one match" lookup contract.
type InMemory struct {
	mu      sync.RWMutex
	clients map[id.ClientID]*models.Client
	byEmail map[string]id.ClientID
	byPhone map[string]id.ClientID
}

// NewInMemory creates an in-memory client store with initialized indexes.
func NewInMemory() *InMemory {
	return &InMemory{
		clients: make(map[id.ClientID]*models.Client),
		byEmail: make(map[string]id.ClientID),
		byPhone: make(map[string]id.ClientID),
	}
}

// Create persists a new client and updates secondary indexes. No uniqueness
// is enforced on email or phone; routing writes through the resolver is the
// only thing keeping the collection deduplicated.
func (s *InMemory) Create(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(c.Clone())
	return nil
}

// MergeWrite persists a merge payload computed by the merge engine. The write
// is blind create-or-update by id: no version check, last writer wins.
func (s *InMemory) MergeWrite(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.clients[c.ID]; ok {
		s.unindex(existing)
	}
	s.put(c.Clone())
	return nil
}

// Overwrite persists an authoritative admin edit. All scalar fields are
// written verbatim, including blanks. Returns ErrNotFound when the client
// does not exist; admin edits never create records.
func (s *InMemory) Overwrite(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.clients[c.ID]
	if !ok {
		return ErrNotFound
	}
	s.unindex(existing)
	s.put(c.Clone())
	return nil
}

// FindByEmail retrieves a client by exact email match.
// Returns ErrNotFound if no client has the given email.
func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if email == "" {
		return nil, ErrNotFound
	}
	if clientID, ok := s.byEmail[email]; ok {
		return s.clients[clientID].Clone(), nil
	}
	return nil, ErrNotFound
}

// FindByPhone retrieves a client by exact phone match.
// Returns ErrNotFound if no client has the given phone.
func (s *InMemory) FindByPhone(_ context.Context, phone string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if phone == "" {
		return nil, ErrNotFound
	}
	if clientID, ok := s.byPhone[phone]; ok {
		return s.clients[clientID].Clone(), nil
	}
	return nil, ErrNotFound
}

// FindByID retrieves a client by id.
func (s *InMemory) FindByID(_ context.Context, clientID id.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.clients[clientID]; ok {
		return c.Clone(), nil
	}
	return nil, ErrNotFound
}

// List returns all clients ordered by UpdatedAt descending.
func (s *InMemory) List(_ context.Context) ([]*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// CreateOrMerge is the opt-in stronger-consistency write: it derives the
// deterministic identity key from the incoming fields and performs
// create-if-absent-else-merge as one atomic operation under the store lock,
// removing the duplicate-create race of the resolve-then-write path.
func (s *InMemory) CreateOrMerge(_ context.Context, clientID id.ClientID, in models.ContactFields, source id.Source, now time.Time) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *models.Client
	if in.Email != "" {
		if hit, ok := s.byEmail[in.Email]; ok {
			existing = s.clients[hit]
		}
	}
	if existing == nil && in.Phone != "" {
		if hit, ok := s.byPhone[in.Phone]; ok {
			existing = s.clients[hit]
		}
	}

	merged := merge.Apply(existing, clientID, in, source, now)
	if existing != nil {
		s.unindex(existing)
	}
	s.put(merged)
	return merged.Clone(), nil
}

// put stores the record and refreshes indexes. Caller holds the write lock.
func (s *InMemory) put(c *models.Client) {
	s.clients[c.ID] = c
	if c.Email != "" {
		s.byEmail[c.Email] = c.ID
	}
	if c.Phone != "" {
		s.byPhone[c.Phone] = c.ID
	}
}

// unindex drops index entries still pointing at the record. Caller holds the
// write lock.
func (s *InMemory) unindex(c *models.Client) {
	if c.Email != "" && s.byEmail[c.Email] == c.ID {
		delete(s.byEmail, c.Email)
	}
	if c.Phone != "" && s.byPhone[c.Phone] == c.ID {
		delete(s.byPhone, c.Phone)
	}
}

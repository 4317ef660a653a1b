package eventagg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
)

// PostgresStore persists event aggregates in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed aggregate store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// IncrementRegistrationCount bumps the counter with a single atomic
// increment statement. The event row is created on first increment when the
// content side has not written it yet.
func (s *PostgresStore) IncrementRegistrationCount(ctx context.Context, eventID id.EventID, now time.Time) error {
	query := `
		INSERT INTO events (id, registration_count, last_registration_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (id) DO UPDATE SET
			registration_count = events.registration_count + 1,
			last_registration_at = EXCLUDED.last_registration_at
	`
	if _, err := s.db.ExecContext(ctx, query, string(eventID), now); err != nil {
		return fmt.Errorf("increment registration count: %w", err)
	}
	return nil
}

// Get returns the aggregate for an event.
func (s *PostgresStore) Get(ctx context.Context, eventID id.EventID) (*models.EventAggregate, error) {
	query := `
		SELECT id, registration_count, last_registration_at
		FROM events
		WHERE id = $1
	`
	var (
		agg    models.EventAggregate
		rawID  string
		lastAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, string(eventID)).Scan(&rawID, &agg.RegistrationCount, &lastAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event aggregate: %w", err)
	}
	agg.EventID = id.EventID(rawID)
	if lastAt.Valid {
		agg.LastRegistrationAt = lastAt.Time
	}
	return &agg, nil
}

package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
)

// PostgresStore persists registrations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registration store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const registrationColumns = `id, event_id, event_title, name, phone, email, message, submitted_via, status, created_at`

// Create persists a new registration.
func (s *PostgresStore) Create(ctx context.Context, r *models.Registration) error {
	if r == nil {
		return fmt.Errorf("registration is required")
	}
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(r.ID),
		string(r.EventID),
		r.EventTitle,
		r.Name,
		r.Phone,
		r.Email,
		r.Message,
		r.SubmittedVia,
		string(r.Status),
		r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// FindByID retrieves a registration by id.
func (s *PostgresStore) FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = $1
	`
	r, err := scanRegistration(s.db.QueryRowContext(ctx, query, uuid.UUID(regID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// List returns registrations matching the filter, newest first by created_at.
func (s *PostgresStore) List(ctx context.Context, f Filter) ([]*models.Registration, error) {
	var (
		where []string
		args  []any
	)
	if f.EventID != "" {
		args = append(args, string(f.EventID))
		where = append(where, "event_id = $"+strconv.Itoa(len(args)))
	}
	if f.Email != "" {
		args = append(args, f.Email)
		where = append(where, "email = $"+strconv.Itoa(len(args)))
	}
	if f.Phone != "" {
		args = append(args, f.Phone)
		where = append(where, "phone = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + registrationColumns + ` FROM registrations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []*models.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations rows: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(scanner rowScanner) (*models.Registration, error) {
	var (
		r       models.Registration
		rawID   uuid.UUID
		eventID string
		status  string
	)
	err := scanner.Scan(
		&rawID,
		&eventID,
		&r.EventTitle,
		&r.Name,
		&r.Phone,
		&r.Email,
		&r.Message,
		&r.SubmittedVia,
		&status,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	r.ID = id.RegistrationID(rawID)
	r.EventID = id.EventID(eventID)
	r.Status = id.RegistrationStatus(status)
	return &r, nil
}

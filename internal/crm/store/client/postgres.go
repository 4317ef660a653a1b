package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"clienthub/internal/crm/merge"
	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
)

// PostgresStore persists client records in PostgreSQL.
//
// The clients table carries no unique constraint on email or phone:
// uniqueness is a convention upheld only by routing writes through the
// resolver and merge engine. CreateOrMerge is the one operation that closes
// the race, using a transaction-scoped advisory lock on the identity key
// instead of a schema constraint, so the default path keeps its documented
// semantics.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed client store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const clientColumns = `id, name, email, phone, city, country, sources, created_at, updated_at`

// Create persists a new client. Blind insert; duplicate emails or phones are
// not rejected here.
func (s *PostgresStore) Create(ctx context.Context, c *models.Client) error {
	if c == nil {
		return fmt.Errorf("client is required")
	}
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(c.ID),
		c.Name,
		c.Email,
		c.Phone,
		c.City,
		c.Country,
		pq.Array(sourceStrings(c.Sources)),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("client already exists: %w", ErrConflict)
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// MergeWrite persists a merge payload computed by the merge engine. The write
// is a blind create-or-update by id with no version check, matching the
// document store's merge-style set.
func (s *PostgresStore) MergeWrite(ctx context.Context, c *models.Client) error {
	if c == nil {
		return fmt.Errorf("client is required")
	}
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			sources = EXCLUDED.sources,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(c.ID),
		c.Name,
		c.Email,
		c.Phone,
		c.City,
		c.Country,
		pq.Array(sourceStrings(c.Sources)),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("merge write client: %w", err)
	}
	return nil
}

// Overwrite persists an authoritative admin edit: all scalar fields written
// verbatim, blanks included. created_at is never touched. Returns ErrNotFound
// when the client does not exist.
func (s *PostgresStore) Overwrite(ctx context.Context, c *models.Client) error {
	if c == nil {
		return fmt.Errorf("client is required")
	}
	query := `
		UPDATE clients
		SET name = $2,
			email = $3,
			phone = $4,
			city = $5,
			country = $6,
			sources = $7,
			updated_at = $8
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(c.ID),
		c.Name,
		c.Email,
		c.Phone,
		c.City,
		c.Country,
		pq.Array(sourceStrings(c.Sources)),
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("overwrite client: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("overwrite client rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByEmail retrieves a client by exact email match. When the blind-insert
// race has produced duplicates, the most recently updated record wins.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	if email == "" {
		return nil, ErrNotFound
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE email = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`
	return scanClient(s.db.QueryRowContext(ctx, query, email))
}

// FindByPhone retrieves a client by exact phone match.
func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*models.Client, error) {
	if phone == "" {
		return nil, ErrNotFound
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE phone = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`
	return scanClient(s.db.QueryRowContext(ctx, query, phone))
}

// FindByID retrieves a client by id.
func (s *PostgresStore) FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE id = $1
	`
	return scanClient(s.db.QueryRowContext(ctx, query, uuid.UUID(clientID)))
}

// List returns all clients ordered by updated_at descending.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []*models.Client
	for rows.Next() {
		c, err := scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients rows: %w", err)
	}
	return out, nil
}

// CreateOrMerge performs create-if-absent-else-merge as one atomic operation.
// A transaction-scoped advisory lock on the identity key serializes
// concurrent submissions for the same contact without imposing a unique
// index on the collection.
func (s *PostgresStore) CreateOrMerge(ctx context.Context, clientID id.ClientID, in models.ContactFields, source id.Source, now time.Time) (*models.Client, error) {
	key := id.IdentityKey(in.Email, in.Phone)
	if key == "" {
		return nil, fmt.Errorf("contact fields carry no identity")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create-or-merge: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return nil, fmt.Errorf("lock identity key: %w", err)
	}

	existing, err := findForIdentity(ctx, tx, in)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	merged := merge.Apply(existing, clientID, in, source, now)
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			sources = EXCLUDED.sources,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.ExecContext(ctx, query,
		uuid.UUID(merged.ID),
		merged.Name,
		merged.Email,
		merged.Phone,
		merged.City,
		merged.Country,
		pq.Array(sourceStrings(merged.Sources)),
		merged.CreatedAt,
		merged.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("create-or-merge client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create-or-merge: %w", err)
	}
	return merged, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func findForIdentity(ctx context.Context, tx *sql.Tx, in models.ContactFields) (*models.Client, error) {
	if in.Email != "" {
		c, err := scanClient(tx.QueryRowContext(ctx, `
			SELECT `+clientColumns+`
			FROM clients
			WHERE email = $1
			ORDER BY updated_at DESC
			LIMIT 1
		`, in.Email))
		if err == nil || !errors.Is(err, ErrNotFound) {
			return c, err
		}
	}
	if in.Phone != "" {
		return scanClient(tx.QueryRowContext(ctx, `
			SELECT `+clientColumns+`
			FROM clients
			WHERE phone = $1
			ORDER BY updated_at DESC
			LIMIT 1
		`, in.Phone))
	}
	return nil, ErrNotFound
}

func scanClient(row *sql.Row) (*models.Client, error) {
	c, err := scanClientRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanClientRow(scanner rowScanner) (*models.Client, error) {
	var (
		c       models.Client
		rawID   uuid.UUID
		sources []string
	)
	err := scanner.Scan(
		&rawID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.City,
		&c.Country,
		pq.Array(&sources),
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	c.ID = id.ClientID(rawID)
	c.Sources = make([]id.Source, 0, len(sources))
	for _, s := range sources {
		c.Sources = append(c.Sources, id.Source(s))
	}
	return &c, nil
}

func sourceStrings(sources []id.Source) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, string(s))
	}
	return out
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505). Only the id primary key can trigger it here.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository. The
// document lives in a single row and is replaced whole on every save.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL favorites repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the backing table if it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS favorite_locations (
			id INTEGER PRIMARY KEY,
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

// Load retrieves the favorites document.
func (r *PostgresRepository) Load(ctx context.Context) (*Document, error) {
	query := `
		SELECT document
		FROM favorite_locations
		WHERE id = 1
	`

	var raw []byte
	err := r.pool.QueryRow(ctx, query).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NewDocument(), nil
		}
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Save replaces the favorites document.
func (r *PostgresRepository) Save(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO favorite_locations (id, document, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query, raw, time.Now())
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultTable is the table created by the bundled migrations.
const DefaultTable = "fsm_resources"

// Querier is the subset of *pgxpool.Pool and pgx.Tx used by Postgres.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Postgres stores resources as JSONB rows keyed by (kind, id).
type Postgres[T any] struct {
	db   Querier
	kind string
	key  KeyFunc[T]

	selectSQL string
	upsertSQL string
}

// PostgresOption configures a Postgres store.
type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	table string
}

// WithTable overrides DefaultTable.
func WithTable(name string) PostgresOption {
	return func(c *postgresConfig) {
		if name != "" {
			c.table = name
		}
	}
}

// NewPostgres creates a store for resources of the given kind, e.g. "articles".
func NewPostgres[T any](db Querier, kind string, key KeyFunc[T], opts ...PostgresOption) *Postgres[T] {
	cfg := postgresConfig{table: DefaultTable}
	for _, opt := range opts {
		opt(&cfg)
	}
	table := pgx.Identifier{cfg.table}.Sanitize()

	return &Postgres[T]{
		db:        db,
		kind:      kind,
		key:       key,
		selectSQL: fmt.Sprintf("SELECT data FROM %s WHERE kind = $1 AND id = $2", table),
		upsertSQL: fmt.Sprintf(`INSERT INTO %s (kind, id, data, updated_at) VALUES ($1, $2, $3, now())
ON CONFLICT (kind, id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`, table),
	}
}

func (p *Postgres[T]) Get(ctx context.Context, id string) (T, error) {
	var data []byte
	if err := p.db.QueryRow(ctx, p.selectSQL, p.kind, id).Scan(&data); err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return zero, fmt.Errorf("select %s %s: %w", p.kind, id, err)
	}
	return decode[T](data)
}

func (p *Postgres[T]) Save(ctx context.Context, v T) error {
	id := p.key(v)
	if id == "" {
		return ErrEmptyKey
	}
	data, err := encode(v)
	if err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, p.upsertSQL, p.kind, id, data); err != nil {
		return fmt.Errorf("upsert %s %s: %w", p.kind, id, err)
	}
	return nil
}

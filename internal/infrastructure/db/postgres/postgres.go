package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 10 * time.Second

// Connect establishes a pgx connection pool and verifies connectivity with a
// ping. A default timeout is applied to the initial handshake.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres parse config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return pool, nil
}

// schema is applied at startup. The unique constraints on username and email
// back the Conflict semantics of registration; the partial unique index on
// (owner_id, idempotency_key) backs replay-safe task creation.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              BIGSERIAL PRIMARY KEY,
	username        TEXT NOT NULL UNIQUE,
	email           TEXT NOT NULL UNIQUE,
	first_name      TEXT NOT NULL,
	last_name       TEXT NOT NULL,
	hashed_password TEXT NOT NULL,
	role            TEXT NOT NULL,
	phone_number    TEXT NOT NULL DEFAULT '',
	is_active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id              BIGSERIAL PRIMARY KEY,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	priority        INT NOT NULL DEFAULT 1,
	completed       BOOLEAN NOT NULL DEFAULT FALSE,
	owner_id        BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	idempotency_key TEXT
);

CREATE INDEX IF NOT EXISTS idx_tasks_owner_id ON tasks (owner_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_owner_idem
	ON tasks (owner_id, idempotency_key)
	WHERE idempotency_key IS NOT NULL;
`

// EnsureSchema creates the tables and indexes the repositories depend on.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres ensure schema: %w", err)
	}
	return nil
}

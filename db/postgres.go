package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"idea-lab/config"
)

// NewPostgresPool creates a pgx connection pool and makes sure the schema exists.
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}

	config.Logger.Info("PostgreSQL connected and schema ensured")
	return pool, nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS idea_plans (
	id UUID PRIMARY KEY,
	owner_id VARCHAR(128) NOT NULL,
	idea JSONB NOT NULL,
	plan JSONB NOT NULL,
	keywords TEXT[] NOT NULL DEFAULT '{}',
	search_query TEXT NOT NULL DEFAULT '',
	created_date DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_idea_plans_owner_created ON idea_plans(owner_id, created_at DESC);

CREATE TABLE IF NOT EXISTS ai_logs (
	id UUID PRIMARY KEY,
	provider VARCHAR(50) NOT NULL DEFAULT '',
	mode VARCHAR(50) NOT NULL,
	model_name VARCHAR(100) NOT NULL DEFAULT '',
	model_version VARCHAR(100) NOT NULL DEFAULT '',
	input_tokens BIGINT NOT NULL DEFAULT 0,
	output_tokens BIGINT NOT NULL DEFAULT 0,
	total_tokens BIGINT NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	error_message TEXT,
	input_prompt TEXT NOT NULL DEFAULT '',
	output_response TEXT NOT NULL DEFAULT '',
	requested_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ai_logs_requested_at ON ai_logs(requested_at DESC);
`

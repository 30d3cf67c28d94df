package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens or creates the SQLite database at path and ensures the schema.
func OpenSQLite(path string) (*sql.DB, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure sqlite dir: %w", err)
	}

	conn, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite 는 단일 writer 이므로 커넥션 하나로 직렬화한다.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return conn, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS idea_plans (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	owner_id TEXT NOT NULL,
	idea_json TEXT NOT NULL,
	plan_json TEXT NOT NULL,
	keywords_json TEXT NOT NULL,
	search_query TEXT NOT NULL DEFAULT '',
	created_date TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_idea_plans_owner ON idea_plans(owner_id, seq DESC);

CREATE TABLE IF NOT EXISTS ai_logs (
	id TEXT PRIMARY KEY,
	provider TEXT NOT NULL DEFAULT '',
	mode TEXT NOT NULL,
	model_name TEXT NOT NULL DEFAULT '',
	model_version TEXT NOT NULL DEFAULT '',
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	total_tokens INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	input_prompt TEXT NOT NULL DEFAULT '',
	output_response TEXT NOT NULL DEFAULT '',
	requested_at TEXT NOT NULL,
	completed_at TEXT NOT NULL
);
`

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"idea-lab/models"
)

// SQLiteStore 는 단일 프로세스 로컬 실행용 백엔드다.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreatePlan(ctx context.Context, plan *models.IdeaPlan) (*models.IdeaPlan, error) {
	out := clonePlan(plan)
	out.ID = uuid.New().String()
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now()
	}

	ideaJSON, err := json.Marshal(out.Idea)
	if err != nil {
		return nil, fmt.Errorf("marshal idea: %w", err)
	}
	planJSON, err := json.Marshal(out.Plan)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	keywords := out.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("marshal keywords: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO idea_plans (id, owner_id, idea_json, plan_json, keywords_json, search_query, created_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		out.ID,
		out.OwnerID,
		string(ideaJSON),
		string(planJSON),
		string(keywordsJSON),
		out.SearchQuery,
		out.CreatedDate,
		out.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create idea plan: %w", err)
	}
	return out, nil
}

const sqlitePlanColumns = `id, owner_id, idea_json, plan_json, keywords_json, search_query, created_date, created_at`

func (s *SQLiteStore) FindPlanByID(ctx context.Context, id string) (*models.IdeaPlan, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqlitePlanColumns+` FROM idea_plans WHERE id = ?`, id)
	plan, err := scanSQLitePlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get idea plan: %w", err)
	}
	return plan, nil
}

func (s *SQLiteStore) ListPlansByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.IdeaPlan, int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM idea_plans WHERE owner_id = ?`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count idea plans: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sqlitePlanColumns+`
		FROM idea_plans
		WHERE owner_id = ?
		ORDER BY seq DESC
		LIMIT ? OFFSET ?
	`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query idea plans: %w", err)
	}
	defer rows.Close()

	out := make([]*models.IdeaPlan, 0, limit)
	for rows.Next() {
		plan, err := scanSQLitePlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan idea plan: %w", err)
		}
		out = append(out, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *SQLiteStore) DeletePlan(ctx context.Context, id, ownerID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM idea_plans WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete idea plan: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) InsertAILog(ctx context.Context, log *models.AILog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	if log.CompletedAt.IsZero() {
		log.CompletedAt = log.RequestedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_logs (id, provider, mode, model_name, model_version, input_tokens, output_tokens,
		                     total_tokens, duration_ms, error_message, input_prompt, output_response,
		                     requested_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		log.ID, log.Provider, log.Mode, log.ModelName, log.ModelVersion,
		log.InputTokens, log.OutputTokens, log.TotalTokens, log.DurationMs,
		log.ErrorMessage, log.InputPrompt, log.OutputResponse,
		log.RequestedAt.UTC().Format(time.RFC3339Nano),
		log.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ai log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePlan(row rowScanner) (*models.IdeaPlan, error) {
	var (
		plan         models.IdeaPlan
		ideaJSON     string
		planJSON     string
		keywordsJSON string
		createdAt    string
	)
	if err := row.Scan(
		&plan.ID,
		&plan.OwnerID,
		&ideaJSON,
		&planJSON,
		&keywordsJSON,
		&plan.SearchQuery,
		&plan.CreatedDate,
		&createdAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ideaJSON), &plan.Idea); err != nil {
		return nil, fmt.Errorf("decode idea: %w", err)
	}
	if err := json.Unmarshal([]byte(planJSON), &plan.Plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &plan.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	plan.CreatedAt = t
	return &plan, nil
}

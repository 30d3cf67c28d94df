package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"idea-lab/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreatePlan(ctx context.Context, plan *models.IdeaPlan) (*models.IdeaPlan, error) {
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

	query := `
		INSERT INTO idea_plans (id, owner_id, idea, plan, keywords, search_query, created_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8)
	`
	if _, err := s.pool.Exec(ctx, query,
		out.ID,
		out.OwnerID,
		ideaJSON,
		planJSON,
		out.Keywords,
		out.SearchQuery,
		out.CreatedDate,
		out.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to create idea plan: %w", err)
	}
	return out, nil
}

const selectPlanColumns = `id::text, owner_id, idea, plan, keywords, search_query, created_date::text, created_at`

func (s *PostgresStore) FindPlanByID(ctx context.Context, id string) (*models.IdeaPlan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	row := s.pool.QueryRow(ctx, `SELECT `+selectPlanColumns+` FROM idea_plans WHERE id = $1`, id)
	plan, err := scanPostgresPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get idea plan: %w", err)
	}
	return plan, nil
}

func (s *PostgresStore) ListPlansByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.IdeaPlan, int64, error) {
	var total int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM idea_plans WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count idea plans: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+selectPlanColumns+`
		FROM idea_plans
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`, ownerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query idea plans: %w", err)
	}
	defer rows.Close()

	out := make([]*models.IdeaPlan, 0, limit)
	for rows.Next() {
		plan, err := scanPostgresPlan(rows)
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

func (s *PostgresStore) DeletePlan(ctx context.Context, id, ownerID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	result, err := s.pool.Exec(ctx, `DELETE FROM idea_plans WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete idea plan: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (s *PostgresStore) InsertAILog(ctx context.Context, log *models.AILog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	if log.CompletedAt.IsZero() {
		log.CompletedAt = log.RequestedAt
	}

	query := `
		INSERT INTO ai_logs (id, provider, mode, model_name, model_version, input_tokens, output_tokens,
		                     total_tokens, duration_ms, error_message, input_prompt, output_response,
		                     requested_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	if _, err := s.pool.Exec(ctx, query,
		log.ID, log.Provider, log.Mode, log.ModelName, log.ModelVersion,
		log.InputTokens, log.OutputTokens, log.TotalTokens, log.DurationMs,
		log.ErrorMessage, log.InputPrompt, log.OutputResponse,
		log.RequestedAt, log.CompletedAt,
	); err != nil {
		return fmt.Errorf("failed to insert ai log: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

func scanPostgresPlan(row pgx.Row) (*models.IdeaPlan, error) {
	var (
		plan     models.IdeaPlan
		ideaJSON []byte
		planJSON []byte
	)
	if err := row.Scan(
		&plan.ID,
		&plan.OwnerID,
		&ideaJSON,
		&planJSON,
		&plan.Keywords,
		&plan.SearchQuery,
		&plan.CreatedDate,
		&plan.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ideaJSON, &plan.Idea); err != nil {
		return nil, fmt.Errorf("decode idea: %w", err)
	}
	if err := json.Unmarshal(planJSON, &plan.Plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow 는 스캔 대상 포인터에 values 를 순서대로 채운다.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: want %d columns, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *[]string:
			*p = r.values[i].([]string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported dest %T", d)
		}
	}
	return nil
}

func TestScanPostgresPlan(t *testing.T) {
	src := samplePlan("user-1", "Bot")
	ideaJSON, err := json.Marshal(src.Idea)
	require.NoError(t, err)
	planJSON, err := json.Marshal(src.Plan)
	require.NoError(t, err)

	row := fakeRow{values: []any{
		"0d4f6c8e-2b7a-4c1e-9f3a-5b6c7d8e9f01",
		src.OwnerID,
		ideaJSON,
		planJSON,
		src.Keywords,
		src.SearchQuery,
		src.CreatedDate,
		src.CreatedAt,
	}}

	got, err := scanPostgresPlan(row)
	require.NoError(t, err)
	assert.Equal(t, "0d4f6c8e-2b7a-4c1e-9f3a-5b6c7d8e9f01", got.ID)
	assert.Equal(t, src.Idea, got.Idea)
	assert.Equal(t, src.Plan, got.Plan)
	assert.Equal(t, []string{"AI", "chatbot"}, got.Keywords)
	assert.Equal(t, "2026-03-01", got.CreatedDate)
	assert.True(t, src.CreatedAt.Equal(got.CreatedAt))
}

func TestScanPostgresPlanErrors(t *testing.T) {
	_, err := scanPostgresPlan(fakeRow{err: pgx.ErrNoRows})
	assert.True(t, errors.Is(err, pgx.ErrNoRows))

	row := fakeRow{values: []any{
		"id", "user-1", []byte(`{"title":`), []byte(`{}`), []string{}, "", "2026-03-01", time.Now(),
	}}
	_, err = scanPostgresPlan(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode idea")
}

func TestPostgresStoreRejectsMalformedIDs(t *testing.T) {
	store := &PostgresStore{}
	ctx := context.Background()

	_, err := store.FindPlanByID(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := store.DeletePlan(ctx, "not-a-uuid", "user-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

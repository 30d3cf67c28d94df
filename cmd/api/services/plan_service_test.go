package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-lab/models"
)

func seedPlan(t *testing.T, store *memoryStore, owner, title string) *models.IdeaPlan {
	t.Helper()
	idea := models.Idea{Title: title}
	plan := models.NewIdeaPlan(owner, idea, *samplePlanDetails(title), []string{"AI"}, "AI", time.Now())
	created, err := store.CreatePlan(context.Background(), plan)
	require.NoError(t, err)
	return created
}

func TestPlanService_Get(t *testing.T) {
	store := newMemoryStore()
	plan := seedPlan(t, store, "owner", "Bot")
	svc := NewPlanService(store, nil)

	got, err := svc.Get(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bot", got.Idea.Title)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanService_DeleteByNonOwnerIsForbidden(t *testing.T) {
	store := newMemoryStore()
	plan := seedPlan(t, store, "owner", "Bot")
	pub := &recordingPublisher{}
	svc := NewPlanService(store, pub)

	err := svc.Delete(context.Background(), "intruder", plan.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.OwnerID)
	assert.Empty(t, pub.deleted)
}

func TestPlanService_DeleteByOwner(t *testing.T) {
	store := newMemoryStore()
	plan := seedPlan(t, store, "owner", "Bot")
	pub := &recordingPublisher{}
	svc := NewPlanService(store, pub)

	require.NoError(t, svc.Delete(context.Background(), "owner", plan.ID))
	assert.Equal(t, []string{plan.ID}, pub.deleted)

	_, err := svc.Get(context.Background(), plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), "owner", plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, pub.deleted, 1)
}

func TestPlanService_DeleteRequiresRequester(t *testing.T) {
	store := newMemoryStore()
	plan := seedPlan(t, store, "owner", "Bot")
	svc := NewPlanService(store, nil)

	err := svc.Delete(context.Background(), "", plan.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, store.count())
}

func TestPlanService_DeleteLosesRace(t *testing.T) {
	store := newMemoryStore()
	plan := seedPlan(t, store, "owner", "Bot")
	store.beforeDelete = func(id string) {
		store.mu.Lock()
		delete(store.plans, id)
		store.mu.Unlock()
	}
	svc := NewPlanService(store, nil)

	err := svc.Delete(context.Background(), "owner", plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanService_ListMine(t *testing.T) {
	store := newMemoryStore()
	for i := 1; i <= 3; i++ {
		seedPlan(t, store, "owner", fmt.Sprintf("idea-%d", i))
	}
	seedPlan(t, store, "other", "not mine")
	svc := NewPlanService(store, nil)

	page, err := svc.ListMine(context.Background(), "owner", ListPlansInput{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Plans, 2)
	assert.Equal(t, "idea-3", page.Plans[0].Idea.Title)
	assert.Equal(t, "idea-2", page.Plans[1].Idea.Title)

	page, err = svc.ListMine(context.Background(), "owner", ListPlansInput{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Plans, 1)
	assert.Equal(t, "idea-1", page.Plans[0].Idea.Title)
}

func TestPlanService_ListMineDefaultsAndCaps(t *testing.T) {
	svc := NewPlanService(newMemoryStore(), nil)

	page, err := svc.ListMine(context.Background(), "owner", ListPlansInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPageSize, page.PageSize)

	page, err = svc.ListMine(context.Background(), "owner", ListPlansInput{Page: -3, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, maxPageSize, page.PageSize)

	_, err = svc.ListMine(context.Background(), "", ListPlansInput{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

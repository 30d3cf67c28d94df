package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-lab/generator"
	"idea-lab/models"
)

// batchThenExpand answers the batch call with ideas and every expand call via expand.
func batchThenExpand(ideas []models.Idea, expand func(idea *models.Idea) (*generator.CompletionResponse, error)) *scriptedCompleter {
	return &scriptedCompleter{respond: func(req generator.CompletionRequest) (*generator.CompletionResponse, error) {
		switch req.Mode {
		case generator.ModeBatch:
			return &generator.CompletionResponse{
				Ideas: ideas,
				Usage: &generator.Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
			}, nil
		case generator.ModeExpand:
			return expand(req.Idea)
		}
		return nil, generator.ErrUnknownMode
	}}
}

func expandOK(idea *models.Idea) (*generator.CompletionResponse, error) {
	return &generator.CompletionResponse{
		IdeaPlan: samplePlanDetails(idea.Title),
		Usage:    &generator.Usage{TotalTokens: 999},
	}, nil
}

func TestGenerateIdeaPlans_RejectsEmptyInputWithoutCalls(t *testing.T) {
	cases := []GenerateInput{
		{},
		{Keywords: []string{"", "   "}},
		{Keywords: []string{" "}, Topic: "  "},
	}
	for _, in := range cases {
		completer := batchThenExpand(sampleIdeas("x"), expandOK)
		store := newMemoryStore()
		svc := NewIdeaPlanService(completer, store, nil, 5)

		res, err := svc.GenerateIdeaPlans(context.Background(), "user-1", in)

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, res)
		assert.Equal(t, 0, completer.calls())
		assert.Equal(t, 0, store.storeCalls())
	}
}

func TestGenerateIdeaPlans_BatchFailuresAreFatal(t *testing.T) {
	cases := map[string]func(req generator.CompletionRequest) (*generator.CompletionResponse, error){
		"transport error": func(req generator.CompletionRequest) (*generator.CompletionResponse, error) {
			return nil, errUpstream
		},
		"missing ideas": func(req generator.CompletionRequest) (*generator.CompletionResponse, error) {
			return &generator.CompletionResponse{IdeaPlan: samplePlanDetails("wrong mode")}, nil
		},
		"zero ideas": func(req generator.CompletionRequest) (*generator.CompletionResponse, error) {
			return &generator.CompletionResponse{Ideas: []models.Idea{}}, nil
		},
		"nil response": func(req generator.CompletionRequest) (*generator.CompletionResponse, error) {
			return nil, nil
		},
	}
	for name, respond := range cases {
		t.Run(name, func(t *testing.T) {
			completer := &scriptedCompleter{respond: respond}
			store := newMemoryStore()
			svc := NewIdeaPlanService(completer, store, nil, 5)

			res, err := svc.GenerateIdeaPlans(context.Background(), "user-1", GenerateInput{Keywords: []string{"AI"}})

			assert.ErrorIs(t, err, ErrGenerationFailure)
			assert.Nil(t, res)
			assert.Equal(t, 1, completer.calls())
			assert.Equal(t, 0, store.count())
		})
	}
}

func TestGenerateIdeaPlans_QuotaErrorStaysDetectable(t *testing.T) {
	completer := &scriptedCompleter{respond: func(req generator.CompletionRequest) (*generator.CompletionResponse, error) {
		return nil, generator.ErrQuotaExceeded
	}}
	svc := NewIdeaPlanService(completer, newMemoryStore(), nil, 5)

	_, err := svc.GenerateIdeaPlans(context.Background(), "user-1", GenerateInput{Topic: "x"})
	assert.ErrorIs(t, err, ErrGenerationFailure)
	assert.ErrorIs(t, err, generator.ErrQuotaExceeded)
}

func TestGenerateIdeaPlans_PartialFailuresKeepGoing(t *testing.T) {
	ideas := sampleIdeas("one", "two", "three", "four", "five")
	completer := batchThenExpand(ideas, func(idea *models.Idea) (*generator.CompletionResponse, error) {
		switch idea.Title {
		case "two":
			return nil, errUpstream
		case "four":
			return &generator.CompletionResponse{}, nil
		}
		return expandOK(idea)
	})
	store := newMemoryStore()
	store.createErr = func(plan *models.IdeaPlan) error {
		if plan.Idea.Title == "five" {
			return errors.New("disk full")
		}
		return nil
	}
	svc := NewIdeaPlanService(completer, store, nil, 5)

	res, err := svc.GenerateIdeaPlans(context.Background(), "user-1", GenerateInput{Keywords: []string{"AI"}})
	require.NoError(t, err)

	require.Len(t, res.Items, 5)
	wantHasPlan := []bool{true, false, true, false, false}
	for i, item := range res.Items {
		assert.Equal(t, ideas[i].Title, item.Idea.Title, "order preserved")
		assert.Equal(t, wantHasPlan[i], item.HasPlan, item.Idea.Title)
		if item.HasPlan {
			assert.NotEmpty(t, item.PlanID)
		} else {
			assert.Empty(t, item.PlanID)
		}
	}
	assert.Equal(t, 2, store.count())
	// no retries: exactly one expand call per idea
	assert.Equal(t, 5, completer.callsFor(generator.ModeExpand))
}

func TestGenerateIdeaPlans_KeywordScenario(t *testing.T) {
	ideas := sampleIdeas("Support bot", "Tutor bot")
	completer := batchThenExpand(ideas, func(idea *models.Idea) (*generator.CompletionResponse, error) {
		if idea.Title == "Tutor bot" {
			return nil, errUpstream
		}
		return expandOK(idea)
	})
	store := newMemoryStore()
	pub := &recordingPublisher{}
	svc := NewIdeaPlanService(completer, store, pub, 5)
	fixed := time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.GenerateIdeaPlans(context.Background(), "user-7", GenerateInput{Keywords: []string{" AI ", "chatbot", ""}})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.True(t, res.Items[0].HasPlan)
	assert.False(t, res.Items[1].HasPlan)
	assert.Equal(t, &generator.Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}, res.Usage)

	require.Equal(t, 1, store.count())
	stored, err := store.FindPlanByID(context.Background(), res.Items[0].PlanID)
	require.NoError(t, err)
	assert.Equal(t, "user-7", stored.OwnerID)
	assert.Equal(t, "Support bot", stored.Idea.Title)
	assert.Equal(t, []string{"AI", "chatbot"}, stored.Keywords)
	assert.Equal(t, "AI chatbot", stored.SearchQuery)
	assert.Equal(t, "2026-10-14", stored.CreatedDate)
	assert.Equal(t, "plan for Support bot", stored.Plan.Summary)

	assert.Equal(t, []string{res.Items[0].PlanID}, pub.created)

	batchReq := completer.requests[0]
	assert.Equal(t, generator.ModeBatch, batchReq.Mode)
	assert.Equal(t, []string{"AI", "chatbot"}, batchReq.Context.Keywords)
	assert.Equal(t, 5, batchReq.Count)
}

func TestGenerateIdeaPlans_TopicScenarioBatchThrows(t *testing.T) {
	completer := &scriptedCompleter{respond: func(req generator.CompletionRequest) (*generator.CompletionResponse, error) {
		return nil, errUpstream
	}}
	store := newMemoryStore()
	svc := NewIdeaPlanService(completer, store, nil, 5)

	res, err := svc.GenerateIdeaPlans(context.Background(), "user-1", GenerateInput{Topic: "remote work tools"})

	assert.ErrorIs(t, err, ErrGenerationFailure)
	assert.ErrorIs(t, err, errUpstream)
	assert.Nil(t, res)
	assert.Equal(t, 0, store.count())
}

func TestGenerateIdeaPlans_TopicWinsSearchString(t *testing.T) {
	completer := batchThenExpand(sampleIdeas("only"), expandOK)
	store := newMemoryStore()
	svc := NewIdeaPlanService(completer, store, nil, 5)

	res, err := svc.GenerateIdeaPlans(context.Background(), "user-1", GenerateInput{
		Keywords: []string{"slack", "zoom"},
		Topic:    "  remote work tools ",
	})
	require.NoError(t, err)
	stored, err := store.FindPlanByID(context.Background(), res.Items[0].PlanID)
	require.NoError(t, err)
	assert.Equal(t, "remote work tools", stored.SearchQuery)
	assert.Equal(t, "remote work tools", completer.requests[0].Context.Topic)
	assert.Equal(t, "remote work tools", completer.requests[1].Context.Topic)
}

func TestGenerateIdeaPlans_TruncatesToMaxIdeas(t *testing.T) {
	completer := batchThenExpand(sampleIdeas("a", "b", "c", "d"), expandOK)
	store := newMemoryStore()
	svc := NewIdeaPlanService(completer, store, nil, 2)

	res, err := svc.GenerateIdeaPlans(context.Background(), "user-1", GenerateInput{Keywords: []string{"x"}})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, completer.callsFor(generator.ModeExpand))
	assert.Equal(t, 2, store.count())
}

func TestGenerateIdeaPlans_PublishFailureDoesNotChangeResult(t *testing.T) {
	completer := batchThenExpand(sampleIdeas("a"), expandOK)
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewIdeaPlanService(completer, newMemoryStore(), pub, 5)

	res, err := svc.GenerateIdeaPlans(context.Background(), "user-1", GenerateInput{Keywords: []string{"x"}})
	require.NoError(t, err)
	assert.True(t, res.Items[0].HasPlan)
	assert.Len(t, pub.created, 1)
}

func TestGenerateIdeaPlans_StopsCallingAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	completer := batchThenExpand(sampleIdeas("a", "b", "c"), func(idea *models.Idea) (*generator.CompletionResponse, error) {
		if idea.Title == "a" {
			cancel()
		}
		return expandOK(idea)
	})
	store := newMemoryStore()
	svc := NewIdeaPlanService(completer, store, nil, 5)

	res, err := svc.GenerateIdeaPlans(ctx, "user-1", GenerateInput{Keywords: []string{"x"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.True(t, res.Items[0].HasPlan, "already created plan stays")
	assert.False(t, res.Items[1].HasPlan)
	assert.False(t, res.Items[2].HasPlan)
	assert.Equal(t, 1, completer.callsFor(generator.ModeExpand))
	assert.Equal(t, 1, store.count())
}

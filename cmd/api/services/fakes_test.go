package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"idea-lab/generator"
	"idea-lab/models"
	"idea-lab/repositories"
)

// scriptedCompleter answers each call with respond and records every request.
type scriptedCompleter struct {
	mu       sync.Mutex
	requests []generator.CompletionRequest
	respond  func(req generator.CompletionRequest) (*generator.CompletionResponse, error)
}

func (c *scriptedCompleter) Complete(ctx context.Context, req generator.CompletionRequest) (*generator.CompletionResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return c.respond(req)
}

func (c *scriptedCompleter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *scriptedCompleter) callsFor(mode generator.Mode) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.requests {
		if r.Mode == mode {
			n++
		}
	}
	return n
}

// memoryStore is an in-memory PlanStore with per-call failure injection.
type memoryStore struct {
	mu        sync.Mutex
	seq       int
	plans     map[string]*models.IdeaPlan
	calls     int
	createErr func(plan *models.IdeaPlan) error
	// beforeDelete runs inside DeletePlan before the owner-conditioned delete.
	beforeDelete func(id string)
}

func newMemoryStore() *memoryStore {
	return &memoryStore{plans: map[string]*models.IdeaPlan{}}
}

func (s *memoryStore) CreatePlan(ctx context.Context, plan *models.IdeaPlan) (*models.IdeaPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.createErr != nil {
		if err := s.createErr(plan); err != nil {
			return nil, err
		}
	}
	s.seq++
	out := *plan
	out.ID = fmt.Sprintf("plan-%d", s.seq)
	s.plans[out.ID] = &out
	cp := out
	return &cp, nil
}

func (s *memoryStore) FindPlanByID(ctx context.Context, id string) (*models.IdeaPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p, ok := s.plans[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memoryStore) ListPlansByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.IdeaPlan, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	var mine []*models.IdeaPlan
	for i := s.seq; i >= 1; i-- {
		if p, ok := s.plans[fmt.Sprintf("plan-%d", i)]; ok && p.OwnerID == ownerID {
			cp := *p
			mine = append(mine, &cp)
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return []*models.IdeaPlan{}, total, nil
	}
	end := min(offset+limit, len(mine))
	return mine[offset:end], total, nil
}

func (s *memoryStore) DeletePlan(ctx context.Context, id, ownerID string) (bool, error) {
	if s.beforeDelete != nil {
		s.beforeDelete(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p, ok := s.plans[id]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(s.plans, id)
	return true, nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.plans)
}

func (s *memoryStore) storeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingPublisher struct {
	mu      sync.Mutex
	created []string
	deleted []string
	err     error
}

func (p *recordingPublisher) PublishPlanCreated(ctx context.Context, plan *models.IdeaPlan) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, plan.ID)
	return p.err
}

func (p *recordingPublisher) PublishPlanDeleted(ctx context.Context, planID, ownerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, planID)
	return p.err
}

var errUpstream = errors.New("upstream exploded")

func sampleIdeas(titles ...string) []models.Idea {
	out := make([]models.Idea, len(titles))
	for i, t := range titles {
		out[i] = models.Idea{Title: t, Description: t + " description", Difficulty: 2, MarketPotential: 4, Competition: 3}
	}
	return out
}

func samplePlanDetails(title string) *models.PlanDetails {
	return &models.PlanDetails{
		Summary:        "plan for " + title,
		TechStack:      []string{"Go"},
		KeyFeatures:    []string{"feature"},
		Challenges:     []string{"challenge"},
		SuccessFactors: []string{"factor"},
	}
}

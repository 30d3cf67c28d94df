package models

import "time"

const (
	MinScore = 1
	MaxScore = 5

	// DateLayout 은 플랜 생성일 저장 형식이다. (일 단위)
	DateLayout = "2006-01-02"
)

// Idea 는 LLM 배치 생성 결과로 받은 단일 프로젝트 아이디어다.
// 독립적으로 저장되지 않고, 확장된 IdeaPlan 의 일부로만 영속화된다.
type Idea struct {
	Title           string  `bson:"title" json:"title"`
	Description     string  `bson:"description" json:"description"`
	TargetAudience  string  `bson:"target_audience" json:"target_audience"`
	EstimatedCost   float64 `bson:"estimated_cost" json:"estimated_cost"`
	EstimatedWeeks  float64 `bson:"estimated_weeks" json:"estimated_weeks"`
	Difficulty      int     `bson:"difficulty" json:"difficulty"`
	MarketPotential int     `bson:"market_potential" json:"market_potential"`
	Competition     int     `bson:"competition" json:"competition"`
	FirstStep       string  `bson:"first_step" json:"first_step"`
}

// Normalize clamps the ordinal scores into [MinScore, MaxScore].
func (i *Idea) Normalize() {
	i.Difficulty = clampScore(i.Difficulty)
	i.MarketPotential = clampScore(i.MarketPotential)
	i.Competition = clampScore(i.Competition)
}

func clampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// PlanDetails 는 아이디어 한 건을 확장한 실행 계획 본문이다.
type PlanDetails struct {
	Summary        string      `bson:"summary,omitempty" json:"summary,omitempty"`
	TechStack      []string    `bson:"tech_stack" json:"tech_stack"`
	KeyFeatures    []string    `bson:"key_features" json:"key_features"`
	Challenges     []string    `bson:"challenges" json:"challenges"`
	SuccessFactors []string    `bson:"success_factors" json:"success_factors"`
	Milestones     []Milestone `bson:"milestones,omitempty" json:"milestones,omitempty"`
}

type Milestone struct {
	Week  int    `bson:"week" json:"week"`
	Title string `bson:"title" json:"title"`
}

// IdeaPlan represents a persisted, expanded idea.
// Collection: idea_plans
type IdeaPlan struct {
	ID          string      `bson:"-" json:"id"`
	OwnerID     string      `bson:"owner_id" json:"owner_id"`
	Idea        Idea        `bson:"idea" json:"idea"`
	Plan        PlanDetails `bson:"plan" json:"plan"`
	Keywords    []string    `bson:"keywords" json:"keywords"`
	SearchQuery string      `bson:"search_query" json:"search_query"`
	CreatedDate string      `bson:"created_date" json:"created_date"`
	CreatedAt   time.Time   `bson:"created_at" json:"-"`
}

// NewIdeaPlan attaches the batch context to an expanded idea.
func NewIdeaPlan(ownerID string, idea Idea, plan PlanDetails, keywords []string, searchQuery string, now time.Time) *IdeaPlan {
	kw := make([]string, len(keywords))
	copy(kw, keywords)
	return &IdeaPlan{
		OwnerID:     ownerID,
		Idea:        idea,
		Plan:        plan,
		Keywords:    kw,
		SearchQuery: searchQuery,
		CreatedDate: now.Format(DateLayout),
		CreatedAt:   now,
	}
}

package dto

type MilestoneDTO struct {
	Week  int    `json:"week"`
	Title string `json:"title"`
}

type PlanDetailsDTO struct {
	Summary        string         `json:"summary,omitempty"`
	TechStack      []string       `json:"tech_stack"`
	KeyFeatures    []string       `json:"key_features"`
	Challenges     []string       `json:"challenges"`
	SuccessFactors []string       `json:"success_factors"`
	Milestones     []MilestoneDTO `json:"milestones,omitempty"`
}

type IdeaPlanDTO struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Idea        IdeaDTO        `json:"idea"`
	Plan        PlanDetailsDTO `json:"plan"`
	Keywords    []string       `json:"keywords"`
	SearchQuery string         `json:"search_query"`
	CreatedDate string         `json:"created_date" example:"2026-10-14"`
}

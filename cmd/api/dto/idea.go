package dto

// GenerateIdeaPlansRequestDTO 는 keywords 또는 topic 중 하나 이상이 필요하다.
type GenerateIdeaPlansRequestDTO struct {
	Keywords []string `json:"keywords" example:"AI,chatbot"`
	Topic    string   `json:"topic" example:"remote work tools"`
}

type IdeaDTO struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	TargetAudience  string  `json:"target_audience"`
	EstimatedCost   float64 `json:"estimated_cost"`
	EstimatedWeeks  float64 `json:"estimated_weeks"`
	Difficulty      int     `json:"difficulty" example:"3"`
	MarketPotential int     `json:"market_potential" example:"4"`
	Competition     int     `json:"competition" example:"2"`
	FirstStep       string  `json:"first_step"`
}

type BatchItemDTO struct {
	Idea    IdeaDTO `json:"idea"`
	HasPlan bool    `json:"has_plan"`
	PlanID  string  `json:"plan_id,omitempty"`
}

type UsageDTO struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

type BatchResultDTO struct {
	Items []BatchItemDTO `json:"items"`
	Usage *UsageDTO      `json:"usage,omitempty"`
}

type MindMapRequestDTO struct {
	Keyword string `json:"keyword" example:"AI"`
	Depth   int    `json:"depth" example:"2"`
}

type MindMapBranchDTO struct {
	Label    string   `json:"label"`
	Children []string `json:"children"`
}

type MindMapDTO struct {
	Root     string             `json:"root"`
	Branches []MindMapBranchDTO `json:"branches"`
}

type ResearchRequestDTO struct {
	Keywords []string `json:"keywords" example:"AI,chatbot"`
	Topic    string   `json:"topic"`
}

type ResearchSourceDTO struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Extract string `json:"extract"`
}

type ResearchSummaryDTO struct {
	Topic     string              `json:"topic"`
	Overview  string              `json:"overview"`
	KeyPoints []string            `json:"key_points"`
	Sources   []ResearchSourceDTO `json:"sources"`
}

package handlers

import (
	"idea-lab/cmd/api/dto"
	"idea-lab/cmd/api/services"
	"idea-lab/models"
)

func toIdeaDTO(i models.Idea) dto.IdeaDTO {
	return dto.IdeaDTO{
		Title:           i.Title,
		Description:     i.Description,
		TargetAudience:  i.TargetAudience,
		EstimatedCost:   i.EstimatedCost,
		EstimatedWeeks:  i.EstimatedWeeks,
		Difficulty:      i.Difficulty,
		MarketPotential: i.MarketPotential,
		Competition:     i.Competition,
		FirstStep:       i.FirstStep,
	}
}

func toBatchResultDTO(r *services.BatchResult) dto.BatchResultDTO {
	out := dto.BatchResultDTO{Items: make([]dto.BatchItemDTO, 0, len(r.Items))}
	for _, it := range r.Items {
		out.Items = append(out.Items, dto.BatchItemDTO{
			Idea:    toIdeaDTO(it.Idea),
			HasPlan: it.HasPlan,
			PlanID:  it.PlanID,
		})
	}
	if r.Usage != nil {
		out.Usage = &dto.UsageDTO{
			InputTokens:  r.Usage.InputTokens,
			OutputTokens: r.Usage.OutputTokens,
			TotalTokens:  r.Usage.TotalTokens,
		}
	}
	return out
}

func toIdeaPlanDTO(p *models.IdeaPlan) dto.IdeaPlanDTO {
	milestones := make([]dto.MilestoneDTO, 0, len(p.Plan.Milestones))
	for _, m := range p.Plan.Milestones {
		milestones = append(milestones, dto.MilestoneDTO{Week: m.Week, Title: m.Title})
	}
	return dto.IdeaPlanDTO{
		ID:      p.ID,
		OwnerID: p.OwnerID,
		Idea:    toIdeaDTO(p.Idea),
		Plan: dto.PlanDetailsDTO{
			Summary:        p.Plan.Summary,
			TechStack:      nonNil(p.Plan.TechStack),
			KeyFeatures:    nonNil(p.Plan.KeyFeatures),
			Challenges:     nonNil(p.Plan.Challenges),
			SuccessFactors: nonNil(p.Plan.SuccessFactors),
			Milestones:     milestones,
		},
		Keywords:    nonNil(p.Keywords),
		SearchQuery: p.SearchQuery,
		CreatedDate: p.CreatedDate,
	}
}

func toMindMapDTO(m *models.MindMap) dto.MindMapDTO {
	out := dto.MindMapDTO{Root: m.Root, Branches: make([]dto.MindMapBranchDTO, 0, len(m.Branches))}
	for _, b := range m.Branches {
		out.Branches = append(out.Branches, dto.MindMapBranchDTO{Label: b.Label, Children: nonNil(b.Children)})
	}
	return out
}

func toResearchSummaryDTO(r *models.ResearchSummary) dto.ResearchSummaryDTO {
	out := dto.ResearchSummaryDTO{
		Topic:     r.Topic,
		Overview:  r.Overview,
		KeyPoints: nonNil(r.KeyPoints),
		Sources:   make([]dto.ResearchSourceDTO, 0, len(r.Sources)),
	}
	for _, s := range r.Sources {
		out.Sources = append(out.Sources, dto.ResearchSourceDTO{Title: s.Title, URL: s.URL, Extract: s.Extract})
	}
	return out
}

// nonNil 은 JSON 에서 null 대신 [] 를 내보내기 위해 쓴다.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

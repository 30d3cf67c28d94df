package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

const jsonOnlyRule = `
You MUST NOT wrap the JSON output in a markdown code block (e.g., ` + "```json ... ```" + `).
The response should contain ONLY the raw JSON string.`

const BATCH_INSTRUCTION = `
You are a product ideation assistant. Based on the keywords and optional topic provided,
propose distinct, buildable software project ideas.
The response MUST be a valid JSON object with a single key "ideas" holding an array. Each element has:
1. title: short project name.
2. description: 2-3 sentences describing what the project does.
3. target_audience: who would use it.
4. estimated_cost: rough build cost in USD as a number.
5. estimated_weeks: rough development time in weeks as a number.
6. difficulty: integer 1-5 (1 = trivial, 5 = very hard).
7. market_potential: integer 1-5 (5 = large market).
8. competition: integer 1-5 (5 = crowded market).
9. first_step: the single most useful first action.
If nothing sensible can be proposed, return {"ideas": []}.` + jsonOnlyRule

const EXPAND_INSTRUCTION = `
You are a technical project planner. Expand the given project idea into an execution plan.
The response MUST be a valid JSON object with a single key "idea_plan" holding an object with:
1. summary: one paragraph overview of the plan.
2. tech_stack: array of 3-8 concrete technologies.
3. key_features: array of 3-7 features for a first release.
4. challenges: array of 2-5 main risks or hard problems.
5. success_factors: array of 2-5 things that decide whether the project succeeds.
6. milestones: array of objects {"week": number, "title": string}, ordered by week.` + jsonOnlyRule

const MINDMAP_INSTRUCTION = `
You are a brainstorming assistant building a mind map around a keyword.
The response MUST be a valid JSON object with a single key "mind_map" holding an object with:
1. root: the central keyword.
2. branches: array of 4-8 objects {"label": string, "children": array of related sub-keywords}.
Children lists are empty when the requested depth is 1.` + jsonOnlyRule

const RESEARCH_INSTRUCTION = `
You are a research assistant. Summarize what is known about the topic using the provided
encyclopedia sources first and general knowledge second.
The response MUST be a valid JSON object with a single key "research" holding an object with:
1. topic: the topic being summarized.
2. overview: a concise overview, no more than 1000 characters.
3. key_points: array of 3-7 short findings relevant to building a product in this space.` + jsonOnlyRule

func systemInstruction(mode Mode) (string, error) {
	switch mode {
	case ModeBatch:
		return BATCH_INSTRUCTION, nil
	case ModeExpand:
		return EXPAND_INSTRUCTION, nil
	case ModeMindMap:
		return MINDMAP_INSTRUCTION, nil
	case ModeResearch:
		return RESEARCH_INSTRUCTION, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// buildPrompt renders the user turn for a request.
func buildPrompt(req CompletionRequest) (string, error) {
	var b strings.Builder
	if len(req.Context.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(req.Context.Keywords, ", "))
	}
	if req.Context.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.Context.Topic)
	}

	switch req.Mode {
	case ModeBatch:
		count := req.Count
		if count <= 0 {
			count = 3
		}
		fmt.Fprintf(&b, "Number of ideas: %d\n", count)
	case ModeExpand:
		if req.Idea == nil {
			return "", fmt.Errorf("expand request requires an idea")
		}
		ideaJSON, err := json.Marshal(req.Idea)
		if err != nil {
			return "", fmt.Errorf("marshal idea: %w", err)
		}
		fmt.Fprintf(&b, "Idea:\n%s\n", ideaJSON)
	case ModeMindMap:
		depth := req.Depth
		if depth <= 0 {
			depth = 2
		}
		fmt.Fprintf(&b, "Depth: %d\n", depth)
	case ModeResearch:
		if len(req.Sources) == 0 {
			b.WriteString("Sources: none found\n")
		}
		for i, s := range req.Sources {
			fmt.Fprintf(&b, "Source %d: %s (%s)\n%s\n", i+1, s.Title, s.URL, s.Extract)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	return b.String(), nil
}

package models

// MindMap 은 키워드 하나를 중심으로 한 2단계 연관 키워드 트리다.
type MindMap struct {
	Root     string          `json:"root"`
	Branches []MindMapBranch `json:"branches"`
}

type MindMapBranch struct {
	Label    string   `json:"label"`
	Children []string `json:"children"`
}

// ResearchSource is one encyclopedia entry used as research context.
type ResearchSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Extract string `json:"extract"`
}

type ResearchSummary struct {
	Topic     string           `json:"topic"`
	Overview  string           `json:"overview"`
	KeyPoints []string         `json:"key_points"`
	Sources   []ResearchSource `json:"sources"`
}

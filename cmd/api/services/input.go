package services

import "strings"

// normalizeKeywords trims every keyword and drops the empty ones.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// resolveSearch 는 검색 문자열을 정한다. topic 이 있으면 topic, 없으면 키워드를 공백으로 잇는다.
func resolveSearch(keywords []string, topic string) string {
	if topic != "" {
		return topic
	}
	return strings.Join(keywords, " ")
}

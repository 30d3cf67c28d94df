package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// fencePattern matches a fenced block with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// extractJSON returns the first JSON object found in a model reply.
// Fenced ```json blocks win over bare objects embedded in prose.
func extractJSON(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyResponse
	}
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	for _, m := range fencePattern.FindAllStringSubmatch(trimmed, -1) {
		lang := strings.ToLower(m[1])
		if lang != "" && lang != "json" {
			continue
		}
		body := strings.TrimSpace(m[2])
		if strings.HasPrefix(body, "{") && json.Valid([]byte(body)) {
			return body, nil
		}
	}

	if obj, ok := firstEmbeddedObject(trimmed); ok {
		return obj, nil
	}
	return "", fmt.Errorf("no JSON object found in llm response")
}

// maxObjectStarts bounds how many '{' positions are tried in prose.
const maxObjectStarts = 32

// firstEmbeddedObject decodes one JSON value from each '{' in text and returns the first object.
// A failed attempt stops at the first syntax error, so each try reads only its valid prefix.
func firstEmbeddedObject(text string) (string, bool) {
	for tries, offset := 0, 0; tries < maxObjectStarts && offset < len(text); tries++ {
		start := strings.IndexByte(text[offset:], '{')
		if start < 0 {
			return "", false
		}
		start += offset

		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&raw); err == nil {
			return string(raw), true
		}
		offset = start + 1
	}
	return "", false
}

// decodeResponse parses a model reply into a CompletionResponse.
func decodeResponse(text string) (*CompletionResponse, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var out CompletionResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode llm response: %w", err)
	}
	for i := range out.Ideas {
		out.Ideas[i].Normalize()
	}
	return &out, nil
}

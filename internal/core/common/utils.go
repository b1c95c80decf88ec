package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals the JSON payload of an LLM response into T, tolerating
// surrounding prose and markdown fences.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr := extractPayload(response, '{', '}')
	if jsonStr == "" {
		jsonStr = extractPayload(response, '[', ']')
	}
	if jsonStr == "" {
		return zero, fmt.Errorf("no JSON payload found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}

func extractPayload(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

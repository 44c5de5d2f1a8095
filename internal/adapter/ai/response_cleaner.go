// Package ai contains the prompt construction and response repair logic for
// the interview feedback pipeline. All parsing, repair, and fallback policy
// for the untrusted LLM payloads is centralized here; callers never receive
// a parse error from the feedback components.
package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ResponseCleaner normalizes raw LLM output before JSON parsing.
type ResponseCleaner struct{}

// NewResponseCleaner creates a new response cleaner.
func NewResponseCleaner() *ResponseCleaner { return &ResponseCleaner{} }

var fenceRe = regexp.MustCompile("(?s)```(?:json)?")

// StripFences removes markdown code-fence markers anywhere in the response
// and trims surrounding whitespace.
func (rc *ResponseCleaner) StripFences(response string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(response, ""))
}

// ExtractObject returns the first balanced {...} span in the response.
// Used as the repair step when direct parsing fails.
func (rc *ResponseCleaner) ExtractObject(response string) (string, bool) {
	start := strings.Index(response, "{")
	if start == -1 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		ch := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1], true
			}
		}
	}
	return "", false
}

var arrayRe = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// ExtractArray returns the first [ {...} ] span in the response, used when a
// question-set array arrives wrapped in prose.
func (rc *ResponseCleaner) ExtractArray(response string) (string, bool) {
	m := arrayRe.FindString(response)
	if m == "" {
		return "", false
	}
	return m, true
}

// IsValidJSON checks if a string is valid JSON.
func (rc *ResponseCleaner) IsValidJSON(response string) bool {
	var tmp interface{}
	return json.Unmarshal([]byte(response), &tmp) == nil
}

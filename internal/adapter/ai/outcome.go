package ai

import (
	"fmt"
	"strconv"
	"strings"
)

// Outcome tags how an AI response was resolved. Every analyzer call
// resolves to exactly one of these; none of them is an error.
type Outcome string

const (
	// OutcomeParsed: the cleaned response parsed directly.
	OutcomeParsed Outcome = "parsed"
	// OutcomeRepaired: parsing succeeded only after balanced-brace extraction.
	OutcomeRepaired Outcome = "repaired"
	// OutcomeHeuristic: behavioral scores were computed locally from
	// duration and transcript length.
	OutcomeHeuristic Outcome = "heuristic"
	// OutcomeDefault: the fixed default content feedback was substituted.
	OutcomeDefault Outcome = "default"
)

// scoreString normalizes a loosely typed score value (JSON number or string)
// into a numeric string clamped to [1,10]. Missing or unusable values
// resolve to fallback.
func scoreString(v any, fallback string) string {
	switch t := v.(type) {
	case float64:
		return strconv.Itoa(clampScore(int(t)))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return fallback
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return strconv.Itoa(clampScore(int(f)))
		}
		return fallback
	default:
		return fallback
	}
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// joinText normalizes a value that may arrive as a string or a list of
// strings into one free-text field.
func joinText(v any, fallback string) string {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return fallback
		}
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, fmt.Sprintf("%v", e))
		}
		if len(parts) == 0 {
			return fallback
		}
		return strings.Join(parts, "; ")
	default:
		return fallback
	}
}

// stringList normalizes a value into an ordered list of strings.
func stringList(v any, fallback []string) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return fallback
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return fallback
		}
		return []string{t}
	default:
		return fallback
	}
}

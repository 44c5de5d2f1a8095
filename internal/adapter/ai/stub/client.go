// Package stub provides a fast, deterministic AI client for local runs and
// tests. Responses are keyed off prompt shape so every pipeline path can be
// exercised without a live provider.
package stub

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// Client is a deterministic AIClient.
type Client struct{}

func New() *Client { return &Client{} }

// GenerateText returns canned JSON matching whichever prompt family asked.
func (c *Client) GenerateText(_ domain.Context, prompt string) (string, error) {
	// Simulate a tiny bit of processing latency to resemble real work
	time.Sleep(50 * time.Millisecond)

	switch {
	case strings.Contains(prompt, "behavioral assessment"):
		payload := map[string]any{
			"bodyLanguageScore":         8,
			"eyeContactScore":           7,
			"confidenceScore":           8,
			"pacingScore":               7,
			"engagementScore":           8,
			"overallVideoBehaviorScore": 8,
			"behavioralFeedback":        "Clear structure and steady pacing throughout the response.",
			"strengths":                 []string{"Structured answer", "Steady pacing", "Professional tone"},
			"areasForImprovement":       []string{"Add a concrete result", "Vary vocal emphasis"},
			"recommendedActions":        "Practice closing each answer with a measurable result.",
		}
		b, _ := json.Marshal(payload)
		return string(b), nil
	case strings.Contains(prompt, "behavioral and situational interview questions"):
		payload := map[string]any{
			"questions": []map[string]any{{
				"question":             "Tell me about a time you resolved a conflict within your team.",
				"category":             "Teamwork",
				"difficulty":           "medium",
				"expectedAnswerPoints": []string{"Situation", "Action taken", "Result"},
				"evaluationCriteria":   "Looks for ownership and a concrete resolution.",
				"sampleAnswer":         "In my last project, two engineers disagreed on...",
			}},
			"description": "One-on-One Behavioral Interview",
		}
		b, _ := json.Marshal(payload)
		return string(b), nil
	case strings.Contains(prompt, "technical interview questions"):
		payload := []map[string]string{{
			"Question": "Explain the difference between a process and a thread.",
			"Answer":   "A process has its own address space; threads share one within a process.",
		}}
		b, _ := json.Marshal(payload)
		return string(b), nil
	default:
		payload := map[string]any{
			"rating":          "8",
			"feedback":        "Solid answer with relevant detail. Tighten the opening and quantify the outcome.",
			"strengths":       "Clear structure and concrete examples",
			"recommendations": "Lead with the result, then explain how you got there.",
		}
		b, _ := json.Marshal(payload)
		return string(b), nil
	}
}

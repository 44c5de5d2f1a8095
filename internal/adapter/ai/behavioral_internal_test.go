package ai

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/internal/domain/mocks"
)

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func newBehavioralAnalyzer(client domain.AIClient, variance VarianceFunc) *BehavioralAnalyzer {
	return NewBehavioralAnalyzer(client, NewPromptBuilder(0), "test", variance)
}

func assertNumericScores(t *testing.T, score domain.BehavioralScore) {
	t.Helper()
	for name, s := range map[string]string{
		"body_language": score.BodyLanguageScore,
		"eye_contact":   score.EyeContactScore,
		"confidence":    score.ConfidenceScore,
		"pacing":        score.PacingScore,
		"engagement":    score.EngagementScore,
		"overall":       score.OverallScore,
	} {
		n, err := strconv.Atoi(s)
		require.NoError(t, err, "%s score %q is not numeric", name, s)
		assert.GreaterOrEqual(t, n, 1, name)
		assert.LessOrEqual(t, n, 10, name)
	}
}

func TestBehavioralParse_Direct(t *testing.T) {
	t.Parallel()
	a := newBehavioralAnalyzer(nil, nil)
	raw := "```json\n" + `{
		"bodyLanguageScore": 8,
		"eyeContactScore": "7",
		"confidenceScore": 9,
		"pacingScore": 6,
		"engagementScore": 8,
		"overallVideoBehaviorScore": 8,
		"behavioralFeedback": "steady delivery",
		"strengths": ["clear voice"],
		"areasForImprovement": ["pause less"],
		"recommendedActions": "record yourself"
	}` + "\n```"
	score, outcome := a.parse(raw, 90, "transcript")
	assert.Equal(t, OutcomeParsed, outcome)
	assert.Equal(t, "8", score.BodyLanguageScore)
	assert.Equal(t, "7", score.EyeContactScore)
	assert.Equal(t, "steady delivery", score.BehavioralFeedback)
	assert.Equal(t, []string{"clear voice"}, score.Strengths)
	assertNumericScores(t, score)
}

func TestBehavioralParse_Repaired(t *testing.T) {
	t.Parallel()
	a := newBehavioralAnalyzer(nil, nil)
	raw := `Based on my analysis: {"bodyLanguageScore": 7, "eyeContactScore": 7, "confidenceScore": 7, "pacingScore": 7, "engagementScore": 7, "overallVideoBehaviorScore": 7} — good luck!`
	score, outcome := a.parse(raw, 90, "transcript")
	assert.Equal(t, OutcomeRepaired, outcome)
	assertNumericScores(t, score)
}

func TestBehavioralParse_MalformedFallsBackToHeuristic(t *testing.T) {
	t.Parallel()
	a := newBehavioralAnalyzer(nil, nil)
	score, outcome := a.parse("not json at all", 90, "short transcript")
	assert.Equal(t, OutcomeHeuristic, outcome)
	assertNumericScores(t, score)
	// 90s sits in the good-duration band
	assert.Equal(t, "9", score.PacingScore)
	assert.Equal(t, "8", score.ConfidenceScore)
	assert.Equal(t, "8", score.OverallScore)
}

func TestBehavioralAnalyze_AIErrorUsesHeuristic(t *testing.T) {
	t.Parallel()
	client := &mocks.MockAIClient{}
	client.On("GenerateText", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

	a := newBehavioralAnalyzer(client, nil)
	score := a.Analyze(context.Background(), "Describe a challenge", 45, "transcript body")
	assertNumericScores(t, score)
	// 45s band scores 6, below base, so duration-driven metrics dip
	assert.Equal(t, "6", score.PacingScore)
	assert.Equal(t, "6", score.ConfidenceScore)
	assert.Equal(t, "6", score.OverallScore)
	client.AssertExpectations(t)
}

func TestHeuristic_Deterministic(t *testing.T) {
	t.Parallel()
	a := newBehavioralAnalyzer(nil, nil)

	short := a.Heuristic(15, "ok")
	assert.Equal(t, "4", short.PacingScore)
	assert.Equal(t, "6", short.ConfidenceScore)
	assert.Equal(t, "6", short.OverallScore)
	assert.Equal(t, "7", short.BodyLanguageScore)
	assert.Equal(t, "7", short.EyeContactScore)
	assert.Equal(t, "7", short.EngagementScore)
	assert.Contains(t, short.BehavioralFeedback, "Response duration: 15s (Too brief)")
	assert.Contains(t, short.AreasForImprovement[0], "more detailed")

	long := a.Heuristic(120, strings.Repeat("a detailed answer ", 20))
	assert.Equal(t, "9", long.PacingScore)
	assert.Equal(t, "8", long.ConfidenceScore)
	assert.Equal(t, "8", long.EngagementScore)
	assert.Equal(t, "Be more concise", long.AreasForImprovement[0])
}

func TestHeuristic_SimulatedVariance(t *testing.T) {
	t.Parallel()
	a := newBehavioralAnalyzer(nil, func() int { return 1 })
	score := a.Heuristic(90, "transcript")
	assert.Equal(t, "8", score.BodyLanguageScore)
	assert.Equal(t, "8", score.EyeContactScore)
	// variance never touches the other metrics
	assert.Equal(t, "9", score.PacingScore)
}

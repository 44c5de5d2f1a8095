package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

func TestAnswerCapture_NeedsPlaceholder(t *testing.T) {
	t.Parallel()
	cases := []struct {
		transcript string
		want       bool
	}{
		{"", true},
		{"   ", true},
		{"uh okay", true},             // 7 chars after trim
		{"    short    ", true},       // 5 chars after trim
		{"exactly 10", false},         // 10 chars
		{"a proper transcript", false},
	}
	for _, tc := range cases {
		c := domain.AnswerCapture{Transcript: tc.transcript}
		assert.Equal(t, tc.want, c.NeedsPlaceholder(), "transcript=%q", tc.transcript)
	}
}

func TestPlaceholderTranscript(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"[45 second video response - no speech detected. Please check microphone permissions.]",
		domain.PlaceholderTranscript(45))
}

func TestDefaultContentFeedback(t *testing.T) {
	t.Parallel()
	fb := domain.DefaultContentFeedback()
	assert.Equal(t, domain.DefaultScore, fb.Rating)
	assert.NotEmpty(t, fb.Feedback)
	assert.NotEmpty(t, fb.Strengths)
	assert.NotEmpty(t, fb.Recommendations)
}

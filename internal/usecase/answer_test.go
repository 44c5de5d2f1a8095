package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/internal/domain/mocks"
	"github.com/prepforge/ai-interview-coach/internal/usecase"
)

func setupAnswerMocks() (*mocks.MockAnswerRepository, *mocks.MockContentAnalyzer, *mocks.MockBehavioralAnalyzer) {
	return &mocks.MockAnswerRepository{}, &mocks.MockContentAnalyzer{}, &mocks.MockBehavioralAnalyzer{}
}

func okFeedback() domain.ContentFeedback {
	return domain.ContentFeedback{Rating: "8", Feedback: "good", Strengths: "clear", Recommendations: "more detail"}
}

func okBehavioral() domain.BehavioralScore {
	return domain.BehavioralScore{
		BodyLanguageScore: "7", EyeContactScore: "7", ConfidenceScore: "8",
		PacingScore: "9", EngagementScore: "7", OverallScore: "8",
		BehavioralFeedback: "steady", Strengths: []string{"s"},
		AreasForImprovement: []string{"a"}, RecommendedActions: "r",
	}
}

func TestAnswerSubmit_Success(t *testing.T) {
	t.Parallel()
	repo, content, behavioral := setupAnswerMocks()

	content.On("Analyze", mock.Anything, "Why Go?", "I like goroutines and channels", 90).Return(okFeedback())
	behavioral.On("Analyze", mock.Anything, "Why Go?", 90, "I like goroutines and channels").Return(okBehavioral())
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rec domain.AnswerRecord) bool {
		return rec.MockID == "mock-1" &&
			rec.QuestionIndex == 3 &&
			rec.Rating == "8" &&
			rec.UserAnswer == "I like goroutines and channels" &&
			rec.VideoDuration == "90" &&
			rec.OverallScore == "8"
	})).Return(int64(42), nil)

	svc := usecase.NewAnswerService(repo, content, behavioral, time.Second)
	out, err := svc.Submit(context.Background(), usecase.SubmitAnswerInput{
		MockID:          "mock-1",
		QuestionIndex:   3,
		Question:        "Why Go?",
		DurationSeconds: 90,
		Transcript:      "I like goroutines and channels",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "8", out.Feedback.Rating)
	assert.Equal(t, "8", out.Behavioral.OverallScore)

	repo.AssertExpectations(t)
	content.AssertExpectations(t)
	behavioral.AssertExpectations(t)
}

func TestAnswerSubmit_PlaceholderSubstitution(t *testing.T) {
	t.Parallel()
	repo, content, behavioral := setupAnswerMocks()

	placeholder := domain.PlaceholderTranscript(35)
	// analyzers must never see the raw short transcript
	content.On("Analyze", mock.Anything, "Why Go?", placeholder, 35).Return(okFeedback())
	behavioral.On("Analyze", mock.Anything, "Why Go?", 35, placeholder).Return(okBehavioral())
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rec domain.AnswerRecord) bool {
		return rec.UserAnswer == placeholder
	})).Return(int64(1), nil)

	svc := usecase.NewAnswerService(repo, content, behavioral, time.Second)
	_, err := svc.Submit(context.Background(), usecase.SubmitAnswerInput{
		MockID:          "mock-1",
		Question:        "Why Go?",
		DurationSeconds: 35,
		Transcript:      "   uh  ",
	})
	require.NoError(t, err)
	content.AssertExpectations(t)
	behavioral.AssertExpectations(t)
}

func TestAnswerSubmit_InvalidInput(t *testing.T) {
	t.Parallel()
	repo, content, behavioral := setupAnswerMocks()
	svc := usecase.NewAnswerService(repo, content, behavioral, time.Second)

	_, err := svc.Submit(context.Background(), usecase.SubmitAnswerInput{Question: "q", DurationSeconds: 30})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Submit(context.Background(), usecase.SubmitAnswerInput{MockID: "m", DurationSeconds: 30})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Submit(context.Background(), usecase.SubmitAnswerInput{MockID: "m", Question: "q"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Submit(context.Background(), usecase.SubmitAnswerInput{MockID: "m", Question: "q", DurationSeconds: 30, QuestionIndex: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAnswerSubmit_SaveFailureSurfaces(t *testing.T) {
	t.Parallel()
	repo, content, behavioral := setupAnswerMocks()

	content.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(okFeedback())
	behavioral.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(okBehavioral())
	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	svc := usecase.NewAnswerService(repo, content, behavioral, time.Second)
	_, err := svc.Submit(context.Background(), usecase.SubmitAnswerInput{
		MockID:          "mock-1",
		Question:        "Why Go?",
		DurationSeconds: 90,
		Transcript:      "a perfectly fine transcript",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestAnswerList_RequiresMockID(t *testing.T) {
	t.Parallel()
	repo, content, behavioral := setupAnswerMocks()
	svc := usecase.NewAnswerService(repo, content, behavioral, time.Second)
	_, err := svc.List(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

// A capture shorter than the public submission gate still flows through the
// pipeline untouched; the gate lives at the HTTP boundary.
func TestAnswerSubmit_ShortCaptureStillScored(t *testing.T) {
	t.Parallel()
	repo, content, behavioral := setupAnswerMocks()

	content.On("Analyze", mock.Anything, "q", "fifteen seconds of speech", 15).Return(okFeedback())
	behavioral.On("Analyze", mock.Anything, "q", 15, "fifteen seconds of speech").Return(okBehavioral())
	repo.On("Create", mock.Anything, mock.Anything).Return(int64(7), nil)

	svc := usecase.NewAnswerService(repo, content, behavioral, time.Second)
	out, err := svc.Submit(context.Background(), usecase.SubmitAnswerInput{
		MockID:          "mock-1",
		Question:        "q",
		DurationSeconds: 15,
		Transcript:      "fifteen seconds of speech",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
}

// Package mocks provides testify mocks for the domain ports.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// MockAnswerRepository mocks domain.AnswerRepository.
type MockAnswerRepository struct{ mock.Mock }

func (m *MockAnswerRepository) Create(ctx domain.Context, rec domain.AnswerRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) ListByMockID(ctx domain.Context, mockID string) ([]domain.AnswerRecord, error) {
	args := m.Called(ctx, mockID)
	if v := args.Get(0); v != nil {
		return v.([]domain.AnswerRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockInterviewRepository mocks domain.InterviewRepository.
type MockInterviewRepository struct{ mock.Mock }

func (m *MockInterviewRepository) Create(ctx domain.Context, iv domain.Interview) (string, error) {
	args := m.Called(ctx, iv)
	return args.String(0), args.Error(1)
}

func (m *MockInterviewRepository) GetByMockID(ctx domain.Context, mockID string) (domain.Interview, error) {
	args := m.Called(ctx, mockID)
	return args.Get(0).(domain.Interview), args.Error(1)
}

func (m *MockInterviewRepository) ListByCreator(ctx domain.Context, createdBy string) ([]domain.Interview, error) {
	args := m.Called(ctx, createdBy)
	if v := args.Get(0); v != nil {
		return v.([]domain.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockQuestionRepository mocks domain.QuestionRepository.
type MockQuestionRepository struct{ mock.Mock }

func (m *MockQuestionRepository) Create(ctx domain.Context, q domain.Question) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

func (m *MockQuestionRepository) ListByMockID(ctx domain.Context, mockID string) ([]domain.Question, error) {
	args := m.Called(ctx, mockID)
	if v := args.Get(0); v != nil {
		return v.([]domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionRepository) ListByCreator(ctx domain.Context, createdBy string) ([]domain.Question, error) {
	args := m.Called(ctx, createdBy)
	if v := args.Get(0); v != nil {
		return v.([]domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockContentAnalyzer mocks domain.ContentAnalyzer.
type MockContentAnalyzer struct{ mock.Mock }

func (m *MockContentAnalyzer) Analyze(ctx domain.Context, question, transcript string, durationSeconds int) domain.ContentFeedback {
	args := m.Called(ctx, question, transcript, durationSeconds)
	return args.Get(0).(domain.ContentFeedback)
}

// MockBehavioralAnalyzer mocks domain.BehavioralAnalyzer.
type MockBehavioralAnalyzer struct{ mock.Mock }

func (m *MockBehavioralAnalyzer) Analyze(ctx domain.Context, question string, durationSeconds int, transcript string) domain.BehavioralScore {
	args := m.Called(ctx, question, durationSeconds, transcript)
	return args.Get(0).(domain.BehavioralScore)
}

// MockQuestionGenerator mocks domain.QuestionGenerator.
type MockQuestionGenerator struct{ mock.Mock }

func (m *MockQuestionGenerator) GenerateTechnical(ctx domain.Context, jobPosition, jobDesc, jobExperience, resumeText string) (string, error) {
	args := m.Called(ctx, jobPosition, jobDesc, jobExperience, resumeText)
	return args.String(0), args.Error(1)
}

func (m *MockQuestionGenerator) GenerateBehavioral(ctx domain.Context, jobPosition, jobDesc, jobExperience string) (string, error) {
	args := m.Called(ctx, jobPosition, jobDesc, jobExperience)
	return args.String(0), args.Error(1)
}

// MockAIClient mocks domain.AIClient.
type MockAIClient struct{ mock.Mock }

func (m *MockAIClient) GenerateText(ctx domain.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// QuestionService manages the standalone question bank: generated sets a
// user keeps outside any interview session.
type QuestionService struct {
	Questions domain.QuestionRepository
	Generator domain.QuestionGenerator
	AITimeout time.Duration
}

// NewQuestionService constructs a QuestionService.
func NewQuestionService(questions domain.QuestionRepository, generator domain.QuestionGenerator, aiTimeout time.Duration) *QuestionService {
	return &QuestionService{Questions: questions, Generator: generator, AITimeout: aiTimeout}
}

// CreateQuestionSetInput describes a question-bank entry to generate.
type CreateQuestionSetInput struct {
	JobPosition   string
	JobDesc       string
	JobExperience string
	QuestionType  string
	Company       string
	CreatedBy     string
}

// Create generates and stores one question set.
func (s *QuestionService) Create(ctx domain.Context, in CreateQuestionSetInput) (domain.Question, error) {
	if in.JobPosition == "" {
		return domain.Question{}, fmt.Errorf("%w: job position required", domain.ErrInvalidArgument)
	}
	if in.CreatedBy == "" {
		return domain.Question{}, fmt.Errorf("%w: created_by required", domain.ErrInvalidArgument)
	}
	questionType := in.QuestionType
	switch questionType {
	case "":
		questionType = domain.InterviewTypeTechnical
	case domain.InterviewTypeTechnical, domain.InterviewTypeBehavioral:
	default:
		return domain.Question{}, fmt.Errorf("%w: unknown question type %q", domain.ErrInvalidArgument, in.QuestionType)
	}

	gctx, cancel := withTimeout(ctx, s.AITimeout)
	defer cancel()

	var (
		questionsJSON string
		err           error
	)
	if questionType == domain.InterviewTypeBehavioral {
		questionsJSON, err = s.Generator.GenerateBehavioral(gctx, in.JobPosition, in.JobDesc, in.JobExperience)
	} else {
		questionsJSON, err = s.Generator.GenerateTechnical(gctx, in.JobPosition, in.JobDesc, in.JobExperience, "")
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("op=question.create: %w", err)
	}

	q := domain.Question{
		QuestionsJSON: questionsJSON,
		JobPosition:   in.JobPosition,
		JobDesc:       in.JobDesc,
		JobExperience: in.JobExperience,
		QuestionType:  questionType,
		Company:       in.Company,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     time.Now(),
	}
	mockID, err := s.Questions.Create(ctx, q)
	if err != nil {
		return domain.Question{}, fmt.Errorf("op=question.create: %w", err)
	}
	q.MockID = mockID
	return q, nil
}

// Get fetches one question set by its public id.
func (s *QuestionService) Get(ctx domain.Context, mockID string) (domain.Question, error) {
	if mockID == "" {
		return domain.Question{}, fmt.Errorf("%w: mock id required", domain.ErrInvalidArgument)
	}
	qs, err := s.Questions.ListByMockID(ctx, mockID)
	if err != nil {
		return domain.Question{}, fmt.Errorf("op=question.get: %w", err)
	}
	if len(qs) == 0 {
		return domain.Question{}, fmt.Errorf("%w: question set %s", domain.ErrNotFound, mockID)
	}
	return qs[0], nil
}

// ListByCreator returns a user's question sets, newest first.
func (s *QuestionService) ListByCreator(ctx domain.Context, createdBy string) ([]domain.Question, error) {
	if createdBy == "" {
		return nil, fmt.Errorf("%w: created_by required", domain.ErrInvalidArgument)
	}
	qs, err := s.Questions.ListByCreator(ctx, createdBy)
	if err != nil {
		return nil, fmt.Errorf("op=question.list: %w", err)
	}
	return qs, nil
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx domain.Context, d time.Duration) (domain.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

package usecase

import (
	"fmt"
	"time"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// InterviewService creates and retrieves mock-interview sessions. Creation
// generates the question set up front so a session is never stored without
// questions.
type InterviewService struct {
	Interviews domain.InterviewRepository
	Generator  domain.QuestionGenerator
	AITimeout  time.Duration
}

// NewInterviewService constructs an InterviewService.
func NewInterviewService(interviews domain.InterviewRepository, generator domain.QuestionGenerator, aiTimeout time.Duration) *InterviewService {
	return &InterviewService{Interviews: interviews, Generator: generator, AITimeout: aiTimeout}
}

// CreateInterviewInput describes a new mock-interview session.
type CreateInterviewInput struct {
	JobPosition   string
	JobDesc       string
	JobExperience string
	InterviewType string
	ResumeText    string
	CreatedBy     string
}

// Create generates a question set for the role and stores the session.
// InterviewType defaults to technical; behavioral sessions get
// STAR-oriented questions and ignore the resume.
func (s *InterviewService) Create(ctx domain.Context, in CreateInterviewInput) (domain.Interview, error) {
	if in.JobPosition == "" {
		return domain.Interview{}, fmt.Errorf("%w: job position required", domain.ErrInvalidArgument)
	}
	if in.JobDesc == "" {
		return domain.Interview{}, fmt.Errorf("%w: job description required", domain.ErrInvalidArgument)
	}
	if in.CreatedBy == "" {
		return domain.Interview{}, fmt.Errorf("%w: created_by required", domain.ErrInvalidArgument)
	}
	interviewType := in.InterviewType
	switch interviewType {
	case "":
		interviewType = domain.InterviewTypeTechnical
	case domain.InterviewTypeTechnical, domain.InterviewTypeBehavioral:
	default:
		return domain.Interview{}, fmt.Errorf("%w: unknown interview type %q", domain.ErrInvalidArgument, in.InterviewType)
	}

	gctx, cancel := withTimeout(ctx, s.AITimeout)
	defer cancel()

	var (
		questionsJSON string
		err           error
	)
	if interviewType == domain.InterviewTypeBehavioral {
		questionsJSON, err = s.Generator.GenerateBehavioral(gctx, in.JobPosition, in.JobDesc, in.JobExperience)
	} else {
		questionsJSON, err = s.Generator.GenerateTechnical(gctx, in.JobPosition, in.JobDesc, in.JobExperience, in.ResumeText)
	}
	if err != nil {
		return domain.Interview{}, fmt.Errorf("op=interview.create: %w", err)
	}

	iv := domain.Interview{
		QuestionsJSON: questionsJSON,
		JobPosition:   in.JobPosition,
		JobDesc:       in.JobDesc,
		JobExperience: in.JobExperience,
		InterviewType: interviewType,
		ResumeText:    in.ResumeText,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     time.Now(),
	}
	mockID, err := s.Interviews.Create(ctx, iv)
	if err != nil {
		return domain.Interview{}, fmt.Errorf("op=interview.create: %w", err)
	}
	iv.MockID = mockID
	return iv, nil
}

// Get fetches one session by its public id.
func (s *InterviewService) Get(ctx domain.Context, mockID string) (domain.Interview, error) {
	if mockID == "" {
		return domain.Interview{}, fmt.Errorf("%w: mock id required", domain.ErrInvalidArgument)
	}
	iv, err := s.Interviews.GetByMockID(ctx, mockID)
	if err != nil {
		return domain.Interview{}, fmt.Errorf("op=interview.get: %w", err)
	}
	return iv, nil
}

// ListByCreator returns the sessions a user created, newest first.
func (s *InterviewService) ListByCreator(ctx domain.Context, createdBy string) ([]domain.Interview, error) {
	if createdBy == "" {
		return nil, fmt.Errorf("%w: created_by required", domain.ErrInvalidArgument)
	}
	ivs, err := s.Interviews.ListByCreator(ctx, createdBy)
	if err != nil {
		return nil, fmt.Errorf("op=interview.list: %w", err)
	}
	return ivs, nil
}

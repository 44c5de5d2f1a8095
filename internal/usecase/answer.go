package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prepforge/ai-interview-coach/internal/adapter/observability"
	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/pkg/textx"
)

// createdAtLayout matches the day-month-year strings stored alongside
// historical answer rows.
const createdAtLayout = "02-01-2006"

// AnswerService runs the capture-to-feedback pipeline: transcript
// normalization, concurrent content and behavioral assessment, and
// persistence of the merged record.
type AnswerService struct {
	Answers    domain.AnswerRepository
	Content    domain.ContentAnalyzer
	Behavioral domain.BehavioralAnalyzer
	AITimeout  time.Duration

	now func() time.Time
}

// NewAnswerService constructs an AnswerService. aiTimeout bounds each AI
// call individually; the two assessments run concurrently.
func NewAnswerService(answers domain.AnswerRepository, content domain.ContentAnalyzer, behavioral domain.BehavioralAnalyzer, aiTimeout time.Duration) *AnswerService {
	return &AnswerService{
		Answers:    answers,
		Content:    content,
		Behavioral: behavioral,
		AITimeout:  aiTimeout,
		now:        time.Now,
	}
}

// SubmitAnswerInput is one captured answer ready for assessment.
type SubmitAnswerInput struct {
	MockID          string
	QuestionIndex   int
	Question        string
	CorrectAnswer   string
	UserEmail       string
	Video           []byte
	DurationSeconds int
	Transcript      string
}

// SubmitAnswerOutput carries the stored row id and both assessments so the
// caller can display feedback immediately.
type SubmitAnswerOutput struct {
	ID         int64
	Feedback   domain.ContentFeedback
	Behavioral domain.BehavioralScore
}

// Submit assesses and persists one answer. The AI stages never abort the
// pipeline: content feedback degrades to a default and behavioral scoring
// to a duration heuristic, so the only error paths are bad input and
// storage failure.
func (s *AnswerService) Submit(ctx domain.Context, in SubmitAnswerInput) (SubmitAnswerOutput, error) {
	if in.MockID == "" {
		return SubmitAnswerOutput{}, fmt.Errorf("%w: mock id required", domain.ErrInvalidArgument)
	}
	if in.Question == "" {
		return SubmitAnswerOutput{}, fmt.Errorf("%w: question required", domain.ErrInvalidArgument)
	}
	if in.DurationSeconds <= 0 {
		return SubmitAnswerOutput{}, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidArgument)
	}
	if in.QuestionIndex < 0 {
		return SubmitAnswerOutput{}, fmt.Errorf("%w: question index must not be negative", domain.ErrInvalidArgument)
	}

	capture := domain.AnswerCapture{
		Video:           in.Video,
		DurationSeconds: in.DurationSeconds,
		Transcript:      textx.SanitizeText(in.Transcript),
	}
	transcript := capture.Transcript
	if capture.NeedsPlaceholder() {
		transcript = domain.PlaceholderTranscript(capture.DurationSeconds)
		slog.Info("transcript below speech threshold, substituting placeholder",
			slog.String("mock_id", in.MockID),
			slog.Int("duration_seconds", capture.DurationSeconds))
	}

	var (
		feedback   domain.ContentFeedback
		behavioral domain.BehavioralScore
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx, cancel := s.timeoutCtx(gctx)
		defer cancel()
		feedback = s.Content.Analyze(cctx, in.Question, transcript, capture.DurationSeconds)
		return nil
	})
	g.Go(func() error {
		bctx, cancel := s.timeoutCtx(gctx)
		defer cancel()
		behavioral = s.Behavioral.Analyze(bctx, in.Question, capture.DurationSeconds, transcript)
		return nil
	})
	// Analyzers resolve internally, so Wait only synchronizes.
	_ = g.Wait()

	rec := domain.AnswerRecord{
		MockID:             in.MockID,
		QuestionIndex:      in.QuestionIndex,
		Question:           in.Question,
		CorrectAnswer:      in.CorrectAnswer,
		UserAnswer:         transcript,
		Feedback:           feedback.Feedback,
		Rating:             feedback.Rating,
		UserEmail:          in.UserEmail,
		CreatedAt:          s.now().Format(createdAtLayout),
		VideoBase64:        base64.StdEncoding.EncodeToString(capture.Video),
		VideoDuration:      strconv.Itoa(capture.DurationSeconds),
		BodyLanguageScore:  behavioral.BodyLanguageScore,
		EyeContactScore:    behavioral.EyeContactScore,
		ConfidenceScore:    behavioral.ConfidenceScore,
		PacingScore:        behavioral.PacingScore,
		EngagementScore:    behavioral.EngagementScore,
		OverallScore:       behavioral.OverallScore,
		BehavioralFeedback: behavioral.BehavioralFeedback,
	}

	id, err := s.Answers.Create(ctx, rec)
	if err != nil {
		return SubmitAnswerOutput{}, fmt.Errorf("op=answer.submit: %w", err)
	}

	observability.AnswersSubmittedTotal.Inc()
	if v, perr := strconv.ParseFloat(feedback.Rating, 64); perr == nil {
		observability.AnswerRatingHistogram.Observe(v)
	}
	if v, perr := strconv.ParseFloat(behavioral.OverallScore, 64); perr == nil {
		observability.BehavioralScoreHistogram.Observe(v)
	}

	return SubmitAnswerOutput{ID: id, Feedback: feedback, Behavioral: behavioral}, nil
}

// List returns the stored answers for one interview in insertion order.
func (s *AnswerService) List(ctx domain.Context, mockID string) ([]domain.AnswerRecord, error) {
	if mockID == "" {
		return nil, fmt.Errorf("%w: mock id required", domain.ErrInvalidArgument)
	}
	recs, err := s.Answers.ListByMockID(ctx, mockID)
	if err != nil {
		return nil, fmt.Errorf("op=answer.list: %w", err)
	}
	return recs, nil
}

func (s *AnswerService) timeoutCtx(ctx domain.Context) (domain.Context, context.CancelFunc) {
	return withTimeout(ctx, s.AITimeout)
}

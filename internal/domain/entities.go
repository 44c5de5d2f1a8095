package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrInternal        = errors.New("internal error")
)

// DefaultScore is substituted for any behavioral or content score the AI
// response did not yield. Scores are stored and transported as strings.
const DefaultScore = "7"

// MinSubmitSeconds is the capture-boundary minimum recording length. It is
// enforced where captures are accepted (the HTTP handler), not by the
// scoring pipeline itself.
const MinSubmitSeconds = 20

// MinTranscriptChars is the threshold below which a transcript counts as
// "no speech detected" and is replaced with a placeholder.
const MinTranscriptChars = 10

// Interview types
const (
	InterviewTypeTechnical  = "technical"
	InterviewTypeBehavioral = "behavioral"
)

// AnswerCapture is the raw recorded artifact for one interview question:
// the encoded media, its length in seconds, and the live transcript
// accumulated while recording. Immutable once recording stops.
type AnswerCapture struct {
	Video           []byte
	DurationSeconds int
	Transcript      string
}

// NeedsPlaceholder reports whether the transcript is too short to score
// and must be substituted before the AI components run.
func (c AnswerCapture) NeedsPlaceholder() bool {
	return len(strings.TrimSpace(c.Transcript)) < MinTranscriptChars
}

// PlaceholderTranscript is the substitute text used when no usable speech
// was captured. Downstream scoring still runs on this text.
func PlaceholderTranscript(durationSeconds int) string {
	return fmt.Sprintf("[%d second video response - no speech detected. Please check microphone permissions.]", durationSeconds)
}

// ContentFeedback is the AI assessment of answer substance.
// Rating is a numeric string in [1,10].
type ContentFeedback struct {
	Rating          string
	Feedback        string
	Strengths       string
	Recommendations string
}

// DefaultContentFeedback is returned whenever the AI response cannot be
// parsed or the call fails. The caller never sees an error.
func DefaultContentFeedback() ContentFeedback {
	return ContentFeedback{
		Rating:          DefaultScore,
		Feedback:        "Response recorded successfully. Continue practicing your interview skills.",
		Strengths:       "Completed the response",
		Recommendations: "Keep practicing",
	}
}

// BehavioralScore is the delivery/presentation assessment derived from the
// answer duration and transcript only; video pixels are never analyzed.
// All score fields are numeric strings in [1,10].
type BehavioralScore struct {
	BodyLanguageScore   string
	EyeContactScore     string
	ConfidenceScore     string
	PacingScore         string
	EngagementScore     string
	OverallScore        string
	BehavioralFeedback  string
	Strengths           []string
	AreasForImprovement []string
	RecommendedActions  string
}

// AnswerRecord is the persisted union of a capture and its assessments,
// keyed by interview id and ordered by insertion. Append-only.
type AnswerRecord struct {
	ID            int64
	MockID        string
	QuestionIndex int
	Question      string
	CorrectAnswer string
	UserAnswer    string
	Feedback      string
	Rating        string
	UserEmail     string
	CreatedAt     string

	VideoBase64   string
	VideoDuration string

	BodyLanguageScore  string
	EyeContactScore    string
	ConfidenceScore    string
	PacingScore        string
	EngagementScore    string
	OverallScore       string
	BehavioralFeedback string
}

// Interview is one generated mock-interview session with its question set.
type Interview struct {
	ID            int64
	MockID        string
	QuestionsJSON string
	JobPosition   string
	JobDesc       string
	JobExperience string
	InterviewType string
	ResumeText    string
	CreatedBy     string
	CreatedAt     time.Time
}

// Question is a standalone generated question-set record (question bank).
type Question struct {
	ID            int64
	MockID        string
	QuestionsJSON string
	JobPosition   string
	JobDesc       string
	JobExperience string
	QuestionType  string
	Company       string
	CreatedBy     string
	CreatedAt     time.Time
}

// Repositories (ports)

type AnswerRepository interface {
	Create(ctx Context, rec AnswerRecord) (int64, error)
	ListByMockID(ctx Context, mockID string) ([]AnswerRecord, error)
}

type InterviewRepository interface {
	Create(ctx Context, iv Interview) (string, error)
	GetByMockID(ctx Context, mockID string) (Interview, error)
	ListByCreator(ctx Context, createdBy string) ([]Interview, error)
}

type QuestionRepository interface {
	Create(ctx Context, q Question) (string, error)
	ListByMockID(ctx Context, mockID string) ([]Question, error)
	ListByCreator(ctx Context, createdBy string) ([]Question, error)
}

// Analyzer ports. Both always resolve: transport failures and unparseable
// model output degrade to defaults or heuristics inside the adapter, so
// neither method can fail.

type ContentAnalyzer interface {
	Analyze(ctx Context, question, transcript string, durationSeconds int) ContentFeedback
}

type BehavioralAnalyzer interface {
	Analyze(ctx Context, question string, durationSeconds int, transcript string) BehavioralScore
}

// QuestionGenerator produces interview question sets as canonical JSON
// array strings. Unlike the analyzers this can fail: question generation
// has no sensible fallback and surfaces schema errors to the caller.
type QuestionGenerator interface {
	GenerateTechnical(ctx Context, jobPosition, jobDesc, jobExperience, resumeText string) (string, error)
	GenerateBehavioral(ctx Context, jobPosition, jobDesc, jobExperience string) (string, error)
}

// AIClient (port)
//
// One-shot completion boundary: a prompt in, text containing JSON out.
// No schema is enforced by the service; callers own all validation and
// repair (see internal/adapter/ai).
type AIClient interface {
	GenerateText(ctx Context, prompt string) (string, error)
}

// TextExtractor (port)
// ExtractPath extracts text from a file at path with provided original filename.
type TextExtractor interface {
	ExtractPath(ctx Context, fileName, path string) (string, error)
}

// Context is a type alias to context.Context so that domain signatures stay
// decoupled in spelling while adapters pass std contexts through.
type Context = context.Context

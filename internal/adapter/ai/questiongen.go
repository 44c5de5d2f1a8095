package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prepforge/ai-interview-coach/internal/adapter/observability"
	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/pkg/textx"
)

// DefaultQuestionCount is how many questions a new interview gets.
const DefaultQuestionCount = 5

// GeneratedQuestion is one question in a generated interview set. Answer
// holds the model answer for technical sets and the evaluation criteria for
// behavioral sets, mirroring how the sets are rendered to candidates.
type GeneratedQuestion struct {
	Question       string   `json:"Question"`
	Answer         string   `json:"Answer"`
	Category       string   `json:"Category,omitempty"`
	Difficulty     string   `json:"Difficulty,omitempty"`
	ExpectedPoints []string `json:"ExpectedPoints,omitempty"`
	SampleAnswer   string   `json:"SampleAnswer,omitempty"`
}

// QuestionGenerator produces interview question sets. Unlike the feedback
// analyzers, generation failures surface to the caller: there is no useful
// fallback for an interview with no questions.
type QuestionGenerator struct {
	AI       domain.AIClient
	Prompts  *PromptBuilder
	Cleaner  *ResponseCleaner
	Provider string
}

// NewQuestionGenerator constructs a QuestionGenerator.
func NewQuestionGenerator(client domain.AIClient, prompts *PromptBuilder, provider string) *QuestionGenerator {
	return &QuestionGenerator{AI: client, Prompts: prompts, Cleaner: NewResponseCleaner(), Provider: provider}
}

// GenerateTechnical returns the question set as canonical JSON (an array of
// GeneratedQuestion) ready for storage.
func (g *QuestionGenerator) GenerateTechnical(ctx domain.Context, jobPosition, jobDesc, jobExperience, resumeText string) (string, error) {
	prompt := g.Prompts.TechnicalQuestions(jobPosition, jobDesc, jobExperience, resumeText, DefaultQuestionCount)

	start := time.Now()
	raw, err := g.AI.GenerateText(ctx, prompt)
	observability.ObserveAIRequest(g.Provider, "generate_technical", time.Since(start))
	if err != nil {
		return "", fmt.Errorf("generate technical questions: %w", err)
	}

	questions, err := g.parseArray(raw)
	if err != nil {
		return "", err
	}
	return marshalQuestions(questions)
}

// GenerateBehavioral returns a STAR-oriented question set as canonical
// JSON. The evaluation criteria become the stored Answer field.
func (g *QuestionGenerator) GenerateBehavioral(ctx domain.Context, jobPosition, jobDesc, jobExperience string) (string, error) {
	prompt := g.Prompts.BehavioralQuestions(jobPosition, jobDesc, jobExperience, DefaultQuestionCount)

	start := time.Now()
	raw, err := g.AI.GenerateText(ctx, prompt)
	observability.ObserveAIRequest(g.Provider, "generate_behavioral", time.Since(start))
	if err != nil {
		return "", fmt.Errorf("generate behavioral questions: %w", err)
	}

	cleaned := g.Cleaner.StripFences(raw)
	var payload struct {
		Questions []struct {
			Question             string   `json:"question"`
			Category             string   `json:"category"`
			Difficulty           string   `json:"difficulty"`
			ExpectedAnswerPoints []string `json:"expectedAnswerPoints"`
			EvaluationCriteria   string   `json:"evaluationCriteria"`
			SampleAnswer         string   `json:"sampleAnswer"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		span, ok := g.Cleaner.ExtractObject(cleaned)
		if !ok {
			return "", fmt.Errorf("%w: no JSON object in behavioral question response", domain.ErrSchemaInvalid)
		}
		if err := json.Unmarshal([]byte(span), &payload); err != nil {
			slog.Error("behavioral question response unparseable",
				slog.String("payload_preview", textx.Truncate(cleaned, 500)))
			return "", fmt.Errorf("%w: behavioral question parse: %v", domain.ErrSchemaInvalid, err)
		}
	}
	if len(payload.Questions) == 0 {
		return "", fmt.Errorf("%w: behavioral question set empty", domain.ErrSchemaInvalid)
	}

	questions := make([]GeneratedQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		questions = append(questions, GeneratedQuestion{
			Question:       q.Question,
			Answer:         q.EvaluationCriteria,
			Category:       q.Category,
			Difficulty:     q.Difficulty,
			ExpectedPoints: q.ExpectedAnswerPoints,
			SampleAnswer:   q.SampleAnswer,
		})
	}
	return marshalQuestions(questions)
}

func (g *QuestionGenerator) parseArray(raw string) ([]GeneratedQuestion, error) {
	cleaned := g.Cleaner.StripFences(raw)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		span, ok := g.Cleaner.ExtractArray(cleaned)
		if !ok {
			// Some models wrap the array in an object.
			if obj, objOK := g.Cleaner.ExtractObject(cleaned); objOK {
				var wrapped struct {
					Questions []GeneratedQuestion `json:"questions"`
				}
				if err := json.Unmarshal([]byte(obj), &wrapped); err == nil && len(wrapped.Questions) > 0 {
					return wrapped.Questions, nil
				}
			}
			return nil, fmt.Errorf("%w: no JSON array in question response", domain.ErrSchemaInvalid)
		}
		if err := json.Unmarshal([]byte(span), &questions); err != nil {
			slog.Error("question response unparseable",
				slog.String("payload_preview", textx.Truncate(cleaned, 500)))
			return nil, fmt.Errorf("%w: question parse: %v", domain.ErrSchemaInvalid, err)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: question set empty", domain.ErrSchemaInvalid)
	}
	return questions, nil
}

func marshalQuestions(questions []GeneratedQuestion) (string, error) {
	b, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("marshal question set: %w", err)
	}
	return string(b), nil
}

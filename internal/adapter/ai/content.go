package ai

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/prepforge/ai-interview-coach/internal/adapter/observability"
	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/pkg/textx"
)

// ContentAnalyzer produces the answer-quality assessment. It never returns
// an error: any AI or parse failure resolves to the fixed default feedback.
type ContentAnalyzer struct {
	AI       domain.AIClient
	Prompts  *PromptBuilder
	Cleaner  *ResponseCleaner
	Provider string
}

// NewContentAnalyzer constructs a ContentAnalyzer.
func NewContentAnalyzer(client domain.AIClient, prompts *PromptBuilder, provider string) *ContentAnalyzer {
	return &ContentAnalyzer{AI: client, Prompts: prompts, Cleaner: NewResponseCleaner(), Provider: provider}
}

type contentPayload struct {
	Rating          any `json:"rating"`
	Feedback        any `json:"feedback"`
	Strengths       any `json:"strengths"`
	Recommendations any `json:"recommendations"`
}

// Analyze rates the transcript against the question. It always resolves:
// each response is tagged internally as parsed, repaired, or defaulted.
func (a *ContentAnalyzer) Analyze(ctx domain.Context, question, transcript string, durationSeconds int) domain.ContentFeedback {
	prompt := a.Prompts.ContentFeedback(question, transcript, durationSeconds)

	start := time.Now()
	raw, err := a.AI.GenerateText(ctx, prompt)
	observability.ObserveAIRequest(a.Provider, "content_feedback", time.Since(start))
	if err != nil {
		slog.Error("content feedback call failed, using default", slog.Any("error", err))
		observability.RecordParseOutcome("content_feedback", string(OutcomeDefault))
		return domain.DefaultContentFeedback()
	}

	fb, outcome := a.parse(raw)
	observability.RecordParseOutcome("content_feedback", string(outcome))
	return fb
}

func (a *ContentAnalyzer) parse(raw string) (domain.ContentFeedback, Outcome) {
	cleaned := a.Cleaner.StripFences(raw)

	var payload contentPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil {
		return a.normalize(payload), OutcomeParsed
	}
	if span, ok := a.Cleaner.ExtractObject(cleaned); ok {
		if err := json.Unmarshal([]byte(span), &payload); err == nil {
			return a.normalize(payload), OutcomeRepaired
		}
	}
	slog.Error("content feedback response unparseable, using default",
		slog.String("payload_preview", textx.Truncate(cleaned, 300)))
	return domain.DefaultContentFeedback(), OutcomeDefault
}

func (a *ContentAnalyzer) normalize(p contentPayload) domain.ContentFeedback {
	def := domain.DefaultContentFeedback()
	return domain.ContentFeedback{
		Rating:          scoreString(p.Rating, def.Rating),
		Feedback:        joinText(p.Feedback, def.Feedback),
		Strengths:       joinText(p.Strengths, def.Strengths),
		Recommendations: joinText(p.Recommendations, def.Recommendations),
	}
}

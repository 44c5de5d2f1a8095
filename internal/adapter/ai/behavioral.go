package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/prepforge/ai-interview-coach/internal/adapter/observability"
	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/pkg/textx"
)

// heuristicBase is the starting score every heuristic metric builds on.
const heuristicBase = 7

// engagementLengthThreshold awards the engagement bonus to transcripts
// longer than this many characters.
const engagementLengthThreshold = 200

// VarianceFunc supplies the simulated variance added to the heuristic body
// language and eye contact scores. The zero value (nil) means no variance;
// JitterVariance gives a 0/+1 spread.
type VarianceFunc func() int

// JitterVariance returns a VarianceFunc yielding 0 or 1 uniformly.
func JitterVariance() VarianceFunc {
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // simulated variance, not security sensitive
	return func() int { return rng.Intn(2) }
}

// BehavioralAnalyzer produces delivery scores from duration and transcript.
// It never returns an error: transport failures, timeouts, and unparseable
// responses all resolve to the heuristic scorer.
type BehavioralAnalyzer struct {
	AI       domain.AIClient
	Prompts  *PromptBuilder
	Cleaner  *ResponseCleaner
	Provider string
	Variance VarianceFunc
}

// NewBehavioralAnalyzer constructs a BehavioralAnalyzer. variance may be nil
// for fully deterministic fallback scores.
func NewBehavioralAnalyzer(client domain.AIClient, prompts *PromptBuilder, provider string, variance VarianceFunc) *BehavioralAnalyzer {
	return &BehavioralAnalyzer{AI: client, Prompts: prompts, Cleaner: NewResponseCleaner(), Provider: provider, Variance: variance}
}

type behavioralPayload struct {
	BodyLanguageScore         any `json:"bodyLanguageScore"`
	EyeContactScore           any `json:"eyeContactScore"`
	ConfidenceScore           any `json:"confidenceScore"`
	PacingScore               any `json:"pacingScore"`
	EngagementScore           any `json:"engagementScore"`
	OverallVideoBehaviorScore any `json:"overallVideoBehaviorScore"`
	BehavioralFeedback        any `json:"behavioralFeedback"`
	Strengths                 any `json:"strengths"`
	AreasForImprovement       any `json:"areasForImprovement"`
	RecommendedActions        any `json:"recommendedActions"`
}

// Analyze scores the answer's delivery. Parse ladder: direct parse after
// fence stripping, then balanced-brace extraction, then the local
// heuristic. AI transport errors skip straight to the heuristic.
func (a *BehavioralAnalyzer) Analyze(ctx domain.Context, question string, durationSeconds int, transcript string) domain.BehavioralScore {
	prompt := a.Prompts.Behavioral(question, durationSeconds, transcript)

	start := time.Now()
	raw, err := a.AI.GenerateText(ctx, prompt)
	observability.ObserveAIRequest(a.Provider, "behavioral_score", time.Since(start))
	if err != nil {
		slog.Error("behavioral scoring call failed, using heuristic", slog.Any("error", err))
		observability.RecordParseOutcome("behavioral_score", string(OutcomeHeuristic))
		return a.Heuristic(durationSeconds, transcript)
	}

	score, outcome := a.parse(raw, durationSeconds, transcript)
	observability.RecordParseOutcome("behavioral_score", string(outcome))
	return score
}

func (a *BehavioralAnalyzer) parse(raw string, durationSeconds int, transcript string) (domain.BehavioralScore, Outcome) {
	cleaned := a.Cleaner.StripFences(raw)

	var payload behavioralPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil {
		return a.normalize(payload), OutcomeParsed
	}
	if span, ok := a.Cleaner.ExtractObject(cleaned); ok {
		if err := json.Unmarshal([]byte(span), &payload); err == nil {
			return a.normalize(payload), OutcomeRepaired
		}
	}
	slog.Error("behavioral response unparseable, using heuristic",
		slog.String("payload_preview", textx.Truncate(cleaned, 300)))
	return a.Heuristic(durationSeconds, transcript), OutcomeHeuristic
}

func (a *BehavioralAnalyzer) normalize(p behavioralPayload) domain.BehavioralScore {
	return domain.BehavioralScore{
		BodyLanguageScore:   scoreString(p.BodyLanguageScore, domain.DefaultScore),
		EyeContactScore:     scoreString(p.EyeContactScore, domain.DefaultScore),
		ConfidenceScore:     scoreString(p.ConfidenceScore, domain.DefaultScore),
		PacingScore:         scoreString(p.PacingScore, domain.DefaultScore),
		EngagementScore:     scoreString(p.EngagementScore, domain.DefaultScore),
		OverallScore:        scoreString(p.OverallVideoBehaviorScore, domain.DefaultScore),
		BehavioralFeedback:  joinText(p.BehavioralFeedback, "Video recorded"),
		Strengths:           stringList(p.Strengths, []string{"Completed video response"}),
		AreasForImprovement: stringList(p.AreasForImprovement, []string{"Practice maintaining eye contact"}),
		RecommendedActions:  joinText(p.RecommendedActions, "Review your video recording to identify improvement areas."),
	}
}

// Heuristic computes deterministic scores from duration and transcript
// length, with optional simulated variance on the observational metrics.
func (a *BehavioralAnalyzer) Heuristic(durationSeconds int, transcript string) domain.BehavioralScore {
	band := BandFor(durationSeconds)

	durationBonus := -1
	if band.Score >= heuristicBase {
		durationBonus = 1
	}
	lengthBonus := 0
	if len(transcript) > engagementLengthThreshold {
		lengthBonus = 1
	}
	variance := func() int { return 0 }
	if a != nil && a.Variance != nil {
		variance = a.Variance
	}

	improvement := "Be more concise"
	if durationSeconds < 60 {
		improvement = "Provide more detailed responses"
	}

	return domain.BehavioralScore{
		BodyLanguageScore: heuristicScore(heuristicBase + variance()),
		EyeContactScore:   heuristicScore(heuristicBase + variance()),
		ConfidenceScore:   heuristicScore(heuristicBase + durationBonus),
		PacingScore:       heuristicScore(band.Score),
		EngagementScore:   heuristicScore(heuristicBase + lengthBonus),
		OverallScore:      heuristicScore(heuristicBase + durationBonus),
		BehavioralFeedback: fmt.Sprintf(
			"Response duration: %ds (%s). Your video response demonstrated professional communication. "+
				"To improve: maintain consistent eye contact with the camera, use natural hand gestures, "+
				"and ensure your answer follows the STAR method (Situation, Task, Action, Result).",
			durationSeconds, band.Note),
		Strengths: []string{
			"Completed video response successfully",
			"Demonstrated engagement with the question",
			"Professional presentation style",
		},
		AreasForImprovement: []string{
			improvement,
			"Practice maintaining steady eye contact with camera",
		},
		RecommendedActions: "Record practice responses and review them to identify body language patterns. " +
			"Focus on answering in 1-3 minutes using the STAR method.",
	}
}

func heuristicScore(n int) string { return strconv.Itoa(clampScore(n)) }

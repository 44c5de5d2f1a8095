package usecase

import (
	"fmt"
	"strconv"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// AnswerSummary is the feedback view for one interview: every stored
// answer plus the session-level aggregates shown on the results page.
type AnswerSummary struct {
	Records                []domain.AnswerRecord
	OverallRating          string
	OverallBehavioralScore string
}

// ListWithSummary returns the answers for an interview together with the
// aggregate content rating and behavioral score.
func (s *AnswerService) ListWithSummary(ctx domain.Context, mockID string) (AnswerSummary, error) {
	recs, err := s.List(ctx, mockID)
	if err != nil {
		return AnswerSummary{}, err
	}
	return AnswerSummary{
		Records:                recs,
		OverallRating:          OverallRating(recs),
		OverallBehavioralScore: OverallBehavioralScore(recs),
	}, nil
}

// OverallRating is the mean of per-answer content ratings, rendered to one
// decimal place. Unparseable ratings are skipped; an empty session scores
// "0.0".
func OverallRating(recs []domain.AnswerRecord) string {
	var sum float64
	var n int
	for _, rec := range recs {
		v, err := strconv.ParseFloat(rec.Rating, 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return "0.0"
	}
	return formatScore(sum / float64(n))
}

// OverallBehavioralScore averages, per answer, the five behavioral
// sub-scores, then averages those means across the session. One decimal
// place; answers with no parseable sub-score are skipped.
func OverallBehavioralScore(recs []domain.AnswerRecord) string {
	var sum float64
	var n int
	for _, rec := range recs {
		mean, ok := behavioralMean(rec)
		if !ok {
			continue
		}
		sum += mean
		n++
	}
	if n == 0 {
		return "0.0"
	}
	return formatScore(sum / float64(n))
}

func behavioralMean(rec domain.AnswerRecord) (float64, bool) {
	scores := []string{
		rec.BodyLanguageScore,
		rec.EyeContactScore,
		rec.ConfidenceScore,
		rec.PacingScore,
		rec.EngagementScore,
	}
	var sum float64
	var n int
	for _, s := range scores {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

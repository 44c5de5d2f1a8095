package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// AnswerRepo persists and loads answer records. Score columns are text;
// values round-trip byte-identical.
type AnswerRepo struct{ Pool PgxPool }

// NewAnswerRepo constructs an AnswerRepo with the given pool.
func NewAnswerRepo(p PgxPool) *AnswerRepo { return &AnswerRepo{Pool: p} }

// Create appends a new answer record and returns its serial id.
func (r *AnswerRepo) Create(ctx domain.Context, rec domain.AnswerRecord) (int64, error) {
	tracer := otel.Tracer("repo.answers")
	ctx, span := tracer.Start(ctx, "answers.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "user_answers"),
	)
	q := `INSERT INTO user_answers (
		mock_id_ref, question_index, question, correct_ans, user_ans, feedback, rating, user_email, created_at,
		video_base64, video_duration,
		body_language_score, eye_contact_score, confidence_score, pacing_score, engagement_score,
		overall_behavior_score, behavioral_feedback
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	RETURNING id`
	row := r.Pool.QueryRow(ctx, q,
		rec.MockID, rec.QuestionIndex, rec.Question, rec.CorrectAnswer, rec.UserAnswer, rec.Feedback, rec.Rating, rec.UserEmail, rec.CreatedAt,
		rec.VideoBase64, rec.VideoDuration,
		rec.BodyLanguageScore, rec.EyeContactScore, rec.ConfidenceScore, rec.PacingScore, rec.EngagementScore,
		rec.OverallScore, rec.BehavioralFeedback,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("op=answer.create: %w", err)
	}
	return id, nil
}

// ListByMockID returns all records for an interview ordered by question
// index, then insertion order.
func (r *AnswerRepo) ListByMockID(ctx domain.Context, mockID string) ([]domain.AnswerRecord, error) {
	tracer := otel.Tracer("repo.answers")
	ctx, span := tracer.Start(ctx, "answers.ListByMockID")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "user_answers"),
	)
	q := `SELECT id, mock_id_ref, question_index, question, correct_ans, user_ans, feedback, rating, user_email, created_at,
		video_base64, video_duration,
		body_language_score, eye_contact_score, confidence_score, pacing_score, engagement_score,
		overall_behavior_score, behavioral_feedback
	FROM user_answers WHERE mock_id_ref=$1 ORDER BY question_index, id`
	rows, err := r.Pool.Query(ctx, q, mockID)
	if err != nil {
		return nil, fmt.Errorf("op=answer.list: %w", err)
	}
	defer rows.Close()
	var out []domain.AnswerRecord
	for rows.Next() {
		var rec domain.AnswerRecord
		if err := rows.Scan(
			&rec.ID, &rec.MockID, &rec.QuestionIndex, &rec.Question, &rec.CorrectAnswer, &rec.UserAnswer, &rec.Feedback, &rec.Rating, &rec.UserEmail, &rec.CreatedAt,
			&rec.VideoBase64, &rec.VideoDuration,
			&rec.BodyLanguageScore, &rec.EyeContactScore, &rec.ConfidenceScore, &rec.PacingScore, &rec.EngagementScore,
			&rec.OverallScore, &rec.BehavioralFeedback,
		); err != nil {
			return nil, fmt.Errorf("op=answer.list.scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=answer.list.rows: %w", err)
	}
	return out, nil
}

// notFound maps pgx.ErrNoRows onto the domain sentinel.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return err
}

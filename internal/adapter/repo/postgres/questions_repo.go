package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// QuestionRepo persists and loads question-bank records.
type QuestionRepo struct{ Pool PgxPool }

// NewQuestionRepo constructs a QuestionRepo with the given pool.
func NewQuestionRepo(p PgxPool) *QuestionRepo { return &QuestionRepo{Pool: p} }

// Create stores a question set and returns its mock id (generates one if empty).
func (r *QuestionRepo) Create(ctx domain.Context, qs domain.Question) (string, error) {
	tracer := otel.Tracer("repo.questions")
	ctx, span := tracer.Start(ctx, "questions.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "questions"),
	)
	mockID := qs.MockID
	if mockID == "" {
		mockID = uuid.New().String()
	}
	createdAt := qs.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO questions (mock_id, questions_json, job_position, job_desc, job_experience, question_type, company, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, mockID, qs.QuestionsJSON, qs.JobPosition, qs.JobDesc, qs.JobExperience, qs.QuestionType, qs.Company, qs.CreatedBy, createdAt)
	if err != nil {
		return "", fmt.Errorf("op=question.create: %w", err)
	}
	return mockID, nil
}

// ListByMockID returns question sets for a given mock id.
func (r *QuestionRepo) ListByMockID(ctx domain.Context, mockID string) ([]domain.Question, error) {
	return r.list(ctx, `SELECT id, mock_id, questions_json, job_position, job_desc, job_experience, question_type, company, created_by, created_at
		FROM questions WHERE mock_id=$1`, mockID)
}

// ListByCreator returns question sets created by the given user, newest first.
func (r *QuestionRepo) ListByCreator(ctx domain.Context, createdBy string) ([]domain.Question, error) {
	return r.list(ctx, `SELECT id, mock_id, questions_json, job_position, job_desc, job_experience, question_type, company, created_by, created_at
		FROM questions WHERE created_by=$1 ORDER BY id DESC`, createdBy)
}

func (r *QuestionRepo) list(ctx domain.Context, q string, arg any) ([]domain.Question, error) {
	tracer := otel.Tracer("repo.questions")
	ctx, span := tracer.Start(ctx, "questions.List")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "questions"),
	)
	rows, err := r.Pool.Query(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("op=question.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Question
	for rows.Next() {
		var qs domain.Question
		if err := rows.Scan(&qs.ID, &qs.MockID, &qs.QuestionsJSON, &qs.JobPosition, &qs.JobDesc, &qs.JobExperience, &qs.QuestionType, &qs.Company, &qs.CreatedBy, &qs.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=question.list.scan: %w", err)
		}
		out = append(out, qs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=question.list.rows: %w", err)
	}
	return out, nil
}

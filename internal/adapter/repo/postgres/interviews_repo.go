package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// InterviewRepo persists and loads mock interviews.
type InterviewRepo struct{ Pool PgxPool }

// NewInterviewRepo constructs an InterviewRepo with the given pool.
func NewInterviewRepo(p PgxPool) *InterviewRepo { return &InterviewRepo{Pool: p} }

// Create stores a new interview and returns its mock id (generates one if empty).
func (r *InterviewRepo) Create(ctx domain.Context, iv domain.Interview) (string, error) {
	tracer := otel.Tracer("repo.interviews")
	ctx, span := tracer.Start(ctx, "interviews.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "mock_interviews"),
	)
	mockID := iv.MockID
	if mockID == "" {
		mockID = uuid.New().String()
	}
	createdAt := iv.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO mock_interviews (mock_id, questions_json, job_position, job_desc, job_experience, interview_type, resume_text, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, mockID, iv.QuestionsJSON, iv.JobPosition, iv.JobDesc, iv.JobExperience, iv.InterviewType, iv.ResumeText, iv.CreatedBy, createdAt)
	if err != nil {
		return "", fmt.Errorf("op=interview.create: %w", err)
	}
	return mockID, nil
}

// GetByMockID loads one interview or returns domain.ErrNotFound.
func (r *InterviewRepo) GetByMockID(ctx domain.Context, mockID string) (domain.Interview, error) {
	tracer := otel.Tracer("repo.interviews")
	ctx, span := tracer.Start(ctx, "interviews.GetByMockID")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "mock_interviews"),
	)
	q := `SELECT id, mock_id, questions_json, job_position, job_desc, job_experience, interview_type, resume_text, created_by, created_at
		FROM mock_interviews WHERE mock_id=$1`
	row := r.Pool.QueryRow(ctx, q, mockID)
	var iv domain.Interview
	if err := row.Scan(&iv.ID, &iv.MockID, &iv.QuestionsJSON, &iv.JobPosition, &iv.JobDesc, &iv.JobExperience, &iv.InterviewType, &iv.ResumeText, &iv.CreatedBy, &iv.CreatedAt); err != nil {
		return domain.Interview{}, fmt.Errorf("op=interview.get: %w", notFound(err, "interview"))
	}
	return iv, nil
}

// ListByCreator returns interviews created by the given user, newest first.
func (r *InterviewRepo) ListByCreator(ctx domain.Context, createdBy string) ([]domain.Interview, error) {
	tracer := otel.Tracer("repo.interviews")
	ctx, span := tracer.Start(ctx, "interviews.ListByCreator")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "mock_interviews"),
	)
	q := `SELECT id, mock_id, questions_json, job_position, job_desc, job_experience, interview_type, resume_text, created_by, created_at
		FROM mock_interviews WHERE created_by=$1 ORDER BY id DESC`
	rows, err := r.Pool.Query(ctx, q, createdBy)
	if err != nil {
		return nil, fmt.Errorf("op=interview.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(&iv.ID, &iv.MockID, &iv.QuestionsJSON, &iv.JobPosition, &iv.JobDesc, &iv.JobExperience, &iv.InterviewType, &iv.ResumeText, &iv.CreatedBy, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=interview.list.scan: %w", err)
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=interview.list.rows: %w", err)
	}
	return out, nil
}

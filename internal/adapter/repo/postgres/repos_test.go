package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: want %d dests, got %d", len(vals), len(dest))
	}
	for i, v := range vals {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int64:
			*d = v.(int64)
		case *int:
			*d = v.(int)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return fmt.Errorf("scan: unsupported dest %T", dest[i])
		}
	}
	return nil
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}
func (r *fakeRows) Scan(dest ...any) error   { return assign(dest, r.rows[r.idx-1]) }
func (r *fakeRows) Values() ([]any, error)   { return r.rows[r.idx-1], nil }
func (r *fakeRows) RawValues() [][]byte      { return nil }
func (r *fakeRows) Conn() *pgx.Conn          { return nil }

type fakePool struct {
	row      fakeRow
	rows     *fakeRows
	execErr  error
	lastSQL  string
	lastArgs []any
}

func (p *fakePool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.lastSQL, p.lastArgs = sql, args
	return pgconn.CommandTag{}, p.execErr
}

func (p *fakePool) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	p.lastSQL, p.lastArgs = sql, args
	return p.row
}

func (p *fakePool) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	p.lastSQL, p.lastArgs = sql, args
	return p.rows, nil
}

func TestAnswerRepo_Create(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: fakeRow{vals: []any{int64(7)}}}
	repo := NewAnswerRepo(pool)

	id, err := repo.Create(context.Background(), domain.AnswerRecord{
		MockID:        "mock-1",
		QuestionIndex: 2,
		Question:      "Why Go?",
		Rating:        "8",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Len(t, pool.lastArgs, 18)
	assert.Equal(t, "mock-1", pool.lastArgs[0])
	assert.Equal(t, 2, pool.lastArgs[1])
	assert.Contains(t, pool.lastSQL, "user_answers")
}

func TestAnswerRepo_ListByMockID(t *testing.T) {
	t.Parallel()
	row := func(id int64, rating string) []any {
		return []any{
			id, "mock-1", 0, "q", "correct", "user answer", "feedback", rating, "u@example.com", "01-01-2026",
			"", "90",
			"7", "7", "7", "7", "7",
			"7", "bf",
		}
	}
	pool := &fakePool{rows: &fakeRows{rows: [][]any{row(1, "8"), row(2, "6")}}}
	repo := NewAnswerRepo(pool)

	recs, err := repo.ListByMockID(context.Background(), "mock-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(1), recs[0].ID)
	assert.Equal(t, "8", recs[0].Rating)
	assert.Equal(t, "6", recs[1].Rating)
}

func TestInterviewRepo_Create_GeneratesMockID(t *testing.T) {
	t.Parallel()
	pool := &fakePool{}
	repo := NewInterviewRepo(pool)

	mockID, err := repo.Create(context.Background(), domain.Interview{JobPosition: "x"})
	require.NoError(t, err)
	_, parseErr := uuid.Parse(mockID)
	assert.NoError(t, parseErr)
	assert.Equal(t, mockID, pool.lastArgs[0])
}

func TestInterviewRepo_GetByMockID_NotFound(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: fakeRow{err: pgx.ErrNoRows}}
	repo := NewInterviewRepo(pool)

	_, err := repo.GetByMockID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuestionRepo_Create_KeepsProvidedMockID(t *testing.T) {
	t.Parallel()
	pool := &fakePool{}
	repo := NewQuestionRepo(pool)

	mockID, err := repo.Create(context.Background(), domain.Question{MockID: "fixed-id"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", mockID)
	assert.Equal(t, "fixed-id", pool.lastArgs[0])
}

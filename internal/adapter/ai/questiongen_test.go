package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ai "github.com/prepforge/ai-interview-coach/internal/adapter/ai"
	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/internal/domain/mocks"
)

func newGenerator(client domain.AIClient) *ai.QuestionGenerator {
	return ai.NewQuestionGenerator(client, ai.NewPromptBuilder(0), "test")
}

func TestGenerateTechnical_FencedArray(t *testing.T) {
	t.Parallel()
	client := &mocks.MockAIClient{}
	client.On("GenerateText", mock.Anything, mock.Anything).
		Return("```json\n[{\"Question\":\"What is a goroutine?\",\"Answer\":\"A lightweight thread managed by the runtime.\"}]\n```", nil)

	out, err := newGenerator(client).GenerateTechnical(context.Background(), "Backend Engineer", "Go services", "3", "")
	require.NoError(t, err)

	var questions []ai.GeneratedQuestion
	require.NoError(t, json.Unmarshal([]byte(out), &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, "What is a goroutine?", questions[0].Question)
}

func TestGenerateTechnical_WrappedObjectFallback(t *testing.T) {
	t.Parallel()
	client := &mocks.MockAIClient{}
	client.On("GenerateText", mock.Anything, mock.Anything).
		Return(`{"questions":[{"Question":"q1","Answer":"a1"},{"Question":"q2","Answer":"a2"}]}`, nil)

	out, err := newGenerator(client).GenerateTechnical(context.Background(), "Backend Engineer", "Go services", "3", "")
	require.NoError(t, err)

	var questions []ai.GeneratedQuestion
	require.NoError(t, json.Unmarshal([]byte(out), &questions))
	assert.Len(t, questions, 2)
}

func TestGenerateTechnical_UnparseableSurfacesSchemaError(t *testing.T) {
	t.Parallel()
	client := &mocks.MockAIClient{}
	client.On("GenerateText", mock.Anything, mock.Anything).Return("no questions today", nil)

	_, err := newGenerator(client).GenerateTechnical(context.Background(), "Backend Engineer", "Go services", "3", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestGenerateTechnical_AIErrorPropagates(t *testing.T) {
	t.Parallel()
	client := &mocks.MockAIClient{}
	client.On("GenerateText", mock.Anything, mock.Anything).Return("", errors.New("provider down"))

	_, err := newGenerator(client).GenerateTechnical(context.Background(), "Backend Engineer", "Go services", "3", "")
	require.Error(t, err)
}

func TestGenerateBehavioral_MapsEvaluationCriteria(t *testing.T) {
	t.Parallel()
	payload := `{"questions":[{"question":"Tell me about a conflict.","category":"Teamwork","difficulty":"medium","expectedAnswerPoints":["situation","result"],"evaluationCriteria":"ownership and resolution","sampleAnswer":"In my last role..."}]}`
	client := &mocks.MockAIClient{}
	client.On("GenerateText", mock.Anything, mock.Anything).Return(payload, nil)

	out, err := newGenerator(client).GenerateBehavioral(context.Background(), "Backend Engineer", "Go services", "3")
	require.NoError(t, err)

	var questions []ai.GeneratedQuestion
	require.NoError(t, json.Unmarshal([]byte(out), &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, "ownership and resolution", questions[0].Answer)
	assert.Equal(t, "Teamwork", questions[0].Category)
	assert.Equal(t, []string{"situation", "result"}, questions[0].ExpectedPoints)
}

func TestGenerateBehavioral_EmptySetRejected(t *testing.T) {
	t.Parallel()
	client := &mocks.MockAIClient{}
	client.On("GenerateText", mock.Anything, mock.Anything).Return(`{"questions":[]}`, nil)

	_, err := newGenerator(client).GenerateBehavioral(context.Background(), "Backend Engineer", "Go services", "3")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

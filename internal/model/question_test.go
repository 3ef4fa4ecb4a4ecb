package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_RoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	q := Question{
		ID:          "q_1",
		Text:        "What is 2+2?",
		CreatedAt:   created,
		PublishedAt: created.Add(time.Minute),
		IsPublished: true,
		CreatedBy:   "teacher",
		Source:      QuestionSourceTeacher,
		Extra:       map[string]any{"subject": "math"},
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "What is 2+2?", m["question_text"])
	assert.Equal(t, "2024-03-01T09:30:00.000Z", m["created_at"])
	assert.Equal(t, "math", m["subject"])

	var back Question
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, q, back)
}

func TestQuestion_UnmarshalLegacyQuestionText(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"id":"old","question_text":"Legacy?","created_at":"yesterday"}`), &q))

	assert.True(t, q.HasText())
	assert.Equal(t, "Legacy?", q.Text)
	assert.True(t, q.CreatedAt.IsZero())
	assert.Nil(t, q.Extra)
}

func TestQuestion_ExtraCannotShadowCanonical(t *testing.T) {
	q := Question{ID: "q_1", Text: "real", Extra: map[string]any{"id": "fake", "text": "fake"}}

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var back Question
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "q_1", back.ID)
	assert.Equal(t, "real", back.Text)
}

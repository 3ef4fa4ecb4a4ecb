package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishQuestionRequest_Unmarshal(t *testing.T) {
	var req PublishQuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"question_text":"Old spelling","created_at":"2024-01-02T03:04:05.000Z","class":"7B"}`), &req))

	assert.Equal(t, "Old spelling", req.Text)
	require.NotNil(t, req.CreatedAt)
	assert.True(t, req.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, map[string]any{"class": "7B"}, req.Extra)

	original := req.OriginalData()
	assert.Equal(t, "Old spelling", original["text"])
	assert.Equal(t, "7B", original["class"])
	assert.Equal(t, "2024-01-02T03:04:05.000Z", original["created_at"])
	assert.NotContains(t, original, "id")
}

func TestPublishQuestionRequest_PublishedAt(t *testing.T) {
	var req PublishQuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"text":"Q","published_at":"2020-05-05T05:05:05.000Z"}`), &req))

	require.NotNil(t, req.PublishedAt)
	assert.True(t, req.PublishedAt.Equal(time.Date(2020, 5, 5, 5, 5, 5, 0, time.UTC)))
	assert.Nil(t, req.Extra)
	assert.Equal(t, "2020-05-05T05:05:05.000Z", req.OriginalData()["published_at"])
}

func TestPublishQuestionRequest_BadCreatedAtIsDropped(t *testing.T) {
	var req PublishQuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"text":"t","created_at":"soon"}`), &req))
	assert.Nil(t, req.CreatedAt)
}

func TestSubmitResponseRequest_Unmarshal(t *testing.T) {
	var req SubmitResponseRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"questionId": "q1",
		"questionText": "What is 2+2?",
		"studentName": "Ana",
		"answer": "four",
		"wordCount": "1",
		"score": 9,
		"device": "tablet"
	}`), &req))

	assert.Equal(t, "q1", req.QuestionID)
	assert.Equal(t, "What is 2+2?", req.QuestionText)
	assert.Equal(t, "Ana", req.StudentName)
	require.NotNil(t, req.WordCount)
	assert.Equal(t, 1, *req.WordCount)
	require.NotNil(t, req.Score)
	assert.Equal(t, 9.0, *req.Score)
	assert.Equal(t, map[string]any{"device": "tablet"}, req.Extra)

	original := req.OriginalData()
	assert.Equal(t, "q1", original["question_id"])
	assert.Equal(t, 1, original["word_count"])
	assert.Equal(t, "tablet", original["device"])
	assert.NotContains(t, original, "quality")
}

func TestSubmitResponseRequest_SubmittedAtSpellings(t *testing.T) {
	want := time.Date(2020, 5, 5, 5, 5, 5, 0, time.UTC)
	for _, body := range []string{
		`{"answer":"a","submitted_at":"2020-05-05T05:05:05.000Z"}`,
		`{"answer":"a","submittedAt":"2020-05-05T05:05:05.000Z"}`,
	} {
		var req SubmitResponseRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		require.NotNil(t, req.SubmittedAt, body)
		assert.True(t, req.SubmittedAt.Equal(want), body)
		assert.Nil(t, req.Extra, body)
		assert.Equal(t, "2020-05-05T05:05:05.000Z", req.OriginalData()["submitted_at"], body)
	}
}

func TestSubmitResponseRequest_MissingFieldsAreNotRejected(t *testing.T) {
	var req SubmitResponseRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

	assert.Empty(t, req.StudentName)
	assert.Empty(t, req.Answer)
	assert.Nil(t, req.WordCount)
	assert.Nil(t, req.SubmittedAt)
}

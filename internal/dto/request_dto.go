package dto

import (
	"time"

	"github.com/lshigami/intuity-sync/internal/jsonfield"
)

// PublishQuestionRequest is what a teacher page sends to publish a question.
// Only the text is meaningful; everything else is optional and unknown
// fields are kept in Extra.
type PublishQuestionRequest struct {
	ID        string         `json:"id,omitempty"`
	Text      string         `json:"text"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedBy   string         `json:"created_by,omitempty"`
	Extra       map[string]any `json:"-" swaggerignore:"true"`
}

var publishKeys = jsonfield.KeySet("id", "text", "question_text", "created_at", "published_at", "created_by")

func (r *PublishQuestionRequest) UnmarshalJSON(data []byte) error {
	m, err := jsonfield.DecodeObject(data)
	if err != nil {
		return err
	}
	*r = PublishQuestionRequest{
		ID:        jsonfield.String(m, "id"),
		Text:      jsonfield.String(m, "text", "question_text"),
		CreatedBy: jsonfield.String(m, "created_by"),
		Extra:     jsonfield.Extra(m, publishKeys),
	}
	if t := jsonfield.Time(m, "created_at"); !t.IsZero() {
		r.CreatedAt = &t
	}
	if t := jsonfield.Time(m, "published_at"); !t.IsZero() {
		r.PublishedAt = &t
	}
	return nil
}

// OriginalData is the request as the caller sent it, kept alongside the
// remote copy for auditing.
func (r PublishQuestionRequest) OriginalData() map[string]any {
	given := map[string]any{"text": r.Text}
	if r.ID != "" {
		given["id"] = r.ID
	}
	if r.CreatedAt != nil {
		given["created_at"] = jsonfield.FormatTime(*r.CreatedAt)
	}
	if r.PublishedAt != nil {
		given["published_at"] = jsonfield.FormatTime(*r.PublishedAt)
	}
	if r.CreatedBy != "" {
		given["created_by"] = r.CreatedBy
	}
	return jsonfield.Merge(r.Extra, given)
}

// SubmitResponseRequest is what a student page sends with an answer.
type SubmitResponseRequest struct {
	ID           string         `json:"id,omitempty"`
	QuestionID   string         `json:"question_id,omitempty"`
	QuestionText string         `json:"question_text,omitempty"`
	StudentName  string         `json:"student_name"`
	Answer       string         `json:"answer"`
	WordCount    *int           `json:"word_count,omitempty"`
	Quality      string         `json:"quality,omitempty"`
	Score        *float64       `json:"score,omitempty"`
	SubmittedAt  *time.Time     `json:"submitted_at,omitempty"`
	Timestamp    string         `json:"timestamp,omitempty"`
	PhotoURL     string         `json:"photo_url,omitempty"`
	Extra        map[string]any `json:"-" swaggerignore:"true"`
}

var submitKeys = jsonfield.KeySet(
	"id", "question_id", "questionId", "question_text", "questionText",
	"student_name", "studentName", "answer", "word_count", "wordCount",
	"quality", "score", "submitted_at", "submittedAt", "timestamp", "photo_url",
)

// UnmarshalJSON accepts the camelCase spellings older student pages send.
func (r *SubmitResponseRequest) UnmarshalJSON(data []byte) error {
	m, err := jsonfield.DecodeObject(data)
	if err != nil {
		return err
	}
	*r = SubmitResponseRequest{
		ID:           jsonfield.String(m, "id"),
		QuestionID:   jsonfield.String(m, "question_id", "questionId"),
		QuestionText: jsonfield.String(m, "question_text", "questionText"),
		StudentName:  jsonfield.String(m, "student_name", "studentName"),
		Answer:       jsonfield.String(m, "answer"),
		Quality:      jsonfield.String(m, "quality"),
		Score:        jsonfield.Float(m, "score"),
		Timestamp:    jsonfield.String(m, "timestamp"),
		PhotoURL:     jsonfield.String(m, "photo_url"),
		Extra:        jsonfield.Extra(m, submitKeys),
	}
	if n, ok := jsonfield.Int(m, "word_count", "wordCount"); ok {
		r.WordCount = &n
	}
	if t := jsonfield.Time(m, "submitted_at", "submittedAt"); !t.IsZero() {
		r.SubmittedAt = &t
	}
	return nil
}

func (r SubmitResponseRequest) OriginalData() map[string]any {
	given := map[string]any{
		"student_name": r.StudentName,
		"answer":       r.Answer,
	}
	optional := map[string]string{
		"id":            r.ID,
		"question_id":   r.QuestionID,
		"question_text": r.QuestionText,
		"quality":       r.Quality,
		"timestamp":     r.Timestamp,
		"photo_url":     r.PhotoURL,
	}
	for k, v := range optional {
		if v != "" {
			given[k] = v
		}
	}
	if r.WordCount != nil {
		given["word_count"] = *r.WordCount
	}
	if r.Score != nil {
		given["score"] = *r.Score
	}
	if r.SubmittedAt != nil {
		given["submitted_at"] = jsonfield.FormatTime(*r.SubmittedAt)
	}
	return jsonfield.Merge(r.Extra, given)
}

package model

import (
	"encoding/json"
	"time"

	"github.com/lshigami/intuity-sync/internal/jsonfield"
)

const (
	DefaultQuestionCreator = "teacher"
	QuestionSourceTeacher  = "teacher"
)

// Question is the canonical record for a published question as kept in the
// local slots. Caller-supplied fields outside the canonical set live in Extra
// and are flattened into the stored JSON next to the canonical ones.
type Question struct {
	ID          string
	Text        string
	CreatedAt   time.Time
	PublishedAt time.Time
	IsPublished bool
	CreatedBy   string
	Source      string
	Metadata    map[string]any
	Extra       map[string]any
}

var questionKeys = jsonfield.KeySet(
	"id", "text", "question_text", "created_at", "published_at",
	"is_published", "created_by", "source", "metadata",
)

// HasText reports whether the record is usable as a question.
func (q Question) HasText() bool {
	return q.Text != ""
}

func (q Question) MarshalJSON() ([]byte, error) {
	canonical := map[string]any{
		"id":            q.ID,
		"text":          q.Text,
		"question_text": q.Text,
		"is_published":  q.IsPublished,
	}
	if s := jsonfield.FormatTime(q.CreatedAt); s != "" {
		canonical["created_at"] = s
	}
	if s := jsonfield.FormatTime(q.PublishedAt); s != "" {
		canonical["published_at"] = s
	}
	if q.CreatedBy != "" {
		canonical["created_by"] = q.CreatedBy
	}
	if q.Source != "" {
		canonical["source"] = q.Source
	}
	if len(q.Metadata) > 0 {
		canonical["metadata"] = q.Metadata
	}
	return json.Marshal(jsonfield.Merge(q.Extra, canonical))
}

// UnmarshalJSON accepts both "text" and the older "question_text" spelling.
func (q *Question) UnmarshalJSON(data []byte) error {
	m, err := jsonfield.DecodeObject(data)
	if err != nil {
		return err
	}
	*q = Question{
		ID:          jsonfield.String(m, "id"),
		Text:        jsonfield.String(m, "text", "question_text"),
		CreatedAt:   jsonfield.Time(m, "created_at"),
		PublishedAt: jsonfield.Time(m, "published_at"),
		IsPublished: jsonfield.Bool(m, "is_published"),
		CreatedBy:   jsonfield.String(m, "created_by"),
		Source:      jsonfield.String(m, "source"),
		Metadata:    jsonfield.Map(m, "metadata"),
		Extra:       jsonfield.Extra(m, questionKeys),
	}
	return nil
}

package model

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf16"

	"github.com/lshigami/intuity-sync/internal/jsonfield"
)

const ResponseSourceWeb = "web"

// dedupPrefixLen is how much of the answer the legacy composite key looks at.
const dedupPrefixLen = 50

// Response is a student's answer as kept in the local response lists.
// Responses are append-only.
type Response struct {
	ID          string
	QuestionID  string
	StudentName string
	Answer      string
	WordCount   int
	Quality     string
	Score       *float64
	SubmittedAt time.Time
	Timestamp   string
	Source      string
	PhotoURL    string
	Metadata    map[string]any
	Extra       map[string]any
}

var responseKeys = jsonfield.KeySet(
	"id", "question_id", "questionId", "student_name", "studentName",
	"answer", "word_count", "wordCount", "quality", "score",
	"submitted_at", "submittedAt", "timestamp", "source", "photo_url", "metadata",
)

func (r Response) HasAnswer() bool {
	return r.Answer != ""
}

// CompositeKey is the content-derived key older pages used for dedup:
// student name, the first 50 characters of the answer and the submission time.
func (r Response) CompositeKey() string {
	return fmt.Sprintf("%s-%s-%s", r.StudentName, prefixUTF16(r.Answer, dedupPrefixLen), jsonfield.FormatTime(r.SubmittedAt))
}

// prefixUTF16 keeps the first n UTF-16 code units of s, the unit browser
// pages count in. A surrogate pair cut in half decodes to U+FFFD.
func prefixUTF16(s string, n int) string {
	units := utf16.Encode([]rune(s))
	if len(units) <= n {
		return s
	}
	return string(utf16.Decode(units[:n]))
}

func (r Response) MarshalJSON() ([]byte, error) {
	canonical := map[string]any{
		"id":           r.ID,
		"question_id":  r.QuestionID,
		"student_name": r.StudentName,
		"answer":       r.Answer,
		"word_count":   r.WordCount,
	}
	if r.Quality != "" {
		canonical["quality"] = r.Quality
	}
	if r.Score != nil {
		canonical["score"] = *r.Score
	}
	if s := jsonfield.FormatTime(r.SubmittedAt); s != "" {
		canonical["submitted_at"] = s
	}
	if r.Timestamp != "" {
		canonical["timestamp"] = r.Timestamp
	}
	if r.Source != "" {
		canonical["source"] = r.Source
	}
	if r.PhotoURL != "" {
		canonical["photo_url"] = r.PhotoURL
	}
	if len(r.Metadata) > 0 {
		canonical["metadata"] = r.Metadata
	}
	return json.Marshal(jsonfield.Merge(r.Extra, canonical))
}

// UnmarshalJSON also reads the camelCase spellings some pages used.
func (r *Response) UnmarshalJSON(data []byte) error {
	m, err := jsonfield.DecodeObject(data)
	if err != nil {
		return err
	}
	wordCount, _ := jsonfield.Int(m, "word_count", "wordCount")
	*r = Response{
		ID:          jsonfield.String(m, "id"),
		QuestionID:  jsonfield.String(m, "question_id", "questionId"),
		StudentName: jsonfield.String(m, "student_name", "studentName"),
		Answer:      jsonfield.String(m, "answer"),
		WordCount:   wordCount,
		Quality:     jsonfield.String(m, "quality"),
		Score:       jsonfield.Float(m, "score"),
		SubmittedAt: jsonfield.Time(m, "submitted_at", "submittedAt"),
		Timestamp:   jsonfield.String(m, "timestamp"),
		Source:      jsonfield.String(m, "source"),
		PhotoURL:    jsonfield.String(m, "photo_url"),
		Metadata:    jsonfield.Map(m, "metadata"),
		Extra:       jsonfield.Extra(m, responseKeys),
	}
	return nil
}

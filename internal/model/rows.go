package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionRow is the remote "questions" table.
type QuestionRow struct {
	ID          string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time      `json:"created_at"`
	PublishedAt time.Time      `gorm:"index" json:"published_at"`
	IsPublished bool           `gorm:"index;not null;default:false" json:"is_published"`
	CreatedBy   string         `json:"created_by"`
	Meta        datatypes.JSON `gorm:"column:metadata" json:"metadata"`
}

func (QuestionRow) TableName() string { return "questions" }

// ResponseRow is the remote "responses" table. Rows are insert-only and the
// backend assigns the primary key.
type ResponseRow struct {
	RowID       uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuestionID  string         `gorm:"index" json:"question_id"`
	StudentName string         `json:"student_name"`
	Answer      string         `gorm:"type:text;not null" json:"answer"`
	WordCount   int            `json:"word_count"`
	Quality     string         `json:"quality,omitempty"`
	Score       *float64       `json:"score,omitempty"`
	Source      string         `json:"source"`
	Meta        datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (ResponseRow) TableName() string { return "responses" }

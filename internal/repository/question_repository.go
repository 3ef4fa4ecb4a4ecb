package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/intuity-sync/internal/errorz"
	"github.com/lshigami/intuity-sync/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	// Probe runs a trivial query against the questions table.
	Probe(ctx context.Context) error
	Upsert(ctx context.Context, question *model.QuestionRow) (*model.QuestionRow, error)
	FindLatestPublished(ctx context.Context) (*model.QuestionRow, error)
	FindAll(ctx context.Context) ([]model.QuestionRow, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Probe(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.QuestionRow{}).Limit(1).Count(&count).Error; err != nil {
		return fmt.Errorf("probe questions table: %w", err)
	}
	return nil
}

// Upsert inserts the row or replaces every column of the row with the same id,
// then reads back what the backend stored.
func (r *questionRepository) Upsert(ctx context.Context, question *model.QuestionRow) (*model.QuestionRow, error) {
	db := r.db.WithContext(ctx)
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(question)
	if res.Error != nil {
		return nil, fmt.Errorf("upsert question %s: %w", question.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("upsert question %s: %w", question.ID, errorz.ErrRemoteRejected)
	}

	var stored model.QuestionRow
	if err := db.First(&stored, "id = ?", question.ID).Error; err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (r *questionRepository) FindLatestPublished(ctx context.Context) (*model.QuestionRow, error) {
	var rows []model.QuestionRow
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at desc").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find latest published question: %w", err)
	}
	if len(rows) == 0 {
		return nil, errorz.ErrNotFound
	}
	return &rows[0], nil
}

func (r *questionRepository) FindAll(ctx context.Context) ([]model.QuestionRow, error) {
	var rows []model.QuestionRow
	if err := r.db.WithContext(ctx).Order("published_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorz.ErrNotFound
	}
	return err
}

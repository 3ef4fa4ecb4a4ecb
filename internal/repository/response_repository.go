package repository

import (
	"context"
	"fmt"

	"github.com/lshigami/intuity-sync/internal/errorz"
	"github.com/lshigami/intuity-sync/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Create(ctx context.Context, response *model.ResponseRow) (*model.ResponseRow, error)
	FindAll(ctx context.Context) ([]model.ResponseRow, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// Create always inserts; replays of the same local response produce new rows.
func (r *responseRepository) Create(ctx context.Context, response *model.ResponseRow) (*model.ResponseRow, error) {
	res := r.db.WithContext(ctx).Create(response)
	if res.Error != nil {
		return nil, fmt.Errorf("insert response: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("insert response: %w", errorz.ErrRemoteRejected)
	}
	return response, nil
}

func (r *responseRepository) FindAll(ctx context.Context) ([]model.ResponseRow, error) {
	var rows []model.ResponseRow
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

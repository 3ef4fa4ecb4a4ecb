package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lshigami/intuity-sync/internal/errorz"
	"github.com/lshigami/intuity-sync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "remote.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.QuestionRow{}, &model.ResponseRow{}))
	return db
}

func TestQuestionRepository_ProbeEmptyTable(t *testing.T) {
	repo := NewQuestionRepository(openTestDB(t))
	assert.NoError(t, repo.Probe(context.Background()))
}

func TestQuestionRepository_ProbeMissingTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&model.QuestionRow{}))

	assert.Error(t, NewQuestionRepository(db).Probe(context.Background()))
}

func TestQuestionRepository_UpsertReplacesByID(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(openTestDB(t))
	now := time.Now().UTC()

	_, err := repo.Upsert(ctx, &model.QuestionRow{ID: "q_1", Text: "first", PublishedAt: now, IsPublished: true})
	require.NoError(t, err)

	stored, err := repo.Upsert(ctx, &model.QuestionRow{
		ID:          "q_1",
		Text:        "second",
		PublishedAt: now,
		IsPublished: true,
		Meta:        datatypes.JSON(`{"source":"teacher"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "second", stored.Text)
	assert.JSONEq(t, `{"source":"teacher"}`, string(stored.Meta))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestQuestionRepository_FindLatestPublished(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(openTestDB(t))

	_, err := repo.FindLatestPublished(ctx)
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := []model.QuestionRow{
		{ID: "q_old", Text: "old", PublishedAt: base, IsPublished: true},
		{ID: "q_new", Text: "new", PublishedAt: base.Add(time.Hour), IsPublished: true},
		{ID: "q_draft", Text: "draft", PublishedAt: base.Add(2 * time.Hour), IsPublished: false},
	}
	for i := range rows {
		_, err := repo.Upsert(ctx, &rows[i])
		require.NoError(t, err)
	}

	latest, err := repo.FindLatestPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, "q_new", latest.ID)
}

func TestResponseRepository_CreateAlwaysInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewResponseRepository(openTestDB(t))
	score := 4.5

	for i := 0; i < 2; i++ {
		row, err := repo.Create(ctx, &model.ResponseRow{
			QuestionID:  "q_1",
			StudentName: "Ana",
			Answer:      "four",
			WordCount:   1,
			Score:       &score,
			Source:      model.ResponseSourceWeb,
			Meta:        datatypes.JSON(`{}`),
		})
		require.NoError(t, err)
		assert.NotZero(t, row.RowID)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].RowID, all[1].RowID)
	require.NotNil(t, all[0].Score)
	assert.Equal(t, 4.5, *all[0].Score)
}

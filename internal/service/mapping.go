package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jinzhu/copier"
	"github.com/lshigami/intuity-sync/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// toQuestionRow reduces a question to the remote column set. The caller's
// original request travels in the metadata blob.
func toQuestionRow(q model.Question, original map[string]any) (*model.QuestionRow, error) {
	var row model.QuestionRow
	if err := copier.Copy(&row, &q); err != nil {
		return nil, fmt.Errorf("map question %s: %w", q.ID, err)
	}
	row.IsPublished = true

	meta, err := json.Marshal(map[string]any{
		"source":        model.QuestionSourceTeacher,
		"original_data": original,
	})
	if err != nil {
		return nil, fmt.Errorf("encode question metadata: %w", err)
	}
	row.Meta = datatypes.JSON(meta)
	return &row, nil
}

func fromQuestionRow(row *model.QuestionRow) model.Question {
	var q model.Question
	if err := copier.Copy(&q, row); err != nil {
		log.Warn().Err(err).Str("questionID", row.ID).Msg("Failed to copy QuestionRow to Question")
	}
	q.CreatedAt = q.CreatedAt.UTC()
	q.PublishedAt = q.PublishedAt.UTC()
	q.Metadata = decodeMeta(row.Meta)
	if src, ok := q.Metadata["source"].(string); ok {
		q.Source = src
	}
	return q
}

func toResponseRow(r model.Response) (*model.ResponseRow, error) {
	var row model.ResponseRow
	if err := copier.Copy(&row, &r); err != nil {
		return nil, fmt.Errorf("map response %s: %w", r.ID, err)
	}
	row.Source = model.ResponseSourceWeb

	meta, err := json.Marshal(r.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode response metadata: %w", err)
	}
	row.Meta = datatypes.JSON(meta)
	return &row, nil
}

// fromResponseRow uses the backend-assigned row id; the local id survives in
// metadata.original_data when the caller supplied one.
func fromResponseRow(row *model.ResponseRow) model.Response {
	var r model.Response
	if err := copier.Copy(&r, row); err != nil {
		log.Warn().Err(err).Uint("rowID", row.RowID).Msg("Failed to copy ResponseRow to Response")
	}
	r.ID = strconv.FormatUint(uint64(row.RowID), 10)
	r.SubmittedAt = row.CreatedAt.UTC()
	r.Metadata = decodeMeta(row.Meta)
	return r
}

func decodeMeta(raw datatypes.JSON) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed remote metadata")
		return nil
	}
	return m
}

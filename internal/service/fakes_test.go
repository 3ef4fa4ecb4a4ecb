package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/lshigami/intuity-sync/internal/errorz"
	"github.com/lshigami/intuity-sync/internal/localstore"
	"github.com/lshigami/intuity-sync/internal/model"
)

var errBackendDown = errors.New("backend down")

type fakeQuestionRepo struct {
	mu       sync.Mutex
	rows     map[string]model.QuestionRow
	probeErr error
	writeErr error
	readErr  error
	upserts  int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{rows: make(map[string]model.QuestionRow)}
}

func (f *fakeQuestionRepo) Probe(context.Context) error { return f.probeErr }

func (f *fakeQuestionRepo) Upsert(_ context.Context, q *model.QuestionRow) (*model.QuestionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.upserts++
	stored := *q
	f.rows[q.ID] = stored
	return &stored, nil
}

func (f *fakeQuestionRepo) FindLatestPublished(context.Context) (*model.QuestionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	var latest *model.QuestionRow
	for _, row := range f.rows {
		row := row
		if !row.IsPublished {
			continue
		}
		if latest == nil || row.PublishedAt.After(latest.PublishedAt) {
			latest = &row
		}
	}
	if latest == nil {
		return nil, errorz.ErrNotFound
	}
	return latest, nil
}

func (f *fakeQuestionRepo) FindAll(context.Context) ([]model.QuestionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.QuestionRow, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeResponseRepo struct {
	mu       sync.Mutex
	rows     []model.ResponseRow
	writeErr error
	// failAnswers rejects inserts whose answer is listed.
	failAnswers map[string]bool
}

func (f *fakeResponseRepo) Create(_ context.Context, r *model.ResponseRow) (*model.ResponseRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil || f.failAnswers[r.Answer] {
		return nil, errBackendDown
	}
	stored := *r
	stored.RowID = uint(len(f.rows) + 1)
	stored.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.rows = append(f.rows, stored)
	return &stored, nil
}

func (f *fakeResponseRepo) FindAll(context.Context) ([]model.ResponseRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ResponseRow(nil), f.rows...), nil
}

func (f *fakeResponseRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// flakyStore fails writes or reads for selected keys.
type flakyStore struct {
	*localstore.Memory
	failWrites map[string]bool
	failReads  map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		Memory:     localstore.NewMemory(),
		failWrites: make(map[string]bool),
		failReads:  make(map[string]bool),
	}
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failReads[key] {
		return "", false, errors.New("read failed")
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if f.failWrites[key] {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(ctx, key, value)
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

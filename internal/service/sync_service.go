package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/intuity-sync/internal/connectivity"
	"github.com/lshigami/intuity-sync/internal/dto"
	"github.com/lshigami/intuity-sync/internal/errorz"
	"github.com/lshigami/intuity-sync/internal/localstore"
	"github.com/lshigami/intuity-sync/internal/model"
	"github.com/lshigami/intuity-sync/internal/repository"
	"github.com/rs/zerolog/log"
)

// SyncService keeps questions and responses visible to teacher and student
// pages whether or not the remote backend can be reached. Every write lands
// in all local slots first and is then mirrored remotely on a best-effort
// basis. None of its operations return an error.
type SyncService interface {
	connectivity.Listener

	// Init probes the remote backend once. The result is never re-verified.
	Init(ctx context.Context)
	Status() dto.StatusResponse

	PublishQuestion(ctx context.Context, req dto.PublishQuestionRequest) dto.PublishQuestionResult
	GetCurrentQuestion(ctx context.Context) dto.CurrentQuestionResult
	SubmitResponse(ctx context.Context, req dto.SubmitResponseRequest) dto.SubmitResponseResult
	GetAllQuestions(ctx context.Context) []model.Question
	GetAllResponses(ctx context.Context) []model.Response
	SyncOfflineData(ctx context.Context) dto.SyncReport

	RemoteQuestions(ctx context.Context) ([]model.Question, error)
	RemoteResponses(ctx context.Context) ([]model.Response, error)
}

type Option func(*syncService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *syncService) { s.now = now }
}

type syncService struct {
	store     localstore.Store
	questions repository.QuestionRepository
	responses repository.ResponseRepository
	now       func() time.Time

	// mu serializes the local read-modify-write sequences. It is never held
	// across a remote call.
	mu sync.Mutex

	networkUp       atomic.Bool
	remoteConnected atomic.Bool
}

// NewSyncService wires the service. questions and responses may both be nil,
// in which case only local storage is used.
func NewSyncService(
	store localstore.Store,
	questions repository.QuestionRepository,
	responses repository.ResponseRepository,
	opts ...Option,
) SyncService {
	s := &syncService{
		store:     store,
		questions: questions,
		responses: responses,
		now:       time.Now,
	}
	s.networkUp.Store(true)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *syncService) remoteConfigured() bool {
	return s.questions != nil && s.responses != nil
}

func (s *syncService) reachable() bool {
	return s.networkUp.Load() && s.remoteConnected.Load() && s.remoteConfigured()
}

func (s *syncService) Init(ctx context.Context) {
	if !s.remoteConfigured() {
		log.Warn().Msg("DataSync: remote backend not available, using local storage only")
		return
	}
	if err := s.questions.Probe(ctx); err != nil {
		log.Warn().Err(err).Msg("DataSync: remote connection failed, using local storage")
		s.remoteConnected.Store(false)
		return
	}
	s.remoteConnected.Store(true)
	log.Info().Msg("DataSync: connected to remote backend")
}

func (s *syncService) Status() dto.StatusResponse {
	return dto.StatusResponse{
		NetworkReachable: s.networkUp.Load(),
		RemoteConnected:  s.remoteConnected.Load(),
		RemoteConfigured: s.remoteConfigured(),
		Reachable:        s.reachable(),
	}
}

func (s *syncService) BecameReachable(ctx context.Context) {
	s.networkUp.Store(true)
	log.Info().Msg("DataSync: back online")
	s.SyncOfflineData(ctx)
}

func (s *syncService) BecameUnreachable(context.Context) {
	s.networkUp.Store(false)
	log.Info().Msg("DataSync: offline mode")
}

// timestamps are kept at millisecond precision, the resolution the stored
// JSON carries.
func (s *syncService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *syncService) PublishQuestion(ctx context.Context, req dto.PublishQuestionRequest) dto.PublishQuestionResult {
	now := s.timestamp()
	question := model.Question{
		ID:          req.ID,
		Text:        req.Text,
		CreatedAt:   now,
		PublishedAt: now,
		IsPublished: true,
		CreatedBy:   req.CreatedBy,
		Source:      model.QuestionSourceTeacher,
		Extra:       req.Extra,
	}
	if question.ID == "" {
		question.ID = fmt.Sprintf("q_%d", now.UnixMilli())
	}
	if req.CreatedAt != nil {
		question.CreatedAt = req.CreatedAt.UTC().Truncate(time.Millisecond)
	}
	if req.PublishedAt != nil {
		question.PublishedAt = req.PublishedAt.UTC().Truncate(time.Millisecond)
	}
	if question.CreatedBy == "" {
		question.CreatedBy = model.DefaultQuestionCreator
	}
	log.Info().Str("questionID", question.ID).Msg("DataSync: publishing question")

	s.mu.Lock()
	s.writeSlot(ctx, SlotCurrentQuestion, question)
	s.writeSlot(ctx, SlotPublishedQuestion, question)
	for _, key := range LegacyQuestionSlots {
		s.writeSlot(ctx, key, question)
	}
	s.writeSlot(ctx, SlotQuestions, upsertQuestion(s.loadQuestions(ctx), question))
	s.mu.Unlock()

	if s.reachable() {
		stored, err := s.pushQuestion(ctx, question, req.OriginalData())
		if err == nil {
			log.Info().Str("questionID", stored.ID).Msg("DataSync: question synced to remote")
			return dto.PublishQuestionResult{Success: true, Synced: true, Question: stored}
		}
		log.Warn().Err(err).Str("questionID", question.ID).Msg("DataSync: remote sync failed, using local storage")
	}

	log.Info().Str("questionID", question.ID).Msg("DataSync: question published to local storage")
	return dto.PublishQuestionResult{Success: true, Synced: false, Question: question}
}

func (s *syncService) pushQuestion(ctx context.Context, q model.Question, original map[string]any) (model.Question, error) {
	row, err := toQuestionRow(q, original)
	if err != nil {
		return model.Question{}, err
	}
	stored, err := s.questions.Upsert(ctx, row)
	if err != nil {
		return model.Question{}, err
	}
	return fromQuestionRow(stored), nil
}

func upsertQuestion(list []model.Question, q model.Question) []model.Question {
	for i := range list {
		if list[i].ID == q.ID {
			list[i] = q
			return list
		}
	}
	return append(list, q)
}

func (s *syncService) GetCurrentQuestion(ctx context.Context) dto.CurrentQuestionResult {
	if s.reachable() {
		row, err := s.questions.FindLatestPublished(ctx)
		switch {
		case err == nil:
			question := fromQuestionRow(row)
			s.mu.Lock()
			s.writeSlot(ctx, SlotCurrentQuestion, question)
			s.mu.Unlock()
			log.Debug().Str("questionID", question.ID).Msg("DataSync: got question from remote")
			return found(question)
		case errors.Is(err, errorz.ErrNotFound):
			log.Debug().Msg("DataSync: remote has no published question, trying local storage")
		default:
			log.Warn().Err(err).Msg("DataSync: remote fetch failed, trying local storage")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{SlotCurrentQuestion, SlotPublishedQuestion} {
		raw, ok := s.readSlot(ctx, key)
		if !ok {
			continue
		}
		var q model.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			log.Warn().Err(err).Str("slot", key).Msg("Error parsing stored question")
			continue
		}
		if q.HasText() {
			log.Debug().Str("slot", key).Msg("DataSync: got question from local storage")
			return found(q)
		}
	}

	for _, key := range LegacyQuestionSlots {
		items := s.readRecords(ctx, key)
		if len(items) == 0 {
			continue
		}
		var q model.Question
		if err := json.Unmarshal(items[0], &q); err != nil {
			continue
		}
		if q.HasText() {
			log.Debug().Str("slot", key).Msg("DataSync: got question from legacy slot")
			return found(q)
		}
	}

	log.Debug().Msg("DataSync: no question found")
	return dto.CurrentQuestionResult{Found: false}
}

func found(q model.Question) dto.CurrentQuestionResult {
	return dto.CurrentQuestionResult{Found: true, Question: &q}
}

func (s *syncService) SubmitResponse(ctx context.Context, req dto.SubmitResponseRequest) dto.SubmitResponseResult {
	now := s.timestamp()
	response := model.Response{
		ID:          req.ID,
		QuestionID:  req.QuestionID,
		StudentName: req.StudentName,
		Answer:      req.Answer,
		Quality:     req.Quality,
		Score:       req.Score,
		SubmittedAt: now,
		Timestamp:   req.Timestamp,
		Source:      model.ResponseSourceWeb,
		PhotoURL:    req.PhotoURL,
		Metadata:    map[string]any{"original_data": req.OriginalData()},
		Extra:       req.Extra,
	}
	if response.ID == "" {
		response.ID = "r_" + uuid.NewString()
	}
	if req.SubmittedAt != nil {
		response.SubmittedAt = req.SubmittedAt.UTC().Truncate(time.Millisecond)
	}
	if req.WordCount != nil {
		response.WordCount = *req.WordCount
	} else {
		response.WordCount = len(strings.Fields(req.Answer))
	}
	if response.Timestamp == "" {
		response.Timestamp = now.Local().Format(time.DateTime)
	}
	if req.QuestionText != "" {
		response.Metadata["question_text"] = req.QuestionText
	}
	log.Info().Str("responseID", response.ID).Str("questionID", response.QuestionID).Msg("DataSync: submitting response")

	s.mu.Lock()
	s.appendToList(ctx, SlotResponses, response)
	for _, key := range LegacyResponseSlots {
		s.appendToList(ctx, key, response)
	}
	s.mu.Unlock()

	if s.reachable() {
		stored, err := s.pushResponse(ctx, response)
		if err == nil {
			log.Info().Str("responseID", response.ID).Msg("DataSync: response synced to remote")
			return dto.SubmitResponseResult{Success: true, Synced: true, Response: stored}
		}
		log.Warn().Err(err).Str("responseID", response.ID).Msg("DataSync: remote sync failed, saved locally")
	}

	log.Info().Str("responseID", response.ID).Msg("DataSync: response saved to local storage")
	return dto.SubmitResponseResult{Success: true, Synced: false, Response: response}
}

func (s *syncService) pushResponse(ctx context.Context, r model.Response) (model.Response, error) {
	row, err := toResponseRow(r)
	if err != nil {
		return model.Response{}, err
	}
	stored, err := s.responses.Create(ctx, row)
	if err != nil {
		return model.Response{}, err
	}
	return fromResponseRow(stored), nil
}

func (s *syncService) GetAllQuestions(ctx context.Context) []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadQuestions(ctx)
}

// loadQuestions merges the primary list with the legacy slots. Within the
// primary list a later entry replaces an earlier one with the same id; a
// legacy entry is only added when its id has not been seen. Callers hold mu.
func (s *syncService) loadQuestions(ctx context.Context) []model.Question {
	var out []model.Question
	index := make(map[string]int)

	for _, item := range s.readRecords(ctx, SlotQuestions) {
		var q model.Question
		if err := json.Unmarshal(item, &q); err != nil || !q.HasText() {
			continue
		}
		if i, ok := index[q.ID]; ok {
			out[i] = q
			continue
		}
		index[q.ID] = len(out)
		out = append(out, q)
	}

	for _, key := range LegacyQuestionSlots {
		for _, item := range s.readRecords(ctx, key) {
			var q model.Question
			if err := json.Unmarshal(item, &q); err != nil || !q.HasText() {
				continue
			}
			if _, ok := index[q.ID]; ok {
				continue
			}
			index[q.ID] = len(out)
			out = append(out, q)
		}
	}
	return out
}

// GetAllResponses merges the primary list with the legacy lists, keeping the
// first occurrence of each response. A record is a repeat when either its id
// or its composite key was already seen, since legacy pages copy records
// without the id.
func (s *syncService) GetAllResponses(ctx context.Context) []model.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Response
	seen := newResponseSet()

	for _, key := range append([]string{SlotResponses}, LegacyResponseSlots...) {
		for _, item := range s.readRecords(ctx, key) {
			var r model.Response
			if err := json.Unmarshal(item, &r); err != nil || !r.HasAnswer() {
				continue
			}
			if seen.has(r) {
				continue
			}
			seen.add(r)
			out = append(out, r)
		}
	}
	return out
}

type responseSet struct {
	ids        map[string]struct{}
	composites map[string]struct{}
}

func newResponseSet() responseSet {
	return responseSet{ids: make(map[string]struct{}), composites: make(map[string]struct{})}
}

func (s responseSet) has(r model.Response) bool {
	if _, ok := s.ids[r.ID]; ok {
		return true
	}
	_, ok := s.composites[r.CompositeKey()]
	return ok
}

func (s responseSet) add(r model.Response) {
	if r.ID != "" {
		s.ids[r.ID] = struct{}{}
	}
	s.composites[r.CompositeKey()] = struct{}{}
}

// SyncOfflineData re-sends every local response to the remote backend. No
// record of earlier successful sends is kept, so each call can add duplicate
// remote rows.
func (s *syncService) SyncOfflineData(ctx context.Context) dto.SyncReport {
	if !s.reachable() {
		return dto.SyncReport{Skipped: true}
	}
	log.Info().Msg("DataSync: syncing offline data...")

	var report dto.SyncReport
	for _, r := range s.GetAllResponses(ctx) {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("DataSync: offline sync interrupted")
			break
		}
		report.Attempted++
		if _, err := s.pushResponse(ctx, r); err != nil {
			report.Failed++
			log.Warn().Err(err).Str("responseID", r.ID).Msg("Failed to sync response")
			continue
		}
		report.Synced++
	}

	log.Info().
		Int("attempted", report.Attempted).
		Int("synced", report.Synced).
		Int("failed", report.Failed).
		Msg("DataSync: sync complete")
	return report
}

func (s *syncService) RemoteQuestions(ctx context.Context) ([]model.Question, error) {
	if !s.remoteConfigured() {
		return nil, errorz.ErrRemoteNotConfigured
	}
	rows, err := s.questions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote questions: %w", err)
	}
	out := make([]model.Question, 0, len(rows))
	for i := range rows {
		out = append(out, fromQuestionRow(&rows[i]))
	}
	return out, nil
}

func (s *syncService) RemoteResponses(ctx context.Context) ([]model.Response, error) {
	if !s.remoteConfigured() {
		return nil, errorz.ErrRemoteNotConfigured
	}
	rows, err := s.responses.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote responses: %w", err)
	}
	out := make([]model.Response, 0, len(rows))
	for i := range rows {
		out = append(out, fromResponseRow(&rows[i]))
	}
	return out, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Slot names are shared with pages already deployed and must not change.
const (
	SlotQuestions         = "intuity_questions"
	SlotResponses         = "intuity_responses"
	SlotCurrentQuestion   = "intuity_current_question"
	SlotPublishedQuestion = "intuity_published_question"
)

var (
	LegacyQuestionSlots = []string{"alm_questions", "current_question", "question_history"}
	LegacyResponseSlots = []string{"alm_student_responses", "student_responses"}
)

// readSlot returns the raw slot value. Read errors, missing keys and the
// literal values older pages used for "nothing" all count as empty.
func (s *syncService) readSlot(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("slot", key).Msg("Could not read slot")
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" || raw == "null" || raw == "[]" {
		return "", false
	}
	return raw, true
}

// writeSlot stores v as JSON. A failure is logged and reported to the caller
// but never aborts the surrounding fan-out.
func (s *syncService) writeSlot(ctx context.Context, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("slot", key).Msg("Could not encode slot value")
		return false
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		log.Warn().Err(err).Str("slot", key).Msg("Could not write slot")
		return false
	}
	return true
}

// splitRecords parses a slot holding either a single JSON object or an array
// of them. Elements are returned undecoded so one bad element cannot spoil
// the rest.
func splitRecords(raw string) ([]json.RawMessage, error) {
	data := []byte(raw)
	switch {
	case bytes.HasPrefix(data, []byte("[")):
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	case bytes.HasPrefix(data, []byte("{")):
		if !json.Valid(data) {
			return nil, fmt.Errorf("malformed JSON object")
		}
		return []json.RawMessage{json.RawMessage(data)}, nil
	default:
		return nil, fmt.Errorf("slot holds neither an object nor an array")
	}
}

// readRecords loads and splits a slot, treating any failure as empty.
func (s *syncService) readRecords(ctx context.Context, key string) []json.RawMessage {
	raw, ok := s.readSlot(ctx, key)
	if !ok {
		return nil
	}
	items, err := splitRecords(raw)
	if err != nil {
		log.Warn().Err(err).Str("slot", key).Msg("Could not parse slot")
		return nil
	}
	return items
}

// appendToList pushes record onto the array stored under key. Existing
// elements are carried over without being re-decoded; a slot that is not an array is
// replaced.
func (s *syncService) appendToList(ctx context.Context, key string, record any) bool {
	encoded, err := json.Marshal(record)
	if err != nil {
		log.Warn().Err(err).Str("slot", key).Msg("Could not encode record")
		return false
	}

	var existing []json.RawMessage
	if raw, ok := s.readSlot(ctx, key); ok {
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			log.Warn().Err(err).Str("slot", key).Msg("Slot is not a list, starting a new one")
			existing = nil
		}
	}
	return s.writeSlot(ctx, key, append(existing, encoded))
}

// Package jsonfield reads loosely-typed JSON objects written by several
// generations of client pages.
package jsonfield

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accessors take a list of keys; the first present key wins and values of
// the wrong type degrade to zero values.

func String(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case json.Number:
			return t.String()
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

func Int(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		switch t := m[k].(type) {
		case json.Number:
			if n, err := t.Int64(); err == nil {
				return int(n), true
			}
			if f, err := t.Float64(); err == nil {
				return int(f), true
			}
		case float64:
			return int(t), true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func Float(m map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		switch t := m[k].(type) {
		case json.Number:
			if f, err := t.Float64(); err == nil {
				return &f
			}
		case float64:
			return &t
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func Bool(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch t := m[k].(type) {
		case bool:
			return t
		case string:
			b, _ := strconv.ParseBool(t)
			return b
		}
	}
	return false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
}

// Time parses ISO-8601 timestamps. Unparseable values are treated as absent.
func Time(m map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		s, ok := m[k].(string)
		if !ok || s == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

func Map(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

// Extra returns every key of m not listed in known.
func Extra(m map[string]any, known map[string]struct{}) map[string]any {
	var out map[string]any
	for k, v := range m {
		if _, ok := known[k]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

func KeySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func DecodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	return m, nil
}

// FormatTime renders t the way browsers emit Date.toISOString.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Merge writes extra first and canonical on top, so an extra key can
// never shadow a canonical one.
func Merge(extra, canonical map[string]any) map[string]any {
	out := make(map[string]any, len(extra)+len(canonical))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range canonical {
		out[k] = v
	}
	return out
}

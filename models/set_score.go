package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SetScore is the point score of a single set, from team A and team B.
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// UnmarshalJSON never fails: missing keys, nulls and non-numeric values become 0.
func (s *SetScore) UnmarshalJSON(data []byte) error {
	*s = SetScore{}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	s.A = lenientInt(raw["a"])
	s.B = lenientInt(raw["b"])
	return nil
}

func lenientInt(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
		return 0
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			return i
		}
	}
	return 0
}

// SetScores is stored as a JSONB array: [{"a": 25, "b": 20}, ...].
type SetScores []SetScore

// UnmarshalJSON tolerates a non-array payload as an empty list.
func (s *SetScores) UnmarshalJSON(data []byte) error {
	var items []SetScore
	if err := json.Unmarshal(data, &items); err != nil {
		*s = nil
		return nil
	}
	*s = items
	return nil
}

func (s SetScores) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]SetScore(s))
	if err != nil {
		return nil, fmt.Errorf("marshal set scores: %w", err)
	}
	// lib/pq отправляет []byte как bytea, поэтому строкой
	return string(b), nil
}

func (s *SetScores) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported set_scores column type %T", src)
	}
	return s.UnmarshalJSON(data)
}

package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// AnswerValue holds a submitted answer to a conversation question: either a
// single choice (e.g. "ardoise") or a list of choices for multiple-choice
// questions (e.g. ["cheminee","lucarne"]). Its JSON form is the bare string
// or the bare array, matching what clients send.
type AnswerValue struct {
	Choice  string
	Choices []string
	Multi   bool
}

// Answer wraps a single-choice value.
func Answer(v string) AnswerValue { return AnswerValue{Choice: v} }

// AnswerList wraps a multiple-choice value.
func AnswerList(vs ...string) AnswerValue { return AnswerValue{Choices: vs, Multi: true} }

// IsZero reports whether no answer was provided. An explicitly empty list is
// a valid answer (e.g. "no roof elements") and is not zero.
func (v AnswerValue) IsZero() bool { return !v.Multi && v.Choice == "" }

// Values returns the answer as a slice regardless of shape.
func (v AnswerValue) Values() []string {
	if v.Multi {
		return v.Choices
	}
	if v.Choice == "" {
		return nil
	}
	return []string{v.Choice}
}

// MarshalJSON encodes the answer as a bare string or array.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.Multi {
		if v.Choices == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Choices)
	}
	return json.Marshal(v.Choice)
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (v *AnswerValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = AnswerValue{Choice: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*v = AnswerValue{Choices: list, Multi: true}
		return nil
	}
	return fmt.Errorf("answer must be a string or an array of strings, got %s", string(b))
}

// AnswerMap maps question ids to submitted answers. It persists as a JSON
// object in a text column, keeping the stored form inspectable with plain
// SQL while staying structured in Go.
type AnswerMap map[string]AnswerValue

// Value implements driver.Valuer: serialize to a JSON text blob. A nil map
// stores as an empty object so reads never fail on NULL handling.
func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner: deserialize from a JSON text blob.
func (m *AnswerMap) Scan(src any) error {
	if src == nil {
		*m = AnswerMap{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return errors.New("answers column must be TEXT")
	}
	if len(b) == 0 {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// Package jsoncol provides jsonb column types that work the same way in
// struct writes and map based updates.
package jsoncol

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// List is a JSON array column. A nil list is stored as [].
type List[T any] []T

func (l List[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *List[T]) Scan(src any) error {
	raw, err := bytesOf(src)
	if err != nil {
		return err
	}
	out := List[T]{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*l = out
	return nil
}

// Map is a JSON object column. A nil map is stored as {}.
type Map map[string]any

func (m Map) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Map) Scan(src any) error {
	raw, err := bytesOf(src)
	if err != nil {
		return err
	}
	out := Map{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*m = out
	return nil
}

func bytesOf(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("jsoncol: unsupported scan type %T", src)
	}
}

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexID accepts an id written as a JSON number or a numeric string.
type flexID struct {
	value *int
}

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var text string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &text); err != nil {
			return nil
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			// Not a number or a string: treat as absent.
			return nil
		}
		text = n.String()
	}
	// Fractions, exponents and values outside int range are absent.
	if v, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		f.value = &v
	}
	return nil
}

type topLevelIDShape struct {
	UserIDCamel flexID `json:"userId"`
	UserIDSnake flexID `json:"user_id"`
	ID          flexID `json:"id"`
}

func (s topLevelIDShape) id() *int {
	for _, f := range []flexID{s.UserIDCamel, s.UserIDSnake, s.ID} {
		if f.value != nil {
			return f.value
		}
	}
	return nil
}

type nestedUserShape struct {
	User *struct {
		ID flexID `json:"id"`
	} `json:"user"`
}

// DecodeUserID extracts the user id from an auth response body. The
// top-level shape is tried first, then the nested "user" object. A body
// that is not a JSON object yields ErrDecoding; an object matching neither
// shape yields (nil, nil).
func DecodeUserID(body []byte) (*int, error) {
	var top topLevelIDShape
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, decodingError("auth response", err)
	}
	if id := top.id(); id != nil {
		return id, nil
	}

	var nested nestedUserShape
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, decodingError("auth response", err)
	}
	if nested.User != nil && nested.User.ID.value != nil {
		return nested.User.ID.value, nil
	}
	return nil, nil
}

// decodeList accepts either a bare array or an object wrapping it under key.
func decodeList[T any](body []byte, key string) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, decodingError(key, err)
	}
	raw, ok := wrapped[key]
	if !ok {
		return nil, decodingError(key, fmt.Errorf("missing key %q", key))
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, decodingError(key, err)
	}
	return items, nil
}

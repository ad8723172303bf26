package models

import (
	"strings"

	json "github.com/goccy/go-json"
)

// JSONText is a JSON document stored as TEXT. Rows written by older
// front-end builds contain garbage like "undefined" or "[object
// Object]"; those, empty strings and anything that does not parse all
// serialize as JSON null instead of failing the request.
type JSONText string

func (j JSONText) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(j))
	switch s {
	case "", "null", "undefined", "[object Object]":
		return []byte("null"), nil
	}
	if !json.Valid([]byte(s)) {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

// UnmarshalJSON keeps the raw document as-is so arbitrary client
// payloads round-trip to storage without re-encoding.
func (j *JSONText) UnmarshalJSON(data []byte) error {
	*j = JSONText(data)
	return nil
}

// EncodeJSONText serializes an arbitrary value for storage. A nil
// value encodes as an empty document.
func EncodeJSONText(v any) JSONText {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return JSONText(b)
}

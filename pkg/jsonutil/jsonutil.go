// Package jsonutil wraps github.com/go-json-experiment/json so the rest of the
// codebase encodes reports, API bodies and exports through one place.
//
// Usage:
//
//	var report model.ScanReport
//	err := jsonutil.Unmarshal(data, &report)
//
//	out, err := jsonutil.MarshalIndent(report, "", "  ")
package jsonutil

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal parses the JSON-encoded data and stores the result in v.
// Unknown object members are ignored so newer service versions stay readable.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// UnmarshalRead decodes a single JSON value from r into v.
func UnmarshalRead(r io.Reader, v any) error {
	return json.UnmarshalRead(r, v)
}

// Marshal returns the compact JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the indented JSON encoding of v.
// prefix is accepted for encoding/json signature compatibility and ignored.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// MarshalWrite writes the compact JSON encoding of v to w.
func MarshalWrite(w io.Writer, v any) error {
	return json.MarshalWrite(w, v)
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return jsontext.Value(data).IsValid()
}

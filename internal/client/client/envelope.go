package client

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the wire wrapper of every backend response.
type Envelope[T any] struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    T                   `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// OK reports whether the server declared the call successful.
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// FailureMessage picks the most specific human-readable reason: the
// envelope message, else the first field error (fields in sorted order).
func (e *Envelope[T]) FailureMessage() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return firstFieldError(e.Errors)
}

func firstFieldError(errs map[string][]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if len(errs[f]) > 0 {
			return errs[f][0]
		}
	}
	return ""
}

// decode converts a raw envelope into a typed one. Absent or null data
// leaves Data at its zero value.
func decode[T any](raw *Envelope[json.RawMessage]) (*Envelope[T], error) {
	out := &Envelope[T]{Status: raw.Status, Message: raw.Message, Errors: raw.Errors}
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw.Data, &out.Data); err != nil {
		return nil, &MalformedResponseError{Err: fmt.Errorf("data: %w", err)}
	}
	return out, nil
}

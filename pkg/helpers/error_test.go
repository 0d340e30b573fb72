package helpers

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	type want struct {
		title   string
		details any
	}
	tts := []struct {
		name string
		have *Error
		want want
	}{
		{
			name: "TestError",
			have: NewError("TEST_ERROR"),
			want: want{
				title:   "TEST_ERROR",
				details: nil,
			},
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.title, tt.have.Title)
			assert.Equal(t, tt.want.details, tt.have.Err)
		})
	}
}

func TestErrorString(t *testing.T) {
	tts := []struct {
		name string
		have *Error
		want string
	}{
		{
			name: "TestError",
			have: NewError("TEST_ERROR"),
			want: "Error: [TEST_ERROR]",
		},
		{
			name: "TestError with details",
			have: NewErrorDetails("TEST_ERROR", "details"),
			want: "Error: [TEST_ERROR] details",
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.have.Error())
		})
	}
}

func TestNewErrorFromError(t *testing.T) {
	tts := []struct {
		name string
		have error
		want *Error
	}{
		{
			name: "json.UnmarshalTypeError",
			have: &json.UnmarshalTypeError{
				Value:  "bool",
				Type:   reflect.TypeOf(true),
				Offset: 0,
				Struct: "",
				Field:  "1",
			},
			want: &Error{
				Title: ErrClientInput.Title,
				Err: []map[string]any{
					{
						"actual":   "bool",
						"expected": "bool",
						"field":    "1",
					},
				},
			},
		},
		{
			name: "json.SyntaxError",
			have: &json.SyntaxError{
				Offset: 1,
			},
			want: &Error{
				Title: ErrClientInput.Title,
				Err:   map[string]any{"position": int64(1), "error": ""},
			},
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			got := NewErrorFromError(tt.have)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusCode(t *testing.T) {
	tts := []struct {
		name string
		have error
		want int
	}{
		{name: "client input", have: ErrClientInput, want: 400},
		{name: "crypto", have: ErrCrypto, want: 400},
		{name: "not found", have: ErrNotFound, want: 404},
		{name: "backend", have: ErrBackend, want: 500},
		{name: "internal", have: ErrInternal, want: 500},
		{name: "nil", have: nil, want: 200},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.have))
		})
	}
}

package httphelpers

import (
	"net/http"
	"testing"

	"acs/pkg/helpers"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tts := []struct {
		name     string
		err      error
		expected int
	}{
		{"client input", helpers.ErrClientInput, http.StatusBadRequest},
		{"crypto", helpers.ErrCrypto, http.StatusBadRequest},
		{"not found", helpers.ErrNotFound, http.StatusNotFound},
		{"backend", helpers.ErrBackend, http.StatusInternalServerError},
		{"internal", helpers.ErrInternal, http.StatusInternalServerError},
		{"nil", nil, http.StatusOK},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

package helpers

import (
	"testing"

	"acs/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestValidationRateLimit(t *testing.T) {
	tts := []struct {
		name    string
		have    model.RateLimit
		wantErr bool
	}{
		{
			name:    "empty",
			have:    model.RateLimit{},
			wantErr: true,
		},
		{
			name:    "ok",
			have:    model.RateLimit{PerSecond: 10},
			wantErr: false,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSimple(tt.have)
			if tt.wantErr {
				assert.Error(t, got)
				return
			}
			assert.NoError(t, got)
		})
	}
}

func TestValidationTLS(t *testing.T) {
	tts := []struct {
		name    string
		have    model.TLS
		wantErr bool
	}{
		{
			name:    "disabled, no files required",
			have:    model.TLS{Enabled: false},
			wantErr: false,
		},
		{
			name:    "enabled, missing files",
			have:    model.TLS{Enabled: true},
			wantErr: true,
		},
		{
			name: "enabled, files present",
			have: model.TLS{
				Enabled:      true,
				CertFilePath: "/tmp/cert.pem",
				KeyFilePath:  "/tmp/key.pem",
			},
			wantErr: false,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSimple(tt.have)
			if tt.wantErr {
				assert.Error(t, got)
				return
			}
			assert.NoError(t, got)
		})
	}
}

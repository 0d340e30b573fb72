package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"acs/pkg/model"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

var mockConfig = []byte(`
common:
  production: false
  log:
    level: debug
  key_value:
    addr: localhost:6379
    key_prefix: acs
    ttl_seconds: 600
    pool_size: 10
  rate_limit:
    per_second: 50
  server_base: https://acs.example.test
acs:
  api_server:
    addr: :8080
  identity:
    cert_file_path: /tmp/acs_cert.pem
    key_file_path: /tmp/acs_key.pem
`)

func TestNew(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.yaml")
	assert.NoError(t, os.WriteFile(path, mockConfig, 0600))
	t.Setenv("APP_CONFIG_YAML", path)

	want := &model.Cfg{}
	assert.NoError(t, yaml.Unmarshal(mockConfig, want))
	want.ACS.Identity.RefNumber1 = "issuer1"
	want.ACS.Identity.RefNumber2 = "issuer2"
	want.Common.Tracing.Timeout = 10

	cfg, err := New(t.Context())
	assert.NoError(t, err)
	assert.Equal(t, want, cfg)
}

func TestNewMissingFile(t *testing.T) {
	t.Setenv("APP_CONFIG_YAML", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := New(t.Context())
	assert.Error(t, err)
}

// Package model holds configuration and shared data types for the ACS.
package model

// APIServer holds the api server configuration
type APIServer struct {
	Addr string `yaml:"addr" validate:"required"`
	TLS  TLS    `yaml:"tls" validate:"omitempty"`
}

// TLS holds the tls configuration
type TLS struct {
	Enabled      bool   `yaml:"enabled"`
	CertFilePath string `yaml:"cert_file_path" validate:"required_if=Enabled true"`
	KeyFilePath  string `yaml:"key_file_path" validate:"required_if=Enabled true"`
}

// KeyValue holds the transaction store backend configuration
type KeyValue struct {
	Addr       string `yaml:"addr" validate:"required"`
	DB         int    `yaml:"db"`
	Password   string `yaml:"password"`
	KeyPrefix  string `yaml:"key_prefix" validate:"required"`
	TTLSeconds int    `yaml:"ttl_seconds" validate:"required"`
	PoolSize   int    `yaml:"pool_size" validate:"required"`
}

// Log holds the log configuration
type Log struct {
	Level      string `yaml:"level"`
	FolderPath string `yaml:"folder_path"`
}

// OTEL holds the opentelemetry configuration
type OTEL struct {
	Addr    string `yaml:"addr"`
	Timeout int64  `yaml:"timeout" default:"10"`
}

// RateLimit holds the process-wide rate limiter configuration
type RateLimit struct {
	PerSecond int `yaml:"per_second" validate:"required"`
}

// ACSIdentity holds the certificate/key material used to produce the ACS
// signed content (the PS256 JWS carrying the ACS ephemeral public key).
type ACSIdentity struct {
	CertFilePath string `yaml:"cert_file_path" validate:"required"`
	KeyFilePath  string `yaml:"key_file_path" validate:"required"`
	// RefNumber1/RefNumber2 are the acsReferenceNumber values used for the
	// default (issuer1) and exemption (issuer2) identity mappings in
	// spec.md §4.3.2.
	RefNumber1 string `yaml:"ref_number_1" default:"issuer1"`
	RefNumber2 string `yaml:"ref_number_2" default:"issuer2"`
}

// Common holds configuration shared by every component of the service
type Common struct {
	Production bool      `yaml:"production"`
	Log        Log       `yaml:"log"`
	Tracing    OTEL      `yaml:"tracing"`
	KeyValue   KeyValue  `yaml:"key_value" validate:"required"`
	RateLimit  RateLimit `yaml:"rate_limit" validate:"required"`
	// ServerBase is this ACS's own externally reachable base URL, used to
	// build acsUrl / the mobile challenge endpoint (spec.md §4.3.2).
	ServerBase string `yaml:"server_base" validate:"required"`
}

// ACS holds the top-level configuration for the access control server
type ACS struct {
	APIServer APIServer   `yaml:"api_server" validate:"required"`
	Identity  ACSIdentity `yaml:"identity" validate:"required"`
}

// Cfg is the root configuration object, parsed from the YAML file named by
// the APP_CONFIG_YAML environment variable. Individual fields are not
// overridable from the environment.
type Cfg struct {
	Common Common `yaml:"common" validate:"required"`
	ACS    ACS    `yaml:"acs" validate:"required"`
}

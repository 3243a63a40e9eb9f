// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Flat koanf keys so every field can be set from a REGBOARD_* variable.
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's sentinel errors.
package config

import "time"

// Credential sources accepted by CredentialsSource.
const (
	SourceInline = "inline"
	SourceFile   = "file"
	SourceEnv    = "env"
)

// Cache backends accepted by CacheBackend.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`

	// PageTitle is shown as the dashboard heading.
	PageTitle string `koanf:"page_title"`

	// SpreadsheetID and RangeName select the cells to read, e.g. "Sheet1!A:F".
	SpreadsheetID string `koanf:"spreadsheet_id"`
	RangeName     string `koanf:"range_name"`

	// FetchTimeout bounds one spreadsheet read.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// Timezone is the IANA zone submission times are displayed in.
	Timezone string `koanf:"timezone"`

	// Column names looked up in the trimmed sheet header.
	TimestampColumn    string `koanf:"timestamp_column"`
	TeamSizeColumn     string `koanf:"team_size_column"`
	OrganizationColumn string `koanf:"organization_column"`

	// CacheBackend memoizes fetched rows: none, memory or redis.
	CacheBackend string        `koanf:"cache_backend"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`

	RedisAddr      string `koanf:"redis_addr"`
	RedisPassword  string `koanf:"redis_password"`
	RedisDB        int    `koanf:"redis_db"`
	RedisKeyPrefix string `koanf:"redis_key_prefix"`

	// CredentialsSource selects where the service account comes from: inline, file or env.
	CredentialsSource string `koanf:"credentials_source"`
	// CredentialsFile is read when CredentialsSource is "file".
	CredentialsFile string `koanf:"credentials_file"`
	// CredentialsEnv names the variable holding a credentials path when CredentialsSource is "env".
	CredentialsEnv string `koanf:"credentials_env"`

	// Inline service account fields, used when CredentialsSource is "inline".
	ServiceAccount ServiceAccount `koanf:",squash"`
}

// ServiceAccount mirrors the fields of a Google service-account key file.
type ServiceAccount struct {
	Type                    string `koanf:"sa_type" json:"type"`
	ProjectID               string `koanf:"sa_project_id" json:"project_id"`
	PrivateKeyID            string `koanf:"sa_private_key_id" json:"private_key_id"`
	PrivateKey              string `koanf:"sa_private_key" json:"private_key"`
	ClientEmail             string `koanf:"sa_client_email" json:"client_email"`
	ClientID                string `koanf:"sa_client_id" json:"client_id"`
	AuthURI                 string `koanf:"sa_auth_uri" json:"auth_uri"`
	TokenURI                string `koanf:"sa_token_uri" json:"token_uri"`
	AuthProviderX509CertURL string `koanf:"sa_auth_provider_cert_url" json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `koanf:"sa_client_cert_url" json:"client_x509_cert_url"`
	UniverseDomain          string `koanf:"sa_universe_domain" json:"universe_domain,omitempty"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8501",
		PageTitle:          "CodeQuest Registration Tracker",
		FetchTimeout:       15 * time.Second,
		Timezone:           "Asia/Colombo",
		TimestampColumn:    "Submitted at",
		TeamSizeColumn:     "Number of Team Members",
		OrganizationColumn: "University",
		CacheBackend:       CacheNone,
		CacheTTL:           time.Minute,
		RedisAddr:          "localhost:6379",
		RedisKeyPrefix:     "regboard:",
		CredentialsSource:  SourceInline,
		CredentialsEnv:     "GOOGLE_APPLICATION_CREDENTIALS",
		ServiceAccount: ServiceAccount{
			Type:     "service_account",
			AuthURI:  "https://accounts.google.com/o/oauth2/auth",
			TokenURI: "https://oauth2.googleapis.com/token",
		},
	}
}

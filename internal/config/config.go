package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Search    SearchConfig    `yaml:"search"`
	Limits    LimitsConfig    `yaml:"limits"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-Ip.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret            string        `yaml:"jwt_secret"             env:"AUTH_JWT_SECRET"             env-required:"true"`
	JWTIssuer            string        `yaml:"jwt_issuer"             env:"AUTH_JWT_ISSUER"             env-default:"workbench"`
	AccessTokenTTL       time.Duration `yaml:"access_token_ttl"       env:"AUTH_ACCESS_TOKEN_TTL"       env-default:"15m"`
	RefreshTokenTTL      time.Duration `yaml:"refresh_token_ttl"      env:"AUTH_REFRESH_TOKEN_TTL"      env-default:"720h"`
	BcryptCost           int           `yaml:"bcrypt_cost"            env:"AUTH_BCRYPT_COST"            env-default:"12"`
	PasswordMinLength    int           `yaml:"password_min_length"    env:"AUTH_PASSWORD_MIN_LENGTH"    env-default:"8"`
	TokenCleanupInterval time.Duration `yaml:"token_cleanup_interval" env:"AUTH_TOKEN_CLEANUP_INTERVAL" env-default:"1h"`
}

// RedisConfig selects the refresh-session backend. An empty URL keeps
// sessions in PostgreSQL.
type RedisConfig struct {
	URL       string `yaml:"url"        env:"REDIS_URL"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"workbench:"`
}

// Enabled reports whether a Redis URL is configured.
func (c RedisConfig) Enabled() bool { return strings.TrimSpace(c.URL) != "" }

// StorageConfig holds S3-compatible blob storage settings.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"   env:"STORAGE_ENDPOINT"   env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
	Bucket    string `yaml:"bucket"     env:"STORAGE_BUCKET"     env-default:"workbench-files"`
	Region    string `yaml:"region"     env:"STORAGE_REGION"     env-default:"us-east-1"`
	UseSSL    bool   `yaml:"use_ssl"    env:"STORAGE_USE_SSL"    env-default:"false"`
}

// SearchConfig holds Meilisearch settings. An empty URL falls back to
// PostgreSQL full-text search.
type SearchConfig struct {
	MeiliURL       string        `yaml:"meili_url"        env:"SEARCH_MEILI_URL"`
	MeiliAPIKey    string        `yaml:"meili_api_key"    env:"SEARCH_MEILI_API_KEY"`
	HealthInterval time.Duration `yaml:"health_interval"  env:"SEARCH_HEALTH_INTERVAL"  env-default:"15s"`
	DefaultLimit   int           `yaml:"default_limit"    env:"SEARCH_DEFAULT_LIMIT"    env-default:"20"`
}

// Enabled reports whether a Meilisearch URL is configured.
func (c SearchConfig) Enabled() bool { return strings.TrimSpace(c.MeiliURL) != "" }

// LimitsConfig holds per-user quotas and request size caps.
type LimitsConfig struct {
	MaxSpacesPerUser        int   `yaml:"max_spaces_per_user"        env:"LIMITS_MAX_SPACES_PER_USER"        env-default:"50"`
	MaxOrganizationsPerUser int   `yaml:"max_organizations_per_user" env:"LIMITS_MAX_ORGANIZATIONS_PER_USER" env-default:"10"`
	MaxBatchSize            int   `yaml:"max_batch_size"             env:"LIMITS_MAX_BATCH_SIZE"             env-default:"200"`
	MaxUploadBytes          int64 `yaml:"max_upload_bytes"           env:"LIMITS_MAX_UPLOAD_BYTES"           env-default:"52428800"`
	DefaultPageSize         int   `yaml:"default_page_size"          env:"LIMITS_DEFAULT_PAGE_SIZE"          env-default:"50"`
	MaxPageSize             int   `yaml:"max_page_size"              env:"LIMITS_MAX_PAGE_SIZE"              env-default:"200"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds the token bucket settings applied to auth endpoints.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	Rate    float64 `yaml:"rate"    env:"RATE_LIMIT_RATE"    env-default:"1"`
	Burst   int     `yaml:"burst"   env:"RATE_LIMIT_BURST"   env-default:"10"`
}

package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	LLM        LLMConfig        `yaml:"llm"`
	Forms      FormsConfig      `yaml:"forms"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds session and Google OAuth settings.
type AuthConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"           env:"AUTH_JWT_SECRET"`
	JWTIssuer          string        `yaml:"jwt_issuer"           env:"AUTH_JWT_ISSUER"           env-default:"formcraft"`
	SessionTTL         time.Duration `yaml:"session_ttl"          env:"AUTH_SESSION_TTL"          env-default:"168h"`
	GoogleClientID     string        `yaml:"google_client_id"     env:"AUTH_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `yaml:"google_client_secret" env:"AUTH_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string        `yaml:"google_redirect_uri"  env:"AUTH_GOOGLE_REDIRECT_URI"  env-default:"http://localhost:8080/api/auth/google/callback"`
	ClientURL          string        `yaml:"client_url"           env:"AUTH_CLIENT_URL"           env-default:"http://localhost:5173"`
	CookieName         string        `yaml:"cookie_name"          env:"AUTH_COOKIE_NAME"          env-default:"token"`
	CookieSecure       bool          `yaml:"cookie_secure"        env:"AUTH_COOKIE_SECURE"        env-default:"false"`
}

// LLMConfig holds text-generation backend settings.
type LLMConfig struct {
	Provider            string        `yaml:"provider"              env:"LLM_PROVIDER"              env-default:"groq"`
	APIKey              string        `yaml:"api_key"               env:"LLM_API_KEY"`
	Model               string        `yaml:"model"                 env:"LLM_MODEL"`
	BaseURL             string        `yaml:"base_url"              env:"LLM_BASE_URL"`
	RequestTimeout      time.Duration `yaml:"request_timeout"       env:"LLM_REQUEST_TIMEOUT"       env-default:"60s"`
	AnalyzeTemperature  float64       `yaml:"analyze_temperature"   env:"LLM_ANALYZE_TEMPERATURE"   env-default:"0.7"`
	AnalyzeMaxTokens    int           `yaml:"analyze_max_tokens"    env:"LLM_ANALYZE_MAX_TOKENS"    env-default:"1024"`
	GenerateTemperature float64       `yaml:"generate_temperature"  env:"LLM_GENERATE_TEMPERATURE"  env-default:"0.3"`
	GenerateMaxTokens   int           `yaml:"generate_max_tokens"   env:"LLM_GENERATE_MAX_TOKENS"   env-default:"2048"`
	// RetryAttempts and CacheSize are opt-in. The defaults make one call
	// per request and surface its error to the caller.
	RetryAttempts       int           `yaml:"retry_attempts"        env:"LLM_RETRY_ATTEMPTS"        env-default:"1"`
	RetryBaseDelay      time.Duration `yaml:"retry_base_delay"      env:"LLM_RETRY_BASE_DELAY"      env-default:"500ms"`
	CacheSize           int           `yaml:"cache_size"            env:"LLM_CACHE_SIZE"            env-default:"0"`
}

// FormsConfig holds Google Forms provisioning settings.
type FormsConfig struct {
	APIBaseURL        string        `yaml:"api_base_url"       env:"FORMS_API_BASE_URL"`
	RequestTimeout    time.Duration `yaml:"request_timeout"    env:"FORMS_REQUEST_TIMEOUT"    env-default:"30s"`
	DefaultTitle      string        `yaml:"default_title"      env:"FORMS_DEFAULT_TITLE"      env-default:"AI Generated Form"`
	GeneratedRequired bool          `yaml:"generated_required" env:"FORMS_GENERATED_REQUIRED" env-default:"false"`
	ExpandRequired    bool          `yaml:"expand_required"    env:"FORMS_EXPAND_REQUIRED"    env-default:"false"`
	ExpiryTimeZone    string        `yaml:"expiry_time_zone"   env:"FORMS_EXPIRY_TIME_ZONE"   env-default:"UTC"`

	// ExpiryLocation is resolved from ExpiryTimeZone during validation.
	ExpiryLocation *time.Location `yaml:"-" env:"-"`
}

// ReconcilerConfig holds lifecycle sweep settings.
type ReconcilerConfig struct {
	Enabled             bool          `yaml:"enabled"               env:"RECONCILER_ENABLED"               env-default:"true"`
	Interval            time.Duration `yaml:"interval"              env:"RECONCILER_INTERVAL"              env-default:"1h"`
	SweepTimeout        time.Duration `yaml:"sweep_timeout"         env:"RECONCILER_SWEEP_TIMEOUT"         env-default:"5m"`
	PendingTTL          time.Duration `yaml:"pending_ttl"           env:"RECONCILER_PENDING_TTL"           env-default:"1h"`
	EnforceMaxResponses bool          `yaml:"enforce_max_responses" env:"RECONCILER_ENFORCE_MAX_RESPONSES" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP limits for the AI endpoints.
type RateLimitConfig struct {
	AIPerMinute int `yaml:"ai_per_minute" env:"RATE_LIMIT_AI_PER_MINUTE" env-default:"20"`
	AIBurst     int `yaml:"ai_burst"      env:"RATE_LIMIT_AI_BURST"      env-default:"5"`
}

package configs

import (
	"errors"
	"fmt"
	"time"

	"github.com/hilthontt/powersite/internal/infrastructure/env"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const insecureDevSecret = "insecure-dev-key-change-in-production"

type Config struct {
	Debug       bool              `koanf:"debug"`
	HTTP        HTTPConfig        `koanf:"http"`
	Database    DatabaseConfig    `koanf:"database"`
	Pagination  PaginationConfig  `koanf:"pagination"`
	RateLimiter RateLimiterConfig `koanf:"rateLimiter"`
	Auth        AuthConfig        `koanf:"auth"`
	Logger      LoggerConfig      `koanf:"logger"`
	Tracing     TracingConfig     `koanf:"tracing"`
	Sentry      SentryConfig      `koanf:"sentry"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

// DatabaseConfig selects Postgres when URL is set and a local SQLite file
// otherwise.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	SqlitePath      string        `koanf:"sqlite_path"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type PaginationConfig struct {
	PageSize int `koanf:"page_size"`
}

type RateLimiterConfig struct {
	MaxRatePerSecond int    `koanf:"maxRatePerSecond"`
	MaxBurst         int    `koanf:"maxBurst"`
	SubmitPerMinute  int    `koanf:"submitPerMinute"`
	SourceHeaderKey  string `koanf:"sourceHeaderKey"`
}

type StaffAccount struct {
	Username     string `koanf:"username"`
	PasswordHash string `koanf:"password_hash"`
}

type AuthConfig struct {
	SecretKey string         `koanf:"secret_key"`
	TokenTTL  time.Duration  `koanf:"token_ttl"`
	Issuer    string         `koanf:"issuer"`
	Staff     []StaffAccount `koanf:"staff"`
}

type LoggerConfig struct {
	FilePath string `koanf:"file_path"`
	Encoding string `koanf:"encoding"`
	Level    string `koanf:"level"`
	Logger   string `koanf:"logger"`
}

type TracingConfig struct {
	Endpoint    string `koanf:"endpoint"`
	Environment string `koanf:"environment"`
}

type SentryConfig struct {
	Dsn         string `koanf:"dsn"`
	Environment string `koanf:"environment"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations that cannot be served safely.
func (c *Config) Validate() error {
	if c.Pagination.PageSize <= 0 {
		return errors.New("pagination.page_size must be positive")
	}
	if c.Auth.SecretKey == "" {
		return errors.New("auth.secret_key is required")
	}
	if !c.Debug && c.Auth.SecretKey == insecureDevSecret {
		return errors.New("auth.secret_key must be changed when debug is off")
	}
	if c.Database.URL == "" && c.Database.SqlitePath == "" {
		return errors.New("database.url or database.sqlite_path is required")
	}
	for i, s := range c.Auth.Staff {
		if s.Username == "" || s.PasswordHash == "" {
			return fmt.Errorf("auth.staff[%d] needs username and password_hash", i)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

func applyDefaults(k *koanf.Koanf) {
	setDefault(k, "debug", true)

	// HTTP defaults
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 8000)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	// Database defaults
	setDefault(k, "database.sqlite_path", "db.sqlite3")
	setDefault(k, "database.max_open_conns", 10)
	setDefault(k, "database.max_idle_conns", 5)
	setDefault(k, "database.conn_max_lifetime", 30*time.Minute)

	setDefault(k, "pagination.page_size", 10)

	// Rate limiter defaults
	setDefault(k, "rateLimiter.maxRatePerSecond", 20)
	setDefault(k, "rateLimiter.maxBurst", 40)
	setDefault(k, "rateLimiter.submitPerMinute", 5)
	setDefault(k, "rateLimiter.sourceHeaderKey", "X-Forwarded-For")

	// Auth defaults
	setDefault(k, "auth.secret_key", insecureDevSecret)
	setDefault(k, "auth.token_ttl", 12*time.Hour)
	setDefault(k, "auth.issuer", "powersite")

	// Logger defaults
	setDefault(k, "logger.encoding", "json")
	setDefault(k, "logger.level", "info")
	setDefault(k, "logger.logger", "zap")

	setDefault(k, "tracing.environment", "development")
	setDefault(k, "sentry.environment", "development")
}

func applyEnvOverrides(k *koanf.Koanf) {
	// DEBUG follows the original deployment: anything but "True" disables it.
	if debug := env.GetString("DEBUG", ""); debug != "" {
		k.Set("debug", debug == "True" || debug == "true" || debug == "1")
	}

	// HTTP config from env
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	} else if port := env.GetInt("PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}
	if origins := env.GetList("CORS_ALLOWED_ORIGINS"); len(origins) > 0 {
		k.Set("http.allowed_origins", origins)
	}

	// Database config from env
	if url := env.GetString("DATABASE_URL", ""); url != "" {
		k.Set("database.url", url)
	}
	if path := env.GetString("SQLITE_PATH", ""); path != "" {
		k.Set("database.sqlite_path", path)
	}

	if pageSize := env.GetInt("PAGE_SIZE", 0); pageSize > 0 {
		k.Set("pagination.page_size", pageSize)
	}

	// Rate limiter config from env
	if maxRate := env.GetInt("RATE_LIMIT_MAX_RATE_PER_SECOND", 0); maxRate > 0 {
		k.Set("rateLimiter.maxRatePerSecond", maxRate)
	}
	if maxBurst := env.GetInt("RATE_LIMIT_MAX_BURST", 0); maxBurst > 0 {
		k.Set("rateLimiter.maxBurst", maxBurst)
	}
	if submit := env.GetInt("RATE_LIMIT_SUBMIT_PER_MINUTE", 0); submit > 0 {
		k.Set("rateLimiter.submitPerMinute", submit)
	}
	if sourceKey := env.GetString("RATE_LIMIT_SOURCE_HEADER_KEY", ""); sourceKey != "" {
		k.Set("rateLimiter.sourceHeaderKey", sourceKey)
	}

	// Auth config from env
	if secret := env.GetString("SECRET_KEY", env.GetString("DJANGO_SECRET_KEY", "")); secret != "" {
		k.Set("auth.secret_key", secret)
	}
	if ttl := env.GetInt("AUTH_TOKEN_TTL_MINUTES", 0); ttl > 0 {
		k.Set("auth.token_ttl", time.Duration(ttl)*time.Minute)
	}
	if user, hash := env.GetString("STAFF_USERNAME", ""), env.GetString("STAFF_PASSWORD_HASH", ""); user != "" && hash != "" {
		k.Set("auth.staff", []map[string]any{{"username": user, "password_hash": hash}})
	}

	// Logger config from env
	if path := env.GetString("LOGGER_FILE_PATH", ""); path != "" {
		k.Set("logger.file_path", path)
	}
	if enc := env.GetString("LOGGER_ENCODING", ""); enc != "" {
		k.Set("logger.encoding", enc)
	}
	if level := env.GetString("LOGGER_LEVEL", ""); level != "" {
		k.Set("logger.level", level)
	}
	if backend := env.GetString("LOGGER_LOGGER", ""); backend != "" {
		k.Set("logger.logger", backend)
	}

	if endpoint := env.GetString("OTEL_EXPORTER_OTLP_ENDPOINT", ""); endpoint != "" {
		k.Set("tracing.endpoint", endpoint)
	}
	if environment := env.GetString("ENVIRONMENT", ""); environment != "" {
		k.Set("tracing.environment", environment)
		k.Set("sentry.environment", environment)
	}
	if dsn := env.GetString("SENTRY_DSN", ""); dsn != "" {
		k.Set("sentry.dsn", dsn)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}

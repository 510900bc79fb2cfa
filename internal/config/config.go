package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageBackendFile     = "file"
	StorageBackendMemory   = "memory"
	StorageBackendRedis    = "redis"
	StorageBackendPostgres = "postgres"

	DefaultStorageKey    = "devskillshub_skills"
	DefaultGitHubBaseURL = "https://api.github.com"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	GitHub   GitHubConfig
	Auth     AuthConfig

	CORSAllowOrigins    []string
	SeedFile            string
	SeedReplaceDegraded bool
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type StorageConfig struct {
	Backend string
	Key     string
	Dir     string
}

type DatabaseConfig struct {
	DBHost        string
	DBPort        string
	DBName        string
	DBUser        string
	DBPassword    string
	DBSSLMode     string
	MigrationsDir string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type GitHubConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret         string
	AccessExpiresIn   time.Duration
	OwnerPasswordHash string
}

// Enabled reports whether mutating endpoints require an owner token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != "" && a.OwnerPasswordHash != ""
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Storage = StorageConfig{
		Backend: strings.ToLower(optDefault("STORAGE_BACKEND", StorageBackendFile)),
		Key:     optDefault("STORAGE_KEY", DefaultStorageKey),
		Dir:     optDefault("STORAGE_DIR", "data"),
	}
	switch cfg.Storage.Backend {
	case StorageBackendFile, StorageBackendMemory, StorageBackendRedis, StorageBackendPostgres:
	default:
		invalid = append(invalid, "STORAGE_BACKEND")
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      optDefault("DB_SSL_MODE", "disable"),
		MigrationsDir:  opt("MIGRATIONS_DIR"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 4)),
	}
	if cfg.Storage.Backend == StorageBackendPostgres {
		for _, k := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER"} {
			req(k)
		}
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.GitHub = GitHubConfig{
		BaseURL: strings.TrimRight(optDefault("GITHUB_API_BASE_URL", DefaultGitHubBaseURL), "/"),
		Timeout: optDuration("GITHUB_TIMEOUT", 10*time.Second),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:         opt("JWT_SECRET"),
		AccessExpiresIn:   optDuration("JWT_EXPIRES_IN", 12*time.Hour),
		OwnerPasswordHash: opt("OWNER_PASSWORD_HASH"),
	}

	cfg.CORSAllowOrigins = splitList(optDefault("CORS_ALLOW_ORIGINS", "*"))
	cfg.SeedFile = opt("SEED_FILE")
	cfg.SeedReplaceDegraded = optBool("SEED_REPLACE_DEGRADED", false)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

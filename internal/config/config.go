package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	Environment string         `mapstructure:"environment"`
	API         APIConfig      `mapstructure:"api"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	MinIO       MinIOConfig    `mapstructure:"minio"`
	Auth        AuthConfig     `mapstructure:"auth"`
	AI          AIConfig       `mapstructure:"ai"`
	Clamd       ClamdConfig    `mapstructure:"clamd"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	InternalSecret string   `mapstructure:"internal_secret"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxResumes     int      `mapstructure:"max_resumes"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// AuthConfig contains JWT key material, token lifetimes (seconds) and login throttling.
type AuthConfig struct {
	PrivateKeyPEM      string `mapstructure:"private_key_pem"`
	PublicKeyPEM       string `mapstructure:"public_key_pem"`
	AccessTTLSecs      int    `mapstructure:"access_ttl_seconds"`
	RefreshTTLSecs     int    `mapstructure:"refresh_ttl_seconds"`
	LoginRatePerHour   int    `mapstructure:"login_rate_per_hour"`
	LoginLockThreshold int    `mapstructure:"login_lock_threshold"`
	LoginLockTTLSecs   int    `mapstructure:"login_lock_ttl_seconds"`
	CookieDomain       string `mapstructure:"cookie_domain"`
}

// AIConfig 描述外部 AI 服务的地址与单次调用超时（秒）。
type AIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_seconds"`
}

// ClamdConfig contains the clamd TCP address used for upload scanning.
type ClamdConfig struct {
	Addr string `mapstructure:"addr"`
}

const (
	// aiLocalBaseURL 是本地开发环境的默认 AI 服务地址。
	aiLocalBaseURL = "http://localhost:8000"
	// aiProductionBaseURL 是生产环境的兜底地址。
	aiProductionBaseURL = "https://ai.oppzresume.app"
)

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// ResolveAIBaseURL 按优先级解析 AI 服务地址：
// 显式环境变量覆盖 → 开发环境本地默认值 → 生产兜底地址。
func (c *Config) ResolveAIBaseURL() string {
	if c.AI.BaseURL != "" {
		return c.AI.BaseURL
	}
	switch c.Environment {
	case "development", "local", "dev":
		return aiLocalBaseURL
	default:
		return aiProductionBaseURL
	}
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.max_resumes", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "oppzresume")
	v.SetDefault("database.user", "oppzresume")
	v.SetDefault("database.password", "oppzresume")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resumes")
	v.SetDefault("auth.access_ttl_seconds", 900)
	v.SetDefault("auth.refresh_ttl_seconds", 604800)
	v.SetDefault("auth.login_rate_per_hour", 10)
	v.SetDefault("auth.login_lock_threshold", 5)
	v.SetDefault("auth.login_lock_ttl_seconds", 900)
	v.SetDefault("ai.timeout_seconds", 90)
	v.SetDefault("clamd.addr", "tcp://localhost:3310")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"environment":                 "APP_ENV",
		"api.port":                    "API_PORT",
		"api.internal_secret":         "INTERNAL_API_SECRET",
		"api.allowed_origins":         "ALLOWED_ORIGINS",
		"api.max_resumes":             "MAX_RESUMES_PER_USER",
		"database.host":               "DATABASE_HOST",
		"database.port":               "DATABASE_PORT",
		"database.name":               "POSTGRES_DB",
		"database.user":               "POSTGRES_USER",
		"database.password":           "POSTGRES_PASSWORD",
		"database.sslmode":            "DATABASE_SSLMODE",
		"redis.host":                  "REDIS_HOST",
		"redis.port":                  "REDIS_PORT",
		"minio.endpoint":              "MINIO_ENDPOINT",
		"minio.access_key_id":         "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":     "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":               "MINIO_USE_SSL",
		"minio.bucket":                "MINIO_BUCKET",
		"auth.private_key_pem":        "JWT_PRIVATE_KEY_PEM",
		"auth.public_key_pem":         "JWT_PUBLIC_KEY_PEM",
		"auth.access_ttl_seconds":     "JWT_ACCESS_TTL_SECONDS",
		"auth.refresh_ttl_seconds":    "JWT_REFRESH_TTL_SECONDS",
		"auth.login_rate_per_hour":    "LOGIN_RATE_PER_HOUR",
		"auth.login_lock_threshold":   "LOGIN_LOCK_THRESHOLD",
		"auth.login_lock_ttl_seconds": "LOGIN_LOCK_TTL_SECONDS",
		"auth.cookie_domain":          "AUTH_COOKIE_DOMAIN",
		"ai.base_url":                 "AI_SERVICE_URL",
		"ai.timeout_seconds":          "AI_TIMEOUT_SECONDS",
		"clamd.addr":                  "CLAMD_ADDR",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.Auth.AccessTTLSecs <= 0 || cfg.Auth.RefreshTTLSecs <= 0 {
		return errors.New("jwt token ttls must be positive")
	}
	if cfg.AI.TimeoutSecs <= 0 {
		return errors.New("ai timeout must be positive")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Queue  QueueConfig
	Cache  CacheConfig
	Email  EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for uploaded document storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds analysis queue settings.
type QueueConfig struct {
	Workers           int `mapstructure:"workers"`
	Capacity          int `mapstructure:"capacity"`
	TaskTimeoutSecs   int `mapstructure:"task_timeout_secs"`
	RetentionTTLSecs  int `mapstructure:"retention_ttl_secs"`
	SweepIntervalSecs int `mapstructure:"sweep_interval_secs"`
}

// CacheConfig holds analysis cache settings.
type CacheConfig struct {
	TTLSecs int `mapstructure:"ttl_secs"`
	MaxSize int `mapstructure:"max_size"`
}

// EmailConfig holds insurer notification delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the ASSURDOC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ASSURDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "assurdoc")
	v.SetDefault("db.password", "assurdoc_secret")
	v.SetDefault("db.name", "assurdoc_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "assurdoc")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-3")
	v.SetDefault("s3.bucket", "assurdoc-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.capacity", 100)
	v.SetDefault("queue.task_timeout_secs", 300)
	v.SetDefault("queue.retention_ttl_secs", 3600)
	v.SetDefault("queue.sweep_interval_secs", 60)

	// Cache defaults
	v.SetDefault("cache.ttl_secs", 600)
	v.SetDefault("cache.max_size", 500)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-3")
	v.SetDefault("email.from_address", "noreply@assurdoc.fr")
	v.SetDefault("email.from_name", "AssurDoc")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "ASSURDOC_SERVER_PORT",
		"server.read_timeout":       "ASSURDOC_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "ASSURDOC_SERVER_WRITE_TIMEOUT",
		"server.environment":        "ASSURDOC_SERVER_ENVIRONMENT",
		"db.host":                   "ASSURDOC_DB_HOST",
		"db.port":                   "ASSURDOC_DB_PORT",
		"db.user":                   "ASSURDOC_DB_USER",
		"db.password":               "ASSURDOC_DB_PASSWORD",
		"db.name":                   "ASSURDOC_DB_NAME",
		"db.sslmode":                "ASSURDOC_DB_SSLMODE",
		"db.max_open":               "ASSURDOC_DB_MAX_OPEN",
		"db.max_idle":               "ASSURDOC_DB_MAX_IDLE",
		"jwt.secret":                "ASSURDOC_JWT_SECRET",
		"jwt.access_expiry":         "ASSURDOC_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":        "ASSURDOC_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                "ASSURDOC_JWT_ISSUER",
		"s3.region":                 "ASSURDOC_S3_REGION",
		"s3.bucket":                 "ASSURDOC_S3_BUCKET",
		"s3.endpoint":               "ASSURDOC_S3_ENDPOINT",
		"s3.access_key":             "ASSURDOC_S3_ACCESS_KEY",
		"s3.secret_key":             "ASSURDOC_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "ASSURDOC_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "ASSURDOC_S3_PRESIGN_EXPIRY",
		"log.level":                 "ASSURDOC_LOG_LEVEL",
		"log.format":                "ASSURDOC_LOG_FORMAT",
		"cors.allowed_origins":      "ASSURDOC_CORS_ALLOWED_ORIGINS",
		"queue.workers":             "ASSURDOC_QUEUE_WORKERS",
		"queue.capacity":            "ASSURDOC_QUEUE_CAPACITY",
		"queue.task_timeout_secs":   "ASSURDOC_QUEUE_TASK_TIMEOUT_SECS",
		"queue.retention_ttl_secs":  "ASSURDOC_QUEUE_RETENTION_TTL_SECS",
		"queue.sweep_interval_secs": "ASSURDOC_QUEUE_SWEEP_INTERVAL_SECS",
		"cache.ttl_secs":            "ASSURDOC_CACHE_TTL_SECS",
		"cache.max_size":            "ASSURDOC_CACHE_MAX_SIZE",
		"email.provider":            "ASSURDOC_EMAIL_PROVIDER",
		"email.region":              "ASSURDOC_EMAIL_REGION",
		"email.from_address":        "ASSURDOC_EMAIL_FROM_ADDRESS",
		"email.from_name":           "ASSURDOC_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ASSURDOC_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ASSURDOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Queue = QueueConfig{
		Workers:           v.GetInt("queue.workers"),
		Capacity:          v.GetInt("queue.capacity"),
		TaskTimeoutSecs:   v.GetInt("queue.task_timeout_secs"),
		RetentionTTLSecs:  v.GetInt("queue.retention_ttl_secs"),
		SweepIntervalSecs: v.GetInt("queue.sweep_interval_secs"),
	}

	cfg.Cache = CacheConfig{
		TTLSecs: v.GetInt("cache.ttl_secs"),
		MaxSize: v.GetInt("cache.max_size"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}

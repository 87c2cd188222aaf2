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
	Log    LogConfig
	CORS   CORSConfig
	Queue  QueueConfig
	Review ReviewConfig
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

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds parse queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// ReviewConfig holds human-review routing settings.
type ReviewConfig struct {
	// Threshold is the per-item confidence below which an item is queued
	// for human review.
	Threshold float64 `mapstructure:"threshold"`
}

// Load reads configuration from environment variables with the PANTRYOS_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PANTRYOS")
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
	v.SetDefault("db.user", "pantryos")
	v.SetDefault("db.password", "pantryos_secret")
	v.SetDefault("db.name", "pantryos_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 4)

	// Review defaults
	v.SetDefault("review.threshold", 0.8)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "PANTRYOS_SERVER_PORT",
		"server.read_timeout":      "PANTRYOS_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PANTRYOS_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PANTRYOS_SERVER_ENVIRONMENT",
		"db.host":                  "PANTRYOS_DB_HOST",
		"db.port":                  "PANTRYOS_DB_PORT",
		"db.user":                  "PANTRYOS_DB_USER",
		"db.password":              "PANTRYOS_DB_PASSWORD",
		"db.name":                  "PANTRYOS_DB_NAME",
		"db.sslmode":               "PANTRYOS_DB_SSLMODE",
		"db.max_open":              "PANTRYOS_DB_MAX_OPEN",
		"db.max_idle":              "PANTRYOS_DB_MAX_IDLE",
		"log.level":                "PANTRYOS_LOG_LEVEL",
		"log.format":               "PANTRYOS_LOG_FORMAT",
		"cors.allowed_origins":     "PANTRYOS_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "PANTRYOS_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "PANTRYOS_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "PANTRYOS_QUEUE_CONCURRENCY",
		"review.threshold":         "PANTRYOS_REVIEW_THRESHOLD",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PANTRYOS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PANTRYOS_SERVER_PORT") == "" {
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
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Review = ReviewConfig{
		Threshold: v.GetFloat64("review.threshold"),
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `toml:"host"`
	Port               string `toml:"port"`
	User               string `toml:"user"`
	Password           string `toml:"password"`
	Name               string `toml:"name"`
	SSLMode            string `toml:"sslmode"`
	MaxOpenConns       int    `toml:"max_open_conns"`
	MaxIdleConns       int    `toml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `toml:"conn_max_lifetime_sec"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// RedisConfig enables the shared handoff slot. Empty Addr keeps it in memory.
type RedisConfig struct {
	Addr       string        `toml:"addr"`
	Password   string        `toml:"password"`
	DB         int           `toml:"db"`
	HandoffKey string        `toml:"handoff_key"`
	HandoffTTL time.Duration `toml:"handoff_ttl"`
}

// RabbitMQConfig enables document.created events. Empty URL disables publishing.
type RabbitMQConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// GeminiConfig enables model-backed analysis. Empty APIKey keeps the mocked analyzer.
type GeminiConfig struct {
	APIKey  string        `toml:"api_key"`
	Model   string        `toml:"model"`
	Timeout time.Duration `toml:"timeout"`
}

// PipelineConfig sets the stage timings of the ingestion pipeline.
type PipelineConfig struct {
	Fetching   time.Duration `toml:"fetching"`
	Extracting time.Duration `toml:"extracting"`
	Analyzing  time.Duration `toml:"analyzing"`
	Finalizing time.Duration `toml:"finalizing"`
	Highlight  time.Duration `toml:"highlight"`
	Tick       time.Duration `toml:"tick"`
	Retention  time.Duration `toml:"retention"`
	Workers    int           `toml:"workers"`
}

// ChatConfig holds assistant reply settings.
type ChatConfig struct {
	ReplyDelay time.Duration `toml:"reply_delay"`
}

// FetcherConfig schedules the automatic inbox fetch.
type FetcherConfig struct {
	Enabled     bool   `toml:"enabled"`
	Schedule    string `toml:"schedule"`
	InboxPrefix string `toml:"inbox_prefix"`
	UploadedBy  string `toml:"uploaded_by"`
}

// AppConfig is the centralized configuration struct for the application.
// Values come from defaults, then an optional TOML file (CONFIG_FILE), then
// environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string         `toml:"app_host"`
	Port     string         `toml:"port"`
	Timezone string         `toml:"timezone"`
	LogLevel string         `toml:"log_level"`
	Database DatabaseConfig `toml:"database"`
	MinIO    MinIOConfig    `toml:"minio"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Gemini   GeminiConfig   `toml:"gemini"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Chat     ChatConfig     `toml:"chat"`
	Fetcher  FetcherConfig  `toml:"fetcher"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *AppConfig {
	return &AppConfig{
		AppHost:  "localhost:8080",
		Port:     "8080",
		Timezone: "Asia/Kolkata",
		LogLevel: "info",
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
		},
		Redis: RedisConfig{
			HandoffKey: "documind:handoff",
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "documind.events",
		},
		Gemini: GeminiConfig{
			Model:   "gemini-1.5-flash",
			Timeout: 60 * time.Second,
		},
		Pipeline: PipelineConfig{
			Fetching:   3 * time.Second,
			Extracting: 2 * time.Second,
			Analyzing:  5 * time.Second,
			Finalizing: 1 * time.Second,
			Highlight:  3 * time.Second,
			Tick:       250 * time.Millisecond,
			Retention:  time.Hour,
			Workers:    4,
		},
		Chat: ChatConfig{
			ReplyDelay: 1500 * time.Millisecond,
		},
		Fetcher: FetcherConfig{
			Schedule:    "@every 5m",
			InboxPrefix: "inbox/",
			UploadedBy:  "Email System",
		},
	}
}

// Load reads configuration from defaults, CONFIG_FILE and environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the file.
func Load() (*AppConfig, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.AppHost = getEnv("APP_HOST", cfg.AppHost)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Timezone = getEnv("APP_TIMEZONE", cfg.Timezone)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	db := &cfg.Database
	db.Host = getEnv("DB_HOST", db.Host)
	db.Port = getEnv("DB_PORT", db.Port)
	db.User = getEnv("DB_USER", db.User)
	db.Password = getEnv("DB_PASSWORD", db.Password)
	db.Name = getEnv("DB_NAME", db.Name)
	db.SSLMode = getEnv("DB_SSLMODE", db.SSLMode)
	db.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", db.ConnMaxLifetimeSec)

	m := &cfg.MinIO
	m.Endpoint = getEnv("MINIO_ENDPOINT", m.Endpoint)
	m.AccessKey = getEnv("MINIO_ACCESS_KEY", m.AccessKey)
	m.SecretKey = getEnv("MINIO_SECRET_KEY", m.SecretKey)
	m.Bucket = getEnv("MINIO_BUCKET", m.Bucket)
	m.UseSSL = getEnvBool("MINIO_USE_SSL", m.UseSSL)

	r := &cfg.Redis
	r.Addr = getEnv("REDIS_ADDR", r.Addr)
	r.Password = getEnv("REDIS_PASSWORD", r.Password)
	r.DB = getEnvInt("REDIS_DB", r.DB)
	r.HandoffKey = getEnv("REDIS_HANDOFF_KEY", r.HandoffKey)
	r.HandoffTTL = getEnvDuration("REDIS_HANDOFF_TTL", r.HandoffTTL)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.Exchange = getEnv("RABBITMQ_EXCHANGE", cfg.RabbitMQ.Exchange)

	g := &cfg.Gemini
	g.APIKey = getEnv("GEMINI_API_KEY", g.APIKey)
	g.Model = getEnv("GEMINI_MODEL", g.Model)
	g.Timeout = getEnvDuration("GEMINI_TIMEOUT", g.Timeout)

	p := &cfg.Pipeline
	p.Fetching = getEnvDuration("PIPELINE_FETCHING", p.Fetching)
	p.Extracting = getEnvDuration("PIPELINE_EXTRACTING", p.Extracting)
	p.Analyzing = getEnvDuration("PIPELINE_ANALYZING", p.Analyzing)
	p.Finalizing = getEnvDuration("PIPELINE_FINALIZING", p.Finalizing)
	p.Highlight = getEnvDuration("PIPELINE_HIGHLIGHT", p.Highlight)
	p.Tick = getEnvDuration("PIPELINE_TICK", p.Tick)
	p.Retention = getEnvDuration("PIPELINE_RETENTION", p.Retention)
	p.Workers = getEnvInt("PIPELINE_WORKERS", p.Workers)

	cfg.Chat.ReplyDelay = getEnvDuration("CHAT_REPLY_DELAY", cfg.Chat.ReplyDelay)

	f := &cfg.Fetcher
	f.Enabled = getEnvBool("FETCHER_ENABLED", f.Enabled)
	f.Schedule = getEnv("FETCHER_SCHEDULE", f.Schedule)
	f.InboxPrefix = getEnv("FETCHER_INBOX_PREFIX", f.InboxPrefix)
	f.UploadedBy = getEnv("FETCHER_UPLOADED_BY", f.UploadedBy)

	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Application settings
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Parser    ParserConfig    `yaml:"parser"`
	Storage   StorageConfig   `yaml:"storage"`
	Messaging MessagingConfig `yaml:"messaging"`
	External  ExternalConfig  `yaml:"external"`
}

// Server settings
type ServerConfig struct {
	Port           string        `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type ParserConfig struct {
	WorkerPoolSize int `yaml:"worker_pool_size"`
	MaxBatchSize   int `yaml:"max_batch_size"`
	MaxInputBytes  int `yaml:"max_input_bytes"`
}

// Storage selects and configures the campaign repository.
type StorageConfig struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
}

type MessagingConfig struct {
	NatsURL       string `yaml:"nats_url"`
	NatsToken     string `yaml:"nats_token"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type ExternalConfig struct {
	SinkURL            string        `yaml:"sink_url"`
	SinkSecret         string        `yaml:"sink_secret"`
	SinkTimeout        time.Duration `yaml:"sink_timeout"`
	RateLimitPerSecond int           `yaml:"rate_limit_per_second"`
}

// Logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   1 << 20,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{Level: "info", JSON: true},
		Parser: ParserConfig{
			WorkerPoolSize: 10,
			MaxBatchSize:   100,
			MaxInputBytes:  64 << 10,
		},
		Storage: StorageConfig{
			Driver:     DriverMemory,
			SQLitePath: "campaigns.db",
		},
		Messaging: MessagingConfig{
			SubjectPrefix: "campaigngo",
		},
		External: ExternalConfig{
			SinkTimeout:        10 * time.Second,
			RateLimitPerSecond: 10,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by CONFIG_FILE
// (if any), then environment variables.
func Load() (*Config, error) {
	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.Server.RequestTimeout = getDurationEnv("REQUEST_TIMEOUT", config.Server.RequestTimeout)
	config.Server.MaxBodyBytes = int64(getIntEnv("MAX_BODY_BYTES", int(config.Server.MaxBodyBytes)))
	config.Server.AllowedOrigins = getListEnv("ALLOWED_ORIGINS", config.Server.AllowedOrigins)

	config.Logging.Level = getEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.JSON = getBoolEnv("LOG_JSON", config.Logging.JSON)

	config.Parser.WorkerPoolSize = getIntEnv("WORKER_POOL_SIZE", config.Parser.WorkerPoolSize)
	config.Parser.MaxBatchSize = getIntEnv("MAX_BATCH_SIZE", config.Parser.MaxBatchSize)
	config.Parser.MaxInputBytes = getIntEnv("MAX_INPUT_BYTES", config.Parser.MaxInputBytes)

	config.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", config.Storage.Driver))
	config.Storage.SQLitePath = getEnv("SQLITE_PATH", config.Storage.SQLitePath)
	config.Storage.DatabaseURL = getEnv("DATABASE_URL", config.Storage.DatabaseURL)

	config.Messaging.NatsURL = getEnv("NATS_URL", config.Messaging.NatsURL)
	config.Messaging.NatsToken = getEnv("NATS_TOKEN", config.Messaging.NatsToken)
	config.Messaging.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", config.Messaging.SubjectPrefix)

	config.External.SinkURL = getEnv("SINK_URL", config.External.SinkURL)
	config.External.SinkSecret = getEnv("SINK_SECRET", config.External.SinkSecret)
	config.External.SinkTimeout = getDurationEnv("SINK_TIMEOUT", config.External.SinkTimeout)
	config.External.RateLimitPerSecond = getIntEnv("RATE_LIMIT_PER_SECOND", config.External.RateLimitPerSecond)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, config); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage driver %q requires DATABASE_URL", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Parser.WorkerPoolSize < 1 {
		return fmt.Errorf("worker pool size must be positive, got %d", c.Parser.WorkerPoolSize)
	}
	if c.Parser.MaxBatchSize < 1 {
		return fmt.Errorf("max batch size must be positive, got %d", c.Parser.MaxBatchSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// comma separated
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

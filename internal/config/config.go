// Package config loads docfill settings from an optional YAML file and
// the environment. Environment variables win over the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store kinds
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Output kinds
const (
	OutputFilesystem = "filesystem"
	OutputS3         = "s3"
)

// Config holds all docfill settings.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Output     OutputConfig     `yaml:"output"`
	Signing    SigningConfig    `yaml:"signing"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects where uploaded templates are kept.
type StoreConfig struct {
	Kind        string        `yaml:"kind"`
	RedisURL    string        `yaml:"redis_url"`
	DatabaseURL string        `yaml:"database_url"`
	TTL         time.Duration `yaml:"ttl"`

	// PurgeInterval is how often expired rows are deleted (postgres only).
	PurgeInterval time.Duration `yaml:"purge_interval"`
}

// OutputConfig selects where generated documents are written.
type OutputConfig struct {
	Kind string   `yaml:"kind"`
	Dir  string   `yaml:"dir"`
	S3   S3Config `yaml:"s3"`
}

// S3Config addresses an S3 or S3-compatible bucket.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// SigningConfig enables signed download links when Secret is set.
type SigningConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// Enabled reports whether download links are signed.
func (s SigningConfig) Enabled() bool {
	return s.Secret != ""
}

// ProcessingConfig bounds the extraction and build steps.
type ProcessingConfig struct {
	ExtractTimeout time.Duration `yaml:"extract_timeout"`
	BuildTimeout   time.Duration `yaml:"build_timeout"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8787,
			MaxUploadBytes:  10 << 20,
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Kind:          StoreMemory,
			TTL:           24 * time.Hour,
			PurgeInterval: time.Hour,
		},
		Output: OutputConfig{
			Kind: OutputFilesystem,
			Dir:  "downloads",
		},
		Signing: SigningConfig{
			TTL: 15 * time.Minute,
		},
		Processing: ProcessingConfig{
			ExtractTimeout: 30 * time.Second,
			BuildTimeout:   30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (if non-empty and present) over the defaults, then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(c.Server.MaxUploadBytes)))
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	c.Store.Kind = getEnv("DOCFILL_STORE", c.Store.Kind)
	c.Store.RedisURL = getEnv("REDIS_URL", c.Store.RedisURL)
	c.Store.DatabaseURL = getEnv("DATABASE_URL", c.Store.DatabaseURL)

	c.Output.Dir = getEnv("OUTPUT_DIR", c.Output.Dir)
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		c.Output.Kind = OutputS3
		c.Output.S3.Bucket = bucket
	}
	c.Output.S3.Endpoint = getEnv("S3_ENDPOINT", c.Output.S3.Endpoint)
	c.Output.S3.Region = getEnv("S3_REGION", c.Output.S3.Region)
	c.Output.S3.AccessKeyID = getEnv("AWS_ACCESS_KEY_ID", c.Output.S3.AccessKeyID)
	c.Output.S3.SecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", c.Output.S3.SecretAccessKey)

	c.Signing.Secret = getEnv("DOWNLOAD_SIGNING_SECRET", c.Signing.Secret)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
}

// Validate checks that the selected backings are fully configured.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}

	switch c.Store.Kind {
	case StoreMemory:
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store %q requires REDIS_URL", c.Store.Kind)
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store %q requires DATABASE_URL", c.Store.Kind)
		}
	default:
		return fmt.Errorf("unknown store kind %q (want %s, %s or %s)", c.Store.Kind, StoreMemory, StoreRedis, StorePostgres)
	}

	switch c.Output.Kind {
	case OutputFilesystem:
		if c.Output.Dir == "" {
			return fmt.Errorf("output %q requires a directory", c.Output.Kind)
		}
	case OutputS3:
		if c.Output.S3.Bucket == "" {
			return fmt.Errorf("output %q requires S3_BUCKET", c.Output.Kind)
		}
	default:
		return fmt.Errorf("unknown output kind %q (want %s or %s)", c.Output.Kind, OutputFilesystem, OutputS3)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Logging.Format)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

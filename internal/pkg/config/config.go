// Package config loads process configuration from the environment. A .env
// file in the working directory is read first when present; variables that
// are already set win over it.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is the lead API server configuration.
type Config struct {
	Port         string        `env:"PORT,           default=8080"`
	Env          string        `env:"ENV,            default=development"`
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTTTL       time.Duration `env:"JWT_TTL,        default=480m"`
	LogLevel     string        `env:"LOG_LEVEL,      default=info"`
	LogPretty    bool          `env:"LOG_PRETTY,     default=false"`
	CORSOrigins  []string      `env:"CORS_ORIGINS,   default=*"`
	AuditWorkers int           `env:"AUDIT_WORKERS,  default=4"`
	SeedDemoData bool          `env:"SEED_DEMO_DATA, default=true"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=uninorte_leads"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type TelemetryConfig struct {
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE, default=true"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks the settings envconfig cannot express.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.AuditWorkers < 1 {
		return fmt.Errorf("AUDIT_WORKERS must be at least 1, got %d", c.AuditWorkers)
	}
	return nil
}

// ClientConfig is the leadctl configuration.
type ClientConfig struct {
	APIURL      string `env:"LEADCTL_API_URL,      default=http://localhost:8080"`
	SessionFile string `env:"LEADCTL_SESSION_FILE"`
	SessionKey  string `env:"LEADCTL_SESSION_KEY"`
	LogLevel    string `env:"LOG_LEVEL,            default=warn"`
}

// Load reads the server configuration.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := load(ctx, &cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadClient reads the leadctl configuration.
func LoadClient(ctx context.Context) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := load(ctx, &cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func load(ctx context.Context, target any, lookuper envconfig.Lookuper) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: read .env: %w", err)
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   target,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the service and the CLI.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	PostgresURL   string `mapstructure:"POSTGRES_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`

	TMDBAPIKey  string `mapstructure:"TMDB_API_KEY"`
	TMDBBaseURL string `mapstructure:"TMDB_BASE_URL"`

	FetchMaxAttempts int           `mapstructure:"FETCH_MAX_ATTEMPTS"`
	FetchBackoff     time.Duration `mapstructure:"FETCH_BACKOFF"`
	FetchMaxBackoff  time.Duration `mapstructure:"FETCH_MAX_BACKOFF"`
	FetchTimeout     time.Duration `mapstructure:"FETCH_TIMEOUT"`
	FetchMode        string        `mapstructure:"FETCH_MODE"`
	FetchUserAgent   string        `mapstructure:"FETCH_USER_AGENT"`
	FetchProxy       string        `mapstructure:"FETCH_PROXY"`

	PageCacheTTL       time.Duration `mapstructure:"PAGE_CACHE_TTL"`
	JobTTL             time.Duration `mapstructure:"JOB_TTL"`
	WorkerPollInterval time.Duration `mapstructure:"WORKER_POLL_INTERVAL"`

	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
}

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

var defaults = map[string]any{
	"SERVER_PORT":          "8080",
	"LOG_LEVEL":            "info",
	"POSTGRES_URL":         "",
	"REDIS_ADDR":           "localhost:6379",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"SQLITE_PATH":          "filmdata.db",
	"TMDB_API_KEY":         "",
	"TMDB_BASE_URL":        "https://api.themoviedb.org/3",
	"FETCH_MAX_ATTEMPTS":   30,
	"FETCH_BACKOFF":        "1us",
	"FETCH_MAX_BACKOFF":    "2s",
	"FETCH_TIMEOUT":        "30s",
	"FETCH_MODE":           FetchModeHTTP,
	"FETCH_USER_AGENT":     "",
	"FETCH_PROXY":          "",
	"PAGE_CACHE_TTL":       "6h",
	"JOB_TTL":              "48h",
	"WORKER_POLL_INTERVAL": "2s",
	"OTLP_ENDPOINT":        "",
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing file is fine; the environment alone is enough.
	_ = v.ReadInConfig()

	// AutomaticEnv only reaches keys viper already knows about.
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.FetchMaxAttempts < 1 {
		return errors.New("FETCH_MAX_ATTEMPTS must be at least 1")
	}
	if c.FetchMode != FetchModeHTTP && c.FetchMode != FetchModeBrowser {
		return errors.New("FETCH_MODE must be http or browser")
	}
	return nil
}

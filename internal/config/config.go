// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort                = 8080
	defaultServerHost                = "0.0.0.0"
	defaultReadTimeout               = 30 * time.Second
	defaultWriteTimeout              = 30 * time.Second
	defaultDatabasePath              = "./data/youreview.db"
	defaultDatabaseConnectionTimeout = 5 * time.Second
	defaultLogLevel                  = "info"
	defaultLogPretty                 = false
	defaultSearchTimeout             = 8 * time.Second
	defaultSearchCacheTTL            = 60 * time.Second
	defaultSearchCacheSize           = 1000
	defaultSearchMaxRetries          = 2
	envPrefix                        = "YOUREVIEW"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Auth      AuthConfig
	Search    SearchConfig
	Providers ProvidersConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Path              string
	ConnectionTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// AuthConfig holds token verification configuration. Identity is issued by an
// external provider; this service only verifies the shared-secret signature.
type AuthConfig struct {
	Secret string
}

// SearchConfig holds catalog search tuning knobs
type SearchConfig struct {
	Timeout    time.Duration
	CacheTTL   time.Duration
	CacheSize  int
	MaxRetries int
}

// ProvidersConfig holds third-party catalog credentials. Any credential may be
// empty, which disables the corresponding provider at runtime.
type ProvidersConfig struct {
	TMDBToken           string
	YouTubeKey          string
	SpotifyClientID     string
	SpotifyClientSecret string
	GoogleBooksKey      string
	NaverClientID       string
	NaverClientSecret   string
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	// .env files are optional in production and CI where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/youreview")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)

	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("database.connectiontimeout", defaultDatabaseConnectionTimeout)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	v.SetDefault("auth.secret", "")

	v.SetDefault("search.timeout", defaultSearchTimeout)
	v.SetDefault("search.cachettl", defaultSearchCacheTTL)
	v.SetDefault("search.cachesize", defaultSearchCacheSize)
	v.SetDefault("search.maxretries", defaultSearchMaxRetries)

	v.SetDefault("providers.tmdbtoken", "")
	v.SetDefault("providers.youtubekey", "")
	v.SetDefault("providers.spotifyclientid", "")
	v.SetDefault("providers.spotifyclientsecret", "")
	v.SetDefault("providers.googlebookskey", "")
	v.SetDefault("providers.naverclientid", "")
	v.SetDefault("providers.naverclientsecret", "")
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be > 0)", c.Server.WriteTimeout)
	}
	if c.Database.ConnectionTimeout <= 0 {
		return fmt.Errorf("invalid database connection timeout: %v (must be > 0)", c.Database.ConnectionTimeout)
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required (set %s_AUTH_SECRET)", envPrefix)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	if c.Search.Timeout <= 0 {
		return fmt.Errorf("invalid search timeout: %v (must be > 0)", c.Search.Timeout)
	}
	if c.Search.CacheTTL <= 0 {
		return fmt.Errorf("invalid search cache TTL: %v (must be > 0)", c.Search.CacheTTL)
	}
	if c.Search.CacheSize <= 0 {
		return fmt.Errorf("invalid search cache size: %d (must be > 0)", c.Search.CacheSize)
	}
	if c.Search.MaxRetries < 0 {
		return fmt.Errorf("invalid search max retries: %d (must be >= 0)", c.Search.MaxRetries)
	}

	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

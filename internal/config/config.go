// Package config - Application configuration management.
//
// Uses Viper for:
// - Loading from YAML files
// - Environment variables
// - Default values
//
// Priority order (highest to lowest):
// 1. Environment variables
// 2. Config file
// 3. Default values
//
// A local .env file is loaded first (godotenv) so development setups can
// keep secrets out of the shell profile.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ============================================
// Main Configuration
// ============================================

// Config is the root configuration of the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Storage   StorageConfig   `mapstructure:"storage"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ============================================
// App Configuration
// ============================================

// AppConfig identifies the running application.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"` // dev, prod, test
}

// IsDev reports whether the environment is dev.
func (c *AppConfig) IsDev() bool { return c.Environment == "dev" }

// IsProd reports whether the environment is prod.
func (c *AppConfig) IsProd() bool { return c.Environment == "prod" }

// IsTest reports whether the environment is test.
func (c *AppConfig) IsTest() bool { return c.Environment == "test" }

// ============================================
// Server Configuration
// ============================================

// ServerConfig - HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ============================================
// Database Configuration
// ============================================

// DatabaseConfig - PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConnections  int32         `mapstructure:"max_connections"`
	MinConnections  int32         `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`

	// DropTables gates schema teardown on shutdown. Destructive; only
	// honored outside prod.
	DropTables bool `mapstructure:"drop_tables"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// ============================================
// Auth Configuration
// ============================================

// AuthConfig - authentication settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	JWTIssuer string `mapstructure:"jwt_issuer"`
	// TokenHeader is the request header carrying the bearer credential.
	TokenHeader string `mapstructure:"token_header"`
	// AccessTokenExpiry applies to ordinary logins.
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"`
	// StayLoggedInExpiry applies when the client asks to stay signed in.
	StayLoggedInExpiry time.Duration `mapstructure:"stay_logged_in_expiry"`
	// PasswordHistoryLimit caps how many old hashes the reuse check scans.
	PasswordHistoryLimit int `mapstructure:"password_history_limit"`
}

// ============================================
// Policy Configuration
// ============================================

// PolicyConfig holds the regex policies applied by the auth service at
// registration and password change.
type PolicyConfig struct {
	EmailRegex    string `mapstructure:"email_regex"`
	UsernameRegex string `mapstructure:"username_regex"`
	PasswordRegex string `mapstructure:"password_regex"`
}

// ============================================
// Storage Configuration
// ============================================

// StorageConfig - object storage for uploaded cover images.
type StorageConfig struct {
	Root   string `mapstructure:"root"`
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
}

// ============================================
// CORS Configuration
// ============================================

// CORSConfig - CORS settings.
type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	ExposedHeaders   []string      `mapstructure:"exposed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

// ============================================
// Rate Limit Configuration
// ============================================

// RateLimitConfig - request rate limiting.
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// ============================================
// Log Configuration
// ============================================

// LogConfig - logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// ============================================
// Configuration Loading
// ============================================

const envPrefix = "MANGANOVA"

// Load reads configuration from an optional YAML file and the environment.
//
// configPath - directory holding the config file (e.g. "configs")
// configName - file name without extension (e.g. "config")
func Load(configPath, configName string) (*Config, error) {
	// Best effort; a missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file - defaults and env vars only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv reads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations the application cannot run with.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "dev", "prod", "test":
	default:
		return fmt.Errorf("invalid environment %q (want dev, prod or test)", c.App.Environment)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	if c.App.IsProd() {
		if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("jwt secret must be set in prod")
		}
		if c.Database.DropTables {
			return fmt.Errorf("database.drop_tables must not be enabled in prod")
		}
	}

	if c.Auth.PasswordHistoryLimit < 0 {
		return fmt.Errorf("password history limit must not be negative")
	}

	return nil
}

const defaultJWTSecret = "change-me-in-production"

// setDefaults installs default values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Manga Nova API")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "dev")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "manganova")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.min_connections", 5)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")
	v.SetDefault("database.drop_tables", false)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", defaultJWTSecret)
	v.SetDefault("auth.jwt_issuer", "manganova")
	v.SetDefault("auth.token_header", "Authorization")
	v.SetDefault("auth.access_token_expiry", "24h")
	v.SetDefault("auth.stay_logged_in_expiry", "720h") // 30 days
	v.SetDefault("auth.password_history_limit", 10)

	// Policy defaults
	v.SetDefault("policy.email_regex", `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	v.SetDefault("policy.username_regex", `^[a-zA-Z0-9_]{3,32}$`)
	v.SetDefault("policy.password_regex", `^[\S]{8,128}$`)

	// Storage defaults
	v.SetDefault("storage.root", "./data")
	v.SetDefault("storage.bucket", "manganova-media")
	v.SetDefault("storage.region", "sa-east-1")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "Authorization", "Use-Language", "X-Request-ID"})
	v.SetDefault("cors.exposed_headers", []string{"X-Request-ID", "Use-Language"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", "12h")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 100)
	v.SetDefault("rate_limit.cleanup_interval", "1m")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// bindEnvVars binds the short env var names used in deployment.
func bindEnvVars(v *viper.Viper) {
	// Database
	_ = v.BindEnv("database.host", "MANGANOVA_DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "MANGANOVA_DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "MANGANOVA_DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "MANGANOVA_DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("database.database", "MANGANOVA_DATABASE_DATABASE", "DB_NAME")
	_ = v.BindEnv("database.drop_tables", "MANGANOVA_DATABASE_DROP_TABLES", "DB_DROP_TABLES")

	// Auth
	_ = v.BindEnv("auth.jwt_secret", "MANGANOVA_AUTH_JWT_SECRET", "JWT_SECRET")

	// Server
	_ = v.BindEnv("server.port", "MANGANOVA_SERVER_PORT", "PORT")

	// App
	_ = v.BindEnv("app.environment", "MANGANOVA_APP_ENVIRONMENT", "ENVIRONMENT", "ENV")

	// Storage
	_ = v.BindEnv("storage.bucket", "MANGANOVA_STORAGE_BUCKET", "AWS_BUCKET_NAME")
	_ = v.BindEnv("storage.region", "MANGANOVA_STORAGE_REGION", "AWS_REGION")
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable outside production
const DefaultJWTSecret = "change-this-in-production-super-secret-key"

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Keys       KeysConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Storage    StorageConfig
	Uploads    UploadsConfig
	Statistics StatisticsConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // sqlite or postgres
	SQLitePath      string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
	AutoMigrate     bool
	SlowQuery       time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                string
	AccessTokenExpiration time.Duration
	// RefreshThreshold is the remaining lifetime under which a new token
	// is issued on an authenticated request
	RefreshThreshold time.Duration
}

// KeysConfig locates the RSA key pair used for password transport
type KeysConfig struct {
	Dir string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	MaxBodySize           int64
	AuthRateLimitEnabled  bool
	AuthRateLimitRequests int64
	AuthRateLimitWindow   time.Duration
	CORSAllowOrigins      []string
	CORSAllowMethods      []string
	CORSAllowHeaders      []string
	TrustedProxies        []string
}

// StorageConfig holds the S3-compatible object store used for sale images
type StorageConfig struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	Domain       string // public URL prefix of stored objects
	BasePath     string // key prefix inside the bucket
}

// Configured reports whether uploads can be stored
func (s StorageConfig) Configured() bool {
	return s.Bucket != "" && s.Domain != "" && s.AccessKey != "" && s.SecretKey != ""
}

// UploadsConfig bounds uploaded images
type UploadsConfig struct {
	MaxSizeBytes int
}

// StatisticsConfig controls caching of statistics results
type StatisticsConfig struct {
	CacheTTL time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with FM_ prefix (e.g., FM_DATABASE_DRIVER),
// including those read from an optional .env file
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("FM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			SQLitePath:      v.GetString("database.sqlite_path"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
			SlowQuery:       v.GetDuration("database.slow_query_threshold"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
			RefreshThreshold:      v.GetDuration("jwt.refresh_threshold"),
		},
		Keys: KeysConfig{
			Dir: v.GetString("keys.dir"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:           v.GetDuration("http.read_timeout"),
			WriteTimeout:          v.GetDuration("http.write_timeout"),
			IdleTimeout:           v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
			MaxBodySize:           v.GetInt64("http.max_body_size"),
			AuthRateLimitEnabled:  v.GetBool("http.auth_rate_limit_enabled"),
			AuthRateLimitRequests: v.GetInt64("http.auth_rate_limit_requests"),
			AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
			CORSAllowOrigins:      v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:      v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:      v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
		},
		Storage: StorageConfig{
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			Bucket:       v.GetString("storage.bucket"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
			Domain:       v.GetString("storage.domain"),
			BasePath:     v.GetString("storage.base_path"),
		},
		Uploads: UploadsConfig{
			MaxSizeBytes: v.GetInt("uploads.max_size_bytes"),
		},
		Statistics: StatisticsConfig{
			CacheTTL: v.GetDuration("statistics.cache_ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers the built-in values, which sit below config.toml
// and the environment.
func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"app.name": "financial-manager",
		"app.env":  "development",
		"app.port": "8000",

		"database.driver":               "sqlite",
		"database.sqlite_path":          "financial_manager.db",
		"database.host":                 "localhost",
		"database.port":                 5432,
		"database.user":                 "postgres",
		"database.dbname":               "financial_manager",
		"database.sslmode":              "disable",
		"database.conn_max_lifetime":    60,
		"database.conn_max_idle_time":   30,
		"database.auto_migrate":         true,
		"database.slow_query_threshold": 200 * time.Millisecond,

		"redis.host": "localhost",
		"redis.port": 6379,

		"jwt.secret":                  DefaultJWTSecret,
		"jwt.access_token_expiration": time.Hour,
		"jwt.refresh_threshold":       10 * time.Minute,

		"keys.dir": "keys",

		"log.level":  "info",
		"log.format": "console",
		"log.output": "stdout",

		"http.read_timeout":             15 * time.Second,
		"http.write_timeout":            30 * time.Second,
		"http.idle_timeout":             time.Minute,
		"http.max_header_bytes":         1 << 20,
		"http.max_body_size":            20 << 20, // room for raw photos before recompression
		"http.auth_rate_limit_enabled":  true,
		"http.auth_rate_limit_requests": 10,
		"http.auth_rate_limit_window":   time.Minute,
		"http.cors_allow_methods":       []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		"http.cors_allow_headers":       []string{"Content-Type", "Authorization", "X-Request-ID"},

		"storage.region":         "us-east-1",
		"storage.use_path_style": true,

		"uploads.max_size_bytes": 1 << 20,
		"statistics.cache_ttl":   time.Minute,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// applyDefaults fills the pool sizes, which depend on the driver.
// SQLite allows a single writer, so it gets one connection.
func applyDefaults(cfg *Config) {
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
		if cfg.Database.Driver == "sqlite" {
			cfg.Database.MaxOpenConns = 1
		}
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = min(5, cfg.Database.MaxOpenConns)
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.JWT.AccessTokenExpiration <= 0 {
		return fmt.Errorf("jwt.access_token_expiration must be positive")
	}
	if c.JWT.RefreshThreshold < 0 || c.JWT.RefreshThreshold >= c.JWT.AccessTokenExpiration {
		return fmt.Errorf("jwt.refresh_threshold (%s) must be below jwt.access_token_expiration (%s)",
			c.JWT.RefreshThreshold, c.JWT.AccessTokenExpiration)
	}
	if c.Uploads.MaxSizeBytes <= 0 {
		return fmt.Errorf("uploads.max_size_bytes must be positive")
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == DefaultJWTSecret {
			return fmt.Errorf("jwt.secret must be set in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Driver == "postgres" {
			if c.Database.Password == "" {
				return fmt.Errorf("database.password is required in production")
			}
			if c.Database.SSLMode == "disable" {
				return fmt.Errorf("database.sslmode cannot be 'disable' in production")
			}
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// IsProduction reports whether the app runs in production
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// DSN returns the postgres connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// MigrateURL returns the golang-migrate database URL for the configured driver
func (d *DatabaseConfig) MigrateURL() string {
	if d.Driver == "sqlite" {
		return "sqlite3://" + d.SQLitePath
	}
	return d.DSN()
}

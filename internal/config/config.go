package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tutordesk/tutordesk/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Storage    StorageConfig    `validate:"required"`
	Postgres   PostgresConfig
	Supabase   SupabaseConfig
	S3         S3Config
	Sentry     SentryConfig
	Cache      CacheConfig
	Invoice    InvoiceConfig
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address         string        `validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// StorageConfig picks the repository implementation
type StorageConfig struct {
	Backend types.StorageBackend `validate:"required,oneof=postgres supabase"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	ConnectRetries         uint64 `mapstructure:"connect_retries"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
}

type S3Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	Region         string        `mapstructure:"region"`
	DocumentBucket string        `mapstructure:"document_bucket"`
	KeyPrefix      string        `mapstructure:"key_prefix"`
	PresignExpiry  time.Duration `mapstructure:"presign_expiry"`
	UsePathStyle   bool          `mapstructure:"use_path_style"`
	Endpoint       string        `mapstructure:"endpoint"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultTTL      time.Duration `mapstructure:"default_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// InvoiceConfig controls invoice numbering and exported documents
type InvoiceConfig struct {
	NumberPrefix   string `mapstructure:"number_prefix"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	BusinessName   string `mapstructure:"business_name"`
	FooterNote     string `mapstructure:"footer_note"`
	// DateLayout is the Go layout used for dates printed on documents
	DateLayout string `mapstructure:"date_layout"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tutordesk")

	v.SetEnvPrefix("TUTORDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override it without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("storage.backend", types.StorageBackendPostgres)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "tutordesk")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("postgres.connect_retries", 5)
	v.SetDefault("postgres.auto_migrate", false)

	v.SetDefault("supabase.base_url", "")
	v.SetDefault("supabase.service_key", "")

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.document_bucket", "")
	v.SetDefault("s3.key_prefix", "invoices")
	v.SetDefault("s3.presign_expiry", 30*time.Minute)
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "local")
	v.SetDefault("sentry.sample_rate", 1.0)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.default_ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("invoice.number_prefix", types.DefaultInvoiceNumberPrefix)
	v.SetDefault("invoice.currency_symbol", "$")
	v.SetDefault("invoice.business_name", "")
	v.SetDefault("invoice.footer_note", "Thank you for your business!")
	v.SetDefault("invoice.date_layout", "02/01/2006")

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case types.StorageBackendSupabase:
		if c.Supabase.BaseURL == "" || c.Supabase.ServiceKey == "" {
			return errors.New("supabase.base_url and supabase.service_key are required for the supabase storage backend")
		}
	case types.StorageBackendPostgres:
		if c.Postgres.Host == "" || c.Postgres.DBName == "" {
			return errors.New("postgres.host and postgres.dbname are required for the postgres storage backend")
		}
	}

	if c.S3.Enabled && c.S3.DocumentBucket == "" {
		return errors.New("s3.document_bucket is required when s3 is enabled")
	}

	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts, tests or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080", ShutdownTimeout: 10 * time.Second},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Storage:    StorageConfig{Backend: types.StorageBackendPostgres},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "tutordesk",
			SSLMode: "disable",
		},
		Cache: CacheConfig{
			Enabled:         true,
			DefaultTTL:      5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Invoice: InvoiceConfig{
			NumberPrefix:   types.DefaultInvoiceNumberPrefix,
			CurrencySymbol: "$",
			FooterNote:     "Thank you for your business!",
			DateLayout:     "02/01/2006",
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// GetURL returns the DSN in URL form, as expected by the migration driver
func (c PostgresConfig) GetURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

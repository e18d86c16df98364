package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig   `env:",prefix=DB_"`
	JWT        JWTConfig        `env:",prefix=JWT_"`
	Mail       MailConfig       `env:",prefix=MAIL_"`
	SMTP       SMTPConfig       `env:",prefix=SMTP_"`
	Campaign   CampaignConfig   `env:",prefix=CAMPAIGN_"`
	Attendance AttendanceConfig `env:",prefix=ATTENDANCE_"`
	Slack      SlackConfig      `env:",prefix=SLACK_"`
	CORS       CORSConfig       `env:",prefix=CORS_"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string `env:"APP_NAME,default=workhub"`
	Port     int    `env:"APP_PORT,default=8080"`
	Env      string `env:"APP_ENV,default=development"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
	// PublicBaseURL is the externally reachable origin used in tracking links and asset URLs.
	PublicBaseURL string `env:"PUBLIC_BASE_URL,default=http://localhost:8080"`
}

type DatabaseConfig struct {
	Host        string `env:"HOST,default=localhost"`
	Port        int    `env:"PORT,default=5432"`
	User        string `env:"USER,default=postgres"`
	Password    string `env:"PASSWORD"`
	Name        string `env:"NAME,default=workhub"`
	SSLMode     string `env:"SSL_MODE,default=disable"`
	MaxConns    int32  `env:"MAX_CONNS,default=25"`
	MinConns    int32  `env:"MIN_CONNS,default=5"`
	AutoMigrate bool   `env:"AUTO_MIGRATE,default=false"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `env:"SECRET_KEY"`
	AccessExpiration time.Duration `env:"ACCESS_EXPIRATION_TIME,default=1h"`
}

// MailConfig selects the outbound mail transport.
type MailConfig struct {
	Driver           string `env:"DRIVER"` // ses, smtp or empty for none
	SESRegion        string `env:"SES_REGION"`
	DefaultFromEmail string `env:"FROM_EMAIL"`
	DefaultFromName  string `env:"FROM_NAME,default=Workhub"`
}

type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT,default=587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

type CampaignConfig struct {
	SendConcurrency   int           `env:"SEND_CONCURRENCY,default=10"`
	SendRatePerSecond float64       `env:"SEND_RATE_PER_SECOND,default=0"`
	SendMaxAttempts   int           `env:"SEND_MAX_ATTEMPTS,default=1"`
	SendRetryBackoff  time.Duration `env:"SEND_RETRY_BACKOFF,default=2s"`
	SendStaleAfter    time.Duration `env:"SEND_STALE_AFTER,default=1h"`
	ScheduleInterval  time.Duration `env:"SCHEDULE_INTERVAL,default=1m"`
}

type AttendanceConfig struct {
	Timezone string `env:"TIMEZONE,default=UTC"`
}

type SlackConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	CampaignChannel string `env:"CAMPAIGN_CHANNEL"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
}

// LoadDotEnv loads .env into the process environment when the file exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith processes configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}

	base, err := url.Parse(c.App.PublicBaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return fmt.Errorf("PUBLIC_BASE_URL must be an absolute http(s) URL")
	}

	switch c.Mail.Driver {
	case "", "ses", "smtp":
	default:
		return fmt.Errorf("MAIL_DRIVER must be one of ses, smtp or empty, got %q", c.Mail.Driver)
	}

	if c.Campaign.SendConcurrency < 1 {
		return fmt.Errorf("CAMPAIGN_SEND_CONCURRENCY must be at least 1")
	}
	if c.Campaign.SendMaxAttempts < 1 {
		return fmt.Errorf("CAMPAIGN_SEND_MAX_ATTEMPTS must be at least 1")
	}
	if c.Campaign.SendRatePerSecond < 0 {
		return fmt.Errorf("CAMPAIGN_SEND_RATE_PER_SECOND must not be negative")
	}
	if c.Campaign.SendStaleAfter < 0 {
		return fmt.Errorf("CAMPAIGN_SEND_STALE_AFTER must not be negative")
	}
	if c.Campaign.ScheduleInterval <= 0 {
		return fmt.Errorf("CAMPAIGN_SCHEDULE_INTERVAL must be positive")
	}

	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("ATTENDANCE_TIMEZONE is invalid: %w", err)
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// PublicBaseURL returns the public base URL without a trailing slash.
func (c *Config) PublicBaseURL() string {
	return strings.TrimRight(c.App.PublicBaseURL, "/")
}

// Location returns the time zone attendance dates are computed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Attendance.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ServerAddr returns the listen address for the HTTP server.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

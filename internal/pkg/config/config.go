package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (bot token, DB connection, admin id), secrets
// - default: Values common across all environments (timezone, cooldown, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Log      LogConfig
	Telegram TelegramConfig
	Bot      BotConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Moscow"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	Format         string `envconfig:"LOG_FORMAT" default:"json"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Moscow"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

type TelegramConfig struct {
	Token          string        `envconfig:"YOUR_BOT_TOKEN" required:"true"`
	Mode           string        `envconfig:"TELEGRAM_MODE" default:"polling"`
	PollTimeout    int           `envconfig:"TELEGRAM_POLL_TIMEOUT" default:"60"`
	WebhookURL     string        `envconfig:"TELEGRAM_WEBHOOK_URL"`
	WebhookSecret  string        `envconfig:"TELEGRAM_WEBHOOK_SECRET"`
	RequestTimeout time.Duration `envconfig:"TELEGRAM_REQUEST_TIMEOUT" default:"30s"`
	Debug          bool          `envconfig:"TELEGRAM_DEBUG" default:"false"`
}

type BotConfig struct {
	AdminUserID     int64         `envconfig:"ADMIN_USER_ID" required:"true"`
	TokenSecret     string        `envconfig:"TOKEN_SECRET" required:"true"`
	CooldownWindow  time.Duration `envconfig:"COOLDOWN_WINDOW" default:"72h"`
	TimeZone        string        `envconfig:"BOT_TIMEZONE" default:"Europe/Moscow"`
	ContinuationTTL time.Duration `envconfig:"CONTINUATION_TTL" default:"720h"`
	PurgeInterval   time.Duration `envconfig:"CONTINUATION_PURGE_INTERVAL" default:"1h"`
}

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves BotConfig.TimeZone, falling back to UTC for unknown zones.
func (c *BotConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *TelegramConfig) validate() error {
	switch c.Mode {
	case ModePolling:
		return nil
	case ModeWebhook:
		if c.WebhookSecret == "" {
			return fmt.Errorf("TELEGRAM_WEBHOOK_SECRET is required in webhook mode")
		}
		return nil
	default:
		return fmt.Errorf("invalid TELEGRAM_MODE %q", c.Mode)
	}
}

// validate rejects durations that would stall or crash the purge job.
func (c *BotConfig) validate() error {
	if c.PurgeInterval <= 0 {
		return fmt.Errorf("CONTINUATION_PURGE_INTERVAL must be positive, got %s", c.PurgeInterval)
	}
	if c.ContinuationTTL <= 0 {
		return fmt.Errorf("CONTINUATION_TTL must be positive, got %s", c.ContinuationTTL)
	}
	if c.CooldownWindow < 0 {
		return fmt.Errorf("COOLDOWN_WINDOW must not be negative, got %s", c.CooldownWindow)
	}
	return nil
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Telegram.validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.Bot.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			Format:         "text",
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Telegram: TelegramConfig{
			Token:          "test-token",
			Mode:           ModeWebhook,
			PollTimeout:    1,
			WebhookSecret:  "test-webhook-secret",
			RequestTimeout: 5 * time.Second,
		},
		Bot: BotConfig{
			AdminUserID:     1000,
			TokenSecret:     "test-token-secret",
			CooldownWindow:  72 * time.Hour,
			TimeZone:        "UTC",
			ContinuationTTL: 720 * time.Hour,
			PurgeInterval:   time.Hour,
		},
	}
}

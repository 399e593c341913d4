package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the admin backend reads from the environment (or .env).
type Config struct {
	AppPort        string `mapstructure:"APP_PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RedisURI      string `mapstructure:"REDIS_URI"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTTTL            time.Duration `mapstructure:"JWT_TTL"`
	AdminUsername     string        `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`

	MailProvider    string        `mapstructure:"MAIL_PROVIDER"`
	SMTPHost        string        `mapstructure:"SMTP_HOST"`
	SMTPPort        int           `mapstructure:"SMTP_PORT"`
	SMTPUser        string        `mapstructure:"SMTP_USER"`
	SMTPPass        string        `mapstructure:"SMTP_PASS"`
	SendGridAPIKey  string        `mapstructure:"SENDGRID_API_KEY"`
	MailFromAddress string        `mapstructure:"MAIL_FROM_ADDRESS"`
	MailFromName    string        `mapstructure:"MAIL_FROM_NAME"`
	MailTimeout     time.Duration `mapstructure:"MAIL_TIMEOUT"`
	MailRetries     int           `mapstructure:"MAIL_RETRIES"`

	EventName       string        `mapstructure:"EVENT_NAME"`
	QRSize          int           `mapstructure:"QR_SIZE"`
	TicketAttachPDF bool          `mapstructure:"TICKET_ATTACH_PDF"`
	PDFTimeout      time.Duration `mapstructure:"PDF_TIMEOUT"`

	DiscordBotToken  string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID string `mapstructure:"DISCORD_CHANNEL_ID"`

	// empty disables the reconciliation job
	SeatReconcileSpec string        `mapstructure:"SEAT_RECONCILE_SPEC"`
	SeatReleaseGrace  time.Duration `mapstructure:"SEAT_RELEASE_GRACE"`
}

var keys = []string{
	"APP_PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	"MONGO_URI", "MONGO_DATABASE",
	"REDIS_URI", "REDIS_PASSWORD",
	"JWT_SECRET", "JWT_TTL", "ADMIN_USERNAME", "ADMIN_PASSWORD_HASH",
	"MAIL_PROVIDER", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SENDGRID_API_KEY",
	"MAIL_FROM_ADDRESS", "MAIL_FROM_NAME", "MAIL_TIMEOUT", "MAIL_RETRIES",
	"EVENT_NAME", "QR_SIZE", "TICKET_ATTACH_PDF", "PDF_TIMEOUT",
	"DISCORD_BOT_TOKEN", "DISCORD_CHANNEL_ID",
	"SEAT_RECONCILE_SPEC", "SEAT_RELEASE_GRACE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8888")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("MONGO_DATABASE", "CelestiaDB")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("MAIL_PROVIDER", "smtp")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM_NAME", "Celestia 2024")
	v.SetDefault("MAIL_TIMEOUT", "15s")
	v.SetDefault("MAIL_RETRIES", 1)
	v.SetDefault("EVENT_NAME", "Celestia 2024")
	v.SetDefault("QR_SIZE", 256)
	v.SetDefault("TICKET_ATTACH_PDF", false)
	v.SetDefault("PDF_TIMEOUT", "60s")
	v.SetDefault("SEAT_RECONCILE_SPEC", "")
	v.SetDefault("SEAT_RELEASE_GRACE", "30m")
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	v := viper.New()
	setDefaults(v)
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every required key that is missing.
func (c *Config) Validate() error {
	missing := []string{}
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}

	switch strings.ToLower(c.MailProvider) {
	case "smtp", "sendgrid":
	default:
		return fmt.Errorf("unsupported MAIL_PROVIDER %q", c.MailProvider)
	}
	if c.MailRetries < 0 {
		return fmt.Errorf("MAIL_RETRIES must not be negative")
	}
	return nil
}

// RedisEnabled is true when the job queue and token blacklist can be used.
func (c *Config) RedisEnabled() bool {
	return c.RedisURI != ""
}

// DiscordEnabled is true when organizer feed messages should be posted.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordBotToken != "" && c.DiscordChannelID != ""
}

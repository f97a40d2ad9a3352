// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Mail transports accepted in MAIL_TRANSPORT.
const (
	TransportSMTP    = "smtp"
	TransportWebhook = "webhook"
	TransportLog     = "log"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]: the inquiry form may be hosted anywhere.
	CORSOrigins []string

	// APIEndpoint is the URL the browser form posts to. It is handed to the
	// front-end through /config.js. Defaults to "/submissions".
	APIEndpoint string

	// MaxBodyBytes caps the size of a submission request body. Defaults to 64 KiB.
	MaxBodyBytes int64

	// RunMigrations applies pending goose migrations at startup. Defaults to true.
	RunMigrations bool

	Mail MailConfig
}

// MailConfig configures outbound notifications.
type MailConfig struct {
	// From is the sender address on every email. Required.
	From string

	// Operator receives the business notification for every submission. Required.
	Operator string

	// Transport selects the Sender: smtp, webhook or log. Defaults to "log".
	Transport string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// WebhookURL is the HTTP mail relay used by the webhook transport.
	WebhookURL string

	// Timeout bounds a single send. Defaults to 10s.
	Timeout time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or naming
// the first variable whose value cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
		APIEndpoint: getEnv("API_ENDPOINT", "/submissions"),
		Mail: MailConfig{
			Transport:    strings.ToLower(getEnv("MAIL_TRANSPORT", TransportLog)),
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
			WebhookURL:   os.Getenv("MAIL_WEBHOOK_URL"),
		},
	}

	var err error
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 64<<10); err != nil {
		return Config{}, err
	}
	if cfg.RunMigrations, err = getBool("RUN_MIGRATIONS", true); err != nil {
		return Config{}, err
	}
	port, err := getInt64("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}
	cfg.Mail.SMTPPort = int(port)
	if cfg.Mail.Timeout, err = getDuration("MAIL_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.Mail.From = os.Getenv("FROM_EMAIL_ADDRESS")
	if cfg.Mail.From == "" {
		missing = append(missing, "FROM_EMAIL_ADDRESS")
	}
	cfg.Mail.Operator = os.Getenv("TO_EMAIL_ADDRESS")
	if cfg.Mail.Operator == "" {
		missing = append(missing, "TO_EMAIL_ADDRESS")
	}

	switch cfg.Mail.Transport {
	case TransportSMTP:
		if cfg.Mail.SMTPHost == "" {
			missing = append(missing, "SMTP_HOST")
		}
	case TransportWebhook:
		if cfg.Mail.WebhookURL == "" {
			missing = append(missing, "MAIL_WEBHOOK_URL")
		}
	case TransportLog:
	default:
		return Config{}, fmt.Errorf("MAIL_TRANSPORT: unknown transport %q (want smtp, webhook or log)", cfg.Mail.Transport)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: must be a boolean, got %q", key, v)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

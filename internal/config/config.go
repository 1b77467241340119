package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Persisted state.
	LogFile     string // notification log document
	CapturePath string // latest camera capture

	// Robot camera endpoints. Empty disables the corresponding operation.
	SnapshotURL     string
	StreamURL       string
	SnapshotTimeout time.Duration

	// Email channel. All three of Sender/Password/Receiver are required for
	// the channel to be considered configured.
	SMTPHost      string
	SMTPPort      string
	EmailSender   string
	EmailPassword string
	EmailReceiver string

	// Messaging channel (SNS publish to a fixed recipient).
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	MessageFrom    string // sender ID shown to the recipient
	MessageTo      string // recipient phone number

	// Optional capture archive. Empty bucket disables archiving.
	SnapshotArchiveBucket string

	// Sessions.
	SessionSecret string
	SessionTTL    time.Duration

	// Fixed login table.
	AdminUser  string
	AdminPass  string
	NormalUser string
	NormalPass string

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("PORT", "5000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		LogFile:     getEnv("LOG_FILE", "data/notifications_log.json"),
		CapturePath: getEnv("CAPTURE_PATH", "data/latest_photo.jpg"),

		SnapshotURL:     getEnv("SNAPSHOT_URL", ""),
		StreamURL:       getEnv("STREAM_INTERNAL", ""),
		SnapshotTimeout: time.Duration(getEnvInt("SNAPSHOT_TIMEOUT_SECONDS", 8)) * time.Second,

		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "465"),
		EmailSender:   getEnv("EMAIL_SENDER", ""),
		EmailPassword: getEnv("EMAIL_PASS", ""),
		EmailReceiver: getEnv("EMAIL_RECEIVER", ""),

		AWSRegion:      getEnv("SNS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MessageFrom:    getEnv("MESSAGE_FROM", ""),
		MessageTo:      getEnv("MESSAGE_TO", ""),

		SnapshotArchiveBucket: getEnv("SNAPSHOT_ARCHIVE_BUCKET", ""),

		SessionSecret: getEnv("SESSION_SECRET", "CHANGE_ME"),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,

		AdminUser:  getEnv("ADMIN_USER", "admin"),
		AdminPass:  getEnv("ADMIN_PASS", ""),
		NormalUser: getEnv("NORMAL_USER", "user"),
		NormalPass: getEnv("NORMAL_PASS", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

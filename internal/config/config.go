package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone           = "Asia/Kolkata"
	DefaultCertificateBaseURL = "https://certificates.smg-portal.com"
)

type Database struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

// DSN is the key/value form accepted by gorm's postgres driver.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL is the pgx5:// form accepted by golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type Config struct {
	Port               string
	AppEnv             string
	Database           Database
	RedisAddr          string
	KafkaBroker        string
	JWTSecret          string
	Location           *time.Location
	CertificateBaseURL string
	GCSBucket          string
	GCSCredentialsFile string
	HandlerTimeout     time.Duration
	OutboxPollInterval time.Duration
	MaxConnectRetries  int
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the process environment. godotenv is expected to have populated
// it from .env beforehand.
func Load() (Config, error) {
	cfg := Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "development"),
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CertificateBaseURL: getEnv("CERTIFICATE_BASE_URL", DefaultCertificateBaseURL),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", DefaultTimezone))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.HandlerTimeout, err = getDuration("HANDLER_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return Config{}, err
	}

	retries, err := strconv.Atoi(getEnv("DB_MAX_RETRIES", "5"))
	if err != nil || retries < 1 {
		return Config{}, fmt.Errorf("invalid DB_MAX_RETRIES %q", os.Getenv("DB_MAX_RETRIES"))
	}
	cfg.MaxConnectRetries = retries

	return cfg, nil
}

// RequireKafka is used by the processes that cannot run without a broker.
func (c Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every knob the storefront reads from the environment.
// Defaults suit local development; only the Postgres credentials are
// genuinely required elsewhere.
type Config struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DB            DBConfig
	MigrationsDir string

	// RedisAddr empty means sessions and catalog caching fall back to
	// in-process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionCookie string
	SessionTTL    time.Duration

	// Razorpay keys empty means the online payment path is disabled.
	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	OrderNotifyEmail string
	DefaultFromEmail string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string

	OrderEventBrokers []string
	OrderEventTopic   string
}

type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN prefers the full connection URL and otherwise composes one from
// the individual parts.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func Load() Config {
	return Config{
		Addr:            getEnv("ADDR", ":8080"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DB: DBConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionCookie: getEnv("SESSION_COOKIE", "storefront_session"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 14*24*time.Hour),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		Currency:          getEnv("CURRENCY", "INR"),

		OrderNotifyEmail: getEnv("ORDER_NOTIFY_EMAIL", ""),
		DefaultFromEmail: getEnv("DEFAULT_FROM_EMAIL", "no-reply@ecommarse.local"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),

		OrderEventBrokers: getEnvList("ORDER_EVENT_BROKERS"),
		OrderEventTopic:   getEnv("ORDER_EVENT_TOPIC", "storefront.orders"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

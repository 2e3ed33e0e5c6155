package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Stripe    StripeConfig
	Booking   BookingConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	Timezone       string
	AllowedOrigins []string
	// TrustProxy makes X-Forwarded-For / X-Real-IP the client address.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy     bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type StripeConfig struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}

type BookingConfig struct {
	// BypassSlotCheck disables conflict detection entirely. Development only.
	BypassSlotCheck    bool
	OrphanTTLMinutes   int
	SweepSchedule      string
	IdempotencyTTLMins int
}

type JWTConfig struct {
	Secret string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// LoadConfig reads .env from the working directory when present and lets
// environment variables override it.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(".env")
}

func LoadConfigFile(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "decor-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STRIPE_CURRENCY", "inr")
	v.SetDefault("STRIPE_SUCCESS_URL", "http://localhost:3000/booking/success")
	v.SetDefault("STRIPE_CANCEL_URL", "http://localhost:3000/booking/cancel")
	v.SetDefault("BOOKING_BYPASS_SLOT_CHECK", false)
	v.SetDefault("BOOKING_ORPHAN_TTL_MINUTES", 30)
	v.SetDefault("BOOKING_SWEEP_SCHEDULE", "@every 5m")
	v.SetDefault("BOOKING_IDEMPOTENCY_TTL_MINUTES", 1440)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			Timezone:       v.GetString("APP_TIMEZONE"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			TrustProxy:     v.GetBool("TRUST_PROXY_HEADERS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Stripe: StripeConfig{
			SecretKey:  v.GetString("STRIPE_SECRET_KEY"),
			Currency:   strings.ToLower(v.GetString("STRIPE_CURRENCY")),
			SuccessURL: v.GetString("STRIPE_SUCCESS_URL"),
			CancelURL:  v.GetString("STRIPE_CANCEL_URL"),
		},
		Booking: BookingConfig{
			BypassSlotCheck:    v.GetBool("BOOKING_BYPASS_SLOT_CHECK"),
			OrphanTTLMinutes:   v.GetInt("BOOKING_ORPHAN_TTL_MINUTES"),
			SweepSchedule:      v.GetString("BOOKING_SWEEP_SCHEDULE"),
			IdempotencyTTLMins: v.GetInt("BOOKING_IDEMPOTENCY_TTL_MINUTES"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Redis   RedisConfig
	Session SessionConfig
	Booking BookingConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

// APIConfig points at the reservation and payment backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type RedisConfig struct {
	URL string
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type BookingConfig struct {
	DaysAhead           int
	ProofMaxBytes       int64
	SimplePaymentAmount float64
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "padel-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("API_USER_AGENT", "padel-booking/1.0")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("SESSION_COOKIE_NAME", "booking_session")
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("BOOKING_DAYS_AHEAD", 7)
	viper.SetDefault("PROOF_MAX_MB", 5)
	viper.SetDefault("SIMPLE_PAYMENT_AMOUNT", 100)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PATH", "/metrics")

	// .env is optional, the environment always wins
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			ShutdownTimeout: time.Duration(viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(viper.GetString("API_BASE_URL"), "/"),
			Timeout:   time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
			UserAgent: viper.GetString("API_USER_AGENT"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		Session: SessionConfig{
			Secret:       viper.GetString("SESSION_SECRET"),
			TTL:          time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
			CookieName:   viper.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: viper.GetBool("SESSION_COOKIE_SECURE"),
		},
		Booking: BookingConfig{
			DaysAhead:           viper.GetInt("BOOKING_DAYS_AHEAD"),
			ProofMaxBytes:       viper.GetInt64("PROOF_MAX_MB") << 20,
			SimplePaymentAmount: viper.GetFloat64("SIMPLE_PAYMENT_AMOUNT"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Path:    viper.GetString("METRICS_PATH"),
		},
	}

	if config.API.BaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}
	if config.Booking.DaysAhead < 1 {
		config.Booking.DaysAhead = 7
	}

	return config, nil
}

package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Booking  BookingConfig
	Google   GoogleConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
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

type AdminConfig struct {
	// TokenHash is the bcrypt hash of the admin bearer token.
	TokenHash string
}

type BookingConfig struct {
	// RequirePayment gates new reservations behind the external payment
	// confirmation webhook: reservations are created pending and confirmed
	// by the finalizer. When false they are confirmed immediately.
	RequirePayment bool
	// RatePerMinute limits public booking requests per client IP.
	RatePerMinute int
	RateBurst     int
}

type GoogleConfig struct {
	// CredentialsFile points at a service-account JSON key. Empty disables
	// outbound calendar sync.
	CredentialsFile string
	CalendarID      string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BOOKING_REQUIRE_PAYMENT", false)
	viper.SetDefault("BOOKING_RATE_PER_MINUTE", 30)
	viper.SetDefault("BOOKING_RATE_BURST", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Admin: AdminConfig{
			TokenHash: viper.GetString("ADMIN_TOKEN_HASH"),
		},
		Booking: BookingConfig{
			RequirePayment: viper.GetBool("BOOKING_REQUIRE_PAYMENT"),
			RatePerMinute:  viper.GetInt("BOOKING_RATE_PER_MINUTE"),
			RateBurst:      viper.GetInt("BOOKING_RATE_BURST"),
		},
		Google: GoogleConfig{
			CredentialsFile: viper.GetString("GOOGLE_CREDENTIALS_FILE"),
			CalendarID:      viper.GetString("GOOGLE_CALENDAR_ID"),
		},
	}

	return config, nil
}

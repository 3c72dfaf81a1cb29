package config

import (
	"os"

	pkgcfg "github.com/codecompiler69/SmartAppointmentBooking/pkg/config"
)

type Config struct {
	ListenAddr      string
	AuthURL         string
	UserURL         string
	AppointmentURL  string
	CatalogURL      string
	NotificationURL string
	LogLevel        string
	JWTSecret       []byte
}

func Load() *Config {
	pkgcfg.LoadDotenv()

	return &Config{
		ListenAddr:      pkgcfg.EnvDefault("GATEWAY_ADDR", ":8080"),
		AuthURL:         pkgcfg.MustNonEmpty(os.Getenv("AUTH_URL"), "AUTH_URL"),
		UserURL:         pkgcfg.MustNonEmpty(os.Getenv("USER_URL"), "USER_URL"),
		AppointmentURL:  pkgcfg.MustNonEmpty(os.Getenv("APPOINTMENT_URL"), "APPOINTMENT_URL"),
		CatalogURL:      pkgcfg.MustNonEmpty(os.Getenv("CATALOG_URL"), "CATALOG_URL"),
		NotificationURL: pkgcfg.MustNonEmpty(os.Getenv("NOTIFICATION_URL"), "NOTIFICATION_URL"),
		LogLevel:        pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		JWTSecret:       pkgcfg.MustNonEmptyBytes([]byte(os.Getenv("JWT_SECRET")), "JWT_SECRET"),
	}
}

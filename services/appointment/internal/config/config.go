package config

import (
	"os"

	pkgcfg "github.com/codecompiler69/SmartAppointmentBooking/pkg/config"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	LogLevel    string
}

func Load() *Config {
	pkgcfg.LoadDotenv()

	return &Config{
		ListenAddr:  pkgcfg.EnvDefault("APPOINTMENT_ADDR", ":8083"),
		DatabaseURL: pkgcfg.MustNonEmpty(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),
	}
}

package config

import (
	"os"

	pkgcfg "github.com/codecompiler69/SmartAppointmentBooking/pkg/config"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	LogLevel    string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func Load() *Config {
	pkgcfg.LoadDotenv()

	return &Config{
		ListenAddr:  pkgcfg.EnvDefault("CATALOG_ADDR", ":8084"),
		DatabaseURL: pkgcfg.MustNonEmpty(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    pkgcfg.EnvDefault("ES_INDEX", "service-offerings"),
	}
}

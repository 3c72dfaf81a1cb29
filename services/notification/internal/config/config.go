package config

import (
	"os"

	pkgcfg "github.com/codecompiler69/SmartAppointmentBooking/pkg/config"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	LogLevel    string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
}

func Load() *Config {
	pkgcfg.LoadDotenv()

	return &Config{
		ListenAddr:  pkgcfg.EnvDefault("NOTIFICATION_ADDR", ":8085"),
		DatabaseURL: pkgcfg.MustNonEmpty(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   pkgcfg.EnvDefault("KAFKA_USER_EVENTS_TOPIC", "user-events"),
		KafkaGroupID: pkgcfg.EnvDefault("KAFKA_GROUP_ID", "notification-service"),
	}
}

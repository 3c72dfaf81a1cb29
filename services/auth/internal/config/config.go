package config

import (
	"os"
	"time"

	pkgcfg "github.com/codecompiler69/SmartAppointmentBooking/pkg/config"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	LogLevel    string

	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	UserServiceURL string

	KafkaBrokers []string
	KafkaTopic   string

	RedisAddr      string
	RateLimit      int
	RateWindowSecs int
}

func Load() *Config {
	pkgcfg.LoadDotenv()

	return &Config{
		ListenAddr:  pkgcfg.EnvDefault("AUTH_ADDR", ":8081"),
		DatabaseURL: pkgcfg.MustNonEmpty(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		JWTSecret:  pkgcfg.MustNonEmptyBytes([]byte(os.Getenv("JWT_SECRET")), "JWT_SECRET"),
		AccessTTL:  time.Duration(pkgcfg.EnvIntDefault("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL: time.Duration(pkgcfg.EnvIntDefault("REFRESH_TOKEN_TTL_HOURS", 7*24)) * time.Hour,

		UserServiceURL: os.Getenv("USER_URL"),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   pkgcfg.EnvDefault("KAFKA_USER_EVENTS_TOPIC", "user-events"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RateLimit:      pkgcfg.EnvIntDefault("RATE_LIMIT", 10),
		RateWindowSecs: pkgcfg.EnvIntDefault("RATE_WINDOW_SECONDS", 60),
	}
}

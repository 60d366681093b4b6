package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every deployment-tunable value. Caps on media size and
// the video extension allow-list vary per deployment; the per-gallery
// item limit is a fixed contract and lives in the media package.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	MediaRoot              string
	MaxImageBytes          int64
	MaxVideoBytes          int64
	AllowedVideoExtensions []string

	RedisAddr     string
	RedisPassword string

	AppBaseURL string

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseDSN: os.Getenv("DATABASE_URL"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 24*time.Hour*7),

		MediaRoot:              getEnv("MEDIA_ROOT", "media"),
		MaxImageBytes:          getEnvInt64("MAX_IMAGE_BYTES", 2*1024*1024),
		MaxVideoBytes:          getEnvInt64("MAX_VIDEO_BYTES", 50*1024*1024),
		AllowedVideoExtensions: getEnvList("ALLOWED_VIDEO_EXTENSIONS", []string{".mp4", ".mov", ".avi", ".mkv"}),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "noreply@galleria.local"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

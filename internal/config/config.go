package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDSN       string
	FrontendDir string
	LogFile     string
	JWTSecret   string

	FetchTimeout  time.Duration
	SweepInterval time.Duration

	// Dispatcher: "log", "email" or "telegram".
	Dispatcher string

	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	AlertFrom   string
	SiteURL     string
	TemplateDir string

	TelegramToken  string
	TelegramChatID int64
}

func Load() Config {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg := Config{
		Port:           env("PORT", "8080"),
		DBDSN:          env("DB_DSN", "pricesmart.db"),
		FrontendDir:    env("FRONTEND_DIR", "./web/frontend"),
		LogFile:        env("LOG_FILE", "./pricesmart.log"),
		JWTSecret:      env("JWT_SECRET", ""),
		FetchTimeout:   duration("FETCH_TIMEOUT", 10*time.Second),
		SweepInterval:  duration("SWEEP_INTERVAL", 30*time.Minute),
		Dispatcher:     env("ALERT_DISPATCHER", "log"),
		SMTPHost:       env("SMTP_HOST", ""),
		SMTPPort:       env("SMTP_PORT", "587"),
		SMTPUser:       env("SMTP_USER", ""),
		SMTPPass:       env("SMTP_PASS", ""),
		AlertFrom:      env("ALERT_FROM", "alerts@pricesmart.local"),
		SiteURL:        env("SITE_URL", "http://localhost:8080"),
		TemplateDir:    env("TEMPLATE_DIR", "./web/templates"),
		TelegramToken:  env("TELEGRAM_TOKEN", ""),
		TelegramChatID: int64v("TELEGRAM_CHAT_ID", 0),
	}

	log.Printf("[config] PORT=%s DB_DSN=%s FRONTEND_DIR=%s DISPATCHER=%s SWEEP=%s FETCH_TIMEOUT=%s",
		cfg.Port, cfg.DBDSN, cfg.FrontendDir, cfg.Dispatcher, cfg.SweepInterval, cfg.FetchTimeout)
	return cfg
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] bad %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func int64v(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("[config] bad %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

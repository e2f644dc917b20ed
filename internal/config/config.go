package config

import (
	"log"
	"os"
)

type Config struct {
	Port    string
	DBDSN   string
	BaseURL string
	LogFile string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = ":memory:" // transient by default; orders do not survive a restart
	}
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "https://puddingheroes.com"
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, DBDSN: dsn, BaseURL: base, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s BASE_URL=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.BaseURL, cfg.LogFile)
	return cfg
}

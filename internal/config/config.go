package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	CacheSize   int
	LogDir      string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	cfg := Config{
		ServerPort:  os.Getenv("SERVER_PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogDir:      os.Getenv("LOG_DIR"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "files.db"
	}

	cfg.CacheSize = 128
	if raw := os.Getenv("CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("invalid CACHE_SIZE %q, using default: %v", raw, err)
		} else {
			cfg.CacheSize = size
		}
	}

	return &cfg, nil
}

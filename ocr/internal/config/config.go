// Package config reads OCR service configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Load pulls in .env if present; the process environment always wins.
func Load() {
	_ = godotenv.Load()
}

// GetEnv returns the value of key, or fallback if unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

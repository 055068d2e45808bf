// Package config reads worker configuration from the environment. An
// optional .env file in the working directory is loaded first so local
// runs do not need exported variables.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load pulls in .env if present. Missing files are not an error; the
// process environment always wins.
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

// GetEnvInt returns the integer value of key, or fallback if unset,
// empty, or not an integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

package config

import (
	"log/slog"
	"os"
)

// JwtKey signs and verifies session tokens. Loaded once at startup.
var JwtKey []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET environment variable is not set")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}

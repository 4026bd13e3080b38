package config

import (
	"crypto/rand"
	"fmt"
	"os"
)

// Config is the console's runtime configuration, read from the environment
// (a .env file is loaded by main in dev).
type Config struct {
	BackendURL    string // base URL of the shop backend, e.g. https://sole.onrender.com
	ListenAddr    string
	CookieSecret  []byte // signs the flash cookie
	SecureCookies bool
}

func FromEnv() (Config, error) {
	backend := os.Getenv("SOLE_BACKEND_URL")
	if backend == "" {
		return Config{}, fmt.Errorf("SOLE_BACKEND_URL environment variable is required")
	}

	cfg := Config{
		BackendURL:    backend,
		ListenAddr:    envOr("SOLE_LISTEN_ADDR", ":8080"),
		SecureCookies: os.Getenv("SOLE_SECURE_COOKIES") == "true",
	}

	if s := os.Getenv("SOLE_COOKIE_SECRET"); s != "" {
		cfg.CookieSecret = []byte(s)
	} else {
		// Per-process secret: flashes from a previous process stop verifying,
		// which only costs one lost notification.
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return Config{}, fmt.Errorf("generate cookie secret: %w", err)
		}
		cfg.CookieSecret = b
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package main

import (
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/DAVID1990208/SOLE/internal/config"
	apphttp "github.com/DAVID1990208/SOLE/internal/http"
	"github.com/DAVID1990208/SOLE/internal/http/flash"
	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/soleapi"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	api := soleapi.New(cfg.BackendURL, logger)

	r := apphttp.NewRouter(apphttp.Deps{
		Log:   logger,
		API:   api,
		Flash: flash.NewCodec(cfg.CookieSecret, "sole_flash", cfg.SecureCookies),
		Sess: middleware.SessionCfg{
			CookieName: "sole_token",
			Secure:     cfg.SecureCookies,
			// Matches the backend's 60 minute token lifetime; a 401 still
			// forces logout if the backend expires it earlier.
			TTL: time.Hour,
		},
	})

	logger.Info("listening", slog.String("addr", cfg.ListenAddr), slog.String("backend", cfg.BackendURL))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

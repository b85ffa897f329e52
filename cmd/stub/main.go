package main

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"atlas_travel/internal/adapters/observability"
	"atlas_travel/internal/adapters/stubapi"
	"atlas_travel/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	if cfg.AdminPass == "" {
		log.Fatal().Msg("ADMIN_PASSWORD must be set for the stub")
	}
	store, err := stubapi.NewStore(cfg.AdminUser, cfg.AdminPass)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}

	// Tokens only need to survive one stub process; a random per-run
	// signing key is enough.
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatal().Err(err).Msg("secret generation failed")
	}

	srv := stubapi.New(store, secret, log.Logger)
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))

	log.Info().Str("addr", cfg.StubAddr).Str("admin", cfg.AdminUser).Msg("stub API listening")
	httpSrv := &http.Server{
		Addr:              cfg.StubAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("stub server failed")
	}
}

package main

import (
	"net/http"
	"os"

	"lorekeep/internal/api"
	"lorekeep/internal/auth"
	"lorekeep/internal/config"
	"lorekeep/internal/logging"
	"lorekeep/internal/store/sqlstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New("info", "json")
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	st, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to initialize database")
	}
	defer st.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to create upload directory")
	}

	sessions := auth.NewSessions()
	signer := auth.NewSigner(cfg.SecretKey)
	handlers := api.NewHandlers(st, sessions, signer, cfg, logger)
	router := api.NewRouter(handlers)

	logger.Info().Str("addr", cfg.Addr).Msg("server starting")
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

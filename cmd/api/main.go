package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pream14/FinanceFrontend/internal/config"
	"github.com/pream14/FinanceFrontend/internal/database"
	"github.com/pream14/FinanceFrontend/internal/rosterimport"
	"github.com/pream14/FinanceFrontend/internal/server"
	"github.com/pream14/FinanceFrontend/internal/server/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	auth := server.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handler := server.NewHandler(store.New(db), auth, rosterimport.NewService())
	router := server.NewRouter(handler, auth)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"blackjack-trainer-server/api"
	"blackjack-trainer-server/config"
	"blackjack-trainer-server/counting"
	"blackjack-trainer-server/loghandler"
	"blackjack-trainer-server/session"
	"blackjack-trainer-server/storage"
	"blackjack-trainer-server/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err2 := godotenv.Load("server/.env"); err2 != nil {
			fmt.Println("No .env file found; using environment variables. For local dev, set NEON_AUTH_BASE_URL, DATABASE_URL and WS_PORT.")
		}
	}

	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo)))

	cfg := config.Load()

	if cfg.NeonAuthBaseURL == "" {
		slog.Warn("NEON_AUTH_BASE_URL is not set, clients will train anonymously", "tag", "main")
	} else {
		slog.Info("auth configured", "tag", "main", "baseURL", cfg.NeonAuthBaseURL)
	}

	slog.Info("table defaults",
		"tag", "main",
		"decks", cfg.Table.DeckCount,
		"penetration", cfg.Table.PenetrationPercent,
		"maxSplits", cfg.Table.MaxSplits,
		"betSpread", cfg.Table.BetSpread,
		"bankroll", cfg.Table.StartingBankrollUnits)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "tag", "main", "err", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	// A nil *Store must stay a nil interface so the registry skips
	// persistence cleanly.
	var sink session.SummarySink
	if store != nil {
		sink = store
	}

	systems := counting.DefaultRegistry()
	sessions := session.NewRegistry(cfg, systems, sink)
	go sessions.Run(ctx)

	hub := ws.NewHub(cfg, sessions)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	api.NewHandler(cfg, sessions, store).Register(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.WSPort),
		Handler: mux,
	}

	go func() {
		slog.Info("blackjack trainer server listening", "tag", "main", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "tag", "main", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "tag", "main")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "tag", "main", "err", err)
	}
}

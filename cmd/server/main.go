package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/gridclash/internal/carry"
	"github.com/freeeve/gridclash/internal/config"
	"github.com/freeeve/gridclash/internal/handler"
	"github.com/freeeve/gridclash/internal/logger"
	"github.com/freeeve/gridclash/internal/middleware"
	"github.com/freeeve/gridclash/internal/repository"
	"github.com/freeeve/gridclash/internal/repository/postgres"
	redisrepo "github.com/freeeve/gridclash/internal/repository/redis"
	"github.com/freeeve/gridclash/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("Config load failed")
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Dev: cfg.Dev})
	log.Info().
		Bool("history", cfg.DatabaseURL != "").
		Bool("sessions", cfg.RedisURL != "").
		Bool("carryTokens", cfg.CarrySecret != "").
		Msg("Config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// WebSocket hub
	wsHub := handler.NewHub()

	roundSvc, err := service.NewRoundService(wsHub)
	if err != nil {
		log.Fatal().Err(err).Msg("Round service setup failed")
	}

	// Redis (optional session store)
	if cfg.RedisURL != "" {
		redisClient, err := redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		defer redisClient.Close()
		roundSvc.SetSessionStore(redisClient, cfg.SessionTTL)
	}

	// Postgres (optional history)
	var resultRepo repository.ResultRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Database schema setup failed")
		}
		resultRepo = postgres.NewResultRepo(db)
		roundSvc.SetResultRepo(resultRepo)
	}

	// Carry tokens (optional)
	if cfg.CarrySecret != "" {
		roundSvc.SetSigner(carry.NewSigner(cfg.CarrySecret, cfg.SessionTTL), cfg.RequireCarryToken)
	}

	// Handlers
	roundHandler := handler.NewRoundHandler(roundSvc)
	historyHandler := handler.NewHistoryHandler(resultRepo)
	wsHandler := handler.NewWSHandler(wsHub)

	// Router
	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("POST /submit_round_1", roundHandler.SubmitRoundOne)
	mux.HandleFunc("POST /submit_round_2", roundHandler.SubmitRoundTwo)

	mux.HandleFunc("GET /api/v1/games/recent", historyHandler.Recent)
	mux.HandleFunc("GET /api/v1/stats", historyHandler.Stats)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Entry page and assets
	if cfg.StaticDir != "" {
		files := http.FileServer(http.Dir(cfg.StaticDir))
		mux.Handle("GET /", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Del("Content-Type") // let the file server detect it
			files.ServeHTTP(w, r)
		}))
	}

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.Recover, middleware.CORS(cfg.CORSOrigins), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}

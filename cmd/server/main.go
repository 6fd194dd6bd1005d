package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"licitaciones-backend/internal/config"
	"licitaciones-backend/internal/handlers"
	"licitaciones-backend/internal/logger"
	"licitaciones-backend/internal/metrics"
	"licitaciones-backend/internal/router"
	"licitaciones-backend/internal/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// ──── Step 1: Load Environment Variables ────
	envErr := config.LoadEnvFile(".env")
	cfg := config.Load()
	logger.Init(cfg)
	if envErr != nil {
		log.Warn().Err(envErr).Msg("failed to read .env file; using process environment only")
	}
	log.Info().Str("env", cfg.Env).Int("port", cfg.Port).Msg("environment variables loaded")

	if !cfg.HasCredential() {
		log.Warn().Msg("OPENROUTER_API_KEY is not set; /api/chat will answer with a configuration error")
	}

	// ──── Step 2: Initialize Metrics ────
	collector := metrics.NewCollector()

	// ──── Step 3: Initialize Services ────
	openRouter := services.NewOpenRouterClient(cfg)
	chatService := services.NewChatService(cfg, services.NewInstrumentedCompleter(openRouter, collector))
	extractService := services.NewFileExtractService()
	log.Info().Str("url", cfg.OpenRouterURL).Dur("timeout", cfg.UpstreamTimeout).Msg("OpenRouter client initialized")

	// ──── Step 4: Initialize Handlers ────
	staticHandler, err := handlers.NewStaticHandler(cfg.PublicDir)
	if err != nil {
		log.Fatal().Err(err).Msg("static handler initialization failed")
	}
	chatHandler := handlers.NewChatHandler(chatService, cfg.MaxBodyBytes)
	extractHandler := handlers.NewExtractHandler(extractService, cfg.MaxBodyBytes)
	healthHandler := handlers.NewHealthHandler()

	// ──── Step 5: Start HTTP Server ────
	r := router.New(chatHandler, extractHandler, healthHandler, staticHandler, collector)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout(cfg.UpstreamTimeout),
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}

	log.Info().Msgf("Servidor iniciado en http://localhost:%d", cfg.Port)

	if err := serve(server, ln, sigChan, shutdownTimeout); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

// serve runs server on ln until a signal arrives, then drains in-flight
// requests for up to drain before returning.
func serve(server *http.Server, ln net.Listener, signals <-chan os.Signal, drain time.Duration) error {
	done := make(chan error, 1)
	go func() {
		sig, ok := <-signals
		if ok {
			log.Info().Str("signal", sig.String()).Msg("shutting down")
		}

		ctx, cancel := context.WithTimeout(context.Background(), drain)
		defer cancel()
		done <- server.Shutdown(ctx)
	}()

	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-done; err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// writeTimeout leaves room for the slowest upstream call plus the relay.
// A zero upstream timeout means no write deadline either.
func writeTimeout(upstream time.Duration) time.Duration {
	if upstream <= 0 {
		return 0
	}
	return upstream + 15*time.Second
}

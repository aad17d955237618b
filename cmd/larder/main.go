package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jdparks/larder/internal/ai"
	"github.com/jdparks/larder/internal/database"
	"github.com/jdparks/larder/internal/email"
	"github.com/jdparks/larder/internal/logging"
	"github.com/jdparks/larder/internal/server"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newHTTPServer builds the server with its timeouts. The write timeout must
// exceed ai.RequestTimeout: the AI proxy handlers block on the model for up
// to that long, and the response still has to go out afterwards.
func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: ai.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func main() {
	logger := logging.Setup(env("LARDER_LOG_LEVEL", "info"))

	dbPath := env("LARDER_DB_PATH", "larder.db")
	port := env("LARDER_PORT", "8080")

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	aiClient := ai.NewClient(os.Getenv("OPENAI_API_KEY"))
	if !aiClient.Configured() {
		logger.Warn("OPENAI_API_KEY not set, AI features disabled")
	}

	emailClient := email.NewClient(
		os.Getenv("LARDER_POSTMARK_TOKEN"),
		env("LARDER_FROM_EMAIL", "hello@larder.app"),
	)
	if !emailClient.Configured() {
		logger.Warn("LARDER_POSTMARK_TOKEN not set, sign-in emails disabled")
	}

	srv := server.New(db, logger, aiClient, emailClient)

	httpServer := newHTTPServer(":"+port, srv.Router())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				srv.CleanupExpired()
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

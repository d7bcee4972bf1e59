package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/logging"
	"github.com/findly/findly-go/internal/stub"
)

func main() {
	log := logging.New(getenv("APP_ENV", "dev"))
	defer log.Sync() //nolint:errcheck

	srv := stub.NewServer(
		getenv("STUB_JWT_SECRET", "findly-stub-secret"),
		15*time.Minute,
		log,
	)

	addr := "0.0.0.0:" + getenv("STUB_PORT", "8080")
	server := &http.Server{Addr: addr, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("stub api listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

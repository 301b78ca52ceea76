package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"goldsite/config"
	"goldsite/internal/server"
	"goldsite/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log, "goldsite")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.StartServer(cfg, log)
	if err != nil {
		log.Fatal("server failed to start", zap.Error(err))
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-srv.Errors():
		log.Error("http server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

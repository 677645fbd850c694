package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sir_venger/upload_lite/internal/app/uploadhttp"
	"github.com/sir_venger/upload_lite/internal/config"
)

// main инициализирует HTTP-сервис загрузки и обеспечивает корректное завершение по сигналу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	handler, err := uploadhttp.NewServer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("UPLOAD shutdown error: %v", err)
		}
	}()

	log.Printf("UPLOAD listening on %s (root=%s, staging=%s)", cfg.ListenAddr, cfg.UploadRoot, cfg.StagingDir)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("UPLOAD final shutdown error: %v", err)
	}
}

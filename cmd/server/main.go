package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pantryos/internal/config"
	"pantryos/internal/handler"
	"pantryos/internal/repository/postgres"
	"pantryos/internal/router"
	"pantryos/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	receiptRepo := postgres.NewReceiptRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	correctionRepo := postgres.NewCorrectionRepo(db)
	ledger := postgres.NewLedgerRepo(db)

	// Initialize services
	parseSvc := service.NewParseService(receiptRepo, reviewRepo, correctionRepo, ledger, cfg.Review.Threshold)
	receiptSvc := service.NewReceiptService(receiptRepo)
	reviewSvc := service.NewReviewService(reviewRepo, receiptRepo, correctionRepo)

	// Initialize handlers
	parseH := handler.NewParseHandler(parseSvc)
	receiptH := handler.NewReceiptHandler(receiptSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(parseH, receiptH, reviewH, healthH, cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background queue worker for async parse submissions
	worker := service.NewParseQueueWorker(receiptRepo, parseSvc, service.ParseQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	log.Println("shutdown complete")
	return nil
}

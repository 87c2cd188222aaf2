package service

import (
	"context"
	"log"
	"sync"
	"time"

	"pantryos/internal/port"
)

// ParseQueueConfig holds settings for the parse queue worker.
type ParseQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ParseQueueWorker polls for queued receipts and dispatches them for
// extraction.
type ParseQueueWorker struct {
	receiptRepo port.ReceiptRepository
	parseSvc    ParseService
	cfg         ParseQueueConfig
	wg          sync.WaitGroup
}

// NewParseQueueWorker creates a new ParseQueueWorker.
func NewParseQueueWorker(receiptRepo port.ReceiptRepository, parseSvc ParseService, cfg ParseQueueConfig) *ParseQueueWorker {
	return &ParseQueueWorker{
		receiptRepo: receiptRepo,
		parseSvc:    parseSvc,
		cfg:         cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight extractions have finished.
func (w *ParseQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("parseQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("parseQueueWorker: shutting down, waiting for in-flight extractions...")
			w.wg.Wait()
			log.Printf("parseQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			receipts, err := w.receiptRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll, exit gracefully
					continue
				}
				log.Printf("parseQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range receipts {
				receipt := receipts[i] // copy for goroutine
				receipt.Attempts++

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight extractions complete even during shutdown.
					parseCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
					defer cancel()

					log.Printf("parseQueueWorker: dispatching receipt %s (attempt %d)", receipt.ID, receipt.Attempts)
					w.parseSvc.ProcessQueued(parseCtx, &receipt, w.cfg.MaxRetries)
				}()
			}
		}
	}
}

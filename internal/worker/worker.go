package worker

import (
	"context"
	"time"

	"ariss-articles/internal/metrics"
	"ariss-articles/internal/model"
	"ariss-articles/internal/newsletter"
	"ariss-articles/internal/source"
	"ariss-articles/internal/store"

	"go.uber.org/zap"
)

// Worker refreshes newsletter snapshots for the sources pushed on the queue.
type Worker struct {
	store   store.Store
	parser  *newsletter.Parser
	logger  *zap.Logger
	fetcher source.Fetcher
}

// NewWorker initializes the worker with the default fetcher.
func NewWorker(st store.Store, parser *newsletter.Parser, timeout time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		store:   st,
		parser:  parser,
		logger:  logger,
		fetcher: source.NewFetcher(timeout),
	}
}

// Start runs the worker loop
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Worker started. Waiting for jobs...")

	for {
		src, err := w.store.PopQueue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("Worker shutting down")
				return
			}
			w.logger.Error("Queue error", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		w.processJob(ctx, src)
	}
}

// Schedule enqueues src every interval until ctx is done.
func (w *Worker) Schedule(ctx context.Context, src string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.store.Enqueue(ctx, src); err != nil && ctx.Err() == nil {
				w.logger.Error("Failed to schedule refresh", zap.String("source", src), zap.Error(err))
			}
		}
	}
}

func (w *Worker) processJob(ctx context.Context, src string) {
	logger := w.logger.With(zap.String("source", src))
	logger.Info("Refresh started")

	text, err := w.fetcher.Fetch(ctx, src)
	if err != nil {
		logger.Error("Fetch failed", zap.Error(err))
		w.failJob(ctx, src, err.Error())
		return
	}

	snap := model.NewSnapshot(src, text)
	if err := w.store.SaveSnapshot(ctx, &snap); err != nil {
		logger.Error("Failed to save snapshot", zap.Error(err))
		metrics.NewsletterFetches.WithLabelValues("error").Inc()
		return
	}

	_, report := w.parser.Parse(text)
	metrics.NewsletterFetches.WithLabelValues("ok").Inc()
	metrics.ContactsParsed.Set(float64(report.Contacts))
	metrics.DateParseFailures.Add(float64(report.DateFailures))

	logger.Info("Refresh complete",
		zap.String("checksum", snap.Checksum),
		zap.Int("bytes", snap.Size),
		zap.Int("contacts", report.Contacts),
		zap.Int("date_failures", report.DateFailures))
}

func (w *Worker) failJob(ctx context.Context, src string, msg string) {
	metrics.NewsletterFetches.WithLabelValues("error").Inc()
	if err := w.store.UpdateStatus(ctx, src, model.SnapshotFailed, msg); err != nil {
		w.logger.Error("Failed to record fetch failure", zap.String("source", src), zap.Error(err))
	}
}

package events

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/metrics"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

type Sender func(ctx context.Context, ev *models.OutboxEvent) error

// Relayer drains pending outbox rows to a Sender on a fixed interval.
type Relayer struct {
	repo      *OutboxRepository
	batchSize int
	interval  time.Duration
	maxRetry  int
	sender    Sender
}

func NewRelayer(db *gorm.DB, sender Sender) *Relayer {
	return &Relayer{
		repo:      &OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		maxRetry:  5,
		sender:    sender,
	}
}

// Run blocks until ctx is cancelled.
func (r *Relayer) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce sends one batch and returns how many events were delivered.
func (r *Relayer) DrainOnce(ctx context.Context) int {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		slog.Error("outbox query failed", "err", err)
		return 0
	}

	sent := 0
	for i := range rows {
		ev := rows[i]
		if err := r.sender(ctx, &ev); err != nil {
			slog.Warn("outbox send failed", "id", ev.ID, "type", ev.Type, "err", err)
			metrics.OutboxDelivered.WithLabelValues("error").Inc()
			if err := r.repo.MarkRetry(ctx, ev.ID, r.maxRetry); err != nil {
				slog.Error("outbox retry update failed", "id", ev.ID, "err", err)
			}
			continue
		}
		metrics.OutboxDelivered.WithLabelValues("ok").Inc()
		if err := r.repo.MarkSent(ctx, ev.ID); err != nil {
			slog.Error("outbox sent update failed", "id", ev.ID, "err", err)
			continue
		}
		sent++
	}
	return sent
}

// LogSender writes events to the log. Used when no broker is configured.
func LogSender(ctx context.Context, ev *models.OutboxEvent) error {
	slog.Info("outbox event", "type", ev.Type, "aggregate", ev.AggregateID, "payload", ev.Payload)
	return nil
}

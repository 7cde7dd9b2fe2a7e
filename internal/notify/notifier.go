// Package notify records workflow transitions as notification events for an
// external dispatcher. Delivery is out of scope; the core only persists the
// events, asynchronously and in batches.
package notify

import (
	"context"
	"time"

	"internhub/internal/model"
	"internhub/internal/repository"
)

const batchSize = 10

// Emitter accepts workflow events. Implemented by Notifier; services depend
// on the interface so tests can capture emitted events.
type Emitter interface {
	Emit(ctx context.Context, notification model.Notification)
}

// Notifier buffers events on a channel and flushes them to storage in
// batches.
type Notifier struct {
	repo    repository.NotificationRepository
	channel chan model.Notification
}

// NewNotifier creates a notifier and starts its background worker.
func NewNotifier(repo repository.NotificationRepository, buffer int) *Notifier {
	n := &Notifier{
		repo:    repo,
		channel: make(chan model.Notification, buffer),
	}
	go n.worker(context.Background())
	return n
}

// Emit queues a notification event. If the buffer is full the event is
// written synchronously so no transition goes unrecorded.
func (n *Notifier) Emit(ctx context.Context, notification model.Notification) {
	select {
	case n.channel <- notification:
	default:
		_ = n.repo.Create(ctx, &notification)
	}
}

// Close stops accepting events and flushes the remaining buffer.
func (n *Notifier) Close() {
	close(n.channel)
}

// worker drains the channel, flushing batches by size or on a timer.
func (n *Notifier) worker(ctx context.Context) {
	batch := make([]model.Notification, 0, batchSize)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case notification, ok := <-n.channel:
			if !ok {
				if len(batch) > 0 {
					_ = n.repo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, notification)
			if len(batch) >= batchSize {
				_ = n.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = n.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

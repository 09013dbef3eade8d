package worker

import (
	"context"

	"meteocal/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Enqueuer is satisfied by core/queue.Client.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error
}

// Dispatcher schedules forecast refreshes on the task queue, or runs them
// inline when no queue is configured.
type Dispatcher struct {
	queue     Enqueuer
	refresher Refresher
}

func NewDispatcher(queue Enqueuer, refresher Refresher) *Dispatcher {
	return &Dispatcher{queue: queue, refresher: refresher}
}

func (d *Dispatcher) ScheduleForecast(ctx context.Context, eventID uuid.UUID) error {
	if d.queue == nil {
		return d.refresher.RefreshEventForecast(ctx, eventID)
	}

	task, err := NewForecastRefreshTask(eventID)
	if err != nil {
		return err
	}
	if err := d.queue.Enqueue(ctx, task); err != nil {
		logger.Warn("Dispatcher:ScheduleForecast:EnqueueFailed", "event_id", eventID, "error", err)
		return d.refresher.RefreshEventForecast(ctx, eventID)
	}
	return nil
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meteocal/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeForecastRefresh = "forecast:refresh"

type ForecastRefreshPayload struct {
	EventID uuid.UUID `json:"event_id"`
}

func NewForecastRefreshTask(eventID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(ForecastRefreshPayload{EventID: eventID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeForecastRefresh, payload, asynq.MaxRetry(3), asynq.Timeout(time.Minute)), nil
}

// Refresher stores the current forecast of an event.
type Refresher interface {
	RefreshEventForecast(ctx context.Context, eventID uuid.UUID) error
}

type ForecastRefreshHandler struct {
	refresher Refresher
}

func NewForecastRefreshHandler(refresher Refresher) *ForecastRefreshHandler {
	return &ForecastRefreshHandler{refresher: refresher}
}

func (h *ForecastRefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p ForecastRefreshPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s payload: %w: %w", TypeForecastRefresh, err, asynq.SkipRetry)
	}

	logger.Debug("ForecastRefreshHandler:ProcessTask", "event_id", p.EventID)
	return h.refresher.RefreshEventForecast(ctx, p.EventID)
}

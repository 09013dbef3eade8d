package weather

import (
	"time"

	"meteocal/core/cache"
	"meteocal/core/config"
	"meteocal/core/queue"
	eventRepository "meteocal/modules/event/repository"
	"meteocal/modules/weather/client"
	"meteocal/modules/weather/service"
	"meteocal/modules/weather/worker"
)

type Module struct {
	Service    *service.ForecastService
	Dispatcher *worker.Dispatcher
	Scheduler  *worker.Scheduler
}

// Init builds the forecast pipeline. When w is not nil the refresh task
// handler is registered on it and refreshes go through q.
func Init(cfg *config.Config, c cache.Cache, events eventRepository.EventRepository, q *queue.Client, w *queue.Worker) (*Module, error) {
	provider := client.NewClient(client.Config{
		BaseURL:      cfg.Weather.BaseURL,
		APIKey:       cfg.Weather.APIKey,
		APIKeyHeader: cfg.Weather.APIKeyHeader,
		Timeout:      cfg.Weather.Timeout,
		CacheTTL:     cfg.Weather.CacheTTL,
	}, c)
	svc := service.NewForecastService(provider, events, cfg.Location(), cfg.Weather.HorizonDays)

	var dispatcher *worker.Dispatcher
	if q != nil && w != nil {
		w.Handle(worker.TypeForecastRefresh, worker.NewForecastRefreshHandler(svc))
		dispatcher = worker.NewDispatcher(q, svc)
	} else {
		dispatcher = worker.NewDispatcher(nil, svc)
	}

	m := &Module{Service: svc, Dispatcher: dispatcher}
	if cfg.Weather.RefreshCron != "" {
		scheduler, err := worker.NewScheduler(cfg.Weather.RefreshCron, cfg.Location(), svc, 10*time.Minute)
		if err != nil {
			return nil, err
		}
		m.Scheduler = scheduler
	}
	return m, nil
}

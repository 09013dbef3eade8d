package worker

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type recordingRefresher struct {
	ids []uuid.UUID
}

func (r *recordingRefresher) RefreshEventForecast(_ context.Context, eventID uuid.UUID) error {
	r.ids = append(r.ids, eventID)
	return nil
}

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, task *asynq.Task, _ ...asynq.Option) error {
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

func TestDispatcherRunsInlineWithoutQueue(t *testing.T) {
	refresher := &recordingRefresher{}
	id := uuid.New()

	if err := NewDispatcher(nil, refresher).ScheduleForecast(context.Background(), id); err != nil {
		t.Fatalf("ScheduleForecast() error = %v", err)
	}
	if len(refresher.ids) != 1 || refresher.ids[0] != id {
		t.Fatalf("refreshed = %v", refresher.ids)
	}
}

func TestDispatcherEnqueuesTask(t *testing.T) {
	refresher := &recordingRefresher{}
	queue := &fakeQueue{}
	id := uuid.New()

	if err := NewDispatcher(queue, refresher).ScheduleForecast(context.Background(), id); err != nil {
		t.Fatalf("ScheduleForecast() error = %v", err)
	}
	if len(refresher.ids) != 0 {
		t.Fatal("refresh ran inline while a queue is available")
	}
	if len(queue.tasks) != 1 || queue.tasks[0].Type() != TypeForecastRefresh {
		t.Fatalf("tasks = %v", queue.tasks)
	}

	if err := NewForecastRefreshHandler(refresher).ProcessTask(context.Background(), queue.tasks[0]); err != nil {
		t.Fatalf("ProcessTask() error = %v", err)
	}
	if len(refresher.ids) != 1 || refresher.ids[0] != id {
		t.Fatalf("handler refreshed %v, want %s", refresher.ids, id)
	}
}

func TestDispatcherFallsBackWhenEnqueueFails(t *testing.T) {
	refresher := &recordingRefresher{}
	queue := &fakeQueue{err: stderrors.New("redis unavailable")}

	if err := NewDispatcher(queue, refresher).ScheduleForecast(context.Background(), uuid.New()); err != nil {
		t.Fatalf("ScheduleForecast() error = %v", err)
	}
	if len(refresher.ids) != 1 {
		t.Fatalf("refreshed %d events inline, want 1", len(refresher.ids))
	}
}

func TestHandlerRejectsBadPayload(t *testing.T) {
	refresher := &recordingRefresher{}
	task := asynq.NewTask(TypeForecastRefresh, []byte("not json"))

	err := NewForecastRefreshHandler(refresher).ProcessTask(context.Background(), task)
	if !stderrors.Is(err, asynq.SkipRetry) {
		t.Fatalf("error = %v, want SkipRetry", err)
	}
	if len(refresher.ids) != 0 {
		t.Fatal("refresh ran for a bad payload")
	}
}

type countingSweeper struct{ runs int }

func (s *countingSweeper) RefreshUpcoming(context.Context) (int, error) {
	s.runs++
	return 0, nil
}

func TestNewSchedulerValidatesCronExpression(t *testing.T) {
	if _, err := NewScheduler("every full moon", nil, &countingSweeper{}, time.Minute); err == nil {
		t.Fatal("expected an error for an invalid cron expression")
	}

	sweeper := &countingSweeper{}
	s, err := NewScheduler("0 * * * *", nil, sweeper, time.Minute)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	s.run()
	if sweeper.runs != 1 {
		t.Fatalf("sweeps = %d, want 1", sweeper.runs)
	}
}

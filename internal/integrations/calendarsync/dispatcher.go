package calendarsync

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Результаты синхронизации для метрик
const (
	ResultOK          = "ok"
	ResultFailed      = "failed"
	ResultDropped     = "dropped"
	ResultBreakerOpen = "breaker_open"
)

// Dispatcher асинхронно отправляет события в календарь после фиксации транзакции
// Задачи кладутся в ограниченную очередь; при переполнении задача отбрасывается,
// а вызывающий получает ErrQueueFull и показывает предупреждение.
// Каждая отправка ограничена timeout и не влияет на состояние бронирования.
type Dispatcher struct {
	client   EventCreator
	recorder Recorder
	log      Logger
	timeout  time.Duration
	workers  int

	queue chan Event
	wg    sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher создаёт диспетчер; воркеры запускаются Start
func NewDispatcher(client EventCreator, recorder Recorder, log Logger, queueSize, workers int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		client:   client,
		recorder: recorder,
		log:      log,
		timeout:  timeout,
		workers:  workers,
		queue:    make(chan Event, queueSize),
	}
}

// Start запускает воркеров
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Dispatch ставит событие в очередь, не блокируясь
func (d *Dispatcher) Dispatch(event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.log.Warn("CalendarSync: queue full, dropping event for booking=%s", event.BookingID)
		d.record(ResultDropped)
		return ErrQueueFull
	}
}

// Stop перестаёт принимать задачи и ждёт, пока воркеры разберут очередь, но не дольше ctx
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for event := range d.queue {
		d.sync(event)
	}
}

func (d *Dispatcher) sync(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	resp, err := d.client.CreateEvent(ctx, event)
	switch {
	case err == nil:
		d.log.Info("CalendarSync: booking=%s synced, event=%s", event.BookingID, resp.EventID)
		d.record(ResultOK)
	case errors.Is(err, ErrCircuitOpen):
		d.log.Warn("CalendarSync: booking=%s skipped, calendar unavailable: %v", event.BookingID, err)
		d.record(ResultBreakerOpen)
	default:
		d.log.Error("CalendarSync: booking=%s failed: %v", event.BookingID, err)
		d.record(ResultFailed)
	}
}

func (d *Dispatcher) record(result string) {
	if d.recorder != nil {
		d.recorder.IncCalendarSync(result)
	}
}

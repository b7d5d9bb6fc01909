package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/events"
	"github.com/spec-kit/lawfirm-api/internal/service"
)

const defaultQueueSize = 256

type job struct {
	event  events.Event
	handle events.EventHandler
}

// NotificationWorker delivers notifications on a single background goroutine
// so publishers never wait on mail delivery. When the queue is full the
// notification is dropped and logged.
type NotificationWorker struct {
	queue  chan job
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	logger *zap.Logger
}

// StartNotificationWorker subscribes the notification handlers through the
// worker queue and starts draining it.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	w := &NotificationWorker{
		queue:  make(chan job, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	if notificationService != nil {
		notificationService.RegisterHandlers(w.deferred)
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *NotificationWorker) deferred(handle events.EventHandler) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		select {
		case <-w.done:
			w.logger.Warn("notification worker stopped; dropping event", zap.String("event_type", string(event.Type)))
			return nil
		default:
		}
		select {
		case w.queue <- job{event: event, handle: handle}:
		default:
			w.logger.Warn("notification queue full; dropping event",
				zap.String("event_type", string(event.Type)),
				zap.String("subject_id", event.SubjectID))
		}
		return nil
	}
}

func (w *NotificationWorker) run() {
	defer w.wg.Done()
	for {
		select {
		case j := <-w.queue:
			w.deliver(j)
		case <-w.done:
			for {
				select {
				case j := <-w.queue:
					w.deliver(j)
				default:
					return
				}
			}
		}
	}
}

func (w *NotificationWorker) deliver(j job) {
	// Request contexts are gone by the time a queued job runs.
	if err := j.handle(context.Background(), j.event); err != nil {
		w.logger.Error("notification delivery failed",
			zap.String("event_type", string(j.event.Type)),
			zap.String("subject_id", j.event.SubjectID),
			zap.Error(err))
	}
}

// Stop drains queued notifications and waits for the worker to exit.
func (w *NotificationWorker) Stop() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}

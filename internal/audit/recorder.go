package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// saveTimeout — бюджет на запись одного события в хранилище
const saveTimeout = 5 * time.Second

// Recorder — асинхронный регистратор событий аудита.
// Record никогда не блокирует обработку запроса: события уходят в
// буферизованный канал, переполнение буфера считается и событие
// отбрасывается. Запись выполняет одна фоновая горутина.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
	ch      chan Event
	wg      sync.WaitGroup
	closed  atomic.Bool
	dropped atomic.Int64
}

// NewRecorder создает Recorder и запускает фоновую запись
func NewRecorder(storage Storage, logger *slog.Logger, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}

	r := &Recorder{
		storage: storage,
		logger:  logger,
		ch:      make(chan Event, buffer),
	}

	r.wg.Add(1)
	go r.run()

	return r
}

// Record регистрирует событие. Безопасен на nil-получателе:
// компоненты, которым аудит не сконфигурирован, работают без него.
func (r *Recorder) Record(kind Kind, subject, remoteAddr, detail string) {
	if r == nil || r.closed.Load() {
		return
	}

	event := Event{
		ID:         uuid.New().String(),
		Kind:       kind,
		Subject:    subject,
		RemoteAddr: remoteAddr,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	select {
	case r.ch <- event:
	default:
		// Буфер полон: аудит не имеет права тормозить запросы
		r.dropped.Add(1)
		r.logger.Warn("audit event dropped", "kind", string(kind))
	}
}

// Dropped возвращает количество отброшенных из-за переполнения событий
func (r *Recorder) Dropped() int64 {
	if r == nil {
		return 0
	}
	return r.dropped.Load()
}

// Close останавливает фоновую запись, дописав буферизованные события
func (r *Recorder) Close() {
	if r == nil || !r.closed.CompareAndSwap(false, true) {
		return
	}

	close(r.ch)
	r.wg.Wait()
}

// run — фоновая горутина записи
func (r *Recorder) run() {
	defer r.wg.Done()

	for event := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		if err := r.storage.SaveEvent(ctx, &event); err != nil {
			r.logger.Error("failed to save audit event",
				"kind", string(event.Kind),
				"error", err)
		}
		cancel()
	}
}

package audit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage — хранилище в памяти для тестов Recorder
type memStorage struct {
	mu     sync.Mutex
	events []Event
}

func (m *memStorage) SaveEvent(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	return nil
}

func (m *memStorage) RecentEvents(ctx context.Context, limit int) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *memStorage) Close() error { return nil }

func (m *memStorage) saved() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRecorder_Record проверяет запись событий через фоновую горутину
func TestRecorder_Record(t *testing.T) {
	storage := &memStorage{}
	recorder := NewRecorder(storage, testLogger(), 16)

	recorder.Record(KindLoginOK, "hunter@example.com", "127.0.0.1:1", "")
	recorder.Record(KindLogout, "", "127.0.0.1:1", "")

	// Close дожидается записи буферизованных событий
	recorder.Close()

	events := storage.saved()
	require.Len(t, events, 2)
	assert.Equal(t, KindLoginOK, events[0].Kind)
	assert.Equal(t, "hunter@example.com", events[0].Subject)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].CreatedAt.IsZero())
	assert.Equal(t, KindLogout, events[1].Kind)
	assert.Equal(t, int64(0), recorder.Dropped())
}

// TestRecorder_NilSafe проверяет, что nil-получатель безопасен
func TestRecorder_NilSafe(t *testing.T) {
	var recorder *Recorder

	assert.NotPanics(t, func() {
		recorder.Record(KindLoginOK, "a", "b", "c")
		recorder.Close()
	})
	assert.Equal(t, int64(0), recorder.Dropped())
}

// TestRecorder_RecordAfterClose проверяет, что запись после Close
// молча игнорируется
func TestRecorder_RecordAfterClose(t *testing.T) {
	storage := &memStorage{}
	recorder := NewRecorder(storage, testLogger(), 16)
	recorder.Close()

	assert.NotPanics(t, func() {
		recorder.Record(KindLoginOK, "a", "b", "c")
	})
	assert.Empty(t, storage.saved())
}

// TestRecorder_DoubleClose проверяет идемпотентность Close
func TestRecorder_DoubleClose(t *testing.T) {
	recorder := NewRecorder(&memStorage{}, testLogger(), 16)

	assert.NotPanics(t, func() {
		recorder.Close()
		recorder.Close()
	})
}

package handlers

import (
	_ "embed"
	"log/slog"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// SPAHandler отдает оболочку одностраничного приложения.
// Все не-API пути получают один и тот же index.html; маршрутизацию
// страниц выполняет клиент, а доступ к ним уже проверил route guard.
type SPAHandler struct {
	logger *slog.Logger
}

// NewSPAHandler создает handler SPA-оболочки
func NewSPAHandler(logger *slog.Logger) *SPAHandler {
	return &SPAHandler{logger: logger}
}

// Serve отдает index.html
func (h *SPAHandler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(indexHTML); err != nil {
		h.logger.Warn("failed to write index page", slog.Any("error", err))
	}
}

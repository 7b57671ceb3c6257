package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/cookies"
)

// maxProxyBody ограничивает размер проксируемого тела (10 MB)
const maxProxyBody = 10 << 20

// ProxyHandler проксирует запросы фронтенда (/api/v1/*) на бекенд через
// аутентифицированный клиент: каждая фича — планы тренировок, сессии,
// дашборд — получает прозрачное обновление сессии бесплатно, без
// дублирования retry-логики.
type ProxyHandler struct {
	logger     *slog.Logger
	client     *apiclient.Client
	cookieOpts cookies.Options
}

// NewProxyHandler создает новый прокси-handler
func NewProxyHandler(logger *slog.Logger, client *apiclient.Client, cookieOpts cookies.Options) *ProxyHandler {
	return &ProxyHandler{
		logger:     logger,
		client:     client,
		cookieOpts: cookieOpts,
	}
}

// Proxy перенаправляет запрос на бекенд и возвращает ответ как есть
func (h *ProxyHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rest := chi.URLParam(r, "*")
	path := "/" + rest
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProxyBody))
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read proxy body", slog.Any("error", err))
		writeError(h.logger, w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	// Пробрасываем только содержательные заголовки, не cookie клиента
	header := make(http.Header)
	if ct := r.Header.Get("Content-Type"); ct != "" {
		header.Set("Content-Type", ct)
	}
	if accept := r.Header.Get("Accept"); accept != "" {
		header.Set("Accept", accept)
	}

	jar := cookies.New(w, r, h.cookieOpts)

	resp, err := h.client.Do(ctx, jar, r.Method, path, &apiclient.RequestOptions{
		Body:   body,
		Header: header,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "proxy request failed",
			slog.String("path", path),
			slog.Any("error", err))
		writeError(h.logger, w, http.StatusBadGateway, "backend unavailable")
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.WarnContext(ctx, "failed to copy proxy response", slog.Any("error", err))
	}
}

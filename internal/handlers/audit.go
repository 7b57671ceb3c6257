package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hunterfit/gateway/internal/audit"
)

// defaultAuditLimit — количество событий по умолчанию в журнале аудита
const defaultAuditLimit = 100

// maxAuditLimit — верхняя граница limit, защита от неограниченных выборок
const maxAuditLimit = 1000

// AuditHandler отдает журнал аудита администраторам.
// Доступ контролирует route guard: /admin/* требует роли ADMIN.
type AuditHandler struct {
	logger  *slog.Logger
	storage audit.Storage
}

// NewAuditHandler создает handler журнала аудита
func NewAuditHandler(logger *slog.Logger, storage audit.Storage) *AuditHandler {
	return &AuditHandler{
		logger:  logger,
		storage: storage,
	}
}

type auditListResponse struct {
	Success bool          `json:"success"`
	Events  []audit.Event `json:"events"`
}

// List обрабатывает GET /admin/api/audit?limit=N
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(h.logger, w, http.StatusBadRequest, "invalid limit")
			return
		}
		if parsed > maxAuditLimit {
			parsed = maxAuditLimit
		}
		limit = parsed
	}

	events, err := h.storage.RecentEvents(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load audit events", slog.Any("error", err))
		writeError(h.logger, w, http.StatusInternalServerError, "failed to load audit events")
		return
	}

	if events == nil {
		events = []audit.Event{}
	}

	writeJSON(h.logger, w, http.StatusOK, auditListResponse{
		Success: true,
		Events:  events,
	})
}

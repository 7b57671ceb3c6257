// handlers содержит HTTP-обработчики gateway: session actions,
// прокси к бекенду, журнал аудита, health check и SPA-оболочку.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hunterfit/gateway/internal/models"
)

// writeJSON сериализует ответ с заданным статусом
func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeResult отдает ActionResult с подходящим статусом.
// rejectStatus используется для отказа бекенда; ошибки валидации
// всегда отдаются как 400.
func writeResult(logger *slog.Logger, w http.ResponseWriter, result models.ActionResult, rejectStatus int) {
	status := http.StatusOK
	if !result.Success {
		status = rejectStatus
		if result.Message == "Validation failed" {
			status = http.StatusBadRequest
		}
	}

	writeJSON(logger, w, status, result)
}

// writeError отдает единый JSON с ошибкой
func writeError(logger *slog.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(logger, w, status, models.Failed(message))
}

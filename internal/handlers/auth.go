package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/hunterfit/gateway/internal/actions"
	"github.com/hunterfit/gateway/internal/cookies"
)

// maxProfileBody ограничивает размер multipart тела профиля (10 MB)
const maxProfileBody = 10 << 20

// AuthHandler обрабатывает запросы session actions
type AuthHandler struct {
	logger     *slog.Logger
	actions    *actions.Service
	cookieOpts cookies.Options
}

// NewAuthHandler создает новый handler для session actions
func NewAuthHandler(logger *slog.Logger, service *actions.Service, cookieOpts cookies.Options) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		actions:    service,
		cookieOpts: cookieOpts,
	}
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in actions.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	jar := cookies.New(w, r, h.cookieOpts)
	result := h.actions.Login(ctx, jar, r.RemoteAddr, in)

	writeResult(h.logger, w, result, http.StatusUnauthorized)
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in actions.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	jar := cookies.New(w, r, h.cookieOpts)
	result := h.actions.Register(ctx, jar, r.RemoteAddr, in)

	writeResult(h.logger, w, result, http.StatusBadRequest)
}

// Logout обрабатывает POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	jar := cookies.New(w, r, h.cookieOpts)
	result := h.actions.Logout(r.Context(), jar, r.RemoteAddr)

	writeResult(h.logger, w, result, http.StatusInternalServerError)
}

// ChangePassword обрабатывает PATCH /auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in actions.ChangePasswordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.WarnContext(ctx, "failed to decode change password request", slog.Any("error", err))
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	jar := cookies.New(w, r, h.cookieOpts)
	result := h.actions.ChangePassword(ctx, jar, r.RemoteAddr, in)

	writeResult(h.logger, w, result, http.StatusBadRequest)
}

// Me обрабатывает GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	jar := cookies.New(w, r, h.cookieOpts)
	result := h.actions.Me(r.Context(), jar)

	writeResult(h.logger, w, result, http.StatusUnauthorized)
}

// UpdateProfile обрабатывает PATCH и PUT /auth/update-my-profile
// Тело (multipart form data) передается на бекенд как есть
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProfileBody))
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read profile body", slog.Any("error", err))
		writeError(h.logger, w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	jar := cookies.New(w, r, h.cookieOpts)
	result := h.actions.UpdateProfile(ctx, jar, r.Method, r.Header.Get("Content-Type"), payload)

	writeResult(h.logger, w, result, http.StatusBadRequest)
}

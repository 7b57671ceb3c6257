package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hunterfit/gateway/internal/actions"
	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/audit"
	"github.com/hunterfit/gateway/internal/cookies"
	"github.com/hunterfit/gateway/internal/guard"
	"github.com/hunterfit/gateway/internal/middleware"
)

// Настройки rate limit для login/register: защита от перебора паролей
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// RouterDeps — зависимости, необходимые для сборки роутера
type RouterDeps struct {
	Logger       *slog.Logger
	Client       *apiclient.Client
	Actions      *actions.Service
	AuditStorage audit.Storage
	AccessSecret []byte
	CookieOpts   cookies.Options
	Version      string
}

// NewRouter собирает HTTP-роутер gateway.
//
// Порядок middleware: request id -> логирование -> recovery -> route guard.
// Guard стоит последним, чтобы редиректы тоже попадали в лог.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Logger, deps.Actions, deps.CookieOpts)
	proxyHandler := NewProxyHandler(deps.Logger, deps.Client, deps.CookieOpts)
	auditHandler := NewAuditHandler(deps.Logger, deps.AuditStorage)
	healthHandler := NewHealthHandler(deps.Logger, deps.Version)
	spaHandler := NewSPAHandler(deps.Logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(deps.Logger))
	r.Use(middleware.RecoveryMiddleware(deps.Logger))
	r.Use(guard.Middleware(deps.Logger, deps.AccessSecret, deps.CookieOpts, deps.Client))

	r.Get("/healthz", healthHandler.Health)

	// Session actions
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitMiddleware(authRateLimit, authRateWindow, deps.Logger))

		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
	})

	r.Post("/auth/logout", authHandler.Logout)
	r.Patch("/auth/change-password", authHandler.ChangePassword)
	r.Get("/auth/me", authHandler.Me)
	r.Patch("/auth/update-my-profile", authHandler.UpdateProfile)
	r.Put("/auth/update-my-profile", authHandler.UpdateProfile)

	// Прокси фич приложения на бекенд: /api/v1/workouts -> {base}/v1/workouts
	r.Handle("/api/*", http.HandlerFunc(proxyHandler.Proxy))

	// Журнал аудита: guard уже потребовал роль ADMIN для /admin/*
	r.Get("/admin/api/audit", auditHandler.List)

	// Все остальные пути — SPA-оболочка
	r.NotFound(spaHandler.Serve)

	return r
}

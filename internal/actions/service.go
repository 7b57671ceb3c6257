// actions реализует session actions: login, register, logout, смену
// пароля и операции с профилем. Каждое действие валидирует вход, ходит
// на бекенд, при успехе сохраняет токены и всегда возвращает единый
// models.ActionResult — у UI ровно один контракт ошибок.
package actions

import (
	"log/slog"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/audit"
	"github.com/hunterfit/gateway/internal/validation"
	"github.com/hunterfit/gateway/pkg/api"
)

// Service предоставляет session actions
type Service struct {
	client     *apiclient.Client
	logger     *slog.Logger
	audit      *audit.Recorder
	production bool
}

// NewService создает новый сервис session actions.
// recorder может быть nil — аудит опционален.
func NewService(client *apiclient.Client, logger *slog.Logger, recorder *audit.Recorder, production bool) *Service {
	return &Service{
		client:     client,
		logger:     logger,
		audit:      recorder,
		production: production,
	}
}

// LoginInput — входные данные действия login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput — входные данные действия register
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender,omitempty"`
	Age      int    `json:"age,omitempty"`
}

// ChangePasswordInput — входные данные смены пароля
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// validateLogin возвращает ошибки валидации по полям (nil — ввод корректен)
func validateLogin(in LoginInput) map[string]string {
	errs := make(map[string]string)

	if err := validation.ValidateEmail(in.Email); err != nil {
		errs["email"] = err.Error()
	}
	if in.Password == "" {
		errs["password"] = "password cannot be empty"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateRegister возвращает ошибки валидации по полям (nil — ввод корректен)
func validateRegister(in RegisterInput) map[string]string {
	errs := make(map[string]string)

	if err := validation.ValidateName(in.Name); err != nil {
		errs["name"] = err.Error()
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		errs["email"] = err.Error()
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		errs["password"] = err.Error()
	}
	if err := validation.ValidateAge(in.Age); err != nil {
		errs["age"] = err.Error()
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateChangePassword возвращает ошибки валидации по полям
func validateChangePassword(in ChangePasswordInput) map[string]string {
	errs := make(map[string]string)

	if in.OldPassword == "" {
		errs["oldPassword"] = "old password cannot be empty"
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		errs["newPassword"] = err.Error()
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// rejectMessage выбирает сообщение для отклоненного бекендом запроса.
// В development показываем сообщение бекенда, в production — общее,
// чтобы не протекали детали.
func (s *Service) rejectMessage(env *api.Envelope, generic string) string {
	if s.production {
		return generic
	}
	return env.ErrorMessage(generic)
}

// statusOK проверяет успешность HTTP статуса
func statusOK(code int) bool {
	return code >= 200 && code < 300
}

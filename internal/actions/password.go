package actions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/audit"
	"github.com/hunterfit/gateway/internal/models"
	"github.com/hunterfit/gateway/pkg/api"
)

// ChangePassword меняет пароль текущего пользователя.
// Запрос идет через аутентифицированный клиент: действующая сессия
// обязательна, истекший access token прозрачно обновится.
func (s *Service) ChangePassword(ctx context.Context, jar apiclient.CredentialJar, remoteAddr string, in ChangePasswordInput) models.ActionResult {
	// 1. Валидация до любого сетевого вызова
	if errs := validateChangePassword(in); errs != nil {
		return models.ValidationFailed(errs)
	}

	// 2. Запрос через аутентифицированный путь
	body, err := json.Marshal(api.ChangePasswordRequest{
		OldPassword: in.OldPassword,
		NewPassword: in.NewPassword,
	})
	if err != nil {
		return models.Failed("Password change failed")
	}

	resp, err := s.client.Patch(ctx, jar, "/auth/change-password", apiclient.JSONOptions(body))
	if err != nil {
		s.logger.Error("change password request failed", "error", err)
		s.audit.Record(audit.KindPasswordFailed, "", remoteAddr, "backend unreachable")
		return models.Failed(s.networkMessage(err, "Password change failed"))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		respBody = nil
	}

	env := api.ParseEnvelope(respBody)
	if !statusOK(resp.StatusCode) || env == nil || !env.Success {
		s.logger.Warn("password change rejected", "status", resp.StatusCode)
		s.audit.Record(audit.KindPasswordFailed, "", remoteAddr, "rejected by backend")

		generic := "Password change failed"
		if resp.StatusCode == http.StatusUnauthorized {
			generic = "Session expired, please log in again"
		}

		result := models.Failed(s.rejectMessage(env, generic))
		if env != nil {
			result.Errors = env.Errors
		}
		return result
	}

	s.audit.Record(audit.KindPasswordChanged, "", remoteAddr, "")

	return models.Succeeded("Password changed successfully", env.Data)
}

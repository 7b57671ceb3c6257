package actions

import (
	"context"
	"io"
	"net/http"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/models"
	"github.com/hunterfit/gateway/pkg/api"
)

// Me возвращает профиль текущего пользователя с бекенда
func (s *Service) Me(ctx context.Context, jar apiclient.CredentialJar) models.ActionResult {
	resp, err := s.client.Get(ctx, jar, "/auth/me", nil)
	if err != nil {
		s.logger.Error("me request failed", "error", err)
		return models.Failed(s.networkMessage(err, "Failed to load profile"))
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
		generic := "Failed to load profile"
		if resp.StatusCode == http.StatusUnauthorized {
			generic = "Not authenticated"
		}
		return models.Failed(s.rejectMessage(env, generic))
	}

	// Часть эндпойнтов кладет профиль в data, часть — на верхний уровень
	data := env.Data
	if len(data) == 0 {
		data = respBody
	}

	return models.Succeeded("", data)
}

// UpdateProfile проксирует обновление профиля (multipart form data)
// на бекенд через аутентифицированный путь. method — PATCH или PUT,
// contentType сохраняется как есть вместе с boundary.
func (s *Service) UpdateProfile(ctx context.Context, jar apiclient.CredentialJar, method, contentType string, payload []byte) models.ActionResult {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(ctx, jar, method, "/auth/update-my-profile", &apiclient.RequestOptions{
		Body:   payload,
		Header: header,
	})
	if err != nil {
		s.logger.Error("update profile request failed", "error", err)
		return models.Failed(s.networkMessage(err, "Profile update failed"))
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
		result := models.Failed(s.rejectMessage(env, "Profile update failed"))
		if env != nil {
			result.Errors = env.Errors
		}
		return result
	}

	return models.Succeeded("Profile updated", env.Data)
}

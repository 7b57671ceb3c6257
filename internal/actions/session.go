package actions

import (
	"context"
	"encoding/json"
	"io"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/audit"
	"github.com/hunterfit/gateway/internal/cookies"
	"github.com/hunterfit/gateway/internal/models"
	"github.com/hunterfit/gateway/internal/tokens"
	"github.com/hunterfit/gateway/pkg/api"
)

// Login аутентифицирует пользователя и сохраняет пару токенов.
// Login и Register идут по "сырому" пути клиента (jar не передается
// в запрос): валидной сессии на этом этапе еще нет.
func (s *Service) Login(ctx context.Context, jar apiclient.CredentialJar, remoteAddr string, in LoginInput) models.ActionResult {
	// 1. Валидация до любого сетевого вызова
	if errs := validateLogin(in); errs != nil {
		return models.ValidationFailed(errs)
	}

	// 2. Запрос на бекенд
	body, err := json.Marshal(api.LoginRequest{Email: in.Email, Password: in.Password})
	if err != nil {
		return models.Failed("Login failed")
	}

	resp, err := s.client.Post(ctx, nil, "/auth/login", apiclient.JSONOptions(body))
	if err != nil {
		s.logger.Error("login request failed", "error", err)
		s.audit.Record(audit.KindLoginFailed, in.Email, remoteAddr, "backend unreachable")
		return models.Failed(s.networkMessage(err, "Login failed"))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		respBody = nil
	}

	// 3. Не-2xx статус или success:false в теле — отказ
	env := api.ParseEnvelope(respBody)
	if !statusOK(resp.StatusCode) || env == nil || !env.Success {
		s.logger.Warn("login rejected", "status", resp.StatusCode)
		s.audit.Record(audit.KindLoginFailed, in.Email, remoteAddr, "rejected by backend")

		result := models.Failed(s.rejectMessage(env, "Invalid email or password"))
		if env != nil {
			result.Errors = env.Errors
		}
		return result
	}

	// 4. Успех: извлекаем и сохраняем токены
	pair := tokens.ExtractPair(respBody)
	jar.PersistTokens(pair.AccessToken, pair.RefreshToken)

	s.audit.Record(audit.KindLoginOK, in.Email, remoteAddr, "")

	result := models.Succeeded("Login successful", env.Data)
	result.RedirectTo = "/"
	return result
}

// Register регистрирует нового пользователя и сохраняет пару токенов
func (s *Service) Register(ctx context.Context, jar apiclient.CredentialJar, remoteAddr string, in RegisterInput) models.ActionResult {
	// 1. Валидация до любого сетевого вызова
	if errs := validateRegister(in); errs != nil {
		return models.ValidationFailed(errs)
	}

	// 2. Запрос на бекенд
	body, err := json.Marshal(api.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Gender:   in.Gender,
		Age:      in.Age,
	})
	if err != nil {
		return models.Failed("Registration failed")
	}

	resp, err := s.client.Post(ctx, nil, "/auth/register", apiclient.JSONOptions(body))
	if err != nil {
		s.logger.Error("register request failed", "error", err)
		s.audit.Record(audit.KindRegisterFailed, in.Email, remoteAddr, "backend unreachable")
		return models.Failed(s.networkMessage(err, "Registration failed"))
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
		s.logger.Warn("registration rejected", "status", resp.StatusCode)
		s.audit.Record(audit.KindRegisterFailed, in.Email, remoteAddr, "rejected by backend")

		result := models.Failed(s.rejectMessage(env, "Registration failed"))
		if env != nil {
			result.Errors = env.Errors
		}
		return result
	}

	// 3. Успех: извлекаем и сохраняем токены
	pair := tokens.ExtractPair(respBody)
	jar.PersistTokens(pair.AccessToken, pair.RefreshToken)

	s.audit.Record(audit.KindRegisterOK, in.Email, remoteAddr, "")

	result := models.Succeeded("Registration successful", env.Data)
	result.RedirectTo = "/"
	return result
}

// Logout завершает сессию: удаляет обе cookie.
// Идемпотентен — повторный logout без сессии тоже успешен.
func (s *Service) Logout(ctx context.Context, jar apiclient.CredentialJar, remoteAddr string) models.ActionResult {
	jar.Delete(cookies.AccessToken)
	jar.Delete(cookies.RefreshToken)

	s.audit.Record(audit.KindLogout, "", remoteAddr, "")

	result := models.Succeeded("Logged out", nil)
	result.RedirectTo = "/login"
	return result
}

// networkMessage — сообщение о недоступности бекенда:
// детальное в development, общее в production
func (s *Service) networkMessage(err error, generic string) string {
	if s.production {
		return generic
	}
	return generic + ": " + err.Error()
}

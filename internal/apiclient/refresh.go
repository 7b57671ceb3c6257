package apiclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/hunterfit/gateway/internal/cookies"
	"github.com/hunterfit/gateway/internal/tokens"
	"github.com/hunterfit/gateway/pkg/api"
)

// refreshPath — эндпойнт обмена refresh token на новую пару
const refreshPath = "/auth/refresh-token"

// Refresh обменивает refresh token на новую пару токенов.
//
// Отклоненный бекендом refresh token никогда не станет валидным снова,
// поэтому отказ — жесткий сигнал завершения сессии: обе cookie удаляются.
// Это единственное место, где чтение может удалить учетные данные.
//
// Сетевая ошибка (бекенд недоступен) трактуется как неуспех, но cookie
// не трогает: вердикта бекенда о токене не было.
func (c *Client) Refresh(ctx context.Context, jar CredentialJar) bool {
	refreshToken := jar.Get(cookies.RefreshToken)
	if refreshToken == "" {
		// Обменивать нечего — бекенд не беспокоим
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, nil)
	if err != nil {
		slog.Error("failed to create refresh request", "error", err)
		return false
	}

	// Refresh token передается через Cookie заголовок
	req.AddCookie(&http.Cookie{Name: cookies.RefreshToken, Value: refreshToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("refresh request failed", "error", err)
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		body = nil
	}

	// Тело парсим защищенно: мусор в ответе — это nil, не паника
	env := api.ParseEnvelope(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || env == nil || !env.Success {
		// Сессия завершена: чистим обе cookie, пользователь
		// возвращается в неаутентифицированное состояние
		jar.Delete(cookies.AccessToken)
		jar.Delete(cookies.RefreshToken)
		slog.Debug("token refresh rejected", "status", resp.StatusCode)
		if c.onRefreshRejected != nil {
			c.onRefreshRejected(ctx)
		}
		return false
	}

	// Пустой refresh token в ответе сохраняет действующий:
	// PersistTokens не трогает не переданные значения
	pair := tokens.ExtractPair(body)
	jar.PersistTokens(pair.AccessToken, pair.RefreshToken)

	return true
}

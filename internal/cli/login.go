package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/clistorage"
	"github.com/hunterfit/gateway/internal/cookies"
	"github.com/hunterfit/gateway/internal/models"
	"github.com/hunterfit/gateway/internal/tokens"
	"github.com/hunterfit/gateway/internal/validation"
	"github.com/hunterfit/gateway/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Authenticating...")

	body, err := json.Marshal(api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	// Сессии еще нет, поэтому jar не передается
	resp, err := c.apiClient.Post(ctx, nil, "/auth/login", apiclient.JSONOptions(body))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	env := api.ParseEnvelope(respBody)
	if resp.StatusCode != http.StatusOK || env == nil || !env.Success {
		return fmt.Errorf("login rejected: %s", env.ErrorMessage("invalid email or password"))
	}

	pair := tokens.ExtractPair(respBody)
	if pair.Empty() {
		return fmt.Errorf("login response contains no tokens")
	}

	auth := &clistorage.AuthData{
		Email:        email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    time.Now().Add(cookies.DefaultAccessTTL).Unix(),
	}

	if err := c.storage.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	// Пытаемся узнать user id из профиля; неуспех не фатален
	if user := c.fetchProfile(ctx); user != nil {
		auth.UserID = user.ID
		if err := c.storage.SaveAuth(ctx, auth); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
	}

	fmt.Println()
	fmt.Println("✓ Login successful!")
	fmt.Printf("Email: %s\n", email)
	fmt.Println()
	fmt.Println("Your session has been saved locally.")

	return nil
}

// fetchProfile запрашивает профиль текущего пользователя; nil при любой неудаче
func (c *Cli) fetchProfile(ctx context.Context) *models.User {
	jar := NewJar(ctx, c.storage)

	resp, err := c.apiClient.Get(ctx, jar, "/auth/me", nil)
	if err != nil {
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	env := api.ParseEnvelope(respBody)
	if env == nil || !env.Success {
		return nil
	}

	payload := []byte(env.Data)
	if len(payload) == 0 {
		payload = respBody
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil
	}

	return &user
}

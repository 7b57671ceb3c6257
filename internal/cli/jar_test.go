package cli

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterfit/gateway/internal/clistorage"
	"github.com/hunterfit/gateway/internal/cookies"
)

// memAuthStorage — AuthStorage в памяти для тестов
type memAuthStorage struct {
	mu   sync.Mutex
	auth *clistorage.AuthData
}

func (m *memAuthStorage) SaveAuth(ctx context.Context, auth *clistorage.AuthData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *auth
	m.auth = &copied
	return nil
}

func (m *memAuthStorage) GetAuth(ctx context.Context) (*clistorage.AuthData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.auth == nil {
		return nil, clistorage.ErrAuthNotFound
	}
	copied := *m.auth
	return &copied, nil
}

func (m *memAuthStorage) DeleteAuth(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = nil
	return nil
}

func (m *memAuthStorage) IsAuthenticated(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.auth != nil && (m.auth.AccessToken != "" || m.auth.RefreshToken != ""), nil
}

// TestJar_Get проверяет чтение токенов по именам cookie
func TestJar_Get(t *testing.T) {
	storage := &memAuthStorage{auth: &clistorage.AuthData{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}}
	jar := NewJar(context.Background(), storage)

	assert.Equal(t, "access-1", jar.Get(cookies.AccessToken))
	assert.Equal(t, "refresh-1", jar.Get(cookies.RefreshToken))
	assert.Equal(t, "", jar.Get("unknown"))
}

// TestJar_Get_NoSession проверяет чтение при отсутствии сессии
func TestJar_Get_NoSession(t *testing.T) {
	jar := NewJar(context.Background(), &memAuthStorage{})

	assert.Equal(t, "", jar.Get(cookies.AccessToken))
}

// TestJar_PersistTokens проверяет сохранение пары токенов
func TestJar_PersistTokens(t *testing.T) {
	storage := &memAuthStorage{auth: &clistorage.AuthData{
		Email:        "hunter@example.com",
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
	}}
	jar := NewJar(context.Background(), storage)

	// Частичное обновление: refresh token сохраняется
	jar.PersistTokens("new-access", "")

	auth, err := storage.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access", auth.AccessToken)
	assert.Equal(t, "old-refresh", auth.RefreshToken)
	assert.Equal(t, "hunter@example.com", auth.Email)
	assert.Positive(t, auth.ExpiresAt)
}

// TestJar_PersistTokens_FreshSession проверяет сохранение без
// существующей записи
func TestJar_PersistTokens_FreshSession(t *testing.T) {
	storage := &memAuthStorage{}
	jar := NewJar(context.Background(), storage)

	jar.PersistTokens("access-1", "refresh-1")

	auth, err := storage.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", auth.AccessToken)
	assert.Equal(t, "refresh-1", auth.RefreshToken)
}

// TestJar_Delete проверяет удаление токенов
func TestJar_Delete(t *testing.T) {
	t.Run("deleting one token keeps the record", func(t *testing.T) {
		storage := &memAuthStorage{auth: &clistorage.AuthData{
			AccessToken:  "a",
			RefreshToken: "r",
		}}
		jar := NewJar(context.Background(), storage)

		jar.Delete(cookies.AccessToken)

		auth, err := storage.GetAuth(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "", auth.AccessToken)
		assert.Equal(t, "r", auth.RefreshToken)
	})

	t.Run("deleting both tokens removes the record", func(t *testing.T) {
		storage := &memAuthStorage{auth: &clistorage.AuthData{
			AccessToken:  "a",
			RefreshToken: "r",
		}}
		jar := NewJar(context.Background(), storage)

		jar.Delete(cookies.AccessToken)
		jar.Delete(cookies.RefreshToken)

		_, err := storage.GetAuth(context.Background())
		assert.ErrorIs(t, err, clistorage.ErrAuthNotFound)
	})

	t.Run("deleting without session is a no-op", func(t *testing.T) {
		jar := NewJar(context.Background(), &memAuthStorage{})

		assert.NotPanics(t, func() {
			jar.Delete(cookies.AccessToken)
		})
	})
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hunterfit/gateway/internal/clistorage"
	"github.com/hunterfit/gateway/internal/cookies"
)

// Jar адаптирует clistorage.AuthStorage к apiclient.CredentialJar:
// токены, которые в браузере живут в cookie, у hunterctl лежат в BoltDB.
// Методы интерфейса не возвращают ошибок, поэтому сбои хранилища
// уходят в stderr, а не наружу.
type Jar struct {
	ctx     context.Context
	storage clistorage.AuthStorage
}

// NewJar создает Jar поверх локального хранилища
func NewJar(ctx context.Context, storage clistorage.AuthStorage) *Jar {
	return &Jar{ctx: ctx, storage: storage}
}

// Get возвращает токен по имени cookie, "" если его нет
func (j *Jar) Get(name string) string {
	auth, err := j.storage.GetAuth(j.ctx)
	if err != nil {
		if err != clistorage.ErrAuthNotFound {
			fmt.Fprintf(os.Stderr, "Warning: failed to read auth data: %v\n", err)
		}
		return ""
	}

	switch name {
	case cookies.AccessToken:
		return auth.AccessToken
	case cookies.RefreshToken:
		return auth.RefreshToken
	default:
		return ""
	}
}

// Delete удаляет токен по имени cookie.
// Когда оба токена пусты, запись удаляется целиком.
func (j *Jar) Delete(name string) {
	auth, err := j.storage.GetAuth(j.ctx)
	if err != nil {
		return
	}

	switch name {
	case cookies.AccessToken:
		auth.AccessToken = ""
		auth.ExpiresAt = 0
	case cookies.RefreshToken:
		auth.RefreshToken = ""
	default:
		return
	}

	if auth.AccessToken == "" && auth.RefreshToken == "" {
		if err := j.storage.DeleteAuth(j.ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete auth data: %v\n", err)
		}
		return
	}

	if err := j.storage.SaveAuth(j.ctx, auth); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save auth data: %v\n", err)
	}
}

// PersistTokens сохраняет новую пару токенов; пустые аргументы
// оставляют сохраненные значения без изменений
func (j *Jar) PersistTokens(access, refresh string) {
	auth, err := j.storage.GetAuth(j.ctx)
	if err != nil {
		if err != clistorage.ErrAuthNotFound {
			fmt.Fprintf(os.Stderr, "Warning: failed to read auth data: %v\n", err)
			return
		}
		auth = &clistorage.AuthData{}
	}

	if access != "" {
		auth.AccessToken = access
		auth.ExpiresAt = time.Now().Add(cookies.DefaultAccessTTL).Unix()
	}
	if refresh != "" {
		auth.RefreshToken = refresh
	}

	if err := j.storage.SaveAuth(j.ctx, auth); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save auth data: %v\n", err)
	}
}

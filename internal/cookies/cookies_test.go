package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts Options, reqCookies ...*http.Cookie) (*Store, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range reqCookies {
		r.AddCookie(c)
	}

	return New(w, r, opts), w
}

// findCookie возвращает последнюю записанную cookie с данным именем
func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}

	return found
}

// TestNew_PanicsOnNil проверяет панику при отсутствии контекста запроса
func TestNew_PanicsOnNil(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Panics(t, func() { New(nil, r, Options{}) })
	assert.Panics(t, func() { New(httptest.NewRecorder(), nil, Options{}) })
}

// TestStore_Set проверяет атрибуты безопасности записываемой cookie
func TestStore_Set(t *testing.T) {
	store, w := newTestStore(t, Options{Secure: true})

	store.Set(AccessToken, "token-value", time.Hour)

	cookie := findCookie(t, w, AccessToken)
	require.NotNil(t, cookie)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

// TestStore_Set_InsecureInDevelopment проверяет, что Secure управляется опциями
func TestStore_Set_InsecureInDevelopment(t *testing.T) {
	store, w := newTestStore(t, Options{Secure: false})

	store.Set(AccessToken, "token-value", time.Hour)

	cookie := findCookie(t, w, AccessToken)
	require.NotNil(t, cookie)
	assert.False(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
}

// TestStore_Get проверяет чтение входящих cookie
func TestStore_Get(t *testing.T) {
	store, _ := newTestStore(t, Options{}, &http.Cookie{Name: AccessToken, Value: "incoming"})

	assert.Equal(t, "incoming", store.Get(AccessToken))
	assert.Equal(t, "", store.Get(RefreshToken))
}

// TestStore_Get_SeesOwnWrites проверяет, что записи текущего запроса
// видны через Get до отправки ответа
func TestStore_Get_SeesOwnWrites(t *testing.T) {
	store, _ := newTestStore(t, Options{}, &http.Cookie{Name: AccessToken, Value: "old"})

	store.Set(AccessToken, "new", time.Hour)

	assert.Equal(t, "new", store.Get(AccessToken))
}

// TestStore_Delete проверяет удаление cookie
func TestStore_Delete(t *testing.T) {
	store, w := newTestStore(t, Options{}, &http.Cookie{Name: AccessToken, Value: "incoming"})

	store.Delete(AccessToken)

	cookie := findCookie(t, w, AccessToken)
	require.NotNil(t, cookie)
	assert.Equal(t, "", cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)

	// Удаленная cookie не видна через Get в рамках запроса
	assert.Equal(t, "", store.Get(AccessToken))
}

// TestStore_Delete_Idempotent проверяет, что повторное удаление
// не меняет наблюдаемое состояние
func TestStore_Delete_Idempotent(t *testing.T) {
	store, _ := newTestStore(t, Options{})

	// Удаление отсутствующей cookie не паникует и не ошибается
	store.Delete(AccessToken)
	assert.Equal(t, "", store.Get(AccessToken))

	store.Delete(AccessToken)
	assert.Equal(t, "", store.Get(AccessToken))
}

// TestStore_PersistTokens проверяет сохранение пары токенов
func TestStore_PersistTokens(t *testing.T) {
	store, w := newTestStore(t, Options{
		AccessTTL:  time.Hour,
		RefreshTTL: 30 * 24 * time.Hour,
	})

	store.PersistTokens("access-1", "refresh-1")

	access := findCookie(t, w, AccessToken)
	require.NotNil(t, access)
	assert.Equal(t, "access-1", access.Value)
	assert.Equal(t, 3600, access.MaxAge)

	refresh := findCookie(t, w, RefreshToken)
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-1", refresh.Value)
	assert.Equal(t, 2592000, refresh.MaxAge)
}

// TestStore_PersistTokens_SkipsEmpty проверяет, что пустой аргумент
// не затирает существующую cookie
func TestStore_PersistTokens_SkipsEmpty(t *testing.T) {
	store, w := newTestStore(t, Options{},
		&http.Cookie{Name: RefreshToken, Value: "existing-refresh"})

	store.PersistTokens("access-2", "")

	assert.NotNil(t, findCookie(t, w, AccessToken))
	// Refresh cookie не записывалась вовсе
	assert.Nil(t, findCookie(t, w, RefreshToken))
	// Действующий refresh token остался доступен
	assert.Equal(t, "existing-refresh", store.Get(RefreshToken))
}

// TestNew_DefaultTTL проверяет подстановку TTL по умолчанию
func TestNew_DefaultTTL(t *testing.T) {
	store, w := newTestStore(t, Options{})

	store.PersistTokens("a", "r")

	access := findCookie(t, w, AccessToken)
	require.NotNil(t, access)
	assert.Equal(t, int(DefaultAccessTTL.Seconds()), access.MaxAge)

	refresh := findCookie(t, w, RefreshToken)
	require.NotNil(t, refresh)
	assert.Equal(t, int(DefaultRefreshTTL.Seconds()), refresh.MaxAge)
}

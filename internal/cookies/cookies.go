// cookies реализует хранилище учетных данных (credential store) поверх
// cookie-пары запрос/ответ. Store привязан ровно к одной паре
// http.ResponseWriter + *http.Request — никакого глобального состояния
// между запросами нет, каждый запрос работает со своим экземпляром.
package cookies

import (
	"net/http"
	"time"
)

// Имена cookie с токенами
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

// Время жизни cookie по умолчанию
const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// Options задает политику атрибутов cookie.
// Общие атрибуты (HttpOnly, SameSite=Lax, Path=/) фиксированы и
// применяются ко всем записям; настраивается только Secure и TTL.
type Options struct {
	Secure     bool          // true в production
	AccessTTL  time.Duration // время жизни access token cookie
	RefreshTTL time.Duration // время жизни refresh token cookie
}

// Store — типизированная обертка над cookie одного запроса.
// Записи видны через Get в рамках того же запроса (overlay поверх
// входящих cookie), чтобы refresh мог перечитать только что
// сохраненный access token до отправки ответа клиенту.
type Store struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    Options
	pending map[string]*string // nil значение — cookie удалена
}

// New создает Store для пары запрос/ответ.
// Паникует при nil-аргументах: отсутствие контекста cookie — фатальная
// ошибка конфигурации, а не восстановимая ситуация.
func New(w http.ResponseWriter, r *http.Request, opts Options) *Store {
	if w == nil || r == nil {
		panic("cookies: nil ResponseWriter or Request")
	}

	if opts.AccessTTL <= 0 {
		opts.AccessTTL = DefaultAccessTTL
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = DefaultRefreshTTL
	}

	return &Store{
		w:       w,
		r:       r,
		opts:    opts,
		pending: make(map[string]*string),
	}
}

// Set записывает cookie с общими атрибутами безопасности
func (s *Store) Set(name, value string, maxAge time.Duration) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	v := value
	s.pending[name] = &v
}

// Get возвращает значение cookie или пустую строку, если cookie нет.
// Никогда не возвращает ошибку. Записи текущего запроса имеют
// приоритет над входящими cookie.
func (s *Store) Get(name string) string {
	if v, ok := s.pending[name]; ok {
		if v == nil {
			return ""
		}
		return *v
	}

	cookie, err := s.r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Delete удаляет cookie. Идемпотентна: удаление отсутствующей cookie
// не является ошибкой и не меняет наблюдаемое состояние.
func (s *Store) Delete(name string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	s.pending[name] = nil
}

// PersistTokens сохраняет пару токенов. Пустой аргумент означает
// "не трогать эту cookie" — ответ refresh-эндпойнта может вернуть
// только новый access token, и действующий refresh token не должен
// быть затерт.
func (s *Store) PersistTokens(access, refresh string) {
	if access != "" {
		s.Set(AccessToken, access, s.opts.AccessTTL)
	}
	if refresh != "" {
		s.Set(RefreshToken, refresh, s.opts.RefreshTTL)
	}
}

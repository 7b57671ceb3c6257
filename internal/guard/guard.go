// guard реализует route guard: перехватывает каждый входящий запрос и
// до любого рендеринга решает, аутентифицирован ли посетитель и имеет ли
// он доступ к запрошенному пути. Неавторизованные запросы получают
// редирект, а не ошибку.
package guard

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/cookies"
	"github.com/hunterfit/gateway/internal/models"
	"github.com/hunterfit/gateway/internal/tokens"
)

// Пути, участвующие в матрице редиректов
const (
	loginPath    = "/login"
	registerPath = "/register"
	homePath     = "/"
	userPrefix   = "/user"
	adminPrefix  = "/admin"
)

// bypassPrefixes — статика и служебные пути, для которых проверка
// аутентификации не выполняется вовсе
var bypassPrefixes = []string{
	"/static/",
	"/assets/",
	"/api/",
	"/healthz",
	"/favicon.ico",
}

// bypassExtensions — файлы, отдаваемые как есть (изображения, стили, скрипты)
var bypassExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true,
	".css": true, ".js": true, ".map": true,
	".woff": true, ".woff2": true,
}

// Refresher — то, что guard'у нужно от клиента бекенда.
// Реализуется apiclient.Client.
type Refresher interface {
	Refresh(ctx context.Context, jar apiclient.CredentialJar) bool
}

type identityContextKey struct{}

// IdentityFromContext возвращает identity текущего запроса, если guard ее разрешил
func IdentityFromContext(ctx context.Context) (*tokens.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*tokens.Identity)
	return id, ok
}

// Middleware создает route guard.
//
// Матрица решений (по порядку):
//  1. статика и служебные пути — пропуск без проверки;
//  2. разрешаем identity из access cookie; при неудаче — одна попытка
//     refresh и повторное разрешение;
//  3. /login и /register с identity — редирект на /;
//  4. /user/* без identity — редирект на /login;
//  5. /admin/* без identity или с ролью != ADMIN — редирект на /login;
//  6. иначе запрос проходит дальше.
//
// Просроченный, битый и отсутствующий токены неразличимы для
// пользователя: все три дают один и тот же редирект, guard из этих
// веток никогда не паникует.
func Middleware(logger *slog.Logger, secret []byte, opts cookies.Options, refresher Refresher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqPath := cleanPath(r.URL.Path)

			if bypassed(reqPath) {
				next.ServeHTTP(w, r)
				return
			}

			jar := cookies.New(w, r, opts)
			identity := resolveIdentity(r.Context(), jar, secret, refresher)

			// Аутентифицированному пользователю нечего делать на формах входа
			if identity != nil && (reqPath == loginPath || reqPath == registerPath) {
				http.Redirect(w, r, homePath, http.StatusFound)
				return
			}

			if hasPrefix(reqPath, userPrefix) && identity == nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			if hasPrefix(reqPath, adminPrefix) {
				if identity == nil || identity.Role != models.RoleAdmin {
					if identity != nil {
						logger.Warn("admin area denied",
							"path", reqPath,
							"user_id", identity.UserID,
							"role", identity.Role)
					}
					http.Redirect(w, r, loginPath, http.StatusFound)
					return
				}
			}

			if identity != nil {
				ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveIdentity декодирует access token; при любой неудаче делает одну
// попытку refresh и перечитывает возможно обновленный токен.
// Неудача декодирования и неудача refresh эквивалентны "identity нет".
func resolveIdentity(ctx context.Context, jar *cookies.Store, secret []byte, refresher Refresher) *tokens.Identity {
	if token := jar.Get(cookies.AccessToken); token != "" {
		if identity, err := tokens.ParseIdentity(token, secret); err == nil {
			return identity
		}
	}

	if refresher == nil || !refresher.Refresh(ctx, jar) {
		return nil
	}

	token := jar.Get(cookies.AccessToken)
	if token == "" {
		return nil
	}

	identity, err := tokens.ParseIdentity(token, secret)
	if err != nil {
		return nil
	}

	return identity
}

// bypassed сообщает, что путь не подлежит проверке аутентификации
func bypassed(reqPath string) bool {
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(reqPath, prefix) {
			return true
		}
	}

	return bypassExtensions[strings.ToLower(path.Ext(reqPath))]
}

// hasPrefix проверяет префикс пути по сегментам:
// /user и /user/profile совпадают, /username — нет
func hasPrefix(reqPath, prefix string) bool {
	return reqPath == prefix || strings.HasPrefix(reqPath, prefix+"/")
}

// cleanPath нормализует путь запроса (без trailing slash, кроме корня)
func cleanPath(reqPath string) string {
	if reqPath == "" {
		return homePath
	}

	cleaned := path.Clean(reqPath)
	if cleaned == "." {
		return homePath
	}

	return cleaned
}

// audit ведет журнал событий аутентификации: входы, регистрации,
// отклоненные refresh, смены пароля. Журнал — наблюдаемость, а не
// состояние сессии: никакое решение об авторизации от него не зависит.
package audit

import "time"

// Kind — тип события аудита
type Kind string

const (
	KindLoginOK         Kind = "login_ok"
	KindLoginFailed     Kind = "login_failed"
	KindRegisterOK      Kind = "register_ok"
	KindRegisterFailed  Kind = "register_failed"
	KindLogout          Kind = "logout"
	KindRefreshFailed   Kind = "refresh_failed"
	KindPasswordChanged Kind = "password_changed"
	KindPasswordFailed  Kind = "password_change_failed"
)

// Event представляет одно событие аудита
type Event struct {
	ID         string    `json:"id"`          // UUID события
	Kind       Kind      `json:"kind"`        // тип события
	Subject    string    `json:"subject"`     // email или id пользователя, может быть пустым
	RemoteAddr string    `json:"remote_addr"` // адрес клиента
	Detail     string    `json:"detail"`      // дополнительный контекст, без секретов
	CreatedAt  time.Time `json:"created_at"`  // время события
}

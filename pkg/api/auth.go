package api

import "encoding/json"

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Name     string `json:"name"`             // отображаемое имя охотника
	Email    string `json:"email"`            // email пользователя
	Password string `json:"password"`         // пароль
	Gender   string `json:"gender,omitempty"` // опционально
	Age      int    `json:"age,omitempty"`    // опционально
}

// ChangePasswordRequest представляет запрос на смену пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Envelope — общий конверт ответа бекенда HunterFit.
// Бекенд непоследователен: сообщение об ошибке может лежать в error.message
// или в message на верхнем уровне, токены — в нескольких местах (см. tokens.ExtractPair).
// Envelope поглощает эту непоследовательность в одном месте.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   *ErrorBody        `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty"`
}

// ErrorBody — вложенный объект ошибки в ответе бекенда
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorMessage возвращает человекочитаемое сообщение об ошибке.
// Приоритет: error.message, затем message, затем fallback.
func (e *Envelope) ErrorMessage(fallback string) string {
	if e == nil {
		return fallback
	}
	if e.Error != nil && e.Error.Message != "" {
		return e.Error.Message
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// ParseEnvelope парсит тело ответа бекенда.
// Невалидный JSON не является ошибкой — возвращается nil,
// вызывающая сторона трактует это как неуспешный ответ.
func ParseEnvelope(body []byte) *Envelope {
	if len(body) == 0 {
		return nil
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	return &env
}

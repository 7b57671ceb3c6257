package models

import "encoding/json"

// ActionResult — единый контракт результата для всех session actions
// (login, register, logout, смена пароля, обновление профиля).
// UI-слой обрабатывает ровно одну форму ответа.
type ActionResult struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	RedirectTo string            `json:"redirectTo,omitempty"` // редирект как явное поле результата, не исключение
}

// Succeeded создает успешный результат
func Succeeded(message string, data json.RawMessage) ActionResult {
	return ActionResult{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Failed создает неуспешный результат с сообщением
func Failed(message string) ActionResult {
	return ActionResult{
		Success: false,
		Message: message,
	}
}

// ValidationFailed создает результат с ошибками валидации по полям.
// Такой результат возвращается до любого обращения к бекенду.
func ValidationFailed(errors map[string]string) ActionResult {
	return ActionResult{
		Success: false,
		Message: "Validation failed",
		Errors:  errors,
	}
}

package models

import "time"

// Роли пользователей в системе
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User представляет профиль пользователя (охотника) из ответа бекенда
type User struct {
	ID        string    `json:"id"`                  // UUID пользователя
	Name      string    `json:"name"`                // отображаемое имя
	Email     string    `json:"email"`               // email
	Role      string    `json:"role"`                // USER или ADMIN
	XP        int64     `json:"xp"`                  // накопленный опыт
	Rank      string    `json:"rank"`                // ранг охотника (E..S)
	AvatarURL string    `json:"avatarUrl,omitempty"` // ссылка на аватар
	CreatedAt time.Time `json:"createdAt"`           // время регистрации
}

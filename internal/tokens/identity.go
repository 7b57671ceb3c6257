package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity — подтвержденная личность из access token.
// Вычисляется по требованию на каждый запрос и нигде не сохраняется:
// истекший или невалидный токен означает отсутствие identity.
type Identity struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// accessClaims представляет JWT claims access token бекенда HunterFit
type accessClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseIdentity валидирует подпись access token и извлекает identity.
// Любая проблема (неверная подпись, истекший срок, мусор вместо токена)
// возвращается как ошибка — вызывающий код трактует ее как "identity нет".
func ParseIdentity(tokenString string, secret []byte) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	// Бекенд кладет id пользователя в claim "id"; sub — запасной вариант
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	identity := &Identity{
		UserID: userID,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	return identity, nil
}

package validation

import (
	"fmt"
	"regexp"
)

// emailPattern — упрощенная проверка формата email.
// Полная проверка RFC 5322 здесь не нужна: бекенд делает свою валидацию,
// наша задача — отсечь заведомо невалидный ввод до сетевого вызова.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MinNameLen минимальная длина имени
	MinNameLen = 2
	// MaxNameLen максимальная длина имени
	MaxNameLen = 50
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen максимальная длина пароля
	MaxPasswordLen = 72
)

// ValidateEmail проверяет, что email имеет правдоподобный формат
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email format is invalid")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Длина: 8-72 символа
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}

// ValidateName проверяет отображаемое имя пользователя
// Длина: 2-50 символов
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) < MinNameLen {
		return fmt.Errorf("name must be at least %d characters long", MinNameLen)
	}

	if len(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}

	return nil
}

// ValidateAge проверяет опциональный возраст (0 означает "не указан")
func ValidateAge(age int) error {
	if age == 0 {
		return nil
	}

	if age < 10 || age > 100 {
		return fmt.Errorf("age must be between 10 and 100")
	}

	return nil
}

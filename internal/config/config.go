// config предоставляет структуру конфигурации gateway и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config — корневая конфигурация gateway.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл config.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env   string      `yaml:"env" env:"ENV" env-default:"development"`
	HTTP  HTTPConfig  `yaml:"http"`
	API   APIConfig   `yaml:"api"`
	Auth  AuthConfig  `yaml:"auth"`
	Audit AuditConfig `yaml:"audit"`
}

// HTTPConfig — сетевые настройки HTTP-сервера gateway.
type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// APIConfig — настройки доступа к бекенду HunterFit.
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_API_URL" env-default:"http://localhost:5000/api"`
}

// AuthConfig содержит параметры проверки токенов и времена жизни cookie.
// JWT_ACCESS_SECRET используется только для локальной проверки подписи
// access token внутри route guard — токены выпускает бекенд.
type AuthConfig struct {
	AccessSecret    string        `yaml:"access_secret" env:"JWT_ACCESS_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"720h"`
}

// AuditConfig — настройки локального журнала аудита.
type AuditConfig struct {
	Path   string `yaml:"path" env:"AUDIT_DB_PATH" env-default:"hunterfit-audit.db"`
	Buffer int    `yaml:"buffer" env:"AUDIT_BUFFER" env-default:"256"`
}

// IsProduction сообщает, что gateway работает в production окружении.
// От этого зависит атрибут Secure у cookie и детальность сообщений об ошибках.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию с учетом приоритета источников.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	return &cfg, nil
}

// apiclient реализует HTTP клиент к бекенду HunterFit с прозрачным
// обновлением сессии: каждый исходящий запрос несет текущий access token,
// а ответ 401 переживает ровно один цикл refresh-and-retry.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hunterfit/gateway/internal/cookies"
)

// maxAuthRetries — максимум повторов после refresh.
// Ровно один: защита от бесконечного цикла против бекенда,
// который всегда отвечает 401.
const maxAuthRetries = 1

// CredentialJar — то, что клиенту нужно от хранилища учетных данных.
// Реализуется cookies.Store (gateway) и clistorage.Jar (hunterctl).
type CredentialJar interface {
	Get(name string) string
	Delete(name string)
	PersistTokens(access, refresh string)
}

// RequestOptions — стандартные опции запроса
type RequestOptions struct {
	Body   []byte
	Header http.Header
}

// Client представляет HTTP клиент для взаимодействия с бекендом
type Client struct {
	httpClient *http.Client
	baseURL    string

	// Вызывается, когда бекенд отклонил refresh token и сессия
	// принудительно завершена. Опционален.
	onRefreshRejected func(ctx context.Context)
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// OnRefreshRejected регистрирует обработчик отклоненного refresh.
// Срабатывает только на вердикте бекенда: пустой refresh token
// и сетевые ошибки его не вызывают.
func (c *Client) OnRefreshRejected(fn func(ctx context.Context)) {
	c.onRefreshRejected = fn
}

// BaseURL возвращает базовый адрес бекенда
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do выполняет запрос к бекенду с прикрепленным access token.
// jar == nil означает "сырой" путь без токена и без refresh —
// им пользуются login/register, у которых сессии еще нет.
//
// Ответ возвращается как есть: клиент не парсит JSON и не считает
// не-2xx статус ошибкой — интерпретация на вызывающей стороне.
func (c *Client) Do(ctx context.Context, jar CredentialJar, method, path string, opts *RequestOptions) (*http.Response, error) {
	return c.do(ctx, jar, method, path, opts, 0)
}

func (c *Client) do(ctx context.Context, jar CredentialJar, method, path string, opts *RequestOptions, attempt int) (*http.Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if opts != nil && len(opts.Body) > 0 {
		bodyReader = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if opts != nil {
		for key, values := range opts.Header {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	if jar != nil {
		if token := jar.Get(cookies.AccessToken); token != "" {
			// Authorization выставляем только если вызывающий код
			// не задал свой заголовок
			if req.Header.Get("Authorization") == "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			// Дублируем токен в Cookie: часть эндпойнтов бекенда
			// читает cookie, а не bearer-заголовок
			req.AddCookie(&http.Cookie{Name: cookies.AccessToken, Value: token})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	// 401: пробуем один раз обновить токены и повторить исходный запрос.
	// Если refresh не удался или повтор тоже вернул 401 — отдаем ответ
	// вызывающему без изменений.
	if resp.StatusCode == http.StatusUnauthorized && jar != nil && attempt < maxAuthRetries {
		if c.Refresh(ctx, jar) {
			_ = resp.Body.Close()
			return c.do(ctx, jar, method, path, opts, attempt+1)
		}
	}

	return resp, nil
}

// Get выполняет GET запрос
func (c *Client) Get(ctx context.Context, jar CredentialJar, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Do(ctx, jar, http.MethodGet, path, opts)
}

// Post выполняет POST запрос
func (c *Client) Post(ctx context.Context, jar CredentialJar, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Do(ctx, jar, http.MethodPost, path, opts)
}

// Put выполняет PUT запрос
func (c *Client) Put(ctx context.Context, jar CredentialJar, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Do(ctx, jar, http.MethodPut, path, opts)
}

// Patch выполняет PATCH запрос
func (c *Client) Patch(ctx context.Context, jar CredentialJar, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Do(ctx, jar, http.MethodPatch, path, opts)
}

// Delete выполняет DELETE запрос
func (c *Client) Delete(ctx context.Context, jar CredentialJar, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Do(ctx, jar, http.MethodDelete, path, opts)
}

// JSONOptions — хелпер для JSON-запросов
func JSONOptions(body []byte) *RequestOptions {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &RequestOptions{Body: body, Header: header}
}

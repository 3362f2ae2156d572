// Package api - HTTP клиент бэкенда Linglong.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"linglong/internal/logger"
)

const (
	DefaultURL     = "http://localhost:5000"
	DefaultTimeout = 15 * time.Second

	// TokenKey - ключ токена сессии в хранилище.
	TokenKey = "linglong_token"
)

// ErrEmptyAudio - сервер не вернул ссылку на аудио.
var ErrEmptyAudio = errors.New("empty audio url")

// Error - ошибка ответа сервера.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// TokenStore хранит токен сессии.
type TokenStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Config конфигурация клиента.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client представляет клиент бэкенда.
type Client struct {
	baseURL    string
	store      TokenStore
	httpClient *http.Client
	log        *logger.Logger
}

// New создаёт новый клиент.
func New(cfg Config, store TokenStore, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	base := strings.TrimRight(cfg.URL, "/")
	if base == "" {
		base = DefaultURL
	}

	return &Client{
		baseURL: base,
		store:   store,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With("component", "api"),
	}
}

// BaseURL возвращает адрес сервера.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Secure возвращает true, если канал до сервера защищён:
// HTTPS или локальный адрес.
func (c *Client) Secure() bool {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	if u.Scheme == "https" {
		return true
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Resolve превращает относительную ссылку сервера в абсолютную.
func (c *Client) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// Health проверяет доступность сервера.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.request(ctx, http.MethodGet, "/health", nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register регистрирует пользователя и сохраняет токен.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/register", req, false, &out); err != nil {
		return nil, err
	}
	c.keepToken(out.Token)
	return &out, nil
}

// Login выполняет вход и сохраняет токен.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := loginRequest{Email: email, Password: password}
	if err := c.request(ctx, http.MethodPost, "/api/auth/login", body, false, &out); err != nil {
		return nil, err
	}
	c.keepToken(out.Token)
	return &out, nil
}

// Me возвращает текущего пользователя.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.request(ctx, http.MethodGet, "/api/auth/me", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reels возвращает ролики.
func (c *Client) Reels(ctx context.Context) ([]Reel, error) {
	var out []Reel
	if err := c.request(ctx, http.MethodGet, "/api/reels", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReelBatches возвращает пачки роликов.
func (c *Client) ReelBatches(ctx context.Context) ([]ReelBatch, error) {
	var out []ReelBatch
	if err := c.request(ctx, http.MethodGet, "/api/reels/batches", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TTS запрашивает озвучку текста. Возвращает ссылку на аудио как её
// отдал сервер (может быть относительной).
func (c *Client) TTS(ctx context.Context, text, language, voice string) (string, error) {
	var out ttsResponse
	body := ttsRequest{Text: text, Language: language, Voice: voice}
	if err := c.request(ctx, http.MethodPost, "/api/tts-stt/tts", body, true, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.AudioURL) == "" {
		return "", ErrEmptyAudio
	}
	return out.AudioURL, nil
}

// STT распознаёт речь. audio - ссылка или data: URI.
func (c *Client) STT(ctx context.Context, audio, language string) (string, error) {
	var out sttResponse
	body := sttRequest{AudioURLOrBase64: audio, Language: language}

	start := time.Now()
	if err := c.request(ctx, http.MethodPost, "/api/tts-stt/stt", body, true, &out); err != nil {
		return "", err
	}
	c.log.Debug("распознавание на сервере", "bytes", len(audio), "took", time.Since(start).Round(time.Millisecond))
	return strings.TrimSpace(out.Text), nil
}

func (c *Client) keepToken(token string) {
	if token == "" {
		return
	}
	if err := c.SetToken(token); err != nil {
		c.log.Warn("не удалось сохранить токен", "error", err)
	}
}

func (c *Client) request(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPatch) {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newError(status int, data []byte) *Error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := "Request failed"
	if json.Unmarshal(data, &body) == nil {
		switch {
		case body.Error != "":
			msg = body.Error
		case body.Message != "":
			msg = body.Message
		}
	}
	return &Error{Status: status, Message: msg}
}

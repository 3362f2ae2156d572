package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token возвращает сохранённый токен или пустую строку.
func (c *Client) Token() string {
	if c.store == nil {
		return ""
	}
	token, ok, err := c.store.Get(TokenKey)
	if err != nil || !ok {
		return ""
	}
	return token
}

// SetToken сохраняет токен. Пустой токен удаляет сохранённый.
func (c *Client) SetToken(token string) error {
	if c.store == nil {
		return nil
	}
	if token == "" {
		return c.store.Delete(TokenKey)
	}
	return c.store.Set(TokenKey, token)
}

// HasValidToken проверяет, что токен есть и не истёк.
// Подпись не проверяется: это делает сервер.
func (c *Client) HasValidToken() bool {
	return tokenValid(c.Token(), time.Now())
}

func tokenValid(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}

package security

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pdf-summary-server/config"
)

// AuthClient : проверяет bearer-токен обменом на личность у удалённого
// auth-сервиса. Перед сетевым вызовом токен дёшево проверяется локально
// (формат JWT и срок действия), чтобы не гонять заведомый мусор по сети
type AuthClient struct {
	baseURL   string
	anonKey   string
	jwtSecret []byte
	client    *http.Client
}

func NewAuthClient(cfg *config.AuthConfig) *AuthClient {
	timeout := 30 * time.Second
	if cfg.Timeout != "" {
		if parsed, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = parsed
		}
	}

	return &AuthClient{
		baseURL:   strings.TrimRight(cfg.URL, "/"),
		anonKey:   cfg.AnonKey,
		jwtSecret: []byte(cfg.JWTSecret),
		client:    &http.Client{Timeout: timeout},
	}
}

func (c *AuthClient) VerifyToken(ctx context.Context, token string) (*Principal, error) {
	if err := c.precheckToken(token); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, &AuthError{Reason: "ошибка создания запроса", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &AuthError{Reason: "auth-сервис недоступен", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{Reason: "токен отклонён auth-сервисом"}
	}

	var principal Principal
	if err := json.NewDecoder(resp.Body).Decode(&principal); err != nil {
		return nil, &AuthError{Reason: "ошибка разбора ответа auth-сервиса", Err: err}
	}

	if principal.UserUUID == "" {
		return nil, &AuthError{Reason: "auth-сервис не вернул идентификатор пользователя"}
	}

	return &principal, nil
}

// precheckToken : локальная проверка до сетевого вызова. При заданном
// секрете проверяется и подпись (HS256), иначе только структура и exp
func (c *AuthClient) precheckToken(token string) error {
	claims := jwt.MapClaims{}

	if len(c.jwtSecret) > 0 {
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Header["alg"] != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("неверный способ подписи токена: %v", t.Header["alg"])
			}
			return c.jwtSecret, nil
		})
		if err != nil || parsed.Valid == false {
			return &AuthError{Reason: "невалидная подпись токена", Err: err}
		}
		return nil
	}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &AuthError{Reason: "некорректный формат токена", Err: err}
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil {
		return &AuthError{Reason: "некорректный срок действия токена", Err: err}
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return &AuthError{Reason: "срок действия токена истёк"}
	}

	return nil
}

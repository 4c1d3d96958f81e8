package security

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// Principal : аутентифицированный пользователь, полученный от auth-сервиса
type Principal struct {
	UserUUID string `json:"id"`
	Email    string `json:"email"`
}

// AuthError : токен отсутствует, некорректен или отклонён auth-сервисом
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ошибка аутентификации: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ошибка аутентификации: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TokenVerifier : обмен bearer-токена на личность пользователя
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Principal, error)
}

// GetPrincipalFromContext : достаёт пользователя, положенного middleware
func GetPrincipalFromContext(ctx context.Context) (*Principal, error) {
	principal, ok := ctx.Value(UserContextKey).(*Principal)
	if ok == false || principal == nil {
		return nil, &AuthError{Reason: "пользователь не найден в контексте"}
	}
	return principal, nil
}

// AuthMiddleware : отклоняет запрос до любой работы конвейера, если
// заголовок отсутствует или токен не прошёл проверку
func AuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				writeUnauthorized(writer, "требуется заголовок Authorization")
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")
			if strings.TrimSpace(token) == "" {
				writeUnauthorized(writer, "пустой токен")
				return
			}

			principal, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				log.Printf("[AuthMiddleware] невалидный токен: %v", err)
				writeUnauthorized(writer, "невалидный токен")
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, principal))
			next.ServeHTTP(writer, req)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"detail":%q}`, detail)
}

package security_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdf-summary-server/internal/security"
)

type MockTokenVerifier struct{ mock.Mock }

func (m *MockTokenVerifier) VerifyToken(ctx context.Context, token string) (*security.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Principal), args.Error(1)
}

func runThroughMiddleware(t *testing.T, verifier security.TokenVerifier, authorization string) (*httptest.ResponseRecorder, *security.Principal) {
	t.Helper()

	var seen *security.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := security.GetPrincipalFromContext(r.Context())
		require.NoError(t, err)
		seen = principal
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/summaries", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	recorder := httptest.NewRecorder()
	security.AuthMiddleware(verifier)(next).ServeHTTP(recorder, req)
	return recorder, seen
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	verifier := new(MockTokenVerifier)

	recorder, _ := runThroughMiddleware(t, verifier, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	verifier.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body["detail"])
}

func TestAuthMiddleware_NotBearerScheme(t *testing.T) {
	verifier := new(MockTokenVerifier)

	recorder, _ := runThroughMiddleware(t, verifier, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	verifier.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_EmptyToken(t *testing.T) {
	verifier := new(MockTokenVerifier)

	recorder, _ := runThroughMiddleware(t, verifier, "Bearer   ")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	verifier.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	verifier := new(MockTokenVerifier)
	verifier.On("VerifyToken", mock.Anything, "плохой-токен").
		Return(nil, &security.AuthError{Reason: "токен отклонён auth-сервисом"})

	recorder, _ := runThroughMiddleware(t, verifier, "Bearer плохой-токен")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_PutsPrincipalIntoContext(t *testing.T) {
	verifier := new(MockTokenVerifier)
	verifier.On("VerifyToken", mock.Anything, "хороший-токен").
		Return(&security.Principal{UserUUID: "owner-1", Email: "user@example.com"}, nil)

	recorder, principal := runThroughMiddleware(t, verifier, "Bearer хороший-токен")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "owner-1", principal.UserUUID)
}

func TestGetPrincipalFromContext_Missing(t *testing.T) {
	_, err := security.GetPrincipalFromContext(context.Background())

	var authErr *security.AuthError
	require.ErrorAs(t, err, &authErr)
}

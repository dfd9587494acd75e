package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/content-service/pkg/util"
)

func newProtectedApp(t *testing.T, tm *TokenManager) (*fiber.App, *string) {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		},
	})

	var observed string
	app.Get("/protected", NewMiddleware(tm).Handle, func(c *fiber.Ctx) error {
		subjectID, ok := SubjectFromContext(c)
		require.True(t, ok)
		observed = subjectID
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &observed
}

func TestMiddleware_MissingOrMalformedHeader(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app, _ := newProtectedApp(t, tm)

	cases := map[string]string{
		"no header":      "",
		"not bearer":     "Basic abc123",
		"missing token":  "Bearer",
		"garbage scheme": "Token abc.def.ghi",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app, _ := newProtectedApp(t, tm)

	other := NewTokenManager("other-secret", 60)
	foreign, _, err := other.GenerateToken("user-42")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"malformed":    "not-a-token",
		"wrong secret": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	issuer := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	verifier := NewTokenManager("test-secret", 60)
	app, _ := newProtectedApp(t, verifier)

	expired, _, err := issuer.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_ValidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app, observed := newProtectedApp(t, tm)

	token, _, err := tm.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-42", *observed)
}

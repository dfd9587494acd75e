package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/content-service/pkg/util"
)

const subjectKey = "auth_subject"

// Middleware guards protected routes by validating bearer tokens. It does not
// consult the user directory: a token is proof of identity until it expires,
// and downstream handlers perform their own lookups.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around a token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Every failure --
// missing header, malformed token, bad signature, expiry -- collapses to the
// same generic unauthorized error so callers cannot probe which check failed.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized()
	}

	subjectID, err := m.tokens.VerifyToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized()
	}

	c.Locals(subjectKey, subjectID)
	return c.Next()
}

// SubjectFromContext retrieves the authenticated subject id attached by Handle.
func SubjectFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(subjectKey)
	if val == nil {
		return "", false
	}
	subjectID, ok := val.(string)
	return subjectID, ok && subjectID != ""
}

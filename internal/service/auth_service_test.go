package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/config"
	"github.com/spec-kit/content-service/internal/domain"
	apperrors "github.com/spec-kit/content-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func asDomainError(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo})

	user, err := svc.Register(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	stored, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", stored.PasswordHash, "plaintext must never be persisted")
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "pw123"))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo})

	_, err := svc.Register(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "other-pw")
	domainErr := asDomainError(t, err)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	assert.Equal(t, "User already exists", domainErr.Message)
	assert.Equal(t, 400, domainErr.HTTPStatus)

	assert.Len(t, repo.users, 1, "directory must contain exactly one subject for the email")
}

// blindPrecheckRepo simulates losing the registration race: the pre-check
// sees no user, but the insert hits the unique constraint.
type blindPrecheckRepo struct {
	*fakeUserRepo
}

func (r *blindPrecheckRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func TestAuthService_Register_RaceOnInsert(t *testing.T) {
	repo := &blindPrecheckRepo{fakeUserRepo: newFakeUserRepo()}
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo})

	_, err := svc.Register(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "pw123")
	domainErr := asDomainError(t, err)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	assert.Len(t, repo.users, 1)
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.failWith = errors.New("connection refused")
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo})

	_, err := svc.Register(context.Background(), "alice@example.com", "pw123")
	domainErr := asDomainError(t, err)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, 500, domainErr.HTTPStatus)
	assert.NotContains(t, domainErr.Message, "connection refused", "backend detail must not surface")
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo})

	registered, err := svc.Register(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subjectID, err := svc.TokenManager().VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, subjectID)
}

func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo})

	_, err := svc.Register(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)

	_, _, _, errWrongPassword := svc.Login(context.Background(), "alice@example.com", "wrong")
	_, _, _, errUnknownEmail := svc.Login(context.Background(), "nobody@example.com", "pw123")

	wrongPw := asDomainError(t, errWrongPassword)
	unknown := asDomainError(t, errUnknownEmail)
	assert.Equal(t, wrongPw.Code, unknown.Code)
	assert.Equal(t, wrongPw.Message, unknown.Message)
	assert.Equal(t, wrongPw.HTTPStatus, unknown.HTTPStatus)
	assert.Equal(t, "Invalid credentials", wrongPw.Message)
	assert.Equal(t, 401, wrongPw.HTTPStatus)
}

func TestAuthService_Login_MissingSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	repo := newFakeUserRepo()
	svc := NewAuthService(cfg, AuthDependencies{UserRepo: repo})

	_, err := svc.Register(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "pw123")
	domainErr := asDomainError(t, err)
	assert.Equal(t, "CONFIGURATION_ERROR", domainErr.Code)
	assert.Equal(t, 500, domainErr.HTTPStatus)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"assurdoc/internal/config"
	"assurdoc/internal/domain"
	"assurdoc/internal/service"
	"assurdoc/mocks"
)

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "assurdoc-test",
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "agent@assurdoc.fr",
		PasswordHash: string(hash),
		FullName:     "Agent Test",
		Role:         domain.RoleAgent,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	user := activeUser(t, "correct-password")
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", context.Background(), user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, jwtConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleAgent, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := activeUser(t, "correct-password")
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", context.Background(), user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, jwtConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", context.Background(), "nobody@assurdoc.fr").Return(nil, domain.ErrNotFound)

	svc := service.NewAuthService(userRepo, jwtConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@assurdoc.fr",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	user := activeUser(t, "correct-password")
	user.IsActive = false
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", context.Background(), user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, jwtConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRefreshToken_Success(t *testing.T) {
	user := activeUser(t, "correct-password")
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", context.Background(), user.Email).Return(user, nil)
	userRepo.On("GetByID", context.Background(), user.ID).Return(user, nil)

	svc := service.NewAuthService(userRepo, jwtConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	user := activeUser(t, "correct-password")
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", context.Background(), user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, jwtConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), jwtConfig())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	user := activeUser(t, "correct-password")
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", context.Background(), user.Email).Return(user, nil)

	issuer := service.NewAuthService(userRepo, jwtConfig())
	pair, err := issuer.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	otherCfg := jwtConfig()
	otherCfg.Secret = "different-secret"
	verifier := service.NewAuthService(new(mocks.MockUserRepo), otherCfg)

	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

package service

import (
	"context"
	"testing"
	"time"

	identityerrors "fleetrent/internal/identity/errors"
	"fleetrent/pkg/config"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	usersByEmail map[string]*model.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{usersByEmail: make(map[string]*model.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if _, exists := m.usersByEmail[user.Email]; exists {
		return identityerrors.ErrDuplicateEmail
	}
	user.ID = "d4c3b2a1-0f9e-4d8c-b7a6-5e4d3c2b1a09"
	m.usersByEmail[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, exists := m.usersByEmail[email]
	if !exists {
		return nil, identityerrors.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, user := range m.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, identityerrors.ErrNotFound
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		JWTSecret: "test-secret-do-not-use",
		JWTExpiry: time.Hour,
	}
}

func TestRegisterLoginVerifyRoundtrip(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIdentityService(newMockUserRepository(), cfg)

	user, err := svc.Register(context.Background(), &model.Registration{
		Email:    " Ops@Example.COM ",
		FullName: "Fleet Operator",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	token, err := svc.Login(context.Background(), &model.Credentials{
		Email:    "ops@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestLogin_WrongPassword(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIdentityService(newMockUserRepository(), cfg)

	_, err := svc.Register(context.Background(), &model.Registration{
		Email:    "ops@example.com",
		FullName: "Fleet Operator",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.Credentials{
		Email:    "ops@example.com",
		Password: "wrong password!",
	})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestLogin_UnknownEmailSameMessage(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIdentityService(newMockUserRepository(), cfg)

	_, err := svc.Login(context.Background(), &model.Credentials{
		Email:    "nobody@example.com",
		Password: "whatever password",
	})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
	// Must be indistinguishable from a wrong-password failure.
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIdentityService(newMockUserRepository(), cfg)

	_, err := svc.Register(context.Background(), &model.Registration{
		Email:    "ops@example.com",
		FullName: "Fleet Operator",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &model.Registration{
		Email:    "OPS@example.com",
		FullName: "Other Operator",
		Password: "another password!",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIdentityService(newMockUserRepository(), cfg)

	_, err := svc.Register(context.Background(), &model.Registration{
		Email:    "ops@example.com",
		FullName: "Fleet Operator",
		Password: "short",
	})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "Password")
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIdentityService(newMockUserRepository(), cfg)

	_, err := svc.Register(context.Background(), &model.Registration{
		Email:    "ops@example.com",
		FullName: "Fleet Operator",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), &model.Credentials{
		Email:    "ops@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	otherCfg := testConfig(t)
	otherCfg.JWTSecret = "a different secret"
	otherSvc := NewIdentityService(newMockUserRepository(), otherCfg)

	_, err = otherSvc.VerifyToken(token)
	assert.ErrorIs(t, err, identityerrors.ErrInvalidToken)
}

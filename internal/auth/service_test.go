package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgAuth "github.com/balasre/pharmacare-backend/pkg/auth"
	"github.com/balasre/pharmacare-backend/pkg/auth/session"
	"github.com/balasre/pharmacare-backend/pkg/config"
	"github.com/balasre/pharmacare-backend/pkg/db/models"
	"github.com/balasre/pharmacare-backend/pkg/enums"
	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"github.com/balasre/pharmacare-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "pharmacare",
	ExpirationMinutes: 15,
}

var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    32768,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type stubUserRepo struct {
	byUsername map[string]*models.User
	nextID     int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byUsername: map[string]*models.User{}, nextID: 1}
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, exists := s.byUsername[user.Username]; exists {
		return nil, errors.New("UNIQUE constraint failed: users.username")
	}
	user.ID = s.nextID
	s.nextID++
	s.byUsername[user.Username] = user
	return user, nil
}

type stubAdminRepo struct {
	byUsername map[string]*models.Admin
}

func (s *stubAdminRepo) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if admin, ok := s.byUsername[username]; ok {
		return admin, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessionManager struct {
	generated map[string]string
	revoked   []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{generated: map[string]string{}}
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	token := fmt.Sprintf("refresh-%s", accessID)
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.generated, oldAccessID)
	newAccessID := session.NewAccessID()
	token, _ := s.Generate(ctx, newAccessID)
	return newAccessID, token, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.generated, accessID)
	return nil
}

func newTestAuthService(t *testing.T) (Service, *stubUserRepo, *stubAdminRepo, *stubSessionManager) {
	t.Helper()
	users := newStubUserRepo()
	admins := &stubAdminRepo{byUsername: map[string]*models.Admin{}}
	sessions := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		UserRepo:       users,
		AdminRepo:      admins,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
		PasswordConfig: testPasswordConfig,
	})
	require.NoError(t, err)
	return svc, users, admins, sessions
}

func TestLoginAutoRegistersNewAccount(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "Asha", Password: "secret-pass"})
	require.NoError(t, err)
	assert.True(t, resp.Registered)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "asha", resp.User.Username)

	stored := users.byUsername["asha"]
	require.NotNil(t, stored)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "secret-pass", *stored.PasswordHash)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, enums.ActorRoleCustomer, claims.Role)
}

func TestLoginExistingAccountRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	first, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "secret-pass"})
	require.NoError(t, err)
	require.True(t, first.Registered)

	second, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "secret-pass"})
	require.NoError(t, err)
	assert.False(t, second.Registered)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "wrong"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestAdminLogin(t *testing.T) {
	svc, _, admins, _ := newTestAuthService(t)

	hash, err := security.HashPassword("admin-pass", testPasswordConfig)
	require.NoError(t, err)
	admins.byUsername["root"] = &models.Admin{ID: 1, Username: "root", PasswordHash: hash}

	resp, err := svc.AdminLogin(context.Background(), LoginRequest{Username: "root", Password: "admin-pass"})
	require.NoError(t, err)
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.ActorRoleAdmin, claims.Role)

	_, err = svc.AdminLogin(context.Background(), LoginRequest{Username: "root", Password: "nope"})
	require.Error(t, err)
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, _, sessions := newTestAuthService(t)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "secret-pass"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old pair no longer rotates.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())

	_ = sessions
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _, sessions := newTestAuthService(t)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "secret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), LogoutRequest{AccessToken: login.AccessToken}))
	require.Len(t, sessions.revoked, 1)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
}

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/password"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userUID, email, phone, city string) (int, error) {
	args := m.Called(ctx, userUID, email, phone, city)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour, 24*time.Hour)
}

func activeUser(t *testing.T, rawPassword string) *models.User {
	t.Helper()
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
}

func TestRegister_HashesPasswordAndSetsDefaults(t *testing.T) {
	repo := new(MockUserRepository)
	svc := New(repo, newMaker(), newNoopLogger())

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == models.RoleUser &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret-password" &&
			password.CompareHash(u.PasswordHash, "secret-password") == nil
	})).Return("uid-9", nil)

	uid, err := svc.Register(context.Background(), models.DummyRegister{
		Email:    "new@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-9", uid)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := New(repo, newMaker(), newNoopLogger())

	user := activeUser(t, "secret-password")
	repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)
	repo.On("TouchLastLogin", mock.Anything, "uid-1").Return(nil)

	token, refresh, role, err := svc.Login(context.Background(), "user@example.com", "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, models.RoleUser, role)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserUID)

	repo.AssertCalled(t, "TouchLastLogin", mock.Anything, "uid-1")
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := New(repo, newMaker(), newNoopLogger())

	repo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(activeUser(t, "secret-password"), nil)

	_, _, _, err := svc.Login(context.Background(), "user@example.com", "wrong-password")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	repo.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := New(repo, newMaker(), newNoopLogger())

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, models.ErrNotFound)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc := New(repo, newMaker(), newNoopLogger())

	user := activeUser(t, "secret-password")
	user.IsActive = false
	repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)

	_, _, _, err := svc.Login(context.Background(), "user@example.com", "secret-password")
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestRefresh_Success(t *testing.T) {
	repo := new(MockUserRepository)
	maker := newMaker()
	svc := New(repo, maker, newNoopLogger())

	refreshToken, err := maker.GenerateRefreshToken("user@example.com", models.RoleUser, "uid-1")
	require.NoError(t, err)

	repo.On("GetUser", mock.Anything, "uid-1").Return(activeUser(t, "x"), nil)

	token, refresh, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refresh)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := new(MockUserRepository)
	maker := newMaker()
	svc := New(repo, maker, newNoopLogger())

	accessToken, err := maker.GenerateToken("user@example.com", models.RoleUser, "uid-1")
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	repo := new(MockUserRepository)
	maker := newMaker()
	svc := New(repo, maker, newNoopLogger())

	refreshToken, err := maker.GenerateRefreshToken("user@example.com", models.RoleUser, "uid-1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestProfile_HidesSensitiveFields(t *testing.T) {
	repo := new(MockUserRepository)
	svc := New(repo, newMaker(), newNoopLogger())

	lastLogin := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
		UID:       "uid-1",
		Email:     "user@example.com",
		Phone:     "+70000000000",
		City:      "Moscow",
		LastLogin: &lastLogin,
	}, nil)

	profile, err := svc.Profile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", profile.Email)
	assert.Equal(t, "Moscow", profile.City)
	require.NotNil(t, profile.LastLogin)
	assert.Equal(t, lastLogin, *profile.LastLogin)
}

package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/config"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/rabbitmq"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindIdleActiveUsers(ctx context.Context, cutoff time.Time) ([]*models.User, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testCfg() config.Scheduler {
	return config.Scheduler{
		DeactivationInterval: 24 * time.Hour,
		InactivityThreshold:  720 * time.Hour,
	}
}

func TestDeactivateIdleUsers_DeactivatesAndNotifies(t *testing.T) {
	repo := new(MockUserRepository)
	pub := new(MockPublisher)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	svc := New(repo, pub, testCfg(), newNoopLogger())
	svc.now = func() time.Time { return now }

	users := []*models.User{
		{UID: "uid-1", Email: "a@example.com"},
		{UID: "uid-2", Email: "b@example.com"},
	}
	repo.On("FindIdleActiveUsers", mock.Anything, now.Add(-720*time.Hour)).Return(users, nil)
	repo.On("DeactivateUser", mock.Anything, "uid-1").Return(1, nil)
	repo.On("DeactivateUser", mock.Anything, "uid-2").Return(1, nil)
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyAccountDeactivated,
		models.DeactivationInfo{Email: "a@example.com"}).Return(nil)
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyAccountDeactivated,
		models.DeactivationInfo{Email: "b@example.com"}).Return(nil)

	err := svc.DeactivateIdleUsers(context.Background())
	require.NoError(t, err)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestDeactivateIdleUsers_SkipsNotifyWhenAlreadyInactive(t *testing.T) {
	repo := new(MockUserRepository)
	pub := new(MockPublisher)
	svc := New(repo, pub, testCfg(), newNoopLogger())

	users := []*models.User{{UID: "uid-1", Email: "a@example.com"}}
	repo.On("FindIdleActiveUsers", mock.Anything, mock.Anything).Return(users, nil)
	// другой проход успел деактивировать пользователя первым
	repo.On("DeactivateUser", mock.Anything, "uid-1").Return(0, nil)

	err := svc.DeactivateIdleUsers(context.Background())
	require.NoError(t, err)

	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeactivateIdleUsers_OneFailureDoesNotStopRun(t *testing.T) {
	repo := new(MockUserRepository)
	pub := new(MockPublisher)
	svc := New(repo, pub, testCfg(), newNoopLogger())

	users := []*models.User{
		{UID: "uid-1", Email: "a@example.com"},
		{UID: "uid-2", Email: "b@example.com"},
	}
	repo.On("FindIdleActiveUsers", mock.Anything, mock.Anything).Return(users, nil)
	repo.On("DeactivateUser", mock.Anything, "uid-1").Return(0, errors.New("db error"))
	repo.On("DeactivateUser", mock.Anything, "uid-2").Return(1, nil)
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyAccountDeactivated,
		models.DeactivationInfo{Email: "b@example.com"}).Return(nil)

	err := svc.DeactivateIdleUsers(context.Background())
	require.NoError(t, err)

	pub.AssertExpectations(t)
}

func TestDeactivateIdleUsers_RepositoryError(t *testing.T) {
	repo := new(MockUserRepository)
	pub := new(MockPublisher)
	svc := New(repo, pub, testCfg(), newNoopLogger())

	repo.On("FindIdleActiveUsers", mock.Anything, mock.Anything).
		Return(nil, errors.New("db error"))

	err := svc.DeactivateIdleUsers(context.Background())
	assert.Error(t, err)
}

package subscription

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockRepository) FindSubscription(ctx context.Context, userUID string, courseID int) (int, bool, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockRepository) CreateSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestToggle_CreatesWhenMissing(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, newNoopLogger())

	repo.On("ReadCourse", mock.Anything, 10).Return(&models.Course{ID: 10}, nil)
	repo.On("FindSubscription", mock.Anything, "user-1", 10).Return(0, false, nil)
	repo.On("CreateSubscription", mock.Anything, "user-1", 10).Return(5, nil)

	outcome, err := svc.Toggle(context.Background(), "user-1", 10)
	require.NoError(t, err)
	assert.Equal(t, models.SubscribeOutcomeSubscribed, outcome)

	repo.AssertNotCalled(t, "RemoveSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggle_RemovesWhenPresent(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, newNoopLogger())

	repo.On("ReadCourse", mock.Anything, 10).Return(&models.Course{ID: 10}, nil)
	repo.On("FindSubscription", mock.Anything, "user-1", 10).Return(5, true, nil)
	repo.On("RemoveSubscription", mock.Anything, "user-1", 10).Return(1, nil)

	outcome, err := svc.Toggle(context.Background(), "user-1", 10)
	require.NoError(t, err)
	assert.Equal(t, models.SubscribeOutcomeUnsubscribed, outcome)

	repo.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggle_CourseNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, newNoopLogger())

	repo.On("ReadCourse", mock.Anything, 99).Return(nil, models.ErrNotFound)

	_, err := svc.Toggle(context.Background(), "user-1", 99)
	assert.ErrorIs(t, err, models.ErrNotFound)

	repo.AssertNotCalled(t, "FindSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggle_RoundTrip(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, newNoopLogger())

	repo.On("ReadCourse", mock.Anything, 10).Return(&models.Course{ID: 10}, nil)
	repo.On("FindSubscription", mock.Anything, "user-1", 10).Return(0, false, nil).Once()
	repo.On("CreateSubscription", mock.Anything, "user-1", 10).Return(5, nil).Once()
	repo.On("FindSubscription", mock.Anything, "user-1", 10).Return(5, true, nil).Once()
	repo.On("RemoveSubscription", mock.Anything, "user-1", 10).Return(1, nil).Once()

	outcome, err := svc.Toggle(context.Background(), "user-1", 10)
	require.NoError(t, err)
	assert.Equal(t, models.SubscribeOutcomeSubscribed, outcome)

	outcome, err = svc.Toggle(context.Background(), "user-1", 10)
	require.NoError(t, err)
	assert.Equal(t, models.SubscribeOutcomeUnsubscribed, outcome)

	repo.AssertExpectations(t)
}

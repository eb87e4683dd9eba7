package notifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/rabbitmq"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) ListSubscriberEmails(ctx context.Context, courseID int) ([]string, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body any) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestNotifySubscribers_OneMessagePerSubscriber(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	pub := new(MockPublisher)
	svc := New(repo, pub, newNoopLogger())

	repo.On("ListSubscriberEmails", mock.Anything, 7).
		Return([]string{"a@example.com", "b@example.com"}, nil)
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyCourseUpdated,
		models.CourseUpdateInfo{Email: "a@example.com", CourseTitle: "Go Basics"}).Return(nil).Once()
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyCourseUpdated,
		models.CourseUpdateInfo{Email: "b@example.com", CourseTitle: "Go Basics"}).Return(nil).Once()

	err := svc.NotifySubscribers(context.Background(), 7, "Go Basics")
	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestNotifySubscribers_PublishFailureDoesNotStopFanout(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	pub := new(MockPublisher)
	svc := New(repo, pub, newNoopLogger())

	repo.On("ListSubscriberEmails", mock.Anything, 7).
		Return([]string{"a@example.com", "b@example.com"}, nil)
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyCourseUpdated,
		models.CourseUpdateInfo{Email: "a@example.com", CourseTitle: "Go Basics"}).
		Return(errors.New("channel closed")).Once()
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyCourseUpdated,
		models.CourseUpdateInfo{Email: "b@example.com", CourseTitle: "Go Basics"}).Return(nil).Once()

	err := svc.NotifySubscribers(context.Background(), 7, "Go Basics")
	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestNotifySubscribers_NoSubscribers(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	pub := new(MockPublisher)
	svc := New(repo, pub, newNoopLogger())

	repo.On("ListSubscriberEmails", mock.Anything, 7).Return([]string{}, nil)

	err := svc.NotifySubscribers(context.Background(), 7, "Go Basics")
	require.NoError(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifySubscribers_RepositoryError(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	pub := new(MockPublisher)
	svc := New(repo, pub, newNoopLogger())

	repo.On("ListSubscriberEmails", mock.Anything, 7).
		Return(nil, errors.New("connection refused"))

	err := svc.NotifySubscribers(context.Background(), 7, "Go Basics")
	assert.Error(t, err)
}

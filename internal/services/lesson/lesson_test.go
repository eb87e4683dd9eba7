package lesson

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

	"github.com/magabrotheeeer/course-platform/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateLesson(ctx context.Context, lesson models.Lesson) (int, error) {
	args := m.Called(ctx, lesson)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockRepository) ListLessonsByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Lesson, error) {
	args := m.Called(ctx, ownerUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockRepository) ListAllLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockRepository) UpdateLesson(ctx context.Context, lesson models.Lesson, id int) (int, error) {
	args := m.Called(ctx, lesson, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateLessonPartial(ctx context.Context, lesson models.Lesson, id int) (int, error) {
	args := m.Called(ctx, lesson, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveLesson(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockRepository) TouchCourse(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySubscribers(ctx context.Context, courseID int, courseTitle string) error {
	args := m.Called(ctx, courseID, courseTitle)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validUpdateReq() models.DummyLesson {
	return models.DummyLesson{
		CourseID:    10,
		Title:       "Introduction",
		Description: "Updated lesson",
		VideoURL:    "https://www.youtube.com/watch?v=abc123",
	}
}

func TestUpdate_NotifiesWhenCourseIsStale(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, Title: "Goroutines", OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-5 * time.Hour)}, nil)
	repo.On("UpdateLesson", mock.Anything, mock.AnythingOfType("models.Lesson"), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)
	notifier.On("NotifySubscribers", mock.Anything, 10, "Goroutines").Return(nil)

	res, err := svc.Update(context.Background(), 1, "owner-1", models.RoleUser, validUpdateReq())
	require.NoError(t, err)
	assert.Equal(t, 1, res)

	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdate_SkipsNotifyWhenCourseRecentlyUpdated(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-3 * time.Hour)}, nil)
	repo.On("UpdateLesson", mock.Anything, mock.AnythingOfType("models.Lesson"), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)

	_, err := svc.Update(context.Background(), 1, "owner-1", models.RoleUser, validUpdateReq())
	require.NoError(t, err)

	notifier.AssertNotCalled(t, "NotifySubscribers", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdate_ExactThresholdNotifies(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, Title: "Goroutines", OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-courseStaleness)}, nil)
	repo.On("UpdateLesson", mock.Anything, mock.AnythingOfType("models.Lesson"), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)
	notifier.On("NotifySubscribers", mock.Anything, 10, "Goroutines").Return(nil)

	_, err := svc.Update(context.Background(), 1, "owner-1", models.RoleUser, validUpdateReq())
	require.NoError(t, err)

	notifier.AssertExpectations(t)
}

func TestUpdate_ForbiddenForStranger(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	svc := New(repo, notifier, newNoopLogger())

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, OwnerUID: "owner-1"}, nil)

	_, err := svc.Update(context.Background(), 1, "stranger", models.RoleUser, validUpdateReq())
	assert.ErrorIs(t, err, models.ErrForbidden)

	repo.AssertNotCalled(t, "UpdateLesson", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_ModeratorAllowed(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-time.Hour)}, nil)
	repo.On("UpdateLesson", mock.Anything, mock.AnythingOfType("models.Lesson"), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)

	_, err := svc.Update(context.Background(), 1, "moderator-1", models.RoleModerator, validUpdateReq())
	assert.NoError(t, err)
}

func TestUpdate_RejectsNonYoutubeLink(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	svc := New(repo, notifier, newNoopLogger())

	req := validUpdateReq()
	req.VideoURL = "https://vimeo.com/12345"

	_, err := svc.Update(context.Background(), 1, "owner-1", models.RoleUser, req)
	assert.ErrorIs(t, err, models.ErrValidation)

	repo.AssertNotCalled(t, "ReadLesson", mock.Anything, mock.Anything)
}

func TestUpdate_NotifyErrorDoesNotFailUpdate(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, Title: "Goroutines", OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-24 * time.Hour)}, nil)
	repo.On("UpdateLesson", mock.Anything, mock.AnythingOfType("models.Lesson"), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)
	notifier.On("NotifySubscribers", mock.Anything, 10, "Goroutines").
		Return(errors.New("broker unavailable"))

	res, err := svc.Update(context.Background(), 1, "owner-1", models.RoleUser, validUpdateReq())
	require.NoError(t, err)
	assert.Equal(t, 1, res)
}

func TestCreate_ChecksCourseExists(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	svc := New(repo, notifier, newNoopLogger())

	repo.On("ReadCourse", mock.Anything, 10).Return(nil, models.ErrNotFound)

	_, err := svc.Create(context.Background(), "owner-1", validUpdateReq())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestList_ScopedByRole(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	svc := New(repo, notifier, newNoopLogger())

	own := []*models.Lesson{{ID: 1, OwnerUID: "owner-1"}}
	all := []*models.Lesson{{ID: 1}, {ID: 2}}

	repo.On("ListLessonsByOwner", mock.Anything, "owner-1", 10, 0).Return(own, nil)
	repo.On("ListAllLessons", mock.Anything, 10, 0).Return(all, nil)

	res, err := svc.List(context.Background(), "owner-1", models.RoleUser, 10, 0)
	require.NoError(t, err)
	assert.Len(t, res, 1)

	res, err = svc.List(context.Background(), "moderator-1", models.RoleModerator, 10, 0)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestPartialUpdate_PassesOnlyFilledFields(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, Title: "Goroutines", OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-time.Hour)}, nil)
	repo.On("UpdateLessonPartial", mock.Anything, mock.MatchedBy(func(l models.Lesson) bool {
		return l.Title == "" && l.Description == "Refreshed" && l.VideoURL == ""
	}), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)

	res, err := svc.PartialUpdate(context.Background(), 1, "owner-1", models.RoleUser, models.PatchLesson{
		Description: "Refreshed",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res)

	repo.AssertNotCalled(t, "UpdateLesson", mock.Anything, mock.Anything, mock.Anything)
}

func TestPartialUpdate_EmptyVideoURLKeepsCurrent(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, Title: "Goroutines", OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-time.Hour)}, nil)
	repo.On("UpdateLessonPartial", mock.Anything, mock.AnythingOfType("models.Lesson"), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)

	_, err := svc.PartialUpdate(context.Background(), 1, "owner-1", models.RoleUser, models.PatchLesson{
		Title: "Channels",
	})
	require.NoError(t, err)
}

func TestPartialUpdate_RejectsNonYoutubeLink(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	svc := New(repo, notifier, newNoopLogger())

	_, err := svc.PartialUpdate(context.Background(), 1, "owner-1", models.RoleUser, models.PatchLesson{
		VideoURL: "https://vimeo.com/12345",
	})
	assert.ErrorIs(t, err, models.ErrValidation)

	repo.AssertNotCalled(t, "ReadLesson", mock.Anything, mock.Anything)
}

func TestPartialUpdate_NotifiesWhenCourseIsStale(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := New(repo, notifier, newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, Title: "Goroutines", OwnerUID: "owner-1"}, nil)
	repo.On("ReadCourse", mock.Anything, 10).
		Return(&models.Course{ID: 10, Title: "Go Basics", UpdatedAt: now.Add(-5 * time.Hour)}, nil)
	repo.On("UpdateLessonPartial", mock.Anything, mock.AnythingOfType("models.Lesson"), 1).Return(1, nil)
	repo.On("TouchCourse", mock.Anything, 10).Return(nil)
	notifier.On("NotifySubscribers", mock.Anything, 10, "Goroutines").Return(nil)

	_, err := svc.PartialUpdate(context.Background(), 1, "owner-1", models.RoleUser, models.PatchLesson{
		Description: "Refreshed",
	})
	require.NoError(t, err)

	notifier.AssertExpectations(t)
}

func TestPartialUpdate_ForbiddenForStranger(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	svc := New(repo, notifier, newNoopLogger())

	repo.On("ReadLesson", mock.Anything, 1).
		Return(&models.Lesson{ID: 1, CourseID: 10, OwnerUID: "owner-1"}, nil)

	_, err := svc.PartialUpdate(context.Background(), 1, "stranger", models.RoleUser, models.PatchLesson{
		Description: "Refreshed",
	})
	assert.ErrorIs(t, err, models.ErrForbidden)

	repo.AssertNotCalled(t, "UpdateLessonPartial", mock.Anything, mock.Anything, mock.Anything)
}

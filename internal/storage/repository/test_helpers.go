package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/course-platform/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, email, passwordHash, role string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, password_hash, role)
		VALUES ($1, $2, $3, $4)`,
		userUID, email, passwordHash, role)
	require.NoError(t, err)
}

// SetLastLogin выставляет время последнего входа пользователя
func (f *TestDataFactory) SetLastLogin(t *testing.T, userUID string, lastLogin time.Time) {
	_, err := f.storage.DB.Exec(`UPDATE users SET last_login = $1 WHERE uid = $2`,
		lastLogin, userUID)
	require.NoError(t, err)
}

// SetCreatedAt выставляет время создания аккаунта
func (f *TestDataFactory) SetCreatedAt(t *testing.T, userUID string, createdAt time.Time) {
	_, err := f.storage.DB.Exec(`UPDATE users SET created_at = $1 WHERE uid = $2`,
		createdAt, userUID)
	require.NoError(t, err)
}

// CreateCourse создает тестовый курс и возвращает его ID
func (f *TestDataFactory) CreateCourse(t *testing.T, title, description, ownerUID string, price int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO courses (title, description, owner_uid, price)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		title, description, ownerUID, price).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateLesson создает тестовый урок и возвращает его ID
func (f *TestDataFactory) CreateLesson(t *testing.T, courseID int, title, videoURL, ownerUID string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO lessons (course_id, title, description, video_url, owner_uid)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		courseID, title, "description", videoURL, ownerUID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку и возвращает её ID
func (f *TestDataFactory) CreateSubscription(t *testing.T, userUID string, courseID int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions (user_uid, course_id)
		VALUES ($1, $2) RETURNING id`,
		userUID, courseID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreatePayment создает тестовый платеж и возвращает его ID
func (f *TestDataFactory) CreatePayment(t *testing.T, userUID string, courseID, lessonID *int,
	amount int, method, stripePaymentID, stripeStatus string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO payments
		(user_uid, paid_course_id, paid_lesson_id, amount, payment_method, stripe_payment_id, stripe_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userUID, courseID, lessonID, amount, method, stripePaymentID, stripeStatus).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит методы проверки состояния базы после операций
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый набор проверок
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyCourseExists проверяет, что курс существует
func (v *TestVerification) VerifyCourseExists(t *testing.T, courseID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM courses WHERE id = $1", courseID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyCourseDeleted проверяет, что курс удален
func (v *TestVerification) VerifyCourseDeleted(t *testing.T, courseID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM courses WHERE id = $1", courseID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// VerifyUserActive проверяет признак активности аккаунта
func (v *TestVerification) VerifyUserActive(t *testing.T, userUID string, expected bool) {
	var isActive bool
	err := v.storage.DB.QueryRow("SELECT is_active FROM users WHERE uid = $1", userUID).Scan(&isActive)
	require.NoError(t, err)
	require.Equal(t, expected, isActive)
}

// VerifySubscriptionCount проверяет количество подписок на курс
func (v *TestVerification) VerifySubscriptionCount(t *testing.T, courseID, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM subscriptions WHERE course_id = $1", courseID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// setupTestDatabase поднимает контейнер PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("5432/tcp")),
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	require.NoError(t, migrations.Run(storage.DB, "../../../migrations"), "failed to apply migrations")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}

package sender

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

type MockClient struct {
	mock.Mock
	data bytes.Buffer
}

func (m *MockClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return nopWriteCloser{&m.data}, args.Error(1)
}

func (m *MockClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

type MockTransport struct {
	mock.Mock
	client smtp.Client
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if m.client == nil {
		return nil, args.Error(0)
	}
	return m.client, args.Error(0)
}

func (m *MockTransport) GetSMTPUser() string {
	return "noreply@platform.example"
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newHappyClient() *MockClient {
	client := new(MockClient)
	client.On("Mail", "noreply@platform.example").Return(nil)
	client.On("Rcpt", mock.Anything).Return(nil)
	client.On("Data").Return(nopWriteCloser{}, nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)
	return client
}

func TestSendCourseUpdated(t *testing.T) {
	client := newHappyClient()
	transport := &MockTransport{client: client}
	transport.On("Connect").Return(nil)

	svc := NewSenderService(transport, newNoopLogger())

	body, err := json.Marshal(models.CourseUpdateInfo{
		Email:       "student@example.com",
		CourseTitle: "Go Basics",
	})
	require.NoError(t, err)

	err = svc.SendCourseUpdated(body)
	require.NoError(t, err)

	client.AssertCalled(t, "Rcpt", "student@example.com")
	assert.Contains(t, client.data.String(), "Go Basics")
	assert.Contains(t, client.data.String(), "To: student@example.com")
}

func TestSendAccountDeactivated(t *testing.T) {
	client := newHappyClient()
	transport := &MockTransport{client: client}
	transport.On("Connect").Return(nil)

	svc := NewSenderService(transport, newNoopLogger())

	body, err := json.Marshal(models.DeactivationInfo{Email: "idle@example.com"})
	require.NoError(t, err)

	err = svc.SendAccountDeactivated(body)
	require.NoError(t, err)

	client.AssertCalled(t, "Rcpt", "idle@example.com")
	assert.Contains(t, client.data.String(), "To: idle@example.com")
}

func TestSendCourseUpdated_BadJSON(t *testing.T) {
	transport := &MockTransport{}
	svc := NewSenderService(transport, newNoopLogger())

	err := svc.SendCourseUpdated([]byte("not a json"))
	assert.Error(t, err)

	transport.AssertNotCalled(t, "Connect")
}

func TestSendCourseUpdated_ConnectError(t *testing.T) {
	transport := &MockTransport{}
	transport.On("Connect").Return(errors.New("dial failed"))

	svc := NewSenderService(transport, newNoopLogger())

	body, err := json.Marshal(models.CourseUpdateInfo{Email: "a@example.com", CourseTitle: "x"})
	require.NoError(t, err)

	err = svc.SendCourseUpdated(body)
	assert.Error(t, err)
}

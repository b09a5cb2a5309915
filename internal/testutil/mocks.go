package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dimitrije/carshare/internal/operations"
)

// MockStorage mocks localstore.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStorage) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStorage) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockTransport mocks the transport client used by the auth session
type MockTransport struct {
	mock.Mock
}

// Execute returns args.Error(0). When args.Get(1) is a func(out any) it is
// called first so tests can fill the caller's result.
func (m *MockTransport) Execute(ctx context.Context, kind operations.Kind, vars operations.Variables, out any) error {
	args := m.Called(ctx, kind, vars, out)
	if len(args) > 1 {
		if fill, ok := args.Get(1).(func(out any)); ok {
			fill(out)
		}
	}
	return args.Error(0)
}

func (m *MockTransport) SetAuthToken(token string) {
	m.Called(token)
}

func (m *MockTransport) ClearAuthToken() {
	m.Called()
}

// MockCodeSender mocks the verification code mailer
type MockCodeSender struct {
	mock.Mock
}

func (m *MockCodeSender) SendVerificationCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

// MockDispatcher mocks the operation dispatcher behind the HTTP handlers
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Execute(ctx context.Context, kind operations.Kind, vars operations.Variables) (operations.Response, error) {
	args := m.Called(ctx, kind, vars)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(operations.Response), args.Error(1)
}

func (m *MockDispatcher) Handles(kind operations.Kind) bool {
	args := m.Called(kind)
	return args.Bool(0)
}

// Package session tracks the signed-in user for the lifetime of the process. The
// session token lives in local storage so a later process can restore it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dimitrije/carshare/internal/localstore"
	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

const TokenKey = "auth_token"

var ErrNoUser = errors.New("server returned no user")

type Transport interface {
	Execute(ctx context.Context, kind operations.Kind, vars operations.Variables, out any) error
	SetAuthToken(token string)
	ClearAuthToken()
}

type Session struct {
	transport Transport
	storage   localstore.Storage
	logger    *slog.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool
	err     error
}

func New(transport Transport, storage localstore.Storage, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{transport: transport, storage: storage, logger: logger}
}

// Restore signs back in with a persisted token. Without a token it does nothing.
// If the token no longer resolves to a user it is forgotten, the session stays
// signed out and the failure is recorded in Err.
func (s *Session) Restore(ctx context.Context) error {
	token, ok, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		err = fmt.Errorf("failed to read session token: %w", err)
		s.finish(nil, err)
		return err
	}
	if !ok || token == "" {
		return nil
	}

	s.begin()
	s.transport.SetAuthToken(token)

	var out struct {
		Me *models.User `json:"me"`
	}
	err = s.transport.Execute(ctx, operations.GetCurrentUser, nil, &out)
	if err == nil && out.Me == nil {
		err = ErrNoUser
	}
	if err != nil {
		s.forgetToken(ctx)
		err = fmt.Errorf("failed to restore session: %w", err)
		s.logger.Warn("session restore failed", "error", err)
		s.finish(nil, err)
		return err
	}

	s.logger.Info("session restored", "user_id", out.Me.ID)
	s.finish(out.Me, nil)
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	vars := operations.MustVariables(operations.LoginVariables{
		Input: operations.LoginInput{Email: email, Password: password},
	})

	var out struct {
		Login models.AuthPayload `json:"login"`
	}
	return s.authenticate(ctx, operations.Login, vars, &out, func() (string, *models.User) {
		return out.Login.Token, out.Login.User
	})
}

// SendVerificationCode asks the backend to mail a signup code. The session itself
// is not changed.
func (s *Session) SendVerificationCode(ctx context.Context, email string) error {
	s.begin()
	err := s.transport.Execute(ctx, operations.SendVerificationCode, operations.MustVariables(operations.SendVerificationCodeVariables{Email: email}), nil)
	s.fail(err)
	return err
}

func (s *Session) Signup(ctx context.Context, input operations.SignupInput, vcode string) (*models.User, error) {
	vars := operations.MustVariables(operations.SignupVariables{Input: input, VCode: vcode})

	var out struct {
		Signup models.SignupPayload `json:"signup"`
	}
	return s.authenticate(ctx, operations.Signup, vars, &out, func() (string, *models.User) {
		return out.Signup.Token, out.Signup.User
	})
}

// Logout forgets the token and the user. It never calls the backend.
func (s *Session) Logout(ctx context.Context) error {
	err := s.forgetToken(ctx)
	s.finish(nil, nil)
	return err
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the error of the last session operation, nil after a success.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) authenticate(ctx context.Context, kind operations.Kind, vars operations.Variables, out any, result func() (string, *models.User)) (*models.User, error) {
	s.begin()

	if err := s.transport.Execute(ctx, kind, vars, out); err != nil {
		s.fail(err)
		return nil, err
	}
	token, user := result()
	if user == nil {
		s.fail(ErrNoUser)
		return nil, ErrNoUser
	}

	if err := s.storage.Set(ctx, TokenKey, token); err != nil {
		err = fmt.Errorf("failed to save session token: %w", err)
		s.fail(err)
		return nil, err
	}
	s.transport.SetAuthToken(token)

	s.logger.Info("signed in", "operation", kind.String(), "user_id", user.ID)
	s.finish(user, nil)
	u := *user
	return &u, nil
}

func (s *Session) forgetToken(ctx context.Context) error {
	s.transport.ClearAuthToken()
	if err := s.storage.Remove(ctx, TokenKey); err != nil {
		s.logger.Warn("failed to remove session token", "error", err)
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	return nil
}

func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = nil
}

// fail records err, which may be nil, and leaves the current user as it was.
func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
}

func (s *Session) finish(user *models.User, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.user = user
	s.err = err
}

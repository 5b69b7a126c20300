// Package auth implements the client login flow: captcha gate,
// credential verification, and optional persistence of the signed-in
// user through the settings store.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
	"github.com/borex256/century-music-empire/pkg/label/state"
)

// Credentials is one login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Remember persists the user across restarts.
	Remember bool `json:"remember"`
}

// CaptchaVerifier gates logins behind a human check.
type CaptchaVerifier interface {
	Verify(ctx context.Context) error
}

// Authenticator verifies credentials against an identity backend.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (types.User, error)
}

// Service runs the login flow. Settings may be nil, in which case
// Remember is ignored.
type Service struct {
	captcha  CaptchaVerifier
	backend  Authenticator
	settings *state.Store
}

// NewService wires the login flow.
func NewService(captcha CaptchaVerifier, backend Authenticator, settings *state.Store) (*Service, error) {
	if captcha == nil {
		return nil, core.NewInvalidRequestError("auth service requires a captcha verifier")
	}
	if backend == nil {
		return nil, core.NewInvalidRequestError("auth service requires an authenticator")
	}
	return &Service{captcha: captcha, backend: backend, settings: settings}, nil
}

// Login verifies the captcha first, then the credentials. On success
// the user is logged in; with Remember set, also persisted.
func (s *Service) Login(ctx context.Context, creds Credentials) (types.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return types.User{}, core.NewInvalidRequestErrorWithParam("email is required", "email")
	}

	if err := s.captcha.Verify(ctx); err != nil {
		return types.User{}, core.AsError(err, "captcha")
	}

	user, err := s.backend.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return types.User{}, core.AsError(err, "auth")
	}
	user.IsLoggedIn = true

	if creds.Remember && s.settings != nil {
		if err := s.settings.RememberUser(user); err != nil {
			return types.User{}, core.NewStorageError("persist remembered user: " + err.Error())
		}
	}
	return user, nil
}

// Logout clears any persisted user.
func (s *Service) Logout() error {
	if s.settings == nil {
		return nil
	}
	return s.settings.ForgetUser()
}

// Remembered returns the persisted user from a prior Remember login.
func (s *Service) Remembered() (types.User, bool) {
	if s.settings == nil {
		return types.User{}, false
	}
	return s.settings.User()
}

// StubCaptcha resolves after a short verification delay, honoring
// cancellation. It never rejects; the delay is the simulation.
type StubCaptcha struct {
	Delay time.Duration
}

// NewStubCaptcha returns the stub with its default delay.
func NewStubCaptcha() *StubCaptcha {
	return &StubCaptcha{Delay: 800 * time.Millisecond}
}

func (c *StubCaptcha) Verify(ctx context.Context) error {
	select {
	case <-time.After(c.Delay):
		return nil
	case <-ctx.Done():
		return core.NewSessionError("captcha verification cancelled")
	}
}

// StubAuthenticator accepts any non-empty credential pair. Used until
// an identity backend is configured.
type StubAuthenticator struct{}

func (StubAuthenticator) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	if password == "" {
		return types.User{}, core.NewAuthenticationError("password is required")
	}
	return types.User{Email: email}, nil
}

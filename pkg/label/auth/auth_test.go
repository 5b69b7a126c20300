package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
	"github.com/borex256/century-music-empire/pkg/label/state"
)

type fakeCaptcha struct {
	err    error
	called bool
}

func (c *fakeCaptcha) Verify(ctx context.Context) error {
	c.called = true
	return c.err
}

type fakeBackend struct {
	err    error
	called bool
}

func (b *fakeBackend) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	b.called = true
	if b.err != nil {
		return types.User{}, b.err
	}
	return types.User{Email: email}, nil
}

func TestLoginHappyPath(t *testing.T) {
	svc, err := NewService(&fakeCaptcha{}, &fakeBackend{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	user, err := svc.Login(context.Background(), Credentials{Email: "artist@century.example", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !user.IsLoggedIn || user.Email != "artist@century.example" {
		t.Errorf("user = %+v", user)
	}
}

func TestLoginRequiresCaptchaPass(t *testing.T) {
	captcha := &fakeCaptcha{err: core.NewSessionError("robot detected")}
	backend := &fakeBackend{}
	svc, _ := NewService(captcha, backend, nil)

	_, err := svc.Login(context.Background(), Credentials{Email: "a@b.example", Password: "x"})
	if err == nil {
		t.Fatal("expected captcha failure")
	}
	if backend.called {
		t.Error("backend consulted despite failed captcha")
	}
}

func TestLoginCaptchaBeforeBackend(t *testing.T) {
	captcha := &fakeCaptcha{}
	backend := &fakeBackend{err: core.NewAuthenticationError("bad password")}
	svc, _ := NewService(captcha, backend, nil)

	_, err := svc.Login(context.Background(), Credentials{Email: "a@b.example", Password: "wrong"})
	if err == nil {
		t.Fatal("expected authentication failure")
	}
	if !captcha.called {
		t.Error("captcha skipped")
	}
	var typed *core.Error
	if !errors.As(err, &typed) || typed.Type != core.ErrAuthentication {
		t.Errorf("error = %v, want authentication_error", err)
	}
}

func TestLoginValidatesEmail(t *testing.T) {
	svc, _ := NewService(&fakeCaptcha{}, &fakeBackend{}, nil)
	if _, err := svc.Login(context.Background(), Credentials{Password: "x"}); err == nil {
		t.Error("expected error for missing email")
	}
}

func TestRememberPersistsUser(t *testing.T) {
	settings, err := state.Open(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	svc, _ := NewService(&fakeCaptcha{}, &fakeBackend{}, settings)

	_, err = svc.Login(context.Background(), Credentials{
		Email: "boss@century.example", Password: "x", Remember: true,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	remembered, ok := svc.Remembered()
	if !ok || remembered.Email != "boss@century.example" {
		t.Errorf("remembered = %+v, ok=%v", remembered, ok)
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := svc.Remembered(); ok {
		t.Error("user survived logout")
	}
}

func TestLoginWithoutRememberDoesNotPersist(t *testing.T) {
	settings, _ := state.Open(filepath.Join(t.TempDir(), "settings.json"))
	svc, _ := NewService(&fakeCaptcha{}, &fakeBackend{}, settings)

	if _, err := svc.Login(context.Background(), Credentials{Email: "a@b.example", Password: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := svc.Remembered(); ok {
		t.Error("user persisted without Remember")
	}
}

func TestStubCaptchaHonorsCancellation(t *testing.T) {
	captcha := &StubCaptcha{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := captcha.Verify(ctx); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestStubCaptchaResolves(t *testing.T) {
	captcha := &StubCaptcha{Delay: 0}
	if err := captcha.Verify(context.Background()); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/plwordle/plwordle/internal/infrastructure/repository/memory"
	"github.com/plwordle/plwordle/internal/platform/logging"
)

type sequenceIDGenerator struct {
	n int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

func newAuthService(ttl time.Duration) *AuthService {
	return NewAuthService(
		memory.NewUserRepository(),
		memory.NewSessionRepository(),
		&sequenceIDGenerator{},
		ttl,
		logging.NewNop(),
	)
}

func TestAuthService_SignUpThenLogIn(t *testing.T) {
	service := newAuthService(time.Hour)

	signupSession, err := service.SignUp(t.Context(), " Fan@Example.COM ", "corr3ct-horse")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if signupSession.Token == "" {
		t.Fatal("expected a session token from signup")
	}

	principal, err := service.VerifySession(t.Context(), signupSession.Token)
	if err != nil {
		t.Fatalf("verify signup session failed: %v", err)
	}
	if principal.Email != "fan@example.com" {
		t.Fatalf("expected normalized email, got %q", principal.Email)
	}

	loginSession, err := service.LogIn(t.Context(), "fan@example.com", "corr3ct-horse")
	if err != nil {
		t.Fatalf("log in failed: %v", err)
	}
	if loginSession.Token == signupSession.Token {
		t.Fatal("expected a fresh token per login")
	}
}

func TestAuthService_SignUp_RejectsBadInput(t *testing.T) {
	service := newAuthService(time.Hour)

	if _, err := service.SignUp(t.Context(), "not-an-email", "corr3ct-horse"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, err := service.SignUp(t.Context(), "fan@example.com", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}

	if _, err := service.SignUp(t.Context(), "fan@example.com", "corr3ct-horse"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if _, err := service.SignUp(t.Context(), "FAN@example.com", "corr3ct-horse"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate email, got %v", err)
	}
}

func TestAuthService_LogIn_RejectsWrongCredentials(t *testing.T) {
	service := newAuthService(time.Hour)

	if _, err := service.SignUp(t.Context(), "fan@example.com", "corr3ct-horse"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	if _, err := service.LogIn(t.Context(), "fan@example.com", "wrong-password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := service.LogIn(t.Context(), "nobody@example.com", "corr3ct-horse"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown email, got %v", err)
	}
}

func TestAuthService_VerifySession_RejectsExpiredAndRevoked(t *testing.T) {
	service := newAuthService(time.Hour)

	session, err := service.SignUp(t.Context(), "fan@example.com", "corr3ct-horse")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := service.VerifySession(t.Context(), session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired session, got %v", err)
	}

	service.now = time.Now
	fresh, err := service.LogIn(t.Context(), "fan@example.com", "corr3ct-horse")
	if err != nil {
		t.Fatalf("log in failed: %v", err)
	}
	if err := service.LogOut(t.Context(), fresh.Token); err != nil {
		t.Fatalf("log out failed: %v", err)
	}
	if _, err := service.VerifySession(t.Context(), fresh.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}

	if _, err := service.VerifySession(t.Context(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

package user

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered account. Accounts are created at signup and never
// deleted by the application.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Credential is the single password record attached to a user.
type Credential struct {
	UserID       string
	PasswordHash string
}

// Session is an issued login session. Tokens are opaque and persisted so any
// instance can verify them.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Principal is the resolved identity carried through request context.
type Principal struct {
	UserID string
	Email  string
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("user email is invalid")
	}

	return nil
}

func (s Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

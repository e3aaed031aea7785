package postgres

import "time"

type userTableModel struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

type credentialTableModel struct {
	UserID       string `db:"user_id"`
	PasswordHash string `db:"password_hash"`
}

type sessionTableModel struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

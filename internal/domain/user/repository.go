package user

import "context"

// Repository describes account persistence needs from use cases.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, userID string) (User, bool, error)
	// Create stores the user together with its credential record.
	Create(ctx context.Context, u User, c Credential) error
	GetCredential(ctx context.Context, userID string) (Credential, bool, error)
}

// SessionRepository stores issued login sessions.
type SessionRepository interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, bool, error)
	Delete(ctx context.Context, token string) error
}

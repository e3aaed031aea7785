package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plwordle/plwordle/internal/domain/user"
	qb "github.com/plwordle/plwordle/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getUser(ctx, qb.Eq("email", email))
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	return r.getUser(ctx, qb.Eq("id", userID))
}

func (r *UserRepository) getUser(ctx context.Context, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("id", "email", "created_at").From("users").
		Where(cond).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}

	return user.User{ID: row.ID, Email: row.Email, CreatedAt: row.CreatedAt}, true, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User, c user.Credential) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for user create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	userQuery, userArgs, err := qb.InsertInto("users").
		Columns("id", "email", "created_at").
		Values(u.ID, u.Email, u.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, userQuery, userArgs...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	credQuery, credArgs, err := qb.InsertInto("credentials").
		Columns("user_id", "password_hash").
		Values(c.UserID, c.PasswordHash).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert credential query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, credQuery, credArgs...); err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user create tx: %w", err)
	}

	return nil
}

func (r *UserRepository) GetCredential(ctx context.Context, userID string) (user.Credential, bool, error) {
	query, args, err := qb.Select("user_id", "password_hash").From("credentials").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return user.Credential{}, false, fmt.Errorf("build select credential query: %w", err)
	}

	var row credentialTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Credential{}, false, nil
		}
		return user.Credential{}, false, fmt.Errorf("get credential: %w", err)
	}

	return user.Credential{UserID: row.UserID, PasswordHash: row.PasswordHash}, true, nil
}

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(ctx context.Context, s user.Session) error {
	query, args, err := qb.InsertInto("sessions").
		Columns("token", "user_id", "created_at", "expires_at").
		Values(s.Token, s.UserID, s.CreatedAt, s.ExpiresAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, token string) (user.Session, bool, error) {
	query, args, err := qb.Select("token", "user_id", "created_at", "expires_at").From("sessions").
		Where(qb.Eq("token", token)).
		ToSQL()
	if err != nil {
		return user.Session{}, false, fmt.Errorf("build select session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Session{}, false, nil
		}
		return user.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	return user.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query, args, err := qb.DeleteFrom("sessions").
		Where(qb.Eq("token", token)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

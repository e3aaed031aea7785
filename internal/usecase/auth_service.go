package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/plwordle/plwordle/internal/domain/user"
	idgen "github.com/plwordle/plwordle/internal/platform/id"
	"github.com/plwordle/plwordle/internal/platform/logging"
)

const minPasswordLength = 8

// AuthService owns signup, login and session verification. Sessions are
// opaque tokens persisted through the session repository so verification
// works on any instance; the resolved principal travels via request context,
// never process-global state.
type AuthService struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	idGen       idgen.Generator
	sessionTTL  time.Duration
	logger      *logging.Logger
	now         func() time.Time
}

func NewAuthService(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	idGen idgen.Generator,
	sessionTTL time.Duration,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		idGen:       idGen,
		sessionTTL:  sessionTTL,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignUp")
	defer span.End()

	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return user.Session{}, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return user.Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	_, exists, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return user.Session{}, fmt.Errorf("get user by email: %w", err)
	}
	if exists {
		return user.Session{}, fmt.Errorf("%w: email is already registered", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.Session{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.Session{}, fmt.Errorf("generate user id: %w", err)
	}

	account := user.User{
		ID:        userID,
		Email:     email,
		CreatedAt: s.now().UTC(),
	}
	credential := user.Credential{
		UserID:       userID,
		PasswordHash: string(hash),
	}
	if err := account.Validate(); err != nil {
		return user.Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, account, credential); err != nil {
		return user.Session{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", userID)

	return s.issueSession(ctx, userID)
}

func (s *AuthService) LogIn(ctx context.Context, email, password string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.LogIn")
	defer span.End()

	email = normalizeEmail(email)

	account, exists, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return user.Session{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return user.Session{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	credential, exists, err := s.userRepo.GetCredential(ctx, account.ID)
	if err != nil {
		return user.Session{}, fmt.Errorf("get credential: %w", err)
	}
	if !exists {
		return user.Session{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return user.Session{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return s.issueSession(ctx, account.ID)
}

func (s *AuthService) LogOut(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.LogOut")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// VerifySession resolves a session token to a principal, rejecting unknown
// and expired tokens.
func (s *AuthService) VerifySession(ctx context.Context, token string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifySession")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: session token is required", ErrUnauthorized)
	}

	session, found, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get session: %w", err)
	}
	if !found {
		return user.Principal{}, fmt.Errorf("%w: unknown session", ErrUnauthorized)
	}
	if session.ExpiredAt(s.now()) {
		return user.Principal{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	account, found, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return user.Principal{}, fmt.Errorf("%w: unknown user", ErrUnauthorized)
	}

	return user.Principal{UserID: account.ID, Email: account.Email}, nil
}

func (s *AuthService) issueSession(ctx context.Context, userID string) (user.Session, error) {
	token, err := s.idGen.NewID()
	if err != nil {
		return user.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	now := s.now().UTC()
	session := user.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return user.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

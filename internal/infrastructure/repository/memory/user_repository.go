package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/plwordle/plwordle/internal/domain/user"
)

type UserRepository struct {
	mu          sync.RWMutex
	byID        map[string]user.User
	byEmail     map[string]string
	credentials map[string]user.Credential
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:        make(map[string]user.User),
		byEmail:     make(map[string]string),
		credentials: make(map[string]user.Credential),
	}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, false, nil
	}

	return r.byID[id], true, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return user.User{}, false, nil
	}

	return u, true, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User, c user.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return fmt.Errorf("email %q already registered", u.Email)
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.credentials[u.ID] = c

	return nil
}

func (r *UserRepository) GetCredential(_ context.Context, userID string) (user.Credential, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.credentials[userID]
	if !ok {
		return user.Credential{}, false, nil
	}

	return c, true, nil
}

type SessionRepository struct {
	mu    sync.RWMutex
	items map[string]user.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{items: make(map[string]user.Session)}
}

func (r *SessionRepository) Save(_ context.Context, s user.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[s.Token] = s
	return nil
}

func (r *SessionRepository) Get(_ context.Context, token string) (user.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[token]
	if !ok {
		return user.Session{}, false, nil
	}

	return s, true, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, token)
	return nil
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/plwordle/plwordle/internal/domain/game"
)

// GameRepository keeps daily targets and sessions in process memory. The
// single mutex gives the same one-target-per-day and one-session-per-user-day
// guarantees the relational driver gets from its uniqueness constraints.
type GameRepository struct {
	mu           sync.Mutex
	targets      map[string]game.DailyTarget
	sessions     map[string]*game.Session
	nextTargetID int64
	nextGameID   int64
	nextGuessID  int64
	now          func() time.Time
}

func NewGameRepository() *GameRepository {
	return &GameRepository{
		targets:      make(map[string]game.DailyTarget),
		sessions:     make(map[string]*game.Session),
		nextTargetID: 1,
		nextGameID:   1,
		nextGuessID:  1,
		now:          time.Now,
	}
}

func (r *GameRepository) GetTargetByDay(_ context.Context, day game.Day) (game.DailyTarget, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.targets[day.String()]
	if !ok {
		return game.DailyTarget{}, false, nil
	}

	return target, true, nil
}

func (r *GameRepository) CreateTargetIfAbsent(_ context.Context, target game.DailyTarget) (game.DailyTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.targets[target.Day.String()]; ok {
		return existing, nil
	}

	target.ID = r.nextTargetID
	r.nextTargetID++
	r.targets[target.Day.String()] = target

	return target, nil
}

func (r *GameRepository) GetSessionByUserAndDay(_ context.Context, userID string, day game.Day) (game.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionKey(userID, day)]
	if !ok {
		return game.Session{}, false, nil
	}

	return cloneSession(session), true, nil
}

func (r *GameRepository) AppendGuess(_ context.Context, userID string, day game.Day, playerID int64) (game.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(userID, day)
	session, ok := r.sessions[key]
	if !ok {
		session = &game.Session{ID: r.nextGameID, UserID: userID, Day: day}
		r.nextGameID++
		r.sessions[key] = session
	}

	if session.Exhausted() {
		return game.Session{}, game.ErrOutOfGuesses
	}

	guess := game.Guess{
		ID:       r.nextGuessID,
		GameID:   session.ID,
		PlayerID: playerID,
		Number:   session.LastNumber() + 1,
		Made:     r.now().UTC(),
	}
	r.nextGuessID++
	session.Guesses = append(session.Guesses, guess)

	return cloneSession(session), nil
}

func sessionKey(userID string, day game.Day) string {
	return userID + "::" + day.String()
}

func cloneSession(s *game.Session) game.Session {
	copied := *s
	copied.Guesses = append([]game.Guess(nil), s.Guesses...)
	return copied
}

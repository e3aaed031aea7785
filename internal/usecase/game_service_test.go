package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/plwordle/plwordle/internal/domain/game"
	"github.com/plwordle/plwordle/internal/infrastructure/repository/memory"
	"github.com/plwordle/plwordle/internal/platform/logging"
)

func TestGameService_CurrentSession_FreshUserGetsEmptySession(t *testing.T) {
	service := NewGameService(memory.NewGameRepository(), logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) }

	session, err := service.CurrentSession(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("current session failed: %v", err)
	}
	if session.ID != 0 {
		t.Fatalf("expected no persisted session, got id %d", session.ID)
	}
	if len(session.Guesses) != 0 {
		t.Fatalf("expected no guesses, got %d", len(session.Guesses))
	}
	if session.Day.String() != "2026-08-28" {
		t.Fatalf("expected day 2026-08-28, got %s", session.Day.String())
	}
}

func TestGameService_SubmitGuess_NumbersAreContiguousFromOne(t *testing.T) {
	service := NewGameService(memory.NewGameRepository(), logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) }

	var last game.Session
	for i := 1; i <= game.MaxGuesses; i++ {
		session, err := service.SubmitGuess(t.Context(), "user-1", int64(100+i))
		if err != nil {
			t.Fatalf("guess %d failed: %v", i, err)
		}
		if got := session.LastNumber(); got != i {
			t.Fatalf("expected last number %d, got %d", i, got)
		}
		last = session
	}

	for i, g := range last.Guesses {
		if g.Number != i+1 {
			t.Fatalf("guess at index %d has number %d", i, g.Number)
		}
	}
	if !last.Exhausted() {
		t.Fatal("expected session to be exhausted after max guesses")
	}
}

func TestGameService_SubmitGuess_RejectsBeyondCap(t *testing.T) {
	service := NewGameService(memory.NewGameRepository(), logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) }

	for i := 0; i < game.MaxGuesses; i++ {
		if _, err := service.SubmitGuess(t.Context(), "user-1", 7); err != nil {
			t.Fatalf("guess %d failed: %v", i+1, err)
		}
	}

	_, err := service.SubmitGuess(t.Context(), "user-1", 7)
	if !errors.Is(err, game.ErrOutOfGuesses) {
		t.Fatalf("expected ErrOutOfGuesses, got %v", err)
	}

	session, err := service.CurrentSession(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("current session failed: %v", err)
	}
	if len(session.Guesses) != game.MaxGuesses {
		t.Fatalf("rejected guess must not be written, got %d guesses", len(session.Guesses))
	}
}

func TestGameService_SubmitGuess_NewDayStartsFreshSession(t *testing.T) {
	service := NewGameService(memory.NewGameRepository(), logging.NewNop())

	service.now = func() time.Time { return time.Date(2026, 8, 28, 23, 50, 0, 0, time.UTC) }
	for i := 0; i < game.MaxGuesses; i++ {
		if _, err := service.SubmitGuess(t.Context(), "user-1", 3); err != nil {
			t.Fatalf("guess %d failed: %v", i+1, err)
		}
	}

	service.now = func() time.Time { return time.Date(2026, 8, 29, 0, 5, 0, 0, time.UTC) }
	session, err := service.SubmitGuess(t.Context(), "user-1", 3)
	if err != nil {
		t.Fatalf("first guess of new day failed: %v", err)
	}
	if got := session.LastNumber(); got != 1 {
		t.Fatalf("expected numbering to restart at 1, got %d", got)
	}
}

func TestGameService_SubmitGuess_SessionsAreIsolatedPerUser(t *testing.T) {
	service := NewGameService(memory.NewGameRepository(), logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	if _, err := service.SubmitGuess(t.Context(), "user-1", 5); err != nil {
		t.Fatalf("user-1 guess failed: %v", err)
	}

	session, err := service.SubmitGuess(t.Context(), "user-2", 5)
	if err != nil {
		t.Fatalf("user-2 guess failed: %v", err)
	}
	if got := session.LastNumber(); got != 1 {
		t.Fatalf("expected user-2 to start at 1, got %d", got)
	}
}

func TestGameService_SubmitGuess_ValidatesInput(t *testing.T) {
	service := NewGameService(memory.NewGameRepository(), logging.NewNop())

	if _, err := service.SubmitGuess(t.Context(), "  ", 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank user, got %v", err)
	}
	if _, err := service.SubmitGuess(t.Context(), "user-1", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative player id, got %v", err)
	}
}

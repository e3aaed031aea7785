package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/plwordle/plwordle/internal/domain/game"
)

func TestGameRepository_AppendGuess_ConcurrentWritersStayUnderCap(t *testing.T) {
	repo := NewGameRepository()
	day := game.DayOf(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	const attempts = 20

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.AppendGuess(context.Background(), "user-1", day, int64(i))
		}(i)
	}
	wg.Wait()

	accepted, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, game.ErrOutOfGuesses):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != game.MaxGuesses {
		t.Fatalf("expected %d accepted guesses, got %d", game.MaxGuesses, accepted)
	}
	if rejected != attempts-game.MaxGuesses {
		t.Fatalf("expected %d rejections, got %d", attempts-game.MaxGuesses, rejected)
	}

	session, found, err := repo.GetSessionByUserAndDay(context.Background(), "user-1", day)
	if err != nil || !found {
		t.Fatalf("get session: found=%v err=%v", found, err)
	}
	seen := make(map[int]bool, len(session.Guesses))
	for _, g := range session.Guesses {
		if seen[g.Number] {
			t.Fatalf("duplicate guess number %d", g.Number)
		}
		seen[g.Number] = true
	}
	for n := 1; n <= game.MaxGuesses; n++ {
		if !seen[n] {
			t.Fatalf("missing guess number %d", n)
		}
	}
}

func TestGameRepository_CreateTargetIfAbsent_FirstWriterWins(t *testing.T) {
	repo := NewGameRepository()
	day := game.DayOf(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	first, err := repo.CreateTargetIfAbsent(context.Background(), game.DailyTarget{Day: day, PlayerID: 10})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second, err := repo.CreateTargetIfAbsent(context.Background(), game.DailyTarget{Day: day, PlayerID: 99})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.ID != first.ID || second.PlayerID != 10 {
		t.Fatalf("expected first writer's target, got %+v", second)
	}
}

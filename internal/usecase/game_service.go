package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/plwordle/plwordle/internal/domain/game"
	"github.com/plwordle/plwordle/internal/platform/logging"
)

// GameService manages one guessing session per user per game day: loading the
// current session for display and appending validated guesses until the cap.
type GameService struct {
	gameRepo game.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewGameService(gameRepo game.Repository, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameService{
		gameRepo: gameRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// CurrentSession returns the user's session for today. A user who has not
// guessed yet gets an empty session with no id; the first guess creates the
// row. Read and write paths share the same day boundary.
func (s *GameService) CurrentSession(ctx context.Context, userID string) (game.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.CurrentSession")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return game.Session{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	day := game.DayOf(s.now())
	session, found, err := s.gameRepo.GetSessionByUserAndDay(ctx, userID, day)
	if err != nil {
		return game.Session{}, fmt.Errorf("get session: %w", err)
	}
	if !found {
		return game.Session{UserID: userID, Day: day}, nil
	}

	return session, nil
}

// SubmitGuess appends a guess to today's session, creating the session on the
// first guess of the day. Returns game.ErrOutOfGuesses once the session holds
// the maximum number of guesses; nothing is written in that case.
func (s *GameService) SubmitGuess(ctx context.Context, userID string, playerID int64) (game.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.SubmitGuess")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return game.Session{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if playerID < 0 {
		return game.Session{}, fmt.Errorf("%w: player id cannot be negative", ErrInvalidInput)
	}

	day := game.DayOf(s.now())
	session, err := s.gameRepo.AppendGuess(ctx, userID, day, playerID)
	if err != nil {
		return game.Session{}, fmt.Errorf("append guess: %w", err)
	}

	s.logger.InfoContext(ctx, "guess recorded",
		"user_id", userID,
		"game_day", day.String(),
		"guess_number", session.LastNumber(),
	)

	return session, nil
}

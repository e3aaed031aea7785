package game

import (
	"context"
	"errors"
)

// ErrOutOfGuesses rejects an append once a session holds MaxGuesses guesses.
var ErrOutOfGuesses = errors.New("you are out of guesses")

// Repository describes game persistence needs from use cases.
//
// CreateTargetIfAbsent and AppendGuess are atomic: concurrent first-of-day
// calls observe a single daily target row and a single game row per user.
type Repository interface {
	GetTargetByDay(ctx context.Context, day Day) (DailyTarget, bool, error)
	// CreateTargetIfAbsent inserts the proposed target unless one already
	// exists for its day, and returns the row that won.
	CreateTargetIfAbsent(ctx context.Context, target DailyTarget) (DailyTarget, error)

	GetSessionByUserAndDay(ctx context.Context, userID string, day Day) (Session, bool, error)
	// AppendGuess finds or creates the user's session for day, appends a
	// guess numbered contiguously from 1, and returns the updated session.
	// Returns ErrOutOfGuesses without writing once the cap is reached.
	AppendGuess(ctx context.Context, userID string, day Day, playerID int64) (Session, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plwordle/plwordle/internal/domain/game"
	qb "github.com/plwordle/plwordle/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetTargetByDay(ctx context.Context, day game.Day) (game.DailyTarget, bool, error) {
	query, args, err := qb.Select("id", "game_date", "player_id").From("daily_targets").
		Where(qb.Eq("game_date", day.Start())).
		ToSQL()
	if err != nil {
		return game.DailyTarget{}, false, fmt.Errorf("build select daily target query: %w", err)
	}

	var row dailyTargetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.DailyTarget{}, false, nil
		}
		return game.DailyTarget{}, false, fmt.Errorf("get daily target: %w", err)
	}

	return toDailyTarget(row), true, nil
}

// CreateTargetIfAbsent races on the game_date uniqueness constraint: the
// losing inserter reads back the winner's row.
func (r *GameRepository) CreateTargetIfAbsent(ctx context.Context, target game.DailyTarget) (game.DailyTarget, error) {
	query, args, err := qb.InsertInto("daily_targets").
		Columns("game_date", "player_id").
		Values(target.Day.Start(), target.PlayerID).
		Suffix("ON CONFLICT (game_date) DO NOTHING RETURNING id, game_date, player_id").
		ToSQL()
	if err != nil {
		return game.DailyTarget{}, fmt.Errorf("build insert daily target query: %w", err)
	}

	var row dailyTargetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err == nil {
		return toDailyTarget(row), nil
	} else if !isNotFound(err) {
		return game.DailyTarget{}, fmt.Errorf("insert daily target: %w", err)
	}

	existing, found, err := r.GetTargetByDay(ctx, target.Day)
	if err != nil {
		return game.DailyTarget{}, err
	}
	if !found {
		return game.DailyTarget{}, fmt.Errorf("daily target for %s vanished after conflict", target.Day.String())
	}

	return existing, nil
}

func (r *GameRepository) GetSessionByUserAndDay(ctx context.Context, userID string, day game.Day) (game.Session, bool, error) {
	query, args, err := qb.Select("id", "user_id", "game_date").From("games").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("game_date", day.Start()),
		).
		ToSQL()
	if err != nil {
		return game.Session{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Session{}, false, nil
		}
		return game.Session{}, false, fmt.Errorf("get game: %w", err)
	}

	guesses, err := r.guessesFor(ctx, r.db, row.ID)
	if err != nil {
		return game.Session{}, false, err
	}

	return game.Session{
		ID:      row.ID,
		UserID:  row.UserID,
		Day:     game.DayOf(row.GameDate),
		Guesses: guesses,
	}, true, nil
}

// AppendGuess finds or creates the user's game for day and appends the next
// guess in one transaction. The game row is locked so concurrent submissions
// from the same user serialize and numbering stays contiguous.
func (r *GameRepository) AppendGuess(ctx context.Context, userID string, day game.Day, playerID int64) (game.Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return game.Session{}, fmt.Errorf("begin tx for guess append: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const ensureGameQuery = `
INSERT INTO games (user_id, game_date)
VALUES ($1, $2)
ON CONFLICT (user_id, game_date) DO NOTHING`
	if _, err := tx.ExecContext(ctx, ensureGameQuery, userID, day.Start()); err != nil {
		return game.Session{}, fmt.Errorf("ensure game row: %w", err)
	}

	const lockGameQuery = `
SELECT id, user_id, game_date
FROM games
WHERE user_id = $1
  AND game_date = $2
FOR UPDATE`
	var gameRow gameTableModel
	if err := tx.GetContext(ctx, &gameRow, lockGameQuery, userID, day.Start()); err != nil {
		return game.Session{}, fmt.Errorf("lock game row: %w", err)
	}

	const lastNumberQuery = `
SELECT COALESCE(MAX(number), 0)
FROM guesses
WHERE game_id = $1`
	var lastNumber int
	if err := tx.GetContext(ctx, &lastNumber, lastNumberQuery, gameRow.ID); err != nil {
		return game.Session{}, fmt.Errorf("count guesses: %w", err)
	}
	if lastNumber >= game.MaxGuesses {
		return game.Session{}, game.ErrOutOfGuesses
	}

	const insertGuessQuery = `
INSERT INTO guesses (game_id, player_id, number)
VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, insertGuessQuery, gameRow.ID, playerID, lastNumber+1); err != nil {
		return game.Session{}, fmt.Errorf("insert guess: %w", err)
	}

	guesses, err := r.guessesFor(ctx, tx, gameRow.ID)
	if err != nil {
		return game.Session{}, err
	}

	if err := tx.Commit(); err != nil {
		return game.Session{}, fmt.Errorf("commit guess append tx: %w", err)
	}

	return game.Session{
		ID:      gameRow.ID,
		UserID:  gameRow.UserID,
		Day:     game.DayOf(gameRow.GameDate),
		Guesses: guesses,
	}, nil
}

func (r *GameRepository) guessesFor(ctx context.Context, q sqlx.QueryerContext, gameID int64) ([]game.Guess, error) {
	query, args, err := qb.Select("id", "game_id", "player_id", "number", "made_at").From("guesses").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select guesses query: %w", err)
	}

	var rows []guessTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select guesses: %w", err)
	}

	out := make([]game.Guess, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Guess{
			ID:       row.ID,
			GameID:   row.GameID,
			PlayerID: row.PlayerID,
			Number:   row.Number,
			Made:     row.MadeAt,
		})
	}

	return out, nil
}

func toDailyTarget(row dailyTargetTableModel) game.DailyTarget {
	return game.DailyTarget{
		ID:       row.ID,
		Day:      game.DayOf(row.GameDate),
		PlayerID: row.PlayerID,
	}
}

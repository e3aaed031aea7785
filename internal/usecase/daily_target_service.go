package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/plwordle/plwordle/internal/domain/catalog"
	"github.com/plwordle/plwordle/internal/domain/game"
	"github.com/plwordle/plwordle/internal/platform/logging"
	"github.com/plwordle/plwordle/internal/platform/resilience"
)

// DailyTargetService finds or creates the mystery player for the current game
// day. Selection is uniform over existing catalog rows; the repository's date
// uniqueness constraint plus an in-process single-flight guarantee one target
// per day even under concurrent first requests.
type DailyTargetService struct {
	gameRepo    game.Repository
	catalogRepo catalog.Repository
	logger      *logging.Logger
	flight      resilience.SingleFlight
	now         func() time.Time
}

func NewDailyTargetService(gameRepo game.Repository, catalogRepo catalog.Repository, logger *logging.Logger) *DailyTargetService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DailyTargetService{
		gameRepo:    gameRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// EnsureToday returns today's target, designating one when the day has none
// yet. Repeated calls within one calendar day return the same pairing.
func (s *DailyTargetService) EnsureToday(ctx context.Context) (game.DailyTarget, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DailyTargetService.EnsureToday")
	defer span.End()

	day := game.DayOf(s.now())

	value, err, _ := s.flight.Do("daily-target:"+day.String(), func() (any, error) {
		return s.ensure(ctx, day)
	})
	if err != nil {
		return game.DailyTarget{}, err
	}

	return value.(game.DailyTarget), nil
}

func (s *DailyTargetService) ensure(ctx context.Context, day game.Day) (game.DailyTarget, error) {
	target, found, err := s.gameRepo.GetTargetByDay(ctx, day)
	if err != nil {
		return game.DailyTarget{}, fmt.Errorf("get daily target: %w", err)
	}
	if found {
		return target, nil
	}

	playerID, err := s.catalogRepo.RandomPlayerID(ctx)
	if err != nil {
		return game.DailyTarget{}, fmt.Errorf("pick random player: %w", err)
	}

	created, err := s.gameRepo.CreateTargetIfAbsent(ctx, game.DailyTarget{
		Day:      day,
		PlayerID: playerID,
	})
	if err != nil {
		return game.DailyTarget{}, fmt.Errorf("create daily target: %w", err)
	}

	s.logger.InfoContext(ctx, "daily target ensured",
		"game_day", day.String(),
		"player_id", created.PlayerID,
	)

	return created, nil
}

package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"

	"github.com/plwordle/plwordle/internal/config"
	"github.com/plwordle/plwordle/internal/domain/catalog"
	"github.com/plwordle/plwordle/internal/infrastructure/repository/postgres"
	"github.com/plwordle/plwordle/internal/platform/logging"
)

const (
	defaultSeedFile = "./db/seed/catalog.json"
	defaultWorkers  = 4
	dateLayout      = "2006-01-02"
)

type seedTeam struct {
	Name     string `json:"name"`
	BadgeURL string `json:"badge_url"`
}

type seedPlayer struct {
	Name         string   `json:"name"`
	DateOfBirth  string   `json:"date_of_birth"`
	HeightCM     float64  `json:"height_cm"`
	JerseyNumber int      `json:"jersey_number"`
	CurrentTeam  string   `json:"current_team"`
	ImageURL     string   `json:"image_url"`
	Positions    []string `json:"positions"`
	Teams        []string `json:"teams"`
}

type seedFile struct {
	Positions []string     `json:"positions"`
	Teams     []seedTeam   `json:"teams"`
	Players   []seedPlayer `json:"players"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	path := strings.TrimSpace(os.Getenv("SEED_FILE"))
	if path == "" {
		path = defaultSeedFile
	}

	file, err := loadSeedFile(path)
	if err != nil {
		return err
	}
	if len(file.Players) == 0 {
		return crerr.Newf("seed file %s has no players", path)
	}

	db, err := sqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return crerr.Wrap(err, "connect database")
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo := postgres.NewCatalogRepository(db)

	// Reference rows first so the player link subqueries can resolve codes
	// and club names.
	if err := repo.InsertPositions(ctx, positionsFromSeed(file.Positions)); err != nil {
		return crerr.Wrap(err, "seed positions")
	}
	if err := repo.InsertTeams(ctx, teamsFromSeed(file.Teams)); err != nil {
		return crerr.Wrap(err, "seed teams")
	}

	players, err := playersFromSeed(file.Players)
	if err != nil {
		return err
	}

	inserted, failed, err := insertPlayers(ctx, repo, players, seedWorkers(), logger)
	if err != nil {
		return err
	}
	if failed > 0 {
		return crerr.Newf("seeded %d player(s), %d failed", inserted, failed)
	}

	logger.Info("catalog seeded",
		"file", path,
		"positions", len(file.Positions),
		"teams", len(file.Teams),
		"players", inserted,
	)

	return nil
}

func insertPlayers(ctx context.Context, repo *postgres.CatalogRepository, players []catalog.Player, workers int, logger *logging.Logger) (int, int, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, 0, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var insertedCount atomic.Int32
	var failedCount atomic.Int32

	var wg sync.WaitGroup
	for _, player := range players {
		player := player
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			id, insertErr := repo.InsertPlayer(ctx, player)
			if insertErr != nil {
				failedCount.Add(1)
				logger.Error("insert player", "name", player.Name, "error", insertErr)
				return
			}
			insertedCount.Add(1)
			logger.Debug("player inserted", "id", id, "name", player.Name)
		}); err != nil {
			wg.Done()
			return 0, 0, crerr.Wrap(err, "submit player insert")
		}
	}

	wg.Wait()

	return int(insertedCount.Load()), int(failedCount.Load()), nil
}

func loadSeedFile(path string) (seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return seedFile{}, crerr.Wrapf(err, "read seed file %s", path)
	}

	var file seedFile
	if err := sonic.Unmarshal(raw, &file); err != nil {
		return seedFile{}, crerr.Wrapf(err, "parse seed file %s", path)
	}

	return file, nil
}

func positionsFromSeed(codes []string) []catalog.Position {
	out := make([]catalog.Position, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		out = append(out, catalog.Position{Code: code})
	}
	return out
}

func teamsFromSeed(teams []seedTeam) []catalog.Team {
	out := make([]catalog.Team, 0, len(teams))
	for _, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		out = append(out, catalog.Team{Name: name, BadgeURL: strings.TrimSpace(t.BadgeURL)})
	}
	return out
}

func playersFromSeed(players []seedPlayer) ([]catalog.Player, error) {
	out := make([]catalog.Player, 0, len(players))
	for _, sp := range players {
		born, err := time.Parse(dateLayout, strings.TrimSpace(sp.DateOfBirth))
		if err != nil {
			return nil, crerr.Wrapf(err, "player %q date of birth", sp.Name)
		}

		p := catalog.Player{
			Name:         strings.TrimSpace(sp.Name),
			DateOfBirth:  born,
			HeightCM:     sp.HeightCM,
			JerseyNumber: sp.JerseyNumber,
			CurrentTeam:  strings.TrimSpace(sp.CurrentTeam),
			ImageURL:     strings.TrimSpace(sp.ImageURL),
		}
		for _, code := range sp.Positions {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			p.Positions = append(p.Positions, catalog.Position{Code: code})
		}
		for _, name := range sp.Teams {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			p.Teams = append(p.Teams, catalog.Team{Name: name})
		}
		if len(p.Teams) == 0 && p.CurrentTeam != "" {
			p.Teams = append(p.Teams, catalog.Team{Name: p.CurrentTeam})
		}

		if err := p.Validate(); err != nil {
			return nil, crerr.Wrapf(err, "player %q", sp.Name)
		}

		out = append(out, p)
	}

	return out, nil
}

func seedWorkers() int {
	raw := strings.TrimSpace(os.Getenv("SEED_WORKERS"))
	if raw == "" {
		return defaultWorkers
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultWorkers
	}
	return n
}

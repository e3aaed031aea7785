package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plwordle/plwordle/internal/domain/catalog"
	qb "github.com/plwordle/plwordle/internal/platform/querybuilder"
)

type CatalogRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"date_of_birth",
	"height_cm",
	"jersey_number",
	"current_team",
	"image_url",
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListNames(ctx context.Context) ([]catalog.NameEntry, error) {
	query, args, err := qb.Select("id", "name", "image_url").From("players").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player names query: %w", err)
	}

	var rows []nameEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player names: %w", err)
	}

	out := make([]catalog.NameEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.NameEntry{
			ID:       row.ID,
			Name:     row.Name,
			ImageURL: row.ImageURL.String,
		})
	}

	return out, nil
}

func (r *CatalogRepository) GetPlayer(ctx context.Context, playerID int64) (catalog.Player, bool, error) {
	players, err := r.GetPlayers(ctx, []int64{playerID})
	if err != nil {
		return catalog.Player{}, false, err
	}
	if len(players) == 0 {
		return catalog.Player{}, false, nil
	}

	return players[0], true, nil
}

func (r *CatalogRepository) GetPlayers(ctx context.Context, playerIDs []int64) ([]catalog.Player, error) {
	if len(playerIDs) == 0 {
		return []catalog.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", int64SliceToAny(playerIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	positionsByPlayer, err := r.positionsFor(ctx, playerIDs)
	if err != nil {
		return nil, err
	}
	teamsByPlayer, err := r.teamsFor(ctx, playerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.Player{
			ID:           row.ID,
			Name:         row.Name,
			DateOfBirth:  row.DateOfBirth,
			HeightCM:     row.HeightCM,
			JerseyNumber: row.JerseyNumber,
			CurrentTeam:  row.CurrentTeam.String,
			ImageURL:     row.ImageURL.String,
			Positions:    positionsByPlayer[row.ID],
			Teams:        teamsByPlayer[row.ID],
		})
	}

	return out, nil
}

func (r *CatalogRepository) RandomPlayerID(ctx context.Context) (int64, error) {
	// Single uniform pick without ORDER BY random() over the whole table.
	query, args, err := qb.Select("id").From("players").
		OrderBy("id").
		Limit(1).
		OffsetExpr("floor(random() * (SELECT count(*) FROM players))").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build random player query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("catalog is empty")
		}
		return 0, fmt.Errorf("select random player: %w", err)
	}

	return id, nil
}

func (r *CatalogRepository) CountPlayers(ctx context.Context) (int, error) {
	query, args, err := qb.Select("count(*)").From("players").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}

func (r *CatalogRepository) positionsFor(ctx context.Context, playerIDs []int64) (map[int64][]catalog.Position, error) {
	query, args, err := qb.Select("pp.player_id", "p.id AS position_id", "p.code").
		From("player_positions pp").
		Join("JOIN positions p ON p.id = pp.position_id").
		Where(qb.In("pp.player_id", int64SliceToAny(playerIDs))).
		OrderBy("pp.player_id", "pp.position_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player positions query: %w", err)
	}

	var rows []playerPositionRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player positions: %w", err)
	}

	out := make(map[int64][]catalog.Position, len(playerIDs))
	for _, row := range rows {
		out[row.PlayerID] = append(out[row.PlayerID], catalog.Position{ID: row.PositionID, Code: row.Code})
	}

	return out, nil
}

func (r *CatalogRepository) teamsFor(ctx context.Context, playerIDs []int64) (map[int64][]catalog.Team, error) {
	query, args, err := qb.Select("pt.player_id", "t.id AS team_id", "t.name", "t.badge_url").
		From("player_teams pt").
		Join("JOIN teams t ON t.id = pt.team_id").
		Where(qb.In("pt.player_id", int64SliceToAny(playerIDs))).
		OrderBy("pt.player_id", "pt.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player teams query: %w", err)
	}

	var rows []playerTeamRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player teams: %w", err)
	}

	out := make(map[int64][]catalog.Team, len(playerIDs))
	for _, row := range rows {
		out[row.PlayerID] = append(out[row.PlayerID], catalog.Team{ID: row.TeamID, Name: row.Name, BadgeURL: row.BadgeURL.String})
	}

	return out, nil
}

func (r *CatalogRepository) InsertPositions(ctx context.Context, positions []catalog.Position) error {
	if len(positions) == 0 {
		return nil
	}

	builder := qb.InsertInto("positions").Columns("code")
	for _, p := range positions {
		builder.Values(p.Code)
	}
	query, args, err := builder.Suffix("ON CONFLICT (code) DO NOTHING").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert positions query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert positions: %w", err)
	}

	return nil
}

func (r *CatalogRepository) InsertTeams(ctx context.Context, teams []catalog.Team) error {
	if len(teams) == 0 {
		return nil
	}

	builder := qb.InsertInto("teams").Columns("name", "badge_url")
	for _, t := range teams {
		builder.Values(t.Name, t.BadgeURL)
	}
	query, args, err := builder.Suffix("ON CONFLICT (name) DO NOTHING").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert teams: %w", err)
	}

	return nil
}

func (r *CatalogRepository) InsertPlayer(ctx context.Context, p catalog.Player) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx for player insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertInto("players").
		Columns("name", "date_of_birth", "height_cm", "jersey_number", "current_team", "image_url").
		Values(p.Name, p.DateOfBirth, p.HeightCM, p.JerseyNumber, p.CurrentTeam, p.ImageURL).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert player query: %w", err)
	}

	var playerID int64
	if err := tx.GetContext(ctx, &playerID, query, args...); err != nil {
		return 0, fmt.Errorf("insert player %q: %w", p.Name, err)
	}

	const linkPositionQuery = `
INSERT INTO player_positions (player_id, position_id)
SELECT $1, id FROM positions WHERE code = $2
ON CONFLICT DO NOTHING`
	for _, pos := range p.Positions {
		if _, err := tx.ExecContext(ctx, linkPositionQuery, playerID, pos.Code); err != nil {
			return 0, fmt.Errorf("link player %q position %q: %w", p.Name, pos.Code, err)
		}
	}

	const linkTeamQuery = `
INSERT INTO player_teams (player_id, team_id)
SELECT $1, id FROM teams WHERE name = $2
ON CONFLICT DO NOTHING`
	for _, team := range p.Teams {
		if _, err := tx.ExecContext(ctx, linkTeamQuery, playerID, team.Name); err != nil {
			return 0, fmt.Errorf("link player %q team %q: %w", p.Name, team.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit player insert tx: %w", err)
	}

	return playerID, nil
}

package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	DateOfBirth  time.Time      `db:"date_of_birth"`
	HeightCM     float64        `db:"height_cm"`
	JerseyNumber int            `db:"jersey_number"`
	CurrentTeam  sql.NullString `db:"current_team"`
	ImageURL     sql.NullString `db:"image_url"`
}

type nameEntryTableModel struct {
	ID       int64          `db:"id"`
	Name     string         `db:"name"`
	ImageURL sql.NullString `db:"image_url"`
}

type playerPositionRowModel struct {
	PlayerID   int64  `db:"player_id"`
	PositionID int64  `db:"position_id"`
	Code       string `db:"code"`
}

type playerTeamRowModel struct {
	PlayerID int64          `db:"player_id"`
	TeamID   int64          `db:"team_id"`
	Name     string         `db:"name"`
	BadgeURL sql.NullString `db:"badge_url"`
}

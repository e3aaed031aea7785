package postgres

import "time"

type dailyTargetTableModel struct {
	ID       int64     `db:"id"`
	GameDate time.Time `db:"game_date"`
	PlayerID int64     `db:"player_id"`
}

type gameTableModel struct {
	ID       int64     `db:"id"`
	UserID   string    `db:"user_id"`
	GameDate time.Time `db:"game_date"`
}

type guessTableModel struct {
	ID       int64     `db:"id"`
	GameID   int64     `db:"game_id"`
	PlayerID int64     `db:"player_id"`
	Number   int       `db:"number"`
	MadeAt   time.Time `db:"made_at"`
}

package catalog

import "context"

// Repository describes catalog persistence needs from use cases. The catalog
// is seeded once per season and read-only afterwards; the write methods exist
// for the offline seeding step only.
type Repository interface {
	ListNames(ctx context.Context) ([]NameEntry, error)
	GetPlayer(ctx context.Context, playerID int64) (Player, bool, error)
	GetPlayers(ctx context.Context, playerIDs []int64) ([]Player, error)
	RandomPlayerID(ctx context.Context) (int64, error)
	CountPlayers(ctx context.Context) (int, error)
}

// Writer is the seeding-side interface. Application request paths never use it.
type Writer interface {
	InsertPositions(ctx context.Context, positions []Position) error
	InsertTeams(ctx context.Context, teams []Team) error
	InsertPlayer(ctx context.Context, p Player) (int64, error)
}

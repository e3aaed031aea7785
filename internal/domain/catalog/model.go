package catalog

import (
	"fmt"
	"time"
)

// Position is a short on-pitch position code, e.g. "GK" or "ST".
type Position struct {
	ID   int64
	Code string
}

// Team is a Premier League club.
type Team struct {
	ID       int64
	Name     string
	BadgeURL string
}

// Player is one entry in the season's read-only catalog. Positions and Teams
// carry the many-to-many reference data; Teams lists historical affiliations,
// CurrentTeam names the club the player is registered with this season.
type Player struct {
	ID           int64
	Name         string
	DateOfBirth  time.Time
	HeightCM     float64
	JerseyNumber int
	CurrentTeam  string
	ImageURL     string
	Positions    []Position
	Teams        []Team
}

// NameEntry is the slim projection served to the autocomplete widget.
type NameEntry struct {
	ID       int64
	Name     string
	ImageURL string
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("player date of birth is required")
	}
	if p.HeightCM <= 0 {
		return fmt.Errorf("player height must be greater than zero")
	}
	if p.JerseyNumber < 0 {
		return fmt.Errorf("player jersey number cannot be negative")
	}
	if len(p.Positions) == 0 {
		return fmt.Errorf("player needs at least one position")
	}

	return nil
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

func (p Position) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("position code is required")
	}

	return nil
}

package httpapi

import (
	"context"
	"time"

	"github.com/plwordle/plwordle/internal/domain/catalog"
	"github.com/plwordle/plwordle/internal/domain/game"
	"github.com/plwordle/plwordle/internal/domain/reveal"
)

type sessionDTO struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type nameEntryDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// guessRowDTO is one row of the board: the guessed player's revealed
// attributes plus whether the guess hit the target.
type guessRowDTO struct {
	Number       int    `json:"number"`
	PlayerID     int64  `json:"playerId"`
	Name         string `json:"name"`
	ImageURL     string `json:"imageUrl,omitempty"`
	TeamLabel    string `json:"teamLabel"`
	TeamBadgeURL string `json:"teamBadgeUrl,omitempty"`
	Position     string `json:"position"`
	Age          int    `json:"age"`
	JerseyNumber int    `json:"jerseyNumber"`
	Height       string `json:"height"`
	Correct      bool   `json:"correct"`
}

type playViewDTO struct {
	Day              string         `json:"day"`
	GuessesUsed      int            `json:"guessesUsed"`
	GuessesRemaining int            `json:"guessesRemaining"`
	Solved           bool           `json:"solved"`
	Exhausted        bool           `json:"exhausted"`
	Answer           *nameEntryDTO  `json:"answer,omitempty"`
	Guesses          []guessRowDTO  `json:"guesses"`
	Players          []nameEntryDTO `json:"players"`
}

func guessToRowDTO(ctx context.Context, g game.Guess, p catalog.Player, targetPlayerID int64, now time.Time) guessRowDTO {
	team := reveal.CurrentTeam(p)

	return guessRowDTO{
		Number:       g.Number,
		PlayerID:     p.ID,
		Name:         p.Name,
		ImageURL:     p.ImageURL,
		TeamLabel:    reveal.TeamLabel(team.Name),
		TeamBadgeURL: team.BadgeURL,
		Position:     reveal.PrimaryPosition(p),
		Age:          reveal.Age(p.DateOfBirth, now),
		JerseyNumber: p.JerseyNumber,
		Height:       reveal.HeightLabel(p.HeightCM),
		Correct:      g.PlayerID == targetPlayerID,
	}
}

func nameEntryToDTO(entry catalog.NameEntry) nameEntryDTO {
	return nameEntryDTO{
		ID:       entry.ID,
		Name:     entry.Name,
		ImageURL: entry.ImageURL,
	}
}

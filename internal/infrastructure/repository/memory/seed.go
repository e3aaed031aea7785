package memory

import (
	"context"
	"time"

	"github.com/plwordle/plwordle/internal/domain/catalog"
)

// SeedPositions and friends provide a small Premier League catalog for the
// memory driver and for tests. The postgres driver is seeded from
// db/seed/catalog.json instead.

func SeedPositions() []catalog.Position {
	return []catalog.Position{
		{ID: 1, Code: "GK"},
		{ID: 2, Code: "CB"},
		{ID: 3, Code: "LB"},
		{ID: 4, Code: "RB"},
		{ID: 5, Code: "CDM"},
		{ID: 6, Code: "CM"},
		{ID: 7, Code: "CAM"},
		{ID: 8, Code: "LW"},
		{ID: 9, Code: "RW"},
		{ID: 10, Code: "ST"},
	}
}

func SeedTeams() []catalog.Team {
	return []catalog.Team{
		{ID: 1, Name: "Arsenal"},
		{ID: 2, Name: "Aston Villa"},
		{ID: 3, Name: "AFC Bournemouth"},
		{ID: 4, Name: "Liverpool"},
		{ID: 5, Name: "Manchester City"},
		{ID: 6, Name: "Newcastle United"},
		{ID: 7, Name: "Tottenham Hotspur"},
		{ID: 8, Name: "Wolverhampton Wanderers"},
	}
}

func SeedPlayers() []catalog.Player {
	positions := map[string]catalog.Position{}
	for _, p := range SeedPositions() {
		positions[p.Code] = p
	}
	teams := map[string]catalog.Team{}
	for _, t := range SeedTeams() {
		teams[t.Name] = t
	}

	return []catalog.Player{
		{
			ID:           1,
			Name:         "Bukayo Saka",
			DateOfBirth:  time.Date(2001, 9, 5, 0, 0, 0, 0, time.UTC),
			HeightCM:     178,
			JerseyNumber: 7,
			CurrentTeam:  "Arsenal",
			Positions:    []catalog.Position{positions["RW"]},
			Teams:        []catalog.Team{teams["Arsenal"]},
		},
		{
			ID:           2,
			Name:         "Mohamed Salah",
			DateOfBirth:  time.Date(1992, 6, 15, 0, 0, 0, 0, time.UTC),
			HeightCM:     175,
			JerseyNumber: 11,
			CurrentTeam:  "Liverpool",
			Positions:    []catalog.Position{positions["RW"], positions["ST"]},
			Teams:        []catalog.Team{teams["Liverpool"]},
		},
		{
			ID:           3,
			Name:         "Erling Haaland",
			DateOfBirth:  time.Date(2000, 7, 21, 0, 0, 0, 0, time.UTC),
			HeightCM:     195,
			JerseyNumber: 9,
			CurrentTeam:  "Manchester City",
			Positions:    []catalog.Position{positions["ST"]},
			Teams:        []catalog.Team{teams["Manchester City"]},
		},
		{
			ID:           4,
			Name:         "Ollie Watkins",
			DateOfBirth:  time.Date(1995, 12, 30, 0, 0, 0, 0, time.UTC),
			HeightCM:     180,
			JerseyNumber: 11,
			CurrentTeam:  "Aston Villa",
			Positions:    []catalog.Position{positions["ST"]},
			Teams:        []catalog.Team{teams["Aston Villa"]},
		},
		{
			ID:           5,
			Name:         "Alisson Becker",
			DateOfBirth:  time.Date(1992, 10, 2, 0, 0, 0, 0, time.UTC),
			HeightCM:     191,
			JerseyNumber: 1,
			CurrentTeam:  "Liverpool",
			Positions:    []catalog.Position{positions["GK"]},
			Teams:        []catalog.Team{teams["Liverpool"]},
		},
		{
			ID:           6,
			Name:         "Bruno Guimaraes",
			DateOfBirth:  time.Date(1997, 11, 16, 0, 0, 0, 0, time.UTC),
			HeightCM:     182,
			JerseyNumber: 39,
			CurrentTeam:  "Newcastle United",
			Positions:    []catalog.Position{positions["CM"], positions["CDM"]},
			Teams:        []catalog.Team{teams["Newcastle United"]},
		},
		{
			ID:           7,
			Name:         "Matheus Cunha",
			DateOfBirth:  time.Date(1999, 5, 27, 0, 0, 0, 0, time.UTC),
			HeightCM:     184,
			JerseyNumber: 12,
			CurrentTeam:  "Wolverhampton Wanderers",
			Positions:    []catalog.Position{positions["ST"], positions["CAM"]},
			Teams:        []catalog.Team{teams["Wolverhampton Wanderers"]},
		},
		{
			ID:           8,
			Name:         "Son Heung-min",
			DateOfBirth:  time.Date(1992, 7, 8, 0, 0, 0, 0, time.UTC),
			HeightCM:     183,
			JerseyNumber: 7,
			CurrentTeam:  "Tottenham Hotspur",
			Positions:    []catalog.Position{positions["LW"], positions["ST"]},
			Teams:        []catalog.Team{teams["Tottenham Hotspur"]},
		},
	}
}

// SeededCatalogRepository returns a catalog repository pre-loaded with the
// sample players.
func SeededCatalogRepository() *CatalogRepository {
	repo := NewCatalogRepository()
	for _, p := range SeedPlayers() {
		_, _ = repo.InsertPlayer(context.Background(), p)
	}
	return repo
}

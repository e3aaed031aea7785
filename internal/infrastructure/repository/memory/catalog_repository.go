package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/plwordle/plwordle/internal/domain/catalog"
)

// CatalogRepository keeps the season catalog in process memory. It backs the
// memory storage driver and the usecase tests.
type CatalogRepository struct {
	mu      sync.RWMutex
	players map[int64]catalog.Player
	nextID  int64
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{players: make(map[int64]catalog.Player), nextID: 1}
}

func (r *CatalogRepository) ListNames(_ context.Context) ([]catalog.NameEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]catalog.NameEntry, 0, len(r.players))
	for _, p := range r.players {
		names = append(names, catalog.NameEntry{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL})
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Name < names[j].Name })

	return names, nil
}

func (r *CatalogRepository) GetPlayer(_ context.Context, playerID int64) (catalog.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return catalog.Player{}, false, nil
	}

	return clonePlayer(p), true, nil
}

func (r *CatalogRepository) GetPlayers(_ context.Context, playerIDs []int64) ([]catalog.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.players[id]; ok {
			out = append(out, clonePlayer(p))
		}
	}

	return out, nil
}

func (r *CatalogRepository) RandomPlayerID(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.players) == 0 {
		return 0, fmt.Errorf("catalog is empty")
	}

	ids := make([]int64, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids[rand.Intn(len(ids))], nil
}

func (r *CatalogRepository) CountPlayers(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.players), nil
}

func (r *CatalogRepository) InsertPositions(_ context.Context, _ []catalog.Position) error {
	return nil
}

func (r *CatalogRepository) InsertTeams(_ context.Context, _ []catalog.Team) error {
	return nil
}

func (r *CatalogRepository) InsertPlayer(_ context.Context, p catalog.Player) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	r.players[p.ID] = clonePlayer(p)

	return p.ID, nil
}

func clonePlayer(p catalog.Player) catalog.Player {
	copied := p
	copied.Positions = append([]catalog.Position(nil), p.Positions...)
	copied.Teams = append([]catalog.Team(nil), p.Teams...)
	return copied
}

package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/plwordle/plwordle/internal/domain/catalog"
	"github.com/plwordle/plwordle/internal/platform/cache"
)

const nameListCacheKey = "catalog:names"

// CatalogService serves the read-only player catalog: the autocomplete name
// list and the resolution of a submitted guess to a definite player id.
type CatalogService struct {
	catalogRepo catalog.Repository
	nameCache   *cache.Store
}

func NewCatalogService(catalogRepo catalog.Repository, nameCache *cache.Store) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		nameCache:   nameCache,
	}
}

func (s *CatalogService) ListNames(ctx context.Context) ([]catalog.NameEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListNames")
	defer span.End()

	if s.nameCache == nil {
		names, err := s.catalogRepo.ListNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("list player names: %w", err)
		}
		return names, nil
	}

	value, err := s.nameCache.GetOrLoad(ctx, nameListCacheKey, func() (any, error) {
		names, err := s.catalogRepo.ListNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("list player names: %w", err)
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]catalog.NameEntry), nil
}

// ResolveGuess converts a submitted guess into a player id. A parseable
// non-negative id is trusted as-is; existence is enforced by the guess write.
// Otherwise the name is matched case-insensitively against the full catalog,
// first match wins. The fallback keeps guesses working for clients whose
// autocomplete never filled the hidden id field.
func (s *CatalogService) ResolveGuess(ctx context.Context, rawID, rawName string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ResolveGuess")
	defer span.End()

	rawID = strings.TrimSpace(rawID)
	if id, err := strconv.ParseInt(rawID, 10, 64); err == nil && id >= 0 {
		return id, nil
	}

	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return 0, fmt.Errorf("%w: invalid player guessed", ErrNotFound)
	}

	names, err := s.ListNames(ctx)
	if err != nil {
		return 0, err
	}
	for _, entry := range names {
		if strings.EqualFold(entry.Name, rawName) {
			return entry.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: invalid player guessed", ErrNotFound)
}

// GetPlayers loads full catalog cards for the given ids, preserving order and
// skipping unknown ids.
func (s *CatalogService) GetPlayers(ctx context.Context, playerIDs []int64) ([]catalog.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetPlayers")
	defer span.End()

	if len(playerIDs) == 0 {
		return []catalog.Player{}, nil
	}

	players, err := s.catalogRepo.GetPlayers(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[int64]catalog.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]catalog.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}

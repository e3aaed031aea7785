package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/plwordle/plwordle/internal/domain/catalog"
	catalogmock "github.com/plwordle/plwordle/internal/mocks/domain/catalog"
)

func TestCatalogService_ResolveGuess_NameMatchUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalogRepo := catalogmock.NewRepository(t)

	service := NewCatalogService(catalogRepo, nil)
	expectedNames := []catalog.NameEntry{
		{ID: 1, Name: "Bukayo Saka"},
		{ID: 2, Name: "Mohamed Salah"},
	}

	catalogRepo.
		On("ListNames", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(expectedNames, nil).
		Once()

	got, err := service.ResolveGuess(ctx, "", "mohamed salah")
	if err != nil {
		t.Fatalf("resolve guess: %v", err)
	}
	if got != 2 {
		t.Fatalf("unexpected player id: got=%d want=2", got)
	}
}

func TestCatalogService_ResolveGuess_RepoFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalogRepo := catalogmock.NewRepository(t)

	service := NewCatalogService(catalogRepo, nil)
	repoErr := errors.New("connection reset")

	catalogRepo.
		On("ListNames", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(nil, repoErr).
		Once()

	_, err := service.ResolveGuess(ctx, "", "Mohamed Salah")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestCatalogService_GetPlayers_PreservesOrderUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalogRepo := catalogmock.NewRepository(t)

	service := NewCatalogService(catalogRepo, nil)
	ids := []int64{3, 1}

	catalogRepo.
		On("GetPlayers", mock.MatchedBy(func(v context.Context) bool { return v != nil }), ids).
		Return([]catalog.Player{{ID: 1, Name: "Bukayo Saka"}, {ID: 3, Name: "Erling Haaland"}}, nil).
		Once()

	got, err := service.GetPlayers(ctx, ids)
	if err != nil {
		t.Fatalf("get players: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected player count: got=%d want=2", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("order not preserved: got=[%d %d] want=[3 1]", got[0].ID, got[1].ID)
	}
}

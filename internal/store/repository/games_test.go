package repository

import (
	"context"
	"testing"

	"github.com/prettygood/courtside/internal/store"
)

func TestOpponentSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Rivals", "rivals"},
		{"spaces", "Pretty Good", "pretty-good"},
		{"punctuation", "St. Mary's", "st-mary-s"},
		{"leading and trailing junk", "  The Team!  ", "the-team"},
		{"digits kept", "Over 40s", "over-40s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OpponentSlug(tt.in); got != tt.want {
				t.Errorf("OpponentSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGameKey(t *testing.T) {
	if got := GameKey("2025-03-01", "Rivals"); got != "games/2025-03-01-rivals" {
		t.Errorf("GameKey = %q, want games/2025-03-01-rivals", got)
	}
}

func testGame(date, opponent string) *store.Game {
	return &store.Game{
		Date:     date,
		Season:   date[:4],
		Opponent: opponent,
		HomeAway: "home",
		Score:    store.Score{Us: 52, Them: 40},
		Result:   "W",
		Stats:    map[string]*store.PlayerGameStats{},
	}
}

func TestGameRepositoryRoundTrip(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	repo := NewGameRepository(fs)
	ctx := context.Background()

	key, err := repo.Save(ctx, testGame("2025-03-01", "Rivals"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key != "games/2025-03-01-rivals" {
		t.Errorf("key = %q", key)
	}

	game, err := repo.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if game.Opponent != "Rivals" || game.Score.Us != 52 {
		t.Errorf("game = %+v", game)
	}
}

func TestGameRepositoryLoadAllOrdered(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	repo := NewGameRepository(fs)
	ctx := context.Background()

	for _, g := range []*store.Game{
		testGame("2025-03-01", "Rivals"),
		testGame("2024-11-15", "Jets"),
		testGame("2025-01-20", "Aces"),
	} {
		if _, err := repo.Save(ctx, g); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	games, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	want := []string{"games/2024-11-15-jets", "games/2025-01-20-aces", "games/2025-03-01-rivals"}
	if len(games) != len(want) {
		t.Fatalf("len = %d, want %d", len(games), len(want))
	}
	for i, kg := range games {
		if kg.Key != want[i] {
			t.Errorf("games[%d].Key = %q, want %q", i, kg.Key, want[i])
		}
	}
}

func TestGameRepositoryIndex(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	repo := NewGameRepository(fs)
	ctx := context.Background()

	game := testGame("2025-03-01", "Rivals")
	if _, err := repo.Save(ctx, game); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.UpdateIndex(ctx, game); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}

	index, err := repo.LoadIndex(ctx)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}

	entry, ok := index["2025-03-01-rivals"]
	if !ok {
		t.Fatalf("index missing game id, got %v", index)
	}
	if entry.Filename != "2025-03-01-rivals.json" {
		t.Errorf("Filename = %q", entry.Filename)
	}
	if entry.Opponent != "Rivals" || entry.Result != "W" || entry.Season != "2025" {
		t.Errorf("entry = %+v", entry)
	}

	// Re-saving the same game replaces, not duplicates, the entry.
	if err := repo.UpdateIndex(ctx, game); err != nil {
		t.Fatalf("UpdateIndex again: %v", err)
	}
	index, _ = repo.LoadIndex(ctx)
	if len(index) != 1 {
		t.Errorf("index has %d entries, want 1", len(index))
	}
}

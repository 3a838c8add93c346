// Package aggregate recomputes the derived views — the record book and the
// per-season rollups — from the full game corpus on every ingestion. Both
// passes are pure functions of (corpus, registry); nothing is patched
// incrementally, which keeps re-runs idempotent and tie-breaking trivial to
// reason about.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/prettygood/courtside/internal/store"
	"github.com/prettygood/courtside/internal/store/repository"
)

// TrackedStats are the single-game stats the record book follows. Shooting
// stats count the made component.
var TrackedStats = []string{"pts", "reb", "asst", "stl", "blk", "to", "fg", "3pt", "ft", "oreb", "dreb", "foul"}

// BuildRecordBook scans the corpus (already in ascending key order) and
// returns a fresh record book. A strictly greater value takes a record; ties
// keep the earliest entry in corpus order. Zero never sets a record, not even
// as the first qualifying value.
func BuildRecordBook(games []repository.KeyedGame, players map[string]*store.Player) *store.RecordBook {
	book := &store.RecordBook{
		Regular: emptyLeaderboard(),
		Playoff: emptyLeaderboard(),
		All:     emptyLeaderboard(),
	}

	for _, kg := range games {
		game := kg.Game
		gameBucket := book.Bucket(game.Type())
		allBucket := book.Bucket(store.CategoryAll)

		for _, number := range sortedNumbers(game.Stats) {
			line := game.Stats[number]
			playerName := displayName(players, number)

			for _, stat := range TrackedStats {
				value, ok := line.StatValue(stat)
				if !ok || value == 0 {
					continue
				}
				key := "most_" + stat
				challenge(gameBucket, key, value, playerName, number, game)
				challenge(allBucket, key, value, playerName, number, game)
			}
		}
	}

	return book
}

func emptyLeaderboard() map[string]store.RecordEntry {
	board := make(map[string]store.RecordEntry, len(TrackedStats))
	for _, stat := range TrackedStats {
		board["most_"+stat] = store.RecordEntry{}
	}
	return board
}

func challenge(board map[string]store.RecordEntry, key string, value int, player, number string, game *store.Game) {
	if value <= board[key].Value {
		return
	}
	board[key] = store.RecordEntry{
		Player:       &player,
		PlayerNumber: &number,
		Value:        value,
		Date:         &game.Date,
		Opponent:     &game.Opponent,
	}
}

// sortedNumbers fixes the within-game iteration order so record tie-breaking
// does not depend on map order.
func sortedNumbers(lines map[string]*store.PlayerGameStats) []string {
	numbers := make([]string, 0, len(lines))
	for n := range lines {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	return numbers
}

func displayName(players map[string]*store.Player, number string) string {
	if p, ok := players[number]; ok && p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%s", number)
}

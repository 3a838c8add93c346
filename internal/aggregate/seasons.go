package aggregate

import (
	"github.com/prettygood/courtside/internal/stats"
	"github.com/prettygood/courtside/internal/store"
	"github.com/prettygood/courtside/internal/store/repository"
)

// BuildSeasonAggregates folds the corpus into one aggregate per season key.
// A player's first appearance in a season initializes zeroed lines in all
// three category buckets; accumulation then touches only the game's own
// category and "all". Derived per-game figures are computed after the fold
// for every line with at least one game played.
func BuildSeasonAggregates(games []repository.KeyedGame) map[string]*store.SeasonAggregate {
	seasons := make(map[string]*store.SeasonAggregate)

	for _, kg := range games {
		game := kg.Game
		agg, ok := seasons[game.Season]
		if !ok {
			agg = store.NewSeasonAggregate()
			seasons[game.Season] = agg
		}

		for number, line := range game.Stats {
			for _, c := range store.Categories() {
				bucket := agg.Bucket(c)
				if _, ok := bucket[number]; !ok {
					bucket[number] = &store.PlayerSeasonLine{}
				}
			}
			accumulate(agg.Bucket(game.Type())[number], line)
			accumulate(agg.Bucket(store.CategoryAll)[number], line)
		}
	}

	for _, agg := range seasons {
		for _, c := range store.Categories() {
			for _, line := range agg.Bucket(c) {
				if line.GamesPlayed > 0 {
					derive(line)
				}
			}
		}
	}

	return seasons
}

func accumulate(total *store.PlayerSeasonLine, line *store.PlayerGameStats) {
	total.GamesPlayed++

	total.Points += intOrZero(line.Points)
	total.Rebounds += line.Rebounds
	total.Assists += intOrZero(line.Assists)
	total.Steals += intOrZero(line.Steals)
	total.Blocks += intOrZero(line.Blocks)
	total.TO += intOrZero(line.TO)
	total.Fouls += intOrZero(line.Fouls)
	total.OffReb += intOrZero(line.OffReb)
	total.DefReb += intOrZero(line.DefReb)

	if line.FG != nil {
		total.FG.Add(*line.FG)
	}
	if line.TwoPT != nil {
		total.TwoPT.Add(*line.TwoPT)
	}
	if line.ThreePT != nil {
		total.ThreePT.Add(*line.ThreePT)
	}
	if line.FT != nil {
		total.FT.Add(*line.FT)
	}
}

func derive(line *store.PlayerSeasonLine) {
	gp := float64(line.GamesPlayed)
	perGame := func(total int) float64 {
		return stats.Round1(float64(total) / gp)
	}

	line.PPG = perGame(line.Points)
	line.RPG = perGame(line.Rebounds)
	line.APG = perGame(line.Assists)
	line.SPG = perGame(line.Steals)
	line.BPG = perGame(line.Blocks)
	line.TPG = perGame(line.TO)
	line.FPG = perGame(line.Fouls)
	line.ORebPG = perGame(line.OffReb)
	line.DRebPG = perGame(line.DefReb)

	line.FGMPG = perGame(line.FG.Made())
	line.FGAPG = perGame(line.FG.Attempted())
	line.TwoMPG = perGame(line.TwoPT.Made())
	line.TwoAPG = perGame(line.TwoPT.Attempted())
	line.ThreeMPG = perGame(line.ThreePT.Made())
	line.ThreeAPG = perGame(line.ThreePT.Attempted())
	line.FTMPG = perGame(line.FT.Made())
	line.FTAPG = perGame(line.FT.Attempted())

	line.FGPct = stats.PairPercentage(line.FG)
	line.TwoPct = stats.PairPercentage(line.TwoPT)
	line.ThreePct = stats.PairPercentage(line.ThreePT)
	line.FTPct = stats.PairPercentage(line.FT)
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

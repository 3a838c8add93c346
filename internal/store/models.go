package store

import "fmt"

// Category buckets every derived view three ways: regular-season games,
// playoff games, and everything combined.
type Category string

const (
	CategoryRegular Category = "regular"
	CategoryPlayoff Category = "playoff"
	CategoryAll     Category = "all"
)

// Categories returns all category buckets in a fixed order.
func Categories() []Category {
	return []Category{CategoryRegular, CategoryPlayoff, CategoryAll}
}

// ShootingPair is a (made, attempted) count for one shot category.
// It marshals as a two-element JSON array.
type ShootingPair [2]int

// Made returns the made count.
func (p ShootingPair) Made() int { return p[0] }

// Attempted returns the attempted count.
func (p ShootingPair) Attempted() int { return p[1] }

// Add accumulates another pair component-wise.
func (p *ShootingPair) Add(o ShootingPair) {
	p[0] += o[0]
	p[1] += o[1]
}

// Sub returns the component-wise difference p - o.
func (p ShootingPair) Sub(o ShootingPair) ShootingPair {
	return ShootingPair{p[0] - o[0], p[1] - o[1]}
}

// Player is one entry in the player registry, keyed by jersey number.
type Player struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Name        string            `json:"name"`
	Number      string            `json:"number"`
	Position    string            `json:"position"`
	Teams       []string          `json:"teams"`
	Images      map[string]string `json:"images"`
}

// PlayerGameStats is one player's line in one game. Raw fields come straight
// from the box score; nil means the cell was absent or unreadable. Derived
// fields are recomputed from the raw fields and are never authoritative input.
type PlayerGameStats struct {
	FG      *ShootingPair `json:"fg"`
	ThreePT *ShootingPair `json:"3pt"`
	FT      *ShootingPair `json:"ft"`
	OffReb  *int          `json:"oreb"`
	DefReb  *int          `json:"dreb"`
	Fouls   *int          `json:"foul"`
	Steals  *int          `json:"stl"`
	TO      *int          `json:"to"`
	Blocks  *int          `json:"blk"`
	Assists *int          `json:"asst"`
	Points  *int          `json:"pts"`

	// Derived
	TwoPT      *ShootingPair `json:"2pt,omitempty"`
	TwoPTPct   *float64      `json:"2pt_pct,omitempty"`
	FGPct      float64       `json:"fg_pct"`
	ThreePTPct float64       `json:"3pt_pct"`
	FTPct      float64       `json:"ft_pct"`
	Rebounds   int           `json:"reb"`
}

// StatValue returns the value used for record tracking: the made component
// for shooting pairs, the plain count otherwise. ok is false when the stat
// is absent or untracked.
func (s *PlayerGameStats) StatValue(name string) (int, bool) {
	pair := func(p *ShootingPair) (int, bool) {
		if p == nil {
			return 0, false
		}
		return p.Made(), true
	}
	count := func(n *int) (int, bool) {
		if n == nil {
			return 0, false
		}
		return *n, true
	}
	switch name {
	case "fg":
		return pair(s.FG)
	case "3pt":
		return pair(s.ThreePT)
	case "ft":
		return pair(s.FT)
	case "oreb":
		return count(s.OffReb)
	case "dreb":
		return count(s.DefReb)
	case "foul":
		return count(s.Fouls)
	case "stl":
		return count(s.Steals)
	case "to":
		return count(s.TO)
	case "blk":
		return count(s.Blocks)
	case "asst":
		return count(s.Assists)
	case "pts":
		return count(s.Points)
	case "reb":
		return s.Rebounds, true
	}
	return 0, false
}

// Score is a final score from our team's perspective.
type Score struct {
	Us   int `json:"us"`
	Them int `json:"them"`
}

// Game is the canonical record of one ingested box score.
// Stats is keyed by jersey number.
type Game struct {
	Date      string                      `json:"date"`
	Season    string                      `json:"season"`
	Opponent  string                      `json:"opponent"`
	HomeAway  string                      `json:"homeAway"`
	Score     Score                       `json:"score"`
	Result    string                      `json:"result"`
	IsPlayoff bool                        `json:"isPlayoff"`
	Stats     map[string]*PlayerGameStats `json:"stats"`
}

// Type returns the game's category bucket (never CategoryAll).
func (g *Game) Type() Category {
	if g.IsPlayoff {
		return CategoryPlayoff
	}
	return CategoryRegular
}

// GameSummary is the denormalized games-index entry kept in sync with every
// game save.
type GameSummary struct {
	Filename  string `json:"filename"`
	Date      string `json:"date"`
	Season    string `json:"season"`
	Opponent  string `json:"opponent"`
	Score     Score  `json:"score"`
	Result    string `json:"result"`
	IsPlayoff bool   `json:"isPlayoff"`
}

// RecordEntry is the single best performance for one stat in one category.
// Pointers stay nil until a game qualifies; a value of zero never sets a record.
type RecordEntry struct {
	Player       *string `json:"player"`
	PlayerNumber *string `json:"player_number"`
	Value        int     `json:"value"`
	Date         *string `json:"date"`
	Opponent     *string `json:"opponent"`
}

// RecordBook holds the per-category leaderboards, keyed by "most_<stat>".
type RecordBook struct {
	Regular map[string]RecordEntry `json:"regular"`
	Playoff map[string]RecordEntry `json:"playoff"`
	All     map[string]RecordEntry `json:"all"`
}

// Bucket returns the leaderboard for a category.
func (b *RecordBook) Bucket(c Category) map[string]RecordEntry {
	switch c {
	case CategoryRegular:
		return b.Regular
	case CategoryPlayoff:
		return b.Playoff
	case CategoryAll:
		return b.All
	}
	panic(fmt.Sprintf("unknown category %q", c))
}

// PlayerSeasonLine is one player's cumulative line for one season and category.
// Derived per-game fields are only meaningful when GamesPlayed > 0.
type PlayerSeasonLine struct {
	GamesPlayed int          `json:"gp"`
	Points      int          `json:"pts"`
	Rebounds    int          `json:"reb"`
	Assists     int          `json:"asst"`
	Steals      int          `json:"stl"`
	Blocks      int          `json:"blk"`
	TO          int          `json:"to"`
	Fouls       int          `json:"foul"`
	FG          ShootingPair `json:"fg"`
	TwoPT       ShootingPair `json:"2pt"`
	ThreePT     ShootingPair `json:"3pt"`
	FT          ShootingPair `json:"ft"`
	OffReb      int          `json:"oreb"`
	DefReb      int          `json:"dreb"`

	// Derived averages and rates, recomputed on every aggregation pass.
	PPG      float64 `json:"ppg"`
	RPG      float64 `json:"rpg"`
	APG      float64 `json:"apg"`
	SPG      float64 `json:"spg"`
	BPG      float64 `json:"bpg"`
	TPG      float64 `json:"tpg"`
	FPG      float64 `json:"fpg"`
	ORebPG   float64 `json:"orebpg"`
	DRebPG   float64 `json:"drebpg"`
	FGMPG    float64 `json:"fgm_pg"`
	FGAPG    float64 `json:"fga_pg"`
	TwoMPG   float64 `json:"2pm_pg"`
	TwoAPG   float64 `json:"2pa_pg"`
	ThreeMPG float64 `json:"3pm_pg"`
	ThreeAPG float64 `json:"3pa_pg"`
	FTMPG    float64 `json:"ftm_pg"`
	FTAPG    float64 `json:"fta_pg"`
	FGPct    float64 `json:"fg_pct"`
	TwoPct   float64 `json:"2pt_pct"`
	ThreePct float64 `json:"3pt_pct"`
	FTPct    float64 `json:"ft_pct"`
}

// SeasonAggregate is the per-season rollup: category → jersey number → line.
type SeasonAggregate struct {
	Regular map[string]*PlayerSeasonLine `json:"regular"`
	Playoff map[string]*PlayerSeasonLine `json:"playoff"`
	All     map[string]*PlayerSeasonLine `json:"all"`
}

// NewSeasonAggregate returns an aggregate with all three buckets initialized.
func NewSeasonAggregate() *SeasonAggregate {
	return &SeasonAggregate{
		Regular: make(map[string]*PlayerSeasonLine),
		Playoff: make(map[string]*PlayerSeasonLine),
		All:     make(map[string]*PlayerSeasonLine),
	}
}

// Bucket returns the per-player lines for a category.
func (a *SeasonAggregate) Bucket(c Category) map[string]*PlayerSeasonLine {
	switch c {
	case CategoryRegular:
		return a.Regular
	case CategoryPlayoff:
		return a.Playoff
	case CategoryAll:
		return a.All
	}
	panic(fmt.Sprintf("unknown category %q", c))
}

// SeasonMeta maps a season key to its human-readable label. Written only when
// an explicit season label is supplied at ingestion.
type SeasonMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

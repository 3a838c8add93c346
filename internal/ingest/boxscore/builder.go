// Package boxscore turns one extracted box-score table into a canonical game
// record: title and date parsing, home/away resolution, season keying, and
// per-row stat mapping. Markup extraction lives elsewhere; this package only
// sees raw text cells.
package boxscore

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/prettygood/courtside/internal/registry"
	"github.com/prettygood/courtside/internal/stats"
	"github.com/prettygood/courtside/internal/store"
)

// exportDateFormat is the date layout EasyStats exports use, e.g. "2 Mar 2025".
const exportDateFormat = "2 Jan 2006"

// dnpSentinel marks a stat cell as unrecorded. A row that is all sentinels is
// a did-not-play: the player is registered but contributes no stats.
const dnpSentinel = "-"

var (
	titleSuffixPattern  = regexp.MustCompile(`-box-scores.*$`)
	titlePattern        = regexp.MustCompile(`^(.+?)\s+(\d+)\s+at\s+(.+?)\s+(\d+)`)
	playerLabelPattern  = regexp.MustCompile(`^#(\d+)\s+(.+)`)
	forcedSeasonPattern = regexp.MustCompile(`^(\d{4})\s*(.*)$`)
)

// Row is one extracted table row: the player label cell followed by the
// fourteen stat cells.
type Row struct {
	Label string
	Cells []string
}

// Fixed cell positions within Row.Cells. Cells 1, 3, and 5 hold the export's
// own display percentages and are ignored; percentages are always recomputed.
const (
	cellFG      = 0
	cellThreePT = 2
	cellFT      = 4
	cellOffReb  = 6
	cellDefReb  = 7
	cellFouls   = 8
	cellSteals  = 9
	cellTO      = 10
	cellBlocks  = 11
	cellAssists = 12
	cellPoints  = 13
)

// Options carries the per-ingestion flags.
type Options struct {
	IsPlayoff bool
	// ForcedSeason overrides the date-derived season, e.g. "2025 Spring".
	ForcedSeason string
	// OpponentScoreOverride replaces the parsed opponent score when the
	// export got it wrong (EasyStats only tracks one team's bench).
	OpponentScoreOverride *int
	// Now supplies the fallback date when the export's date is unparseable.
	// Defaults to time.Now.
	Now func() time.Time
}

// Result is a successfully built game plus the season metadata to persist
// when a forced season label was supplied.
type Result struct {
	Game       *store.Game
	SeasonMeta *store.SeasonMeta
}

// Builder builds canonical game records for one team, resolving player
// identity through the registry as rows are processed.
type Builder struct {
	teamVariants []string
	registry     *registry.Registry
}

// NewBuilder creates a builder. teamVariants is the case-insensitive set of
// substrings that identify our team in a game title.
func NewBuilder(teamVariants []string, reg *registry.Registry) *Builder {
	variants := make([]string, len(teamVariants))
	for i, v := range teamVariants {
		variants[i] = strings.ToLower(v)
	}
	return &Builder{teamVariants: variants, registry: reg}
}

// Build parses one box score into a game record. It fails with a ParseError
// (and mutates nothing beyond registry merges already applied) when the title
// is absent or malformed or when rows is nil; malformed individual cells
// degrade to absent instead of failing the row.
func (b *Builder) Build(title, dateText string, rows []Row, opts Options) (*Result, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ParseError{Kind: MissingTitle}
	}
	if rows == nil {
		return nil, &ParseError{Kind: MissingStatsTable}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	info, err := parseTitle(title)
	if err != nil {
		return nil, err
	}

	date := parseDate(dateText, opts.Now)
	seasonKey := date[:4]

	var seasonMeta *store.SeasonMeta
	if forced := strings.TrimSpace(opts.ForcedSeason); forced != "" {
		seasonKey, seasonMeta = resolveForcedSeason(forced, seasonKey)
	}

	isHome, opponent := b.resolveSides(info)

	ourScore, theirScore := info.awayScore, info.homeScore
	if isHome {
		ourScore, theirScore = info.homeScore, info.awayScore
	}
	if opts.OpponentScoreOverride != nil {
		theirScore = *opts.OpponentScoreOverride
	}

	// Ties resolve to a loss. The league's formats don't produce them, so
	// they are not modeled as a separate result.
	result := "L"
	if ourScore > theirScore {
		result = "W"
	}

	homeAway := "away"
	if isHome {
		homeAway = "home"
	}

	game := &store.Game{
		Date:      date,
		Season:    seasonKey,
		Opponent:  opponent,
		HomeAway:  homeAway,
		Score:     store.Score{Us: ourScore, Them: theirScore},
		Result:    result,
		IsPlayoff: opts.IsPlayoff,
		Stats:     make(map[string]*store.PlayerGameStats),
	}

	for _, row := range rows {
		number, name, ok := extractPlayerNumber(row.Label)
		if !ok {
			continue
		}
		b.registry.Merge(number, name)

		if isDNP(row.Cells) {
			continue
		}
		game.Stats[number] = buildStatLine(row.Cells)
	}

	return &Result{Game: game, SeasonMeta: seasonMeta}, nil
}

// titleInfo is the raw score line: "<away> <score> at <home> <score>".
type titleInfo struct {
	awayTeam  string
	awayScore int
	homeTeam  string
	homeScore int
}

func parseTitle(title string) (*titleInfo, error) {
	cleaned := titleSuffixPattern.ReplaceAllString(strings.TrimSpace(title), "")
	m := titlePattern.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, &ParseError{Kind: TitleFormat, Detail: fmt.Sprintf("could not parse title %q", title)}
	}
	awayScore, _ := strconv.Atoi(m[2])
	homeScore, _ := strconv.Atoi(m[4])
	return &titleInfo{
		awayTeam:  strings.TrimSpace(m[1]),
		awayScore: awayScore,
		homeTeam:  strings.TrimSpace(m[3]),
		homeScore: homeScore,
	}, nil
}

// parseDate parses the export date, falling back to the current processing
// date rather than failing the whole ingestion.
func parseDate(dateText string, now func() time.Time) string {
	t, err := time.Parse(exportDateFormat, strings.TrimSpace(dateText))
	if err != nil {
		return now().Format("2006-01-02")
	}
	return t.Format("2006-01-02")
}

// resolveForcedSeason parses "<4-digit-year><optional suffix>". The leading
// year becomes the season key and the title-cased suffix its display label;
// with no leading year the whole string (title-cased) becomes the label and
// the date-derived key is kept.
func resolveForcedSeason(forced, dateSeasonKey string) (string, *store.SeasonMeta) {
	if m := forcedSeasonPattern.FindStringSubmatch(forced); m != nil {
		key := m[1]
		display := key + " Season"
		if suffix := strings.TrimSpace(m[2]); suffix != "" {
			display = key + " " + titleCase(suffix)
		}
		return key, &store.SeasonMeta{Key: key, DisplayName: display}
	}
	return dateSeasonKey, &store.SeasonMeta{Key: dateSeasonKey, DisplayName: titleCase(forced)}
}

// resolveSides decides which side of the title is us. When neither side
// matches the variant set we assume we are the away team — a lenient
// fallback that can misattribute a game, so it is logged.
func (b *Builder) resolveSides(info *titleInfo) (isHome bool, opponent string) {
	if b.matchesTeam(info.awayTeam) {
		return false, info.homeTeam
	}
	if b.matchesTeam(info.homeTeam) {
		return true, info.awayTeam
	}
	log.Printf("⚠️  Warning: neither %q nor %q matches the configured team variants, assuming away team is us", info.awayTeam, info.homeTeam)
	return false, info.homeTeam
}

func (b *Builder) matchesTeam(teamName string) bool {
	lower := strings.ToLower(teamName)
	for _, variant := range b.teamVariants {
		if strings.Contains(lower, variant) {
			return true
		}
	}
	return false
}

func extractPlayerNumber(label string) (number, name string, ok bool) {
	m := playerLabelPattern.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func isDNP(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != dnpSentinel {
			return false
		}
	}
	return true
}

func buildStatLine(cells []string) *store.PlayerGameStats {
	cell := func(i int) string {
		if i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	line := &store.PlayerGameStats{
		FG:      parsePair(cell(cellFG)),
		ThreePT: parsePair(cell(cellThreePT)),
		FT:      parsePair(cell(cellFT)),
		OffReb:  parseCount(cell(cellOffReb)),
		DefReb:  parseCount(cell(cellDefReb)),
		Fouls:   parseCount(cell(cellFouls)),
		Steals:  parseCount(cell(cellSteals)),
		TO:      parseCount(cell(cellTO)),
		Blocks:  parseCount(cell(cellBlocks)),
		Assists: parseCount(cell(cellAssists)),
		Points:  parseCount(cell(cellPoints)),
	}
	stats.Derive(line)
	return line
}

// parsePair parses an "M-A" cell. Anything malformed degrades to absent.
func parsePair(cell string) *store.ShootingPair {
	if cell == "" || cell == dnpSentinel || !strings.Contains(cell, "-") {
		return nil
	}
	parts := strings.SplitN(cell, "-", 2)
	made, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	attempted, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return nil
	}
	return &store.ShootingPair{made, attempted}
}

// parseCount parses a plain integer cell. Anything malformed degrades to absent.
func parseCount(cell string) *int {
	if cell == "" || cell == dnpSentinel {
		return nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return nil
	}
	return &n
}

// titleCase capitalizes every letter that follows a non-letter and lowercases
// the rest, so forced season labels display as "2024 Fall" and hyphenated
// suffixes as "Mid-Season". Whitespace runs collapse to single spaces.
func titleCase(s string) string {
	runes := []rune(strings.ToLower(strings.Join(strings.Fields(s), " ")))
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) && !prevLetter {
			runes[i] = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return string(runes)
}

// Package registry maintains player identity across games: merging names as
// longer (more complete) versions show up, and the out-of-band renumbering
// operation for when the scoring app's jersey numbers are wrong.
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/prettygood/courtside/internal/store"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a player id from a name: periods stripped, trimmed,
// lowercased, interior whitespace runs replaced with single hyphens.
func Slugify(name string) string {
	s := strings.ReplaceAll(name, ".", "")
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRun.ReplaceAllString(s, "-")
}

// Registry owns the in-memory player map for one ingestion run. Load it from
// the player repository, mutate it through Merge, and save it back; the
// engine assumes a single writer.
type Registry struct {
	players  map[string]*store.Player
	teamName string
}

// New wraps an existing player map. teamName is recorded on every player a
// merge touches.
func New(players map[string]*store.Player, teamName string) *Registry {
	if players == nil {
		players = make(map[string]*store.Player)
	}
	return &Registry{players: players, teamName: teamName}
}

// Players returns the underlying map.
func (r *Registry) Players() map[string]*store.Player { return r.players }

// Merge records a sighting of a jersey number. First sighting creates the
// player; afterwards the stored name is only replaced by a strictly longer
// incoming one (in characters, not bytes), with the id recomputed to match.
// Position is never touched here. The registry's team name is always ensured
// present on the player.
func (r *Registry) Merge(number, name string) *store.Player {
	id := Slugify(name)

	p, ok := r.players[number]
	if !ok {
		p = &store.Player{
			ID:          id,
			DisplayName: name,
			Name:        name,
			Number:      number,
			Position:    "",
			Teams:       []string{},
			Images: map[string]string{
				"portrait": fmt.Sprintf("Assets/players/%s.png", id),
			},
		}
		r.players[number] = p
	} else if utf8.RuneCountInString(name) > utf8.RuneCountInString(p.Name) {
		p.Name = name
		p.DisplayName = name
		p.ID = id
	}

	r.ensureTeam(p)
	return p
}

func (r *Registry) ensureTeam(p *store.Player) {
	for _, t := range p.Teams {
		if t == r.teamName {
			return
		}
	}
	p.Teams = append(p.Teams, r.teamName)
}

// Remap rewrites the registry's jersey-number keys through the mapping.
// Numbers absent from the mapping keep their key. The caller owns corpus
// consistency: game stats must be rewritten with the same mapping, and a
// backup taken first — this is not reversible from here.
func Remap(players map[string]*store.Player, mapping map[string]string) map[string]*store.Player {
	remapped := make(map[string]*store.Player, len(players))
	for oldNum, p := range players {
		newNum := oldNum
		if mapped, ok := mapping[oldNum]; ok {
			newNum = mapped
		}
		p.Number = newNum
		remapped[newNum] = p
	}
	return remapped
}

// RemapGame rewrites a game's stats keys through the mapping, in place.
func RemapGame(game *store.Game, mapping map[string]string) {
	remapped := make(map[string]*store.PlayerGameStats, len(game.Stats))
	for oldNum, line := range game.Stats {
		newNum := oldNum
		if mapped, ok := mapping[oldNum]; ok {
			newNum = mapped
		}
		remapped[newNum] = line
	}
	game.Stats = remapped
}

// ImportLegacy merges a legacy roster export (a JSON array of players) into
// the registry map. Existing players take the legacy identity fields and the
// union of both team lists; the legacy images value wins even when it is
// absent. Unknown numbers are added as-is.
func ImportLegacy(players map[string]*store.Player, legacy []*store.Player) {
	for _, old := range legacy {
		number := old.Number
		p, ok := players[number]
		if !ok {
			players[number] = old
			continue
		}
		p.ID = old.ID
		p.DisplayName = old.DisplayName
		p.Name = old.Name
		p.Position = old.Position
		p.Images = old.Images
		p.Teams = unionTeams(p.Teams, old.Teams)
	}
}

func unionTeams(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for _, t := range append(append([]string{}, a...), b...) {
		seen[t] = true
	}
	merged := make([]string, 0, len(seen))
	for t := range seen {
		merged = append(merged, t)
	}
	sort.Strings(merged)
	return merged
}

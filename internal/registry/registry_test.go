package registry

import (
	"reflect"
	"testing"

	"github.com/prettygood/courtside/internal/store"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"initial and surname", "J. Smith", "j-smith"},
		{"full name", "Jordan Smith", "jordan-smith"},
		{"extra whitespace", "  Bob   Jones ", "bob-jones"},
		{"multiple periods", "J.R. Smith", "jr-smith"},
		{"single word", "Smith", "smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMergeCreatesPlayer(t *testing.T) {
	reg := New(nil, "Pretty Good")

	p := reg.Merge("7", "J. Smith")

	if p.ID != "j-smith" {
		t.Errorf("ID = %q, want %q", p.ID, "j-smith")
	}
	if p.Name != "J. Smith" || p.DisplayName != "J. Smith" {
		t.Errorf("Name/DisplayName = %q/%q, want both %q", p.Name, p.DisplayName, "J. Smith")
	}
	if p.Number != "7" {
		t.Errorf("Number = %q, want %q", p.Number, "7")
	}
	if p.Position != "" {
		t.Errorf("Position = %q, want empty", p.Position)
	}
	if !reflect.DeepEqual(p.Teams, []string{"Pretty Good"}) {
		t.Errorf("Teams = %v, want [Pretty Good]", p.Teams)
	}
	if got := p.Images["portrait"]; got != "Assets/players/j-smith.png" {
		t.Errorf("portrait = %q, want Assets/players/j-smith.png", got)
	}
}

func TestMergeNamePolicy(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		wantName string
		wantID   string
	}{
		{"longer name replaces", "J. Smith", "Jordan Smith", "Jordan Smith", "jordan-smith"},
		{"shorter name ignored", "Jordan Smith", "J. Smith", "Jordan Smith", "jordan-smith"},
		{"equal length ignored", "Jordan Smith", "Jordon Smith", "Jordan Smith", "jordan-smith"},
		// "José Núñez" is 10 characters but 13 bytes; "Joseph Nune" is 11 of
		// each. Length must be compared in characters for this to replace.
		{"longer in characters replaces", "José Núñez", "Joseph Nune", "Joseph Nune", "joseph-nune"},
		{"shorter in characters ignored", "Joseph Nunez", "José Núñez", "Joseph Nunez", "joseph-nunez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New(nil, "Pretty Good")
			reg.Merge("7", tt.first)
			p := reg.Merge("7", tt.second)

			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
			if p.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", p.DisplayName, tt.wantName)
			}
			if p.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", p.ID, tt.wantID)
			}
		})
	}
}

func TestMergeNeverTouchesPosition(t *testing.T) {
	players := map[string]*store.Player{
		"7": {Number: "7", Name: "J. Smith", Position: "PG", Teams: []string{"Pretty Good"}},
	}
	reg := New(players, "Pretty Good")

	p := reg.Merge("7", "Jordan Smith")

	if p.Position != "PG" {
		t.Errorf("Position = %q, want PG", p.Position)
	}
}

func TestMergeTeamAddIsIdempotent(t *testing.T) {
	reg := New(nil, "Pretty Good")
	reg.Merge("7", "J. Smith")
	reg.Merge("7", "J. Smith")
	p := reg.Merge("7", "J. Smith")

	if !reflect.DeepEqual(p.Teams, []string{"Pretty Good"}) {
		t.Errorf("Teams = %v, want exactly one entry", p.Teams)
	}
}

func TestMergeAddsSecondTeam(t *testing.T) {
	players := map[string]*store.Player{
		"7": {Number: "7", Name: "J. Smith", Teams: []string{"Old Squad"}},
	}
	reg := New(players, "Pretty Good")

	p := reg.Merge("7", "J. Smith")

	if !reflect.DeepEqual(p.Teams, []string{"Old Squad", "Pretty Good"}) {
		t.Errorf("Teams = %v, want [Old Squad Pretty Good]", p.Teams)
	}
}

func TestRemap(t *testing.T) {
	players := map[string]*store.Player{
		"1":  {Number: "1", Name: "Rhys Ogle"},
		"11": {Number: "11", Name: "Josh Todd"},
		"28": {Number: "28", Name: "Sam Hill"},
	}

	remapped := Remap(players, map[string]string{"1": "14", "11": "24"})

	if len(remapped) != 3 {
		t.Fatalf("len = %d, want 3", len(remapped))
	}
	if p, ok := remapped["14"]; !ok || p.Name != "Rhys Ogle" || p.Number != "14" {
		t.Errorf("remapped[14] = %+v, want Rhys Ogle #14", p)
	}
	if p, ok := remapped["24"]; !ok || p.Number != "24" {
		t.Errorf("remapped[24] = %+v, want Josh Todd #24", p)
	}
	if p, ok := remapped["28"]; !ok || p.Number != "28" {
		t.Errorf("remapped[28] = %+v, want unchanged Sam Hill", p)
	}
	if _, ok := remapped["1"]; ok {
		t.Error("old number 1 still present after remap")
	}
}

func TestRemapGame(t *testing.T) {
	game := &store.Game{
		Stats: map[string]*store.PlayerGameStats{
			"1":  {Rebounds: 5},
			"28": {Rebounds: 2},
		},
	}

	RemapGame(game, map[string]string{"1": "14"})

	if _, ok := game.Stats["1"]; ok {
		t.Error("old number 1 still present in game stats")
	}
	if line, ok := game.Stats["14"]; !ok || line.Rebounds != 5 {
		t.Errorf("Stats[14] = %+v, want rebounds 5", line)
	}
	if line, ok := game.Stats["28"]; !ok || line.Rebounds != 2 {
		t.Errorf("Stats[28] = %+v, want unchanged", line)
	}
}

func TestImportLegacy(t *testing.T) {
	players := map[string]*store.Player{
		"7": {Number: "7", Name: "J. Smith", Teams: []string{"Pretty Good"},
			Images: map[string]string{"portrait": "Assets/players/j-smith.png"}},
	}
	legacy := []*store.Player{
		{Number: "7", ID: "jordan-smith", Name: "Jordan Smith", DisplayName: "Jordan Smith",
			Position: "PG", Teams: []string{"Old Squad"}},
		{Number: "23", ID: "m-lee", Name: "M. Lee", DisplayName: "M. Lee"},
	}

	ImportLegacy(players, legacy)

	p := players["7"]
	if p.Name != "Jordan Smith" || p.ID != "jordan-smith" || p.Position != "PG" {
		t.Errorf("players[7] = %+v, want legacy identity applied", p)
	}
	if p.Images != nil {
		t.Errorf("Images = %v, want the legacy value (absent) to win", p.Images)
	}
	if !reflect.DeepEqual(p.Teams, []string{"Old Squad", "Pretty Good"}) {
		t.Errorf("Teams = %v, want union of both lists", p.Teams)
	}
	if _, ok := players["23"]; !ok {
		t.Error("new legacy player 23 not added")
	}
}

package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/prettygood/courtside/internal/ingest/boxscore"
	"github.com/prettygood/courtside/internal/ingest/easystats"
	"github.com/prettygood/courtside/internal/service"
	"github.com/prettygood/courtside/internal/store"
	"github.com/prettygood/courtside/internal/store/repository"
)

var teamVariants = []string{"pretty good", "pretty-good", "prettygood"}

func newTestPipeline(t *testing.T) (*service.Pipeline, store.Store) {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return service.NewPipeline(fs, "Pretty Good", teamVariants), fs
}

func sampleExport() *easystats.Export {
	dnp := make([]string, 14)
	for i := range dnp {
		dnp[i] = "-"
	}
	return &easystats.Export{
		Title:    "Rivals 40 at Pretty Good 52",
		DateText: "1 Mar 2025",
		Rows: []boxscore.Row{
			{Label: "#7 J. Smith", Cells: []string{"4-10", "40.0", "2-5", "40.0", "3-4", "75.0", "1", "2", "3", "0", "1", "0", "4", "13"}},
			{Label: "#9 A. Okafor", Cells: []string{"3-6", "50.0", "0-1", "0.0", "2-2", "100.0", "0", "5", "2", "1", "0", "1", "2", "8"}},
			{Label: "#12 B. Carter", Cells: dnp},
		},
	}
}

func TestIngestEndToEnd(t *testing.T) {
	pipeline, st := newTestPipeline(t)
	ctx := context.Background()

	result, err := pipeline.Ingest(ctx, sampleExport(), boxscore.Options{})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if result.GameKey != "games/2025-03-01-rivals" {
		t.Errorf("GameKey = %q", result.GameKey)
	}
	if result.Game.Result != "W" || result.Game.Score.Us != 52 {
		t.Errorf("game = %+v", result.Game)
	}

	games := repository.NewGameRepository(st)
	game, err := games.Get(ctx, result.GameKey)
	if err != nil {
		t.Fatalf("stored game: %v", err)
	}
	if _, ok := game.Stats["7"]; !ok {
		t.Error("stored game missing player 7 stats")
	}
	if _, ok := game.Stats["12"]; ok {
		t.Error("DNP player has stats in stored game")
	}

	index, err := games.LoadIndex(ctx)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if _, ok := index["2025-03-01-rivals"]; !ok {
		t.Errorf("index = %v, want entry for ingested game", index)
	}

	players, err := repository.NewPlayerRepository(st).Load(ctx)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	for _, number := range []string{"7", "9", "12"} {
		if _, ok := players[number]; !ok {
			t.Errorf("registry missing player %s", number)
		}
	}

	book, err := repository.NewRecordsRepository(st).Load(ctx)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	entry := book.Regular["most_pts"]
	if entry.Value != 13 {
		t.Errorf("most_pts = %d, want 13", entry.Value)
	}
	if entry.Player == nil || *entry.Player != "J. Smith" {
		t.Errorf("most_pts holder = %v, want J. Smith", entry.Player)
	}

	agg, err := repository.NewSeasonRepository(st).GetAggregate(ctx, "2025")
	if err != nil {
		t.Fatalf("season aggregate: %v", err)
	}
	line, ok := agg.Regular["7"]
	if !ok {
		t.Fatal("season aggregate missing player 7")
	}
	if line.GamesPlayed != 1 || line.PPG != 13.0 {
		t.Errorf("line gp/ppg = %d/%v, want 1/13.0", line.GamesPlayed, line.PPG)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	pipeline, st := newTestPipeline(t)
	ctx := context.Background()

	if _, err := pipeline.Ingest(ctx, sampleExport(), boxscore.Options{}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	recordsBefore, _, _ := st.Load(ctx, store.KeyRecords)
	seasonBefore, _, _ := st.Load(ctx, store.KeySeasonPrefix+"2025")

	if _, err := pipeline.Ingest(ctx, sampleExport(), boxscore.Options{}); err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	recordsAfter, _, _ := st.Load(ctx, store.KeyRecords)
	seasonAfter, _, _ := st.Load(ctx, store.KeySeasonPrefix+"2025")

	if !bytes.Equal(recordsBefore, recordsAfter) {
		t.Error("records blob changed after re-ingesting the same game")
	}
	if !bytes.Equal(seasonBefore, seasonAfter) {
		t.Error("season blob changed after re-ingesting the same game")
	}
}

func TestIngestFailureLeavesNothingBehind(t *testing.T) {
	pipeline, st := newTestPipeline(t)
	ctx := context.Background()

	export := sampleExport()
	export.Title = "Season Highlights Reel"

	_, err := pipeline.Ingest(ctx, export, boxscore.Options{})
	if !boxscore.IsParseError(err, boxscore.TitleFormat) {
		t.Fatalf("err = %v, want TitleFormat", err)
	}

	keys, listErr := st.List(ctx, "")
	if listErr != nil {
		t.Fatalf("List: %v", listErr)
	}
	if len(keys) != 0 {
		t.Errorf("store keys after failed ingest = %v, want none", keys)
	}
}

func TestIngestForcedSeason(t *testing.T) {
	pipeline, st := newTestPipeline(t)
	ctx := context.Background()

	result, err := pipeline.Ingest(ctx, sampleExport(), boxscore.Options{ForcedSeason: "2024 fall"})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.Game.Season != "2024" {
		t.Errorf("Season = %q, want 2024", result.Game.Season)
	}

	seasons := repository.NewSeasonRepository(st)
	meta, err := seasons.LoadMeta(ctx)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if got := meta["2024"].DisplayName; got != "2024 Fall" {
		t.Errorf("display name = %q, want 2024 Fall", got)
	}

	if _, err := seasons.GetAggregate(ctx, "2024"); err != nil {
		t.Errorf("aggregate for forced season: %v", err)
	}
}

func TestRenumberRewritesCorpus(t *testing.T) {
	pipeline, st := newTestPipeline(t)
	ctx := context.Background()

	if _, err := pipeline.Ingest(ctx, sampleExport(), boxscore.Options{}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := pipeline.Renumber(ctx, map[string]string{"7": "23"}); err != nil {
		t.Fatalf("Renumber: %v", err)
	}

	players, err := repository.NewPlayerRepository(st).Load(ctx)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if _, ok := players["7"]; ok {
		t.Error("old number 7 still in registry")
	}
	if p, ok := players["23"]; !ok || p.Number != "23" {
		t.Errorf("players[23] = %+v, want renumbered J. Smith", p)
	}

	game, err := repository.NewGameRepository(st).Get(ctx, "games/2025-03-01-rivals")
	if err != nil {
		t.Fatalf("game: %v", err)
	}
	if _, ok := game.Stats["7"]; ok {
		t.Error("old number 7 still in game stats")
	}
	if _, ok := game.Stats["23"]; !ok {
		t.Error("game stats missing renumbered 23")
	}

	book, err := repository.NewRecordsRepository(st).Load(ctx)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	entry := book.Regular["most_pts"]
	if entry.PlayerNumber == nil || *entry.PlayerNumber != "23" {
		t.Errorf("most_pts holder number = %v, want 23", entry.PlayerNumber)
	}
}

func TestImportPlayersMergesRoster(t *testing.T) {
	pipeline, st := newTestPipeline(t)
	ctx := context.Background()

	if _, err := pipeline.Ingest(ctx, sampleExport(), boxscore.Options{}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	legacy := []*store.Player{
		{Number: "7", ID: "jordan-smith", Name: "Jordan Smith", DisplayName: "Jordan Smith", Position: "PG", Teams: []string{"Old Squad"}},
	}
	if err := pipeline.ImportPlayers(ctx, legacy); err != nil {
		t.Fatalf("ImportPlayers: %v", err)
	}

	players, err := repository.NewPlayerRepository(st).Load(ctx)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	p := players["7"]
	if p.Name != "Jordan Smith" || p.Position != "PG" {
		t.Errorf("players[7] = %+v, want legacy identity applied", p)
	}
	if len(p.Teams) != 2 {
		t.Errorf("Teams = %v, want both teams", p.Teams)
	}
}

// Sanity check that the persisted game blob round-trips through JSON with the
// wire field names the frontend expects.
func TestPersistedGameShape(t *testing.T) {
	pipeline, st := newTestPipeline(t)
	ctx := context.Background()

	if _, err := pipeline.Ingest(ctx, sampleExport(), boxscore.Options{}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	blob, ok, err := st.Load(ctx, "games/2025-03-01-rivals")
	if err != nil || !ok {
		t.Fatalf("game blob: ok=%v err=%v", ok, err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(blob, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, field := range []string{"date", "season", "opponent", "homeAway", "score", "result", "isPlayoff", "stats"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("game blob missing field %q", field)
		}
	}

	statsMap := raw["stats"].(map[string]interface{})
	line := statsMap["7"].(map[string]interface{})
	for _, field := range []string{"fg", "3pt", "ft", "2pt", "fg_pct", "2pt_pct", "reb", "pts"} {
		if _, ok := line[field]; !ok {
			t.Errorf("stat line missing field %q", field)
		}
	}
}

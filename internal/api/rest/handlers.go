package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/prettygood/courtside/internal/store"
	"github.com/prettygood/courtside/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	players *repository.PlayerRepository
	games   *repository.GameRepository
	records *repository.RecordsRepository
	seasons *repository.SeasonRepository
}

// NewHandler creates a new handler over the blob store.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		players: repository.NewPlayerRepository(st),
		games:   repository.NewGameRepository(st),
		records: repository.NewRecordsRepository(st),
		seasons: repository.NewSeasonRepository(st),
	}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "courtside",
	})
}

// GetPlayers returns the full player registry.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch players", err)
		return
	}
	respondJSON(w, http.StatusOK, players)
}

// GetPlayer returns one player by jersey number.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	players, err := h.players.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch players", err)
		return
	}
	player, ok := players[number]
	if !ok {
		respondError(w, http.StatusNotFound, "Player not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// GetGamesIndex returns the denormalized games index.
func (h *Handler) GetGamesIndex(w http.ResponseWriter, r *http.Request) {
	index, err := h.games.LoadIndex(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games index", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": index,
		"count": len(index),
	})
}

// GetGame returns one full game record by its id ("<date>-<opponent-slug>").
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	game, err := h.games.Get(r.Context(), store.KeyGamePrefix+gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}
	respondJSON(w, http.StatusOK, game)
}

// GetRecords returns the record book.
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	book, err := h.records.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records", err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// GetSeasons returns the known season keys and their display metadata.
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	keys, err := h.seasons.ListKeys(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list seasons", err)
		return
	}
	meta, err := h.seasons.LoadMeta(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch seasons meta", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"seasons": keys,
		"meta":    meta,
	})
}

// GetSeasonAggregate returns one season's per-player aggregates.
func (h *Handler) GetSeasonAggregate(w http.ResponseWriter, r *http.Request) {
	seasonKey := mux.Vars(r)["seasonKey"]

	agg, err := h.seasons.GetAggregate(r.Context(), seasonKey)
	if err != nil {
		respondError(w, http.StatusNotFound, "Season not found", err)
		return
	}
	respondJSON(w, http.StatusOK, agg)
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}

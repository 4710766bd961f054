package favorites

import (
	"encoding/json"
	"net/http"

	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/models/api"
	"github.com/matchday-lens/core/pkg/prefs"
)

type Handler struct {
	store  prefs.Store
	logger *logger.Logger
}

func NewHandler(store prefs.Store, logger *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

type favoriteRequest struct {
	Kind        string `json:"kind"`
	IdentityKey string `json:"identity_key"`
}

// Handle routes /api/favorites by method: GET lists, POST adds, DELETE removes.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.URL.Query().Get("kind"))
	if !ok {
		http.Error(w, "kind must be team or league", http.StatusBadRequest)
		return
	}

	keys, err := h.store.Favorites(r.Context(), kind)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list favorites")
		http.Error(w, "Failed to list favorites", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Response{
		Success: true,
		Data:    keys,
		Meta: map[string]interface{}{
			"total": len(keys),
		},
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode favorites response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	kind, key, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	if err := h.store.AddFavorite(r.Context(), kind, key); err != nil {
		h.logger.Error().Err(err).Msg("Failed to add favorite")
		http.Error(w, "Failed to add favorite", http.StatusInternalServerError)
		return
	}
	h.writeOK(w, "favorite added")
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	kind, key, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	if err := h.store.RemoveFavorite(r.Context(), kind, key); err != nil {
		h.logger.Error().Err(err).Msg("Failed to remove favorite")
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}
	h.writeOK(w, "favorite removed")
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (prefs.FavoriteKind, string, bool) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return "", "", false
	}
	kind, ok := parseKind(req.Kind)
	if !ok || req.IdentityKey == "" {
		http.Error(w, "kind and identity_key are required", http.StatusBadRequest)
		return "", "", false
	}
	return kind, req.IdentityKey, true
}

func (h *Handler) writeOK(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Response{
		Success: true,
		Message: message,
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode favorites response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func parseKind(raw string) (prefs.FavoriteKind, bool) {
	switch raw {
	case "team":
		return prefs.FavoriteTeam, true
	case "league":
		return prefs.FavoriteLeague, true
	default:
		return "", false
	}
}

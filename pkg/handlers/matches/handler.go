package matches

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/models/api"
	"github.com/matchday-lens/core/pkg/provider"
	"github.com/matchday-lens/core/pkg/services"
)

type Handler struct {
	views  *services.ViewService
	logger *logger.Logger
}

func NewHandler(views *services.ViewService, logger *logger.Logger) *Handler {
	return &Handler{
		views:  views,
		logger: logger,
	}
}

// Detail handles GET /api/matches/{id}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	matchID := strings.TrimPrefix(r.URL.Path, "/api/matches/")
	if matchID == "" || strings.Contains(matchID, "/") {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	view := h.views.MatchView(ctx, matchID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Response{
		Success: true,
		Data:    view,
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode match response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// HeadToHead handles GET /api/matches/h2h?home={id}&away={id}&team={name}
func (h *Handler) HeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	homeID := query.Get("home")
	awayID := query.Get("away")
	team := query.Get("team")
	if homeID == "" || awayID == "" {
		http.Error(w, "home and away team IDs are required", http.StatusBadRequest)
		return
	}

	summary, err := h.views.HeadToHead(ctx, homeID, awayID, team)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch head-to-head")
		writeProviderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Response{
		Success: true,
		Data:    summary,
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode head-to-head response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeProviderError maps a gateway failure onto a 502 with the section
// message in the envelope.
func writeProviderError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	message := "Upstream provider unavailable"
	if _, ok := err.(*provider.NetworkError); ok {
		message = err.Error()
	}
	_ = json.NewEncoder(w).Encode(api.Response{
		Success: false,
		Message: message,
	})
}

package standings

import (
	"encoding/json"
	"net/http"

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

// Table handles GET /api/standings?league={id}&season={season}
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	leagueID := query.Get("league")
	if leagueID == "" {
		http.Error(w, "league id is required", http.StatusBadRequest)
		return
	}

	rows, err := h.views.Standings(ctx, leagueID, query.Get("season"))
	if err != nil {
		h.logger.Error().Err(err).Str("league", leagueID).Msg("Failed to fetch standings")
		writeProviderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Response{
		Success: true,
		Data:    rows,
		Meta: map[string]interface{}{
			"rows": len(rows),
		},
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode standings response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

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

package leagues

import (
	"encoding/json"
	"net/http"

	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/models/api"
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

// Detail handles GET /api/leagues?id={id}&name={name}&country={country}&season={season}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	leagueID := query.Get("id")
	name := query.Get("name")
	if leagueID == "" && name == "" {
		http.Error(w, "league id or name is required", http.StatusBadRequest)
		return
	}

	view := h.views.LeagueView(ctx, leagueID, name, query.Get("country"), query.Get("season"))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Response{
		Success: true,
		Data:    view,
		Meta: map[string]interface{}{
			"rows":    len(view.Standings),
			"seasons": len(view.Seasons),
		},
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode league response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

package fixtures

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/models"
	"github.com/matchday-lens/core/pkg/models/api"
	"github.com/matchday-lens/core/pkg/provider"
	"github.com/matchday-lens/core/pkg/services"
)

const defaultWindowDays = 7

// fixtureItem annotates a fixture with a kickoff rendered in the caller's
// requested timezone.
type fixtureItem struct {
	models.CanonicalFixture
	KickoffLocal string `json:"kickoff_local,omitempty"`
}

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

// Window handles GET /api/fixtures?league={id}&from={date}&to={date}
func (h *Handler) Window(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	leagueID := query.Get("league")
	from, to, err := parseWindow(query.Get("from"), query.Get("to"))
	if err != nil {
		http.Error(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	loc := time.UTC
	if tz := query.Get("tz"); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			http.Error(w, "Unknown timezone", http.StatusBadRequest)
			return
		}
	}

	fixtures, err := h.views.FixturesWindow(ctx, leagueID, from, to)
	if err != nil {
		h.logger.Error().Err(err).Str("league", leagueID).Msg("Failed to fetch fixtures")
		writeProviderError(w, err)
		return
	}

	items := make([]fixtureItem, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureItem{
			CanonicalFixture: f,
			KickoffLocal:     services.FormatKickoffLocal(f, loc),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Response{
		Success: true,
		Data:    items,
		Meta: map[string]interface{}{
			"total": len(fixtures),
			"from":  from.Format("2006-01-02"),
			"to":    to.Format("2006-01-02"),
		},
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode fixtures response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func parseWindow(fromRaw, toRaw string) (time.Time, time.Time, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	from, to := now, now.AddDate(0, 0, defaultWindowDays)

	var err error
	if fromRaw != "" {
		if from, err = time.ParseInLocation("2006-01-02", fromRaw, time.UTC); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toRaw != "" {
		if to, err = time.ParseInLocation("2006-01-02", toRaw, time.UTC); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
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

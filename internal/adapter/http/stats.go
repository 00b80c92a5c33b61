package httpadapter

import (
	"log/slog"
	"net/http"

	"viewpulse/internal/core/port"
)

// statsResponse is the JSON shape of the stats overview endpoint.
type statsResponse struct {
	Pending        int64 `json:"pending"`
	Active         int64 `json:"active"`
	Completed      int64 `json:"completed"`
	Cancelled      int64 `json:"cancelled"`
	ViewsDelivered int64 `json:"views_delivered"`
}

// handleStatsOverview returns aggregated campaign counts per lifecycle
// state and the total views delivered. It accepts an optional `user_id`
// query parameter to scope the aggregation to one owner. Internal errors
// produce HTTP 500.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	var req port.StatsReq
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		req.UserID = &userID
	}

	stats, err := h.svc.GetStats(r.Context(), req)
	if err != nil {
		h.logger.Error("stats error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, statsResponse{
		Pending:        stats.Pending,
		Active:         stats.Active,
		Completed:      stats.Completed,
		Cancelled:      stats.Cancelled,
		ViewsDelivered: stats.ViewsDelivered,
	})
}

package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"viewpulse/internal/core/domain"
	"viewpulse/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// createCampaignRequest is the JSON body accepted by the create endpoint.
type createCampaignRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	VideoURL    string `json:"video_url"`
	Budget      int64  `json:"budget"`
	TargetViews int64  `json:"target_views"`
}

// campaignResponse is the JSON representation of a campaign returned by
// every campaign endpoint.
type campaignResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	VideoURL         string     `json:"video_url"`
	Status           string     `json:"status"`
	Budget           int64      `json:"budget"`
	TargetViews      int64      `json:"target_views"`
	StartingViews    int64      `json:"starting_views"`
	CurrentViews     int64      `json:"current_views"`
	ViewsGained      int64      `json:"views_gained"`
	TrackingDegraded bool       `json:"tracking_degraded"`
	LastViewUpdate   *time.Time `json:"last_view_update,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		Title:            c.Title,
		VideoURL:         c.VideoURL,
		Status:           string(c.Status),
		Budget:           c.Budget,
		TargetViews:      c.TargetViews,
		StartingViews:    c.StartingViews,
		CurrentViews:     c.CurrentViews,
		ViewsGained:      c.ViewsGained(),
		TrackingDegraded: c.TrackingDegraded,
		LastViewUpdate:   c.LastViewUpdate,
		CreatedAt:        c.CreatedAt,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; log and send generic error
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleCreateCampaign registers a new campaign in the pending state. The
// request body must contain a supported YouTube URL and a positive view
// target; violations produce HTTP 400. Internal errors result in HTTP 500.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), port.CreateCampaignReq{
		UserID:      req.UserID,
		Title:       req.Title,
		VideoURL:    req.VideoURL,
		Budget:      req.Budget,
		TargetViews: req.TargetViews,
	})
	if errors.Is(err, port.ErrInvalidVideoURL) {
		http.Error(w, "unsupported video url", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("create campaign error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(c))
}

// handleListCampaigns returns all campaigns for the user given by the
// `user_id` query parameter. A missing parameter results in HTTP 400.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}
	campaigns, err := h.svc.ListCampaigns(r.Context(), userID)
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	resp := make([]campaignResponse, 0, len(campaigns))
	for i := range campaigns {
		resp = append(resp, toCampaignResponse(&campaigns[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleGetCampaign returns a single campaign. It expects an {id} path
// parameter bound by the router; unknown ids result in HTTP 404.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("get campaign error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

// handleActivateCampaign moves a pending campaign to active and captures
// its view baseline. Unknown ids result in HTTP 404; a campaign that is
// not pending results in HTTP 409.
func (h *Handler) handleActivateCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.ActivateCampaign(r.Context(), id)
	switch {
	case errors.Is(err, port.ErrCampaignNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, port.ErrNotActivatable):
		http.Error(w, "campaign cannot be activated", http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("activate campaign error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"viewpulse/internal/config/configs"
	"viewpulse/internal/core/domain"
	"viewpulse/internal/core/port"
)

// LogNotifier writes completion notifications to the structured log. It is
// the default sink when no webhook is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) CampaignCompleted(_ context.Context, c *domain.Campaign) error {
	n.logger.Info("campaign completed",
		slog.String("campaign_id", c.ID),
		slog.String("title", c.Title),
		slog.Int64("views_gained", c.ViewsGained()),
		slog.Int64("target_views", c.TargetViews))
	return nil
}

// WebhookNotifier posts a JSON payload per completed campaign to a
// configured endpoint. Delivery is best effort; callers log failures and
// move on.
type WebhookNotifier struct {
	cfg  configs.Notify
	http *http.Client
}

func NewWebhookNotifier(cfg configs.Notify) *WebhookNotifier {
	return &WebhookNotifier{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type completionPayload struct {
	CampaignID  string `json:"campaign_id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ViewsGained int64  `json:"views_gained"`
	TargetViews int64  `json:"target_views"`
}

func (n *WebhookNotifier) CampaignCompleted(ctx context.Context, c *domain.Campaign) error {
	payload := completionPayload{
		CampaignID:  c.ID,
		UserID:      c.UserID,
		Title:       "Campaign Completed!",
		Description: fmt.Sprintf("%q has reached its target views!", c.Title),
		ViewsGained: c.ViewsGained(),
		TargetViews: c.TargetViews,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// FromConfig picks the webhook notifier when a URL is configured and falls
// back to the log notifier otherwise.
func FromConfig(cfg configs.Notify, logger *slog.Logger) port.Notifier {
	if cfg.WebhookURL != "" {
		return NewWebhookNotifier(cfg)
	}
	return NewLogNotifier(logger)
}

package deliver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sago-ai/sago/internal/model"
)

// SlackDeliverer posts a report summary to a Slack incoming webhook
type SlackDeliverer struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackDeliverer creates a Slack webhook deliverer
func NewSlackDeliverer(webhookURL string) *SlackDeliverer {
	return &SlackDeliverer{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type slackMessage struct {
	Text string `json:"text"`
}

// Deliver posts the report summary to the webhook
func (s *SlackDeliverer) Deliver(ctx context.Context, report *model.Report) (*Receipt, error) {
	counts := report.CountByStatus()
	text := fmt.Sprintf(
		"*Pitch Deck Analysis: %s*\nScore: %.0f%% | Claims: %d (%d contradicted, %d unverifiable) | Questions: %d\n%s",
		report.CompanyName, report.OverallScore*100, len(report.Claims),
		counts[model.StatusContradicted], counts[model.StatusUnverifiable],
		len(report.Questions), report.ExecutiveSummary)

	payload, err := json.Marshal(slackMessage{Text: text})
	if err != nil {
		return nil, &DeliveryError{Channel: "slack", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &DeliveryError{Channel: "slack", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &DeliveryError{Channel: "slack", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &DeliveryError{Channel: "slack", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	return &Receipt{
		ID:      uuid.NewString(),
		Channel: "slack",
		Target:  "webhook",
		SentAt:  time.Now().UTC(),
	}, nil
}

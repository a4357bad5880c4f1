package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/daybot/core/internal/infrastructure/config"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

// New builds the notifier selected by configuration.
func New(cfg config.NotifierConfig, appLogger *logger.Logger) (ports.Notifier, error) {
	switch cfg.Kind {
	case "", "log":
		return &LogNotifier{logger: appLogger.WithComponent("notifier")}, nil
	case "webhook":
		return &WebhookNotifier{
			url:    cfg.WebhookURL,
			client: &http.Client{Timeout: cfg.Timeout},
			logger: appLogger.WithComponent("notifier"),
		}, nil
	}
	return nil, fmt.Errorf("unknown notifier kind %q", cfg.Kind)
}

// LogNotifier writes digests to the application log. Useful in
// development and as the fallback when no chat bridge is configured.
type LogNotifier struct {
	logger *logger.Logger
}

// Send logs the message.
func (n *LogNotifier) Send(_ context.Context, text string) error {
	n.logger.Infow("Notification", "text", text)
	return nil
}

// WebhookNotifier posts digests to the chat bridge as a small JSON
// payload. Retry and backoff belong to the bridge, not here.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *logger.Logger
}

type webhookPayload struct {
	Text string `json:"text"`
}

// Send posts the message to the configured URL.
func (n *WebhookNotifier) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(webhookPayload{Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}

	n.logger.Debugw("Notification delivered", "status", resp.StatusCode)
	return nil
}

// Package notify delivers new-post alerts to a Discord webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// StatusError is returned when the webhook endpoint answers with a
// non-2xx status. The post is not considered delivered.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned HTTP %d", e.Code)
}

type Notifier struct {
	client     *http.Client
	webhookURL string
}

func New(webhookURL string) *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: requestTimeout},
		webhookURL: webhookURL,
	}
}

type payload struct {
	Content string `json:"content"`
}

// Send posts a single message to the webhook. A nil return means the
// message was accepted; any error means the post must be retried on a
// later run.
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(payload{Content: msg.Render()})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	return nil
}

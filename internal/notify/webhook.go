package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/webmcpsetup/internal/leads"
)

// WebhookRelay forwards accepted leads to a third-party automation webhook.
type WebhookRelay struct {
	url    string
	client *http.Client
}

// NewWebhookRelay returns nil when url is blank so callers can skip the relay.
func NewWebhookRelay(url string, timeout time.Duration) *WebhookRelay {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookRelay{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the HTTP client, for tests.
func (w *WebhookRelay) WithHTTPClient(client *http.Client) *WebhookRelay {
	if client != nil {
		w.client = client
	}
	return w
}

func (w *WebhookRelay) Name() string { return "webhook" }

// Notify POSTs the full record once. Any transport error or non-2xx status is returned.
func (w *WebhookRelay) Notify(ctx context.Context, rec *leads.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("notify: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: webhook post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify: webhook error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stitch/backend/internal/model"
)

// WebhookBackend POSTs the forwarded field mapping as JSON to a configured
// URL. Single attempt, 30 second timeout, non-2xx is a failure.
type WebhookBackend struct {
	url        string
	httpClient *http.Client
}

// NewWebhookBackend creates the webhook delivery backend. url may be empty
// when the destination is not configured; delivery then fails fast.
func NewWebhookBackend(url string) *WebhookBackend {
	return &WebhookBackend{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Backend = (*WebhookBackend)(nil)

func (b *WebhookBackend) Name() string { return "webhook" }

func (b *WebhookBackend) Deliver(ctx context.Context, sub *model.Submission) error {
	if b.url == "" {
		return model.NewError(model.KindConfigurationMissing, "webhook url not configured")
	}

	jsonBody, err := json.Marshal(sub.Fields)
	if err != nil {
		return model.WrapError(model.KindInternal, "webhook body encoding failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(jsonBody))
	if err != nil {
		return model.WrapError(model.KindInternal, "webhook request build failed", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return model.WrapError(model.KindTransport, "webhook request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.NewError(model.KindRemoteRejected,
			fmt.Sprintf("webhook returned status %d", resp.StatusCode))
	}
	return nil
}

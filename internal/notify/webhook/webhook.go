// Package webhook implements an HTTP refresh listener
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/usmankz/coinsight/internal/core"
)

// Webhook posts a snapshot summary to a configured URL after every refresh.
type Webhook struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// New creates a new Webhook listener
func New(url string, headers map[string]string) *Webhook {
	return &Webhook{
		url:     url,
		headers: headers,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (w *Webhook) Name() string { return "webhook" }

// OnRefresh posts the snapshot summary. Full quote maps are trimmed to the
// ticker-relevant fields to keep the payload small.
func (w *Webhook) OnRefresh(snapshot core.Snapshot) error {
	assets := make([]map[string]any, 0, len(snapshot.Quotes))
	for _, q := range snapshot.Quotes {
		assets = append(assets, map[string]any{
			"id":             q.ID,
			"symbol":         q.Symbol,
			"price_usd":      q.PriceUSD,
			"change_24h_pct": q.Change24hPct,
		})
	}

	payload := map[string]any{
		"type":       "refresh",
		"source":     snapshot.Source,
		"stale":      snapshot.Stale,
		"fetched_at": snapshot.FetchedAt.Format(time.RFC3339),
		"assets":     assets,
	}

	return w.post(payload)
}

func (w *Webhook) post(payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: server returned %d", resp.StatusCode)
	}

	return nil
}

// Copyright 2026 Helix Data Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package notify posts sync failures to a chat webhook so an operator
// hears about broken runs without watching logs.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Notifier sends messages to a webhook. With no URL configured every send
// is a silent no-op, so callers never need to guard notification calls.
type Notifier struct {
	url    string
	hc     *http.Client
	logger *slog.Logger
}

// NewNotifier creates a webhook notifier. url may be empty.
func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:    url,
		hc:     &http.Client{Timeout: 10 * time.Second},
		logger: slog.Default().With("component", "notify"),
	}
}

// Send posts a text message to the webhook.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if n.url == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.hc.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode)
	}
	return nil
}

// Failure reports a failed pipeline run. Errors from the webhook itself
// are logged, not returned; a broken notifier must not mask the original
// failure.
func (n *Notifier) Failure(ctx context.Context, tenant string, runErr error) {
	text := fmt.Sprintf("desksync failed for tenant %s: %v", tenant, runErr)
	if err := n.Send(ctx, text); err != nil {
		n.logger.Warn("failed to send notification", "err", err)
	}
}

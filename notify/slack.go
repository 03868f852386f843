// Package notify delivers opaque error summaries to a Slack webhook.
package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type slackMessage struct {
	Text string `json:"text"`
}

// Notifier posts error summaries to Slack. A nil *Notifier is valid and
// drops every message, so callers never need to branch.
type Notifier struct {
	webhookURL string
	client     *http.Client
	l          *logrus.Logger
}

// New returns nil when no webhook is configured.
func New(webhookURL string, l *logrus.Logger) *Notifier {
	if webhookURL == "" {
		return nil
	}
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		l:          l,
	}
}

// Notify sends a summary. Delivery failures are logged, never propagated:
// notification is best effort and must not fail the request that raised it.
func (n *Notifier) Notify(summary string) {
	if n == nil {
		return
	}
	body, err := json.Marshal(slackMessage{Text: summary})
	if err != nil {
		return
	}
	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		n.l.Errorf("slack notification failed: %v", err)
		return
	}
	_ = resp.Body.Close()
}

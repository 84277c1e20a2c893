// Package notify delivers best-effort notifications for cycle lifecycle
// transitions. Delivery failures are logged, never propagated: a missed
// Slack message must not fail a sweep.
package notify

import (
	"fmt"
	"log"

	slackapi "github.com/slack-go/slack"
)

// Notifier receives cycle lifecycle events.
type Notifier interface {
	CycleTransition(cycleName, oldStatus, newStatus string)
}

// webhookPoster abstracts the Slack webhook call, enabling test mocks.
type webhookPoster func(url string, msg *slackapi.WebhookMessage) error

// SlackNotifier posts cycle transitions to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	post       webhookPoster
}

// NewSlack returns a SlackNotifier for the given webhook URL, or nil when
// the URL is empty so callers can pass the result straight through.
func NewSlack(webhookURL string) *SlackNotifier {
	if webhookURL == "" {
		return nil
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		post: func(url string, msg *slackapi.WebhookMessage) error {
			return slackapi.PostWebhook(url, msg)
		},
	}
}

// CycleTransition posts a one-line status change message.
func (n *SlackNotifier) CycleTransition(cycleName, oldStatus, newStatus string) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("Cycle %q moved from %s to %s", cycleName, oldStatus, newStatus)
	if err := n.post(n.webhookURL, &slackapi.WebhookMessage{Text: text}); err != nil {
		log.Printf("notify: slack webhook failed: %v", err)
	}
}

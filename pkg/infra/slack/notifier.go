// Package slack posts failure notifications to an incoming webhook.
package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/domain/types"
)

type notifier struct {
	webhookURL string
}

// NewNotifier creates a Slack webhook notifier
func NewNotifier(webhookURL string) interfaces.Notifier {
	return &notifier{webhookURL: webhookURL}
}

// NotifyFailure posts a short message describing a failed analysis
func (n *notifier) NotifyFailure(ctx context.Context, analysisType types.AnalysisType, failure error) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf(":warning: techlens %s analysis failed: %v", analysisType, failure),
	}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack webhook")
	}
	return nil
}

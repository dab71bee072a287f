// Package notify pushes operational alerts to building managers.
package notify

import (
	"context"
	"fmt"

	slacklib "github.com/slack-go/slack"
)

// Notifier delivers one-line operational alerts. Implementations must be safe
// for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// SlackAPI abstracts the subset of the Slack client used by SlackNotifier,
// allowing tests without real HTTP calls.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// SlackNotifier posts alerts to a fixed Slack channel.
type SlackNotifier struct {
	api     SlackAPI
	channel string
}

var _ Notifier = (*SlackNotifier)(nil)

func NewSlackNotifier(api SlackAPI, channel string) *SlackNotifier {
	return &SlackNotifier{api: api, channel: channel}
}

func (n *SlackNotifier) Notify(ctx context.Context, message string) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channel, slacklib.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("notify.SlackNotifier.Notify: %w", err)
	}
	return nil
}

package notify_test

import (
	"context"
	"errors"
	"testing"

	slacklib "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathewar/apty/internal/notify"
)

type fakeSlackAPI struct {
	channel string
	calls   int
	err     error
}

func (f *fakeSlackAPI) PostMessageContext(_ context.Context, channelID string, _ ...slacklib.MsgOption) (string, string, error) {
	f.calls++
	f.channel = channelID
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "1234567890.000100", nil
}

func TestSlackNotifier(t *testing.T) {
	t.Parallel()

	t.Run("posts to configured channel", func(t *testing.T) {
		t.Parallel()

		api := &fakeSlackAPI{}
		n := notify.NewSlackNotifier(api, "C0MAINT")

		require.NoError(t, n.Notify(context.Background(), "water leak reported in unit 4B"))
		assert.Equal(t, 1, api.calls)
		assert.Equal(t, "C0MAINT", api.channel)
	})

	t.Run("wraps delivery errors", func(t *testing.T) {
		t.Parallel()

		api := &fakeSlackAPI{err: errors.New("channel_not_found")}
		n := notify.NewSlackNotifier(api, "C0MAINT")

		err := n.Notify(context.Background(), "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel_not_found")
	})
}

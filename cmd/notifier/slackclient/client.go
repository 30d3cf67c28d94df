package slackclient

import (
	"context"
	"errors"

	"github.com/slack-go/slack"
)

var ErrMissingToken = errors.New("slack bot token is not configured")

// Client posts plain-text messages to a single channel.
type Client struct {
	api       *slack.Client
	channelID string
}

func New(token, channelID string, opts ...slack.Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if channelID == "" {
		return nil, errors.New("slack channel id is not configured")
	}
	return &Client{api: slack.New(token, opts...), channelID: channelID}, nil
}

func (c *Client) Notify(ctx context.Context, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channelID, slack.MsgOptionText(text, false))
	return err
}

package gmail

import (
	"context"
	"fmt"

	"edupath-backend/internal/mailbox/domain"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUser = "me"

// Gateway implements domain.MailGateway against the Gmail REST API.
type Gateway struct{}

func NewGateway() *Gateway {
	return &Gateway{}
}

// NewClient builds a Gmail client for a single access token. Token refresh
// is handled by the caller, so the token source is static on purpose.
func (g *Gateway) NewClient(ctx context.Context, accessToken string) (domain.MailClient, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})

	srv, err := gmailapi.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return &client{srv: srv}, nil
}

type client struct {
	srv *gmailapi.Service
}

func (c *client) ListMessageIDs(ctx context.Context, labelID string, maxResults int64) ([]string, error) {
	call := c.srv.Users.Messages.List(gmailUser).Context(ctx)
	if labelID != "" {
		call = call.LabelIds(labelID)
	}
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %v", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

func (c *client) GetMessage(ctx context.Context, messageID string) (*domain.MessageData, error) {
	msg, err := c.srv.Users.Messages.Get(gmailUser, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message: %v", err)
	}
	return convertMessage(msg), nil
}

func (c *client) SendRaw(ctx context.Context, raw string) (string, error) {
	resp, err := c.srv.Users.Messages.Send(gmailUser, &gmailapi.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to send message: %v", err)
	}
	return resp.Id, nil
}

func (c *client) Profile(ctx context.Context) (string, error) {
	profile, err := c.srv.Users.GetProfile(gmailUser).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to fetch profile: %v", err)
	}
	return profile.EmailAddress, nil
}

package domain

import "context"

// MailClient is an authenticated session against the mail provider, bound to
// one student's access token.
type MailClient interface {
	ListMessageIDs(ctx context.Context, labelID string, maxResults int64) ([]string, error)
	GetMessage(ctx context.Context, messageID string) (*MessageData, error)
	SendRaw(ctx context.Context, raw string) (string, error)
	Profile(ctx context.Context) (string, error)
}

// MailGateway builds provider clients from access tokens. The token broker
// owns refresh; clients always receive a token believed to be live.
type MailGateway interface {
	NewClient(ctx context.Context, accessToken string) (MailClient, error)
}

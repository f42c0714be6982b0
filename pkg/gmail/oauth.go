package gmail

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
)

// NewOAuthConfig builds the OAuth2 configuration for delegated mailbox
// access: read plus send, against Google's endpoints.
func NewOAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			gmailapi.GmailReadonlyScope,
			gmailapi.GmailSendScope,
		},
		Endpoint: google.Endpoint,
	}
}

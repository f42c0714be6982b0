package dto

// SendMessageRequest is bound from a multipart form so attachments can ride
// along with the message fields.
type SendMessageRequest struct {
	To      string `form:"to" binding:"required,email"`
	Subject string `form:"subject"`
	Body    string `form:"body"`
	CC      string `form:"cc"`
	BCC     string `form:"bcc"`
}

type ListMessagesQuery struct {
	Query  string `form:"q"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type ConnectURLResponse struct {
	AuthURL string `json:"auth_url"`
}

type StatusResponse struct {
	Connected  bool   `json:"connected"`
	Status     string `json:"status"`
	Email      string `json:"email,omitempty"`
	LastSyncAt string `json:"last_sync_at,omitempty"`
}

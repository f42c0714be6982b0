package gmail

import (
	"encoding/base64"
	"time"

	"edupath-backend/internal/mailbox/domain"

	gmailapi "google.golang.org/api/gmail/v1"
)

func convertMessage(msg *gmailapi.Message) *domain.MessageData {
	data := &domain.MessageData{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		Snippet:      msg.Snippet,
		LabelIDs:     msg.LabelIds,
		InternalDate: time.UnixMilli(msg.InternalDate),
	}

	if msg.Payload != nil {
		data.From = getHeader(msg.Payload.Headers, "From")
		data.To = getHeader(msg.Payload.Headers, "To")
		data.Subject = getHeader(msg.Payload.Headers, "Subject")
		data.BodyHTML = extractHTMLBody(msg.Payload)
	}

	return data
}

func getHeader(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

// extractHTMLBody prefers a direct text/html payload body, otherwise walks
// the MIME tree for the first text/html part. Returns "" when the message
// has no HTML body; callers fall back to the snippet.
func extractHTMLBody(payload *gmailapi.MessagePart) string {
	if payload.MimeType == "text/html" && payload.Body != nil && payload.Body.Data != "" {
		if data, err := decodeBodyData(payload.Body.Data); err == nil {
			return string(data)
		}
	}

	var htmlBody string
	var findBody func(parts []*gmailapi.MessagePart)
	findBody = func(parts []*gmailapi.MessagePart) {
		for _, part := range parts {
			if htmlBody != "" {
				return
			}
			if part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "" {
				if data, err := decodeBodyData(part.Body.Data); err == nil {
					htmlBody = string(data)
					return
				}
			}
			if len(part.Parts) > 0 {
				findBody(part.Parts)
			}
		}
	}
	findBody(payload.Parts)

	return htmlBody
}

// decodeBodyData handles both padded and unpadded websafe base64, which the
// Gmail API mixes depending on the part.
func decodeBodyData(s string) ([]byte, error) {
	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}

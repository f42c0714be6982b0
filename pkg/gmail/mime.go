package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"edupath-backend/internal/mailbox/domain"
)

const mixedBoundary = "edupath_mixed_boundary"

// emptyBodyPlaceholder stands in for a fully empty body, which some mail
// clients mis-render.
const emptyBodyPlaceholder = "<p></p>"

// BuildRawMessage assembles an RFC 2822 message and returns it encoded with
// unpadded base64url, ready for the Gmail API Raw field. With no attachments
// the message is a single text/html part; with attachments it is
// multipart/mixed with one HTML part plus one base64 part per attachment.
func BuildRawMessage(fromName, fromEmail, to, subject, htmlBody string, opts domain.SendOptions) string {
	if htmlBody == "" {
		htmlBody = emptyBodyPlaceholder
	}

	var msg bytes.Buffer

	if fromEmail != "" {
		if fromName != "" {
			msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", encodeWord(fromName), fromEmail))
		} else {
			msg.WriteString(fmt.Sprintf("From: %s\r\n", fromEmail))
		}
	}
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	if opts.CC != "" {
		msg.WriteString(fmt.Sprintf("Cc: %s\r\n", opts.CC))
	}
	if opts.BCC != "" {
		msg.WriteString(fmt.Sprintf("Bcc: %s\r\n", opts.BCC))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", encodeWord(subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if len(opts.Attachments) == 0 {
		msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		msg.WriteString(htmlBody)
	} else {
		msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", mixedBoundary))

		msg.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
		msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		msg.WriteString(htmlBody)
		msg.WriteString("\r\n")

		for _, att := range opts.Attachments {
			mimeType := att.MimeType
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}

			msg.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
			msg.WriteString(fmt.Sprintf("Content-Type: %s; name=\"%s\"\r\n", mimeType, att.Filename))
			msg.WriteString("Content-Transfer-Encoding: base64\r\n")
			msg.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", att.Filename))
			writeWrappedBase64(&msg, att.Content)
		}

		msg.WriteString(fmt.Sprintf("--%s--", mixedBoundary))
	}

	return base64.RawURLEncoding.EncodeToString(msg.Bytes())
}

// encodeWord applies RFC 2047 base64 encoding so non-ASCII header values
// survive transport.
func encodeWord(value string) string {
	return fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(value)))
}

// writeWrappedBase64 emits base64 content in 76-column lines per RFC 2045.
func writeWrappedBase64(msg *bytes.Buffer, content []byte) {
	encoded := base64.StdEncoding.EncodeToString(content)
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		msg.WriteString(encoded[i:end])
		msg.WriteString("\r\n")
	}
}

package assistkit

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
	gmail "google.golang.org/api/gmail/v1"
)

// NoBodyText is displayed when a message has no extractable body at all.
const NoBodyText = "No body content"

// MIMEEncode encodes an assembled RFC822 message the way the Gmail API
// expects raw messages.
func MIMEEncode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

// MIMEDecode decodes base64url body data as returned by the Gmail API.
// The API is inconsistent about padding, so both forms are accepted.
func MIMEDecode(s string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		b, err = base64.RawURLEncoding.DecodeString(s)
	}
	if err != nil {
		return "", errors.Wrap(err, "decoding body data")
	}
	return string(b), nil
}

// HeaderMap flattens payload headers into a name to value map.
func HeaderMap(msg *gmail.Message) map[string]string {
	headers := map[string]string{}
	if msg == nil || msg.Payload == nil {
		return headers
	}
	for _, h := range msg.Payload.Headers {
		headers[h.Name] = h.Value
	}
	return headers
}

// ExtractText returns the message text: the direct single-part body if
// present, otherwise the first text/plain part in order. Empty string when
// neither yields content.
func ExtractText(msg *gmail.Message) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		if s, err := MIMEDecode(msg.Payload.Body.Data); err == nil && s != "" {
			return s
		}
	}
	return firstPartMatching(msg.Payload.Parts, "text/plain")
}

// ExtractHTML returns the first text/html part body, if any.
func ExtractHTML(msg *gmail.Message) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" && msg.Payload.MimeType == "text/html" {
		if s, err := MIMEDecode(msg.Payload.Body.Data); err == nil && s != "" {
			return s
		}
	}
	return firstPartMatching(msg.Payload.Parts, "text/html")
}

// ExtractBody returns the displayable body of a message, falling back to the
// snippet and finally to NoBodyText.
func ExtractBody(msg *gmail.Message) string {
	if s := ExtractText(msg); s != "" {
		return s
	}
	if msg != nil && msg.Snippet != "" {
		return msg.Snippet
	}
	return NoBodyText
}

// firstPartMatching walks parts depth-first in order and returns the first
// decodable body of the given MIME type.
func firstPartMatching(parts []*gmail.MessagePart, mimeType string) string {
	for _, p := range parts {
		if p == nil {
			continue
		}
		if p.MimeType == mimeType && p.Body != nil && p.Body.Data != "" {
			if s, err := MIMEDecode(p.Body.Data); err == nil && s != "" {
				return s
			}
		}
		if len(p.Parts) > 0 {
			if s := firstPartMatching(p.Parts, mimeType); s != "" {
				return s
			}
		}
	}
	return ""
}

// BuildPlainMessage assembles a plain-text RFC822 message for sending.
func BuildPlainMessage(to, subject, body string) string {
	headers := []string{
		"To: " + to,
		"Subject: " + subject,
		`Content-Type: text/plain; charset="UTF-8"`,
		"MIME-Version: 1.0",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}

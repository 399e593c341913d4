package notifications

import (
	"context"
	"fmt"
	"strings"

	"Backend-Celestia-Admin/src/config"
)

type Address struct {
	Name  string
	Email string
}

// Attachment is a file sent with a mail. A non-empty ContentID makes it inline,
// referenced from the HTML body as cid:<ContentID>.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	ContentID   string
}

type Message struct {
	From        Address
	To          []Address
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Result is what the provider reported for an accepted message.
type Result struct {
	Provider  string   `json:"provider"`
	Accepted  []string `json:"accepted"`
	MessageID string   `json:"messageId,omitempty"`
}

// Gateway sends one mail.
type Gateway interface {
	Send(ctx context.Context, msg Message) (*Result, error)
}

// NewGatewayFromConfig builds the provider chosen by MAIL_PROVIDER.
func NewGatewayFromConfig(cfg *config.Config) (Gateway, error) {
	switch strings.ToLower(cfg.MailProvider) {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("missing SendGrid env: SENDGRID_API_KEY")
		}
		return NewSendGridSender(cfg.SendGridAPIKey), nil
	default:
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
}

func recipients(to []Address) []string {
	out := make([]string, 0, len(to))
	for _, a := range to {
		out = append(out, a.Email)
	}
	return out
}

func contentType(a Attachment) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	return "application/octet-stream"
}

package notifications

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridSender struct {
	client *sendgrid.Client
}

func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey)}
}

func buildSendGridMail(msg Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.From.Name, msg.From.Email))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, a := range msg.To {
		p.AddTos(mail.NewEmail(a.Name, a.Email))
	}
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/html", msg.HTML))

	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		att.SetType(contentType(a))
		att.SetFilename(a.Filename)
		if a.ContentID != "" {
			att.SetDisposition("inline")
			att.SetContentID(a.ContentID)
		} else {
			att.SetDisposition("attachment")
		}
		m.AddAttachment(att)
	}
	return m
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) (*Result, error) {
	resp, err := s.client.SendWithContext(ctx, buildSendGridMail(msg))
	if err != nil {
		return nil, fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	res := &Result{Provider: "sendgrid", Accepted: recipients(msg.To)}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		res.MessageID = ids[0]
	}
	return res, nil
}

package notifications

import (
	"context"
	"fmt"
	"io"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
}

func NewSMTPSender(host string, port int, user, pass string) (*SMTPSender, error) {
	missing := []string{}
	if host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if port == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if user == "" {
		missing = append(missing, "SMTP_USER")
	}
	if pass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing SMTP env: %v", strings.Join(missing, ", "))
	}
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass}, nil
}

func buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From.Email, msg.From.Name)
	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, m.FormatAddress(a.Email, a.Name))
	}
	m.SetHeader("To", to...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, a := range msg.Attachments {
		content := a.Content
		copyFn := gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		})
		header := map[string][]string{"Content-Type": {contentType(a)}}
		if a.ContentID != "" {
			header["Content-ID"] = []string{"<" + a.ContentID + ">"}
			m.Embed(a.Filename, copyFn, gomail.SetHeader(header))
			continue
		}
		m.Attach(a.Filename, copyFn, gomail.SetHeader(header))
	}
	return m
}

// Send dials the SMTP server for every message. gomail has no context support, so a
// cancelled ctx returns early while the dial finishes in the background.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (*Result, error) {
	m := buildMessage(msg)
	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("smtp send: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("smtp send: %w", err)
		}
	}
	return &Result{Provider: "smtp", Accepted: recipients(msg.To)}, nil
}

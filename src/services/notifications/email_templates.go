package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"Backend-Celestia-Admin/src/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(
	template.New("mail").
		Funcs(template.FuncMap{
			"join":  strings.Join,
			"price": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// QRContentID is the Content-ID the mail bodies reference as cid:qrcode.
const QRContentID = "qrcode"

const (
	SubjectApproved        = "Your Order Has Been Approved! 🎉"
	SubjectRejected        = "Your Registration Could Not Be Approved"
	SubjectVisitorWelcome  = "Welcome to the platform"
	SubjectVisitorApproved = "Account Approved"
)

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// ApprovalMail builds the ticket mail for an approved attendee. qr is embedded inline;
// pdf is attached when non-empty.
func ApprovalMail(event string, p models.TicketPayload, qr, pdf []byte) (Message, error) {
	html, err := render("approval.html", struct {
		models.TicketPayload
		Event  string
		HasPDF bool
	}{TicketPayload: p, Event: event, HasPDF: len(pdf) > 0})
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		To:      []Address{{Name: p.Username, Email: p.Email}},
		Subject: SubjectApproved,
		HTML:    html,
		Attachments: []Attachment{
			{Filename: "qrcode.png", ContentType: "image/png", Content: qr, ContentID: QRContentID},
		},
	}
	if len(pdf) > 0 {
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    fmt.Sprintf("ticket_%s.pdf", p.OrderIndex),
			ContentType: "application/pdf",
			Content:     pdf,
		})
	}
	return msg, nil
}

func RejectionMail(event string, a models.Attendee) (Message, error) {
	html, err := render("rejection.html", struct {
		Event    string
		Username string
	}{Event: event, Username: a.Username})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []Address{{Name: a.Username, Email: a.Email}},
		Subject: SubjectRejected,
		HTML:    html,
	}, nil
}

// VisitorWelcomeMail goes to the visitor's first user with the PDF pass attached.
func VisitorWelcomeMail(event string, v *models.Visitor, pass []byte) (Message, error) {
	u := v.Primary()
	if u == nil {
		return Message{}, fmt.Errorf("visitor %s has no users", v.Index)
	}
	html, err := render("visitor_welcome.html", struct {
		Event    string
		Username string
	}{Event: event, Username: u.Username})
	if err != nil {
		return Message{}, err
	}
	msg := Message{
		To:      []Address{{Name: u.Username, Email: u.Email}},
		Subject: SubjectVisitorWelcome,
		HTML:    html,
	}
	if len(pass) > 0 {
		msg.Attachments = []Attachment{{
			Filename:    fmt.Sprintf("visitor_%s.pdf", v.Index),
			ContentType: "application/pdf",
			Content:     pass,
		}}
	}
	return msg, nil
}

func VisitorApprovedMail(v *models.Visitor, qr []byte) (Message, error) {
	u := v.Primary()
	if u == nil {
		return Message{}, fmt.Errorf("visitor %s has no users", v.Index)
	}
	html, err := render("visitor_approved.html", struct {
		Username string
		Users    []models.VisitorUser
	}{Username: u.Username, Users: v.Users})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []Address{{Name: u.Username, Email: u.Email}},
		Subject: SubjectVisitorApproved,
		HTML:    html,
		Attachments: []Attachment{
			{Filename: "qrcode.png", ContentType: "image/png", Content: qr, ContentID: QRContentID},
		},
	}, nil
}

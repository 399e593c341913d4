package tickets

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"Backend-Celestia-Admin/src/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pdfTemplates = template.Must(
	template.New("tickets").
		Funcs(template.FuncMap{
			"join":  strings.Join,
			"price": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// QREncoder is satisfied by qrcode.Encoder.
type QREncoder interface {
	EncodePNG(data string) ([]byte, error)
}

// PDFRenderer turns a full HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Artifacts are the files attached to a ticket mail. PDFError is set when the
// optional PDF could not be rendered; the QR code is still usable.
type Artifacts struct {
	QRCode   []byte
	PDF      []byte
	PDFError error
}

type Generator struct {
	qr      QREncoder
	pdf     PDFRenderer
	withPDF bool
}

// NewGenerator builds a generator. pdf may be nil, in which case no PDFs are produced.
func NewGenerator(qr QREncoder, pdf PDFRenderer, withPDF bool) *Generator {
	return &Generator{qr: qr, pdf: pdf, withPDF: withPDF && pdf != nil}
}

// Generate encodes the payload as a QR code and, when enabled, renders a PDF ticket.
// Only a QR failure is returned as an error.
func (g *Generator) Generate(ctx context.Context, payload models.TicketPayload) (*Artifacts, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal ticket payload: %w", err)
	}
	png, err := g.qr.EncodePNG(string(data))
	if err != nil {
		return nil, err
	}

	out := &Artifacts{QRCode: png}
	if !g.withPDF {
		return out, nil
	}

	html, err := renderTicketHTML(payload, png)
	if err != nil {
		out.PDFError = err
		return out, nil
	}
	pdf, err := g.pdf.RenderPDF(ctx, html)
	if err != nil {
		out.PDFError = fmt.Errorf("render ticket pdf: %w", err)
		return out, nil
	}
	out.PDF = pdf
	return out, nil
}

// VisitorQRCode encodes the visitor's name and primary email.
func (g *Generator) VisitorQRCode(v *models.Visitor) ([]byte, error) {
	p := models.VisitorQRPayload{Name: v.Name}
	if u := v.Primary(); u != nil {
		p.Email = u.Email
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return g.qr.EncodePNG(string(data))
}

// VisitorPass renders the walk-in visitor's A4 pass.
func (g *Generator) VisitorPass(ctx context.Context, v *models.Visitor, event string) ([]byte, error) {
	if g.pdf == nil {
		return nil, fmt.Errorf("pdf renderer not configured")
	}
	var buf bytes.Buffer
	err := pdfTemplates.ExecuteTemplate(&buf, "visitor_pass.html", struct {
		Event   string
		Visitor *models.Visitor
	}{Event: event, Visitor: v})
	if err != nil {
		return nil, fmt.Errorf("render visitor pass: %w", err)
	}
	return g.pdf.RenderPDF(ctx, buf.String())
}

func renderTicketHTML(p models.TicketPayload, png []byte) (string, error) {
	var buf bytes.Buffer
	err := pdfTemplates.ExecuteTemplate(&buf, "ticket.html", struct {
		Ticket models.TicketPayload
		QRCode template.URL
	}{
		Ticket: p,
		QRCode: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	})
	if err != nil {
		return "", fmt.Errorf("render ticket html: %w", err)
	}
	return buf.String(), nil
}

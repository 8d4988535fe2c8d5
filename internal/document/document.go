// Package document renders offers for customers and for the archive.
package document

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
)

//go:embed templates/*.html.tmpl
var templates embed.FS

// Renderer turns offer data into a document.
type Renderer interface {
	Render(ctx context.Context, offer domain.OfferData) ([]byte, error)
	ContentType() string
	Extension() string
}

// Company is the issuer shown in the document header.
type Company struct {
	Name    string
	Email   string
	Phone   string
	Website string
}

// DefaultCompany is the issuer used when none is configured.
var DefaultCompany = Company{
	Name:    "HandyHands",
	Email:   "info@handyhands.cz",
	Phone:   "+420 774 000 000",
	Website: "https://handyhands.cz",
}

// HTMLRenderer renders the offer as a standalone HTML page.
type HTMLRenderer struct {
	tmpl    *template.Template
	company Company
}

// NewHTMLRenderer parses the embedded offer template.
func NewHTMLRenderer(company Company) (*HTMLRenderer, error) {
	tmpl, err := template.New("offer.html.tmpl").
		Funcs(template.FuncMap{
			"price": FormatPrice,
		}).
		ParseFS(templates, "templates/offer.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse offer template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl, company: company}, nil
}

type view struct {
	Company Company
	Offer   domain.OfferData
}

func (r *HTMLRenderer) Render(ctx context.Context, offer domain.OfferData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view{Company: r.company, Offer: offer}); err != nil {
		return nil, fmt.Errorf("failed to render offer %s: %w", offer.OrderID, err)
	}
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *HTMLRenderer) Extension() string { return ".html" }

// FormatPrice writes an amount the Czech way: a space between thousands and
// a decimal comma, decimals only when present. 12590 -> "12 590".
func FormatPrice(amount float64) string {
	neg := amount < 0
	amount = math.Abs(amount)

	whole := math.Floor(amount)
	cents := int(math.Round((amount - whole) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(d)
	}
	if cents != 0 {
		fmt.Fprintf(&b, ",%02d", cents)
	}
	return b.String()
}

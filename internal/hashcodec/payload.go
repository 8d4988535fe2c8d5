package hashcodec

import (
	"time"

	"github.com/golang-sql/civil"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
)

// Payload is everything a shareable quote token carries.
type Payload struct {
	ServiceType     string          `json:"serviceType"`
	ServiceTitle    string          `json:"serviceTitle"`
	TotalPrice      float64         `json:"totalPrice"`
	Currency        string          `json:"currency"`
	CalculationData CalculationData `json:"calculationData"`
}

// CalculationData is the calculation result together with the answers it
// was computed from and the details collected on later steps.
type CalculationData struct {
	pricing.CalculationResult

	FormData  form.Data `json:"formData"`
	Timestamp int64     `json:"timestamp"`

	// OriginFormNote is the free-text note of the service form.
	OriginFormNote string `json:"originFormNote,omitempty"`
	// ConfirmationStepNote is collected on the confirmation step. It is never
	// derived from OriginFormNote or the other way round.
	ConfirmationStepNote string `json:"confirmationStepNote,omitempty"`

	Contact   *Contact    `json:"contact,omitempty"`
	StartDate *civil.Date `json:"startDate,omitempty"`
}

// Contact is the customer information entered after the quote.
type Contact struct {
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyID      string `json:"companyId,omitempty"`
	VatID          string `json:"vatId,omitempty"`
	Street         string `json:"street,omitempty"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	PropertyStreet string `json:"propertyStreet,omitempty"`
	PropertyCity   string `json:"propertyCity,omitempty"`
}

// FullName joins the first and last name.
func (c *Contact) FullName() string {
	if c == nil {
		return ""
	}
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// NewPayload assembles the payload of a fresh calculation. The origin form
// note is taken from the configured note field.
func NewPayload(cfg *form.Config, data form.Data, result *pricing.CalculationResult, currency string, now time.Time) *Payload {
	p := &Payload{
		ServiceType:  cfg.ID,
		ServiceTitle: cfg.Title,
		TotalPrice:   result.TotalMonthlyPrice,
		Currency:     currency,
		CalculationData: CalculationData{
			CalculationResult: *result,
			FormData:          data.Clone(),
			Timestamp:         now.UnixMilli(),
		},
	}
	if cfg.NoteField != "" {
		p.CalculationData.OriginFormNote = data.Get(cfg.NoteField)
	}
	return p
}

// Breakdown classifies the carried calculation details.
func (p *Payload) Breakdown() pricing.Breakdown {
	return pricing.BreakdownOf(p.CalculationData.CalculationDetails)
}

// Clone returns a deep enough copy to re-encode without touching p.
func (p *Payload) Clone() *Payload {
	out := *p
	out.CalculationData.FormData = p.CalculationData.FormData.Clone()
	entries := p.CalculationData.CalculationDetails.AppliedCoefficients
	if entries != nil {
		out.CalculationData.CalculationDetails.AppliedCoefficients = append([]pricing.AppliedCoefficient(nil), entries...)
	}
	if p.CalculationData.Contact != nil {
		c := *p.CalculationData.Contact
		out.CalculationData.Contact = &c
	}
	if p.CalculationData.StartDate != nil {
		d := *p.CalculationData.StartDate
		out.CalculationData.StartDate = &d
	}
	return &out
}

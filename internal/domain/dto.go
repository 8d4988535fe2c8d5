package domain

import (
	"github.com/google/uuid"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/hashcodec"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
)

// Response DTOs

// ServiceSummaryDTO lists a service on the landing page.
type ServiceSummaryDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Billing     form.Billing `json:"billing"`
	BasePrice   float64      `json:"basePrice"`
}

// StartDateDTO is the earliest day a service can start.
type StartDateDTO struct {
	ServiceType      string `json:"serviceType"`
	Category         string `json:"category"`
	LeadDays         int    `json:"leadDays"`
	MinimumStartDate string `json:"minimumStartDate"` // YYYY-MM-DD
}

// QuoteDTO is a priced quote together with the token that carries it.
type QuoteDTO struct {
	Hash                 string                    `json:"hash"`
	ServiceType          string                    `json:"serviceType"`
	ServiceTitle         string                    `json:"serviceTitle"`
	Currency             string                    `json:"currency"`
	Result               pricing.CalculationResult `json:"result"`
	DisplayPrice         float64                   `json:"displayPrice"`
	FormData             form.Data                 `json:"formData"`
	StartDate            string                    `json:"startDate"` // YYYY-MM-DD
	OriginFormNote       string                    `json:"originFormNote,omitempty"`
	ConfirmationStepNote string                    `json:"confirmationStepNote,omitempty"`
	Contact              *hashcodec.Contact        `json:"contact,omitempty"`
}

// SubmissionDTO is a stored offer request.
type SubmissionDTO struct {
	ID            uuid.UUID `json:"id"`
	OrderID       string    `json:"orderId"`
	ServiceType   string    `json:"serviceType"`
	ServiceTitle  string    `json:"serviceTitle"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	TotalPrice    float64   `json:"totalPrice"`
	Currency      string    `json:"currency"`
	StartDate     string    `json:"startDate,omitempty"` // YYYY-MM-DD
	DocumentPath  string    `json:"documentPath,omitempty"`
	EmailSent     bool      `json:"emailSent"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
}

// Request DTOs

// CalculateQuoteRequest carries the answers of a service form.
type CalculateQuoteRequest struct {
	FormData form.Data `json:"formData" validate:"required"`
}

// ContactInput is the customer information entered after the quote.
type ContactInput struct {
	FirstName      string `json:"firstName,omitempty" validate:"max=100"`
	LastName       string `json:"lastName,omitempty" validate:"max=100"`
	Email          string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone          string `json:"phone,omitempty" validate:"max=50"`
	CompanyName    string `json:"companyName,omitempty" validate:"max=200"`
	CompanyID      string `json:"companyId,omitempty" validate:"omitempty,numeric,max=10"`
	VatID          string `json:"vatId,omitempty" validate:"max=14"`
	Street         string `json:"street,omitempty" validate:"max=200"`
	City           string `json:"city,omitempty" validate:"max=100"`
	PostalCode     string `json:"postalCode,omitempty" validate:"omitempty,postcode"`
	PropertyStreet string `json:"propertyStreet,omitempty" validate:"max=200"`
	PropertyCity   string `json:"propertyCity,omitempty" validate:"max=100"`
}

// ToContact converts the input into the token representation.
func (c *ContactInput) ToContact() *hashcodec.Contact {
	if c == nil {
		return nil
	}
	return &hashcodec.Contact{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		CompanyName:    c.CompanyName,
		CompanyID:      c.CompanyID,
		VatID:          c.VatID,
		Street:         c.Street,
		City:           c.City,
		PostalCode:     c.PostalCode,
		PropertyStreet: c.PropertyStreet,
		PropertyCity:   c.PropertyCity,
	}
}

// UpdateQuoteRequest merges details collected after the quote into a token.
// Nil fields are left as they are.
type UpdateQuoteRequest struct {
	Hash                 string        `json:"hash" validate:"required,max=65536"`
	Contact              *ContactInput `json:"contact,omitempty"`
	StartDate            string        `json:"startDate,omitempty" validate:"omitempty,max=40,date"`
	ConfirmationStepNote *string       `json:"confirmationStepNote,omitempty" validate:"omitempty,max=2000"`
}

// SubmitOfferRequest confirms a quote. The same merge rules as for
// UpdateQuoteRequest apply before submission.
type SubmitOfferRequest struct {
	UpdateQuoteRequest
	SendCopy bool `json:"sendCopy"`
}

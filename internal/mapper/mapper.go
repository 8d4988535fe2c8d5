package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/calendar"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/hashcodec"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
)

// OfferValidityDays is how long an issued offer stays valid.
const OfferValidityDays = 30

// Note headings. The two notes are always shown separately.
const (
	OriginNoteHeading       = "Poznámka k poptávce"
	ConfirmationNoteHeading = "Poznámka k objednávce"
)

// ConvertFormDataToOfferData builds the offer document from a decoded quote.
// details must carry the full audit trail; see pricing.Engine.Expand.
func ConvertFormDataToOfferData(p *hashcodec.Payload, cfg *form.Config, details pricing.CalculationDetails, issuedOn civil.Date) domain.OfferData {
	calc := p.CalculationData
	offer := domain.OfferData{
		OrderID:      calc.OrderID,
		ServiceType:  p.ServiceType,
		ServiceTitle: cfg.Title,
		IssuedOn:     calendar.FormatCzech(issuedOn),
		ValidUntil:   calendar.FormatCzech(issuedOn.AddDays(OfferValidityDays)),
		Currency:     p.Currency,
		Symbol:       CurrencySymbol(p.Currency),
		Hourly:       cfg.IsHourly(),
		Customer:     toOfferCustomer(calc.Contact),
		Summary:      summaryRows(cfg, calc.FormData),
		Prices:       priceLines(cfg, p, issuedOn),
		ExtraItems:   extraItems(cfg, details),
		Notes:        noteBlocks(calc.OriginFormNote, calc.ConfirmationStepNote),
		Conditions:   cfg.Conditions,
	}

	if offer.ServiceTitle == "" {
		offer.ServiceTitle = p.ServiceTitle
	}
	if calc.StartDate != nil {
		offer.StartDate = calendar.FormatCzech(*calc.StartDate)
	}
	if calc.MinimumHours != nil {
		offer.MinimumHours = *calc.MinimumHours
	}
	if cfg.CommonServices != nil {
		offer.CommonServices = &domain.TaskList{
			Title: cfg.CommonServices.Title,
			Items: cfg.CommonServices.Items,
		}
	}

	return offer
}

func toOfferCustomer(c *hashcodec.Contact) domain.OfferCustomer {
	if c == nil {
		return domain.OfferCustomer{}
	}
	return domain.OfferCustomer{
		Name:            c.FullName(),
		Email:           c.Email,
		Phone:           c.Phone,
		Company:         c.CompanyName,
		CompanyID:       c.CompanyID,
		VatID:           c.VatID,
		Address:         joinAddress(c.Street, c.PostalCode, c.City),
		PropertyAddress: joinAddress(c.PropertyStreet, "", c.PropertyCity),
	}
}

func joinAddress(street, postalCode, city string) string {
	town := strings.TrimSpace(postalCode + " " + city)
	switch {
	case street == "":
		return town
	case town == "":
		return street
	default:
		return street + ", " + town
	}
}

// summaryRows lists the visible answered questions in form order. The note
// field is left out as it has its own block.
func summaryRows(cfg *form.Config, data form.Data) []domain.SummaryRow {
	var rows []domain.SummaryRow
	for _, f := range cfg.VisibleFields(data) {
		id := f.FieldID()
		if id == cfg.NoteField {
			continue
		}
		value, ok := data[id]
		if !ok || value.IsEmpty() {
			continue
		}
		rows = append(rows, domain.SummaryRow{
			Label: cfg.Label(id),
			Value: displayValue(cfg, id, value),
		})
	}
	return rows
}

func displayValue(cfg *form.Config, id string, v form.Value) string {
	if flag, ok := v.Bool(); ok {
		if flag {
			return "Ano"
		}
		return "Ne"
	}
	return cfg.DisplayValue(id, v)
}

func priceLines(cfg *form.Config, p *hashcodec.Payload, issuedOn civil.Date) []domain.PriceLine {
	calc := p.CalculationData
	symbol := CurrencySymbol(p.Currency)
	var lines []domain.PriceLine

	if cfg.IsHourly() {
		line := domain.PriceLine{
			Label:    "Hodinová sazba",
			Amount:   calc.RegularCleaningPrice,
			Unit:     symbol + "/hod",
			Billable: true,
		}
		if calc.MinimumHours != nil {
			line.Note = fmt.Sprintf("Minimální rozsah %s hod.", formatHours(*calc.MinimumHours))
		}
		return append(lines, line)
	}

	lines = append(lines, domain.PriceLine{
		Label:    "Pravidelný úklid",
		Amount:   pricing.RoundForDisplay(calc.RegularCleaningPrice),
		Unit:     symbol + "/měsíc",
		Billable: true,
	})

	if calc.TransportFee != nil {
		lines = append(lines,
			domain.PriceLine{
				Label:    "Doprava",
				Amount:   *calc.TransportFee,
				Unit:     symbol + "/měsíc",
				Billable: true,
			},
			domain.PriceLine{
				Label:    "Celkem za měsíc",
				Amount:   pricing.RoundForDisplay(calc.TotalMonthlyPrice),
				Unit:     symbol + "/měsíc",
				Billable: true,
			},
		)
	}

	if calc.GeneralCleaningPrice != nil {
		label := "Generální úklid"
		if calc.GeneralCleaningFrequency != "" {
			label += " (" + calc.GeneralCleaningFrequency + ")"
		}
		lines = append(lines, domain.PriceLine{
			Label:    label,
			Amount:   pricing.RoundForDisplay(*calc.GeneralCleaningPrice),
			Unit:     symbol + "/úklid",
			Billable: true,
		})
	}

	if calc.WinterServiceFee != nil {
		day := issuedOn
		if calc.StartDate != nil {
			day = *calc.StartDate
		}
		billable := calendar.IsWinterBillable(day)
		lines = append(lines, domain.PriceLine{
			Label:    "Zimní údržba, pohotovost",
			Amount:   *calc.WinterServiceFee,
			Unit:     symbol + "/měsíc",
			Note:     "Účtuje se od 15. 11. do 15. 3.",
			Billable: billable,
		})
		if calc.WinterCalloutFee != nil {
			lines = append(lines, domain.PriceLine{
				Label:    "Zimní údržba, výjezd",
				Amount:   *calc.WinterCalloutFee,
				Unit:     symbol + "/výjezd",
				Note:     "Účtuje se za každý výjezd",
				Billable: billable,
			})
		}
	}

	return lines
}

// extraItems lists the fixed addons of the audit trail.
func extraItems(cfg *form.Config, details pricing.CalculationDetails) []domain.ExtraItem {
	var items []domain.ExtraItem
	for _, e := range details.AppliedCoefficients {
		if !e.IsAddon() || e.Impact == 0 {
			continue
		}
		if e.Field == pricing.TransportFeeField || e.Field == cfg.PostalCodeField {
			continue
		}
		items = append(items, domain.ExtraItem{Label: e.Label, Amount: e.Impact})
	}
	return items
}

func noteBlocks(origin, confirmation string) []domain.NoteBlock {
	var notes []domain.NoteBlock
	if text := strings.TrimSpace(origin); text != "" {
		notes = append(notes, domain.NoteBlock{Heading: OriginNoteHeading, Text: text})
	}
	if text := strings.TrimSpace(confirmation); text != "" {
		notes = append(notes, domain.NoteBlock{Heading: ConfirmationNoteHeading, Text: text})
	}
	return notes
}

// CurrencySymbol returns the symbol shown next to amounts.
func CurrencySymbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "", "CZK":
		return "Kč"
	case "EUR":
		return "€"
	default:
		return currency
	}
}

func formatHours(h float64) string {
	if h == float64(int64(h)) {
		return fmt.Sprintf("%d", int64(h))
	}
	return strings.ReplaceAll(fmt.Sprintf("%.1f", h), ".", ",")
}

// ToSubmissionDTO converts Submission to SubmissionDTO
func ToSubmissionDTO(s *domain.Submission) domain.SubmissionDTO {
	dto := domain.SubmissionDTO{
		ID:            s.ID,
		OrderID:       s.OrderID,
		ServiceType:   s.ServiceType,
		ServiceTitle:  s.ServiceTitle,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		TotalPrice:    s.TotalPrice,
		Currency:      s.Currency,
		DocumentPath:  s.DocumentPath,
		EmailSent:     s.EmailSentAt != nil,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
	}

	if s.StartDate != nil {
		dto.StartDate = s.StartDate.Format("2006-01-02")
	}

	return dto
}

// ToQuoteDTO converts a quote payload and its token to the API shape.
// details replaces the carried details so clients always see the full trail.
func ToQuoteDTO(p *hashcodec.Payload, details pricing.CalculationDetails, hash string) domain.QuoteDTO {
	calc := p.CalculationData
	result := calc.CalculationResult
	result.CalculationDetails = details

	dto := domain.QuoteDTO{
		Hash:                 hash,
		ServiceType:          p.ServiceType,
		ServiceTitle:         p.ServiceTitle,
		Currency:             p.Currency,
		Result:               result,
		DisplayPrice:         pricing.RoundForDisplay(calc.TotalMonthlyPrice),
		FormData:             calc.FormData,
		OriginFormNote:       calc.OriginFormNote,
		ConfirmationStepNote: calc.ConfirmationStepNote,
		Contact:              calc.Contact,
	}
	if calc.HourlyRate != nil {
		dto.DisplayPrice = *calc.HourlyRate
	}
	if calc.StartDate != nil {
		dto.StartDate = calendar.FormatISO(*calc.StartDate)
	}
	return dto
}

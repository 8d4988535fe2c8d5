package domain

// OfferData is everything the offer document shows.
type OfferData struct {
	OrderID      string
	ServiceType  string
	ServiceTitle string
	IssuedOn     string
	ValidUntil   string
	StartDate    string
	Currency     string
	Symbol       string
	Hourly       bool
	MinimumHours float64

	Customer       OfferCustomer
	Summary        []SummaryRow
	CommonServices *TaskList
	Prices         []PriceLine
	ExtraItems     []ExtraItem
	Notes          []NoteBlock
	Conditions     []string
}

// OfferCustomer is the addressee of the offer.
type OfferCustomer struct {
	Name            string
	Email           string
	Phone           string
	Company         string
	CompanyID       string
	VatID           string
	Address         string
	PropertyAddress string
}

// SummaryRow is one answered question.
type SummaryRow struct {
	Label string
	Value string
}

type TaskList struct {
	Title string
	Items []string
}

// PriceLine is one price of the offer. Lines that are not Billable are
// listed for information and are not charged at the moment.
type PriceLine struct {
	Label    string
	Amount   float64
	Unit     string
	Note     string
	Billable bool
}

// ExtraItem is a fixed-price addition to the regular price.
type ExtraItem struct {
	Label  string
	Amount float64
}

// NoteBlock is a customer note under its own heading.
type NoteBlock struct {
	Heading string
	Text    string
}

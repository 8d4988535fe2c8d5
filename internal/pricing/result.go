package pricing

// AppliedCoefficient is one line of the audit trail. An entry with a
// coefficient of exactly 1 is a fixed addon and Impact holds the amount in
// currency units. Any other entry is a multiplier and Impact holds
// (Coefficient - 1) * 100 as a percentage.
type AppliedCoefficient struct {
	Field       string  `json:"field"`
	Label       string  `json:"label"`
	Coefficient float64 `json:"coefficient"`
	Impact      float64 `json:"impact"`
}

// IsAddon reports whether the entry records a fixed addon.
func (a AppliedCoefficient) IsAddon() bool { return a.Coefficient == 1 }

// CalculationDetails explains how the regular price was reached.
type CalculationDetails struct {
	BasePrice           float64              `json:"basePrice"`
	AppliedCoefficients []AppliedCoefficient `json:"appliedCoefficients"`
	FinalCoefficient    float64              `json:"finalCoefficient"`
	TotalFixedAddons    float64              `json:"totalFixedAddons,omitempty"`
}

// CalculationResult is the outcome of one price calculation. For hourly
// services RegularCleaningPrice and TotalMonthlyPrice hold the hourly rate.
type CalculationResult struct {
	RegularCleaningPrice     float64            `json:"regularCleaningPrice"`
	GeneralCleaningPrice     *float64           `json:"generalCleaningPrice,omitempty"`
	GeneralCleaningFrequency string             `json:"generalCleaningFrequency,omitempty"`
	TotalMonthlyPrice        float64            `json:"totalMonthlyPrice"`
	HourlyRate               *float64           `json:"hourlyRate,omitempty"`
	MinimumHours             *float64           `json:"minimumHours,omitempty"`
	WinterServiceFee         *float64           `json:"winterServiceFee,omitempty"`
	WinterCalloutFee         *float64           `json:"winterCalloutFee,omitempty"`
	TransportFee             *float64           `json:"transportFee,omitempty"`
	Region                   string             `json:"region,omitempty"`
	OrderID                  string             `json:"orderId"`
	CalculationDetails       CalculationDetails `json:"calculationDetails"`
}

// Breakdown is the level of detail a stored calculation carries: either the
// full audit trail or only the summary figures.
type Breakdown interface {
	isBreakdown()
}

// FullBreakdown carries the complete audit trail.
type FullBreakdown struct {
	Details CalculationDetails
}

// SummaryBreakdown carries only the figures needed to price; the audit trail
// has to be reconstructed from the form answers.
type SummaryBreakdown struct {
	BasePrice        float64
	FinalCoefficient float64
	TotalFixedAddons float64
}

func (FullBreakdown) isBreakdown()    {}
func (SummaryBreakdown) isBreakdown() {}

// BreakdownOf classifies stored details. An empty audit trail means the
// trail was left out, never that nothing applied: every calculation records
// at least its locality decision.
func BreakdownOf(d CalculationDetails) Breakdown {
	if len(d.AppliedCoefficients) == 0 {
		return SummaryBreakdown{
			BasePrice:        d.BasePrice,
			FinalCoefficient: d.FinalCoefficient,
			TotalFixedAddons: d.TotalFixedAddons,
		}
	}
	return FullBreakdown{Details: d}
}

// Summarize drops the audit trail, keeping the summary figures.
func Summarize(d CalculationDetails) SummaryBreakdown {
	return SummaryBreakdown{
		BasePrice:        d.BasePrice,
		FinalCoefficient: d.FinalCoefficient,
		TotalFixedAddons: d.TotalFixedAddons,
	}
}

// Details converts the summary back into details with an empty trail.
func (s SummaryBreakdown) Details() CalculationDetails {
	return CalculationDetails{
		BasePrice:           s.BasePrice,
		AppliedCoefficients: nil,
		FinalCoefficient:    s.FinalCoefficient,
		TotalFixedAddons:    s.TotalFixedAddons,
	}
}

func floatPtr(v float64) *float64 { return &v }

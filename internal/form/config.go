package form

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateFieldID = errors.New("duplicate field id")

// Strategy selects the pricing path for a service.
type Strategy string

const (
	StrategyGeneric Strategy = "generic"
	StrategyOffice  Strategy = "office"
)

// Billing is the service category as far as pricing and scheduling go.
type Billing string

const (
	BillingMonthly Billing = "monthly"
	BillingHourly  Billing = "hourly"
)

// Section is an ordered group of fields shown on one form step.
type Section struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// CommonServices is a display-only list of tasks included in the service.
type CommonServices struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// PricingMode lets one field replace the base price entirely.
type PricingMode struct {
	Field      string             `json:"field"`
	BasePrices map[string]float64 `json:"basePrices"`
}

// HourlyPricing describes the minimum-hours field of an hourly service.
// The field informs MinimumHours and never scales the hourly rate.
type HourlyPricing struct {
	MinimumHoursField string             `json:"minimumHoursField"`
	MinimumHours      map[string]float64 `json:"minimumHours"`
}

// GeneralCleaningPricing declares the separately priced general cleaning
// stream: its opt-in, its type selection and the fields composing its
// coefficient chain. Exclusive fields only feed this stream.
type GeneralCleaningPricing struct {
	OptInField        string             `json:"optInField"`
	OptInValue        string             `json:"optInValue"`
	TypeField         string             `json:"typeField"`
	BasePrices        map[string]float64 `json:"basePrices"`
	CoefficientFields []string           `json:"coefficientFields"`
	ExclusiveFields   []string           `json:"exclusiveFields,omitempty"`
}

// WinterPricing declares the opt-in for winter maintenance.
type WinterPricing struct {
	OptInField string `json:"optInField"`
	OptInValue string `json:"optInValue"`
}

// Config is the immutable form configuration of one service type.
type Config struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Sections       []Section       `json:"sections"`
	BasePrice      float64         `json:"basePrice"`
	Conditions     []string        `json:"conditions,omitempty"`
	CommonServices *CommonServices `json:"commonServices,omitempty"`

	Strategy        Strategy                `json:"strategy"`
	Billing         Billing                 `json:"billing"`
	PostalCodeField string                  `json:"postalCodeField,omitempty"`
	NoteField       string                  `json:"noteField,omitempty"`
	PricingMode     *PricingMode            `json:"pricingMode,omitempty"`
	Hourly          *HourlyPricing          `json:"hourly,omitempty"`
	GeneralCleaning *GeneralCleaningPricing `json:"generalCleaning,omitempty"`
	Winter          *WinterPricing          `json:"winter,omitempty"`
}

// IsHourly reports whether the service is priced per hour.
func (c *Config) IsHourly() bool { return c.Billing == BillingHourly }

// Fields returns every field in configuration order, descending into
// conditional groups.
func (c *Config) Fields() []Field {
	var out []Field
	for _, s := range c.Sections {
		out = appendFields(out, s.Fields)
	}
	return out
}

func appendFields(out []Field, fields []Field) []Field {
	for _, f := range fields {
		out = append(out, f)
		if cond, ok := f.(*Conditional); ok {
			out = appendFields(out, cond.Fields)
		}
	}
	return out
}

// VisibleFields returns the fields shown for the given answers: conditional
// groups are entered only when their condition holds.
func (c *Config) VisibleFields(data Data) []Field {
	var out []Field
	for _, s := range c.Sections {
		out = appendVisible(out, s.Fields, data)
	}
	return out
}

func appendVisible(out []Field, fields []Field, data Data) []Field {
	for _, f := range fields {
		cond, ok := f.(*Conditional)
		if !ok {
			out = append(out, f)
			continue
		}
		if cond.Condition.Evaluate(data) {
			out = appendVisible(out, cond.Fields, data)
		}
	}
	return out
}

// Field finds a field by id anywhere in the configuration.
func (c *Config) Field(id string) (Field, bool) {
	for _, f := range c.Fields() {
		if f.FieldID() == id {
			return f, true
		}
	}
	return nil, false
}

// Label returns the human label of a field, falling back to its id.
func (c *Config) Label(id string) string {
	f, ok := c.Field(id)
	if !ok {
		return id
	}
	switch f := f.(type) {
	case *Choice:
		return f.Label
	case *Input:
		return f.Label
	case *Alert:
		if f.Title != "" {
			return f.Title
		}
	}
	return id
}

// Effect looks up the pricing contribution of an answer. Unknown fields and
// values are neutral.
func (c *Config) Effect(fieldID string, v Value) Effect {
	f, ok := c.Field(fieldID)
	if !ok || v.IsEmpty() {
		return Neutral
	}
	return effectOf(f, v)
}

// DisplayValue renders an answer with option labels where the field has them.
func (c *Config) DisplayValue(fieldID string, v Value) string {
	f, ok := c.Field(fieldID)
	if !ok {
		return v.String()
	}
	choice, ok := f.(*Choice)
	if !ok {
		return v.String()
	}
	values := v.Values()
	labels := make([]string, 0, len(values))
	for _, val := range values {
		if opt, ok := choice.Option(val); ok {
			labels = append(labels, opt.Label)
			continue
		}
		labels = append(labels, val)
	}
	return strings.Join(labels, ", ")
}

// BasePriceFor applies the pricing-mode override to the configured base price.
func (c *Config) BasePriceFor(data Data) float64 {
	if c.PricingMode != nil {
		if price, ok := c.PricingMode.BasePrices[data.Get(c.PricingMode.Field)]; ok {
			return price
		}
	}
	return c.BasePrice
}

// PricedElsewhere reports whether a field never feeds the regular price:
// the postal code is priced through the region and exclusive general
// cleaning fields only feed that stream.
func (c *Config) PricedElsewhere(fieldID string) bool {
	if fieldID == c.PostalCodeField {
		return true
	}
	return c.GeneralCleaning != nil && containsString(c.GeneralCleaning.ExclusiveFields, fieldID)
}

// RateExcluded reports whether a field is shown in the audit trail of an
// hourly rate without scaling it.
func (c *Config) RateExcluded(fieldID string) bool {
	return c.IsHourly() && c.Hourly != nil && fieldID == c.Hourly.MinimumHoursField
}

// Visible reports whether a field is shown for the given answers.
func (c *Config) Visible(fieldID string, data Data) bool {
	for _, f := range c.VisibleFields(data) {
		if f.FieldID() == fieldID {
			return true
		}
	}
	return false
}

// Validate checks that field ids are unique.
func (c *Config) Validate() error {
	seen := make(map[string]struct{})
	for _, f := range c.Fields() {
		id := f.FieldID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: %w: %s", c.ID, ErrDuplicateFieldID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

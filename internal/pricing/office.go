package pricing

import (
	"fmt"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
)

// RequiredFieldError reports a missing answer the office price cannot be
// computed without. Concept is the Czech name shown to the customer.
type RequiredFieldError struct {
	Field   string
	Concept string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("Chybí povinný údaj: %s", e.Concept)
}

// OfficeTables are the coefficient tables of the office cleaning price.
// Area bands have a separate table for daily cleaning.
type OfficeTables struct {
	Frequency    map[string]float64
	Duration     map[string]float64
	AreaStandard map[string]float64
	AreaDaily    map[string]float64
	FloorType    map[string]float64
	// Toggles holds the coefficient a yes/no service adds when answered "yes".
	Toggles map[string]float64
}

const dailyFrequency = "daily"

// DefaultOfficeTables returns the current office price list.
func DefaultOfficeTables() OfficeTables {
	return OfficeTables{
		Frequency: map[string]float64{
			"daily":     4.2,
			"3x-weekly": 2.7,
			"2x-weekly": 1.9,
			"weekly":    1,
			"biweekly":  0.6,
		},
		Duration: map[string]float64{
			"1h":      1,
			"2h":      1.8,
			"3h":      2.5,
			"4h":      3.2,
			"over-4h": 4,
		},
		AreaStandard: map[string]float64{
			"up-to-50": 1,
			"50-100":   1.5,
			"100-200":  2.2,
			"200-300":  3,
			"over-300": 3.8,
		},
		AreaDaily: map[string]float64{
			"up-to-50": 1,
			"50-100":   1.35,
			"100-200":  1.9,
			"200-300":  2.5,
			"over-300": 3.1,
		},
		FloorType: map[string]float64{
			"hard":   1,
			"carpet": 1.05,
			"mixed":  1.03,
		},
		Toggles: map[string]float64{
			form.OfficeKitchen:      1.1,
			form.OfficeBathrooms:    1.15,
			form.OfficeWindows:      1.1,
			form.OfficeWasteSorting: 1.03,
			form.OfficeConsumables:  1.05,
		},
	}
}

type requirement struct {
	field   string
	concept string
}

// officeRequired lists the answers the office price needs, in form order.
// The sizing answer depends on the chosen calculation method.
func officeRequired(data form.Data) []requirement {
	sizing := requirement{form.OfficeDuration, "délka úklidu"}
	if data.Get(form.OfficeCalculationMethod) == form.MethodArea {
		sizing = requirement{form.OfficeArea, "plocha kanceláří"}
	}
	return []requirement{
		{form.OfficeFrequency, "četnost úklidu"},
		{form.OfficeCalculationMethod, "způsob výpočtu ceny"},
		sizing,
		{form.OfficeFloorType, "typ podlahy"},
		{form.OfficeKitchen, "úklid kuchyňky"},
		{form.OfficeBathrooms, "úklid sociálních zařízení"},
		{form.OfficeWindows, "mytí oken"},
	}
}

func checkOfficeRequired(data form.Data) error {
	for _, r := range officeRequired(data) {
		if !data.Has(r.field) {
			return &RequiredFieldError{Field: r.field, Concept: r.concept}
		}
	}
	return nil
}

// officeWalk prices office cleaning from the lookup tables instead of the
// option coefficients of the form.
func (e *Engine) officeWalk(cfg *form.Config, data form.Data, start tally) (tally, error) {
	if err := checkOfficeRequired(data); err != nil {
		return tally{}, err
	}

	tables := e.office
	frequency := data.Get(form.OfficeFrequency)

	lookup := func(t tally, field string, table map[string]float64) tally {
		value := data[field]
		coefficient, ok := table[value.String()]
		if !ok {
			return t
		}
		return t.multiply(field, entryLabel(cfg.Label(field), []string{cfg.DisplayValue(field, value)}), coefficient)
	}

	t := lookup(start, form.OfficeFrequency, tables.Frequency)

	if data.Get(form.OfficeCalculationMethod) == form.MethodArea {
		area := tables.AreaStandard
		if frequency == dailyFrequency {
			area = tables.AreaDaily
		}
		t = lookup(t, form.OfficeArea, area)
	} else {
		t = lookup(t, form.OfficeDuration, tables.Duration)
	}

	t = lookup(t, form.OfficeFloorType, tables.FloorType)

	for _, field := range []string{
		form.OfficeKitchen,
		form.OfficeBathrooms,
		form.OfficeWindows,
		form.OfficeWasteSorting,
		form.OfficeConsumables,
	} {
		if data.Get(field) != "yes" {
			continue
		}
		if coefficient, ok := tables.Toggles[field]; ok {
			t = t.multiply(field, cfg.Label(field), coefficient)
		}
	}
	return t, nil
}

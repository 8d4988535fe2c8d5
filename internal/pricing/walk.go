package pricing

import (
	"strings"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
)

// tally is the running state of the coefficient walk. Every step returns a
// new tally; entries are never shared between tallies.
type tally struct {
	coefficient float64
	addons      float64
	entries     []AppliedCoefficient
}

func newTally() tally {
	return tally{coefficient: 1}
}

func (t tally) withEntry(e AppliedCoefficient) []AppliedCoefficient {
	entries := make([]AppliedCoefficient, len(t.entries), len(t.entries)+1)
	copy(entries, t.entries)
	return append(entries, e)
}

// multiply scales the running coefficient and records the multiplier.
func (t tally) multiply(field, label string, coefficient float64) tally {
	if coefficient == 1 {
		return t
	}
	return tally{
		coefficient: t.coefficient * coefficient,
		addons:      t.addons,
		entries: t.withEntry(AppliedCoefficient{
			Field:       field,
			Label:       label,
			Coefficient: coefficient,
			Impact:      percentImpact(coefficient),
		}),
	}
}

// note records a multiplier in the audit trail without pricing it.
func (t tally) note(field, label string, coefficient float64) tally {
	if coefficient == 1 {
		return t
	}
	return tally{
		coefficient: t.coefficient,
		addons:      t.addons,
		entries: t.withEntry(AppliedCoefficient{
			Field:       field,
			Label:       label,
			Coefficient: coefficient,
			Impact:      percentImpact(coefficient),
		}),
	}
}

// add sums a fixed addon and records it with a coefficient of 1.
func (t tally) add(field, label string, amount float64) tally {
	if amount == 0 {
		return t
	}
	return tally{
		coefficient: t.coefficient,
		addons:      t.addons + amount,
		entries: t.withEntry(AppliedCoefficient{
			Field:       field,
			Label:       label,
			Coefficient: 1,
			Impact:      amount,
		}),
	}
}

// flat records a fee that is charged on top of the regular price and
// therefore stays out of the addon total.
func (t tally) flat(field, label string, amount float64) tally {
	return tally{
		coefficient: t.coefficient,
		addons:      t.addons,
		entries: t.withEntry(AppliedCoefficient{
			Field:       field,
			Label:       label,
			Coefficient: 1,
			Impact:      amount,
		}),
	}
}

// locality records the region decision. A neutral region still gets an
// entry so the trail always shows where the price was set.
func (t tally) locality(field, label string, coefficient float64) tally {
	return tally{
		coefficient: t.coefficient * coefficient,
		addons:      t.addons,
		entries: t.withEntry(AppliedCoefficient{
			Field:       field,
			Label:       label,
			Coefficient: coefficient,
			Impact:      localityImpact(coefficient),
		}),
	}
}

func localityImpact(coefficient float64) float64 {
	if coefficient == 1 {
		return 0
	}
	return percentImpact(coefficient)
}

// step folds one answered field into the tally.
func step(cfg *form.Config, t tally, fieldID string, value form.Value) tally {
	if cfg.PricedElsewhere(fieldID) {
		return t
	}

	eff := cfg.Effect(fieldID, value)
	if eff.IsNeutral() {
		return t
	}

	label := entryLabel(cfg.Label(fieldID), eff.Labels)
	if cfg.RateExcluded(fieldID) {
		t = t.note(fieldID, label, eff.Coefficient)
	} else {
		t = t.multiply(fieldID, label, eff.Coefficient)
	}
	return t.add(fieldID, entryLabel(cfg.Label(fieldID), eff.AddonLabels), eff.Addon)
}

// walk folds every answered visible field in configuration order. Answers
// for unknown or hidden fields are ignored.
func walk(cfg *form.Config, data form.Data, start tally) tally {
	t := start
	for _, f := range cfg.VisibleFields(data) {
		value, ok := data[f.FieldID()]
		if !ok || value.IsEmpty() {
			continue
		}
		t = step(cfg, t, f.FieldID(), value)
	}
	return t
}

// chain multiplies the effects of the listed visible fields, ignoring addons.
func chain(cfg *form.Config, data form.Data, fields []string) float64 {
	coefficient := 1.0
	for _, id := range fields {
		value, ok := data[id]
		if !ok || value.IsEmpty() || !cfg.Visible(id, data) {
			continue
		}
		coefficient *= cfg.Effect(id, value).Coefficient
	}
	return coefficient
}

func entryLabel(fieldLabel string, optionLabels []string) string {
	if len(optionLabels) == 0 {
		return fieldLabel
	}
	return fieldLabel + ": " + strings.Join(optionLabels, ", ")
}

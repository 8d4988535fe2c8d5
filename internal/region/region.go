package region

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

var (
	ErrRegionNotFound    = errors.New("region not found")
	ErrInvalidPostalCode = errors.New("invalid postal code")
)

// Region is a priced locality.
type Region struct {
	Value       string   `json:"value"`
	Label       string   `json:"label"`
	Coefficient float64  `json:"coefficient"`
	ZipPrefixes []string `json:"-"`
}

// Option is the public shape of a region.
type Option struct {
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Coefficient float64 `json:"coefficient"`
}

// Resolver maps a postal code to a region key.
type Resolver interface {
	Resolve(ctx context.Context, zipCode string) (string, error)
}

// Table is the set of known regions plus the baseline used when a postal
// code cannot be resolved.
type Table struct {
	Regions  []Region
	Baseline string
}

// DefaultTable returns the Czech regions served by the company.
func DefaultTable() Table {
	return Table{
		Baseline: "praha",
		Regions: []Region{
			{Value: "praha", Label: "Praha", Coefficient: 1, ZipPrefixes: []string{"1"}},
			{Value: "stredocesky", Label: "Středočeský kraj", Coefficient: 0.95, ZipPrefixes: []string{"25", "26", "27", "28", "29"}},
			{Value: "jihomoravsky", Label: "Jihomoravský kraj", Coefficient: 0.9, ZipPrefixes: []string{"60", "61", "62", "63", "64", "65", "66", "67", "68", "69"}},
			{Value: "moravskoslezsky", Label: "Moravskoslezský kraj", Coefficient: 0.85, ZipPrefixes: []string{"70", "71", "72", "73", "74", "79"}},
			{Value: "ostatni", Label: "Ostatní regiony", Coefficient: 0.9, ZipPrefixes: []string{"3", "4", "5", "75", "76", "77", "78"}},
		},
	}
}

// Available lists the regions for display.
func (t Table) Available() []Option {
	out := make([]Option, 0, len(t.Regions))
	for _, r := range t.Regions {
		out = append(out, Option{Value: r.Value, Label: r.Label, Coefficient: r.Coefficient})
	}
	return out
}

// Lookup finds a region by key.
func (t Table) Lookup(key string) (Region, bool) {
	for _, r := range t.Regions {
		if r.Value == key {
			return r, true
		}
	}
	return Region{}, false
}

// BaselineRegion returns the fallback region. A table without a matching
// baseline yields a neutral placeholder.
func (t Table) BaselineRegion() Region {
	if r, ok := t.Lookup(t.Baseline); ok {
		return r
	}
	return Region{Value: t.Baseline, Label: t.Baseline, Coefficient: 1}
}

// Match returns the region whose zip prefix is the longest match.
func (t Table) Match(zipCode string) (Region, bool) {
	var (
		best    Region
		bestLen int
	)
	for _, r := range t.Regions {
		for _, prefix := range r.ZipPrefixes {
			if strings.HasPrefix(zipCode, prefix) && len(prefix) > bestLen {
				best, bestLen = r, len(prefix)
			}
		}
	}
	return best, bestLen > 0
}

// NormalizePostalCode strips whitespace from a Czech PSČ and checks it has
// exactly five digits.
func NormalizePostalCode(zipCode string) (string, error) {
	var b strings.Builder
	for _, r := range zipCode {
		if unicode.IsSpace(r) {
			continue
		}
		if r < '0' || r > '9' {
			return "", ErrInvalidPostalCode
		}
		b.WriteRune(r)
	}
	if b.Len() != 5 {
		return "", ErrInvalidPostalCode
	}
	return b.String(), nil
}

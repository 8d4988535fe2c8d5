package pricing

import "github.com/shopspring/decimal"

// RoundToTenth rounds half away from zero to one decimal place.
func RoundToTenth(v float64) float64 {
	return round(decimal.NewFromFloat(v), 1)
}

// RoundForDisplay rounds a price to the nearest ten currency units, as
// shown to customers.
func RoundForDisplay(v float64) float64 {
	return round(decimal.NewFromFloat(v), -1)
}

func round(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}

// regularPrice is (base * coefficient + addons) to the nearest tenth.
func regularPrice(base, coefficient, addons float64) float64 {
	d := decimal.NewFromFloat(base).
		Mul(decimal.NewFromFloat(coefficient)).
		Add(decimal.NewFromFloat(addons))
	return round(d, 1)
}

// hourlyRate is base * coefficient in whole currency units.
func hourlyRate(base, coefficient float64) float64 {
	d := decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(coefficient))
	return round(d, 0)
}

// percentImpact is (coefficient - 1) * 100.
func percentImpact(coefficient float64) float64 {
	d := decimal.NewFromFloat(coefficient).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return round(d, 4)
}

package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(opts ...pricing.Option) *pricing.Engine {
	opts = append([]pricing.Option{
		pricing.WithOrderIDs(pricing.OrderIDFunc(func() string { return "HH-TEST" })),
	}, opts...)
	return pricing.NewEngine(region.NewStaticResolver(region.DefaultTable()), zap.NewNop(), opts...)
}

func buildingForm() form.Data {
	return form.Data{
		"cleaningFrequency":  form.String("weekly"),
		"aboveGroundFloors":  form.Number(5),
		"undergroundFloors":  form.String("1"),
		"apartmentsPerFloor": form.Number(3),
		"hasElevator":        form.String("yes"),
		"hasHotWater":        form.String("no"),
		"buildingPeriod":     form.String("pre-1945"),
		"generalCleaning":    form.String("no"),
		"winterMaintenance":  form.String("no"),
		"zipCode":            form.String("14000"),
	}
}

func calculate(t *testing.T, e *pricing.Engine, data form.Data, cfg *form.Config) *pricing.CalculationResult {
	t.Helper()
	result, err := e.Calculate(context.Background(), data, cfg)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func entriesFor(result *pricing.CalculationResult, field string) []pricing.AppliedCoefficient {
	var out []pricing.AppliedCoefficient
	for _, e := range result.CalculationDetails.AppliedCoefficients {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// ============================================================================
// Residential Building Scenarios
// ============================================================================

func TestCalculate_ResidentialBuildingBasementSplit(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	base := calculate(t, engine, buildingForm(), cfg)
	p := base.RegularCleaningPrice
	assert.InDelta(t, 2590.2, p, 0.001)

	withGeneral := buildingForm()
	withGeneral["generalCleaning"] = form.String("yes")
	withGeneral["basementCleaning"] = form.String("general")
	general := calculate(t, engine, withGeneral, cfg)
	assert.InDelta(t, pricing.RoundToTenth(p*0.95), general.RegularCleaningPrice, 0.2)

	withGeneral["basementCleaning"] = form.String("regular")
	regular := calculate(t, engine, withGeneral, cfg)
	assert.Equal(t, p, regular.RegularCleaningPrice)
}

func TestCalculate_HiddenAnswersDoNotPrice(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	base := calculate(t, engine, buildingForm(), cfg)

	stale := buildingForm()
	stale["basementCleaning"] = form.String("general")
	stale["basementCleaningDetails"] = form.List("storage", "corridors")
	stale["generalCleaningType"] = form.String("yearly")
	require.False(t, cfg.Visible("basementCleaning", stale))

	result := calculate(t, engine, stale, cfg)

	assert.Equal(t, base.RegularCleaningPrice, result.RegularCleaningPrice)
	assert.Equal(t, base.CalculationDetails.FinalCoefficient, result.CalculationDetails.FinalCoefficient)
	assert.Empty(t, entriesFor(result, "basementCleaning"))
	assert.Nil(t, result.GeneralCleaningPrice)
}

func TestCalculate_GeneralCleaningChainSkipsHiddenBasement(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	data := buildingForm()
	data["undergroundFloors"] = form.String("0")
	data["generalCleaning"] = form.String("yes")
	data["generalCleaningType"] = form.String("twice-yearly")
	without := calculate(t, engine, data, cfg)

	data["basementCleaning"] = form.String("general")
	with := calculate(t, engine, data, cfg)

	require.NotNil(t, without.GeneralCleaningPrice)
	require.NotNil(t, with.GeneralCleaningPrice)
	assert.Equal(t, *without.GeneralCleaningPrice, *with.GeneralCleaningPrice)
	assert.Equal(t, without.RegularCleaningPrice, with.RegularCleaningPrice)
}

func TestCalculate_GeneralCleaningWithoutBasementKeepsRegularPrice(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	data := buildingForm()
	data["aboveGroundFloors"] = form.Number(4)
	data["undergroundFloors"] = form.String("0")
	without := calculate(t, engine, data, cfg)

	data["generalCleaning"] = form.String("yes")
	data["generalCleaningType"] = form.String("twice-yearly")
	data["windowsPerFloor"] = form.String("5-8")
	data["windowType"] = form.String("double")
	with := calculate(t, engine, data, cfg)

	assert.Equal(t, without.RegularCleaningPrice, with.RegularCleaningPrice)
	assert.Equal(t, without.TotalMonthlyPrice, with.TotalMonthlyPrice)
	require.NotNil(t, with.GeneralCleaningPrice)
	assert.Nil(t, without.GeneralCleaningPrice)
}

func TestCalculate_GeneralCleaningPrice(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	data := buildingForm()
	data["generalCleaning"] = form.String("yes")
	data["generalCleaningType"] = form.String("twice-yearly")
	data["windowsPerFloor"] = form.String("5-8")
	data["floorsWithWindows"] = form.String("4-6")
	data["windowType"] = form.String("double")

	result := calculate(t, engine, data, cfg)

	require.NotNil(t, result.GeneralCleaningPrice)
	// 3200 * 1.2 (windows) * 1.3 (double windows) * 1.1 (pre-1945)
	assert.InDelta(t, 5491.2, *result.GeneralCleaningPrice, 0.001)
	assert.Equal(t, "2x ročně", result.GeneralCleaningFrequency)
	assert.Empty(t, entriesFor(result, "windowsPerFloor"), "window fields only price general cleaning")
	assert.NotEqual(t, *result.GeneralCleaningPrice, result.TotalMonthlyPrice)
}

func TestCalculate_GeneralCleaningNeedsType(t *testing.T) {
	engine := newEngine()
	data := buildingForm()
	data["generalCleaning"] = form.String("yes")

	result := calculate(t, engine, data, form.ResidentialBuilding())

	assert.Nil(t, result.GeneralCleaningPrice)
	assert.Empty(t, result.GeneralCleaningFrequency)
}

func TestCalculate_WinterFeesStayOutOfTotals(t *testing.T) {
	engine := newEngine(pricing.WithWinterFees(pricing.WinterFees{ServiceFee: 500, CalloutFee: 1500}))
	cfg := form.ResidentialBuilding()

	without := calculate(t, engine, buildingForm(), cfg)

	data := buildingForm()
	data["winterMaintenance"] = form.String("yes")
	with := calculate(t, engine, data, cfg)

	require.NotNil(t, with.WinterServiceFee)
	require.NotNil(t, with.WinterCalloutFee)
	assert.Equal(t, 500.0, *with.WinterServiceFee)
	assert.Equal(t, 1500.0, *with.WinterCalloutFee)
	assert.Equal(t, without.TotalMonthlyPrice, with.TotalMonthlyPrice)
	assert.Nil(t, without.WinterServiceFee)
}

// ============================================================================
// Region Tests
// ============================================================================

type failingResolver struct{ err error }

func (f failingResolver) Resolve(context.Context, string) (string, error) { return "", f.err }

type blockingResolver struct{}

func (blockingResolver) Resolve(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type panickingResolver struct{}

func (panickingResolver) Resolve(context.Context, string) (string, error) { panic("boom") }

func TestCalculate_RegionCoefficientAndTransportFee(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	data := buildingForm()
	data["zipCode"] = form.String("251 01")
	result := calculate(t, engine, data, cfg)

	assert.Equal(t, "stredocesky", result.Region)

	locality := entriesFor(result, "zipCode")
	require.Len(t, locality, 1)
	assert.Equal(t, 0.95, locality[0].Coefficient)
	assert.InDelta(t, -5.0, locality[0].Impact, 1e-9)
	assert.Equal(t, "Lokalita: Středočeský kraj", locality[0].Label)

	fee := entriesFor(result, "transportFee")
	require.Len(t, fee, 1)
	assert.Equal(t, 1.0, fee[0].Coefficient)
	assert.Equal(t, 300.0, fee[0].Impact)

	require.NotNil(t, result.TransportFee)
	assert.InDelta(t, result.RegularCleaningPrice+300, result.TotalMonthlyPrice, 0.001)
	assert.Zero(t, result.CalculationDetails.TotalFixedAddons)
}

func TestCalculate_InjectedFeeTables(t *testing.T) {
	cfg := form.ResidentialBuilding()
	data := buildingForm()
	data["zipCode"] = form.String("251 01")

	tests := []struct {
		name    string
		fees    pricing.FeeTables
		wantFee *float64
	}{
		{"alternate fee", pricing.FeeTables{form.ServiceResidentialBuilding: {"stredocesky": 450}}, ptr(450)},
		{"no fee for region", pricing.FeeTables{form.ServiceResidentialBuilding: {"ostatni": 900}}, nil},
		{"zero fee is no fee", pricing.FeeTables{form.ServiceResidentialBuilding: {"stredocesky": 0}}, nil},
		{"empty table", pricing.FeeTables{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculate(t, newEngine(pricing.WithFeeTables(tt.fees)), data, cfg)

			if tt.wantFee == nil {
				assert.Nil(t, result.TransportFee)
				assert.Empty(t, entriesFor(result, "transportFee"))
				assert.InDelta(t, result.RegularCleaningPrice, result.TotalMonthlyPrice, 0.001)
				return
			}
			require.NotNil(t, result.TransportFee)
			assert.Equal(t, *tt.wantFee, *result.TransportFee)
			assert.InDelta(t, result.RegularCleaningPrice+*tt.wantFee, result.TotalMonthlyPrice, 0.001)
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestCalculate_RegionFailureFallsBackToBaseline(t *testing.T) {
	tests := []struct {
		name     string
		resolver region.Resolver
	}{
		{"not found", failingResolver{err: region.ErrRegionNotFound}},
		{"network error", failingResolver{err: errors.New("dial tcp: connection refused")}},
		{"timeout", blockingResolver{}},
		{"panic", panickingResolver{}},
		{"skipped", region.SkipResolver{}},
	}

	reference := calculate(t, newEngine(), buildingForm(), form.ResidentialBuilding())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := pricing.NewEngine(tt.resolver, zap.NewNop(),
				pricing.WithResolveTimeout(20*time.Millisecond),
				pricing.WithOrderIDs(pricing.OrderIDFunc(func() string { return "HH-TEST" })),
			)

			start := time.Now()
			result := calculate(t, engine, buildingForm(), form.ResidentialBuilding())

			assert.Less(t, time.Since(start), time.Second)
			assert.Empty(t, result.Region)
			locality := entriesFor(result, "zipCode")
			require.Len(t, locality, 1)
			assert.Equal(t, "Lokalita: Praha", locality[0].Label)
			assert.Equal(t, 1.0, locality[0].Coefficient)
			assert.Equal(t, reference.RegularCleaningPrice, result.RegularCleaningPrice)
			assert.Nil(t, result.TransportFee)
		})
	}
}

func TestCalculate_UnpricedRegionFallsBack(t *testing.T) {
	engine := pricing.NewEngine(failingResolver{}, zap.NewNop(),
		pricing.WithRegionTable(region.Table{Baseline: "home", Regions: []region.Region{{Value: "home", Label: "Domov", Coefficient: 1}}}),
	)

	result := calculate(t, engine, form.Data{"zipCode": form.String("14000")}, form.CommercialSpaces())

	locality := entriesFor(result, "zipCode")
	require.Len(t, locality, 1)
	assert.Equal(t, "Lokalita: Domov", locality[0].Label)
}

// ============================================================================
// Coefficient Composition Tests
// ============================================================================

func checkboxConfig() *form.Config {
	return &form.Config{
		ID:              "test",
		BasePrice:       1000,
		Strategy:        form.StrategyGeneric,
		Billing:         form.BillingMonthly,
		PostalCodeField: "zipCode",
		Sections: []form.Section{{
			ID: "s",
			Fields: []form.Field{
				&form.Choice{Type: form.KindCheckbox, ID: "extras", Label: "Extras", Options: []form.Option{
					{Value: "a", Label: "A", Coefficient: 1.1},
					{Value: "b", Label: "B", Coefficient: 1.2},
					{Value: "c", Label: "C", FixedAddon: 100},
					{Value: "d", Label: "D", FixedAddon: 50},
					{Value: "e", Label: "E", Coefficient: 1.05, FixedAddon: 20},
				}},
			},
		}},
	}
}

func TestCalculate_CheckboxCoefficientsMultiply(t *testing.T) {
	engine := newEngine()

	result := calculate(t, engine, form.Data{"extras": form.List("a", "b")}, checkboxConfig())

	assert.InDelta(t, 1.1*1.2, result.CalculationDetails.FinalCoefficient, 1e-9)
	entries := entriesFor(result, "extras")
	require.Len(t, entries, 1)
	assert.InDelta(t, 1.32, entries[0].Coefficient, 1e-9)
	assert.InDelta(t, 32, entries[0].Impact, 1e-6)
	assert.InDelta(t, 1320, result.RegularCleaningPrice, 0.001)
}

func TestCalculate_CheckboxAddonsSum(t *testing.T) {
	engine := newEngine()

	result := calculate(t, engine, form.Data{"extras": form.List("c", "d")}, checkboxConfig())

	assert.Equal(t, 150.0, result.CalculationDetails.TotalFixedAddons)
	assert.Equal(t, 1.0, result.CalculationDetails.FinalCoefficient)
	assert.InDelta(t, 1150, result.RegularCleaningPrice, 0.001)

	entries := entriesFor(result, "extras")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsAddon())
	assert.Equal(t, 150.0, entries[0].Impact)
	assert.Equal(t, "Extras: C, D", entries[0].Label)
}

func TestCalculate_FieldContributesCoefficientAndAddon(t *testing.T) {
	engine := newEngine()

	result := calculate(t, engine, form.Data{"extras": form.List("e")}, checkboxConfig())

	entries := entriesFor(result, "extras")
	require.Len(t, entries, 2)
	assert.Equal(t, 1.05, entries[0].Coefficient)
	assert.True(t, entries[1].IsAddon())
	assert.Equal(t, 20.0, entries[1].Impact)
	assert.InDelta(t, 1070, result.RegularCleaningPrice, 0.001)
}

func TestCalculate_AuditTrailPartition(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	data := buildingForm()
	data["zipCode"] = form.String("60200")
	data["additionalServices"] = form.List("bins", "mats", "disinfection")

	result := calculate(t, engine, data, cfg)
	require.NotEmpty(t, result.CalculationDetails.AppliedCoefficients)

	var addonTotal float64
	for _, e := range result.CalculationDetails.AppliedCoefficients {
		if e.Coefficient == 1 {
			if e.Field != "zipCode" && e.Field != "transportFee" {
				addonTotal += e.Impact
			}
			continue
		}
		assert.InDelta(t, (e.Coefficient-1)*100, e.Impact, 1e-3, e.Field)
	}
	assert.Equal(t, 400.0, addonTotal)
	assert.Equal(t, 400.0, result.CalculationDetails.TotalFixedAddons)
}

func TestCalculate_NeutralFieldsAreIdempotent(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()
	reference := calculate(t, engine, buildingForm(), cfg)

	tests := []struct {
		name  string
		field string
		value form.Value
	}{
		{"unknown field", "favouriteColour", form.String("blue")},
		{"unknown value", "basementCleaning", form.String("attic")},
		{"neutral option", "apartmentsPerFloor", form.Number(4)},
		{"free text", "notes", form.String("Klíče u správce")},
		{"empty checkbox", "additionalServices", form.List()},
		{"unknown checkbox values", "additionalServices", form.List("helicopter")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildingForm()
			data[tt.field] = tt.value

			got := calculate(t, engine, data, cfg)

			assert.Equal(t, reference, got)
		})
	}
}

// ============================================================================
// Hourly Service Tests
// ============================================================================

func TestCalculate_HourlyRateExcludesSpaceArea(t *testing.T) {
	engine := newEngine()
	cfg := form.OneTimeCleaning()

	data := form.Data{
		"spaceArea":        form.String("over-120"),
		"cleaningType":     form.String("deep"),
		"cleaningSupplies": form.String("ours"),
		"zipCode":          form.String("14000"),
	}
	large := calculate(t, engine, data, cfg)

	data["spaceArea"] = form.String("up-to-50")
	small := calculate(t, engine, data, cfg)

	// 450 * 1.2 * 1.1
	assert.Equal(t, 594.0, large.RegularCleaningPrice)
	assert.Equal(t, large.RegularCleaningPrice, small.RegularCleaningPrice)
	require.NotNil(t, large.HourlyRate)
	assert.Equal(t, large.RegularCleaningPrice, *large.HourlyRate)
	assert.Equal(t, large.RegularCleaningPrice, large.TotalMonthlyPrice)
	assert.InDelta(t, 1.32, large.CalculationDetails.FinalCoefficient, 1e-9)

	require.NotNil(t, large.MinimumHours)
	require.NotNil(t, small.MinimumHours)
	assert.Equal(t, 7.0, *large.MinimumHours)
	assert.Equal(t, 3.0, *small.MinimumHours)

	shown := entriesFor(large, "spaceArea")
	require.Len(t, shown, 1, "excluded field stays visible in the audit trail")
	assert.Equal(t, 1.35, shown[0].Coefficient)
}

func TestCalculate_HourlyAddonsShownSeparately(t *testing.T) {
	engine := newEngine()
	cfg := form.HandymanServices()

	data := form.Data{"serviceKind": form.String("handyman"), "spaceArea": form.String("medium")}
	without := calculate(t, engine, data, cfg)

	oneTime := form.OneTimeCleaning()
	withAddon := calculate(t, engine, form.Data{"additionalTasks": form.List("oven")}, oneTime)

	assert.Equal(t, 449.0, without.RegularCleaningPrice) // 390 * 1.15 = 448.5
	assert.Equal(t, 450.0, withAddon.RegularCleaningPrice)
	assert.Equal(t, 350.0, withAddon.CalculationDetails.TotalFixedAddons)
}

// ============================================================================
// Pricing Mode Tests
// ============================================================================

func TestCalculate_PricingModeReplacesBasePrice(t *testing.T) {
	engine := newEngine()
	cfg := form.HomeCleaning()

	tariff := calculate(t, engine, form.Data{"pricingMode": form.String("monthly-tariff")}, cfg)
	hourly := calculate(t, engine, form.Data{"pricingMode": form.String("hourly-rate")}, cfg)

	assert.Equal(t, 2400.0, tariff.CalculationDetails.BasePrice)
	assert.Equal(t, 380.0, hourly.CalculationDetails.BasePrice)
	assert.Equal(t, 380.0, hourly.RegularCleaningPrice)
	assert.Nil(t, hourly.HourlyRate, "home cleaning is a recurring service")
}

// ============================================================================
// Order ID Tests
// ============================================================================

func TestUUIDOrderIDs(t *testing.T) {
	gen := pricing.UUIDOrderIDs{Now: func() time.Time { return time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC) }}

	a := gen.NewOrderID()
	b := gen.NewOrderID()

	assert.Regexp(t, `^HH-20250305-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestCalculate_OrderIDDoesNotAffectPrice(t *testing.T) {
	engine := pricing.NewEngine(region.NewStaticResolver(region.DefaultTable()), zap.NewNop())
	cfg := form.ResidentialBuilding()

	a := calculate(t, engine, buildingForm(), cfg)
	b := calculate(t, engine, buildingForm(), cfg)

	assert.NotEqual(t, a.OrderID, b.OrderID)
	assert.Equal(t, a.RegularCleaningPrice, b.RegularCleaningPrice)
	assert.Equal(t, a.CalculationDetails, b.CalculationDetails)
}

// ============================================================================
// Rounding Tests
// ============================================================================

func TestRounding(t *testing.T) {
	assert.Equal(t, 2590.2, pricing.RoundToTenth(2590.201152))
	assert.Equal(t, 10.5, pricing.RoundToTenth(10.45))
	assert.Equal(t, 2590.0, pricing.RoundForDisplay(2590.2))
	assert.Equal(t, 2600.0, pricing.RoundForDisplay(2595))
	assert.Equal(t, 0.0, pricing.RoundForDisplay(4.9))
}

package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func officeForm() form.Data {
	return form.Data{
		form.OfficeFrequency:         form.String("weekly"),
		form.OfficeCalculationMethod: form.String(form.MethodHours),
		form.OfficeDuration:          form.String("2h"),
		form.OfficeFloorType:         form.String("carpet"),
		form.OfficeKitchen:           form.String("yes"),
		form.OfficeBathrooms:         form.String("yes"),
		form.OfficeWindows:           form.String("no"),
		"zipCode":                    form.String("11000"),
	}
}

// ============================================================================
// Office Cleaning Tests
// ============================================================================

func TestCalculate_OfficeByDuration(t *testing.T) {
	engine := newEngine()

	result := calculate(t, engine, officeForm(), form.OfficeCleaning())

	// 3000 * 1.8 * 1.05 * 1.1 * 1.15
	assert.InDelta(t, 7172.55, result.RegularCleaningPrice, 0.051)
	assert.InDelta(t, 1.8*1.05*1.1*1.15, result.CalculationDetails.FinalCoefficient, 1e-9)

	duration := entriesFor(result, form.OfficeDuration)
	require.Len(t, duration, 1)
	assert.Equal(t, 1.8, duration[0].Coefficient)
	assert.Equal(t, "Délka jednoho úklidu: 2 hodiny", duration[0].Label)
	assert.Empty(t, entriesFor(result, form.OfficeWindows), "declined services are neutral")
	assert.Empty(t, entriesFor(result, form.OfficeFrequency), "weekly is the baseline frequency")
}

func TestCalculate_OfficeInjectedTables(t *testing.T) {
	tables := pricing.DefaultOfficeTables()
	tables.Duration = map[string]float64{"2h": 2}
	engine := newEngine(pricing.WithOfficeTables(tables))

	result := calculate(t, engine, officeForm(), form.OfficeCleaning())

	duration := entriesFor(result, form.OfficeDuration)
	require.Len(t, duration, 1)
	assert.Equal(t, 2.0, duration[0].Coefficient)
	assert.InDelta(t, 2*1.05*1.1*1.15, result.CalculationDetails.FinalCoefficient, 1e-9)

	tables.Duration = map[string]float64{}
	result = calculate(t, newEngine(pricing.WithOfficeTables(tables)), officeForm(), form.OfficeCleaning())
	assert.Empty(t, entriesFor(result, form.OfficeDuration), "unlisted durations are neutral")
}

func TestCalculate_OfficeAreaTables(t *testing.T) {
	engine := newEngine()
	cfg := form.OfficeCleaning()

	tests := []struct {
		name      string
		frequency string
		want      float64
	}{
		{"daily uses the daily area table", "daily", 1.9},
		{"other frequencies use the standard table", "2x-weekly", 2.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := officeForm()
			delete(data, form.OfficeDuration)
			data[form.OfficeFrequency] = form.String(tt.frequency)
			data[form.OfficeCalculationMethod] = form.String(form.MethodArea)
			data[form.OfficeArea] = form.String("100-200")

			result := calculate(t, engine, data, cfg)

			area := entriesFor(result, form.OfficeArea)
			require.Len(t, area, 1)
			assert.Equal(t, tt.want, area[0].Coefficient)
			assert.Empty(t, entriesFor(result, form.OfficeDuration))
		})
	}
}

func TestCalculate_OfficeMissingRequiredAnswer(t *testing.T) {
	engine := newEngine()
	cfg := form.OfficeCleaning()

	tests := []struct {
		name    string
		mutate  func(form.Data)
		field   string
		message string
	}{
		{
			name:    "frequency",
			mutate:  func(d form.Data) { delete(d, form.OfficeFrequency) },
			field:   form.OfficeFrequency,
			message: "Chybí povinný údaj: četnost úklidu",
		},
		{
			name:    "method",
			mutate:  func(d form.Data) { delete(d, form.OfficeCalculationMethod) },
			field:   form.OfficeCalculationMethod,
			message: "Chybí povinný údaj: způsob výpočtu ceny",
		},
		{
			name:    "duration",
			mutate:  func(d form.Data) { d[form.OfficeDuration] = form.String("") },
			field:   form.OfficeDuration,
			message: "Chybí povinný údaj: délka úklidu",
		},
		{
			name: "area",
			mutate: func(d form.Data) {
				d[form.OfficeCalculationMethod] = form.String(form.MethodArea)
			},
			field:   form.OfficeArea,
			message: "Chybí povinný údaj: plocha kanceláří",
		},
		{
			name:    "floor type",
			mutate:  func(d form.Data) { delete(d, form.OfficeFloorType) },
			field:   form.OfficeFloorType,
			message: "Chybí povinný údaj: typ podlahy",
		},
		{
			name:    "windows",
			mutate:  func(d form.Data) { delete(d, form.OfficeWindows) },
			field:   form.OfficeWindows,
			message: "Chybí povinný údaj: mytí oken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := officeForm()
			tt.mutate(data)

			result, err := engine.Calculate(context.Background(), data, cfg)

			require.Error(t, err)
			assert.Nil(t, result)
			var required *pricing.RequiredFieldError
			require.True(t, errors.As(err, &required))
			assert.Equal(t, tt.field, required.Field)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestCalculate_OfficeTransportFee(t *testing.T) {
	engine := newEngine()

	data := officeForm()
	data["zipCode"] = form.String("30100")
	result := calculate(t, engine, data, form.OfficeCleaning())

	assert.Equal(t, "ostatni", result.Region)
	require.NotNil(t, result.TransportFee)
	assert.Equal(t, 800.0, *result.TransportFee)
	assert.InDelta(t, result.RegularCleaningPrice+800, result.TotalMonthlyPrice, 0.001)
}

// ============================================================================
// Reconstruction Tests
// ============================================================================

func TestBreakdownOf(t *testing.T) {
	full := pricing.CalculationDetails{
		BasePrice:           1800,
		AppliedCoefficients: []pricing.AppliedCoefficient{{Field: "zipCode", Label: "Lokalita: Praha", Coefficient: 1}},
		FinalCoefficient:    1,
	}
	assert.IsType(t, pricing.FullBreakdown{}, pricing.BreakdownOf(full))

	summary := pricing.BreakdownOf(pricing.CalculationDetails{BasePrice: 1800, FinalCoefficient: 1.2})
	require.IsType(t, pricing.SummaryBreakdown{}, summary)
	assert.Equal(t, 1.2, summary.(pricing.SummaryBreakdown).FinalCoefficient)
}

func TestReconstruct_RebuildsAuditTrail(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()
	ctx := context.Background()

	data := buildingForm()
	data["additionalServices"] = form.List("bins")
	original := calculate(t, engine, data, cfg)

	partial := &pricing.CalculationResult{
		CalculationDetails: pricing.Summarize(original.CalculationDetails).Details(),
	}
	rebuilt := engine.Reconstruct(ctx, data, cfg, partial)

	assert.Equal(t, original.CalculationDetails, rebuilt)
}

func TestReconstruct_KeepsStoredFigures(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()

	partial := &pricing.CalculationResult{
		CalculationDetails: pricing.CalculationDetails{BasePrice: 1700, FinalCoefficient: 1.5},
	}
	rebuilt := engine.Reconstruct(context.Background(), buildingForm(), cfg, partial)

	assert.Equal(t, 1700.0, rebuilt.BasePrice)
	assert.Equal(t, 1.5, rebuilt.FinalCoefficient)
	assert.NotEmpty(t, rebuilt.AppliedCoefficients)
}

func TestReconstruct_UnpriceableAnswers(t *testing.T) {
	engine := newEngine()

	partial := &pricing.CalculationResult{
		CalculationDetails: pricing.CalculationDetails{BasePrice: 3000, FinalCoefficient: 2},
	}
	rebuilt := engine.Reconstruct(context.Background(), form.Data{}, form.OfficeCleaning(), partial)

	assert.Equal(t, 3000.0, rebuilt.BasePrice)
	assert.Equal(t, 2.0, rebuilt.FinalCoefficient)
	assert.Empty(t, rebuilt.AppliedCoefficients)
}

func TestExpand(t *testing.T) {
	engine := newEngine()
	cfg := form.ResidentialBuilding()
	ctx := context.Background()
	original := calculate(t, engine, buildingForm(), cfg)

	full := engine.Expand(ctx, pricing.FullBreakdown{Details: original.CalculationDetails}, form.Data{}, cfg)
	assert.Equal(t, original.CalculationDetails, full)

	summary := pricing.Summarize(original.CalculationDetails)
	expanded := engine.Expand(ctx, summary, buildingForm(), cfg)
	assert.Equal(t, original.CalculationDetails, expanded)
}

package hashcodec_test

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/hashcodec"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine() *pricing.Engine {
	return pricing.NewEngine(region.NewStaticResolver(region.DefaultTable()), zap.NewNop(),
		pricing.WithOrderIDs(pricing.OrderIDFunc(func() string { return "HH-20250301-ABCDEF12" })),
	)
}

func buildingAnswers() form.Data {
	return form.Data{
		"cleaningFrequency":  form.String("weekly"),
		"aboveGroundFloors":  form.Number(5),
		"undergroundFloors":  form.String("1"),
		"apartmentsPerFloor": form.Number(3),
		"hasElevator":        form.String("yes"),
		"hasHotWater":        form.String("no"),
		"buildingPeriod":     form.String("pre-1945"),
		"generalCleaning":    form.String("no"),
		"winterMaintenance":  form.String("yes"),
		"additionalServices": form.List("bins", "disinfection"),
		"zipCode":            form.String("25101"),
		"notes":              form.String("Klíče jsou u správce, zvonek č. 3."),
	}
}

func quotePayload(t *testing.T) (*hashcodec.Payload, *form.Config) {
	t.Helper()
	cfg := form.ResidentialBuilding()
	data := buildingAnswers()

	result, err := newEngine().Calculate(context.Background(), data, cfg)
	require.NoError(t, err)

	p := hashcodec.NewPayload(cfg, data, result, "CZK", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))
	start := civil.Date{Year: 2025, Month: time.March, Day: 20}
	p.CalculationData.StartDate = &start
	p.CalculationData.Contact = &hashcodec.Contact{
		FirstName: "Jana",
		LastName:  "Nováková",
		Email:     "jana@example.cz",
		Phone:     "+420 777 123 456",
	}
	p.CalculationData.ConfirmationStepNote = "Prosím volat po 16. hodině."
	return p, cfg
}

func legacyToken(t *testing.T, json string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(json))
}

// ============================================================================
// Round Trip Tests
// ============================================================================

func TestEncodeDecode_RoundTrip(t *testing.T) {
	p, _ := quotePayload(t)

	token, err := hashcodec.Encode(p)
	require.NoError(t, err)

	decoded, err := hashcodec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
	assert.IsType(t, pricing.FullBreakdown{}, decoded.Breakdown())
}

func TestNewPayload(t *testing.T) {
	p, cfg := quotePayload(t)

	assert.Equal(t, cfg.ID, p.ServiceType)
	assert.Equal(t, cfg.Title, p.ServiceTitle)
	assert.Equal(t, p.CalculationData.TotalMonthlyPrice, p.TotalPrice)
	assert.Equal(t, "Klíče jsou u správce, zvonek č. 3.", p.CalculationData.OriginFormNote)
	assert.Equal(t, int64(1740821400000), p.CalculationData.Timestamp)
	assert.Equal(t, "HH-20250301-ABCDEF12", p.CalculationData.OrderID)
}

func TestEncode_IsDeterministicAndURLSafe(t *testing.T) {
	p, _ := quotePayload(t)

	a, err := hashcodec.Encode(p)
	require.NoError(t, err)
	b, err := hashcodec.Encode(p)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Regexp(t, `^h1[A-Za-z0-9_-]+$`, a)
	assert.Equal(t, a, url.QueryEscape(a))
}

func TestEncodeDecode_FormDataKeysAreVerbatim(t *testing.T) {
	p, _ := quotePayload(t)
	p.CalculationData.FormData = form.Data{
		"s":               form.String("short key"),
		"~tilde":          form.String("escaped"),
		"calculationData": form.String("nested name"),
		"flag":            form.Bool(true),
		"count":           form.Number(2.5),
		"empty":           form.List(),
	}

	token, err := hashcodec.Encode(p)
	require.NoError(t, err)
	decoded, err := hashcodec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, p.CalculationData.FormData, decoded.CalculationData.FormData)
}

// ============================================================================
// Optimized Encoding Tests
// ============================================================================

func TestEncodeOptimized_DropsAuditTrail(t *testing.T) {
	p, cfg := quotePayload(t)
	details := p.CalculationData.CalculationDetails
	require.NotEmpty(t, details.AppliedCoefficients)

	full, err := hashcodec.Encode(p)
	require.NoError(t, err)
	optimized, err := hashcodec.EncodeOptimized(p)
	require.NoError(t, err)

	assert.Less(t, len(optimized), len(full))
	assert.Equal(t, details, p.CalculationData.CalculationDetails, "payload must not be modified")

	decoded, err := hashcodec.Decode(optimized)
	require.NoError(t, err)

	summary, ok := decoded.Breakdown().(pricing.SummaryBreakdown)
	require.True(t, ok)
	assert.Equal(t, details.BasePrice, summary.BasePrice)
	assert.Equal(t, details.FinalCoefficient, summary.FinalCoefficient)
	assert.Equal(t, details.TotalFixedAddons, summary.TotalFixedAddons)
	assert.Equal(t, p.CalculationData.RegularCleaningPrice, decoded.CalculationData.RegularCleaningPrice)

	expanded := newEngine().Expand(context.Background(), decoded.Breakdown(), decoded.CalculationData.FormData, cfg)
	assert.Equal(t, details, expanded)
}

// ============================================================================
// Note Tests
// ============================================================================

func TestEncodeDecode_NotesStayDistinct(t *testing.T) {
	tests := []struct {
		name         string
		origin       string
		confirmation string
	}{
		{"both", "Z formuláře", "Z potvrzení"},
		{"origin only", "Z formuláře", ""},
		{"confirmation only", "", "Z potvrzení"},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := quotePayload(t)
			p.CalculationData.OriginFormNote = tt.origin
			p.CalculationData.ConfirmationStepNote = tt.confirmation

			token, err := hashcodec.Encode(p)
			require.NoError(t, err)
			decoded, err := hashcodec.Decode(token)
			require.NoError(t, err)

			assert.Equal(t, tt.origin, decoded.CalculationData.OriginFormNote)
			assert.Equal(t, tt.confirmation, decoded.CalculationData.ConfirmationStepNote)
		})
	}
}

// ============================================================================
// Legacy Token Tests
// ============================================================================

func TestDecode_LegacyToken(t *testing.T) {
	token := legacyToken(t, `{
		"serviceType": "residential-building",
		"serviceTitle": "Úklid společných prostor bytových domů",
		"totalPrice": 2890.2,
		"currency": "CZK",
		"calculationData": {
			"regularCleaningPrice": 2590.2,
			"totalMonthlyPrice": 2890.2,
			"orderId": "HH-OLD",
			"calculationDetails": {"basePrice": 1800, "appliedCoefficients": [], "finalCoefficient": 1.439},
			"formData": {"aboveGroundFloors": 5, "notes": "Poznámka z formuláře"},
			"notes": "Poznámka z potvrzení",
			"timestamp": 1740821400000,
			"startDate": "20. 3. 2025"
		}
	}`)

	decoded, err := hashcodec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "residential-building", decoded.ServiceType)
	assert.Equal(t, 2890.2, decoded.TotalPrice)
	assert.Equal(t, "Poznámka z formuláře", decoded.CalculationData.OriginFormNote)
	assert.Equal(t, "Poznámka z potvrzení", decoded.CalculationData.ConfirmationStepNote)
	assert.Equal(t, form.Number(5), decoded.CalculationData.FormData["aboveGroundFloors"])
	require.NotNil(t, decoded.CalculationData.StartDate)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 20}, *decoded.CalculationData.StartDate)
	assert.IsType(t, pricing.SummaryBreakdown{}, decoded.Breakdown())
}

func TestDecode_LegacyNotesNeverOverwrite(t *testing.T) {
	token := legacyToken(t, `{
		"serviceType": "home-cleaning",
		"calculationData": {
			"formData": {"notes": "z formuláře"},
			"originFormNote": "",
			"confirmationStepNote": "potvrzeno",
			"notes": "stará poznámka"
		}
	}`)

	decoded, err := hashcodec.Decode(token)
	require.NoError(t, err)

	assert.Empty(t, decoded.CalculationData.OriginFormNote)
	assert.Equal(t, "potvrzeno", decoded.CalculationData.ConfirmationStepNote)
}

func TestDecode_TransportDamage(t *testing.T) {
	token := legacyToken(t, `{"serviceType":"one-time-cleaning","calculationData":{"formData":{"spaceArea":"over-120"},"startDate":"2025-03-06T23:00:00.000Z"}}`)

	tests := []struct {
		name  string
		token string
	}{
		{"plain", token},
		{"query escaped", url.QueryEscape(token)},
		{"plus as space", strings.ReplaceAll(token, "+", " ")},
		{"surrounding whitespace", "  " + token + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := hashcodec.Decode(tt.token)
			require.NoError(t, err)
			assert.Equal(t, "one-time-cleaning", decoded.ServiceType)
			require.NotNil(t, decoded.CalculationData.StartDate)
			assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 7}, *decoded.CalculationData.StartDate)
		})
	}
}

func TestDecode_UnreadableStartDateIsDropped(t *testing.T) {
	token := legacyToken(t, `{"serviceType":"home-cleaning","calculationData":{"startDate":"příští týden"}}`)

	decoded, err := hashcodec.Decode(token)
	require.NoError(t, err)
	assert.Nil(t, decoded.CalculationData.StartDate)
}

// ============================================================================
// Invalid Token Tests
// ============================================================================

func TestDecode_InvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"garbage", "not a token at all!"},
		{"compact prefix with garbage", "h1!!!!"},
		{"compact prefix without deflate data", "h1" + base64.RawURLEncoding.EncodeToString([]byte(`{"s":"x"}`))},
		{"empty object", legacyToken(t, `{}`)},
		{"foreign object", legacyToken(t, `{"foo":"bar","items":[1,2,3]}`)},
		{"array", legacyToken(t, `[1,2,3]`)},
		{"null", legacyToken(t, `null`)},
		{"wrong types", legacyToken(t, `{"serviceType":42}`)},
		{"trailing data", legacyToken(t, `{"serviceType":"home-cleaning"} {}`)},
		{"truncated json", legacyToken(t, `{"serviceType":"home-cl`)},
		{"too long", "h1" + strings.Repeat("A", 70000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				decoded *hashcodec.Payload
				err     error
			)
			require.NotPanics(t, func() { decoded, err = hashcodec.Decode(tt.token) })
			assert.Nil(t, decoded)
			assert.ErrorIs(t, err, hashcodec.ErrInvalidToken)
		})
	}
}

func TestDecode_TruncatedCompactToken(t *testing.T) {
	p, _ := quotePayload(t)
	token, err := hashcodec.Encode(p)
	require.NoError(t, err)

	decoded, err := hashcodec.Decode(token[:len(token)/2])

	assert.Nil(t, decoded)
	assert.ErrorIs(t, err, hashcodec.ErrInvalidToken)
}

package hashcodec

import "strings"

// escape prefixes keys that would otherwise be read back as a short key.
const escape = "~"

// schema is the key dictionary of one object level. Nested levels apply to
// object values and to every element of array values. Levels without a
// schema (form answers) are copied verbatim.
type schema struct {
	short  map[string]string
	long   map[string]string
	nested map[string]*schema
}

func newSchema(keys map[string]string, nested map[string]*schema) *schema {
	long := make(map[string]string, len(keys))
	for l, s := range keys {
		long[s] = l
	}
	return &schema{short: keys, long: long, nested: nested}
}

var (
	entrySchema = newSchema(map[string]string{
		"field":       "f",
		"label":       "l",
		"coefficient": "c",
		"impact":      "i",
	}, nil)

	detailsSchema = newSchema(map[string]string{
		"basePrice":           "b",
		"appliedCoefficients": "a",
		"finalCoefficient":    "fc",
		"totalFixedAddons":    "ta",
	}, map[string]*schema{
		"appliedCoefficients": entrySchema,
	})

	contactSchema = newSchema(map[string]string{
		"firstName":      "fn",
		"lastName":       "ln",
		"email":          "e",
		"phone":          "p",
		"companyName":    "cn",
		"companyId":      "ci",
		"vatId":          "vi",
		"street":         "st",
		"city":           "ct",
		"postalCode":     "pc",
		"propertyStreet": "ps",
		"propertyCity":   "py",
	}, nil)

	calculationSchema = newSchema(map[string]string{
		"regularCleaningPrice":     "r",
		"generalCleaningPrice":     "g",
		"generalCleaningFrequency": "gf",
		"totalMonthlyPrice":        "t",
		"hourlyRate":               "h",
		"minimumHours":             "mh",
		"winterServiceFee":         "ws",
		"winterCalloutFee":         "wc",
		"transportFee":             "tf",
		"region":                   "rg",
		"orderId":                  "o",
		"calculationDetails":       "cd",
		"formData":                 "f",
		"timestamp":                "ts",
		"originFormNote":           "on",
		"confirmationStepNote":     "cn",
		"contact":                  "k",
		"startDate":                "sd",
	}, map[string]*schema{
		"calculationDetails": detailsSchema,
		"contact":            contactSchema,
	})

	payloadSchema = newSchema(map[string]string{
		"serviceType":     "s",
		"serviceTitle":    "n",
		"totalPrice":      "p",
		"currency":        "c",
		"calculationData": "d",
	}, map[string]*schema{
		"calculationData": calculationSchema,
	})
)

func (s *schema) shrinkKey(key string) string {
	if short, ok := s.short[key]; ok {
		return short
	}
	if _, taken := s.long[key]; taken || strings.HasPrefix(key, escape) {
		return escape + key
	}
	return key
}

func (s *schema) expandKey(key string) string {
	if strings.HasPrefix(key, escape) {
		return key[len(escape):]
	}
	if long, ok := s.long[key]; ok {
		return long
	}
	return key
}

func (s *schema) child(longKey string) *schema {
	if s == nil {
		return nil
	}
	return s.nested[longKey]
}

// shrink rewrites the keys of a decoded JSON tree to their short forms.
func shrink(v any, s *schema) any {
	if s == nil {
		return v
	}
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[s.shrinkKey(key)] = shrink(value, s.child(key))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = shrink(item, s)
		}
		return out
	default:
		return v
	}
}

// expand is the inverse of shrink.
func expand(v any, s *schema) any {
	if s == nil {
		return v
	}
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			long := s.expandKey(key)
			out[long] = expand(value, s.child(long))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = expand(item, s)
		}
		return out
	default:
		return v
	}
}

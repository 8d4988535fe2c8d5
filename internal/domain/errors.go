package domain

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages maps validator tags to the Czech messages shown next to
// the offending field.
var ValidationMessages = map[string]string{
	"required": "Toto pole je povinné",
	"email":    "Zadejte platnou e-mailovou adresu",
	"max":      "Hodnota je příliš dlouhá",
	"min":      "Hodnota je příliš krátká",
	"len":      "Hodnota nemá správnou délku",
	"numeric":  "Zadejte číslo",
	"oneof":    "Zvolte jednu z nabízených možností",
	"postcode": "Zadejte platné PSČ",
	"date":     "Zadejte platné datum",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Neplatná hodnota: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation     = "validation_error"
	ErrorTypeNotFound       = "not_found"
	ErrorTypeBadRequest     = "bad_request"
	ErrorTypeInvalidToken   = "invalid_token"
	ErrorTypeMissingAnswer  = "missing_answer"
	ErrorTypeConflict       = "conflict"
	ErrorTypeTooManyRequest = "too_many_requests"
	ErrorTypeInternal       = "internal_error"
)

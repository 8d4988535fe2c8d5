package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/calendar"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/logger"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/region"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/service"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies. Tokens are at most 64 KiB.
const maxBodyBytes = 256 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Czech postal code, with or without the space
	_ = v.RegisterValidation("postcode", func(fl validator.FieldLevel) bool {
		_, err := region.NormalizePostalCode(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := calendar.ParseDate(fl.Field().String(), time.UTC)
		return err == nil
	})

	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decodeJSON reads a bounded JSON body into target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(target)
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			errs[fieldPath(fe)] = formatValidationError(fe)
		}
	}

	respondProblem(w, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Chybně vyplněný formulář",
		Status: http.StatusBadRequest,
		Detail: "Některá pole nejsou vyplněna správně",
		Errors: errs,
	})
}

// fieldPath drops the root struct name and any embedded struct from the
// validator namespace, so "SubmitOfferRequest.contact.email" is "contact.email".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	out := parts[:0]
	for _, p := range parts[1:] {
		if p == "UpdateQuoteRequest" {
			continue
		}
		out = append(out, toJSONFieldName(p))
	}
	if len(out) == 0 {
		return toJSONFieldName(fe.Field())
	}
	return strings.Join(out, ".")
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.String {
			return "Maximální délka je " + fe.Param() + " znaků"
		}
	case "min":
		if fe.Kind() == reflect.String {
			return "Minimální délka je " + fe.Param() + " znaků"
		}
	}
	return domain.GetValidationMessage(fe.Tag())
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondProblem(w, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

func respondProblem(w http.ResponseWriter, problem domain.APIError) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}

// respondServiceError maps a service error to its problem response. Anything
// unexpected is logged and reported as a 500 without details.
func respondServiceError(w http.ResponseWriter, r *http.Request, fallback *zap.Logger, err error) {
	var missing *pricing.RequiredFieldError
	switch {
	case errors.As(err, &missing):
		respondProblem(w, domain.APIError{
			Type:   domain.ErrorTypeMissingAnswer,
			Title:  "Chybí povinný údaj",
			Status: http.StatusUnprocessableEntity,
			Detail: missing.Error(),
			Errors: map[string]string{missing.Field: missing.Error()},
		})
	case errors.Is(err, service.ErrInvalidQuote):
		respondProblem(w, domain.APIError{
			Type:   domain.ErrorTypeInvalidToken,
			Title:  "Neplatný odkaz na kalkulaci",
			Status: http.StatusBadRequest,
			Detail: "Kalkulaci nelze načíst, vyplňte prosím formulář znovu.",
		})
	case errors.Is(err, service.ErrMissingEmail):
		respondProblem(w, domain.APIError{
			Type:   domain.ErrorTypeValidation,
			Title:  "Chybně vyplněný formulář",
			Status: http.StatusBadRequest,
			Errors: map[string]string{"contact.email": domain.GetValidationMessage("required")},
		})
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, "Neplatné údaje")
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Služba nebyla nalezena")
	case errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusConflict, "Objednávka již byla odeslána")
	default:
		logger.FromContext(r.Context(), fallback).Error("request failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Interní chyba serveru")
	}
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusTooManyRequests:
		return domain.ErrorTypeTooManyRequest
	default:
		return domain.ErrorTypeInternal
	}
}

package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidQuote is returned for a quote token that cannot be used.
	// Clients restart the form when they get it.
	ErrInvalidQuote = errors.New("invalid quote")

	// ErrMissingEmail is returned when an offer is submitted without a customer email
	ErrMissingEmail = errors.New("customer email is required")
)

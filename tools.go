//go:build tools
// +build tools

// Package tools tracks tool dependencies that are required by the project
// but not directly imported by application code.
package tools

import (
	// swag generates docs/ from the handler annotations
	_ "github.com/swaggo/swag/cmd/swag"
)

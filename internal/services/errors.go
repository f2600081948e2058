package services

import (
	"errors"
	"fmt"
	"strings"

	"ledger-backend/internal/repositories"
)

var (
	// ErrValidation wraps every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is the repositories sentinel, re-exported for handlers.
	ErrNotFound = repositories.ErrNotFound
	// ErrUserNotFound is a login with an unknown username.
	ErrUserNotFound = errors.New("User not found. Please check your username.")
)

// ValidationError lists the required fields that were missing or not numeric.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Please fill in all required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Client deletion steps, in execution order.
const (
	StepPayments  = "client payments"
	StepPurchases = "client purchases"
	StepClient    = "client"
)

// PartialDeleteError reports the client deletion step that failed. With the
// sequential path, the steps before it stay applied.
type PartialDeleteError struct {
	Step string
	Err  error
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("Failed to delete %s: %v", e.Step, e.Err)
}

func (e *PartialDeleteError) Unwrap() error { return e.Err }

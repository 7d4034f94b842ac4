package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCurrencyNotFound indicates that a currency code is not configured.
var ErrCurrencyNotFound = errors.New("currency not found")

// ErrExchangeRateNotFound indicates that no exchange rate row exists at or before
// the requested date. Payroll must never assume a rate, so this aborts the payslip
// being computed.
var ErrExchangeRateNotFound = errors.New("exchange rate not found")

// ErrNoActiveContract indicates that the employee has no active labor contract.
var ErrNoActiveContract = errors.New("no active labor contract")

// ErrPeriodClosed indicates an attempt to modify or re-close a closed payroll period.
var ErrPeriodClosed = errors.New("payroll period is closed")

// ErrMalformedPeriod indicates a period whose date range or payment date is invalid.
var ErrMalformedPeriod = errors.New("malformed payroll period")

// ErrSystemConcept indicates an attempt to modify a structural (system) concept.
var ErrSystemConcept = errors.New("structural concepts are immutable")

// NewValidationError wraps ErrValidation with a human readable reason.
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// NewNotFoundError wraps ErrNotFound with a human readable reason.
func NewNotFoundError(reason string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, reason)
}

package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ParseError reports that an observed page could not be turned into a typed
// record. It carries enough context to skip the affected village for the
// rest of the pass.
type ParseError struct {
	*DomainError
	Page     string
	Selector string
}

func NewParseError(page, selector, message string) *ParseError {
	return &ParseError{
		DomainError: &DomainError{Message: fmt.Sprintf("parse %s (%s): %s", page, selector, message)},
		Page:        page,
		Selector:    selector,
	}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// DriverFatalError marks a browser failure the current pass cannot recover
// from. The executor aborts the pass and restarts the driver.
type DriverFatalError struct {
	*DomainError
	Cause error
}

func NewDriverFatalError(cause error) *DriverFatalError {
	return &DriverFatalError{
		DomainError: &DomainError{Message: fmt.Sprintf("driver failure: %v", cause)},
		Cause:       cause,
	}
}

func (e *DriverFatalError) Unwrap() error {
	return e.Cause
}

// IsDriverFatal reports whether err is (or wraps) a DriverFatalError.
func IsDriverFatal(err error) bool {
	var de *DriverFatalError
	return errors.As(err, &de)
}

// InfeasiblePlanError reports that a planned upgrade can never be paid for:
// some required kind has zero production and the shortage cannot be covered.
type InfeasiblePlanError struct {
	*DomainError
	VillageID int
}

func NewInfeasiblePlanError(villageID int, message string) *InfeasiblePlanError {
	return &InfeasiblePlanError{
		DomainError: &DomainError{Message: message},
		VillageID:   villageID,
	}
}

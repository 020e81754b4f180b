// Package businessflow contains the core business logic and use cases for quotation workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Customer-related errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAccountInactive  = errors.New("account is inactive")

	// Project-related errors
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectAccessDenied = errors.New("project access denied")
	ErrProjectTypeInvalid  = errors.New("project type is invalid")

	// Quote-related errors
	ErrQuoteNotFound          = errors.New("quote not found")
	ErrQuoteAccessDenied      = errors.New("quote access denied")
	ErrDuplicateActiveQuote   = errors.New("an active quote already exists for this project")
	ErrQuoteExpired           = errors.New("quote validity window has passed")
	ErrInvalidQuoteTransition = errors.New("quote status transition not allowed")

	// Bundle pricing errors
	ErrRevenueCategoryNotFound = errors.New("revenue category not found")
	ErrCompanyScaleNotFound    = errors.New("company scale not found")
	ErrBundlePricingNotFound   = errors.New("no base price configured for this combination")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsCustomerNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsProjectNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound)
}

func IsProjectAccessDenied(err error) bool {
	return errors.Is(err, ErrProjectAccessDenied)
}

func IsQuoteNotFound(err error) bool {
	return errors.Is(err, ErrQuoteNotFound)
}

func IsQuoteAccessDenied(err error) bool {
	return errors.Is(err, ErrQuoteAccessDenied)
}

func IsDuplicateActiveQuote(err error) bool {
	return errors.Is(err, ErrDuplicateActiveQuote)
}

func IsQuoteExpired(err error) bool {
	return errors.Is(err, ErrQuoteExpired)
}

func IsInvalidQuoteTransition(err error) bool {
	return errors.Is(err, ErrInvalidQuoteTransition)
}

func IsRevenueCategoryNotFound(err error) bool {
	return errors.Is(err, ErrRevenueCategoryNotFound)
}

func IsCompanyScaleNotFound(err error) bool {
	return errors.Is(err, ErrCompanyScaleNotFound)
}

func IsBundlePricingNotFound(err error) bool {
	return errors.Is(err, ErrBundlePricingNotFound)
}

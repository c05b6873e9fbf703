package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrNotALoanAccount     = errors.New("account is not a loan or lending account")
	ErrIncompleteLoanTerms = errors.New("loan terms are incomplete")
	ErrInvalidOverride     = errors.New("invalid payment override")
	ErrInvalidForecastSpan = errors.New("invalid forecast span")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	ErrCodeNotALoanAccount     = "NOT_A_LOAN_ACCOUNT"
	ErrCodeInvalidOverride     = "INVALID_OVERRIDE"
	ErrCodeInvalidForecastSpan = "INVALID_FORECAST_SPAN"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapAccountNotFound(accountID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAccountNotFound,
		fmt.Sprintf("Account with ID %s not found", accountID),
		ErrAccountNotFound,
	)
}

func WrapNotALoanAccount(accountID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotALoanAccount,
		fmt.Sprintf("Account with ID %s is not a loan or lending account", accountID),
		ErrNotALoanAccount,
	)
}

func WrapInvalidOverride(paymentNumber int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidOverride,
		fmt.Sprintf("Override for payment %d is out of range or empty", paymentNumber),
		ErrInvalidOverride,
	)
}

func WrapInvalidForecastSpan(days int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidForecastSpan,
		fmt.Sprintf("Forecast span of %d days is out of range", days),
		ErrInvalidForecastSpan,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

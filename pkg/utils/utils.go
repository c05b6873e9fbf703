package utils

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/fintrackapp/fintrack/internal/domain"
)

// MonthlyRate converts an annual percentage rate to a monthly decimal rate.
// Formula: annualPercent / 100 / 12
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
}

// CalculateMonthlyPayment calculates the fixed monthly installment for a
// fully amortizing loan.
// Formula: P * r * (1+r)^n / ((1+r)^n - 1), straight-line when the rate is 0.
//
// The power term uses float64; the result goes straight back to decimal for
// all monetary arithmetic.
func CalculateMonthlyPayment(principal decimal.Decimal, annualPercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}

	monthlyRate := MonthlyRate(annualPercent)
	if monthlyRate.IsZero() {
		// Zero-interest: even split.
		return principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	}

	rate := monthlyRate.InexactFloat64()
	factor := math.Pow(1+rate, float64(months))
	payment := principal.InexactFloat64() * rate * factor / (factor - 1)

	// Round to 2 decimal places
	return decimal.NewFromFloat(payment).Round(2)
}

// IsDateOverdue checks if a due date is overdue relative to today
func IsDateOverdue(dueDate, today domain.Date) bool {
	return dueDate.Before(today)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account types
const (
	AccountTypeChecking   = "checking"
	AccountTypeSavings    = "savings"
	AccountTypeCash       = "cash"
	AccountTypeInvestment = "investment"
	AccountTypeProperty   = "property"
	AccountTypeVehicle    = "vehicle"
	AccountTypeLoan       = "loan"
	AccountTypeLending    = "lending"
)

// Account represents a financial account. Loan and lending accounts carry
// the optional loan terms used for schedule generation; all four must be set
// before a schedule can be produced.
type Account struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Type            string           `json:"type" db:"type"`
	Balance         decimal.Decimal  `json:"balance" db:"balance"`
	Currency        string           `json:"currency" db:"currency"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty" db:"principal_amount"`
	InterestRate    *decimal.Decimal `json:"interest_rate,omitempty" db:"interest_rate"`
	DurationMonths  *int             `json:"duration_months,omitempty" db:"duration_months"`
	LoanStartDate   *Date            `json:"loan_start_date,omitempty" db:"loan_start_date"`
	LinkedAccountID *uuid.UUID       `json:"linked_account_id,omitempty" db:"linked_account_id"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// IsLiquid reports whether the account counts as available cash for
// forecasting.
func (a *Account) IsLiquid() bool {
	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCash:
		return true
	}
	return false
}

// IsLoan reports whether the account is a loan or lending account.
func (a *Account) IsLoan() bool {
	return a.Type == AccountTypeLoan || a.Type == AccountTypeLending
}

// HasLoanTerms reports whether all fields required for schedule generation
// are present. A zero interest rate is valid; a missing one is not.
func (a *Account) HasLoanTerms() bool {
	return a.PrincipalAmount != nil &&
		a.InterestRate != nil &&
		a.DurationMonths != nil && *a.DurationMonths > 0 &&
		a.LoanStartDate != nil
}

// DTOs for requests and responses

type CreateAccountRequest struct {
	Name            string           `json:"name" validate:"required"`
	Type            string           `json:"type" validate:"required,oneof=checking savings cash investment property vehicle loan lending"`
	Balance         decimal.Decimal  `json:"balance"`
	Currency        string           `json:"currency" validate:"required,len=3"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestRate    *decimal.Decimal `json:"interest_rate,omitempty"`
	DurationMonths  *int             `json:"duration_months,omitempty" validate:"omitempty,gt=0"`
	LoanStartDate   *Date            `json:"loan_start_date,omitempty"`
	LinkedAccountID *uuid.UUID       `json:"linked_account_id,omitempty"`
}

type ScheduleResponse struct {
	AccountID uuid.UUID           `json:"account_id"`
	Schedule  []*ScheduledPayment `json:"schedule"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeTransfer = "transfer"
)

// Transaction represents a single recorded cash movement. Transfers carry a
// destination account; loan payments may additionally carry the recorded
// principal/interest split, which takes precedence over the computed split
// in the amortization schedule.
type Transaction struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	AccountID       uuid.UUID        `json:"account_id" db:"account_id"`
	ToAccountID     *uuid.UUID       `json:"to_account_id,omitempty" db:"to_account_id"`
	Type            string           `json:"type" db:"type"`
	Amount          decimal.Decimal  `json:"amount" db:"amount"`
	Currency        string           `json:"currency" db:"currency"`
	Date            Date             `json:"date" db:"date"`
	Description     string           `json:"description" db:"description"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty" db:"principal_amount"`
	InterestAmount  *decimal.Decimal `json:"interest_amount,omitempty" db:"interest_amount"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// IsTransfer reports whether the transaction moves money between two
// tracked accounts.
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer && t.ToAccountID != nil
}

type CreateTransactionRequest struct {
	AccountID       uuid.UUID        `json:"account_id" validate:"required"`
	ToAccountID     *uuid.UUID       `json:"to_account_id,omitempty"`
	Type            string           `json:"type" validate:"required,oneof=income expense transfer"`
	Amount          decimal.Decimal  `json:"amount" validate:"required"`
	Currency        string           `json:"currency" validate:"required,len=3"`
	Date            Date             `json:"date" validate:"required"`
	Description     string           `json:"description"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestAmount  *decimal.Decimal `json:"interest_amount,omitempty"`
}

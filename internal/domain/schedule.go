package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Schedule payment statuses
const (
	PaymentStatusUpcoming = "upcoming"
	PaymentStatusPaid     = "paid"
	PaymentStatusOverdue  = "overdue"
)

// ScheduledPayment is one row of a loan amortization schedule. Schedules are
// recomputed from the loan terms on every request and never persisted; only
// the per-index override map is stored.
type ScheduledPayment struct {
	PaymentNumber      int             `json:"payment_number"`
	Date               Date            `json:"date"`
	TotalPayment       decimal.Decimal `json:"total_payment"`
	Principal          decimal.Decimal `json:"principal"`
	Interest           decimal.Decimal `json:"interest"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	Status             string          `json:"status"`
	TransactionID      *uuid.UUID      `json:"transaction_id,omitempty"`
}

// PaymentOverride is a user-supplied correction to a single schedule row.
// Nil fields keep the computed value.
type PaymentOverride struct {
	TotalPayment *decimal.Decimal `json:"total_payment,omitempty" db:"total_payment"`
	Principal    *decimal.Decimal `json:"principal,omitempty" db:"principal"`
	Interest     *decimal.Decimal `json:"interest,omitempty" db:"interest"`
}

// IsEmpty reports whether the override carries no values.
func (o PaymentOverride) IsEmpty() bool {
	return o.TotalPayment == nil && o.Principal == nil && o.Interest == nil
}

// OverrideMap is the persisted sparse mapping from payment number to its
// override.
type OverrideMap map[int]PaymentOverride

type SetOverrideRequest struct {
	TotalPayment *decimal.Decimal `json:"total_payment,omitempty"`
	Principal    *decimal.Decimal `json:"principal,omitempty"`
	Interest     *decimal.Decimal `json:"interest,omitempty"`
}

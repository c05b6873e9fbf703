package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill statuses
const (
	BillStatusUnpaid  = "unpaid"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

// BillPayment is a one-off bill with a due date. Unpaid and overdue bills
// contribute a single expense delta to the balance forecast.
type BillPayment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Currency  string          `json:"currency" db:"currency"`
	DueDate   Date            `json:"due_date" db:"due_date"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateBillRequest struct {
	Name     string          `json:"name" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Currency string          `json:"currency" validate:"required,len=3"`
	DueDate  Date            `json:"due_date" validate:"required"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialGoal is a savings (or expected income) target. One-time goals have
// a single target date; recurring goals contribute monthly from StartDate
// until the remaining shortfall is funded.
type FinancialGoal struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Name                string          `json:"name" db:"name"`
	Amount              decimal.Decimal `json:"amount" db:"amount"`
	CurrentAmount       decimal.Decimal `json:"current_amount" db:"current_amount"`
	Currency            string          `json:"currency" db:"currency"`
	TransactionType     string          `json:"transaction_type" db:"transaction_type"`
	Recurring           bool            `json:"recurring" db:"recurring"`
	TargetDate          *Date           `json:"target_date,omitempty" db:"target_date"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution" db:"monthly_contribution"`
	StartDate           *Date           `json:"start_date,omitempty" db:"start_date"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}

// Shortfall returns the amount still needed to reach the goal, floored at
// zero.
func (g *FinancialGoal) Shortfall() decimal.Decimal {
	remaining := g.Amount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

type CreateGoalRequest struct {
	Name                string          `json:"name" validate:"required"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	CurrentAmount       decimal.Decimal `json:"current_amount"`
	Currency            string          `json:"currency" validate:"required,len=3"`
	TransactionType     string          `json:"transaction_type" validate:"required,oneof=income expense"`
	Recurring           bool            `json:"recurring"`
	TargetDate          *Date           `json:"target_date,omitempty"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	StartDate           *Date           `json:"start_date,omitempty"`
}

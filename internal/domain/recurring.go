package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recurrence frequencies
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// RecurringTransaction is a template for a repeating cash movement. NextDueDate
// tracks the next occurrence still to happen; the scheduler advances it once
// the date passes. DueDateOfMonth pins monthly occurrences to a day of month,
// clamped to the target month's length.
type RecurringTransaction struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	AccountID         uuid.UUID       `json:"account_id" db:"account_id"`
	ToAccountID       *uuid.UUID      `json:"to_account_id,omitempty" db:"to_account_id"`
	Type              string          `json:"type" db:"type"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	Currency          string          `json:"currency" db:"currency"`
	Frequency         string          `json:"frequency" db:"frequency"`
	FrequencyInterval int             `json:"frequency_interval" db:"frequency_interval"`
	StartDate         Date            `json:"start_date" db:"start_date"`
	NextDueDate       Date            `json:"next_due_date" db:"next_due_date"`
	EndDate           *Date           `json:"end_date,omitempty" db:"end_date"`
	DueDateOfMonth    *int            `json:"due_date_of_month,omitempty" db:"due_date_of_month"`
	Description       string          `json:"description" db:"description"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// Interval returns the frequency interval, defaulting to 1 when unset.
func (r *RecurringTransaction) Interval() int {
	if r.FrequencyInterval <= 0 {
		return 1
	}
	return r.FrequencyInterval
}

// NextOccurrence advances an occurrence date by one frequency step. Monthly
// and yearly steps keep the anchor day (DueDateOfMonth when set, otherwise
// the start date's day) and clamp it to each target month independently, so
// a 31st-of-month recurrence lands on Feb 28 and back on Mar 31.
func (r *RecurringTransaction) NextOccurrence(from Date) Date {
	interval := r.Interval()
	switch r.Frequency {
	case FrequencyDaily:
		return from.AddDays(interval)
	case FrequencyWeekly:
		return from.AddDays(7 * interval)
	case FrequencyYearly:
		return from.AddYears(interval).WithDay(r.anchorDay(from))
	default: // monthly
		return from.AddMonths(interval).WithDay(r.anchorDay(from))
	}
}

func (r *RecurringTransaction) anchorDay(from Date) int {
	if r.DueDateOfMonth != nil && *r.DueDateOfMonth >= 1 {
		return *r.DueDateOfMonth
	}
	if r.StartDate.Day > from.Day {
		return r.StartDate.Day
	}
	return from.Day
}

type CreateRecurringRequest struct {
	AccountID         uuid.UUID       `json:"account_id" validate:"required"`
	ToAccountID       *uuid.UUID      `json:"to_account_id,omitempty"`
	Type              string          `json:"type" validate:"required,oneof=income expense transfer"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	Currency          string          `json:"currency" validate:"required,len=3"`
	Frequency         string          `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	FrequencyInterval int             `json:"frequency_interval" validate:"omitempty,gt=0"`
	StartDate         Date            `json:"start_date" validate:"required"`
	EndDate           *Date           `json:"end_date,omitempty"`
	DueDateOfMonth    *int            `json:"due_date_of_month,omitempty" validate:"omitempty,min=1,max=31"`
	Description       string          `json:"description"`
}

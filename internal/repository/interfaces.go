package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackapp/fintrack/internal/domain"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// List retrieves all accounts
	List(ctx context.Context) ([]*domain.Account, error)

	// UpdateBalance sets the current balance of an account
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	// Create creates a new transaction record
	Create(ctx context.Context, tx *domain.Transaction) error

	// ListByAccount retrieves all transactions touching an account,
	// as source or as transfer destination
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error)
}

// RecurringRepository defines the interface for recurring transaction data operations
type RecurringRepository interface {
	// Create creates a new recurring transaction template
	Create(ctx context.Context, recurring *domain.RecurringTransaction) error

	// List retrieves all recurring transaction templates
	List(ctx context.Context) ([]*domain.RecurringTransaction, error)

	// UpdateNextDueDate advances the next due date of a template
	UpdateNextDueDate(ctx context.Context, id uuid.UUID, next domain.Date) error
}

// GoalRepository defines the interface for financial goal data operations
type GoalRepository interface {
	// Create creates a new financial goal
	Create(ctx context.Context, goal *domain.FinancialGoal) error

	// List retrieves all financial goals
	List(ctx context.Context) ([]*domain.FinancialGoal, error)
}

// BillRepository defines the interface for bill payment data operations
type BillRepository interface {
	// Create creates a new bill
	Create(ctx context.Context, bill *domain.BillPayment) error

	// List retrieves all bills
	List(ctx context.Context) ([]*domain.BillPayment, error)

	// MarkOverdue flips unpaid bills with a due date before today to overdue,
	// returning the number of rows changed
	MarkOverdue(ctx context.Context, today domain.Date) (int64, error)
}

// OverrideRepository defines the interface for payment override data operations
type OverrideRepository interface {
	// Upsert stores or replaces the override for one payment number
	Upsert(ctx context.Context, accountID uuid.UUID, paymentNumber int, override domain.PaymentOverride) error

	// Delete removes the override for one payment number
	Delete(ctx context.Context, accountID uuid.UUID, paymentNumber int) error

	// GetByAccount retrieves the sparse override map for a loan account
	GetByAccount(ctx context.Context, accountID uuid.UUID) (domain.OverrideMap, error)
}

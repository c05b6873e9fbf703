// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fintrackapp/fintrack/internal/domain"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) Create(ctx context.Context, recurring *domain.RecurringTransaction) error {
	args := m.Called(ctx, recurring)
	return args.Error(0)
}

func (m *MockRecurringRepository) List(ctx context.Context) ([]*domain.RecurringTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringRepository) UpdateNextDueDate(ctx context.Context, id uuid.UUID, next domain.Date) error {
	args := m.Called(ctx, id, next)
	return args.Error(0)
}

type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.FinancialGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) List(ctx context.Context) ([]*domain.FinancialGoal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FinancialGoal), args.Error(1)
}

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Create(ctx context.Context, bill *domain.BillPayment) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) List(ctx context.Context) ([]*domain.BillPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BillPayment), args.Error(1)
}

func (m *MockBillRepository) MarkOverdue(ctx context.Context, today domain.Date) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

type MockOverrideRepository struct {
	mock.Mock
}

func (m *MockOverrideRepository) Upsert(ctx context.Context, accountID uuid.UUID, paymentNumber int, override domain.PaymentOverride) error {
	args := m.Called(ctx, accountID, paymentNumber, override)
	return args.Error(0)
}

func (m *MockOverrideRepository) Delete(ctx context.Context, accountID uuid.UUID, paymentNumber int) error {
	args := m.Called(ctx, accountID, paymentNumber)
	return args.Error(0)
}

func (m *MockOverrideRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (domain.OverrideMap, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.OverrideMap), args.Error(1)
}

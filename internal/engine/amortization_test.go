package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackapp/fintrack/internal/domain"
)

func loanAccount(principal, annualRate float64, months int, start domain.Date) *domain.Account {
	p := decimal.NewFromFloat(principal)
	r := decimal.NewFromFloat(annualRate)
	return &domain.Account{
		ID:              uuid.New(),
		Name:            "car loan",
		Type:            domain.AccountTypeLoan,
		Currency:        "EUR",
		PrincipalAmount: &p,
		InterestRate:    &r,
		DurationMonths:  &months,
		LoanStartDate:   &start,
	}
}

func TestGenerateAmortizationSchedule_ZeroRate(t *testing.T) {
	start := domain.NewDate(2024, time.January, 1)
	today := domain.NewDate(2024, time.January, 15)
	account := loanAccount(12000, 0, 12, start)

	schedule := GenerateAmortizationSchedule(account, nil, nil, today)

	require.Len(t, schedule, 12)
	assert.True(t, schedule[0].Principal.Equal(decimal.NewFromInt(1000)),
		"expected 1000, got %v", schedule[0].Principal)
	assert.True(t, schedule[0].Interest.IsZero())
	assert.Equal(t, domain.NewDate(2024, time.February, 1), schedule[0].Date)
	assert.True(t, schedule[11].OutstandingBalance.IsZero(),
		"loan must be fully retired, got %v", schedule[11].OutstandingBalance)

	for i, payment := range schedule {
		assert.Equal(t, i+1, payment.PaymentNumber)
		assert.True(t, payment.TotalPayment.Equal(decimal.NewFromInt(1000)))
	}
}

func TestGenerateAmortizationSchedule_InterestLoanRetiresPrincipal(t *testing.T) {
	start := domain.NewDate(2023, time.June, 1)
	today := domain.NewDate(2023, time.June, 1)
	account := loanAccount(1200, 12, 12, start)

	schedule := GenerateAmortizationSchedule(account, nil, nil, today)

	require.Len(t, schedule, 12)
	// 1200 at 1% monthly
	assert.True(t, schedule[0].Interest.Equal(decimal.NewFromInt(12)),
		"expected 12, got %v", schedule[0].Interest)
	assert.True(t, schedule[11].OutstandingBalance.IsZero(),
		"got %v", schedule[11].OutstandingBalance)

	prev := *account.PrincipalAmount
	for _, payment := range schedule {
		assert.True(t, payment.OutstandingBalance.LessThanOrEqual(prev),
			"balance must never increase: %v then %v", prev, payment.OutstandingBalance)
		assert.False(t, payment.Principal.IsNegative())
		prev = payment.OutstandingBalance
	}
}

func TestGenerateAmortizationSchedule_MissingTermsYieldEmptySchedule(t *testing.T) {
	start := domain.NewDate(2024, time.January, 1)
	today := domain.Today()

	complete := loanAccount(1000, 5, 10, start)

	noRate := *complete
	noRate.InterestRate = nil

	noStart := *complete
	noStart.LoanStartDate = nil

	noPrincipal := *complete
	noPrincipal.PrincipalAmount = nil

	notALoan := *complete
	notALoan.Type = domain.AccountTypeChecking

	for name, account := range map[string]*domain.Account{
		"no rate":      &noRate,
		"no start":     &noStart,
		"no principal": &noPrincipal,
		"not a loan":   &notALoan,
	} {
		assert.Empty(t, GenerateAmortizationSchedule(account, nil, nil, today), name)
	}

	assert.Len(t, GenerateAmortizationSchedule(complete, nil, nil, today), 10)
}

func TestGenerateAmortizationSchedule_StatusProgression(t *testing.T) {
	start := domain.NewDate(2024, time.January, 1)
	today := domain.NewDate(2024, time.June, 15)
	account := loanAccount(12000, 0, 12, start)

	schedule := GenerateAmortizationSchedule(account, nil, nil, today)

	// Payments 1-5 fall Feb through Jun 1, all before today
	for _, payment := range schedule[:5] {
		assert.Equal(t, domain.PaymentStatusOverdue, payment.Status, "payment %d", payment.PaymentNumber)
	}
	for _, payment := range schedule[5:] {
		assert.Equal(t, domain.PaymentStatusUpcoming, payment.Status, "payment %d", payment.PaymentNumber)
	}
}

func TestGenerateAmortizationSchedule_RealPaymentMarksRowPaid(t *testing.T) {
	start := domain.NewDate(2024, time.January, 1)
	today := domain.NewDate(2024, time.June, 15)
	linked := uuid.New()
	account := loanAccount(12000, 0, 12, start)
	account.LinkedAccountID = &linked

	principalSplit := decimal.NewFromInt(950)
	interestSplit := decimal.NewFromInt(50)
	loanID := account.ID
	payment := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       linked,
		ToAccountID:     &loanID,
		Type:            domain.TransactionTypeTransfer,
		Amount:          decimal.NewFromInt(1000),
		Currency:        "EUR",
		Date:            domain.NewDate(2024, time.March, 3),
		PrincipalAmount: &principalSplit,
		InterestAmount:  &interestSplit,
	}
	// Second transfer in the same month must be ignored: first found wins
	duplicate := &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   linked,
		ToAccountID: &loanID,
		Type:        domain.TransactionTypeTransfer,
		Amount:      decimal.NewFromInt(400),
		Currency:    "EUR",
		Date:        domain.NewDate(2024, time.March, 20),
	}

	schedule := GenerateAmortizationSchedule(account, []*domain.Transaction{payment, duplicate}, nil, today)

	require.Len(t, schedule, 12)
	row := schedule[1] // payment 2 is due 2024-03-01
	assert.Equal(t, domain.PaymentStatusPaid, row.Status)
	require.NotNil(t, row.TransactionID)
	assert.Equal(t, payment.ID, *row.TransactionID)
	assert.True(t, row.TotalPayment.Equal(decimal.NewFromInt(1000)))
	assert.True(t, row.Principal.Equal(principalSplit))
	assert.True(t, row.Interest.Equal(interestSplit))

	// Outstanding reflects the recorded principal, not the computed one
	assert.True(t, row.OutstandingBalance.Equal(decimal.NewFromInt(10050)),
		"got %v", row.OutstandingBalance)
}

func TestGenerateAmortizationSchedule_OverridePrecedence(t *testing.T) {
	start := domain.NewDate(2024, time.January, 1)
	today := domain.NewDate(2024, time.January, 1)
	account := loanAccount(12000, 0, 12, start)

	overridden := decimal.NewFromInt(500)
	overrides := domain.OverrideMap{
		3: {Principal: &overridden},
	}

	schedule := GenerateAmortizationSchedule(account, nil, overrides, today)

	require.Len(t, schedule, 12)
	assert.True(t, schedule[2].Principal.Equal(overridden))
	assert.True(t, schedule[2].TotalPayment.Equal(decimal.NewFromInt(1000)))
	// Outstanding after payment 3: 12000 - 1000 - 1000 - 500
	assert.True(t, schedule[2].OutstandingBalance.Equal(decimal.NewFromInt(9500)))
}

func TestGenerateAmortizationSchedule_OverrideInterestClampedToTotal(t *testing.T) {
	start := domain.NewDate(2024, time.January, 1)
	account := loanAccount(12000, 0, 12, start)

	badInterest := decimal.NewFromInt(2000)
	overrides := domain.OverrideMap{
		1: {Interest: &badInterest},
	}

	schedule := GenerateAmortizationSchedule(account, nil, overrides, start)

	row := schedule[0]
	assert.True(t, row.Principal.IsZero(), "principal must not go negative, got %v", row.Principal)
	assert.True(t, row.Interest.Equal(decimal.NewFromInt(1000)))
	assert.True(t, row.TotalPayment.Equal(decimal.NewFromInt(1000)))
	// Nothing amortized in period 1
	assert.True(t, row.OutstandingBalance.Equal(decimal.NewFromInt(12000)))
}

func TestGenerateAmortizationSchedule_OverrideClampedToRemainingBalance(t *testing.T) {
	start := domain.NewDate(2024, time.January, 1)
	account := loanAccount(1200, 0, 12, start)

	tooLarge := decimal.NewFromInt(500)
	overrides := domain.OverrideMap{
		12: {TotalPayment: &tooLarge},
	}

	schedule := GenerateAmortizationSchedule(account, nil, overrides, start)

	row := schedule[11]
	assert.True(t, row.TotalPayment.Equal(decimal.NewFromInt(100)),
		"payment must be clamped to the remaining balance, got %v", row.TotalPayment)
	assert.True(t, row.Principal.Equal(decimal.NewFromInt(100)))
	assert.True(t, row.OutstandingBalance.IsZero())
}

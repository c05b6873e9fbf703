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

func liquidAccount(balance float64, currency string) *domain.Account {
	return &domain.Account{
		ID:       uuid.New(),
		Name:     "checking",
		Type:     domain.AccountTypeChecking,
		Balance:  decimal.NewFromFloat(balance),
		Currency: currency,
	}
}

func monthlyExpense(accountID uuid.UUID, amount float64, nextDue domain.Date) *domain.RecurringTransaction {
	return &domain.RecurringTransaction{
		ID:                uuid.New(),
		AccountID:         accountID,
		Type:              domain.TransactionTypeExpense,
		Amount:            decimal.NewFromFloat(amount),
		Currency:          "EUR",
		Frequency:         domain.FrequencyMonthly,
		FrequencyInterval: 1,
		StartDate:         nextDue,
		NextDueDate:       nextDue,
	}
}

func TestGenerateBalanceForecast_NoLiquidAccounts(t *testing.T) {
	loan := &domain.Account{ID: uuid.New(), Type: domain.AccountTypeLoan, Balance: decimal.NewFromInt(5000), Currency: "EUR"}
	today := domain.NewDate(2024, time.January, 1)

	points := GenerateBalanceForecast([]*domain.Account{loan}, nil, nil, nil, today, today.AddDays(30))

	assert.Empty(t, points)
}

func TestGenerateBalanceForecast_StartingValueConvertsCurrencies(t *testing.T) {
	usd := liquidAccount(1000, "USD") // 920 EUR at the static rate
	eur := liquidAccount(500, "EUR")
	today := domain.NewDate(2024, time.January, 1)

	points := GenerateBalanceForecast([]*domain.Account{usd, eur}, nil, nil, nil, today, today.AddDays(9))

	require.Len(t, points, 10)
	assert.Equal(t, today, points[0].Date)
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(1420)),
		"expected 1420, got %v", points[0].Value)
	// No deltas: flat line
	assert.True(t, points[9].Value.Equal(points[0].Value))
}

func TestGenerateBalanceForecast_MonthlyExpenseScenario(t *testing.T) {
	account := liquidAccount(1000, "EUR")
	today := domain.NewDate(2024, time.January, 1)
	expense := monthlyExpense(account.ID, 100, today)

	points := GenerateBalanceForecast([]*domain.Account{account}, []*domain.RecurringTransaction{expense}, nil, nil, today, today.AddDays(59))

	require.Len(t, points, 60)
	// First occurrence lands on day 0, second on Feb 1 (day 31)
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(900)), "got %v", points[0].Value)
	assert.True(t, points[29].Value.Equal(decimal.NewFromInt(900)), "got %v", points[29].Value)
	assert.True(t, points[31].Value.Equal(decimal.NewFromInt(800)), "got %v", points[31].Value)
	assert.True(t, points[59].Value.Equal(decimal.NewFromInt(800)), "got %v", points[59].Value)
}

func TestGenerateBalanceForecast_MonthEndClamp(t *testing.T) {
	account := liquidAccount(1000, "EUR")
	today := domain.NewDate(2023, time.January, 31)
	day := 31
	expense := monthlyExpense(account.ID, 100, today)
	expense.DueDateOfMonth = &day

	points := GenerateBalanceForecast([]*domain.Account{account}, []*domain.RecurringTransaction{expense}, nil, nil, today, today.AddDays(60))

	require.Len(t, points, 61)
	// Jan 31 (day 0), Feb 28 (day 28, clamped), Mar 31 (day 59)
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(900)))
	assert.True(t, points[27].Value.Equal(decimal.NewFromInt(900)))
	assert.True(t, points[28].Value.Equal(decimal.NewFromInt(800)), "February occurrence must clamp to the 28th")
	assert.True(t, points[58].Value.Equal(decimal.NewFromInt(800)))
	assert.True(t, points[59].Value.Equal(decimal.NewFromInt(700)), "March occurrence must return to the 31st")
}

func TestGenerateBalanceForecast_OverdueRecurringFastForwards(t *testing.T) {
	account := liquidAccount(1000, "EUR")
	today := domain.NewDate(2024, time.June, 15)
	// Next due lapsed a month ago; June 10 is also already past
	expense := monthlyExpense(account.ID, 100, domain.NewDate(2024, time.May, 10))

	points := GenerateBalanceForecast([]*domain.Account{account}, []*domain.RecurringTransaction{expense}, nil, nil, today, today.AddDays(30))

	require.Len(t, points, 31)
	// Missed occurrences must not be charged retroactively
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(1000)))
	// First in-window occurrence is July 10, day 25
	assert.True(t, points[24].Value.Equal(decimal.NewFromInt(1000)))
	assert.True(t, points[25].Value.Equal(decimal.NewFromInt(900)))
}

func TestGenerateBalanceForecast_RecurringEndDateStopsOccurrences(t *testing.T) {
	account := liquidAccount(1000, "EUR")
	today := domain.NewDate(2024, time.January, 1)
	expense := monthlyExpense(account.ID, 100, today)
	end := domain.NewDate(2024, time.February, 15)
	expense.EndDate = &end

	points := GenerateBalanceForecast([]*domain.Account{account}, []*domain.RecurringTransaction{expense}, nil, nil, today, today.AddDays(120))

	// Jan 1 and Feb 1 fire; Mar 1 is past the end date
	last := points[len(points)-1]
	assert.True(t, last.Value.Equal(decimal.NewFromInt(800)), "got %v", last.Value)
}

func TestGenerateBalanceForecast_InternalTransfersCancel(t *testing.T) {
	checking := liquidAccount(1000, "EUR")
	savings := liquidAccount(2000, "EUR")
	today := domain.NewDate(2024, time.January, 1)

	savingsID := savings.ID
	transfer := &domain.RecurringTransaction{
		ID:                uuid.New(),
		AccountID:         checking.ID,
		ToAccountID:       &savingsID,
		Type:              domain.TransactionTypeTransfer,
		Amount:            decimal.NewFromInt(300),
		Currency:          "EUR",
		Frequency:         domain.FrequencyMonthly,
		FrequencyInterval: 1,
		StartDate:         today,
		NextDueDate:       today,
	}

	points := GenerateBalanceForecast([]*domain.Account{checking, savings}, []*domain.RecurringTransaction{transfer}, nil, nil, today, today.AddDays(90))

	// Both sides are liquid: moving money between them changes nothing
	for _, point := range points {
		assert.True(t, point.Value.Equal(decimal.NewFromInt(3000)), "day %s: got %v", point.Date, point.Value)
	}
}

func TestGenerateBalanceForecast_TransferToLoanReducesLiquid(t *testing.T) {
	checking := liquidAccount(1000, "EUR")
	loan := &domain.Account{ID: uuid.New(), Type: domain.AccountTypeLoan, Balance: decimal.NewFromInt(5000), Currency: "EUR"}
	today := domain.NewDate(2024, time.January, 1)

	loanID := loan.ID
	repayment := &domain.RecurringTransaction{
		ID:                uuid.New(),
		AccountID:         checking.ID,
		ToAccountID:       &loanID,
		Type:              domain.TransactionTypeTransfer,
		Amount:            decimal.NewFromInt(200),
		Currency:          "EUR",
		Frequency:         domain.FrequencyMonthly,
		FrequencyInterval: 1,
		StartDate:         today,
		NextDueDate:       today,
	}

	points := GenerateBalanceForecast([]*domain.Account{checking, loan}, []*domain.RecurringTransaction{repayment}, nil, nil, today, today.AddDays(40))

	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(800)))
	assert.True(t, points[31].Value.Equal(decimal.NewFromInt(600)), "got %v", points[31].Value)
}

func TestGenerateBalanceForecast_OneTimeGoal(t *testing.T) {
	account := liquidAccount(1000, "EUR")
	today := domain.NewDate(2024, time.January, 1)
	target := today.AddDays(10)

	goal := &domain.FinancialGoal{
		ID:              uuid.New(),
		Name:            "new laptop",
		Amount:          decimal.NewFromInt(500),
		Currency:        "EUR",
		TransactionType: domain.TransactionTypeExpense,
		TargetDate:      &target,
	}

	points := GenerateBalanceForecast([]*domain.Account{account}, nil, []*domain.FinancialGoal{goal}, nil, today, today.AddDays(20))

	assert.True(t, points[9].Value.Equal(decimal.NewFromInt(1000)))
	assert.True(t, points[10].Value.Equal(decimal.NewFromInt(500)))
	assert.True(t, points[20].Value.Equal(decimal.NewFromInt(500)))
}

func TestGenerateBalanceForecast_RecurringGoalStopsAtShortfall(t *testing.T) {
	account := liquidAccount(2000, "EUR")
	today := domain.NewDate(2024, time.January, 1)
	start := today

	goal := &domain.FinancialGoal{
		ID:                  uuid.New(),
		Name:                "emergency fund",
		Amount:              decimal.NewFromInt(1000),
		CurrentAmount:       decimal.NewFromInt(250),
		Currency:            "EUR",
		TransactionType:     domain.TransactionTypeExpense,
		Recurring:           true,
		MonthlyContribution: decimal.NewFromInt(200),
		StartDate:           &start,
	}

	points := GenerateBalanceForecast([]*domain.Account{account}, nil, []*domain.FinancialGoal{goal}, nil, today, today.AddDays(364))

	// Shortfall is 750: 200 + 200 + 200 + 150, then nothing
	last := points[len(points)-1]
	assert.True(t, last.Value.Equal(decimal.NewFromInt(1250)),
		"contributions must sum to exactly the shortfall, got %v", last.Value)

	// Fourth installment is trimmed to 150
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(1800)))
	assert.True(t, points[31].Value.Equal(decimal.NewFromInt(1600)))  // Feb 1
	assert.True(t, points[60].Value.Equal(decimal.NewFromInt(1400)))  // Mar 1
	assert.True(t, points[91].Value.Equal(decimal.NewFromInt(1250)))  // Apr 1
	assert.True(t, points[121].Value.Equal(decimal.NewFromInt(1250))) // May 1
}

func TestGenerateBalanceForecast_FundedGoalContributesNothing(t *testing.T) {
	account := liquidAccount(1000, "EUR")
	today := domain.NewDate(2024, time.January, 1)
	start := today

	goal := &domain.FinancialGoal{
		ID:                  uuid.New(),
		Amount:              decimal.NewFromInt(500),
		CurrentAmount:       decimal.NewFromInt(500),
		Currency:            "EUR",
		TransactionType:     domain.TransactionTypeExpense,
		Recurring:           true,
		MonthlyContribution: decimal.NewFromInt(100),
		StartDate:           &start,
	}

	points := GenerateBalanceForecast([]*domain.Account{account}, nil, []*domain.FinancialGoal{goal}, nil, today, today.AddDays(60))

	for _, point := range points {
		assert.True(t, point.Value.Equal(decimal.NewFromInt(1000)))
	}
}

func TestGenerateBalanceForecast_Bills(t *testing.T) {
	account := liquidAccount(1000, "EUR")
	today := domain.NewDate(2024, time.January, 1)

	unpaid := &domain.BillPayment{ID: uuid.New(), Amount: decimal.NewFromInt(150), Currency: "EUR", DueDate: today.AddDays(5), Status: domain.BillStatusUnpaid}
	paid := &domain.BillPayment{ID: uuid.New(), Amount: decimal.NewFromInt(400), Currency: "EUR", DueDate: today.AddDays(7), Status: domain.BillStatusPaid}
	past := &domain.BillPayment{ID: uuid.New(), Amount: decimal.NewFromInt(75), Currency: "EUR", DueDate: today.AddDays(-3), Status: domain.BillStatusOverdue}

	points := GenerateBalanceForecast([]*domain.Account{account}, nil, nil, []*domain.BillPayment{unpaid, paid, past}, today, today.AddDays(10))

	assert.True(t, points[4].Value.Equal(decimal.NewFromInt(1000)))
	assert.True(t, points[5].Value.Equal(decimal.NewFromInt(850)))
	// Paid and already-lapsed bills contribute nothing
	assert.True(t, points[10].Value.Equal(decimal.NewFromInt(850)))
}

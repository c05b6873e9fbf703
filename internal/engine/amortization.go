// Package engine holds the pure calculation cores: loan amortization and
// balance forecasting. Both are synchronous functions over flat slices with
// an injected "today" so results are reproducible in tests.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/fintrackapp/fintrack/internal/domain"
	"github.com/fintrackapp/fintrack/pkg/utils"
)

type monthKey struct {
	year  int
	month int
}

// GenerateAmortizationSchedule computes the full payment schedule for a loan
// or lending account. The schedule is derived from the loan terms on every
// call; only the override map is user state.
//
// Returns an empty schedule unless principal, interest rate, duration and
// start date are all present. A zero interest rate is valid and yields a
// straight-line schedule.
func GenerateAmortizationSchedule(
	account *domain.Account,
	transactions []*domain.Transaction,
	overrides domain.OverrideMap,
	today domain.Date,
) []*domain.ScheduledPayment {
	if account == nil || !account.IsLoan() || !account.HasLoanTerms() {
		return []*domain.ScheduledPayment{}
	}

	principal := *account.PrincipalAmount
	duration := *account.DurationMonths
	startDate := *account.LoanStartDate
	monthlyRate := utils.MonthlyRate(*account.InterestRate)

	basePayment := utils.CalculateMonthlyPayment(principal, *account.InterestRate, duration)
	realPayments := matchRealPayments(account, transactions)

	schedule := make([]*domain.ScheduledPayment, 0, duration)
	outstanding := principal

	for i := 1; i <= duration; i++ {
		paymentDate := startDate.AddMonths(i)

		interest := outstanding.Mul(monthlyRate).Round(2)
		total := basePayment
		if i == duration {
			// Final installment retires the loan exactly, absorbing the
			// rounding drift accumulated over the term.
			total = outstanding.Add(interest)
		}
		principalPart := total.Sub(interest)

		if override, ok := overrides[i]; ok {
			if override.TotalPayment != nil {
				total = *override.TotalPayment
			}
			if override.Principal != nil {
				principalPart = *override.Principal
			}
			if override.Interest != nil {
				interest = *override.Interest
			}
		}

		// A bad override can claim more interest than the whole payment;
		// never let principal go negative.
		if interest.GreaterThan(total) {
			principalPart = decimal.Zero
			interest = total
		}
		// Final-period safety: the payment can never exceed what is left.
		if outstanding.Add(interest).LessThan(total) {
			total = outstanding.Add(interest)
			principalPart = outstanding
		}

		payment := &domain.ScheduledPayment{
			PaymentNumber: i,
			Date:          paymentDate,
			Status:        domain.PaymentStatusUpcoming,
		}

		key := monthKey{year: paymentDate.Year, month: int(paymentDate.Month)}
		if tx, ok := realPayments[key]; ok {
			payment.Status = domain.PaymentStatusPaid
			payment.TransactionID = &tx.ID
			total = tx.Amount
			if tx.PrincipalAmount != nil {
				principalPart = *tx.PrincipalAmount
			}
			if tx.InterestAmount != nil {
				interest = *tx.InterestAmount
			}
		} else if paymentDate.Before(today) {
			payment.Status = domain.PaymentStatusOverdue
		}

		outstanding = outstanding.Sub(principalPart)
		if outstanding.IsNegative() {
			outstanding = decimal.Zero
		}

		payment.TotalPayment = total.Round(2)
		payment.Principal = principalPart.Round(2)
		payment.Interest = interest.Round(2)
		payment.OutstandingBalance = outstanding.Round(2)
		schedule = append(schedule, payment)
	}

	return schedule
}

// matchRealPayments finds transfer transactions between the loan account and
// its linked account and keeps at most one per calendar month, first found
// wins. These mark schedule rows as paid.
func matchRealPayments(account *domain.Account, transactions []*domain.Transaction) map[monthKey]*domain.Transaction {
	matched := make(map[monthKey]*domain.Transaction)
	for _, tx := range transactions {
		if !tx.IsTransfer() {
			continue
		}
		if !involvesPair(tx, account) {
			continue
		}
		key := monthKey{year: tx.Date.Year, month: int(tx.Date.Month)}
		if _, ok := matched[key]; !ok {
			matched[key] = tx
		}
	}
	return matched
}

func involvesPair(tx *domain.Transaction, account *domain.Account) bool {
	loanID := account.ID
	if tx.AccountID != loanID && *tx.ToAccountID != loanID {
		return false
	}
	if account.LinkedAccountID == nil {
		return true
	}
	linked := *account.LinkedAccountID
	return tx.AccountID == linked || *tx.ToAccountID == linked
}

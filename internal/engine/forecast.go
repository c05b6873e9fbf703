package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackapp/fintrack/internal/domain"
)

// GenerateBalanceForecast projects the combined liquid balance day by day
// from today through end. Recurring transactions, goal contributions and
// unpaid bills are merged into a sparse day-indexed delta map, then the
// balance is integrated forward from the current liquid total. All values
// are in the base currency.
//
// No liquid accounts means there is nothing to project; the result is empty.
func GenerateBalanceForecast(
	accounts []*domain.Account,
	recurring []*domain.RecurringTransaction,
	goals []*domain.FinancialGoal,
	bills []*domain.BillPayment,
	today domain.Date,
	end domain.Date,
) []*domain.ForecastPoint {
	liquid := make(map[uuid.UUID]bool)
	balance := decimal.Zero
	for _, account := range accounts {
		if account.IsLiquid() {
			liquid[account.ID] = true
			balance = balance.Add(domain.ConvertToBase(account.Balance, account.Currency))
		}
	}
	if len(liquid) == 0 || end.Before(today) {
		return []*domain.ForecastPoint{}
	}

	deltas := make(map[domain.Date]decimal.Decimal)
	addDelta := func(date domain.Date, amount decimal.Decimal) {
		deltas[date] = deltas[date].Add(amount)
	}

	for _, r := range recurring {
		applyRecurring(r, liquid, today, end, addDelta)
	}
	for _, g := range goals {
		applyGoal(g, today, end, addDelta)
	}
	for _, b := range bills {
		if b.Status == domain.BillStatusPaid {
			continue
		}
		if b.DueDate.Before(today) || b.DueDate.After(end) {
			continue
		}
		addDelta(b.DueDate, domain.ConvertToBase(b.Amount, b.Currency).Neg())
	}

	points := make([]*domain.ForecastPoint, 0, today.DaysUntil(end)+1)
	for d := today; !d.After(end); d = d.AddDays(1) {
		if delta, ok := deltas[d]; ok {
			balance = balance.Add(delta)
		}
		points = append(points, &domain.ForecastPoint{Date: d, Value: balance})
	}
	return points
}

// applyRecurring records one delta per occurrence of a recurring transaction
// within the window. Overdue occurrences are fast-forwarded to the window
// start without recording anything. Transfers only matter when exactly one
// side is liquid; internal moves cancel out.
func applyRecurring(
	r *domain.RecurringTransaction,
	liquid map[uuid.UUID]bool,
	today, end domain.Date,
	addDelta func(domain.Date, decimal.Decimal),
) {
	amount := domain.ConvertToBase(r.Amount, r.Currency)
	var delta decimal.Decimal
	switch r.Type {
	case domain.TransactionTypeIncome:
		if !liquid[r.AccountID] {
			return
		}
		delta = amount
	case domain.TransactionTypeExpense:
		if !liquid[r.AccountID] {
			return
		}
		delta = amount.Neg()
	case domain.TransactionTypeTransfer:
		fromLiquid := liquid[r.AccountID]
		toLiquid := r.ToAccountID != nil && liquid[*r.ToAccountID]
		if fromLiquid == toLiquid {
			return
		}
		if fromLiquid {
			delta = amount.Neg()
		} else {
			delta = amount
		}
	default:
		return
	}

	occurrence := r.NextDueDate
	if occurrence.IsZero() {
		occurrence = r.StartDate
	}
	for occurrence.Before(today) {
		if r.EndDate != nil && occurrence.After(*r.EndDate) {
			return
		}
		occurrence = r.NextOccurrence(occurrence)
	}
	for !occurrence.After(end) {
		if r.EndDate != nil && occurrence.After(*r.EndDate) {
			return
		}
		addDelta(occurrence, delta)
		occurrence = r.NextOccurrence(occurrence)
	}
}

// applyGoal records goal contributions. A one-time goal is a single signed
// delta at its target date. A recurring goal contributes monthly from its
// start date until the remaining shortfall is funded; the last installment
// is trimmed so the contributions never overshoot the target.
func applyGoal(g *domain.FinancialGoal, today, end domain.Date, addDelta func(domain.Date, decimal.Decimal)) {
	if !g.Recurring {
		if g.TargetDate == nil || !g.TargetDate.After(today) || g.TargetDate.After(end) {
			return
		}
		amount := domain.ConvertToBase(g.Shortfall(), g.Currency)
		if amount.IsZero() {
			return
		}
		if g.TransactionType == domain.TransactionTypeIncome {
			addDelta(*g.TargetDate, amount)
		} else {
			addDelta(*g.TargetDate, amount.Neg())
		}
		return
	}

	if g.StartDate == nil || !g.MonthlyContribution.IsPositive() {
		return
	}
	remaining := g.Shortfall()
	if remaining.IsZero() {
		return
	}

	// Step by whole months from the anchor date so a 31st start clamps in
	// short months without drifting.
	month := 0
	occurrence := *g.StartDate
	for occurrence.Before(today) {
		month++
		occurrence = g.StartDate.AddMonths(month)
	}
	for !occurrence.After(end) && remaining.IsPositive() {
		contribution := g.MonthlyContribution
		if contribution.GreaterThan(remaining) {
			contribution = remaining
		}
		addDelta(occurrence, domain.ConvertToBase(contribution, g.Currency).Neg())
		remaining = remaining.Sub(contribution)
		month++
		occurrence = g.StartDate.AddMonths(month)
	}
}

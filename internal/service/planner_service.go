package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fintrackapp/fintrack/internal/config"
	"github.com/fintrackapp/fintrack/internal/domain"
	"github.com/fintrackapp/fintrack/internal/engine"
	"github.com/fintrackapp/fintrack/internal/repository"
	customError "github.com/fintrackapp/fintrack/pkg/errors"
)

const forecastVersionKey = "forecast:version"

// PlannerService orchestrates persistence around the two calculation
// engines. The engines themselves stay pure; everything with I/O lives here.
type PlannerService struct {
	accountRepo   repository.AccountRepository
	txRepo        repository.TransactionRepository
	recurringRepo repository.RecurringRepository
	goalRepo      repository.GoalRepository
	billRepo      repository.BillRepository
	overrideRepo  repository.OverrideRepository
	redis         *redis.Client
	config        *config.Config
}

func NewPlannerService(
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
	recurringRepo repository.RecurringRepository,
	goalRepo repository.GoalRepository,
	billRepo repository.BillRepository,
	overrideRepo repository.OverrideRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *PlannerService {
	return &PlannerService{
		accountRepo:   accountRepo,
		txRepo:        txRepo,
		recurringRepo: recurringRepo,
		goalRepo:      goalRepo,
		billRepo:      billRepo,
		overrideRepo:  overrideRepo,
		redis:         redisClient,
		config:        cfg,
	}
}

// CreateAccount creates an account. Loan terms may be incomplete; schedule
// generation simply yields an empty schedule until all four are present.
func (s *PlannerService) CreateAccount(ctx context.Context, request *domain.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now()
	account := &domain.Account{
		ID:              uuid.New(),
		Name:            request.Name,
		Type:            request.Type,
		Balance:         request.Balance,
		Currency:        request.Currency,
		PrincipalAmount: request.PrincipalAmount,
		InterestRate:    request.InterestRate,
		DurationMonths:  request.DurationMonths,
		LoanStartDate:   request.LoanStartDate,
		LinkedAccountID: request.LinkedAccountID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateForecast(ctx)
	return account, nil
}

// ListAccounts returns all accounts.
func (s *PlannerService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return accounts, nil
}

// RecordTransaction stores a transaction and applies it to the affected
// account balances. Amounts are converted into each account's own currency.
func (s *PlannerService) RecordTransaction(ctx context.Context, request *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	account, err := s.accountRepo.GetByID(ctx, request.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapAccountNotFound(request.AccountID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	tx := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       request.AccountID,
		ToAccountID:     request.ToAccountID,
		Type:            request.Type,
		Amount:          request.Amount,
		Currency:        request.Currency,
		Date:            request.Date,
		Description:     request.Description,
		PrincipalAmount: request.PrincipalAmount,
		InterestAmount:  request.InterestAmount,
		CreatedAt:       time.Now(),
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	localAmount := domain.Convert(tx.Amount, tx.Currency, account.Currency)
	switch tx.Type {
	case domain.TransactionTypeIncome:
		err = s.accountRepo.UpdateBalance(ctx, account.ID, account.Balance.Add(localAmount))
	case domain.TransactionTypeExpense:
		err = s.accountRepo.UpdateBalance(ctx, account.ID, account.Balance.Sub(localAmount))
	case domain.TransactionTypeTransfer:
		if err = s.accountRepo.UpdateBalance(ctx, account.ID, account.Balance.Sub(localAmount)); err != nil {
			break
		}
		if tx.ToAccountID != nil {
			var target *domain.Account
			target, err = s.accountRepo.GetByID(ctx, *tx.ToAccountID)
			if err != nil {
				break
			}
			credit := domain.Convert(tx.Amount, tx.Currency, target.Currency)
			err = s.accountRepo.UpdateBalance(ctx, target.ID, target.Balance.Add(credit))
		}
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateForecast(ctx)
	return tx, nil
}

// CreateRecurring creates a recurring transaction template. The next due
// date starts at the start date.
func (s *PlannerService) CreateRecurring(ctx context.Context, request *domain.CreateRecurringRequest) (*domain.RecurringTransaction, error) {
	interval := request.FrequencyInterval
	if interval <= 0 {
		interval = 1
	}

	now := time.Now()
	recurring := &domain.RecurringTransaction{
		ID:                uuid.New(),
		AccountID:         request.AccountID,
		ToAccountID:       request.ToAccountID,
		Type:              request.Type,
		Amount:            request.Amount,
		Currency:          request.Currency,
		Frequency:         request.Frequency,
		FrequencyInterval: interval,
		StartDate:         request.StartDate,
		NextDueDate:       request.StartDate,
		EndDate:           request.EndDate,
		DueDateOfMonth:    request.DueDateOfMonth,
		Description:       request.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateForecast(ctx)
	return recurring, nil
}

// CreateGoal creates a financial goal.
func (s *PlannerService) CreateGoal(ctx context.Context, request *domain.CreateGoalRequest) (*domain.FinancialGoal, error) {
	goal := &domain.FinancialGoal{
		ID:                  uuid.New(),
		Name:                request.Name,
		Amount:              request.Amount,
		CurrentAmount:       request.CurrentAmount,
		Currency:            request.Currency,
		TransactionType:     request.TransactionType,
		Recurring:           request.Recurring,
		TargetDate:          request.TargetDate,
		MonthlyContribution: request.MonthlyContribution,
		StartDate:           request.StartDate,
		CreatedAt:           time.Now(),
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateForecast(ctx)
	return goal, nil
}

// CreateBill creates an unpaid bill.
func (s *PlannerService) CreateBill(ctx context.Context, request *domain.CreateBillRequest) (*domain.BillPayment, error) {
	now := time.Now()
	bill := &domain.BillPayment{
		ID:        uuid.New(),
		Name:      request.Name,
		Amount:    request.Amount,
		Currency:  request.Currency,
		DueDate:   request.DueDate,
		Status:    domain.BillStatusUnpaid,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateForecast(ctx)
	return bill, nil
}

// GetLoanSchedule recomputes the amortization schedule for a loan account
// from its terms, real payments and persisted overrides.
func (s *PlannerService) GetLoanSchedule(ctx context.Context, accountID uuid.UUID) ([]*domain.ScheduledPayment, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapAccountNotFound(accountID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if !account.IsLoan() {
		return nil, customError.WrapNotALoanAccount(accountID.String())
	}

	transactions, err := s.txRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	overrides, err := s.overrideRepo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return engine.GenerateAmortizationSchedule(account, transactions, overrides, domain.Today()), nil
}

// SetPaymentOverride stores a correction for one schedule row. The payment
// number must fall inside the loan duration and the override must carry at
// least one value.
func (s *PlannerService) SetPaymentOverride(ctx context.Context, accountID uuid.UUID, paymentNumber int, override domain.PaymentOverride) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapAccountNotFound(accountID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if !account.IsLoan() {
		return customError.WrapNotALoanAccount(accountID.String())
	}

	if override.IsEmpty() || paymentNumber < 1 {
		return customError.WrapInvalidOverride(paymentNumber)
	}
	if account.DurationMonths != nil && paymentNumber > *account.DurationMonths {
		return customError.WrapInvalidOverride(paymentNumber)
	}

	if err := s.overrideRepo.Upsert(ctx, accountID, paymentNumber, override); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// ClearPaymentOverride removes the correction for one schedule row.
func (s *PlannerService) ClearPaymentOverride(ctx context.Context, accountID uuid.UUID, paymentNumber int) error {
	if err := s.overrideRepo.Delete(ctx, accountID, paymentNumber); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// GetBalanceForecast projects the liquid balance over the given number of
// days, serving from the Redis cache when a fresh projection is available.
func (s *PlannerService) GetBalanceForecast(ctx context.Context, days int) ([]*domain.ForecastPoint, error) {
	if days <= 0 {
		days = s.config.Forecast.DefaultDays
	}
	if days > s.config.Forecast.MaxDays {
		return nil, customError.WrapInvalidForecastSpan(days)
	}

	cacheKey := s.forecastCacheKey(ctx, days)
	if cached := s.cachedForecast(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	recurring, err := s.recurringRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	bills, err := s.billRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	today := domain.Today()
	points := engine.GenerateBalanceForecast(accounts, recurring, goals, bills, today, today.AddDays(days-1))

	s.storeForecast(ctx, cacheKey, points)
	return points, nil
}

// MarkOverdueBills flips unpaid bills past their due date to overdue.
// Run daily by the scheduler.
func (s *PlannerService) MarkOverdueBills(ctx context.Context, today domain.Date) (int64, error) {
	count, err := s.billRepo.MarkOverdue(ctx, today)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return count, nil
}

// AdvanceRecurringDueDates rolls every lapsed next-due date forward past
// today by its recurrence step. Run daily by the scheduler.
func (s *PlannerService) AdvanceRecurringDueDates(ctx context.Context, today domain.Date) (int, error) {
	recurring, err := s.recurringRepo.List(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	advanced := 0
	for _, r := range recurring {
		if !r.NextDueDate.Before(today) {
			continue
		}
		next := r.NextDueDate
		for next.Before(today) {
			next = r.NextOccurrence(next)
		}
		if err := s.recurringRepo.UpdateNextDueDate(ctx, r.ID, next); err != nil {
			return advanced, customError.WrapDatabaseError(err)
		}
		advanced++
	}

	if advanced > 0 {
		s.invalidateForecast(ctx)
	}
	return advanced, nil
}

// Forecast cache: keys carry a version counter that mutations bump, so
// invalidation never has to scan; stale entries age out via TTL.

func (s *PlannerService) forecastCacheKey(ctx context.Context, days int) string {
	version := int64(0)
	if s.redis != nil {
		if v, err := s.redis.Get(ctx, forecastVersionKey).Int64(); err == nil {
			version = v
		}
	}
	return fmt.Sprintf("forecast:v%d:%s:%d", version, domain.Today(), days)
}

func (s *PlannerService) cachedForecast(ctx context.Context, key string) []*domain.ForecastPoint {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var points []*domain.ForecastPoint
	if err := json.Unmarshal(data, &points); err != nil {
		logrus.WithError(err).Warn("decoding cached forecast")
		return nil
	}
	return points
}

func (s *PlannerService) storeForecast(ctx context.Context, key string, points []*domain.ForecastPoint) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(points)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.config.Forecast.CacheTTL).Err(); err != nil {
		logrus.WithError(err).Warn("caching forecast")
	}
}

func (s *PlannerService) invalidateForecast(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Incr(ctx, forecastVersionKey).Err(); err != nil {
		logrus.WithError(err).Warn("invalidating forecast cache")
	}
}

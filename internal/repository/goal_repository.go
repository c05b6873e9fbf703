package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fintrackapp/fintrack/internal/domain"
)

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.FinancialGoal) error {
	query := `
		INSERT INTO financial_goals (id, name, amount, current_amount, currency, transaction_type, recurring, target_date, monthly_contribution, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.Name,
		goal.Amount,
		goal.CurrentAmount,
		goal.Currency,
		goal.TransactionType,
		goal.Recurring,
		goal.TargetDate,
		goal.MonthlyContribution,
		goal.StartDate,
		goal.CreatedAt,
	)

	return err
}

func (r *goalRepository) List(ctx context.Context) ([]*domain.FinancialGoal, error) {
	query := `
		SELECT id, name, amount, current_amount, currency, transaction_type, recurring, target_date, monthly_contribution, start_date, created_at
		FROM financial_goals
		ORDER BY created_at
	`

	var goals []*domain.FinancialGoal
	err := r.db.SelectContext(ctx, &goals, query)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

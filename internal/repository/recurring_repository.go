package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fintrackapp/fintrack/internal/domain"
)

type recurringRepository struct {
	db *sqlx.DB
}

func NewRecurringRepository(db *sqlx.DB) RecurringRepository {
	return &recurringRepository{db: db}
}

func (r *recurringRepository) Create(ctx context.Context, recurring *domain.RecurringTransaction) error {
	query := `
		INSERT INTO recurring_transactions (id, account_id, to_account_id, type, amount, currency, frequency, frequency_interval, start_date, next_due_date, end_date, due_date_of_month, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		recurring.ID,
		recurring.AccountID,
		recurring.ToAccountID,
		recurring.Type,
		recurring.Amount,
		recurring.Currency,
		recurring.Frequency,
		recurring.FrequencyInterval,
		recurring.StartDate,
		recurring.NextDueDate,
		recurring.EndDate,
		recurring.DueDateOfMonth,
		recurring.Description,
		recurring.CreatedAt,
		recurring.UpdatedAt,
	)

	return err
}

func (r *recurringRepository) List(ctx context.Context) ([]*domain.RecurringTransaction, error) {
	query := `
		SELECT id, account_id, to_account_id, type, amount, currency, frequency, frequency_interval, start_date, next_due_date, end_date, due_date_of_month, description, created_at, updated_at
		FROM recurring_transactions
		ORDER BY next_due_date
	`

	var recurring []*domain.RecurringTransaction
	err := r.db.SelectContext(ctx, &recurring, query)
	if err != nil {
		return nil, err
	}

	return recurring, nil
}

func (r *recurringRepository) UpdateNextDueDate(ctx context.Context, id uuid.UUID, next domain.Date) error {
	query := `
		UPDATE recurring_transactions
		SET next_due_date = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, next, time.Now())

	return err
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/fintrackapp/fintrack/internal/domain"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, type, balance, currency, principal_amount, interest_rate, duration_months, loan_start_date, linked_account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Type,
		account.Balance,
		account.Currency,
		account.PrincipalAmount,
		account.InterestRate,
		account.DurationMonths,
		account.LoanStartDate,
		account.LinkedAccountID,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, name, type, balance, currency, principal_amount, interest_rate, duration_months, loan_start_date, linked_account_id, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT id, name, type, balance, currency, principal_amount, interest_rate, duration_months, loan_start_date, linked_account_id, created_at, updated_at
		FROM accounts
		ORDER BY created_at
	`

	var accounts []*domain.Account
	err := r.db.SelectContext(ctx, &accounts, query)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, balance, time.Now())

	return err
}

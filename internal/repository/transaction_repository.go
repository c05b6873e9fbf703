package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fintrackapp/fintrack/internal/domain"
)

type transactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, to_account_id, type, amount, currency, date, description, principal_amount, interest_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.AccountID,
		tx.ToAccountID,
		tx.Type,
		tx.Amount,
		tx.Currency,
		tx.Date,
		tx.Description,
		tx.PrincipalAmount,
		tx.InterestAmount,
		tx.CreatedAt,
	)

	return err
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, account_id, to_account_id, type, amount, currency, date, description, principal_amount, interest_amount, created_at
		FROM transactions
		WHERE account_id = $1 OR to_account_id = $1
		ORDER BY date, created_at
	`

	var transactions []*domain.Transaction
	err := r.db.SelectContext(ctx, &transactions, query, accountID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

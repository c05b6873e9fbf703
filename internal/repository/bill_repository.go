package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fintrackapp/fintrack/internal/domain"
)

type billRepository struct {
	db *sqlx.DB
}

func NewBillRepository(db *sqlx.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *domain.BillPayment) error {
	query := `
		INSERT INTO bill_payments (id, name, amount, currency, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.Name,
		bill.Amount,
		bill.Currency,
		bill.DueDate,
		bill.Status,
		bill.CreatedAt,
		bill.UpdatedAt,
	)

	return err
}

func (r *billRepository) List(ctx context.Context) ([]*domain.BillPayment, error) {
	query := `
		SELECT id, name, amount, currency, due_date, status, created_at, updated_at
		FROM bill_payments
		ORDER BY due_date
	`

	var bills []*domain.BillPayment
	err := r.db.SelectContext(ctx, &bills, query)
	if err != nil {
		return nil, err
	}

	return bills, nil
}

func (r *billRepository) MarkOverdue(ctx context.Context, today domain.Date) (int64, error) {
	query := `
		UPDATE bill_payments
		SET status = $1, updated_at = $2
		WHERE status = $3 AND due_date < $4
	`

	result, err := r.db.ExecContext(ctx, query,
		domain.BillStatusOverdue,
		time.Now(),
		domain.BillStatusUnpaid,
		today,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/fintrackapp/fintrack/internal/domain"
)

type overrideRepository struct {
	db *sqlx.DB
}

func NewOverrideRepository(db *sqlx.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

// overrideRow is the storage shape of one override entry; the nullable value
// columns map onto the partial override fields.
type overrideRow struct {
	AccountID     uuid.UUID        `db:"account_id"`
	PaymentNumber int              `db:"payment_number"`
	TotalPayment  *decimal.Decimal `db:"total_payment"`
	Principal     *decimal.Decimal `db:"principal"`
	Interest      *decimal.Decimal `db:"interest"`
}

func (r *overrideRepository) Upsert(ctx context.Context, accountID uuid.UUID, paymentNumber int, override domain.PaymentOverride) error {
	query := `
		INSERT INTO payment_overrides (account_id, payment_number, total_payment, principal, interest, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id, payment_number)
		DO UPDATE SET total_payment = $3, principal = $4, interest = $5, updated_at = $6
	`

	_, err := r.db.ExecContext(ctx, query,
		accountID,
		paymentNumber,
		override.TotalPayment,
		override.Principal,
		override.Interest,
		time.Now(),
	)

	return err
}

func (r *overrideRepository) Delete(ctx context.Context, accountID uuid.UUID, paymentNumber int) error {
	query := `
		DELETE FROM payment_overrides
		WHERE account_id = $1 AND payment_number = $2
	`

	_, err := r.db.ExecContext(ctx, query, accountID, paymentNumber)

	return err
}

func (r *overrideRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (domain.OverrideMap, error) {
	query := `
		SELECT account_id, payment_number, total_payment, principal, interest
		FROM payment_overrides
		WHERE account_id = $1
	`

	var rows []overrideRow
	if err := r.db.SelectContext(ctx, &rows, query, accountID); err != nil {
		return nil, err
	}

	overrides := make(domain.OverrideMap, len(rows))
	for _, row := range rows {
		overrides[row.PaymentNumber] = domain.PaymentOverride{
			TotalPayment: row.TotalPayment,
			Principal:    row.Principal,
			Interest:     row.Interest,
		}
	}

	return overrides, nil
}

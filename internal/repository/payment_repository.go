package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// PaymentRepo stores stub gateway transactions.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

func (r *PaymentRepo) Create(ctx context.Context, tx model.PaymentTransaction) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO payment_transactions (id, user_id, plan, amount_cents, status) VALUES (?,?,?,?,?)",
		tx.ID, tx.UserID, string(tx.Plan), tx.AmountCents, string(tx.Status))
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (r *PaymentRepo) Get(ctx context.Context, id string) (model.PaymentTransaction, error) {
	var (
		tx           model.PaymentTransaction
		plan, status string
		confirmed    sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `SELECT id,user_id,plan,amount_cents,status,created_at,confirmed_at
		FROM payment_transactions WHERE id=? LIMIT 1`, id).
		Scan(&tx.ID, &tx.UserID, &plan, &tx.AmountCents, &status, &tx.CreatedAt, &confirmed)
	if err != nil {
		return model.PaymentTransaction{}, notFound(err)
	}
	tx.Plan = model.Plan(plan)
	tx.Status = model.PaymentStatus(status)
	tx.ConfirmedAt = nullTime(confirmed)
	return tx, nil
}

// MarkConfirmed flips a pending transaction to CONFIRMED. It reports false
// when the transaction was already confirmed.
func (r *PaymentRepo) MarkConfirmed(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE payment_transactions SET status='CONFIRMED', confirmed_at=? WHERE id=? AND status='PENDING'",
		at.UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-manager/internal/model"
)

const transactionColumns = `id, booking_id, amount, transaction_type, category, description, payment_method, transaction_date, created_at, updated_at`

// TransactionRepo provides CRUD over financial_transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func scanTransaction(s rowScanner) (model.FinancialTransaction, error) {
	var t model.FinancialTransaction
	err := s.Scan(&t.ID, &t.BookingID, &t.Amount, &t.Type, &t.Category, &t.Description,
		&t.PaymentMethod, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func getTransaction(ctx context.Context, q querier, id uint64) (model.FinancialTransaction, error) {
	t, err := scanTransaction(q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM financial_transactions WHERE id = ?`, id))
	if err != nil {
		return model.FinancialTransaction{}, notFound(err, ErrTransactionNotFound)
	}
	return t, nil
}

func insertTransaction(ctx context.Context, q querier, t *model.FinancialTransaction) error {
	res, err := q.ExecContext(ctx,
		`INSERT INTO financial_transactions (booking_id, amount, transaction_type, category, description, payment_method, transaction_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.BookingID, t.Amount, t.Type, t.Category, t.Description, t.PaymentMethod, t.TransactionDate)
	if err != nil {
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	saved, err := getTransaction(ctx, q, id)
	if err != nil {
		return err
	}
	*t = saved
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id uint64) (model.FinancialTransaction, error) {
	return getTransaction(ctx, r.db, id)
}

// List returns transactions, newest first. A zero bookingID matches all.
func (r *TransactionRepo) List(ctx context.Context, bookingID uint64, p Page) ([]model.FinancialTransaction, error) {
	p = p.normalized()
	q := `SELECT ` + transactionColumns + ` FROM financial_transactions`
	var args []any
	if bookingID != 0 {
		q += ` WHERE booking_id = ?`
		args = append(args, bookingID)
	}
	q += ` ORDER BY transaction_date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, p.Limit, p.Skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.FinancialTransaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Create(ctx context.Context, t *model.FinancialTransaction) error {
	return insertTransaction(ctx, r.db, t)
}

func (r *TransactionRepo) Update(ctx context.Context, t *model.FinancialTransaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE financial_transactions
		 SET booking_id = ?, amount = ?, transaction_type = ?, category = ?, description = ?,
		     payment_method = ?, transaction_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.BookingID, t.Amount, t.Type, t.Category, t.Description, t.PaymentMethod, t.TransactionDate, t.ID)
	if err != nil {
		return err
	}
	if err := affectedOrMissing(res, ErrTransactionNotFound); err != nil {
		return err
	}
	saved, err := getTransaction(ctx, r.db, t.ID)
	if err != nil {
		return err
	}
	*t = saved
	return nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM financial_transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrTransactionNotFound)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/newswire-api/internal/database"
	"github.com/newswire-api/internal/models"
)

// billingRepo is the concrete implementation of BillingRepository.
//
// Every webhook transition runs as one transaction that first locks the
// target user row with SELECT ... FOR UPDATE. Two deliveries racing on the
// same user therefore serialize at the row lock, and a failure anywhere
// before Commit leaves the user exactly as it was.
type billingRepo struct {
	db *database.DB
}

// NewBillingRepo creates a new billing repository
func NewBillingRepo(db *database.DB) BillingRepository {
	return &billingRepo{db: db}
}

// SetCustomerRef records the provider customer ref created by the
// checkout-session creator
func (r *billingRepo) SetCustomerRef(ctx context.Context, userID, customerRef string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET billing_customer_ref = $2, updated_at = $3 WHERE id = $1`,
		userID, customerRef, time.Now(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteCheckout applies the "checkout completed" transition
func (r *billingRepo) CompleteCheckout(ctx context.Context, userID, customerRef, subscriptionRef, status string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockUser(ctx, tx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE users SET billing_subscription_ref = $2, billing_status = $3, updated_at = $4 WHERE id = $1`,
			userID, subscriptionRef, status, time.Now(),
		)
		if err != nil {
			return err
		}
		if customerRef != "" {
			_, err = tx.ExecContext(ctx,
				`UPDATE users SET billing_customer_ref = $2 WHERE id = $1`,
				userID, customerRef,
			)
		}
		return err
	})
}

// RecordInvoicePaid applies the "invoice payment succeeded" transition and
// appends the payment record. Returns false when the provider transaction id
// was already recorded, which makes webhook redelivery a no-op.
func (r *billingRepo) RecordInvoicePaid(ctx context.Context, customerRef, tier, status string, rec *models.PaymentRecord) (bool, error) {
	inserted := false
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var userID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE billing_customer_ref = $1 FOR UPDATE`,
			customerRef,
		).Scan(&userID)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET tier = $2, billing_status = $3, updated_at = $4 WHERE id = $1`,
			userID, tier, status, time.Now(),
		)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO payment_records (id, user_id, provider_txn_id, plan, amount, currency, method, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (provider_txn_id) DO NOTHING
		`,
			rec.ID, userID, rec.ProviderTxnID, rec.Plan, rec.Amount,
			rec.Currency, rec.Method, rec.Status, rec.CreatedAt,
		)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		inserted = n > 0
		return nil
	})
	return inserted, err
}

// UpdateSubscription applies the "subscription updated" and "subscription
// deleted" transitions
func (r *billingRepo) UpdateSubscription(ctx context.Context, subscriptionRef, tier, status string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		var userID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE billing_subscription_ref = $1 FOR UPDATE`,
			subscriptionRef,
		).Scan(&userID)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET tier = $2, billing_status = $3, updated_at = $4 WHERE id = $1`,
			userID, tier, status, time.Now(),
		)
		return err
	})
}

// GetUserByCustomerRef resolves the invoice's customer ref to a user
func (r *billingRepo) GetUserByCustomerRef(ctx context.Context, customerRef string) (*models.User, error) {
	var user models.User
	var subRef, status sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, tier, billing_subscription_ref, billing_status
		FROM users WHERE billing_customer_ref = $1
	`, customerRef).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.Tier, &subRef, &status,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.BillingCustomerRef = customerRef
	user.BillingSubscriptionRef = subRef.String
	user.BillingStatus = status.String
	return &user, nil
}

// ListPayments returns a user's payment history newest first
func (r *billingRepo) ListPayments(ctx context.Context, userID string) ([]*models.PaymentRecord, error) {
	query := `
		SELECT id, user_id, provider_txn_id, plan, amount, currency, method, status, created_at
		FROM payment_records WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.PaymentRecord
	for rows.Next() {
		var rec models.PaymentRecord
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.ProviderTxnID, &rec.Plan, &rec.Amount,
			&rec.Currency, &rec.Method, &rec.Status, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// PaymentCount returns the total number of payment records
func (r *billingRepo) PaymentCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payment_records").Scan(&count)
	return count, err
}

func (r *billingRepo) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func lockUser(ctx context.Context, tx *sql.Tx, query, arg string) error {
	var id string
	err := tx.QueryRowContext(ctx, query, arg).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

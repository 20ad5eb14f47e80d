package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// CreateBill persists a new bill to the database.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate ID if not set
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.q(
		`INSERT INTO bills (id, group_id, group_name, name, total_amount, creator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		bill.ID, bill.GroupID, bill.GroupName, bill.Name, bill.TotalAmount.String(), bill.Creator, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i, line := range bill.Settlements {
		_, err = tx.ExecContext(ctx, s.q(
			"INSERT INTO bill_settlements (bill_id, position, line) VALUES (?, ?, ?)"),
			bill.ID, i, line,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement line: %w", err)
		}
	}

	for i, name := range bill.Payers {
		_, err = tx.ExecContext(ctx, s.q(
			"INSERT INTO bill_payers (bill_id, position, name) VALUES (?, ?, ?)"),
			bill.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}

	for i, p := range bill.Payments {
		if err := s.insertPayment(ctx, tx, bill.ID, i, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBill retrieves a bill by ID, including settlements, payers and payments.
func (s *Store) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT id, group_id, group_name, name, total_amount, creator, created_at
		 FROM bills WHERE id = ?`),
		billID,
	).Scan(&bill.ID, &bill.GroupID, &bill.GroupName, &bill.Name, &bill.TotalAmount, &bill.Creator, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if err := s.loadBillDetails(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBillsByGroup retrieves all bills for a group, newest first.
func (s *Store) ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		`SELECT id, group_id, group_name, name, total_amount, creator, created_at
		 FROM bills WHERE group_id = ? ORDER BY created_at DESC, id`),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by group: %w", err)
	}

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		if err := rows.Scan(&bill.ID, &bill.GroupID, &bill.GroupName, &bill.Name, &bill.TotalAmount, &bill.Creator, &bill.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	rows.Close()

	for _, bill := range bills {
		if err := s.loadBillDetails(ctx, bill); err != nil {
			return nil, err
		}
	}

	return bills, nil
}

// AddPayment appends a payment confirmation to a bill.
func (s *Store) AddPayment(ctx context.Context, billID string, payment models.Payment) error {
	if payment.PaidAt == 0 {
		payment.PaidAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Locking the bill row serializes position assignment on PostgreSQL;
	// SQLite transactions already hold the write lock.
	lockQuery := "SELECT 1 FROM bills WHERE id = ?"
	if s.dialect == Postgres {
		lockQuery += " FOR UPDATE"
	}

	var exists int
	err = tx.QueryRowContext(ctx, s.q(lockQuery), billID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check bill existence: %w", err)
	}

	var next int
	err = tx.QueryRowContext(ctx, s.q(
		"SELECT COALESCE(MAX(position) + 1, 0) FROM bill_payments WHERE bill_id = ?"),
		billID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to find next payment position: %w", err)
	}

	if err := s.insertPayment(ctx, tx, billID, next, payment); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) insertPayment(ctx context.Context, tx *sql.Tx, billID string, position int, p models.Payment) error {
	_, err := tx.ExecContext(ctx, s.q(
		"INSERT INTO bill_payments (bill_id, position, username, proof, paid_at) VALUES (?, ?, ?, ?, ?)"),
		billID, position, p.Username, p.Proof, p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// loadBillDetails fills in the ordered child rows of a bill.
func (s *Store) loadBillDetails(ctx context.Context, bill *models.Bill) error {
	var err error

	bill.Settlements, err = s.queryStrings(ctx,
		"SELECT line FROM bill_settlements WHERE bill_id = ? ORDER BY position", bill.ID)
	if err != nil {
		return fmt.Errorf("failed to get settlements: %w", err)
	}

	bill.Payers, err = s.queryStrings(ctx,
		"SELECT name FROM bill_payers WHERE bill_id = ? ORDER BY position", bill.ID)
	if err != nil {
		return fmt.Errorf("failed to get payers: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.q(
		"SELECT username, proof, paid_at FROM bill_payments WHERE bill_id = ? ORDER BY position"),
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	bill.Payments = []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.Username, &p.Proof, &p.PaidAt); err != nil {
			return fmt.Errorf("failed to scan payment: %w", err)
		}
		bill.Payments = append(bill.Payments, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payments: %w", err)
	}

	return nil
}

// queryStrings runs a single-column query and collects the values.
func (s *Store) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

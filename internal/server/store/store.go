// Package store persists customers, workers, and payments for the
// collections API.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Customer is a roster row as stored server-side. Customers are keyed
// by contact number.
type Customer struct {
	ContactNumber string
	Name          string
	Location      string
	LoanAmount    int64
}

// Worker is a collection worker account.
type Worker struct {
	UserID       string
	Username     string
	PasswordHash string
	Role         string
}

// Payment is one (customer, day) payment record.
type Payment struct {
	ID             uuid.UUID
	CustomerID     string
	WorkerID       string
	AmountPaid     int64
	PreviousAmount int64
	PaymentStatus  string
	PaymentType    string
	PaymentDate    string
}

func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT contact_number, name, location, loan_amount
		FROM customers
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer

	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ContactNumber, &c.Name, &c.Location, &c.LoanAmount); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// UpsertCustomers inserts or refreshes roster rows in one transaction
// and returns how many were written.
func (s *Store) UpsertCustomers(ctx context.Context, customers []Customer) (int, error) {
	if len(customers) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO customers (contact_number, name, location, loan_amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (contact_number) DO UPDATE
		SET name = EXCLUDED.name, location = EXCLUDED.location, loan_amount = EXCLUDED.loan_amount
	`

	for _, c := range customers {
		if _, err := tx.ExecContext(ctx, query, c.ContactNumber, c.Name, c.Location, c.LoanAmount); err != nil {
			return 0, fmt.Errorf("upserting customer %s: %w", c.ContactNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing customers: %w", err)
	}

	return len(customers), nil
}

func (s *Store) GetWorker(ctx context.Context, userID string) (*Worker, error) {
	query := `
		SELECT user_id, username, password_hash, role
		FROM workers
		WHERE user_id = $1
	`

	var w Worker

	err := s.db.QueryRowContext(ctx, query, userID).
		Scan(&w.UserID, &w.Username, &w.PasswordHash, &w.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("getting worker: %w", err)
	}

	return &w, nil
}

func (s *Store) ListWorkers(ctx context.Context) ([]Worker, error) {
	query := `
		SELECT user_id, username, password_hash, role
		FROM workers
		ORDER BY username ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	var workers []Worker

	for rows.Next() {
		var w Worker
		if err := rows.Scan(&w.UserID, &w.Username, &w.PasswordHash, &w.Role); err != nil {
			return nil, fmt.Errorf("scanning worker: %w", err)
		}

		workers = append(workers, w)
	}

	return workers, rows.Err()
}

// PaymentsByCustomerAndDate returns the stored payments for one
// customer on one day.
func (s *Store) PaymentsByCustomerAndDate(ctx context.Context, customerID, day string) ([]Payment, error) {
	query := `
		SELECT id, customer_id, worker_id, amount_paid, previous_amount,
			payment_status, payment_type, to_char(payment_date, 'YYYY-MM-DD')
		FROM payments
		WHERE customer_id = $1 AND payment_date = $2
	`

	rows, err := s.db.QueryContext(ctx, query, customerID, day)
	if err != nil {
		return nil, fmt.Errorf("payments by date: %w", err)
	}
	defer rows.Close()

	var payments []Payment

	for rows.Next() {
		var p Payment

		err := rows.Scan(&p.ID, &p.CustomerID, &p.WorkerID, &p.AmountPaid,
			&p.PreviousAmount, &p.PaymentStatus, &p.PaymentType, &p.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// PreviousAmount returns the amount currently on record for the key,
// or 0 when none is stored.
func (s *Store) PreviousAmount(ctx context.Context, customerID, day string) (int64, error) {
	query := `
		SELECT amount_paid
		FROM payments
		WHERE customer_id = $1 AND payment_date = $2
	`

	var amount int64

	err := s.db.QueryRowContext(ctx, query, customerID, day).Scan(&amount)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}

		return 0, fmt.Errorf("previous amount: %w", err)
	}

	return amount, nil
}

// UpsertPayment writes one batch record; a resubmitted batch replaces
// the stored row for the key, which is what makes the client's retry
// idempotent.
func (s *Store) UpsertPayment(ctx context.Context, p Payment) error {
	query := `
		INSERT INTO payments (id, customer_id, worker_id, amount_paid, previous_amount,
			payment_status, payment_type, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (customer_id, payment_date) DO UPDATE
		SET worker_id = EXCLUDED.worker_id,
			amount_paid = EXCLUDED.amount_paid,
			previous_amount = EXCLUDED.previous_amount,
			payment_status = EXCLUDED.payment_status,
			payment_type = EXCLUDED.payment_type,
			updated_at = NOW()
	`

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err := s.db.ExecContext(ctx, query, id, p.CustomerID, p.WorkerID, p.AmountPaid,
		p.PreviousAmount, p.PaymentStatus, p.PaymentType, p.PaymentDate)
	if err != nil {
		return fmt.Errorf("upserting payment for %s on %s: %w", p.CustomerID, p.PaymentDate, err)
	}

	return nil
}

// WorkerEntryRow is one row of the worker-entries review screen.
type WorkerEntryRow struct {
	CustomerID    string
	CustomerName  string
	AmountPaid    int64
	PaymentStatus string
}

// EntriesByWorker lists a day's payments, optionally narrowed to one
// worker, together with the total collected.
func (s *Store) EntriesByWorker(ctx context.Context, workerID, day string) ([]WorkerEntryRow, int64, error) {
	query := `
		SELECT p.customer_id, c.name, p.amount_paid, p.payment_status
		FROM payments p
		JOIN customers c ON c.contact_number = p.customer_id
		WHERE p.payment_date = $1
	`

	args := []any{day}

	if workerID != "" {
		query += " AND p.worker_id = $2"

		args = append(args, workerID)
	}

	query += " ORDER BY c.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("entries by worker: %w", err)
	}
	defer rows.Close()

	var (
		entries []WorkerEntryRow
		total   int64
	)

	for rows.Next() {
		var e WorkerEntryRow
		if err := rows.Scan(&e.CustomerID, &e.CustomerName, &e.AmountPaid, &e.PaymentStatus); err != nil {
			return nil, 0, fmt.Errorf("scanning entry: %w", err)
		}

		total += e.AmountPaid

		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

// HistoryRow is one dated payment in a customer's history, with the
// loan principal and the balance outstanding after all payments.
type HistoryRow struct {
	CustomerID   string
	CustomerName string
	PaymentDate  string
	AmountPaid   int64
	LoanAmount   int64
	Balance      int64
}

// PaymentHistory looks a customer up by contact number or partial name
// and returns their payments, newest first. A name can match several
// customers; the balance is windowed per customer so each row subtracts
// only that customer's own payments from their loan.
func (s *Store) PaymentHistory(ctx context.Context, customerID, customerName string) ([]HistoryRow, error) {
	query := `
		SELECT p.customer_id, c.name, to_char(p.payment_date, 'YYYY-MM-DD'),
			p.amount_paid, c.loan_amount,
			c.loan_amount - SUM(p.amount_paid) OVER (PARTITION BY p.customer_id) AS balance
		FROM payments p
		JOIN customers c ON c.contact_number = p.customer_id
		WHERE ($1 = '' OR p.customer_id = $1)
			AND ($2 = '' OR c.name ILIKE $2)
		ORDER BY p.payment_date DESC
	`

	pattern := ""
	if customerName != "" {
		pattern = "%" + customerName + "%"
	}

	rows, err := s.db.QueryContext(ctx, query, customerID, pattern)
	if err != nil {
		return nil, fmt.Errorf("payment history: %w", err)
	}
	defer rows.Close()

	var history []HistoryRow

	for rows.Next() {
		var h HistoryRow

		err := rows.Scan(&h.CustomerID, &h.CustomerName, &h.PaymentDate,
			&h.AmountPaid, &h.LoanAmount, &h.Balance)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}

		history = append(history, h)
	}

	return history, rows.Err()
}

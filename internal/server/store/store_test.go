package store_test

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pream14/FinanceFrontend/internal/server/store"
)

func newMockStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_PaymentHistoryBalancesPerCustomer(t *testing.T) {
	s, mock := newMockStore(t)

	// Two customers share the name; each balance windows over that
	// customer's own payments only.
	rows := sqlmock.NewRows([]string{
		"customer_id", "name", "payment_date", "amount_paid", "loan_amount", "balance",
	}).
		AddRow("0771234567", "Alice Auma", "2024-01-05", 50, 12000, 11950).
		AddRow("0793334445", "alice nakato", "2024-01-05", 30, 8000, 7970)

	mock.ExpectQuery(`SUM\(p\.amount_paid\) OVER \(PARTITION BY p\.customer_id\)`).
		WithArgs("", "%alice%").
		WillReturnRows(rows)

	history, err := s.PaymentHistory(context.Background(), "", "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, int64(11950), history[0].Balance)
	assert.Equal(t, int64(7970), history[1].Balance)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PaymentHistoryByContactNumber(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"customer_id", "name", "payment_date", "amount_paid", "loan_amount", "balance",
	}).
		AddRow("0771234567", "Alice Auma", "2024-01-05", 50, 12000, 11950)

	// An id lookup passes the id through and no name pattern.
	mock.ExpectQuery(`PARTITION BY p\.customer_id`).
		WithArgs("0771234567", "").
		WillReturnRows(rows)

	history, err := s.PaymentHistory(context.Background(), "0771234567", "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "0771234567", history[0].CustomerID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

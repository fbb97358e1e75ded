// Package reconcile computes running totals and the outbound
// batch-update payload from a ledger snapshot.
package reconcile

import (
	"github.com/pream14/FinanceFrontend/internal/ledger"
)

// UpdateRequest is one record of the batch posted to the backend.
type UpdateRequest struct {
	WorkerID       string                 `json:"worker_id"`
	CustomerID     string                 `json:"customer_id"`
	AmountPaid     int64                  `json:"amount_paid"`
	PreviousAmount int64                  `json:"previous_amount"`
	PaymentStatus  ledger.PaymentStatus   `json:"payment_status"`
	PaymentType    ledger.TransactionType `json:"payment_type"`
}

// ValidationError rejects a batch before anything is sent.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "batch validation: " + e.Reason
}

// Total sums the amounts across the snapshot's displayed rows. It
// reflects exactly what is rendered, not server state: the number a
// worker re-adds by hand from the screen.
func Total(snap ledger.Snapshot) int64 {
	var total int64

	for _, row := range snap.Rows {
		total += row.Entry.AmountPaid
	}

	return total
}

// BuildBatch emits one update record per touched entry in the
// snapshot, in first-touch order. Zero-amount entries are included: an
// explicit 0 marks a customer Unpaid and must overwrite a stale prior
// value on the server. No batch is produced without a worker identity.
func BuildBatch(snap ledger.Snapshot, workerToken string) ([]UpdateRequest, error) {
	if workerToken == "" {
		return nil, &ValidationError{Reason: "missing worker token"}
	}

	updates := make([]UpdateRequest, 0, len(snap.Entries))

	for _, e := range snap.Entries {
		updates = append(updates, UpdateRequest{
			WorkerID:       workerToken,
			CustomerID:     e.Key.CustomerID,
			AmountPaid:     e.AmountPaid,
			PreviousAmount: e.PreviousAmount,
			PaymentStatus:  e.Status,
			PaymentType:    e.Type,
		})
	}

	return updates, nil
}

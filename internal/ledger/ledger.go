package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TransactionType classifies a payment entry. Payment is a regular
// installment collection; Addition records extra principal handed out.
type TransactionType string

const (
	TypePayment  TransactionType = "Payment"
	TypeAddition TransactionType = "Addition"
)

// PaymentStatus mirrors the backend contract: Paid iff the amount is
// positive.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "Paid"
	StatusUnpaid PaymentStatus = "Unpaid"
)

// StatusFor derives the payment status from an amount.
func StatusFor(amount int64) PaymentStatus {
	if amount > 0 {
		return StatusPaid
	}

	return StatusUnpaid
}

// Key identifies one customer's entry for one calendar day. It is a
// proper composite key rather than a "customerId-date" string, so
// identifiers containing separator characters cannot collide.
type Key struct {
	CustomerID string
	Day        string // YYYY-MM-DD
}

func (k Key) String() string {
	return k.CustomerID + "@" + k.Day
}

// ParseDay validates a calendar day in YYYY-MM-DD form. Days carry no
// timezone; the session works against one operational day at a time.
func ParseDay(s string) (string, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", fmt.Errorf("parsing day %q: %w", s, err)
	}

	return t.Format(time.DateOnly), nil
}

// Today returns the current calendar day in canonical form.
func Today() string {
	return time.Now().Format(time.DateOnly)
}

// Entry is one customer's payment record for one day.
type Entry struct {
	Key            Key
	AmountPaid     int64
	Type           TransactionType
	PreviousAmount int64
	// PreviousKnown reports whether PreviousAmount was fetched from the
	// server (or confirmed absent). A zero baseline is only trusted
	// when this is set.
	PreviousKnown bool
	Status        PaymentStatus
	Persisted     bool
}

// ParseAmount converts free-text numeric input into a non-negative
// amount. It is total: empty, malformed, or negative input coerces to
// 0 and never fails, mirroring a forgiving numeric-entry field.
func ParseAmount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}

package ledger

import (
	"context"
	"log/slog"

	"github.com/pream14/FinanceFrontend/internal/roster"
)

// PreviousAmountFetcher asks the backend for the amount it knew for a
// key before this session's edits.
type PreviousAmountFetcher interface {
	FetchPreviousAmount(ctx context.Context, customerID, day string) (int64, error)
}

// ServerPayment is one prior-payment record as returned by the
// backend for a given day.
type ServerPayment struct {
	CustomerID string
	AmountPaid int64
}

// Store is the date-scoped ledger: server-fetched prior payments
// merged with locally-entered edits, keyed by (customer, day).
// Entries are never deleted mid-session; a day change starts a new set
// of keys and the old ones remain addressable.
//
// All mutations are driven by the single event loop, so the store does
// no locking.
type Store struct {
	fetcher PreviousAmountFetcher

	entries map[Key]*Entry
	// order records keys in first-touch order; it drives deterministic
	// batch ordering. Entries created only to cache a previous-amount
	// baseline are not considered touched.
	order   []Key
	touched map[Key]bool
}

func NewStore(fetcher PreviousAmountFetcher) *Store {
	return &Store{
		fetcher: fetcher,
		entries: make(map[Key]*Entry),
		touched: make(map[Key]bool),
	}
}

func (s *Store) get(k Key) *Entry {
	e, ok := s.entries[k]
	if !ok {
		e = &Entry{Key: k, Type: TypePayment, Status: StatusUnpaid}
		s.entries[k] = e
	}

	return e
}

func (s *Store) touch(k Key) *Entry {
	e := s.get(k)

	if !s.touched[k] {
		s.touched[k] = true
		s.order = append(s.order, k)
	}

	return e
}

// MergeServerPayments upserts the day's prior payments fetched from
// the backend. Server-origin records arrive as confirmed payments:
// persisted, type Payment. A local unsynced edit for the same key
// takes precedence and is never clobbered.
func (s *Store) MergeServerPayments(day string, records []ServerPayment) {
	for _, r := range records {
		k := Key{CustomerID: r.CustomerID, Day: day}

		if e, ok := s.entries[k]; ok && s.touched[k] && !e.Persisted {
			continue
		}

		e := s.touch(k)
		e.AmountPaid = r.AmountPaid
		e.Type = TypePayment
		e.Status = StatusFor(r.AmountPaid)
		e.Persisted = true
	}
}

// SetAmount records a local edit from raw user input. Invalid input
// coerces to 0 (see ParseAmount). Applying the same value twice leaves
// the entry in the same state; the previous-amount baseline is never
// touched here.
func (s *Store) SetAmount(customerID, day, raw string) {
	e := s.touch(Key{CustomerID: customerID, Day: day})

	e.AmountPaid = ParseAmount(raw)
	e.Status = StatusFor(e.AmountPaid)
	e.Persisted = false
}

// SetTransactionType records a local transaction-type override.
func (s *Store) SetTransactionType(customerID, day string, t TransactionType) {
	e := s.touch(Key{CustomerID: customerID, Day: day})

	e.Type = t
	e.Persisted = false
}

// FetchPreviousAmount resolves the baseline amount the server knew for
// this key before the session's edits. The result is cached on the
// entry; a gateway failure degrades to 0 with a log line and is never
// fatal, so batch construction is not blocked. The failure is not
// cached, so a later call retries.
func (s *Store) FetchPreviousAmount(ctx context.Context, customerID, day string) int64 {
	k := Key{CustomerID: customerID, Day: day}

	if e, ok := s.entries[k]; ok && e.PreviousKnown {
		return e.PreviousAmount
	}

	amount, err := s.fetcher.FetchPreviousAmount(ctx, customerID, day)
	if err != nil {
		slog.Warn("previous amount unavailable, defaulting to 0",
			"customer_id", customerID, "day", day, "error", err)

		return 0
	}

	e := s.get(k)
	e.PreviousAmount = amount
	e.PreviousKnown = true

	return amount
}

// SetPreviousAmount caches a baseline fetched elsewhere. Like the
// fetch path, caching a baseline does not put the entry into the
// batch.
func (s *Store) SetPreviousAmount(customerID, day string, amount int64) {
	e := s.get(Key{CustomerID: customerID, Day: day})

	e.PreviousAmount = amount
	e.PreviousKnown = true
}

// Entry returns a copy of the stored entry for the key.
func (s *Store) Entry(k Key) (Entry, bool) {
	e, ok := s.entries[k]
	if !ok {
		return Entry{}, false
	}

	return *e, true
}

// MarkPersisted flags every touched entry for the day as synced after
// a successful batch submission.
func (s *Store) MarkPersisted(day string) {
	for _, k := range s.order {
		if k.Day != day {
			continue
		}

		s.entries[k].Persisted = true
	}
}

// Row pairs a roster customer with their (possibly implicit) entry for
// the snapshot day.
type Row struct {
	Customer roster.Customer
	Entry    Entry
}

// Snapshot is the materialized roster-by-ledger view for one day. Rows
// follow roster order and include implicit zero entries for customers
// with no data; Entries holds the touched entries in first-touch
// order, which fixes the batch order.
type Snapshot struct {
	Day     string
	Rows    []Row
	Entries []Entry
}

// Snapshot materializes the view for a day against the given roster.
func (s *Store) Snapshot(day string, customers []roster.Customer) Snapshot {
	snap := Snapshot{Day: day}

	snap.Rows = make([]Row, 0, len(customers))

	for _, c := range customers {
		k := Key{CustomerID: c.ID, Day: day}

		e, ok := s.entries[k]
		if !ok {
			e = &Entry{Key: k, Type: TypePayment, Status: StatusUnpaid}
		}

		snap.Rows = append(snap.Rows, Row{Customer: c, Entry: *e})
	}

	for _, k := range s.order {
		if k.Day != day {
			continue
		}

		snap.Entries = append(snap.Entries, *s.entries[k])
	}

	return snap
}

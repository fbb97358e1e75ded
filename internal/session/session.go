// Package session ties the roster store, the ledger store, and the
// sync gateway into one per-worker collection session.
package session

import (
	"context"
	"fmt"

	"github.com/pream14/FinanceFrontend/internal/gateway"
	"github.com/pream14/FinanceFrontend/internal/ledger"
	"github.com/pream14/FinanceFrontend/internal/reconcile"
	"github.com/pream14/FinanceFrontend/internal/roster"
)

//go:generate mockgen -source=session.go -destination=gateway_mock.go -package=session
type Gateway interface {
	SetToken(token string)
	Login(ctx context.Context, userID, password string) (gateway.Credentials, error)
	FetchRoster(ctx context.Context) ([]roster.Customer, error)
	FetchPriorPayments(ctx context.Context, customerID, day string) ([]ledger.ServerPayment, error)
	FetchPreviousAmount(ctx context.Context, customerID, day string) (int64, error)
	SubmitBatch(ctx context.Context, updates []reconcile.UpdateRequest) (string, error)
	FetchWorkers(ctx context.Context) ([]gateway.Worker, error)
	FetchWorkerEntries(ctx context.Context, workerID, day string) (gateway.WorkerEntries, error)
	FetchPaymentHistory(ctx context.Context, customerID, customerName string) ([]gateway.HistoryRecord, error)
}

// Session is the single logical thread of control for one worker's
// shift: the roster, the day's ledger, the worker identity, and a
// generation counter that discards late-arriving async results after
// the roster or the operational day has moved on.
type Session struct {
	gw Gateway

	roster *roster.Store
	ledger *ledger.Store

	day      string
	token    string
	workerID string
	username string
	role     string

	generation uint64
}

func New(gw Gateway) *Session {
	return &Session{
		gw:     gw,
		roster: roster.NewStore(),
		ledger: ledger.NewStore(gw),
		day:    ledger.Today(),
	}
}

func (s *Session) Gateway() Gateway { return s.gw }

func (s *Session) Roster() *roster.Store { return s.roster }

func (s *Session) Ledger() *ledger.Store { return s.ledger }

func (s *Session) Day() string { return s.day }

// Generation returns the current session generation. Async work
// captures it when issued and checks Stale before applying results.
func (s *Session) Generation() uint64 {
	return s.generation
}

func (s *Session) Stale(gen uint64) bool {
	return gen != s.generation
}

// ChangeDay switches the operational day. Old keys stay addressable in
// the ledger; in-flight fetches for the old day become stale.
func (s *Session) ChangeDay(day string) error {
	canonical, err := ledger.ParseDay(day)
	if err != nil {
		return err
	}

	if canonical == s.day {
		return nil
	}

	s.day = canonical
	s.generation++

	return nil
}

func (s *Session) Authenticated() bool { return s.token != "" }

func (s *Session) WorkerToken() string { return s.token }

func (s *Session) WorkerID() string { return s.workerID }

func (s *Session) Username() string { return s.username }

func (s *Session) Role() string { return s.role }

// Authorize installs previously stored credentials, e.g. from the
// on-disk token cache.
func (s *Session) Authorize(creds gateway.Credentials) {
	s.token = creds.AccessToken
	s.workerID = creds.UserID
	s.username = creds.Username
	s.role = creds.Role
	s.gw.SetToken(creds.AccessToken)
}

// Login authenticates against the backend and installs the resulting
// worker identity on the session and the gateway.
func (s *Session) Login(ctx context.Context, userID, password string) (gateway.Credentials, error) {
	creds, err := s.gw.Login(ctx, userID, password)
	if err != nil {
		return gateway.Credentials{}, err
	}

	s.Authorize(creds)

	return creds, nil
}

// LoadRoster fetches and atomically replaces the roster. The
// generation moves on, so results of fetches issued against the old
// roster are discarded when they arrive.
func (s *Session) LoadRoster(ctx context.Context) error {
	customers, err := s.gw.FetchRoster(ctx)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	if err := s.roster.Load(customers); err != nil {
		return err
	}

	s.generation++

	return nil
}

// MergePriorPayments pulls the backend's payments for the active day,
// one roster customer at a time, and merges them into the ledger.
// A failed fetch aborts the walk; what was merged so far stays (the
// merge is idempotent, a retry simply re-merges).
func (s *Session) MergePriorPayments(ctx context.Context) error {
	day := s.day

	for _, c := range s.roster.All() {
		records, err := s.gw.FetchPriorPayments(ctx, c.ID, day)
		if err != nil {
			return fmt.Errorf("prior payments for customer %s on %s: %w", c.ID, day, err)
		}

		s.ledger.MergeServerPayments(day, records)
	}

	return nil
}

// ApplyRoster installs an asynchronously fetched roster, dropping it
// when the session generation has moved on. Reports whether the roster
// was installed.
func (s *Session) ApplyRoster(gen uint64, customers []roster.Customer) (bool, error) {
	if s.Stale(gen) {
		return false, nil
	}

	if err := s.roster.Load(customers); err != nil {
		return false, err
	}

	s.generation++

	return true, nil
}

// ApplyPreviousAmount caches an asynchronously fetched baseline,
// dropping it when the session or the day has moved on.
func (s *Session) ApplyPreviousAmount(gen uint64, customerID, day string, amount int64) bool {
	if s.Stale(gen) || day != s.day {
		return false
	}

	s.ledger.SetPreviousAmount(customerID, day, amount)

	return true
}

// ApplyPriorPayments merges an asynchronously fetched batch, dropping
// it when the session generation or the day has moved on. Reports
// whether the records were applied.
func (s *Session) ApplyPriorPayments(gen uint64, day string, records []ledger.ServerPayment) bool {
	if s.Stale(gen) || day != s.day {
		return false
	}

	s.ledger.MergeServerPayments(day, records)

	return true
}

// Snapshot materializes the active day's view of roster and ledger.
func (s *Session) Snapshot() ledger.Snapshot {
	return s.ledger.Snapshot(s.day, s.roster.All())
}

// Total is the running total of the displayed amounts.
func (s *Session) Total() int64 {
	return reconcile.Total(s.Snapshot())
}

// Submit builds the batch for the active day and posts it. On success
// the day's entries are marked persisted; on failure local state is
// left untouched so a retry re-submits the same batch.
func (s *Session) Submit(ctx context.Context) (string, error) {
	updates, err := reconcile.BuildBatch(s.Snapshot(), s.workerID)
	if err != nil {
		return "", err
	}

	msg, err := s.gw.SubmitBatch(ctx, updates)
	if err != nil {
		return "", err
	}

	s.ledger.MarkPersisted(s.day)

	return msg, nil
}

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pream14/FinanceFrontend/internal/gateway"
	"github.com/pream14/FinanceFrontend/internal/ledger"
	"github.com/pream14/FinanceFrontend/internal/reconcile"
	"github.com/pream14/FinanceFrontend/internal/roster"
	"github.com/pream14/FinanceFrontend/internal/session"
)

func newSession(t *testing.T) (*session.Session, *session.MockGateway) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gw := session.NewMockGateway(ctrl)

	return session.New(gw), gw
}

func TestSession_Login(t *testing.T) {
	s, gw := newSession(t)

	creds := gateway.Credentials{UserID: "w1", AccessToken: "tok1", Role: "worker", Username: "Wekesa"}

	gw.EXPECT().
		Login(gomock.Any(), "w1", "secret").
		Return(creds, nil)
	gw.EXPECT().SetToken("tok1")

	got, err := s.Login(context.Background(), "w1", "secret")
	require.NoError(t, err)
	assert.Equal(t, creds, got)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok1", s.WorkerToken())
	assert.Equal(t, "w1", s.WorkerID())
	assert.Equal(t, "Wekesa", s.Username())
}

func TestSession_LoginFailureLeavesSessionUnauthenticated(t *testing.T) {
	s, gw := newSession(t)

	gw.EXPECT().
		Login(gomock.Any(), "w1", "wrong").
		Return(gateway.Credentials{}, &gateway.ServerError{Status: 401, Message: "invalid user ID or password"})

	_, err := s.Login(context.Background(), "w1", "wrong")
	assert.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestSession_LoadRosterBumpsGeneration(t *testing.T) {
	s, gw := newSession(t)

	gw.EXPECT().
		FetchRoster(gomock.Any()).
		Return([]roster.Customer{{ID: "555", Name: "Alice", Location: "North"}}, nil)

	before := s.Generation()

	require.NoError(t, s.LoadRoster(context.Background()))
	assert.Equal(t, 1, s.Roster().Len())
	assert.True(t, s.Stale(before))
}

func TestSession_LoadRosterFailureLeavesRoster(t *testing.T) {
	s, gw := newSession(t)

	gw.EXPECT().
		FetchRoster(gomock.Any()).
		Return([]roster.Customer{{ID: "555", Name: "Alice"}}, nil)
	require.NoError(t, s.LoadRoster(context.Background()))

	gen := s.Generation()

	gw.EXPECT().
		FetchRoster(gomock.Any()).
		Return(nil, &gateway.NetworkError{Op: "fetch roster", Err: errors.New("refused")})

	err := s.LoadRoster(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, s.Roster().Len())
	assert.False(t, s.Stale(gen))
}

func TestSession_MergePriorPayments(t *testing.T) {
	s, gw := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-01"))

	gw.EXPECT().
		FetchRoster(gomock.Any()).
		Return([]roster.Customer{
			{ID: "555", Name: "Alice"},
			{ID: "556", Name: "Bob"},
		}, nil)
	require.NoError(t, s.LoadRoster(context.Background()))

	gw.EXPECT().
		FetchPriorPayments(gomock.Any(), "555", "2024-01-01").
		Return([]ledger.ServerPayment{{CustomerID: "555", AmountPaid: 40}}, nil)
	gw.EXPECT().
		FetchPriorPayments(gomock.Any(), "556", "2024-01-01").
		Return(nil, nil)

	require.NoError(t, s.MergePriorPayments(context.Background()))

	e, ok := s.Ledger().Entry(ledger.Key{CustomerID: "555", Day: "2024-01-01"})
	require.True(t, ok)
	assert.Equal(t, int64(40), e.AmountPaid)
	assert.True(t, e.Persisted)
}

func TestSession_MergePriorPaymentsAbortsOnGatewayError(t *testing.T) {
	s, gw := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-01"))

	gw.EXPECT().
		FetchRoster(gomock.Any()).
		Return([]roster.Customer{
			{ID: "555", Name: "Alice"},
			{ID: "556", Name: "Bob"},
		}, nil)
	require.NoError(t, s.LoadRoster(context.Background()))

	gw.EXPECT().
		FetchPriorPayments(gomock.Any(), "555", "2024-01-01").
		Return(nil, &gateway.ServerError{Op: "fetch prior payments", Status: 500})

	err := s.MergePriorPayments(context.Background())
	require.Error(t, err)
	// The failing customer and day are named for the caller.
	assert.Contains(t, err.Error(), "555")
	assert.Contains(t, err.Error(), "2024-01-01")
}

func TestSession_ApplyPriorPaymentsDiscardsStaleResults(t *testing.T) {
	s, gw := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-01"))

	gen := s.Generation()
	records := []ledger.ServerPayment{{CustomerID: "555", AmountPaid: 40}}

	// Roster reloaded while the fetch was in flight.
	gw.EXPECT().FetchRoster(gomock.Any()).Return(nil, nil)
	require.NoError(t, s.LoadRoster(context.Background()))

	assert.False(t, s.ApplyPriorPayments(gen, "2024-01-01", records))

	_, ok := s.Ledger().Entry(ledger.Key{CustomerID: "555", Day: "2024-01-01"})
	assert.False(t, ok)

	// Fresh generation applies.
	assert.True(t, s.ApplyPriorPayments(s.Generation(), "2024-01-01", records))

	e, ok := s.Ledger().Entry(ledger.Key{CustomerID: "555", Day: "2024-01-01"})
	require.True(t, ok)
	assert.Equal(t, int64(40), e.AmountPaid)
}

func TestSession_ApplyRoster(t *testing.T) {
	s, _ := newSession(t)

	gen := s.Generation()
	customers := []roster.Customer{{ID: "555", Name: "Alice"}}

	applied, err := s.ApplyRoster(gen, customers)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 1, s.Roster().Len())
	assert.True(t, s.Stale(gen))

	// The old generation's result arrives late and is dropped.
	applied, err = s.ApplyRoster(gen, nil)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, s.Roster().Len())
}

func TestSession_ApplyPreviousAmount(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-01"))

	assert.True(t, s.ApplyPreviousAmount(s.Generation(), "555", "2024-01-01", 120))

	e, ok := s.Ledger().Entry(ledger.Key{CustomerID: "555", Day: "2024-01-01"})
	require.True(t, ok)
	assert.True(t, e.PreviousKnown)
	assert.Equal(t, int64(120), e.PreviousAmount)

	// The cached baseline does not enter the batch.
	assert.Empty(t, s.Snapshot().Entries)

	// Results for a day the session has left are dropped.
	require.NoError(t, s.ChangeDay("2024-01-02"))
	assert.False(t, s.ApplyPreviousAmount(s.Generation(), "556", "2024-01-01", 80))
}

func TestSession_ApplyPriorPaymentsDiscardsOtherDay(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-02"))

	applied := s.ApplyPriorPayments(s.Generation(), "2024-01-01",
		[]ledger.ServerPayment{{CustomerID: "555", AmountPaid: 40}})

	assert.False(t, applied)
}

func TestSession_ChangeDay(t *testing.T) {
	s, _ := newSession(t)

	require.NoError(t, s.ChangeDay("2024-01-01"))
	gen := s.Generation()

	// Same day is a no-op.
	require.NoError(t, s.ChangeDay("2024-01-01"))
	assert.False(t, s.Stale(gen))

	require.NoError(t, s.ChangeDay("2024-01-02"))
	assert.Equal(t, "2024-01-02", s.Day())
	assert.True(t, s.Stale(gen))

	assert.Error(t, s.ChangeDay("not-a-day"))
}

func TestSession_Submit(t *testing.T) {
	s, gw := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-01"))

	gw.EXPECT().SetToken("tok1")
	s.Authorize(gateway.Credentials{UserID: "T1", AccessToken: "tok1"})

	s.Ledger().SetAmount("555", "2024-01-01", "50")

	gw.EXPECT().
		SubmitBatch(gomock.Any(), []reconcile.UpdateRequest{{
			WorkerID:      "T1",
			CustomerID:    "555",
			AmountPaid:    50,
			PaymentStatus: ledger.StatusPaid,
			PaymentType:   ledger.TypePayment,
		}}).
		Return("payments updated", nil)

	msg, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "payments updated", msg)

	e, _ := s.Ledger().Entry(ledger.Key{CustomerID: "555", Day: "2024-01-01"})
	assert.True(t, e.Persisted)
}

func TestSession_SubmitWithoutTokenSendsNothing(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-01"))

	s.Ledger().SetAmount("555", "2024-01-01", "50")

	_, err := s.Submit(context.Background())

	var verr *reconcile.ValidationError

	require.ErrorAs(t, err, &verr)
}

func TestSession_SubmitFailureLeavesEntriesUnsynced(t *testing.T) {
	s, gw := newSession(t)
	require.NoError(t, s.ChangeDay("2024-01-01"))

	gw.EXPECT().SetToken("tok1")
	s.Authorize(gateway.Credentials{UserID: "T1", AccessToken: "tok1"})

	s.Ledger().SetAmount("555", "2024-01-01", "50")

	gw.EXPECT().
		SubmitBatch(gomock.Any(), gomock.Any()).
		Return("", &gateway.NetworkError{Op: "submit batch", Err: errors.New("timeout")})

	_, err := s.Submit(context.Background())
	require.Error(t, err)

	e, _ := s.Ledger().Entry(ledger.Key{CustomerID: "555", Day: "2024-01-01"})
	assert.False(t, e.Persisted)

	// Retry re-submits the same batch.
	gw.EXPECT().
		SubmitBatch(gomock.Any(), []reconcile.UpdateRequest{{
			WorkerID:      "T1",
			CustomerID:    "555",
			AmountPaid:    50,
			PaymentStatus: ledger.StatusPaid,
			PaymentType:   ledger.TypePayment,
		}}).
		Return("payments updated", nil)

	_, err = s.Submit(context.Background())
	require.NoError(t, err)
}

package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pream14/FinanceFrontend/internal/ledger"
	"github.com/pream14/FinanceFrontend/internal/roster"
)

const day = "2024-01-01"

type stubFetcher struct {
	amounts map[string]int64
	err     error
	calls   int
}

func (f *stubFetcher) FetchPreviousAmount(_ context.Context, customerID, _ string) (int64, error) {
	f.calls++

	if f.err != nil {
		return 0, f.err
	}

	return f.amounts[customerID], nil
}

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name string
		raw  string
		want int64
	}

	tests := []testCase{
		{name: "Plain", raw: "50", want: 50},
		{name: "Whitespace", raw: " 120 ", want: 120},
		{name: "Empty", raw: "", want: 0},
		{name: "Zero", raw: "0", want: 0},
		{name: "Garbage", raw: "abc", want: 0},
		{name: "Decimal", raw: "12.5", want: 0},
		{name: "Negative", raw: "-10", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.ParseAmount(tt.raw))
		})
	}
}

func TestStore_SetAmount(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.SetAmount("555", day, "50")

	e, ok := s.Entry(ledger.Key{CustomerID: "555", Day: day})
	require.True(t, ok)
	assert.Equal(t, int64(50), e.AmountPaid)
	assert.Equal(t, ledger.StatusPaid, e.Status)
	assert.Equal(t, ledger.TypePayment, e.Type)
	assert.False(t, e.Persisted)
}

func TestStore_SetAmountEmptyInputIsExplicitZero(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.SetAmount("555", day, "50")
	s.SetAmount("555", day, "")

	e, _ := s.Entry(ledger.Key{CustomerID: "555", Day: day})
	assert.Equal(t, int64(0), e.AmountPaid)
	assert.Equal(t, ledger.StatusUnpaid, e.Status)

	// The zeroed entry still appears in the snapshot's touched set so a
	// stale server value can be overwritten.
	snap := s.Snapshot(day, nil)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, int64(0), snap.Entries[0].AmountPaid)
}

func TestStore_SetAmountIdempotent(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.SetAmount("555", day, "75")
	first, _ := s.Entry(ledger.Key{CustomerID: "555", Day: day})

	s.SetAmount("555", day, "75")
	second, _ := s.Entry(ledger.Key{CustomerID: "555", Day: day})

	assert.Equal(t, first, second)

	snap := s.Snapshot(day, nil)
	assert.Len(t, snap.Entries, 1)
}

func TestStore_MergeServerPayments(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.MergeServerPayments(day, []ledger.ServerPayment{
		{CustomerID: "555", AmountPaid: 40},
		{CustomerID: "556", AmountPaid: 0},
	})

	paid, _ := s.Entry(ledger.Key{CustomerID: "555", Day: day})
	assert.Equal(t, int64(40), paid.AmountPaid)
	assert.Equal(t, ledger.StatusPaid, paid.Status)
	assert.True(t, paid.Persisted)

	unpaid, _ := s.Entry(ledger.Key{CustomerID: "556", Day: day})
	assert.Equal(t, ledger.StatusUnpaid, unpaid.Status)
	assert.True(t, unpaid.Persisted)
}

func TestStore_MergeNeverClobbersUnsyncedEdit(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.SetAmount("555", day, "90")
	s.MergeServerPayments(day, []ledger.ServerPayment{
		{CustomerID: "555", AmountPaid: 40},
	})

	e, _ := s.Entry(ledger.Key{CustomerID: "555", Day: day})
	assert.Equal(t, int64(90), e.AmountPaid)
	assert.False(t, e.Persisted)
}

func TestStore_MergeOverwritesSyncedEntry(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.MergeServerPayments(day, []ledger.ServerPayment{{CustomerID: "555", AmountPaid: 40}})
	s.MergeServerPayments(day, []ledger.ServerPayment{{CustomerID: "555", AmountPaid: 60}})

	e, _ := s.Entry(ledger.Key{CustomerID: "555", Day: day})
	assert.Equal(t, int64(60), e.AmountPaid)
	assert.True(t, e.Persisted)
}

func TestStore_FetchPreviousAmount(t *testing.T) {
	f := &stubFetcher{amounts: map[string]int64{"555": 30}}
	s := ledger.NewStore(f)

	assert.Equal(t, int64(30), s.FetchPreviousAmount(context.Background(), "555", day))

	// Cached: second call does not hit the gateway.
	assert.Equal(t, int64(30), s.FetchPreviousAmount(context.Background(), "555", day))
	assert.Equal(t, 1, f.calls)

	e, ok := s.Entry(ledger.Key{CustomerID: "555", Day: day})
	require.True(t, ok)
	assert.True(t, e.PreviousKnown)
	assert.Equal(t, int64(30), e.PreviousAmount)
}

func TestStore_FetchPreviousAmountDegradesToZero(t *testing.T) {
	f := &stubFetcher{err: errors.New("gateway down")}
	s := ledger.NewStore(f)

	assert.Equal(t, int64(0), s.FetchPreviousAmount(context.Background(), "555", day))

	// Failure is not cached as a confirmed zero.
	if e, ok := s.Entry(ledger.Key{CustomerID: "555", Day: day}); ok {
		assert.False(t, e.PreviousKnown)
	}

	f.err = nil
	f.amounts = map[string]int64{"555": 25}

	assert.Equal(t, int64(25), s.FetchPreviousAmount(context.Background(), "555", day))
}

func TestStore_FetchPreviousAmountDoesNotEnterBatch(t *testing.T) {
	f := &stubFetcher{amounts: map[string]int64{"555": 30}}
	s := ledger.NewStore(f)

	s.FetchPreviousAmount(context.Background(), "555", day)

	// A cached baseline alone is not an edit.
	assert.Empty(t, s.Snapshot(day, nil).Entries)
}

func TestStore_Snapshot(t *testing.T) {
	customers := []roster.Customer{
		{ID: "555", Name: "Alice", Location: "North"},
		{ID: "556", Name: "Bob", Location: "South"},
		{ID: "557", Name: "Carol", Location: "East"},
	}

	s := ledger.NewStore(&stubFetcher{})
	s.MergeServerPayments(day, []ledger.ServerPayment{{CustomerID: "556", AmountPaid: 20}})
	s.SetAmount("557", day, "35")

	snap := s.Snapshot(day, customers)

	require.Len(t, snap.Rows, 3)
	// Implicit zero entry for the untouched customer.
	assert.Equal(t, int64(0), snap.Rows[0].Entry.AmountPaid)
	assert.Equal(t, ledger.TypePayment, snap.Rows[0].Entry.Type)
	assert.Equal(t, ledger.StatusUnpaid, snap.Rows[0].Entry.Status)
	assert.Equal(t, int64(20), snap.Rows[1].Entry.AmountPaid)
	assert.Equal(t, int64(35), snap.Rows[2].Entry.AmountPaid)

	// Touched entries in first-touch order.
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "556", snap.Entries[0].Key.CustomerID)
	assert.Equal(t, "557", snap.Entries[1].Key.CustomerID)
}

func TestStore_DaysAreIndependent(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.SetAmount("555", "2024-01-01", "10")
	s.SetAmount("555", "2024-01-02", "20")

	first, _ := s.Entry(ledger.Key{CustomerID: "555", Day: "2024-01-01"})
	second, _ := s.Entry(ledger.Key{CustomerID: "555", Day: "2024-01-02"})

	assert.Equal(t, int64(10), first.AmountPaid)
	assert.Equal(t, int64(20), second.AmountPaid)

	assert.Len(t, s.Snapshot("2024-01-01", nil).Entries, 1)
	assert.Len(t, s.Snapshot("2024-01-02", nil).Entries, 1)
}

func TestStore_MarkPersisted(t *testing.T) {
	s := ledger.NewStore(&stubFetcher{})

	s.SetAmount("555", "2024-01-01", "10")
	s.SetAmount("556", "2024-01-01", "0")
	s.SetAmount("555", "2024-01-02", "30")

	s.MarkPersisted("2024-01-01")

	for _, id := range []string{"555", "556"} {
		e, _ := s.Entry(ledger.Key{CustomerID: id, Day: "2024-01-01"})
		assert.True(t, e.Persisted, "customer %s", id)
	}

	other, _ := s.Entry(ledger.Key{CustomerID: "555", Day: "2024-01-02"})
	assert.False(t, other.Persisted)
}

func TestParseDay(t *testing.T) {
	got, err := ledger.ParseDay("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got)

	_, err = ledger.ParseDay("01-01-2024")
	assert.Error(t, err)

	_, err = ledger.ParseDay("")
	assert.Error(t, err)
}

package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pream14/FinanceFrontend/internal/roster"
)

func sampleRoster() []roster.Customer {
	return []roster.Customer{
		{ID: "0771234567", Name: "Alice Auma", Contact: "0771234567", Location: "North"},
		{ID: "0782223334", Name: "Bob Okello", Contact: "0782223334", Location: "South"},
		{ID: "0793334445", Name: "alice nakato", Contact: "0793334445", Location: "North"},
		{ID: "0704445556", Name: "Grace Apio", Contact: "0704445556", Location: "East"},
	}
}

func TestApply(t *testing.T) {
	type testCase struct {
		name     string
		query    string
		location string
		wantIDs  []string
	}

	tests := []testCase{
		{
			name:    "EmptyFilterReturnsAll",
			wantIDs: []string{"0771234567", "0782223334", "0793334445", "0704445556"},
		},
		{
			name:    "NameCaseInsensitive",
			query:   "ALICE",
			wantIDs: []string{"0771234567", "0793334445"},
		},
		{
			name:    "ContactSubstring",
			query:   "22233",
			wantIDs: []string{"0782223334"},
		},
		{
			name:     "LocationExact",
			location: "North",
			wantIDs:  []string{"0771234567", "0793334445"},
		},
		{
			name:     "QueryAndLocation",
			query:    "alice",
			location: "North",
			wantIDs:  []string{"0771234567", "0793334445"},
		},
		{
			name:     "LocationNeverSubstring",
			location: "Nor",
			wantIDs:  []string{},
		},
		{
			name:    "NoMatch",
			query:   "zzz",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roster.Apply(sampleRoster(), tt.query, tt.location)

			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApply_EmptyContactFallsBackToID(t *testing.T) {
	// Backends that omit contact_number key the roster row by the
	// contact number in the id; the number search must still find it.
	in := []roster.Customer{
		{ID: "0771234567", Name: "Alice Auma", Location: "North"},
	}

	got := roster.Apply(in, "12345", "")
	assert.Len(t, got, 1)

	// With a contact present the id is never consulted.
	in = []roster.Customer{
		{ID: "legacy-77", Name: "Alice Auma", Contact: "0771234567"},
	}

	assert.Empty(t, roster.Apply(in, "legacy", ""))
}

func TestApply_EmptyRoster(t *testing.T) {
	assert.Empty(t, roster.Apply(nil, "alice", ""))
	assert.Empty(t, roster.Apply([]roster.Customer{}, "", ""))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := sampleRoster()
	orig := sampleRoster()

	out := roster.Apply(in, "", "")
	out[0].Name = "mutated"

	assert.Equal(t, orig, in)
}

package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pream14/FinanceFrontend/internal/roster"
	"github.com/pream14/FinanceFrontend/internal/session"
)

func newEntrySession(t *testing.T) *session.Session {
	t.Helper()

	ctrl := gomock.NewController(t)

	return session.New(session.NewMockGateway(ctrl))
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestEntryModel_RefreshWithFewerLocationsResetsFilter(t *testing.T) {
	sess := newEntrySession(t)

	_, err := sess.ApplyRoster(sess.Generation(), []roster.Customer{
		{ID: "0771234567", Name: "Alice Auma", Contact: "0771234567", Location: "North"},
		{ID: "0782223334", Name: "Bob Okello", Contact: "0782223334", Location: "South"},
		{ID: "0793334445", Name: "Grace Apio", Contact: "0793334445", Location: "East"},
	})
	require.NoError(t, err)

	var model tea.Model = NewEntryModel(sess)

	// Cycle the location filter to the last option.
	for range 3 {
		model, _ = model.Update(keyPress('l'))
	}

	m := model.(EntryModel)
	assert.Equal(t, "East", m.currentLocation())

	// A refresh lands a replacement roster with a single location while
	// the filter still points past it.
	model, _ = model.Update(rosterFetchedMsg{
		gen: sess.Generation(),
		customers: []roster.Customer{
			{ID: "0704445556", Name: "Okello Opio", Contact: "0704445556", Location: "West"},
		},
	})

	m = model.(EntryModel)
	assert.Zero(t, m.locationIdx)
	assert.Len(t, m.rows, 1)
	assert.NotEmpty(t, m.View())
}

func TestEntryModel_LocationCycleFilters(t *testing.T) {
	sess := newEntrySession(t)

	_, err := sess.ApplyRoster(sess.Generation(), []roster.Customer{
		{ID: "0771234567", Name: "Alice Auma", Contact: "0771234567", Location: "North"},
		{ID: "0782223334", Name: "Bob Okello", Contact: "0782223334", Location: "South"},
	})
	require.NoError(t, err)

	var model tea.Model = NewEntryModel(sess)

	model, _ = model.Update(keyPress('l'))

	m := model.(EntryModel)
	assert.Equal(t, "North", m.currentLocation())
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Alice Auma", m.rows[0].Customer.Name)

	// Cycling past the last location wraps back to all.
	model, _ = model.Update(keyPress('l'))
	model, _ = model.Update(keyPress('l'))

	m = model.(EntryModel)
	assert.Zero(t, m.locationIdx)
	assert.Len(t, m.rows, 2)
}

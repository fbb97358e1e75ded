package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pream14/FinanceFrontend/internal/ledger"
	"github.com/pream14/FinanceFrontend/internal/reconcile"
	"github.com/pream14/FinanceFrontend/internal/roster"
	"github.com/pream14/FinanceFrontend/internal/session"
)

type entryState int

const (
	entryStateBrowse entryState = iota
	entryStateSearch
	entryStateEdit
	entryStateDay
)

// EntryModel is the collection screen: the roster with the active
// day's amounts, edited in place and submitted as one batch.
type EntryModel struct {
	CommonModel
	sess *session.Session

	state entryState
	table table.Model
	rows  []ledger.Row

	search      textinput.Model
	locationIdx int

	form       *huh.Form
	formAmount string
	formDay    string

	loading bool
	err     error
	status  string
}

func NewEntryModel(sess *session.Session) EntryModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Contact", Width: 14},
		{Title: "Location", Width: 12},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 8},
		{Title: "Type", Width: 10},
		{Title: "Previous", Width: 10},
		{Title: "Synced", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "name or contact"
	search.CharLimit = 40
	search.Width = 30

	return EntryModel{
		sess:   sess,
		table:  t,
		search: search,
	}
}

func (m EntryModel) Title() string { return "Collection Entry" }

func (m EntryModel) ShortHelp() string {
	switch m.state {
	case entryStateSearch:
		return "Type to filter | Enter/Esc: done"
	case entryStateEdit, entryStateDay:
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | e: amount | t: type | p: previous | /: search | l: location | d: day | r: refresh | ctrl+s: submit"
}

func (m EntryModel) Init() tea.Cmd {
	return m.loadRosterCmd()
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		applied, err := m.sess.ApplyRoster(msg.gen, msg.customers)
		if err != nil {
			m.err = err
			return m, nil
		}

		if !applied {
			return m, nil
		}

		m.err = nil
		m.refreshTable()

		return m, m.priorPaymentsCmd()

	case priorPaymentsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Prior payments unavailable: %v", msg.err)
			return m, nil
		}

		if m.sess.ApplyPriorPayments(msg.gen, msg.day, msg.records) {
			m.status = ""
			m.refreshTable()
		}

		return m, nil

	case prevAmountMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Previous amount unavailable for %s", msg.customerID)
			return m, nil
		}

		if m.sess.ApplyPreviousAmount(msg.gen, msg.customerID, msg.day, msg.amount) {
			m.refreshTable()
		}

		return m, nil

	case submitDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Submit failed: %v", msg.err)
			return m, nil
		}

		if msg.day == m.sess.Day() {
			m.sess.Ledger().MarkPersisted(msg.day)
			m.refreshTable()
		}

		m.status = msg.message

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case entryStateBrowse:
		return m.updateBrowse(msg)
	case entryStateSearch:
		return m.updateSearch(msg)
	case entryStateEdit, entryStateDay:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m EntryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadRosterCmd()
		case "/":
			m.state = entryStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "l":
			m.locationIdx = (m.locationIdx + 1) % (len(m.sess.Roster().Locations()) + 1)
			m.refreshTable()

			return m, nil
		case "e", "enter":
			return m.enterAmountEdit()
		case "t":
			return m.toggleType()
		case "p":
			return m.fetchPrevious()
		case "d":
			return m.enterDayEdit()
		case "ctrl+s":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EntryModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.state = entryStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m EntryModel) selectedRow() (ledger.Row, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return ledger.Row{}, false
	}

	return m.rows[idx], true
}

func (m EntryModel) enterAmountEdit() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}

	m.formAmount = ""
	if row.Entry.AmountPaid != 0 {
		m.formAmount = FormatAmount(row.Entry.AmountPaid)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Amount for %s", row.Customer.Name)).
				Placeholder("0").
				Value(&m.formAmount),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = entryStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m EntryModel) enterDayEdit() (tea.Model, tea.Cmd) {
	m.formDay = m.sess.Day()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("day").
				Title("Collection day").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDay).
				Validate(func(s string) error {
					_, err := ledger.ParseDay(s)
					return err
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = entryStateDay
	m.table.Blur()

	return m, m.form.Init()
}

func (m EntryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = entryStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	state := m.state
	m.state = entryStateBrowse
	m.table.Focus()

	if state == entryStateDay {
		m.formDay = m.form.GetString("day")
		m.form = nil

		if err := m.sess.ChangeDay(m.formDay); err != nil {
			m.status = fmt.Sprintf("Invalid day: %v", err)
			return m, nil
		}

		m.refreshTable()

		return m, m.priorPaymentsCmd()
	}

	m.formAmount = m.form.GetString("amount")
	m.form = nil

	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}

	m.sess.Ledger().SetAmount(row.Customer.ID, m.sess.Day(), m.formAmount)
	m.refreshTable()

	return m, nil
}

func (m EntryModel) toggleType() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}

	next := ledger.TypeAddition
	if row.Entry.Type == ledger.TypeAddition {
		next = ledger.TypePayment
	}

	m.sess.Ledger().SetTransactionType(row.Customer.ID, m.sess.Day(), next)
	m.refreshTable()

	return m, nil
}

func (m EntryModel) fetchPrevious() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}

	if row.Entry.PreviousKnown {
		return m, nil
	}

	return m, m.prevAmountCmd(row.Customer.ID)
}

func (m EntryModel) submit() (tea.Model, tea.Cmd) {
	cmd, err := m.submitCmd()
	if err != nil {
		m.status = fmt.Sprintf("Cannot submit: %v", err)
		return m, nil
	}

	m.status = "Submitting..."

	return m, cmd
}

func (m EntryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading roster...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	location := m.currentLocation()
	if location == "" {
		location = "All"
	}

	header := fmt.Sprintf(
		"Day: %s | [l] Location: %s | [/] Search: %s | Total: %s",
		activeStyle(m.sess.Day()),
		activeStyle(location),
		m.search.View(),
		activeStyle(FormatAmount(m.sess.Total())),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if (m.state == entryStateEdit || m.state == entryStateDay) && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// currentLocation resolves the cycled location filter, or "" for all.
func (m EntryModel) currentLocation() string {
	locations := m.sess.Roster().Locations()
	if m.locationIdx <= 0 || m.locationIdx > len(locations) {
		return ""
	}

	return locations[m.locationIdx-1]
}

func (m *EntryModel) refreshTable() {
	// A reloaded roster can carry fewer locations than the filter was
	// cycled to; the filter falls back to all.
	if m.locationIdx > len(m.sess.Roster().Locations()) {
		m.locationIdx = 0
	}

	customers := roster.Apply(m.sess.Roster().All(), m.search.Value(), m.currentLocation())
	snap := m.sess.Ledger().Snapshot(m.sess.Day(), customers)
	m.rows = snap.Rows

	rows := make([]table.Row, 0, len(m.rows))

	for _, row := range m.rows {
		previous := "-"
		if row.Entry.PreviousKnown {
			previous = FormatAmount(row.Entry.PreviousAmount)
		}

		synced := ""
		if row.Entry.Persisted {
			synced = "yes"
		}

		rows = append(rows, table.Row{
			row.Customer.Name,
			row.Customer.Contact,
			row.Customer.Location,
			FormatAmount(row.Entry.AmountPaid),
			string(row.Entry.Status),
			string(row.Entry.Type),
			previous,
			synced,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type rosterFetchedMsg struct {
	gen       uint64
	customers []roster.Customer
	err       error
}

func (m EntryModel) loadRosterCmd() tea.Cmd {
	gen := m.sess.Generation()
	gw := m.sess.Gateway()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		customers, err := gw.FetchRoster(ctx)

		return rosterFetchedMsg{gen: gen, customers: customers, err: err}
	}
}

type priorPaymentsMsg struct {
	gen     uint64
	day     string
	records []ledger.ServerPayment
	err     error
}

func (m EntryModel) priorPaymentsCmd() tea.Cmd {
	gen := m.sess.Generation()
	day := m.sess.Day()
	gw := m.sess.Gateway()
	customers := m.sess.Roster().All()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var records []ledger.ServerPayment

		for _, c := range customers {
			batch, err := gw.FetchPriorPayments(ctx, c.ID, day)
			if err != nil {
				return priorPaymentsMsg{gen: gen, day: day, err: err}
			}

			records = append(records, batch...)
		}

		return priorPaymentsMsg{gen: gen, day: day, records: records}
	}
}

type prevAmountMsg struct {
	gen        uint64
	day        string
	customerID string
	amount     int64
	err        error
}

func (m EntryModel) prevAmountCmd(customerID string) tea.Cmd {
	gen := m.sess.Generation()
	day := m.sess.Day()
	gw := m.sess.Gateway()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		amount, err := gw.FetchPreviousAmount(ctx, customerID, day)

		return prevAmountMsg{gen: gen, day: day, customerID: customerID, amount: amount, err: err}
	}
}

type submitDoneMsg struct {
	day     string
	message string
	err     error
}

func (m EntryModel) submitCmd() (tea.Cmd, error) {
	updates, err := reconcile.BuildBatch(m.sess.Snapshot(), m.sess.WorkerID())
	if err != nil {
		return nil, err
	}

	day := m.sess.Day()
	gw := m.sess.Gateway()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		message, err := gw.SubmitBatch(ctx, updates)

		return submitDoneMsg{day: day, message: message, err: err}
	}, nil
}

package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pream14/FinanceFrontend/internal/gateway"
	"github.com/pream14/FinanceFrontend/internal/session"
)

type workerEntriesState int

const (
	workerEntriesStatePick workerEntriesState = iota
	workerEntriesStateEntries
)

// WorkerEntriesModel reviews what each worker has collected on the
// active day, using the backend's records rather than local state.
type WorkerEntriesModel struct {
	CommonModel
	sess *session.Session

	state workerEntriesState

	workers     []gateway.Worker
	workerTable table.Model

	entries      gateway.WorkerEntries
	entriesTable table.Model
	pickedWorker string

	loading bool
	err     error
}

func NewWorkerEntriesModel(sess *session.Session) WorkerEntriesModel {
	wt := table.New(
		table.WithColumns([]table.Column{
			{Title: "Worker ID", Width: 14},
			{Title: "Username", Width: 24},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	et := table.New(
		table.WithColumns([]table.Column{
			{Title: "Customer", Width: 24},
			{Title: "Contact", Width: 14},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	wt.SetStyles(s)
	et.SetStyles(s)

	return WorkerEntriesModel{sess: sess, workerTable: wt, entriesTable: et}
}

func (m WorkerEntriesModel) Title() string { return "Worker Entries" }

func (m WorkerEntriesModel) ShortHelp() string {
	if m.state == workerEntriesStateEntries {
		return "Esc: back to workers | r: refresh"
	}

	return "Esc: back | Enter: pick worker | a: all workers"
}

func (m WorkerEntriesModel) Init() tea.Cmd {
	return m.loadWorkersCmd()
}

func (m WorkerEntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.workers = msg.workers
		m.refreshWorkerTable()

		return m, nil

	case workerEntriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.entries = msg.entries
		m.state = workerEntriesStateEntries
		m.refreshEntriesTable()

		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateTables(msg)
	}

	switch m.state {
	case workerEntriesStatePick:
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			idx := m.workerTable.Cursor()
			if idx < 0 || idx >= len(m.workers) {
				return m, nil
			}

			m.pickedWorker = m.workers[idx].UserID
			m.loading = true

			return m, m.loadEntriesCmd(m.pickedWorker)
		case "a":
			m.pickedWorker = ""
			m.loading = true

			return m, m.loadEntriesCmd("")
		}

	case workerEntriesStateEntries:
		switch keyMsg.String() {
		case "esc":
			m.state = workerEntriesStatePick
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadEntriesCmd(m.pickedWorker)
		}
	}

	return m.updateTables(msg)
}

func (m WorkerEntriesModel) updateTables(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case workerEntriesStatePick:
		m.workerTable, cmd = m.workerTable.Update(msg)
	case workerEntriesStateEntries:
		m.entriesTable, cmd = m.entriesTable.Update(msg)
	}

	return m, cmd
}

func (m WorkerEntriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == workerEntriesStatePick {
		return lipgloss.NewStyle().Padding(1).Render(
			"Pick a worker\n\n" + m.workerTable.View(),
		)
	}

	who := m.pickedWorker
	if who == "" {
		who = "all workers"
	}

	header := fmt.Sprintf("Entries for %s on %s | Total: %s",
		activeStyle(who),
		activeStyle(m.sess.Day()),
		activeStyle(FormatAmount(m.entries.Total)),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		header + "\n\n" + m.entriesTable.View(),
	)
}

func (m *WorkerEntriesModel) refreshWorkerTable() {
	rows := make([]table.Row, 0, len(m.workers))
	for _, w := range m.workers {
		rows = append(rows, table.Row{w.UserID, w.Username})
	}

	m.workerTable.SetRows(rows)
}

func (m *WorkerEntriesModel) refreshEntriesTable() {
	rows := make([]table.Row, 0, len(m.entries.Payments))
	for _, e := range m.entries.Payments {
		rows = append(rows, table.Row{
			e.CustomerName,
			e.CustomerID,
			FormatAmount(e.AmountPaid),
			string(e.PaymentStatus),
		})
	}

	m.entriesTable.SetRows(rows)
}

// Messages

type workersMsg struct {
	workers []gateway.Worker
	err     error
}

func (m WorkerEntriesModel) loadWorkersCmd() tea.Cmd {
	gw := m.sess.Gateway()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		workers, err := gw.FetchWorkers(ctx)

		return workersMsg{workers: workers, err: err}
	}
}

type workerEntriesMsg struct {
	entries gateway.WorkerEntries
	err     error
}

func (m WorkerEntriesModel) loadEntriesCmd(workerID string) tea.Cmd {
	gw := m.sess.Gateway()
	day := m.sess.Day()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		entries, err := gw.FetchWorkerEntries(ctx, workerID, day)

		return workerEntriesMsg{entries: entries, err: err}
	}
}

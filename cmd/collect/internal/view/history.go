package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pream14/FinanceFrontend/internal/gateway"
	"github.com/pream14/FinanceFrontend/internal/session"
)

type historyState int

const (
	historyStateForm historyState = iota
	historyStateLoading
	historyStateResults
)

// HistoryModel looks a customer up by contact number or name and shows
// their payment history with the outstanding balance.
type HistoryModel struct {
	CommonModel
	sess *session.Session

	state historyState
	form  *huh.Form
	table table.Model

	customerID   string
	customerName string

	records []gateway.HistoryRecord

	err error
}

func NewHistoryModel(sess *session.Session) HistoryModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Customer", Width: 24},
			{Title: "Amount", Width: 10},
			{Title: "Loan", Width: 10},
			{Title: "Balance", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := HistoryModel{sess: sess, table: t}
	m.form = m.newForm()

	return m
}

func (m HistoryModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customer_id").
				Title("Contact number").
				Placeholder("leave empty to search by name").
				Value(&m.customerID),

			huh.NewInput().
				Key("customer_name").
				Title("Customer name").
				Value(&m.customerName),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m HistoryModel) Title() string { return "Payment History" }

func (m HistoryModel) ShortHelp() string {
	if m.state == historyStateResults {
		return "Esc: new search | q: back"
	}

	return "Enter: search | Esc: back"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		if msg.err != nil {
			m.state = historyStateForm
			m.err = msg.err
			m.form = m.newForm()

			return m, m.form.Init()
		}

		m.err = nil
		m.records = msg.records
		m.state = historyStateResults
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case historyStateForm:
			if msg.Type == tea.KeyEsc {
				return m, Back
			}
		case historyStateResults:
			switch msg.String() {
			case "esc":
				m.state = historyStateForm
				m.customerID = ""
				m.customerName = ""
				m.form = m.newForm()

				return m, m.form.Init()
			case "q":
				return m, Back
			}
		}
	}

	switch m.state {
	case historyStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.customerID = strings.TrimSpace(m.form.GetString("customer_id"))
		m.customerName = strings.TrimSpace(m.form.GetString("customer_name"))

		if m.customerID == "" && m.customerName == "" {
			m.err = fmt.Errorf("enter a contact number or a name")
			m.form = m.newForm()

			return m, m.form.Init()
		}

		m.state = historyStateLoading

		return m, m.loadHistoryCmd()

	case historyStateResults:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m HistoryModel) View() string {
	switch m.state {
	case historyStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading history...")

	case historyStateResults:
		header := fmt.Sprintf("%d payments", len(m.records))
		if len(m.records) > 0 {
			header += fmt.Sprintf(" | Balance: %s", activeStyle(FormatAmount(m.records[0].Balance)))
		}

		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + m.table.View())
	}

	content := "Payment History\n\n" + m.form.View()
	if m.err != nil {
		content = lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))

	for _, r := range m.records {
		rows = append(rows, table.Row{
			r.PaymentDate,
			r.CustomerName,
			FormatAmount(r.AmountPaid),
			FormatAmount(r.LoanAmount),
			FormatAmount(r.Balance),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type historyMsg struct {
	records []gateway.HistoryRecord
	err     error
}

func (m HistoryModel) loadHistoryCmd() tea.Cmd {
	gw := m.sess.Gateway()
	customerID := m.customerID
	customerName := m.customerName

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		records, err := gw.FetchPaymentHistory(ctx, customerID, customerName)

		return historyMsg{records: records, err: err}
	}
}

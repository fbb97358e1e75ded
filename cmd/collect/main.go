package main

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/pream14/FinanceFrontend/cmd/collect/internal/view"
	"github.com/pream14/FinanceFrontend/internal/auth"
	"github.com/pream14/FinanceFrontend/internal/config"
	"github.com/pream14/FinanceFrontend/internal/gateway"
	"github.com/pream14/FinanceFrontend/internal/session"
)

type model struct {
	sess   *session.Session
	tokens *auth.TokenStore

	currentView View

	loginView   view.LoginModel
	entryView   view.EntryModel
	workersView view.WorkerEntriesModel
	historyView view.HistoryModel
}

type View int

const (
	ViewMenu    View = 0
	ViewEntry   View = 1
	ViewWorkers View = 2
	ViewHistory View = 3
	ViewLogin   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client := gateway.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sess := session.New(client)

	tokens, err := auth.NewTokenStore()
	if err != nil {
		slog.Warn("credential cache unavailable", "error", err)
	} else if creds, err := tokens.Load(); err == nil {
		sess.Authorize(creds)
	} else if !errors.Is(err, auth.ErrNoCredentials) {
		slog.Warn("failed to load cached credentials", "error", err)
	}

	return model{
		sess:        sess,
		tokens:      tokens,
		currentView: ViewMenu,
		loginView:   view.NewLoginModel(sess, tokens),
		entryView:   view.NewEntryModel(sess),
		workersView: view.NewWorkerEntriesModel(sess),
		historyView: view.NewHistoryModel(sess),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewEntry
				m.entryView = view.NewEntryModel(m.sess)

				return m, m.entryView.Init()
			case "2":
				m.currentView = ViewWorkers
				m.workersView = view.NewWorkerEntriesModel(m.sess)

				return m, m.workersView.Init()
			case "3":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.sess)

				return m, m.historyView.Init()
			case "4":
				m.currentView = ViewLogin
				m.loginView = view.NewLoginModel(m.sess, m.tokens)

				return m, m.loginView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewEntry:
		var newModel tea.Model
		newModel, cmd = m.entryView.Update(msg)
		m.entryView = newModel.(view.EntryModel)
	case ViewWorkers:
		var newModel tea.Model
		newModel, cmd = m.workersView.Update(msg)
		m.workersView = newModel.(view.WorkerEntriesModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		who := "not logged in"
		if m.sess.Authenticated() {
			who = "logged in as " + m.sess.Username()
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Collections (" + who + ")\n\n" +
				"1. Collection Entry\n" +
				"2. Worker Entries\n" +
				"3. Payment History\n" +
				"4. Login\n\n" +
				"q. Quit",
		)
	case ViewEntry:
		return m.entryView.View()
	case ViewWorkers:
		return m.workersView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewLogin:
		return m.loginView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

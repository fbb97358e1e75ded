package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pream14/FinanceFrontend/internal/auth"
	"github.com/pream14/FinanceFrontend/internal/gateway"
	"github.com/pream14/FinanceFrontend/internal/session"
)

type loginState int

const (
	loginStateForm loginState = iota
	loginStateBusy
	loginStateDone
)

type LoginModel struct {
	CommonModel
	sess   *session.Session
	tokens *auth.TokenStore

	state loginState
	form  *huh.Form

	userID   string
	password string

	status string
	err    error
}

func NewLoginModel(sess *session.Session, tokens *auth.TokenStore) LoginModel {
	m := LoginModel{sess: sess, tokens: tokens}
	m.form = m.newForm()

	return m
}

func (m LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("user_id").
				Title("Worker ID").
				Value(&m.userID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("worker ID cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string { return "Login" }

func (m LoginModel) ShortHelp() string {
	if m.state == loginStateDone {
		return "Esc: back"
	}

	return "Enter: submit | Esc: cancel"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case loginResultMsg:
		m.state = loginStateDone
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Login failed: %v", msg.err)

			return m, nil
		}

		m.sess.Authorize(msg.creds)

		if m.tokens != nil {
			// Failing to cache credentials is not a login failure.
			_ = m.tokens.Save(msg.creds)
		}

		m.status = fmt.Sprintf("Logged in as %s.", msg.creds.Username)

		return m, nil
	}

	if m.state != loginStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = loginStateBusy
	m.userID = m.form.GetString("user_id")
	m.password = m.form.GetString("password")

	return m, m.loginCmd()
}

func (m LoginModel) View() string {
	switch m.state {
	case loginStateBusy:
		return lipgloss.NewStyle().Padding(2).Render("Logging in...")
	case loginStateDone:
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\nEsc: back")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render("Worker Login\n\n" + m.form.View())
}

type loginResultMsg struct {
	creds gateway.Credentials
	err   error
}

func (m LoginModel) loginCmd() tea.Cmd {
	userID := m.userID
	password := m.password

	gw := m.sess.Gateway()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		creds, err := gw.Login(ctx, userID, password)

		return loginResultMsg{creds: creds, err: err}
	}
}

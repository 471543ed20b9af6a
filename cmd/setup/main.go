package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultPort   = "8000"
	defaultDBPath = "app.db"
	envFileName   = ".env"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type step int

const (
	stepEnteringPort step = iota
	stepEnteringDBPath
	stepEnteringSecret
	stepWritingEnv
	stepComplete
)

type model struct {
	step         step
	port         string
	dbPath       string
	secret       string
	currentInput string
	message      string
	quitting     bool
}

type envWrittenMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{step: stepEnteringPort}
}

func (m model) Init() tea.Cmd {
	return nil
}

// generateSecret returns a fresh 256-bit hex signing secret.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func writeEnvFile(port, dbPath, secret string) tea.Cmd {
	return func() tea.Msg {
		var b strings.Builder
		fmt.Fprintf(&b, "PORT=%s\n", port)
		fmt.Fprintf(&b, "DB_PATH=%s\n", dbPath)
		fmt.Fprintf(&b, "JWT_SECRET=%s\n", secret)
		fmt.Fprintf(&b, "GIN_MODE=release\n")

		if err := os.WriteFile(envFileName, []byte(b.String()), 0o600); err != nil {
			return errMsg{fmt.Errorf("could not write %s: %w", envFileName, err)}
		}
		return envWrittenMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
			return m, nil

		default:
			if len(msg.String()) == 1 {
				m.currentInput += msg.String()
			}
			return m, nil
		}

	case envWrittenMsg:
		m.step = stepComplete
		return m, nil

	case errMsg:
		m.message = msg.Error()
		return m, nil
	}

	return m, nil
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepEnteringPort:
		m.port = strings.TrimSpace(m.currentInput)
		if m.port == "" {
			m.port = defaultPort
		}
		m.currentInput = ""
		m.step = stepEnteringDBPath
		return m, nil

	case stepEnteringDBPath:
		m.dbPath = strings.TrimSpace(m.currentInput)
		if m.dbPath == "" {
			m.dbPath = defaultDBPath
		}
		m.currentInput = ""
		m.step = stepEnteringSecret
		return m, nil

	case stepEnteringSecret:
		m.secret = strings.TrimSpace(m.currentInput)
		if m.secret == "" {
			generated, err := generateSecret()
			if err != nil {
				m.message = "could not generate a secret: " + err.Error()
				return m, nil
			}
			m.secret = generated
		}
		m.currentInput = ""
		m.step = stepWritingEnv
		return m, writeEnvFile(m.port, m.dbPath, m.secret)

	case stepComplete:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Draw → Photo server setup"))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message))
		b.WriteString("\n\n")
	}

	switch m.step {
	case stepEnteringPort:
		b.WriteString(promptStyle.Render("Port to listen on"))
		b.WriteString(hintStyle.Render(" (enter for " + defaultPort + ")"))
		b.WriteString("\n> " + inputStyle.Render(m.currentInput))

	case stepEnteringDBPath:
		b.WriteString(promptStyle.Render("SQLite database path"))
		b.WriteString(hintStyle.Render(" (enter for " + defaultDBPath + ")"))
		b.WriteString("\n> " + inputStyle.Render(m.currentInput))

	case stepEnteringSecret:
		b.WriteString(promptStyle.Render("JWT signing secret"))
		b.WriteString(hintStyle.Render(" (enter to generate one)"))
		b.WriteString("\n> " + inputStyle.Render(strings.Repeat("*", len(m.currentInput))))

	case stepWritingEnv:
		b.WriteString("Writing " + envFileName + "...")

	case stepComplete:
		b.WriteString(successStyle.Render("Done! Configuration written to " + envFileName))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Start the server with: go run ."))
		b.WriteString("\n\nPress enter to exit.")
	}

	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("esc to quit"))
	return b.String()
}

func main() {
	if _, err := os.Stat(envFileName); err == nil {
		fmt.Printf("%s already exists, refusing to overwrite it.\n", envFileName)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("setup failed: %v\n", err)
		os.Exit(1)
	}
}

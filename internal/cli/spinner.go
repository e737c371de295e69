package cli

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/arxium/internal/client"
)

// Theme holds the color scheme for CLI output.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// answerMsg carries the query result back into the UI loop.
type answerMsg struct {
	result *client.QueryResult
	err    error
}

// askModel is the bubbletea model shown while a question is in flight.
type askModel struct {
	spinner  spinner.Model
	theme    Theme
	query    string
	run      func(ctx context.Context) (*client.QueryResult, error)
	result   *client.QueryResult
	err      error
	canceled bool
}

func newAskModel(query string, run func(ctx context.Context) (*client.QueryResult, error)) askModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return askModel{
		spinner: sp,
		theme:   defaultTheme,
		query:   query,
		run:     run,
	}
}

// Init starts the spinner and fires the query.
func (m askModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.ask())
}

// Update handles messages and returns the updated model.
func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			return m, tea.Quit
		}

	case answerMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the waiting line.
func (m askModel) View() tea.View {
	if m.result != nil || m.err != nil || m.canceled {
		return tea.NewView("")
	}
	line := fmt.Sprintf("%s %s %s",
		m.spinner.View(),
		m.theme.statusStyle().Render("Searching papers and writing an answer for"),
		m.query)
	return tea.NewView(line + "\n" + m.theme.hintStyle().Render("Press Ctrl+C to cancel") + "\n")
}

// ask runs the query in a command so Update never blocks.
func (m askModel) ask() tea.Cmd {
	return func() tea.Msg {
		result, err := m.run(context.Background())
		return answerMsg{result: result, err: err}
	}
}

// runWithSpinner executes run behind an interactive spinner and returns its
// result. Cancelling the UI aborts with a plain error.
func runWithSpinner(query string, run func(ctx context.Context) (*client.QueryResult, error)) (*client.QueryResult, error) {
	p := tea.NewProgram(newAskModel(query, run))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("display error: %w", err)
	}

	m, ok := finalModel.(askModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if m.canceled {
		return nil, fmt.Errorf("canceled")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

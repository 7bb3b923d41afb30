// Package tui renders long running work in the terminal with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const maxBarWidth = 60

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))
)

// ProgressMsg reports how many units of work have finished
type ProgressMsg struct {
	Done  int
	Total int
}

// DoneMsg ends the program once the work returns
type DoneMsg struct {
	Err error
}

// ProgressModel is a Bubble Tea model showing a spinner and a progress bar
type ProgressModel struct {
	title   string
	done    int
	total   int
	bar     progress.Model
	spinner spinner.Model
	cancel  context.CancelFunc
	logger  *log.Logger

	finished bool
	quitting bool
	err      error
}

// NewProgressModel creates a model for total units of work. cancel is called
// when the user quits before the work is done.
func NewProgressModel(title string, total int, cancel context.CancelFunc, logger *log.Logger) *ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &ProgressModel{
		title:   title,
		total:   total,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		spinner: sp,
		cancel:  cancel,
		logger:  logger.WithPrefix("tui"),
	}
}

// Init starts the spinner
func (m *ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.logger.Debug("Cancelled by user", "done", m.done, "total", m.total)
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)
		return m, nil

	case ProgressMsg:
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, m.bar.SetPercent(m.Percent())

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Percent returns the fraction of work done
func (m *ProgressModel) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// Err returns the error the work finished with
func (m *ProgressModel) Err() error {
	return m.err
}

// View renders the model
func (m *ProgressModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" " + m.title + " "))
	b.WriteString("\n\n")

	if m.finished {
		b.WriteString(m.bar.ViewAs(1))
		fmt.Fprintf(&b, "\n%d/%d done\n", m.done, m.total)
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s %d/%d\n\n", m.spinner.View(), m.bar.View(), m.done, m.total)
	if m.quitting {
		b.WriteString(helpStyle.Render("cancelling..."))
	} else {
		b.WriteString(helpStyle.Render("q to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

// RunWithProgress runs work while showing its progress on out. The work
// receives a context cancelled when the user quits and a callback to report
// progress.
func RunWithProgress(ctx context.Context, out io.Writer, title string, total int, logger *log.Logger,
	work func(ctx context.Context, progress func(done, total int)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewProgressModel(title, total, cancel, logger)
	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))

	go func() {
		err := work(ctx, func(done, total int) {
			p.Send(ProgressMsg{Done: done, Total: total})
		})
		p.Send(DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("progress display: %w", err)
	}
	if model.Err() != nil {
		return model.Err()
	}
	return ctx.Err()
}

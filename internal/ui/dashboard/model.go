package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "shelflife/internal/modules/session/dto"
	statsdto "shelflife/internal/modules/stats/dto"
	apperrors "shelflife/internal/platform/errors"
	"shelflife/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this view requires.

type statsPort interface {
	BookStats(ctx context.Context, bookID string) (statsdto.BookStatsOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, bookID string) (sessiondto.StartOutput, error)
	Pause(ctx context.Context) (sessiondto.StatusOutput, error)
	Resume(ctx context.Context) (sessiondto.StatusOutput, error)
	Finalize(ctx context.Context, endingPage int, excludeFromPace bool) (sessiondto.FinalizeOutput, error)
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
}

// ─── async messages ──────────────────────────────────────────────────────────

type tickMsg time.Time

type statsLoadedMsg struct {
	stats statsdto.BookStatsOutput
	err   error
}

type sessionStatusMsg struct {
	status sessiondto.StatusOutput
	err    error
}

type sessionFinalizedMsg struct {
	out sessiondto.FinalizeOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Start   key.Binding
	Pause   key.Binding
	Finish  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Finish, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Finish},
		{k.Refresh, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model for the dashboard: one screen with
// the current book's stat cards and the live session timer. Business
// logic stays behind the port interfaces; the timer ticks once a
// second and re-derives elapsed time from a read-only status query.
type Model struct {
	stats   statsPort
	session sessionPort

	current   statsdto.BookStatsOutput
	hasBook   bool
	active    sessiondto.StatusOutput
	hasActive bool

	progress progress.Model
	pageIn   textinput.Model
	prompt   bool

	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(stats statsPort, session sessionPort) Model {
	bar := progress.New(
		progress.WithGradient(string(theme.Sapphire), string(theme.Green)),
		progress.WithoutPercentage(),
	)

	input := textinput.New()
	input.Placeholder = "ending page"
	input.CharLimit = 6
	input.Width = 12

	return Model{
		stats:    stats,
		session:  session,
		progress: bar,
		pageIn:   input,
		keys:     defaultKeys(),
		help:     help.New(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStatsCmd(), m.loadStatusCmd(), tickCmd())
}

// ─── commands ────────────────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.stats.BookStats(context.Background(), "")
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.session.Status(context.Background())
		return sessionStatusMsg{status: status, err: err}
	}
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		barWidth := m.width - 12
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.progress.Width = barWidth
		}

	case tickMsg:
		if m.hasActive && !m.active.Paused {
			return m, tea.Batch(m.loadStatusCmd(), tickCmd())
		}
		return m, tickCmd()

	case statsLoadedMsg:
		if msg.err != nil {
			if msg.err == apperrors.ErrNotFound {
				m.hasBook = false
				m.status = "no current book; add one with the CLI"
			} else {
				m.status = "stats: " + msg.err.Error()
			}
			return m, nil
		}
		m.hasBook = true
		m.current = msg.stats

	case sessionStatusMsg:
		if msg.err != nil {
			m.hasActive = false
			if msg.err != apperrors.ErrNoActiveSession {
				m.status = "session: " + msg.err.Error()
			}
			return m, nil
		}
		m.hasActive = true
		m.active = msg.status

	case sessionFinalizedMsg:
		if msg.err != nil {
			m.status = "finish failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = false
		m.active = sessiondto.StatusOutput{}
		m.status = fmt.Sprintf("session saved: %d pages in %s", msg.out.Pages, formatElapsed(time.Duration(msg.out.DurationMin*float64(time.Minute))))
		if msg.out.BookCompleted {
			m.status = "book finished! rate it with: shelflife book rate"
		}
		return m, m.loadStatsCmd()

	case tea.KeyMsg:
		if m.prompt {
			return m.updatePrompt(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Refresh):
			return m, tea.Batch(m.loadStatsCmd(), m.loadStatusCmd())
		case key.Matches(msg, m.keys.Start):
			if !m.hasActive {
				return m, m.startCmd()
			}
		case key.Matches(msg, m.keys.Pause):
			if m.hasActive {
				return m, m.togglePauseCmd()
			}
		case key.Matches(msg, m.keys.Finish):
			if m.hasActive {
				m.prompt = true
				m.pageIn.SetValue("")
				return m, m.pageIn.Focus()
			}
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = false
		m.pageIn.Blur()
		return m, nil
	case tea.KeyEnter:
		page, err := strconv.Atoi(strings.TrimSpace(m.pageIn.Value()))
		if err != nil || page < 0 {
			m.status = "enter the page number you stopped on"
			return m, nil
		}
		m.prompt = false
		m.pageIn.Blur()
		return m, m.finalizeCmd(page)
	}
	var cmd tea.Cmd
	m.pageIn, cmd = m.pageIn.Update(msg)
	return m, cmd
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.session.Start(context.Background(), ""); err != nil {
			return sessionStatusMsg{err: err}
		}
		status, err := m.session.Status(context.Background())
		return sessionStatusMsg{status: status, err: err}
	}
}

func (m Model) togglePauseCmd() tea.Cmd {
	paused := m.active.Paused
	return func() tea.Msg {
		var status sessiondto.StatusOutput
		var err error
		if paused {
			status, err = m.session.Resume(context.Background())
		} else {
			status, err = m.session.Pause(context.Background())
		}
		return sessionStatusMsg{status: status, err: err}
	}
}

func (m Model) finalizeCmd(page int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Finalize(context.Background(), page, false)
		return sessionFinalizedMsg{out: out, err: err}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sections []string
	sections = append(sections, m.renderBookPane())
	sections = append(sections, m.renderSessionPane())
	if m.prompt {
		sections = append(sections, theme.Pane.Render("Ending page: "+m.pageIn.View()))
	}
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	sections = append(sections, theme.Muted.Render(m.status))
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderBookPane() string {
	if !m.hasBook {
		return theme.Pane.Render(theme.Muted.Render("No current book."))
	}
	s := m.current

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.Title))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(float64(s.ProgressPercent) / 100))
	b.WriteString(fmt.Sprintf("  %d%%  (page %d of %d)\n\n", s.ProgressPercent, s.PagesRead, s.PagesTotal))

	rows := [][2]string{
		{"Pace", paceLabel(s)},
		{"Time left", s.TimeRemainingLabel},
		{"Pages/day", s.PagesPerDayLabel},
		{"Target page today", s.TargetPageLabel},
		{"Session length", s.SessionLengthLabel},
	}
	for _, row := range rows {
		b.WriteString(theme.Muted.Render(fmt.Sprintf("%-18s", row[0])))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	if s.AtRisk {
		b.WriteString("\n")
		b.WriteString(theme.Alert.Render("⚠ due date at risk"))
	}
	return theme.Pane.Render(b.String())
}

func (m Model) renderSessionPane() string {
	if !m.hasActive {
		return theme.Pane.Render(theme.Muted.Render("No session running. Press s to start."))
	}
	var b strings.Builder
	state := theme.Good.Render("reading")
	if m.active.Paused {
		state = theme.Hot.Render("paused")
	}
	b.WriteString(theme.Title.Render("Session"))
	b.WriteString("  ")
	b.WriteString(state)
	b.WriteString("\n\n")
	b.WriteString(theme.Hot.Render(formatElapsed(m.active.Elapsed)))
	b.WriteString(theme.Muted.Render(fmt.Sprintf("  %d segment(s)", m.active.Segments)))
	return theme.PaneActive.Render(b.String())
}

func paceLabel(s statsdto.BookStatsOutput) string {
	if s.Pace == 0 {
		return "--"
	}
	label := fmt.Sprintf("%.2f pages/min", s.Pace)
	if s.PaceOverride {
		label += " (manual)"
	}
	return label
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

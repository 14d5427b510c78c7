package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bikeshare/internal/modules/tripstats/dto"
	"bikeshare/internal/ui/components"
	"bikeshare/internal/ui/theme"
	"bikeshare/internal/ui/views/picker"
	"bikeshare/internal/ui/views/report"
)

// ─── port ────────────────────────────────────────────────────────────────────

type analysisPort interface {
	Selectors(ctx context.Context) (dto.SelectorsOutput, error)
	Analyze(ctx context.Context, city, month, day string) (dto.AnalysisOutput, error)
}

// ─── stages ──────────────────────────────────────────────────────────────────

type stage int

const (
	stageCity stage = iota
	stageMonth
	stageDay
	stageReport
)

var stageTitles = map[stage]string{
	stageCity:  "Which city do you want to explore?",
	stageMonth: "Which month?",
	stageDay:   "Which day of the week?",
}

// ─── async messages ──────────────────────────────────────────────────────────

type selectorsLoadedMsg struct {
	selectors dto.SelectorsOutput
	err       error
}

// analysisDoneMsg carries the seq of the analysis that produced it; results
// from a superseded analysis are dropped.
type analysisDoneMsg struct {
	seq int
	out dto.AnalysisOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Pick    key.Binding
	Back    key.Binding
	Raw     key.Binding
	Restart key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pick:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Raw:     key.NewBinding(key.WithKeys("n", " "), key.WithHelp("n", "more raw rows")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Raw, k.Restart, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pick, k.Back},
		{k.Raw, k.Restart},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model walks the user through city, month and day, then shows the report.
// Analyses run one at a time in a Bubble Tea command; starting a new one or
// restarting cancels the one in flight.
type Model struct {
	port analysisPort

	seq    int
	cancel context.CancelFunc

	selectors dto.SelectorsOutput
	stage     stage
	city      string
	month     string
	day       string
	running   bool

	picker  picker.Model
	report  report.Model
	keys    keyMap
	help    help.Model
	palette components.Palette

	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(port analysisPort, rawPageSize int) Model {
	return Model{
		port:    port,
		stage:   stageCity,
		picker:  picker.New(),
		report:  report.New(rawPageSize),
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(),
		status:  "loading cities",
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadSelectorsCmd()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case selectorsLoadedMsg:
		if msg.err != nil {
			m.status = "cities: " + msg.err.Error()
			return m, nil
		}
		m.selectors = msg.selectors
		m.status = "ready"
		cmd := m.enterStage(stageCity)
		return m, cmd

	case picker.PickedMsg:
		return m.pick(msg.Value)

	case analysisDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.stopAnalysis()
		m.report.SetResult(msg.out, msg.err)
		if msg.err != nil {
			m.status = "analysis failed"
		} else {
			m.status = fmt.Sprintf("%d of %d trips", msg.out.MatchedRows, msg.out.TotalRows)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.stage != stageReport && m.picker.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		case key.Matches(msg, m.keys.Restart) && m.stage == stageReport:
			cmd := m.restart()
			return m, cmd
		case key.Matches(msg, m.keys.Raw) && m.stage == stageReport:
			m.nextRaw()
			return m, nil
		case key.Matches(msg, m.keys.Back) && m.stage > stageCity && m.stage < stageReport:
			cmd := m.enterStage(m.stage - 1)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.stage == stageReport {
		m.report, cmd = m.report.Update(msg)
	} else {
		m.picker, cmd = m.picker.Update(msg)
	}
	return m, cmd
}

func (m Model) pick(value string) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageCity:
		m.city = value
		cmd := m.enterStage(stageMonth)
		return m, cmd
	case stageMonth:
		m.month = value
		cmd := m.enterStage(stageDay)
		return m, cmd
	case stageDay:
		m.day = value
		cmd := m.analyze()
		return m, cmd
	}
	return m, nil
}

func (m *Model) enterStage(s stage) tea.Cmd {
	m.stage = s
	var options []picker.Option
	switch s {
	case stageCity:
		for _, c := range m.selectors.Cities {
			options = append(options, picker.Option{Label: titleCase(c.Name), Detail: c.Source, Value: c.Name})
		}
	case stageMonth:
		options = choices(m.selectors.Months, "every month")
	case stageDay:
		options = choices(m.selectors.Days, "every day")
	default:
		return nil
	}
	return m.picker.SetOptions(stageTitles[s], options)
}

func (m *Model) analyze() tea.Cmd {
	m.stopAnalysis()
	m.seq++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.stage = stageReport
	m.running = true
	m.status = fmt.Sprintf("analyzing %s / %s / %s", m.city, m.month, m.day)
	return tea.Batch(m.report.Start(), m.analyzeCmd(ctx, m.seq, m.city, m.month, m.day))
}

// stopAnalysis releases the running analysis, if any. Its result may still
// arrive and is ignored unless seq still matches.
func (m *Model) stopAnalysis() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.running = false
}

// restart clears the selection and returns to the city step; the next
// analysis loads the records again.
func (m *Model) restart() tea.Cmd {
	m.stopAnalysis()
	m.seq++
	m.city, m.month, m.day = "", "", ""
	m.status = "restarted"
	return m.enterStage(stageCity)
}

func (m *Model) nextRaw() {
	if m.running {
		return
	}
	if m.report.NextRaw() {
		m.status = fmt.Sprintf("showing %d raw rows", m.report.Shown())
	} else {
		m.status = "no more raw rows"
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.stage == stageReport:
		content = m.report.View()
	default:
		content = m.picker.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	parts := []string{
		selection("city", m.city),
		selection("month", m.month),
		selection("day", m.day),
	}
	bar := theme.Title.Render("bikeshare") + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  :::palette  n:raw  r:restart  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	name, arg := components.ParseCommand(input)
	switch name {
	case "":
		return m, nil
	case "city", "month", "day":
		if arg == "" {
			m.status = "usage: " + name + " <value>"
			return m, nil
		}
		m.set(name, strings.ToLower(arg))
		if m.city == "" || m.month == "" || m.day == "" {
			cmd := m.enterStage(m.firstMissing())
			return m, cmd
		}
		cmd := m.analyze()
		return m, cmd
	case "raw":
		if m.stage != stageReport {
			m.status = "no report yet"
			return m, nil
		}
		m.nextRaw()
	case "raw:reset":
		m.report.ResetRaw()
		m.status = "raw rows hidden"
	case "restart":
		cmd := m.restart()
		return m, cmd
	default:
		m.status = "unknown command: " + name
	}
	return m, nil
}

func (m *Model) set(name, value string) {
	switch name {
	case "city":
		m.city = value
	case "month":
		m.month = value
	case "day":
		m.day = value
	}
}

func (m Model) firstMissing() stage {
	switch {
	case m.city == "":
		return stageCity
	case m.month == "":
		return stageMonth
	default:
		return stageDay
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-3, 1)}
	m.picker, _ = m.picker.Update(sz)
	m.report, _ = m.report.Update(sz)
}

func choices(values []string, allDetail string) []picker.Option {
	out := make([]picker.Option, 0, len(values))
	for _, v := range values {
		opt := picker.Option{Label: titleCase(v), Value: v}
		if v == "all" {
			opt.Detail = allDetail
		}
		out = append(out, opt)
	}
	return out
}

func selection(label, value string) string {
	if value == "" {
		return theme.Muted.Render(label + ": -")
	}
	return theme.Muted.Render(label+": ") + theme.Hot.Render(value)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadSelectorsCmd() tea.Cmd {
	return func() tea.Msg {
		selectors, err := m.port.Selectors(context.Background())
		return selectorsLoadedMsg{selectors: selectors, err: err}
	}
}

func (m Model) analyzeCmd(ctx context.Context, seq int, city, month, day string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Analyze(ctx, city, month, day)
		return analysisDoneMsg{seq: seq, out: out, err: err}
	}
}

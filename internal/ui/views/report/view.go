package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	tripcli "bikeshare/internal/modules/tripstats/adapter/in"
	"bikeshare/internal/modules/tripstats/dto"
	"bikeshare/internal/ui/theme"
)

// Model shows one analysis: the markdown summary followed by the raw rows
// revealed so far.
type Model struct {
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	out      dto.AnalysisOutput
	has      bool
	err      error
	loading  bool
	pageSize int
	shown    int

	width  int
	height int
}

func New(pageSize int) Model {
	if pageSize < 1 {
		pageSize = 5
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{
		viewport: viewport.New(0, 0),
		spinner:  sp,
		renderer: r,
		pageSize: pageSize,
	}
}

// Start marks an analysis as running.
func (m *Model) Start() tea.Cmd {
	m.loading = true
	m.err = nil
	return m.spinner.Tick
}

// SetResult stores a finished analysis. On error the previous result stays
// visible under the error line.
func (m *Model) SetResult(out dto.AnalysisOutput, err error) {
	m.loading = false
	m.err = err
	if err == nil {
		m.out = out
		m.has = true
		m.shown = 0
	}
	m.refresh()
	m.viewport.GotoTop()
}

// NextRaw reveals the next page of raw rows. It reports false once every
// matched row is already shown.
func (m *Model) NextRaw() bool {
	if !m.has {
		return false
	}
	_, next := tripcli.RawPage(m.out.Rows, m.shown, m.pageSize)
	if next == m.shown {
		return false
	}
	m.shown = next
	m.refresh()
	m.viewport.GotoBottom()
	return true
}

func (m *Model) ResetRaw() {
	m.shown = 0
	m.refresh()
	m.viewport.GotoTop()
}

// Shown is the number of raw rows currently displayed.
func (m Model) Shown() int { return m.shown }

func (m Model) Result() (dto.AnalysisOutput, bool) { return m.out, m.has }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading trips…")
	}
	return theme.Pane.Width(max(m.width-2, 1)).Height(max(m.height-2, 1)).Render(m.viewport.View())
}

func (m *Model) resize() {
	m.viewport.Width = max(m.width-4, 1)
	m.viewport.Height = max(m.height-2, 1)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.viewport.Width),
	); err == nil {
		m.renderer = r
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	var sb strings.Builder
	if m.err != nil {
		sb.WriteString(theme.Bad.Render(m.err.Error()) + "\n\n")
	}
	if !m.has {
		sb.WriteString(theme.Muted.Render("No analysis yet."))
		return sb.String()
	}

	md := tripcli.RenderMarkdown(m.out)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			md = rendered
		}
	}
	sb.WriteString(md)

	total := len(m.out.Rows)
	switch {
	case total == 0:
		sb.WriteString(theme.Muted.Render("No raw rows for this selection."))
	case m.shown == 0:
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("n: show %d raw rows", m.pageSize)))
	default:
		sb.WriteString(theme.Title.Render(fmt.Sprintf("Raw rows 1-%d of %d", m.shown, total)) + "\n")
		sb.WriteString(tripcli.RenderRows(m.out.Columns, m.out.Rows[:m.shown]) + "\n")
		if m.shown < total {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("n: next %d rows", m.pageSize)))
		} else {
			sb.WriteString(theme.Good.Render("All matched rows shown."))
		}
	}
	return sb.String()
}

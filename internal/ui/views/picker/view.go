package picker

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bikeshare/internal/ui/theme"
)

// PickedMsg is emitted when the user confirms the highlighted option.
type PickedMsg struct {
	Value string
}

type Option struct {
	Label  string
	Detail string
	Value  string
}

type optionItem struct{ opt Option }

func (i optionItem) Title() string       { return i.opt.Label }
func (i optionItem) Description() string { return i.opt.Detail }
func (i optionItem) FilterValue() string { return i.opt.Label }

// Model is a filterable single-choice list.
type Model struct {
	list   list.Model
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{list: l}
}

// SetOptions replaces the choices and moves the cursor to the first one.
func (m *Model) SetOptions(title string, options []Option) tea.Cmd {
	m.list.Title = title
	m.list.ResetFilter()
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = optionItem{opt: opt}
	}
	cmd := m.list.SetItems(items)
	m.list.Select(0)
	return cmd
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				value := item.opt.Value
				return m, func() tea.Msg { return PickedMsg{Value: value} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(m.list.View())
}

// Filtering reports whether the search filter is taking keyboard input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the highlighted option value.
func (m Model) Selected() (string, bool) {
	if item, ok := m.list.SelectedItem().(optionItem); ok {
		return item.opt.Value, true
	}
	return "", false
}

package graph

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

type Model struct {
	list     list.Model
	canvas   *Canvas
	renderer *GraphRenderer
	theme    styles.Theme
	width    int
	height   int
}

type commitItem struct {
	id   string
	line string
}

func (i commitItem) FilterValue() string { return i.id }
func (i commitItem) Title() string       { return i.line }
func (i commitItem) Description() string { return "" }

func New(canvas *Canvas, theme styles.Theme, dateFormat string, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	m := Model{
		list:     l,
		canvas:   canvas,
		renderer: NewGraphRenderer(theme, dateFormat),
		theme:    theme,
		width:    width,
		height:   height,
	}
	m.refresh()
	return m
}

// refresh re-renders every row at the current width.
func (m *Model) refresh() {
	lines := m.renderer.Lines(m.canvas, m.width, m.theme.Background)
	items := make([]list.Item, len(lines))
	for i, line := range lines {
		id, _ := m.canvas.CommitAt(i)
		items[i] = commitItem{id: id, line: line}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

// SelectedCommit returns the id of the highlighted commit, or "".
func (m Model) SelectedCommit() string {
	if item, ok := m.list.SelectedItem().(commitItem); ok {
		return item.id
	}
	return ""
}

// Activate runs the select handler of the highlighted commit.
func (m Model) Activate() bool {
	id := m.SelectedCommit()
	if id == "" {
		return false
	}
	return m.canvas.Select(id)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
	m.refresh()
}

func (m *Model) CursorUp()   { m.list.CursorUp() }
func (m *Model) CursorDown() { m.list.CursorDown() }
func (m *Model) PageUp()     { m.list.PrevPage() }
func (m *Model) PageDown()   { m.list.NextPage() }

func (m *Model) Top() {
	if len(m.list.Items()) > 0 {
		m.list.Select(0)
	}
}

func (m *Model) Bottom() {
	if n := len(m.list.Items()); n > 0 {
		m.list.Select(n - 1)
	}
}

package app

import (
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/yourusername/gitlanes/internal/config"
	"github.com/yourusername/gitlanes/internal/history"
	"github.com/yourusername/gitlanes/internal/lanes"
	"github.com/yourusername/gitlanes/internal/ui/components/actionbar"
	"github.com/yourusername/gitlanes/internal/ui/components/graph"
	"github.com/yourusername/gitlanes/internal/ui/components/modals"
	"github.com/yourusername/gitlanes/internal/ui/keys"
	"github.com/yourusername/gitlanes/internal/ui/layout"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

// Loader fetches a fresh history snapshot.
type Loader func() ([]history.Listing, []history.Tag, error)

// copyFunc writes to the system clipboard.
var copyFunc = clipboard.WriteAll

type Model struct {
	config *config.Config
	load   Loader
	logger *log.Logger
	styles *styles.Styles
	layout *layout.Layout
	keyMap keys.KeyMap

	graphPanel  graph.Model
	actionBar   actionbar.Model
	helpModal   modals.HelpModal
	branchModal modals.BranchModal

	listings []history.Listing
	tags     []history.Tag
	history  *history.Model
	result   *lanes.Result
	selected string
	picked   *selection

	width  int
	height int
	ready  bool
}

func New(cfg *config.Config, load Loader, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := styles.GetTheme(cfg.UI.Theme)
	st := styles.NewStyles(theme)

	return &Model{
		config:      cfg,
		load:        load,
		logger:      logger,
		styles:      st,
		keyMap:      keys.FromConfig(cfg.Keybindings),
		actionBar:   actionbar.New(st, 0),
		helpModal:   modals.NewHelpModal(st),
		branchModal: modals.NewBranchModal(st),
		selected:    cfg.Graph.SelectedBranch,
		picked:      &selection{},
	}
}

// selection receives the commit activated on the history canvas. It is a
// pointer so the copies bubbletea makes of Model share it.
type selection struct {
	id string
}

func (s *selection) set(id string) { s.id = id }

type historyLoadedMsg struct {
	listings []history.Listing
	tags     []history.Tag
	err      error
}

// clearMessageMsg is sent after a delay to clear the status bar message.
type clearMessageMsg struct{}

func (m Model) Init() tea.Cmd {
	return m.loadHistoryCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if m.branchModal.IsVisible() {
			return m.handleBranchModal(msg)
		}
		if m.helpModal.IsVisible() {
			if keys.MatchesKey(msg, m.keyMap.Help) || msg.String() == "esc" {
				m.helpModal.Toggle()
				m.recalcGraphSize()
			}
			return m, nil
		}
		return m.handleKey(msg)

	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case clearMessageMsg:
		m.actionBar.ClearMessage()
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.graphPanel, cmd = m.graphPanel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var extra string
	if m.branchModal.IsVisible() {
		extra = m.branchModal.View()
	} else if m.helpModal.IsVisible() {
		extra = m.helpModal.View()
	}

	title := "History"
	if m.selected != "" {
		title += " · " + m.selected
	}
	return m.layout.Render(title, m.graphPanel.View(), extra, m.actionBar.View())
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	if m.layout == nil {
		m.layout = layout.New(m.width, m.height, m.styles.Theme)
	} else {
		m.layout.SetSize(m.width, m.height)
	}
	m.actionBar.SetWidth(m.width)
	m.branchModal.SetWidth(m.width)

	if !m.ready {
		m.rerender()
		m.ready = true
		return m, nil
	}
	m.recalcGraphSize()
	return m, nil
}

// recalcGraphSize resizes the history panel around the visible inline panels.
func (m *Model) recalcGraphSize() {
	if m.layout == nil {
		return
	}
	w, h := m.layout.Calculate(m.helpModal.Height() + m.branchModal.Height())
	m.graphPanel.SetSize(w, h)
}

// rerender runs a fresh render pass over the loaded history.
func (m *Model) rerender() {
	opts := lanes.Options{
		Selected: m.selected,
		Palette:  m.styles.Theme.LanePalette(m.config.Graph.Palette),
		OnSelect: m.picked.set,
		Logger:   m.logger,
	}
	canvas, model, result := graph.Build(m.listings, m.tags, opts)
	m.history = model
	m.result = result

	w, h := 80, 20
	if m.layout != nil {
		w, h = m.layout.Calculate(m.helpModal.Height() + m.branchModal.Height())
	}
	m.graphPanel = graph.New(canvas, m.styles.Theme, m.config.UI.DateFormat, w, h)
	m.actionBar.SetResult(m.selected, result)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keys.MatchesKey(msg, m.keyMap.Quit):
		return m, tea.Quit

	case keys.MatchesKey(msg, m.keyMap.Help):
		m.helpModal.Toggle()
		m.recalcGraphSize()
		return m, nil

	case keys.MatchesKey(msg, m.keyMap.Branch):
		if m.history == nil || len(m.history.Branches) == 0 {
			m.actionBar.SetMessage("No branches found")
			return m, m.clearMessageAfter(3 * time.Second)
		}
		m.branchModal.Show(m.history.Branches, m.selected)
		m.recalcGraphSize()
		return m, nil

	case keys.MatchesKey(msg, m.keyMap.Clear):
		if m.selected == "" {
			return m, nil
		}
		m.selected = ""
		m.rerender()
		return m, nil

	case keys.MatchesKey(msg, m.keyMap.Reload):
		m.actionBar.SetMessage("Reloading...")
		return m, m.loadHistoryCmd()

	case keys.MatchesKey(msg, m.keyMap.Copy):
		return m.handleCopy()

	case keys.MatchesKey(msg, m.keyMap.Enter):
		return m.handleSelect()

	case keys.MatchesKey(msg, m.keyMap.Up):
		m.graphPanel.CursorUp()
		return m, nil
	case keys.MatchesKey(msg, m.keyMap.Down):
		m.graphPanel.CursorDown()
		return m, nil
	case keys.MatchesKey(msg, m.keyMap.PageUp):
		m.graphPanel.PageUp()
		return m, nil
	case keys.MatchesKey(msg, m.keyMap.PageDown):
		m.graphPanel.PageDown()
		return m, nil
	case keys.MatchesKey(msg, m.keyMap.Top):
		m.graphPanel.Top()
		return m, nil
	case keys.MatchesKey(msg, m.keyMap.Bottom):
		m.graphPanel.Bottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.graphPanel, cmd = m.graphPanel.Update(msg)
	return m, cmd
}

func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	id := m.graphPanel.SelectedCommit()
	if id == "" {
		return m, nil
	}
	if err := copyFunc(id); err != nil {
		m.actionBar.SetMessage("Copy failed: " + err.Error())
	} else {
		m.actionBar.SetMessage("Copied " + id)
	}
	return m, m.clearMessageAfter(3 * time.Second)
}

// handleSelect activates the highlighted commit and shows its summary.
func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	m.picked.id = ""
	if !m.graphPanel.Activate() || m.history == nil {
		return m, nil
	}
	rc, ok := m.history.Lookup(m.picked.id)
	if !ok {
		return m, nil
	}
	m.actionBar.SetMessage(fmt.Sprintf("%s %s · %s", rc.ShortID(), rc.Title, rc.AuthorName))
	return m, m.clearMessageAfter(5 * time.Second)
}

func (m Model) handleBranchModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc" || keys.MatchesKey(msg, m.keyMap.Branch):
		m.branchModal.Hide()
		m.recalcGraphSize()
	case keys.MatchesKey(msg, m.keyMap.Down):
		m.branchModal.MoveDown()
	case keys.MatchesKey(msg, m.keyMap.Up):
		m.branchModal.MoveUp()
	case keys.MatchesKey(msg, m.keyMap.Enter):
		branch := m.branchModal.SelectedBranch()
		m.branchModal.Hide()
		if branch != nil {
			m.selected = branch.Name
		}
		m.rerender()
	}
	return m, nil
}

func (m Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		listings, tags, err := m.load()
		return historyLoadedMsg{listings: listings, tags: tags, err: err}
	}
}

func (m Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("could not load history", "err", msg.err)
		m.actionBar.SetMessage("Failed to load history: " + msg.err.Error())
		return m, m.clearMessageAfter(3 * time.Second)
	}
	m.listings = msg.listings
	m.tags = msg.tags
	m.actionBar.ClearMessage()
	m.rerender()
	return m, nil
}

func (m Model) clearMessageAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearMessageMsg{}
	})
}

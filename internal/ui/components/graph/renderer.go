package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

const (
	CommitSymbol   = "●"
	FocusSymbol    = "◉"
	LineVertical   = "│"
	LineHorizontal = "─"
	LineBranchR    = "├"
	LineBranchL    = "┤"
	LineCornerTR   = "┌"
	LineCornerBR   = "└"
	LineCornerTL   = "┐"
	LineCornerBL   = "┘"

	// ProtectedSymbol follows the name of a protected branch.
	ProtectedSymbol = "◆"

	// LaneSpacing is the number of padding characters after each lane glyph.
	// This controls the horizontal gap between branch lines.
	LaneSpacing = 1

	// DateRelative renders commit times as "3 days ago".
	DateRelative = "relative"
)

type GraphRenderer struct {
	theme      styles.Theme
	colors     []lipgloss.Color
	dateFormat string
	now        func() time.Time
}

func NewGraphRenderer(theme styles.Theme, dateFormat string) *GraphRenderer {
	if dateFormat == "" {
		dateFormat = DateRelative
	}
	return &GraphRenderer{
		theme:      theme,
		colors:     theme.GraphColors(),
		dateFormat: dateFormat,
		now:        time.Now,
	}
}

// Lines renders every commit of the canvas, newest first.
func (g *GraphRenderer) Lines(c *Canvas, maxWidth int, bg lipgloss.TerminalColor) []string {
	lines := make([]string, c.Len())
	for i := range lines {
		lines[i] = g.RenderCommitLine(c, i, maxWidth, bg)
	}
	return lines
}

// RenderCommitLine renders display row i (0 is the newest commit). maxWidth is
// the available character width so the line can be truncated to prevent
// wrapping.
func (g *GraphRenderer) RenderCommitLine(c *Canvas, i int, maxWidth int, bg lipgloss.TerminalColor) string {
	r := len(c.rows) - 1 - i
	if r < 0 || r >= len(c.rows) {
		return ""
	}
	c.layout()
	cur := c.rows[r]
	x := cur.lane.column

	numLanes := c.columns
	if numLanes == 0 {
		numLanes = 1
	}

	// Lanes forking off this commit: their line comes down from above and
	// curves into the commit's column.
	converge := make(map[int]*lane)
	for _, l := range c.order {
		if l.first >= 0 && l.origin == r && l.column != x {
			converge[l.column] = l
		}
	}

	// The secondary parent's lane runs down from this row to its last commit,
	// or carries on above when the merged branch keeps going.
	mergeCol := -1
	mergeContinues := false
	if cur.mergeFrom != nil && cur.mergeFrom.column != x {
		mergeCol = cur.mergeFrom.column
		mergeContinues = cur.mergeFrom.end > r
	}

	lo, hi := x, x
	for col := range converge {
		lo, hi = min(lo, col), max(hi, col)
	}
	if mergeCol >= 0 {
		lo, hi = min(lo, mergeCol), max(hi, mergeCol)
	}

	bridgeFg := func(col int) lipgloss.Color {
		end := hi
		if col < x {
			end = lo
		}
		if l := c.occupant(end, r); l != nil {
			return g.laneColor(l)
		}
		return g.colors[end%len(g.colors)]
	}

	parts := make([]string, numLanes)
	for col := 0; col < numLanes; col++ {
		isBridging := col >= lo && col < hi
		occupant := c.occupant(col, r)

		switch {
		case col == x:
			symbol := CommitSymbol
			if cur.focused {
				symbol = FocusSymbol
			}
			parts[col] = laneCellBridge(symbol, bg, g.laneColor(cur.lane), bridgeFg(col), isBridging)
		case converge[col] != nil:
			color := g.laneColor(converge[col])
			if col > x {
				parts[col] = laneCell(LineCornerBL, bg, color, false)
			} else {
				parts[col] = laneCellBridge(LineCornerBR, bg, color, bridgeFg(col), isBridging)
			}
		case col == mergeCol:
			color := g.laneColor(cur.mergeFrom)
			glyph := LineCornerTL
			if col < x {
				glyph = LineCornerTR
			}
			if mergeContinues {
				glyph = LineBranchL
				if col < x {
					glyph = LineBranchR
				}
			}
			parts[col] = laneCellBridge(glyph, bg, color, bridgeFg(col), isBridging)
		case occupant != nil:
			parts[col] = laneCellBridge(LineVertical, bg, g.laneColor(occupant), bridgeFg(col), isBridging)
		case isBridging:
			parts[col] = laneCell(LineHorizontal, bg, bridgeFg(col), true)
		default:
			parts[col] = blankCell(bg)
		}
	}

	graphStr := strings.Join(parts, "")

	var refStr string
	if len(cur.refs) > 0 {
		refStr = g.renderRefs(cur.refs, bg)
	}

	hashStyle := lipgloss.NewStyle().Foreground(g.theme.CommitHash).Background(bg)
	dateStyle := lipgloss.NewStyle().Foreground(g.theme.Subtext).Background(bg)
	subjectStyle := lipgloss.NewStyle().Foreground(g.theme.Foreground).Background(bg)
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")
	if cur.focused {
		hashStyle = hashStyle.Bold(true)
		subjectStyle = subjectStyle.Bold(true)
	}

	// Build the line: graph | hash | (refs) | subject | time
	prefix := graphStr + spacer + hashStyle.Render(cur.shortID)
	if refStr != "" {
		prefix = prefix + spacer + refStr
	}
	prefixWidth := lipgloss.Width(prefix)

	timeStr := dateStyle.Render(g.formatTime(cur.when))
	timeWidth := lipgloss.Width(timeStr)

	subjectAvail := maxWidth - prefixWidth - timeWidth - 3
	if subjectAvail < 4 {
		subjectAvail = 4
	}

	subject := cur.title
	if runes := []rune(subject); len(runes) > subjectAvail {
		subject = string(runes[:subjectAvail-1]) + "…"
	}

	line := prefix + spacer + subjectStyle.Render(subject)

	// Right-align the timestamp if there's room.
	gap := maxWidth - lipgloss.Width(line) - timeWidth - 1
	if gap > 1 && timeWidth > 0 {
		line = line + lipgloss.NewStyle().Background(bg).Width(gap).Render("") + timeStr
	}

	return line
}

func (g *GraphRenderer) laneColor(l *lane) lipgloss.Color {
	if l.color != "" {
		return l.color
	}
	return g.colors[l.column%len(g.colors)]
}

func (g *GraphRenderer) renderRefs(refs []ref, bg lipgloss.TerminalColor) string {
	decoBg := g.theme.BackgroundPanel

	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		var style lipgloss.Style
		var icon string

		switch r.kind {
		case refTag:
			style = lipgloss.NewStyle().
				Foreground(g.theme.Tag).
				Background(decoBg).
				Bold(true).
				Padding(0, 1)
			icon = "t:"
		case refBranch:
			fg := r.color
			if fg == "" {
				fg = g.theme.BranchFeature
			}
			style = lipgloss.NewStyle().
				Foreground(fg).
				Background(decoBg).
				Padding(0, 1)
			if r.isDefault {
				style = style.Bold(true)
				icon = "* "
			}
		}

		name := icon + r.name
		if r.protected {
			name += " " + ProtectedSymbol
		}
		parts = append(parts, style.Render(name))
	}

	return strings.Join(parts, lipgloss.NewStyle().Background(bg).Render(" "))
}

// MaxLanes returns the character width of the lane columns.
func (g *GraphRenderer) MaxLanes(c *Canvas) int {
	n := c.Columns()
	if n == 0 {
		n = 1
	}
	// Each lane occupies 1 glyph + LaneSpacing padding characters.
	return n * (1 + LaneSpacing)
}

// laneCell renders a single lane cell: glyph followed by LaneSpacing spaces,
// all styled with the given background. For horizontal bridging, the padding
// also uses the horizontal line character.
func laneCell(glyph string, bg lipgloss.TerminalColor, fg lipgloss.Color, bridge bool) string {
	return laneCellBridge(glyph, bg, fg, fg, bridge)
}

func laneCellBridge(glyph string, bg lipgloss.TerminalColor, fg, bridgeFg lipgloss.Color, bridge bool) string {
	style := lipgloss.NewStyle().Foreground(fg).Background(bg)
	pad := strings.Repeat(" ", LaneSpacing)
	if bridge {
		pad = strings.Repeat(LineHorizontal, LaneSpacing)
	}
	padStyle := lipgloss.NewStyle().Foreground(bridgeFg).Background(bg)
	return style.Render(glyph) + padStyle.Render(pad)
}

// blankCell renders an empty lane cell (spaces only) with the given background.
func blankCell(bg lipgloss.TerminalColor) string {
	return lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", 1+LaneSpacing))
}

func (g *GraphRenderer) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if g.dateFormat == DateRelative {
		return formatRelativeTime(t, g.now())
	}
	return t.Format(g.dateFormat)
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24/7), "week")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/24/30), "month")
	default:
		return plural(int(diff.Hours()/24/365), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

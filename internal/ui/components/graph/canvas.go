package graph

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gitlanes/internal/history"
	"github.com/yourusername/gitlanes/internal/lanes"
)

var (
	// ErrSelfMerge is returned when a merge names the same lane on both sides.
	ErrSelfMerge = errors.New("lane merged into itself")
	// ErrForeignLane is returned for lane handles this canvas did not create.
	ErrForeignLane = errors.New("lane does not belong to this canvas")
)

type refKind int

const (
	refBranch refKind = iota
	refTag
)

type ref struct {
	name      string
	kind      refKind
	color     lipgloss.Color
	isDefault bool
	protected bool
}

type lane struct {
	name   string
	color  lipgloss.Color
	origin int // row the lane forks from, -1 for a root lane
	first  int // first commit row, -1 while empty
	end    int // last row the lane touches
	column int
}

func (l *lane) Name() string { return l.name }

// start is the first row the lane occupies a column on.
func (l *lane) start() int {
	if l.origin >= 0 {
		return l.origin
	}
	return l.first
}

type row struct {
	id        string
	shortID   string
	title     string
	author    string
	when      time.Time
	lane      *lane
	mergeFrom *lane
	refs      []ref
	focused   bool
	onSelect  func()
}

// Canvas is a terminal draw surface. It records the calls of a render pass
// and lays the lanes out into columns, one row per commit.
type Canvas struct {
	lanes   map[string]*lane
	order   []*lane
	rows    []*row
	index   map[string]int
	columns int
	laid    bool
}

var _ lanes.Surface = (*Canvas)(nil)

func NewCanvas() *Canvas {
	return &Canvas{
		lanes: make(map[string]*lane),
		index: make(map[string]int),
	}
}

func (c *Canvas) CreateLane(name string, spec lanes.LaneSpec) (lanes.Lane, error) {
	if l, ok := c.lanes[name]; ok {
		return l, nil
	}
	l := &lane{name: name, color: lipgloss.Color(spec.Color), origin: -1, first: -1, end: -1}
	if spec.FromCommit != "" {
		if r, ok := c.index[spec.FromCommit]; ok {
			l.origin = r
			l.end = r
		}
	}
	c.lanes[name] = l
	c.order = append(c.order, l)
	c.laid = false
	return l, nil
}

func (c *Canvas) Commit(h lanes.Lane, opts lanes.CommitOptions) error {
	l, err := c.own(h)
	if err != nil {
		return err
	}
	c.addRow(l, nil, opts)
	return nil
}

func (c *Canvas) Merge(into, from lanes.Lane, opts lanes.CommitOptions) error {
	dst, err := c.own(into)
	if err != nil {
		return err
	}
	src, err := c.own(from)
	if err != nil {
		return err
	}
	if dst == src {
		return fmt.Errorf("%w: %s", ErrSelfMerge, dst.name)
	}
	r := c.addRow(dst, src, opts)
	// A source lane with no commits of its own starts at the merge row.
	if src.first < 0 {
		src.first = r
	}
	src.end = r
	return nil
}

func (c *Canvas) Tag(name, commitID string, style lanes.TagStyle) error {
	r, err := c.row(commitID)
	if err != nil {
		return err
	}
	r.refs = append(r.refs, ref{name: name, kind: refTag, color: lipgloss.Color(style.Color)})
	return nil
}

func (c *Canvas) Label(branch, commitID string, style lanes.LabelStyle) error {
	r, err := c.row(commitID)
	if err != nil {
		return err
	}
	// The default branch label goes first.
	label := ref{
		name:      branch,
		kind:      refBranch,
		color:     lipgloss.Color(style.Color),
		isDefault: style.Default,
		protected: style.Protected,
	}
	if style.Default {
		r.refs = append([]ref{label}, r.refs...)
	} else {
		r.refs = append(r.refs, label)
	}
	return nil
}

func (c *Canvas) Decorate(commitID string, d lanes.Decoration) error {
	r, err := c.row(commitID)
	if err != nil {
		return err
	}
	r.focused = d == lanes.DecorationFocus
	return nil
}

// Select runs the select handler attached to a commit. It reports whether
// the commit had one.
func (c *Canvas) Select(commitID string) bool {
	r, err := c.row(commitID)
	if err != nil || r.onSelect == nil {
		return false
	}
	r.onSelect()
	return true
}

// Len returns the number of drawn commits.
func (c *Canvas) Len() int {
	return len(c.rows)
}

// CommitAt returns the commit id of a display row, newest first.
func (c *Canvas) CommitAt(display int) (string, bool) {
	i := len(c.rows) - 1 - display
	if i < 0 || i >= len(c.rows) {
		return "", false
	}
	return c.rows[i].id, true
}

// Column returns the column a commit was laid out in.
func (c *Canvas) Column(commitID string) (int, bool) {
	r, err := c.row(commitID)
	if err != nil {
		return 0, false
	}
	c.layout()
	return r.lane.column, true
}

// Columns returns the number of lane columns.
func (c *Canvas) Columns() int {
	c.layout()
	return c.columns
}

func (c *Canvas) own(h lanes.Lane) (*lane, error) {
	l, ok := h.(*lane)
	if !ok || c.lanes[l.name] != l {
		return nil, ErrForeignLane
	}
	return l, nil
}

func (c *Canvas) row(commitID string) (*row, error) {
	i, ok := c.index[commitID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", lanes.ErrUnknownCommit, commitID)
	}
	return c.rows[i], nil
}

func (c *Canvas) addRow(l, mergeFrom *lane, opts lanes.CommitOptions) int {
	r := len(c.rows)
	short := opts.ID
	if len(short) > history.ShortIDLength {
		short = short[:history.ShortIDLength]
	}
	c.rows = append(c.rows, &row{
		id:        opts.ID,
		shortID:   short,
		title:     opts.Title,
		author:    opts.Author,
		when:      opts.Time,
		lane:      l,
		mergeFrom: mergeFrom,
		onSelect:  opts.OnSelect,
	})
	c.index[opts.ID] = r
	if l.first < 0 {
		l.first = r
	}
	l.end = r
	c.laid = false
	return r
}

// layout assigns columns by interval allocation: a lane takes the lowest
// column whose previous lane ended before it starts.
func (c *Canvas) layout() {
	if c.laid {
		return
	}
	active := make([]*lane, 0, len(c.order))
	for _, l := range c.order {
		if l.first >= 0 {
			active = append(active, l)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].start() < active[j].start()
	})

	var ends []int
	for _, l := range active {
		col := -1
		for i, end := range ends {
			if end < l.start() {
				col = i
				break
			}
		}
		if col < 0 {
			col = len(ends)
			ends = append(ends, -1)
		}
		ends[col] = l.end
		l.column = col
	}
	c.columns = len(ends)
	c.laid = true
}

// occupant returns the lane holding column col at row r, if any.
func (c *Canvas) occupant(col, r int) *lane {
	for _, l := range c.order {
		if l.first >= 0 && l.column == col && l.start() <= r && r <= l.end {
			return l
		}
	}
	return nil
}

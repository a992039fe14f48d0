package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gitlanes/internal/history"
	"github.com/yourusername/gitlanes/internal/lanes"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

const (
	idA = "a1a1a1a1a1a1"
	idB = "b2b2b2b2b2b2"
	idC = "c3c3c3c3c3c3"
	idD = "d4d4d4d4d4d4"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func commit(id string, minute int, title string, parents ...string) history.Commit {
	return history.Commit{
		ID:          id,
		Title:       title,
		ParentIDs:   parents,
		CommittedAt: base.Add(time.Duration(minute) * time.Minute),
	}
}

// forkAndMerge is A-B on main, A-C on feature, D=[B,C] on main.
func forkAndMerge() ([]history.Listing, []history.Tag) {
	a := commit(idA, 1, "Initial commit")
	b := commit(idB, 2, "Add parser", idA)
	c := commit(idC, 3, "Add feature", idA)
	d := commit(idD, 4, "Merge feature", idB, idC)
	return []history.Listing{
			{Branch: history.Branch{Name: "main", HeadID: idD, Default: true}, Commits: []history.Commit{d, c, b, a}},
			{Branch: history.Branch{Name: "feature", HeadID: idC}, Commits: []history.Commit{c, a}},
		}, []history.Tag{
			{Name: "v1.0", CommitID: idA},
		}
}

func TestCanvasLayout(t *testing.T) {
	listings, tags := forkAndMerge()
	canvas, _, result := Build(listings, tags, lanes.Options{})

	require.Equal(t, 4, canvas.Len())
	assert.Equal(t, 2, canvas.Columns())
	assert.Equal(t, []string{"main", "feature"}, result.Lanes)

	tests := []struct {
		id     string
		column int
	}{
		{idA, 0},
		{idB, 0},
		{idC, 1},
		{idD, 0},
	}
	for _, tt := range tests {
		col, ok := canvas.Column(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.column, col, tt.id)
	}

	newest, ok := canvas.CommitAt(0)
	require.True(t, ok)
	assert.Equal(t, idD, newest)
	oldest, ok := canvas.CommitAt(3)
	require.True(t, ok)
	assert.Equal(t, idA, oldest)
	_, ok = canvas.CommitAt(4)
	assert.False(t, ok)
}

func TestCanvasReusesFreedColumns(t *testing.T) {
	c := NewCanvas()
	main, err := c.CreateLane("main", lanes.LaneSpec{})
	require.NoError(t, err)
	require.NoError(t, c.Commit(main, lanes.CommitOptions{ID: "a"}))

	first, err := c.CreateLane("first", lanes.LaneSpec{From: main, FromCommit: "a"})
	require.NoError(t, err)
	require.NoError(t, c.Commit(first, lanes.CommitOptions{ID: "b"}))
	require.NoError(t, c.Merge(main, first, lanes.CommitOptions{ID: "c"}))
	require.NoError(t, c.Commit(main, lanes.CommitOptions{ID: "d"}))

	second, err := c.CreateLane("second", lanes.LaneSpec{From: main, FromCommit: "d"})
	require.NoError(t, err)
	require.NoError(t, c.Commit(second, lanes.CommitOptions{ID: "e"}))

	assert.Equal(t, 2, c.Columns())
	col, _ := c.Column("b")
	assert.Equal(t, 1, col)
	col, _ = c.Column("e")
	assert.Equal(t, 1, col)
}

func TestCanvasErrors(t *testing.T) {
	c := NewCanvas()
	main, err := c.CreateLane("main", lanes.LaneSpec{Color: "#fff"})
	require.NoError(t, err)

	again, err := c.CreateLane("main", lanes.LaneSpec{Color: "#000"})
	require.NoError(t, err)
	assert.Same(t, main, again)

	require.NoError(t, c.Commit(main, lanes.CommitOptions{ID: "a"}))

	err = c.Merge(main, main, lanes.CommitOptions{ID: "b"})
	assert.ErrorIs(t, err, ErrSelfMerge)

	err = c.Commit(foreignLane(t), lanes.CommitOptions{ID: "c"})
	assert.ErrorIs(t, err, ErrForeignLane)

	assert.ErrorIs(t, c.Tag("v1", "missing", lanes.TagStyle{}), lanes.ErrUnknownCommit)
	assert.ErrorIs(t, c.Label("main", "missing", lanes.LabelStyle{}), lanes.ErrUnknownCommit)
	assert.ErrorIs(t, c.Decorate("missing", lanes.DecorationFocus), lanes.ErrUnknownCommit)
	assert.Equal(t, 1, c.Len())
}

// foreignLane returns a lane handle owned by a different canvas.
func foreignLane(t *testing.T) lanes.Lane {
	t.Helper()
	l, err := NewCanvas().CreateLane("main", lanes.LaneSpec{})
	require.NoError(t, err)
	return l
}

func TestCanvasLabelOrder(t *testing.T) {
	c := NewCanvas()
	main, _ := c.CreateLane("main", lanes.LaneSpec{})
	require.NoError(t, c.Commit(main, lanes.CommitOptions{ID: "a"}))

	require.NoError(t, c.Tag("v1", "a", lanes.TagStyle{}))
	require.NoError(t, c.Label("topic", "a", lanes.LabelStyle{}))
	require.NoError(t, c.Label("main", "a", lanes.LabelStyle{Default: true}))

	var names []string
	for _, r := range c.rows[0].refs {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"main", "v1", "topic"}, names)
}

func TestCanvasMergeFromEmptyLane(t *testing.T) {
	c := NewCanvas()
	main, _ := c.CreateLane("main", lanes.LaneSpec{})
	require.NoError(t, c.Commit(main, lanes.CommitOptions{ID: "a"}))

	outside, err := c.CreateLane("outside", lanes.LaneSpec{})
	require.NoError(t, err)
	require.NoError(t, c.Merge(main, outside, lanes.CommitOptions{ID: "b"}))

	assert.Equal(t, 2, c.Columns())
	col, _ := c.Column("b")
	assert.Equal(t, 0, col)

	r := NewGraphRenderer(styles.CatppuccinMocha(), DateRelative)
	lines := r.Lines(c, 80, lipgloss.NoColor{})
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "●─┐ "), "got %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "●   "), "got %q", lines[1])
}

func TestCanvasSelect(t *testing.T) {
	var picked []string
	c := NewCanvas()
	main, _ := c.CreateLane("main", lanes.LaneSpec{})
	require.NoError(t, c.Commit(main, lanes.CommitOptions{ID: "a", OnSelect: func() { picked = append(picked, "a") }}))
	require.NoError(t, c.Commit(main, lanes.CommitOptions{ID: "b"}))

	assert.True(t, c.Select("a"))
	assert.False(t, c.Select("b"), "no handler attached")
	assert.False(t, c.Select("missing"))
	assert.Equal(t, []string{"a"}, picked)
}

package lanes

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gitlanes/internal/history"
)

const (
	idA = "a1a1a1a1a1a1"
	idB = "b2b2b2b2b2b2"
	idC = "c3c3c3c3c3c3"
	idD = "d4d4d4d4d4d4"
	idX = "e5e5e5e5e5e5"
	idF = "f6f6f6f6f6f6"
	idG = "0707070707070"
	idM = "9898989898989"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func commit(id string, minute int, parents ...string) history.Commit {
	return history.Commit{
		ID:          id,
		Title:       "commit " + id[:1],
		AuthorName:  "dev",
		ParentIDs:   parents,
		CommittedAt: base.Add(time.Duration(minute) * time.Minute),
	}
}

type fakeLane struct{ name string }

func (l *fakeLane) Name() string { return l.name }

// recorder is a Surface that remembers every call in order.
type recorder struct {
	lanes     map[string]*fakeLane
	specs     map[string]LaneSpec
	drawn     map[string]CommitOptions
	calls     []string
	labels    map[string]LabelStyle
	tags      map[string]TagStyle
	decorated []string

	mergeErr error
	panicOn  string
}

func newRecorder() *recorder {
	return &recorder{
		lanes:  make(map[string]*fakeLane),
		specs:  make(map[string]LaneSpec),
		drawn:  make(map[string]CommitOptions),
		labels: make(map[string]LabelStyle),
		tags:   make(map[string]TagStyle),
	}
}

func (r *recorder) CreateLane(name string, spec LaneSpec) (Lane, error) {
	if l, ok := r.lanes[name]; ok {
		return l, nil
	}
	l := &fakeLane{name: name}
	r.lanes[name] = l
	r.specs[name] = spec
	from := ""
	if spec.From != nil {
		from = spec.From.Name()
	}
	r.calls = append(r.calls, fmt.Sprintf("create %s from %q at %q", name, from, spec.FromCommit))
	return l, nil
}

func (r *recorder) Commit(lane Lane, opts CommitOptions) error {
	if opts.ID == r.panicOn {
		panic("boom")
	}
	r.drawn[opts.ID] = opts
	r.calls = append(r.calls, fmt.Sprintf("commit %s on %s", opts.ID[:1], lane.Name()))
	return nil
}

func (r *recorder) Merge(into, from Lane, opts CommitOptions) error {
	if r.mergeErr != nil {
		return r.mergeErr
	}
	r.drawn[opts.ID] = opts
	r.calls = append(r.calls, fmt.Sprintf("merge %s from %s into %s", opts.ID[:1], from.Name(), into.Name()))
	return nil
}

func (r *recorder) Tag(name, commitID string, style TagStyle) error {
	if _, ok := r.drawn[commitID]; !ok {
		return ErrUnknownCommit
	}
	r.tags[name] = style
	r.calls = append(r.calls, "tag "+name)
	return nil
}

func (r *recorder) Label(branch, commitID string, style LabelStyle) error {
	if _, ok := r.drawn[commitID]; !ok {
		return ErrUnknownCommit
	}
	r.labels[branch] = style
	r.calls = append(r.calls, "label "+branch)
	return nil
}

func (r *recorder) Decorate(commitID string, d Decoration) error {
	r.decorated = append(r.decorated, commitID)
	return nil
}

func linear() *history.Model {
	return history.Normalize([]history.Listing{{
		Branch:  history.Branch{Name: "main", HeadID: idC, Default: true},
		Commits: []history.Commit{commit(idC, 3, idB), commit(idB, 2, idA), commit(idA, 1)},
	}}, nil)
}

// forkAndMerge is A-B on main, A-C on a side line, D=[B,C] on main. When
// withFeature is set, the side line is the head of branch feature.
func forkAndMerge(withFeature bool) *history.Model {
	a := commit(idA, 1)
	b := commit(idB, 2, idA)
	c := commit(idC, 3, idA)
	d := commit(idD, 4, idB, idC)
	listings := []history.Listing{
		{Branch: history.Branch{Name: "main", HeadID: idD, Default: true, Protected: true}, Commits: []history.Commit{d, c, b, a}},
	}
	if withFeature {
		listings = append(listings, history.Listing{
			Branch:  history.Branch{Name: "feature", HeadID: idC},
			Commits: []history.Commit{c, a},
		})
	}
	return history.Normalize(listings, nil)
}

func lanesOf(r *Result) map[string]string {
	out := make(map[string]string, len(r.Assignments))
	for _, a := range r.Assignments {
		out[a.CommitID] = a.Lane
	}
	return out
}

func TestRenderLinear(t *testing.T) {
	surface := newRecorder()
	result := Render(linear(), surface, Options{})

	assert.Equal(t, []string{"main"}, result.Lanes)
	require.Len(t, result.Assignments, 3)
	for i, a := range result.Assignments {
		assert.Equal(t, "main", a.Lane)
		assert.Equal(t, KindCommit, a.Kind)
		assert.Equal(t, i, a.Index)
	}
	assert.Equal(t, []string{
		`create main from "" at ""`,
		"commit a on main",
		"commit b on main",
		"commit c on main",
		"label main",
	}, surface.calls)
	assert.Zero(t, result.FailedCommits)
}

func TestRenderForkAndMerge(t *testing.T) {
	tests := []struct {
		name     string
		feature  bool
		sideLane string
	}{
		{name: "side line is a branch", feature: true, sideLane: "feature"},
		{name: "side line without branch", feature: false, sideLane: idC[:history.ShortIDLength]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := newRecorder()
			result := Render(forkAndMerge(tt.feature), surface, Options{})

			assert.Equal(t, []string{"main", tt.sideLane}, result.Lanes)
			assert.Equal(t, map[string]string{
				idA: "main",
				idB: "main",
				idC: tt.sideLane,
				idD: "main",
			}, lanesOf(result))

			spec := surface.specs[tt.sideLane]
			require.NotNil(t, spec.From)
			assert.Equal(t, "main", spec.From.Name())
			assert.Equal(t, idA, spec.FromCommit)
			assert.Contains(t, surface.calls, "merge d from "+tt.sideLane+" into main")

			d := result.Assignments[3]
			assert.Equal(t, idD, d.CommitID)
			assert.Equal(t, KindMerge, d.Kind)
		})
	}
}

func TestRenderRootsStartLanes(t *testing.T) {
	model := history.Normalize([]history.Listing{
		{Branch: history.Branch{Name: "main", HeadID: idB, Default: true}, Commits: []history.Commit{commit(idB, 2, idA), commit(idA, 1)}},
		{Branch: history.Branch{Name: "docs", HeadID: idX}, Commits: []history.Commit{commit(idX, 3)}},
	}, nil)

	surface := newRecorder()
	result := Render(model, surface, Options{})

	assert.Equal(t, []string{"main", "docs"}, result.Lanes)
	assert.Nil(t, surface.specs["docs"].From)
	assert.Empty(t, surface.specs["docs"].FromCommit)
}

func TestRenderSelectedBranchBreaksTies(t *testing.T) {
	result := Render(forkAndMerge(true), newRecorder(), Options{Selected: "feature"})

	assert.Equal(t, map[string]string{
		idA: "feature",
		idB: "main",
		idC: "feature",
		idD: "main",
	}, lanesOf(result))
	assert.Equal(t, []string{"feature", "main"}, result.Lanes)
}

func TestRenderMergeFallsBackToCommit(t *testing.T) {
	surface := newRecorder()
	surface.mergeErr = errors.New("lane closed")

	result := Render(forkAndMerge(true), surface, Options{})

	assert.Zero(t, result.FailedCommits)
	d := result.Assignments[3]
	assert.Equal(t, KindCommit, d.Kind)
	assert.Equal(t, "main", d.Lane)
	assert.Contains(t, surface.calls, "commit d on main")
}

func TestRenderRecoversFromSurfacePanic(t *testing.T) {
	model := history.Normalize([]history.Listing{{
		Branch: history.Branch{Name: "main", HeadID: idX, Default: true},
		Commits: []history.Commit{
			commit(idX, 5, idD), commit(idD, 4, idC), commit(idC, 3, idB), commit(idB, 2, idA), commit(idA, 1),
		},
	}}, nil)

	surface := newRecorder()
	surface.panicOn = idB

	result := Render(model, surface, Options{})

	assert.Equal(t, 1, result.FailedCommits)
	_, ok := result.Lane(idB)
	assert.False(t, ok)

	assert.Equal(t, []string{"main"}, result.Lanes, "the branch keeps one lane past the missing commit")
	assert.Equal(t, map[string]string{idA: "main", idC: "main", idD: "main", idX: "main"}, lanesOf(result))
	assert.Contains(t, surface.labels, "main")
}

// A fork whose second child is drawn after the branch lane moved on opens a
// derived lane; the rest of the branch's first-parent line stays on it.
func TestRenderContinuesDerivedLane(t *testing.T) {
	w := commit(idX, 2)
	b := commit(idB, 3, idA, idX)
	m := commit(idC, 4, idA)
	p := commit(idD, 5, idC)
	r := commit(idF, 6, idD, idB)
	model := history.Normalize([]history.Listing{{
		Branch:  history.Branch{Name: "main", HeadID: idF, Default: true},
		Commits: []history.Commit{r, p, m, b, w, commit(idA, 1)},
	}}, nil)

	surface := newRecorder()
	result := Render(model, surface, Options{})

	derived := "main~" + idC[:history.ShortIDLength]
	assert.Equal(t, []string{"main", idX[:history.ShortIDLength], derived}, result.Lanes)
	assert.Equal(t, map[string]string{
		idA: "main",
		idX: idX[:history.ShortIDLength],
		idB: "main",
		idC: derived,
		idD: derived,
		idF: derived,
	}, lanesOf(result))
	assert.Contains(t, surface.calls, "merge f from main into "+derived)
	assert.Zero(t, result.FailedCommits)
}

// main: A-B-M(B,F2), feature: A-F1-F2-F3. The merge is traced from F2, its
// secondary parent, and must not fall back onto the primary parent's lane.
func TestRenderMergeTracedFromSecondaryParent(t *testing.T) {
	a := commit(idA, 1)
	b := commit(idB, 2, idA)
	f1 := commit(idC, 3, idA)
	f2 := commit(idD, 4, idC)
	m := commit(idM, 5, idB, idD)
	f3 := commit(idF, 6, idD)
	model := history.Normalize([]history.Listing{
		{Branch: history.Branch{Name: "main", HeadID: idM, Default: true}, Commits: []history.Commit{m, f2, f1, b, a}},
		{Branch: history.Branch{Name: "feature", HeadID: idF}, Commits: []history.Commit{f3, f2, f1, a}},
	}, nil)

	surface := newRecorder()
	result := Render(model, surface, Options{})

	side := idM[:history.ShortIDLength]
	assert.Equal(t, []string{"main", "feature", side}, result.Lanes)
	assert.Equal(t, map[string]string{
		idA: "main",
		idB: "main",
		idC: "feature",
		idD: "feature",
		idM: side,
		idF: "feature",
	}, lanesOf(result))

	spec := surface.specs[side]
	require.NotNil(t, spec.From)
	assert.Equal(t, "main", spec.From.Name())
	assert.Equal(t, idB, spec.FromCommit)
	assert.Contains(t, surface.calls, "merge 9 from feature into "+side)
}

func TestRenderMergeFromUndrawnParent(t *testing.T) {
	model := history.Normalize([]history.Listing{{
		Branch:  history.Branch{Name: "main", HeadID: idB, Default: true},
		Commits: []history.Commit{commit(idB, 2, idA, idG), commit(idA, 1)},
	}}, nil)

	surface := newRecorder()
	result := Render(model, surface, Options{})

	source := idG[:history.ShortIDLength]
	assert.Equal(t, []string{"main", source}, result.Lanes)
	assert.Nil(t, surface.specs[source].From)
	assert.Contains(t, surface.calls, "merge b from "+source+" into main")
	assert.Equal(t, KindMerge, result.Assignments[1].Kind)
}

func TestRenderTags(t *testing.T) {
	model := history.Normalize([]history.Listing{{
		Branch:  history.Branch{Name: "main", HeadID: idB, Default: true},
		Commits: []history.Commit{commit(idB, 2, idA), commit(idA, 1)},
	}}, []history.Tag{
		{Name: "v0.9", CommitID: "not-in-history"},
		{Name: "v1.0", CommitID: idA, Message: "first release"},
		{Name: "latest", CommitID: idB},
	})

	surface := newRecorder()
	result := Render(model, surface, Options{Palette: []string{"red"}})

	assert.Equal(t, 1, result.FailedTags)
	assert.NotContains(t, surface.tags, "v0.9")
	require.Contains(t, surface.tags, "v1.0")
	assert.Equal(t, TagStyle{Color: "red", Message: "first release"}, surface.tags["v1.0"])
	assert.Contains(t, surface.tags, "latest")
}

func TestRenderLabels(t *testing.T) {
	model := history.Normalize([]history.Listing{
		{Branch: history.Branch{Name: "main", HeadID: idB, Default: true, Protected: true}, Commits: []history.Commit{commit(idB, 2, idA), commit(idA, 1)}},
		{Branch: history.Branch{Name: "gone", HeadID: "unknown"}},
		{Branch: history.Branch{Name: "alias", HeadID: idA}, Commits: []history.Commit{commit(idA, 1)}},
	}, nil)

	surface := newRecorder()
	result := Render(model, surface, Options{Palette: []string{"red", "green"}})

	assert.Equal(t, 1, result.FailedLabels)
	assert.Equal(t, LabelStyle{Color: "red", Default: true, Protected: true}, surface.labels["main"])
	assert.Equal(t, LabelStyle{Color: "green"}, surface.labels["alias"])
	assert.NotContains(t, surface.labels, "gone")
}

func TestRenderFocusDecoratesDirectLine(t *testing.T) {
	surface := newRecorder()
	Render(forkAndMerge(true), surface, Options{Selected: "main"})
	assert.Equal(t, []string{idD, idB, idA}, surface.decorated)

	surface = newRecorder()
	Render(forkAndMerge(true), surface, Options{})
	assert.Empty(t, surface.decorated)
}

func TestRenderCreateLaneOverride(t *testing.T) {
	var created []string
	opts := Options{
		CreateLane: func(name string, spec LaneSpec) (Lane, error) {
			created = append(created, name)
			return &fakeLane{name: name}, nil
		},
	}

	surface := newRecorder()
	result := Render(forkAndMerge(true), surface, opts)

	assert.Equal(t, []string{"main", "feature"}, created)
	assert.Empty(t, surface.specs)
	assert.Len(t, result.Assignments, 4)
}

func TestRenderCreateLaneFailure(t *testing.T) {
	opts := Options{
		CreateLane: func(name string, spec LaneSpec) (Lane, error) {
			if name == "feature" {
				return nil, errors.New("no room")
			}
			return &fakeLane{name: name}, nil
		},
	}

	result := Render(forkAndMerge(true), newRecorder(), opts)

	assert.Equal(t, 1, result.FailedCommits)
	_, ok := result.Lane(idC)
	assert.False(t, ok)

	d := result.Assignments[len(result.Assignments)-1]
	assert.Equal(t, idD, d.CommitID)
	assert.Equal(t, KindMerge, d.Kind, "the merge draws from a temporary lane for the failed parent")
	assert.Equal(t, []string{"main", idC[:history.ShortIDLength]}, result.Lanes)
}

func TestRenderOnSelect(t *testing.T) {
	var picked []string
	surface := newRecorder()
	Render(linear(), surface, Options{OnSelect: func(id string) { picked = append(picked, id) }})

	require.NotNil(t, surface.drawn[idB].OnSelect)
	surface.drawn[idB].OnSelect()
	assert.Equal(t, []string{idB}, picked)
}

func TestRenderIsDeterministic(t *testing.T) {
	model := forkAndMerge(true)

	first, second := newRecorder(), newRecorder()
	r1 := Render(model, first, Options{Selected: "feature"})
	r2 := Render(model, second, Options{Selected: "feature"})

	assert.Equal(t, first.calls, second.calls)
	assert.Equal(t, r1, r2)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "commit", KindCommit.String())
	assert.Equal(t, "merge", KindMerge.String())
}

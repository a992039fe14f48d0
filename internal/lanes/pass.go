// Package lanes assigns every commit of a normalized history to a lane and
// drives a Surface to draw the resulting diagram.
//
// A render pass walks the commits oldest to newest. For each commit it
// decides which branch lane the commit belongs to, reusing the lane of its
// primary parent where the branch continues and opening a new lane where
// history forks. Merge commits are drawn as a merge from the lane of their
// secondary parent. Once every commit is drawn, branch heads get labels and
// tags get markers.
//
// The pass never aborts: failures on a single commit, label or tag are
// logged and counted in the Result, and the walk moves on.
package lanes

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yourusername/gitlanes/internal/history"
)

// DefaultPalette is used when Options.Palette is empty.
var DefaultPalette = []string{"#89b4fa", "#cba6f7", "#94e2d5", "#f9e2af", "#a6e3a1"}

type Options struct {
	// Selected is the focused branch name. It only breaks ties.
	Selected string
	// Palette is cycled through as lanes are created.
	Palette []string
	// CreateLane replaces Surface.CreateLane when set.
	CreateLane func(name string, spec LaneSpec) (Lane, error)
	// OnSelect is attached to every drawn commit.
	OnSelect func(commitID string)
	Logger   *log.Logger
}

type Kind int

const (
	KindCommit Kind = iota
	KindMerge
)

func (k Kind) String() string {
	if k == KindMerge {
		return "merge"
	}
	return "commit"
}

// Assignment records where one commit was drawn.
type Assignment struct {
	CommitID string
	Lane     string
	Index    int
	Kind     Kind
}

type Result struct {
	Assignments []Assignment
	// Lanes in creation order.
	Lanes         []string
	FailedCommits int
	FailedLabels  int
	FailedTags    int
}

// Lane returns the lane name the commit was drawn on.
func (r *Result) Lane(commitID string) (string, bool) {
	for _, a := range r.Assignments {
		if a.CommitID == commitID {
			return a.Lane, true
		}
	}
	return "", false
}

// Entry is the lane history of one drawn commit.
type Entry struct {
	Lane  Lane
	Name  string
	Index int
}

type traceEntry struct {
	direction history.Direction
	fork      *history.RenderCommit
}

// pass holds the state of a single render. It is discarded when Render returns.
type pass struct {
	model   *history.Model
	surface Surface
	opts    Options
	log     *log.Logger
	palette []string

	lanes   map[string]Lane
	colors  map[string]string
	tips    map[string]string
	history map[string]Entry
	trace   map[string]traceEntry
	lines   map[string]map[string]bool
	next    int

	result *Result
}

// Render draws model onto surface. The same model and options always produce
// the same sequence of surface calls.
func Render(model *history.Model, surface Surface, opts Options) *Result {
	p := newPass(model, surface, opts)
	for _, rc := range model.Commits {
		if err := p.step(rc); err != nil {
			p.result.FailedCommits++
			p.log.Warn("skipping commit", "commit", rc.ShortID(), "err", err)
		}
	}
	p.label()
	p.tag()
	p.focus()
	p.log.Debug("render pass done",
		"commits", len(p.result.Assignments),
		"lanes", len(p.result.Lanes),
		"failed", p.result.FailedCommits)
	return p.result
}

func newPass(model *history.Model, surface Surface, opts Options) *pass {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &pass{
		model:   model,
		surface: surface,
		opts:    opts,
		log:     logger,
		palette: palette,
		lanes:   make(map[string]Lane),
		colors:  make(map[string]string),
		tips:    make(map[string]string),
		history: make(map[string]Entry),
		trace:   make(map[string]traceEntry),
		lines:   make(map[string]map[string]bool),
		result:  &Result{},
	}
}

func (p *pass) step(rc *history.RenderCommit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("surface panicked: %v", r)
		}
	}()

	if rc.IsFork() {
		p.traceChildren(rc)
	}

	name := p.resolveName(rc)
	lane, name, err := p.laneFor(name, rc)
	if err != nil {
		return err
	}
	kind, err := p.draw(lane, name, rc)
	if err != nil {
		return err
	}

	p.history[rc.ID] = Entry{Lane: lane, Name: name, Index: len(p.result.Assignments)}
	p.tips[name] = rc.ID
	p.result.Assignments = append(p.result.Assignments, Assignment{
		CommitID: rc.ID,
		Lane:     name,
		Index:    len(p.result.Assignments),
		Kind:     kind,
	})
	return nil
}

// traceChildren remembers the fork point of each child. A child reached from
// two forks keeps a Direct classification over any other, otherwise the
// first fork recorded wins.
func (p *pass) traceChildren(rc *history.RenderCommit) {
	for _, child := range rc.Children {
		if prev, ok := p.trace[child.ID]; ok && (prev.direction == history.Direct || child.Direction != history.Direct) {
			continue
		}
		p.trace[child.ID] = traceEntry{direction: child.Direction, fork: rc}
	}
}

// resolveName picks the branch lane name a commit is drawn on.
func (p *pass) resolveName(rc *history.RenderCommit) string {
	parentLane := p.laneName(rc.PrimaryParent())

	t, traced := p.trace[rc.ID]
	if !traced {
		return p.linearName(rc, parentLane)
	}

	forkLane := p.laneName(t.fork.ID)
	dir := t.direction
	if dir == history.Linear {
		dir = p.classify(rc, forkLane)
	}
	if dir == history.Direct {
		if name, ok := p.pick(rc.Branches, parentLane); ok {
			return name
		}
		return p.fallbackName(rc, parentLane)
	}
	return p.sideName(rc, parentLane)
}

// classify settles whether a single-parent child of a fork continues the
// fork's lane. The priority branch for the fork lane must reach the commit
// through first parents only.
func (p *pass) classify(rc *history.RenderCommit, forkLane string) history.Direction {
	name, ok := p.pick(rc.Branches, forkLane)
	if !ok {
		return history.Indirect
	}
	if p.onDirectLine(name, rc.ID) {
		return history.Direct
	}
	return history.Indirect
}

// linearName handles commits that are not the child of a fork.
func (p *pass) linearName(rc *history.RenderCommit, parentLane string) string {
	var eligible []*history.Branch
	for _, b := range rc.Branches {
		if p.onDirectLine(b.Name, rc.ID) {
			eligible = append(eligible, b)
		}
	}
	if name, ok := p.pick(eligible, parentLane); ok {
		return name
	}
	return p.fallbackName(rc, parentLane)
}

// sideName opens a side lane: any branch but the primary parent's whose
// direct line holds the commit, or a temporary name derived from the commit
// id. For a merge traced from its secondary parent, the fork is not the
// primary parent, so the fork's lane stays eligible.
func (p *pass) sideName(rc *history.RenderCommit, parentLane string) string {
	var eligible []*history.Branch
	for _, b := range rc.Branches {
		if b.Name == parentLane {
			continue
		}
		if p.onDirectLine(b.Name, rc.ID) {
			eligible = append(eligible, b)
		}
	}
	if name, ok := p.pick(eligible, parentLane); ok {
		return name
	}
	return rc.ShortID()
}

func (p *pass) fallbackName(rc *history.RenderCommit, parentLane string) string {
	if parentLane != "" {
		return parentLane
	}
	return rc.ShortID()
}

// laneFor returns the lane to draw rc on, creating it when needed. A lane
// whose tip is not the primary parent is closed for rc, which then opens a
// fresh lane under a derived name. A derived lane of the same branch that
// ends at the parent is continued instead. When the parent was never drawn
// the named lane is continued as is.
func (p *pass) laneFor(name string, rc *history.RenderCommit) (Lane, string, error) {
	parentID := rc.PrimaryParent()
	parent, hasParent := p.history[parentID]

	if lane, ok := p.lanes[name]; ok {
		if hasParent && p.tips[name] == parentID {
			return lane, name, nil
		}
		if parentID != "" && !hasParent {
			return lane, name, nil
		}
		if hasParent && strings.HasPrefix(parent.Name, name+"~") && p.tips[parent.Name] == parentID {
			return parent.Lane, parent.Name, nil
		}
		name = name + "~" + rc.ShortID()
		if lane, ok := p.lanes[name]; ok {
			return lane, name, nil
		}
	}

	spec := LaneSpec{Color: p.nextColor()}
	if hasParent {
		spec.From = parent.Lane
		spec.FromCommit = parentID
	}
	lane, err := p.createLane(name, spec)
	if err != nil {
		return nil, "", err
	}
	return lane, name, nil
}

func (p *pass) createLane(name string, spec LaneSpec) (Lane, error) {
	create := p.surface.CreateLane
	if p.opts.CreateLane != nil {
		create = p.opts.CreateLane
	}
	lane, err := create(name, spec)
	if err != nil {
		return nil, fmt.Errorf("create lane %s: %w", name, err)
	}
	p.lanes[name] = lane
	p.colors[name] = spec.Color
	p.result.Lanes = append(p.result.Lanes, name)
	return lane, nil
}

// mergeSource returns the lane the secondary parent of a merge was drawn on.
// A parent outside the drawn history gets a temporary root lane named after
// its short id, so the merge still shows an incoming line.
func (p *pass) mergeSource(rc *history.RenderCommit) (Lane, string, error) {
	sourceID := rc.ParentIDs[1]
	if from, ok := p.history[sourceID]; ok {
		return from.Lane, from.Name, nil
	}
	name := shortID(sourceID)
	if lane, ok := p.lanes[name]; ok {
		return lane, name, nil
	}
	p.log.Debug("merge source not drawn, opening temporary lane",
		"commit", rc.ShortID(), "source", name)
	lane, err := p.createLane(name, LaneSpec{Color: p.nextColor()})
	if err != nil {
		return nil, "", err
	}
	return lane, name, nil
}

func (p *pass) draw(lane Lane, name string, rc *history.RenderCommit) (Kind, error) {
	opts := p.commitOptions(rc)
	if rc.IsMerge() {
		from, fromName, err := p.mergeSource(rc)
		if err == nil {
			err = p.surface.Merge(lane, from, opts)
		}
		if err == nil {
			return KindMerge, nil
		}
		p.log.Warn("merge rejected, drawing plain commit",
			"commit", rc.ShortID(), "lane", name, "from", fromName, "err", err)
	}
	if err := p.surface.Commit(lane, opts); err != nil {
		return KindCommit, fmt.Errorf("draw on %s: %w", name, err)
	}
	return KindCommit, nil
}

func (p *pass) commitOptions(rc *history.RenderCommit) CommitOptions {
	opts := CommitOptions{
		ID:        rc.ID,
		Title:     rc.Title,
		Author:    rc.AuthorName,
		ParentIDs: rc.ParentIDs,
		Time:      rc.CommittedAt,
	}
	if p.opts.OnSelect != nil {
		id := rc.ID
		opts.OnSelect = func() { p.opts.OnSelect(id) }
	}
	return opts
}

func (p *pass) laneName(commitID string) string {
	if e, ok := p.history[commitID]; ok {
		return e.Name
	}
	return ""
}

func shortID(id string) string {
	if len(id) > history.ShortIDLength {
		return id[:history.ShortIDLength]
	}
	return id
}

func (p *pass) nextColor() string {
	c := p.palette[p.next%len(p.palette)]
	p.next++
	return c
}

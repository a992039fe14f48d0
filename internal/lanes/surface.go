package lanes

import (
	"errors"
	"time"
)

// ErrUnknownCommit is returned by a Surface when an annotation targets a
// commit it never drew.
var ErrUnknownCommit = errors.New("unknown commit")

// Lane is an opaque handle created by a Surface.
type Lane interface {
	Name() string
}

// LaneSpec describes where a new lane starts.
type LaneSpec struct {
	// From is the lane the new lane branches off, nil for a root lane.
	From Lane
	// FromCommit is the commit the new lane branches off, "" for a root lane.
	FromCommit string
	Color      string
}

type CommitOptions struct {
	ID        string
	Title     string
	Author    string
	ParentIDs []string
	Time      time.Time
	// OnSelect is invoked by interactive surfaces when the commit is picked.
	OnSelect func()
}

type TagStyle struct {
	Color   string
	Message string
}

type LabelStyle struct {
	Color     string
	Default   bool
	Protected bool
}

// Decoration marks a drawn commit for special emphasis.
type Decoration int

const (
	DecorationNone Decoration = iota
	// DecorationFocus highlights commits on the selected branch.
	DecorationFocus
)

// Surface is the drawing side of a render pass. Calls arrive in commit
// chronological order, followed by labels, tags and decorations.
type Surface interface {
	// CreateLane must return the same handle when called twice with one name.
	CreateLane(name string, spec LaneSpec) (Lane, error)
	Commit(lane Lane, opts CommitOptions) error
	Merge(into, from Lane, opts CommitOptions) error
	Tag(name, commitID string, style TagStyle) error
	Label(branch, commitID string, style LabelStyle) error
	Decorate(commitID string, d Decoration) error
}

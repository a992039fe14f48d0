package history

import (
	"strings"
	"time"
)

// ShortIDLength is the number of characters shown for abbreviated commit ids.
const ShortIDLength = 7

type Commit struct {
	ID             string
	ParentIDs      []string
	Title          string
	Message        string
	AuthorName     string
	AuthorEmail    string
	AuthoredAt     time.Time
	CommitterName  string
	CommitterEmail string
	// CommittedAt orders the history. The zero value marks an unparseable
	// timestamp and sorts before everything else.
	CommittedAt time.Time
}

// ShortID returns the abbreviated commit id.
func (c *Commit) ShortID() string {
	if len(c.ID) <= ShortIDLength {
		return c.ID
	}
	return c.ID[:ShortIDLength]
}

// PrimaryParent returns the first parent id, or "" for a root commit.
func (c *Commit) PrimaryParent() string {
	if len(c.ParentIDs) == 0 {
		return ""
	}
	return c.ParentIDs[0]
}

// Subject returns the first line of a commit message.
func Subject(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return strings.TrimRight(message[:i], "\r")
	}
	return message
}

type Branch struct {
	Name      string
	HeadID    string
	Default   bool
	Protected bool
}

type Tag struct {
	Name     string
	CommitID string
	Message  string
}

// Listing is one provider result: a branch and the commits reachable from it.
type Listing struct {
	Branch  Branch
	Commits []Commit
}

// Direction classifies the edge between a commit and one of its children.
type Direction int

const (
	// Linear means the child has a single parent, so whether it continues
	// the lane is decided later from lane context.
	Linear Direction = iota
	// Direct means the child is a merge whose first parent is this commit.
	Direct
	// Indirect means the child is a merge and this commit is a secondary parent.
	Indirect
)

func (d Direction) String() string {
	switch d {
	case Direct:
		return "direct"
	case Indirect:
		return "indirect"
	default:
		return "linear"
	}
}

type Child struct {
	ID        string
	Direction Direction
}

// RenderCommit is a commit together with everything the lane assigner needs
// to know about its neighbourhood.
type RenderCommit struct {
	*Commit
	// Branches whose listing contained the commit, default branch first,
	// then by most recent head.
	Branches []*Branch
	// Children in chronological order.
	Children []Child
}

// IsFork reports whether history diverges at this commit.
func (rc *RenderCommit) IsFork() bool {
	return len(rc.Children) > 1
}

func (rc *RenderCommit) IsMerge() bool {
	return len(rc.ParentIDs) > 1
}

// BranchNames returns the membership branch names in priority order.
func (rc *RenderCommit) BranchNames() []string {
	names := make([]string, len(rc.Branches))
	for i, b := range rc.Branches {
		names[i] = b.Name
	}
	return names
}

// Package history turns raw per-branch commit listings into one canonical,
// chronologically ordered commit model with branch membership and child
// relations.
package history

import (
	"sort"
	"time"
)

// Model is the canonical history produced by Normalize.
type Model struct {
	// Commits ordered oldest to newest.
	Commits  []*RenderCommit
	Branches []*Branch
	Tags     []Tag

	byID     map[string]*RenderCommit
	branches map[string]*Branch
}

// Lookup returns the commit with the given id.
func (m *Model) Lookup(id string) (*RenderCommit, bool) {
	rc, ok := m.byID[id]
	return rc, ok
}

// Branch returns the branch with the given name.
func (m *Model) Branch(name string) (*Branch, bool) {
	b, ok := m.branches[name]
	return b, ok
}

// HeadTime returns the commit time of the branch head, or the zero time when
// the head is not part of the history.
func (m *Model) HeadTime(b *Branch) time.Time {
	if rc, ok := m.byID[b.HeadID]; ok {
		return rc.CommittedAt
	}
	return time.Time{}
}

// Normalize deduplicates commits and branches across listings, computes
// membership and child relations, and orders commits by commit time.
// Malformed input never fails: conflicting duplicates keep the first
// occurrence and dangling parent ids are ignored.
func Normalize(listings []Listing, tags []Tag) *Model {
	m := &Model{
		byID:     make(map[string]*RenderCommit),
		branches: make(map[string]*Branch),
	}

	seen := make(map[string]int)
	var order []*RenderCommit
	membership := make(map[string][]*Branch)

	for _, l := range listings {
		branch := m.addBranch(l.Branch)
		for i := range l.Commits {
			c := l.Commits[i]
			if c.ID == "" {
				continue
			}
			if _, ok := m.byID[c.ID]; !ok {
				c.ParentIDs = append([]string(nil), c.ParentIDs...)
				rc := &RenderCommit{Commit: &c}
				m.byID[c.ID] = rc
				seen[c.ID] = len(order)
				order = append(order, rc)
			}
			if !containsBranch(membership[c.ID], branch) {
				membership[c.ID] = append(membership[c.ID], branch)
			}
		}
	}

	for id, bs := range membership {
		m.byID[id].Branches = m.sortBranches(bs)
	}

	gen := generations(order, m.byID)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if !a.CommittedAt.Equal(b.CommittedAt) {
			return a.CommittedAt.Before(b.CommittedAt)
		}
		if gen[a.ID] != gen[b.ID] {
			return gen[a.ID] < gen[b.ID]
		}
		return seen[a.ID] < seen[b.ID]
	})

	for _, rc := range order {
		for i, pid := range rc.ParentIDs {
			parent, ok := m.byID[pid]
			if !ok || parent == rc {
				continue
			}
			if hasChild(parent, rc.ID) {
				continue
			}
			dir := Linear
			if rc.IsMerge() {
				dir = Indirect
				if i == 0 {
					dir = Direct
				}
			}
			parent.Children = append(parent.Children, Child{ID: rc.ID, Direction: dir})
		}
	}

	m.Commits = order
	m.Tags = append([]Tag(nil), tags...)
	return m
}

func (m *Model) addBranch(b Branch) *Branch {
	if existing, ok := m.branches[b.Name]; ok {
		return existing
	}
	nb := b
	if nb.Default {
		for _, other := range m.Branches {
			if other.Default {
				nb.Default = false
				break
			}
		}
	}
	m.branches[nb.Name] = &nb
	m.Branches = append(m.Branches, &nb)
	return &nb
}

// sortBranches orders membership with the default branch first, then by the
// most recent head commit, then by name.
func (m *Model) sortBranches(bs []*Branch) []*Branch {
	sorted := append([]*Branch(nil), bs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return m.Before(sorted[i], sorted[j])
	})
	return sorted
}

// Before reports whether branch a takes precedence over branch b when both
// could own a commit.
func (m *Model) Before(a, b *Branch) bool {
	if a.Default != b.Default {
		return a.Default
	}
	ta, tb := m.HeadTime(a), m.HeadTime(b)
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return a.Name < b.Name
}

// generations assigns each commit its distance from the furthest root so
// ancestors sort before descendants when commit times tie.
func generations(order []*RenderCommit, byID map[string]*RenderCommit) map[string]int {
	gen := make(map[string]int, len(order))
	const visiting = -1

	for _, start := range order {
		if _, done := gen[start.ID]; done {
			continue
		}
		stack := []*RenderCommit{start}
		for len(stack) > 0 {
			rc := stack[len(stack)-1]
			if g, ok := gen[rc.ID]; ok && g != visiting {
				stack = stack[:len(stack)-1]
				continue
			}
			gen[rc.ID] = visiting

			pending := false
			g := 0
			for _, pid := range rc.ParentIDs {
				parent, ok := byID[pid]
				if !ok {
					continue
				}
				pg, known := gen[pid]
				switch {
				case !known:
					stack = append(stack, parent)
					pending = true
				case pg == visiting:
					// cycle in malformed input, treat the edge as absent
				case pg+1 > g:
					g = pg + 1
				}
			}
			if pending {
				continue
			}
			gen[rc.ID] = g
			stack = stack[:len(stack)-1]
		}
	}
	return gen
}

func containsBranch(bs []*Branch, b *Branch) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}

func hasChild(rc *RenderCommit, id string) bool {
	for _, c := range rc.Children {
		if c.ID == id {
			return true
		}
	}
	return false
}

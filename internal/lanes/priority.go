package lanes

import "github.com/yourusername/gitlanes/internal/history"

// candidates is the input of one priority decision.
type candidates struct {
	branches []*history.Branch
	previous string
	selected string
	model    *history.Model
}

// strategy returns a branch name when it can decide, or false to defer to
// the next strategy.
type strategy func(c candidates) (string, bool)

// strategies are evaluated in order; the first match wins.
var strategies = []strategy{
	preferPrevious,
	preferSelected,
	preferRecentHead,
}

// pick applies the priority rule to a candidate branch list.
func (p *pass) pick(branches []*history.Branch, previous string) (string, bool) {
	return Pick(p.model, branches, previous, p.opts.Selected)
}

// Pick chooses the priority branch among branches: the lane name used just
// before, then the selected branch, then the default branch, then the branch
// with the newest head.
func Pick(model *history.Model, branches []*history.Branch, previous, selected string) (string, bool) {
	if len(branches) == 0 {
		return "", false
	}
	c := candidates{branches: branches, previous: previous, selected: selected, model: model}
	for _, s := range strategies {
		if name, ok := s(c); ok {
			return name, true
		}
	}
	return "", false
}

func preferPrevious(c candidates) (string, bool) {
	return named(c.branches, c.previous)
}

func preferSelected(c candidates) (string, bool) {
	return named(c.branches, c.selected)
}

func preferRecentHead(c candidates) (string, bool) {
	var best *history.Branch
	for _, b := range c.branches {
		if best == nil || c.ahead(b, best) {
			best = b
		}
	}
	if best == nil {
		return "", false
	}
	return best.Name, true
}

// ahead orders branches by the default branch tie-break, then head recency,
// then name.
func (c candidates) ahead(a, b *history.Branch) bool {
	if first, decided := defaultBranchWins(a, b); decided {
		return first
	}
	ta, tb := c.model.HeadTime(a), c.model.HeadTime(b)
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return a.Name < b.Name
}

// defaultBranchWins puts the default branch ahead of any other branch
// regardless of head time.
func defaultBranchWins(a, b *history.Branch) (aFirst, decided bool) {
	if a.Default == b.Default {
		return false, false
	}
	return a.Default, true
}

func named(branches []*history.Branch, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, b := range branches {
		if b.Name == name {
			return name, true
		}
	}
	return "", false
}

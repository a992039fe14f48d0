package lanes

import "github.com/yourusername/gitlanes/internal/history"

// DirectLine returns the first-parent chain of a branch, head first. The
// walk stops at the first id that does not resolve to a commit. The head is
// always part of the line.
func DirectLine(model *history.Model, branch string) []string {
	b, ok := model.Branch(branch)
	if !ok || b.HeadID == "" {
		return nil
	}
	line := []string{b.HeadID}
	seen := map[string]bool{b.HeadID: true}
	id := b.HeadID
	for {
		rc, ok := model.Lookup(id)
		if !ok {
			break
		}
		id = rc.PrimaryParent()
		if id == "" || seen[id] {
			break
		}
		if _, ok := model.Lookup(id); !ok {
			break
		}
		seen[id] = true
		line = append(line, id)
	}
	return line
}

// OnDirectLine reports whether commitID is reachable from the branch head by
// following first parents only.
func OnDirectLine(model *history.Model, branch, commitID string) bool {
	for _, id := range DirectLine(model, branch) {
		if id == commitID {
			return true
		}
	}
	return false
}

// onDirectLine is OnDirectLine with the chain of each branch computed once
// per pass.
func (p *pass) onDirectLine(branch, commitID string) bool {
	line, ok := p.lines[branch]
	if !ok {
		ids := DirectLine(p.model, branch)
		line = make(map[string]bool, len(ids))
		for _, id := range ids {
			line[id] = true
		}
		p.lines[branch] = line
	}
	return line[commitID]
}

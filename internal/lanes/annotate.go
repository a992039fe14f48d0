package lanes

// label attaches a label to every branch head that was drawn. Branches that
// own a lane reuse its color; the others continue the palette rotation.
func (p *pass) label() {
	for _, b := range p.model.Branches {
		if _, ok := p.history[b.HeadID]; !ok {
			p.result.FailedLabels++
			p.log.Debug("branch head not drawn", "branch", b.Name, "head", b.HeadID)
			continue
		}
		color, ok := p.colors[b.Name]
		if !ok {
			color = p.nextColor()
		}
		style := LabelStyle{Color: color, Default: b.Default, Protected: b.Protected}
		if err := p.surface.Label(b.Name, b.HeadID, style); err != nil {
			p.result.FailedLabels++
			p.log.Warn("could not label branch", "branch", b.Name, "err", err)
		}
	}
}

// tag places tag markers. A tag whose commit was never drawn is skipped.
func (p *pass) tag() {
	for _, t := range p.model.Tags {
		entry, ok := p.history[t.CommitID]
		if !ok {
			p.result.FailedTags++
			p.log.Warn("tag target not in history", "tag", t.Name, "commit", t.CommitID)
			continue
		}
		style := TagStyle{Color: p.colors[entry.Name], Message: t.Message}
		if err := p.surface.Tag(t.Name, t.CommitID, style); err != nil {
			p.result.FailedTags++
			p.log.Warn("could not place tag", "tag", t.Name, "err", err)
		}
	}
}

// focus decorates the direct line of the selected branch.
func (p *pass) focus() {
	if p.opts.Selected == "" {
		return
	}
	for _, id := range DirectLine(p.model, p.opts.Selected) {
		if _, ok := p.history[id]; !ok {
			continue
		}
		if err := p.surface.Decorate(id, DecorationFocus); err != nil {
			p.log.Debug("could not decorate commit", "commit", id, "err", err)
		}
	}
}

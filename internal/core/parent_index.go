package core

// parentIndex is the id-keyed relation between templates and the reactions
// that consume them. Reaction ids are kept in link order per template.
type parentIndex struct {
	links map[TemplateRef][]string
}

func newParentIndex() *parentIndex {
	return &parentIndex{links: make(map[TemplateRef][]string)}
}

func (p *parentIndex) link(ref TemplateRef, reactionID string) {
	for _, id := range p.links[ref] {
		if id == reactionID {
			return
		}
	}
	p.links[ref] = append(p.links[ref], reactionID)
}

func (p *parentIndex) unlink(ref TemplateRef, reactionID string) {
	ids := p.links[ref]
	for i, id := range ids {
		if id == reactionID {
			ids = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(p.links, ref)
		return
	}
	p.links[ref] = ids
}

func (p *parentIndex) reactions(ref TemplateRef) []string {
	return append([]string(nil), p.links[ref]...)
}

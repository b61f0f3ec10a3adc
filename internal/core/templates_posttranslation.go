package core

import "mecore/pkg/domain"

// PostTranslationData describes protein maturation after translation. Folding
// parameters are carried for downstream consumers and do not enter the
// stoichiometry.
type PostTranslationData struct {
	templateBase
	domain.PostTranslation
}

// NewPostTranslationData registers a post-translation template on n.
// PropensityScaling defaults to 1.
func NewPostTranslationData(n *Network, id string, data domain.PostTranslation) (*PostTranslationData, error) {
	base, err := newTemplateBase(n, EntityPostTranslation, id)
	if err != nil {
		return nil, err
	}
	t := &PostTranslationData{templateBase: base, PostTranslation: data.Clone()}
	if t.PropensityScaling == 0 {
		t.PropensityScaling = 1
	}
	if t.Translocation == nil {
		t.Translocation = make(map[string]float64)
	}
	if t.Modifications == nil {
		t.Modifications = make(map[string]float64)
	}
	if t.Subreactions == nil {
		t.Subreactions = make(map[string]float64)
	}
	if err := n.posttranslations.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ProteinLength returns the residue count of the unprocessed protein taken
// from the translation template that produces it.
func (p *PostTranslationData) ProteinLength() (int, bool) {
	for _, tr := range p.network.translations.List() {
		if tr.Protein == p.UnprocessedProteinID {
			return len(tr.AminoAcidSequence()), true
		}
	}
	return 0, false
}

package core

import "mecore/pkg/domain"

// NetworkView exposes a read-only view of a network to rules. Every accessor
// returns copies.
type NetworkView struct {
	network *Network
}

func newNetworkView(n *Network) NetworkView { return NetworkView{network: n} }

// ListSpecies returns all species in insertion order.
func (v NetworkView) ListSpecies() []Species {
	list := v.network.species.List()
	out := make([]Species, 0, len(list))
	for _, sp := range list {
		out = append(out, *sp)
	}
	return out
}

// FindSpecies retrieves a species by id.
func (v NetworkView) FindSpecies(id string) (Species, bool) {
	sp, err := v.network.species.Get(id)
	if err != nil {
		return Species{}, false
	}
	return *sp, true
}

// TemplateIDs lists the ids of one template kind.
func (v NetworkView) TemplateIDs(kind EntityType) []string { return v.network.TemplateIDs(kind) }

// HasTemplate reports whether a template exists.
func (v NetworkView) HasTemplate(kind EntityType, id string) bool {
	_, err := v.network.Template(kind, id)
	return err == nil
}

// ParentReactions lists the reactions consuming a template.
func (v NetworkView) ParentReactions(kind EntityType, id string) []string {
	return v.network.ParentReactions(kind, id)
}

// FindComplex retrieves a complex template record.
func (v NetworkView) FindComplex(id string) (domain.ComplexFormation, bool) {
	c, err := v.network.complexes.Get(id)
	if err != nil {
		return domain.ComplexFormation{}, false
	}
	return c.ComplexFormation.Clone(), true
}

// FindTranslation retrieves a translation template record.
func (v NetworkView) FindTranslation(id string) (domain.Translation, bool) {
	t, err := v.network.translations.Get(id)
	if err != nil {
		return domain.Translation{}, false
	}
	return t.Translation.Clone(), true
}

// ListReactions returns the persisted form of every reaction.
func (v NetworkView) ListReactions() []ReactionRecord {
	list := v.network.Reactions()
	out := make([]ReactionRecord, 0, len(list))
	for _, r := range list {
		out = append(out, r.Record())
	}
	return out
}

// Globals returns the network-wide parameters.
func (v NetworkView) Globals() GlobalInfo { return v.network.Globals() }

var _ domain.RuleView = NetworkView{}

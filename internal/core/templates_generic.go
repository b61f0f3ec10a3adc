package core

import (
	"slices"
	"strings"

	"mecore/pkg/domain"
)

// GenericPrefix is the recommended id prefix of generic pooled species.
const GenericPrefix = "generic_"

// GenericData describes a pooled species standing in for interchangeable
// components.
type GenericData struct {
	templateBase
	domain.Generic
}

// NewGenericData registers a generic template on n. Ids without the
// "generic_" prefix are accepted with a warning.
func NewGenericData(n *Network, id string, data domain.Generic) (*GenericData, error) {
	base, err := newTemplateBase(n, EntityGenericData, id)
	if err != nil {
		return nil, err
	}
	t := &GenericData{templateBase: base, Generic: data.Clone()}
	if err := n.generics.Add(t); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(id, GenericPrefix) {
		n.warn(ruleGenericPrefix, EntityGenericData, id, "best practice for generic id to start with %s", GenericPrefix)
	}
	return t, nil
}

// ReactionIDs lists the formation reactions CreateReactions maintains.
func (g *GenericData) ReactionIDs() []string {
	if g.Weighted() {
		return []string{"formation_" + g.id}
	}
	out := make([]string, 0, len(g.Components))
	for _, c := range g.Components {
		out = append(out, c+"_to_"+g.id)
	}
	return out
}

// maintains reports whether r is one of the reactions ReactionIDs lists for
// the current mapping, converting the matching component.
func (g *GenericData) maintains(r *GenericFormationReaction) bool {
	if g.Weighted() {
		return r.id == "formation_"+g.id
	}
	if r.component == "" {
		return false
	}
	return slices.Contains(g.Components, r.component) && r.id == r.component+"_to_"+g.id
}

// CreateReactions creates any missing formation reactions of the generic
// species and updates all of them. A flat component list yields one reaction
// per component; a weighted mapping yields a single combined reaction.
func (g *GenericData) CreateReactions() ([]*GenericFormationReaction, error) {
	g.network.species.GetOrCreate(g.id, SpeciesGeneric)
	ids := g.ReactionIDs()
	out := make([]*GenericFormationReaction, 0, len(ids))
	for i, id := range ids {
		var component string
		if !g.Weighted() {
			component = g.Components[i]
		}
		r, err := g.formationReaction(id)
		if err != nil {
			return nil, err
		}
		if err := r.SetGenericData(g.id, component); err != nil {
			return nil, err
		}
		if err := r.Update(); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (g *GenericData) formationReaction(id string) (*GenericFormationReaction, error) {
	if existing, ok := g.network.reactions[id]; ok {
		r, ok := existing.(*GenericFormationReaction)
		if !ok {
			return nil, ErrDuplicate{Entity: EntityReaction, ID: id}
		}
		return r, nil
	}
	return NewGenericFormationReaction(g.network, id)
}

package core

import (
	"fmt"
	"sort"

	"mecore/pkg/domain"
)

// Template is the abstract description of one biological process. Reactions
// consume templates by id; a template never holds reaction objects.
type Template interface {
	ID() string
	Kind() EntityType
	Network() *Network
	// ParentReactionIDs lists the reactions that consume the template.
	ParentReactionIDs() []string
	// RecomputeDependents rebuilds every parent reaction. Template setters
	// never do this implicitly.
	RecomputeDependents() error
}

type templateBase struct {
	id      string
	kind    EntityType
	network *Network
}

func (t templateBase) ID() string        { return t.id }
func (t templateBase) Kind() EntityType  { return t.kind }
func (t templateBase) Network() *Network { return t.network }

func (t templateBase) ref() TemplateRef { return TemplateRef{Kind: t.kind, ID: t.id} }

func (t templateBase) ParentReactionIDs() []string {
	return t.network.parents.reactions(t.ref())
}

func (t templateBase) RecomputeDependents() error {
	for _, id := range t.ParentReactionIDs() {
		r, err := t.network.Reaction(id)
		if err != nil {
			return fmt.Errorf("resolve parent of %s %s: %w", t.kind, t.id, err)
		}
		if err := r.Update(); err != nil {
			return fmt.Errorf("update reaction %s: %w", id, err)
		}
	}
	return nil
}

func newTemplateBase(n *Network, kind EntityType, id string) (templateBase, error) {
	if n == nil {
		return templateBase{}, fmt.Errorf("%s %s: network required", kind, id)
	}
	if id == "" {
		return templateBase{}, fmt.Errorf("%s id required", kind)
	}
	return templateBase{id: id, kind: kind, network: n}, nil
}

// StoichiometricData encodes the stoichiometry of a base metabolic conversion.
type StoichiometricData struct {
	templateBase
	domain.Stoichiometric
}

// NewStoichiometricData registers a stoichiometric template on n.
func NewStoichiometricData(n *Network, id string, data domain.Stoichiometric) (*StoichiometricData, error) {
	base, err := newTemplateBase(n, EntityStoichiometricData, id)
	if err != nil {
		return nil, err
	}
	t := &StoichiometricData{templateBase: base, Stoichiometric: data.Clone()}
	if t.Stoichiometry == nil {
		t.Stoichiometry = make(map[string]float64)
	}
	if err := n.stoichiometric.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ModificationData describes a chemical modification of an RNA or protein.
type ModificationData struct {
	templateBase
	domain.Modification
}

// NewModificationData registers a modification template on n.
func NewModificationData(n *Network, id string, data domain.Modification) (*ModificationData, error) {
	base, err := newTemplateBase(n, EntityModificationData, id)
	if err != nil {
		return nil, err
	}
	t := &ModificationData{templateBase: base, Modification: data.Clone()}
	if t.Stoichiometry == nil {
		t.Stoichiometry = make(map[string]float64)
	}
	if err := n.modifications.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ComplexData lists the complex templates whose modifications use m.
func (m *ModificationData) ComplexData() []*ComplexData {
	return complexesModifiedBy(m.network, m.id)
}

// SubreactionData describes a discrete elongation or processing step.
type SubreactionData struct {
	templateBase
	domain.Subreaction
}

// NewSubreactionData registers a subreaction template on n.
func NewSubreactionData(n *Network, id string, data domain.Subreaction) (*SubreactionData, error) {
	base, err := newTemplateBase(n, EntitySubreactionData, id)
	if err != nil {
		return nil, err
	}
	t := &SubreactionData{templateBase: base, Subreaction: data.Clone()}
	if t.Stoichiometry == nil {
		t.Stoichiometry = make(map[string]float64)
	}
	if err := n.subreactions.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ComplexData lists the complex templates whose modification map names s.
// Complex formation has no subreaction map of its own, so the modification
// map is the only place a subreaction can be attached to a complex.
func (s *SubreactionData) ComplexData() []*ComplexData {
	return complexesModifiedBy(s.network, s.id)
}

func complexesModifiedBy(n *Network, id string) []*ComplexData {
	var out []*ComplexData
	for _, c := range n.complexes.List() {
		if _, ok := c.Modifications[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// TranslocationData describes a membrane translocation pathway.
type TranslocationData struct {
	templateBase
	domain.Translocation
}

// NewTranslocationData registers a translocation template on n.
func NewTranslocationData(n *Network, id string, data domain.Translocation) (*TranslocationData, error) {
	base, err := newTemplateBase(n, EntityTranslocationData, id)
	if err != nil {
		return nil, err
	}
	t := &TranslocationData{templateBase: base, Translocation: data.Clone()}
	if t.Enzymes == nil {
		t.Enzymes = make(map[string]domain.Translocase)
	}
	if t.Stoichiometry == nil {
		t.Stoichiometry = make(map[string]float64)
	}
	if err := n.translocations.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

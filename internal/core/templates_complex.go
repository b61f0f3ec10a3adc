package core

import "mecore/pkg/domain"

// ComplexData describes the assembly of subunits into an enzyme complex.
type ComplexData struct {
	templateBase
	domain.ComplexFormation
}

// NewComplexData registers a complex formation template on n.
func NewComplexData(n *Network, id string, data domain.ComplexFormation) (*ComplexData, error) {
	base, err := newTemplateBase(n, EntityComplexData, id)
	if err != nil {
		return nil, err
	}
	t := &ComplexData{templateBase: base, ComplexFormation: data.Clone()}
	if t.Stoichiometry == nil {
		t.Stoichiometry = make(map[string]float64)
	}
	if t.Modifications == nil {
		t.Modifications = make(map[string]float64)
	}
	if t.ComplexAlias == id {
		t.ComplexAlias = ""
	}
	if err := n.complexes.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ComplexID is the species produced by the template. It equals the template
// id unless several templates converge on one physical complex.
func (c *ComplexData) ComplexID() string {
	if c.ComplexAlias == "" {
		return c.id
	}
	return c.ComplexAlias
}

// SetComplexID aliases the produced complex. Setting the template id clears
// the alias.
func (c *ComplexData) SetComplexID(id string) {
	if id == c.id {
		id = ""
	}
	c.ComplexAlias = id
}

// FormationID is the id of the reaction created by CreateComplexFormation.
func (c *ComplexData) FormationID() string { return "formation_" + c.id }

// Formation returns the formation reaction, if one was created.
func (c *ComplexData) Formation() (*ComplexFormationReaction, bool) {
	r, ok := c.network.reactions[c.FormationID()]
	if !ok {
		return nil, false
	}
	f, ok := r.(*ComplexFormationReaction)
	return f, ok
}

// CreateComplexFormation adds and updates the formation reaction of the
// complex. It fails when the reaction already exists.
func (c *ComplexData) CreateComplexFormation() (*ComplexFormationReaction, error) {
	r, err := NewComplexFormationReaction(c.network, c.FormationID())
	if err != nil {
		return nil, err
	}
	if err := r.SetComplexData(c.id); err != nil {
		return nil, err
	}
	if err := r.Update(); err != nil {
		return nil, err
	}
	return r, nil
}

package core

import (
	"fmt"
	"math"

	"mecore/pkg/domain"
)

// MetabolicReaction couples a stoichiometric template with an optional enzyme
// complex that is diluted at μ/keff/3600 per unit flux.
type MetabolicReaction struct {
	reactionBase
	stoichiometricID string
	complexID        string

	// Keff is the catalytic efficiency of the complex per second.
	Keff float64
	// Reverse runs the template stoichiometry backwards.
	Reverse bool
}

// NewMetabolicReaction registers an empty metabolic reaction on n.
func NewMetabolicReaction(n *Network, id string) (*MetabolicReaction, error) {
	base, err := newReactionBase(n, domain.ReactionMetabolic, id)
	if err != nil {
		return nil, err
	}
	r := &MetabolicReaction{reactionBase: base, Keff: n.globals.DefaultKeff}
	if err := n.addReaction(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetStoichiometricData binds the stoichiometric template.
func (r *MetabolicReaction) SetStoichiometricData(id string) error {
	return r.bind(&r.stoichiometricID, EntityStoichiometricData, id)
}

// SetComplexData binds the catalysing complex template.
func (r *MetabolicReaction) SetComplexData(id string) error {
	return r.bind(&r.complexID, EntityComplexData, id)
}

// StoichiometricDataID returns the bound stoichiometric template id.
func (r *MetabolicReaction) StoichiometricDataID() string { return r.stoichiometricID }

// ComplexDataID returns the bound complex template id, empty when uncatalysed.
func (r *MetabolicReaction) ComplexDataID() string { return r.complexID }

func (r *MetabolicReaction) Templates() []TemplateRef {
	return refs(
		TemplateRef{Kind: EntityStoichiometricData, ID: r.stoichiometricID},
		TemplateRef{Kind: EntityComplexData, ID: r.complexID},
	)
}

// Update rebuilds the stoichiometry and the flux bounds.
func (r *MetabolicReaction) Update() error {
	n := r.network
	if r.stoichiometricID == "" {
		return fmt.Errorf("metabolic reaction %s: no stoichiometric data bound", r.id)
	}
	data, err := n.stoichiometric.Get(r.stoichiometricID)
	if err != nil {
		return err
	}
	acc := accumulator{}
	if r.complexID != "" {
		cd, err := n.complexes.Get(r.complexID)
		if err != nil {
			return err
		}
		n.addCatalyst(acc, r.id, cd.ComplexID(), dilution(n.keff(r.Keff)))
	}
	sign := 1.0
	if r.Reverse {
		sign = -1
	}
	if err := n.addCounts(acc, data.Stoichiometry, sign); err != nil {
		return fmt.Errorf("metabolic reaction %s: %w", r.id, err)
	}
	if err := n.addSubreactions(acc, r.id, data.Subreactions); err != nil {
		return fmt.Errorf("metabolic reaction %s: %w", r.id, err)
	}
	r.replace(acc)

	if r.Reverse {
		r.lower = math.Max(0, -data.UpperBound)
		r.upper = math.Max(0, -data.LowerBound)
	} else {
		r.lower = math.Max(0, data.LowerBound)
		r.upper = math.Max(0, data.UpperBound)
	}
	return nil
}

func (r *MetabolicReaction) Record() ReactionRecord {
	rec := r.record(r.Templates())
	rec.Keff = r.Keff
	rec.Reverse = r.Reverse
	return rec
}

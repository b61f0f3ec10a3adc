package core

import (
	"fmt"

	"mecore/pkg/symbolic"
)

// DefaultUpperBound is the flux upper bound given to new reactions.
const DefaultUpperBound = 1000.0

// Reaction is a coupled reaction whose stoichiometry is derived from one or
// more templates. Update rebuilds the whole expression from scratch.
type Reaction interface {
	ID() string
	Kind() ReactionKind
	// Templates lists the templates the reaction consumes.
	Templates() []TemplateRef
	Update() error
	// Stoichiometry returns a copy of the current expression.
	Stoichiometry() map[string]Expr
	// Coefficient returns the coefficient of one species, zero when absent.
	Coefficient(speciesID string) Expr
	Bounds() (lower, upper float64)
	// Record captures the reaction for persistence.
	Record() ReactionRecord
}

type reactionBase struct {
	id            string
	kind          ReactionKind
	network       *Network
	stoichiometry map[string]Expr
	lower, upper  float64
}

func newReactionBase(n *Network, kind ReactionKind, id string) (reactionBase, error) {
	if n == nil {
		return reactionBase{}, fmt.Errorf("%s reaction %s: network required", kind, id)
	}
	if n.HasReaction(id) {
		return reactionBase{}, ErrDuplicate{Entity: EntityReaction, ID: id}
	}
	return reactionBase{
		id:            id,
		kind:          kind,
		network:       n,
		stoichiometry: map[string]Expr{},
		upper:         DefaultUpperBound,
	}, nil
}

func (r *reactionBase) ID() string         { return r.id }
func (r *reactionBase) Kind() ReactionKind { return r.kind }

func (r *reactionBase) Stoichiometry() map[string]Expr {
	out := make(map[string]Expr, len(r.stoichiometry))
	for k, v := range r.stoichiometry {
		out[k] = v
	}
	return out
}

// Coefficient returns the coefficient of one species, zero when absent.
func (r *reactionBase) Coefficient(speciesID string) Expr {
	return r.stoichiometry[speciesID]
}

func (r *reactionBase) Bounds() (float64, float64) { return r.lower, r.upper }

// SetBounds overrides the flux bounds. Metabolic reactions recompute them on
// every update.
func (r *reactionBase) SetBounds(lower, upper float64) error {
	if lower > upper {
		return fmt.Errorf("reaction %s: lower bound %g exceeds upper bound %g", r.id, lower, upper)
	}
	r.lower, r.upper = lower, upper
	return nil
}

func (r *reactionBase) record(refs []TemplateRef) ReactionRecord {
	return ReactionRecord{
		ID:            r.id,
		Kind:          r.kind,
		Templates:     refs,
		Stoichiometry: r.Stoichiometry(),
		LowerBound:    r.lower,
		UpperBound:    r.upper,
	}
}

func (r *reactionBase) restore(rec ReactionRecord) {
	r.stoichiometry = make(map[string]Expr, len(rec.Stoichiometry))
	for k, v := range rec.Stoichiometry {
		r.stoichiometry[k] = v
	}
	r.lower, r.upper = rec.LowerBound, rec.UpperBound
}

// bind points a template reference slot at id and registers the reaction as a
// parent of that template, dropping the link to the previous template.
func (r *reactionBase) bind(slot *string, kind EntityType, id string) error {
	if _, err := r.network.Template(kind, id); err != nil {
		return err
	}
	if *slot != "" && *slot != id {
		r.network.parents.unlink(TemplateRef{Kind: kind, ID: *slot}, r.id)
	}
	*slot = id
	r.network.parents.link(TemplateRef{Kind: kind, ID: id}, r.id)
	return nil
}

func (r *reactionBase) replace(acc accumulator) {
	r.stoichiometry = acc.finalize()
}

// accumulator sums contributions per species.
type accumulator map[string]Expr

func (a accumulator) add(id string, e Expr) { a[id] = a[id].Add(e) }

func (a accumulator) addConst(id string, c float64) { a.add(id, symbolic.Const(c)) }

func (a accumulator) finalize() map[string]Expr {
	out := make(map[string]Expr, len(a))
	for k, v := range a {
		if !v.IsZero() {
			out[k] = v
		}
	}
	return out
}

func refs(pairs ...TemplateRef) []TemplateRef {
	out := make([]TemplateRef, 0, len(pairs))
	for _, p := range pairs {
		if p.ID != "" {
			out = append(out, p)
		}
	}
	return out
}

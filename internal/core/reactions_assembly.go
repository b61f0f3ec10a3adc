package core

import (
	"fmt"

	"mecore/pkg/domain"
)

// GenericFormationReaction forms a generic pooled species. Flat generics get
// one reaction per component; weighted generics get a single reaction with an
// empty Component.
type GenericFormationReaction struct {
	reactionBase
	genericID string
	component string
}

// NewGenericFormationReaction registers an empty generic formation reaction on n.
func NewGenericFormationReaction(n *Network, id string) (*GenericFormationReaction, error) {
	base, err := newReactionBase(n, domain.ReactionGenericFormation, id)
	if err != nil {
		return nil, err
	}
	r := &GenericFormationReaction{reactionBase: base}
	if err := n.addReaction(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetGenericData binds the generic template and, for flat generics, the
// component this reaction converts.
func (r *GenericFormationReaction) SetGenericData(id, component string) error {
	if err := r.bind(&r.genericID, EntityGenericData, id); err != nil {
		return err
	}
	r.component = component
	return nil
}

// GenericDataID returns the bound template id.
func (r *GenericFormationReaction) GenericDataID() string { return r.genericID }

// Component returns the converted component of a flat generic.
func (r *GenericFormationReaction) Component() string { return r.component }

func (r *GenericFormationReaction) Templates() []TemplateRef {
	return refs(TemplateRef{Kind: EntityGenericData, ID: r.genericID})
}

// Update rebuilds {generic: +1, component: -1} for flat generics and
// {generic: +1, c: -weight(c)} for weighted ones. A reaction the template no
// longer lists in ReactionIDs is cleared with a warning.
func (r *GenericFormationReaction) Update() error {
	n := r.network
	if r.genericID == "" {
		return fmt.Errorf("generic formation reaction %s: no generic data bound", r.id)
	}
	data, err := n.generics.Get(r.genericID)
	if err != nil {
		return err
	}
	if !data.maintains(r) {
		n.warn(ruleStaleGeneric, EntityReaction, r.id, "no longer maintained by generic %s, stoichiometry cleared", data.id)
		r.replace(accumulator{})
		return nil
	}
	acc := accumulator{}
	n.species.GetOrCreate(data.id, SpeciesGeneric)
	acc.addConst(data.id, 1)
	consumed := data.Weights
	if !data.Weighted() {
		consumed = map[string]float64{r.component: 1}
	}
	if err := n.addCounts(acc, consumed, -1); err != nil {
		return fmt.Errorf("generic formation reaction %s: %w", r.id, err)
	}
	r.replace(acc)
	return nil
}

func (r *GenericFormationReaction) Record() ReactionRecord {
	rec := r.record(r.Templates())
	rec.Component = r.component
	return rec
}

// ComplexFormationReaction assembles a complex from its subunits and
// modifications.
type ComplexFormationReaction struct {
	reactionBase
	complexDataID string
}

// NewComplexFormationReaction registers an empty complex formation reaction on n.
func NewComplexFormationReaction(n *Network, id string) (*ComplexFormationReaction, error) {
	base, err := newReactionBase(n, domain.ReactionComplexFormation, id)
	if err != nil {
		return nil, err
	}
	r := &ComplexFormationReaction{reactionBase: base}
	if err := n.addReaction(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetComplexData binds the complex template.
func (r *ComplexFormationReaction) SetComplexData(id string) error {
	return r.bind(&r.complexDataID, EntityComplexData, id)
}

// ComplexDataID returns the bound template id.
func (r *ComplexFormationReaction) ComplexDataID() string { return r.complexDataID }

func (r *ComplexFormationReaction) Templates() []TemplateRef {
	return refs(TemplateRef{Kind: EntityComplexData, ID: r.complexDataID})
}

// Update rebuilds the stoichiometry. The complex and missing subunits are
// created on demand.
func (r *ComplexFormationReaction) Update() error {
	n := r.network
	if r.complexDataID == "" {
		return fmt.Errorf("complex formation reaction %s: no complex data bound", r.id)
	}
	data, err := n.complexes.Get(r.complexDataID)
	if err != nil {
		return err
	}
	acc := accumulator{}
	complexID := data.ComplexID()
	n.species.GetOrCreate(complexID, SpeciesComplex)
	acc.addConst(complexID, 1)
	for _, id := range sortedKeys(data.Stoichiometry) {
		n.species.GetOrCreate(id, SpeciesTranslatedGene)
		acc.addConst(id, -data.Stoichiometry[id])
	}
	if err := n.addModifications(acc, r.id, data.Modifications); err != nil {
		return fmt.Errorf("complex formation reaction %s: %w", r.id, err)
	}
	r.replace(acc)
	return nil
}

func (r *ComplexFormationReaction) Record() ReactionRecord {
	rec := r.record(r.Templates())
	if cd, err := r.network.complexes.Get(r.complexDataID); err == nil {
		rec.ComplexID = cd.ComplexID()
	}
	return rec
}

// PostTranslationReaction converts an unprocessed protein into its processed
// form, coupling translocation pathways, modifications and subreactions.
type PostTranslationReaction struct {
	reactionBase
	postTranslationID string
}

// NewPostTranslationReaction registers an empty post-translation reaction on n.
func NewPostTranslationReaction(n *Network, id string) (*PostTranslationReaction, error) {
	base, err := newReactionBase(n, domain.ReactionPostTranslation, id)
	if err != nil {
		return nil, err
	}
	r := &PostTranslationReaction{reactionBase: base}
	if err := n.addReaction(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetPostTranslationData binds the post-translation template.
func (r *PostTranslationReaction) SetPostTranslationData(id string) error {
	return r.bind(&r.postTranslationID, EntityPostTranslation, id)
}

// PostTranslationDataID returns the bound template id.
func (r *PostTranslationReaction) PostTranslationDataID() string { return r.postTranslationID }

func (r *PostTranslationReaction) Templates() []TemplateRef {
	return refs(TemplateRef{Kind: EntityPostTranslation, ID: r.postTranslationID})
}

// Update rebuilds the stoichiometry. Length-dependent translocases and energy
// scale with the residue count of the unprocessed protein.
func (r *PostTranslationReaction) Update() error {
	n := r.network
	if r.postTranslationID == "" {
		return fmt.Errorf("post-translation reaction %s: no post-translation data bound", r.id)
	}
	data, err := n.posttranslations.Get(r.postTranslationID)
	if err != nil {
		return err
	}
	length, ok := data.ProteinLength()
	if !ok && len(data.Translocation) > 0 {
		n.warn(ruleProteinLength, EntityPostTranslation, data.id, "no translation produces %s, length-dependent terms use 0", data.UnprocessedProteinID)
	}
	acc := accumulator{}
	n.species.GetOrCreate(data.UnprocessedProteinID, SpeciesTranslatedGene)
	n.species.GetOrCreate(data.ProcessedProteinID, SpeciesTranslatedGene)
	acc.addConst(data.UnprocessedProteinID, -1)
	acc.addConst(data.ProcessedProteinID, 1)

	for _, pathway := range sortedKeys(data.Translocation) {
		multiplier := data.Translocation[pathway]
		tl, err := n.translocations.Get(pathway)
		if err != nil {
			n.warn(ruleMissingTransport, EntityReaction, r.id, "translocation pathway %s not in network", pathway)
			continue
		}
		scale := multiplier
		if tl.LengthDependentEnergy {
			scale *= float64(length)
		}
		if err := n.addCounts(acc, tl.Stoichiometry, scale); err != nil {
			return fmt.Errorf("post-translation reaction %s: pathway %s: %w", r.id, pathway, err)
		}
		for _, enzyme := range sortedKeys(tl.Enzymes) {
			flags := tl.Enzymes[enzyme]
			keff := n.keff(tl.Keff)
			if flags.FixedKeff {
				keff = n.globals.DefaultKeff
			}
			units := multiplier
			if flags.LengthDependent {
				units *= float64(length)
			}
			n.addCatalyst(acc, r.id, enzyme, dilution(keff).Scale(units))
		}
	}

	if err := n.addModifications(acc, r.id, data.Modifications); err != nil {
		return fmt.Errorf("post-translation reaction %s: %w", r.id, err)
	}
	if err := n.addSubreactions(acc, r.id, data.Subreactions); err != nil {
		return fmt.Errorf("post-translation reaction %s: %w", r.id, err)
	}
	r.replace(acc)
	return nil
}

func (r *PostTranslationReaction) Record() ReactionRecord { return r.record(r.Templates()) }

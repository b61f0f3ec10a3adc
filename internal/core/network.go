package core

import (
	"fmt"
)

// Network owns the species registry, every template store and the coupled
// reactions derived from them. It is not safe for concurrent use; Store and
// Service serialize access.
type Network struct {
	globals GlobalInfo
	species *SpeciesRegistry

	stoichiometric   *TemplateStore[*StoichiometricData]
	modifications    *TemplateStore[*ModificationData]
	subreactions     *TemplateStore[*SubreactionData]
	complexes        *TemplateStore[*ComplexData]
	transcriptions   *TemplateStore[*TranscriptionData]
	translations     *TemplateStore[*TranslationData]
	trnas            *TemplateStore[*TRNAData]
	translocations   *TemplateStore[*TranslocationData]
	posttranslations *TemplateStore[*PostTranslationData]
	generics         *TemplateStore[*GenericData]

	reactionOrder []string
	reactions     map[string]Reaction
	parents       *parentIndex

	warnings []Violation
	logger   Logger
}

// NetworkOption customises a Network.
type NetworkOption func(*Network)

// WithNetworkLogger routes recompute warnings to logger.
func WithNetworkLogger(logger Logger) NetworkOption {
	return func(n *Network) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewNetwork constructs an empty network. Zero-valued global parameters take
// their defaults.
func NewNetwork(globals GlobalInfo, opts ...NetworkOption) *Network {
	n := &Network{
		globals:          globals.WithDefaults(),
		species:          newSpeciesRegistry(),
		stoichiometric:   newTemplateStore[*StoichiometricData](EntityStoichiometricData),
		modifications:    newTemplateStore[*ModificationData](EntityModificationData),
		subreactions:     newTemplateStore[*SubreactionData](EntitySubreactionData),
		complexes:        newTemplateStore[*ComplexData](EntityComplexData),
		transcriptions:   newTemplateStore[*TranscriptionData](EntityTranscriptionData),
		translations:     newTemplateStore[*TranslationData](EntityTranslationData),
		trnas:            newTemplateStore[*TRNAData](EntityTRNAData),
		translocations:   newTemplateStore[*TranslocationData](EntityTranslocationData),
		posttranslations: newTemplateStore[*PostTranslationData](EntityPostTranslation),
		generics:         newTemplateStore[*GenericData](EntityGenericData),
		reactions:        make(map[string]Reaction),
		parents:          newParentIndex(),
		logger:           noopLogger{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Globals returns a copy of the network-wide parameters.
func (n *Network) Globals() GlobalInfo { return n.globals.Clone() }

// SetGlobals replaces the network-wide parameters. Dependent reactions are
// not recomputed.
func (n *Network) SetGlobals(g GlobalInfo) { n.globals = g.WithDefaults() }

// Species returns the species registry.
func (n *Network) Species() *SpeciesRegistry { return n.species }

// AddSpecies registers a species.
func (n *Network) AddSpecies(sp Species) error {
	return n.species.Add(&sp)
}

func (n *Network) StoichiometricData() *TemplateStore[*StoichiometricData] { return n.stoichiometric }
func (n *Network) ModificationData() *TemplateStore[*ModificationData]     { return n.modifications }
func (n *Network) SubreactionData() *TemplateStore[*SubreactionData]       { return n.subreactions }
func (n *Network) ComplexData() *TemplateStore[*ComplexData]               { return n.complexes }
func (n *Network) TranscriptionData() *TemplateStore[*TranscriptionData]   { return n.transcriptions }
func (n *Network) TranslationData() *TemplateStore[*TranslationData]       { return n.translations }
func (n *Network) TRNAData() *TemplateStore[*TRNAData]                     { return n.trnas }
func (n *Network) TranslocationData() *TemplateStore[*TranslocationData]   { return n.translocations }
func (n *Network) PostTranslationData() *TemplateStore[*PostTranslationData] {
	return n.posttranslations
}
func (n *Network) GenericData() *TemplateStore[*GenericData] { return n.generics }

// Template resolves a template of any kind.
func (n *Network) Template(kind EntityType, id string) (Template, error) {
	var (
		t   Template
		err error
	)
	switch kind {
	case EntityStoichiometricData:
		t, err = n.stoichiometric.Get(id)
	case EntityModificationData:
		t, err = n.modifications.Get(id)
	case EntitySubreactionData:
		t, err = n.subreactions.Get(id)
	case EntityComplexData:
		t, err = n.complexes.Get(id)
	case EntityTranscriptionData:
		t, err = n.transcriptions.Get(id)
	case EntityTranslationData:
		t, err = n.translations.Get(id)
	case EntityTRNAData:
		t, err = n.trnas.Get(id)
	case EntityTranslocationData:
		t, err = n.translocations.Get(id)
	case EntityPostTranslation:
		t, err = n.posttranslations.Get(id)
	case EntityGenericData:
		t, err = n.generics.Get(id)
	default:
		return nil, fmt.Errorf("unknown template kind %s", kind)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// TemplateIDs lists the ids of one template kind in insertion order.
func (n *Network) TemplateIDs(kind EntityType) []string {
	switch kind {
	case EntityStoichiometricData:
		return n.stoichiometric.IDs()
	case EntityModificationData:
		return n.modifications.IDs()
	case EntitySubreactionData:
		return n.subreactions.IDs()
	case EntityComplexData:
		return n.complexes.IDs()
	case EntityTranscriptionData:
		return n.transcriptions.IDs()
	case EntityTranslationData:
		return n.translations.IDs()
	case EntityTRNAData:
		return n.trnas.IDs()
	case EntityTranslocationData:
		return n.translocations.IDs()
	case EntityPostTranslation:
		return n.posttranslations.IDs()
	case EntityGenericData:
		return n.generics.IDs()
	}
	return nil
}

// Reaction returns the reaction registered under id.
func (n *Network) Reaction(id string) (Reaction, error) {
	r, ok := n.reactions[id]
	if !ok {
		return nil, ErrNotFound{Entity: EntityReaction, ID: id}
	}
	return r, nil
}

// HasReaction reports whether id is registered.
func (n *Network) HasReaction(id string) bool {
	_, ok := n.reactions[id]
	return ok
}

// Reactions returns every reaction in insertion order.
func (n *Network) Reactions() []Reaction {
	out := make([]Reaction, 0, len(n.reactionOrder))
	for _, id := range n.reactionOrder {
		out = append(out, n.reactions[id])
	}
	return out
}

func (n *Network) addReaction(r Reaction) error {
	id := r.ID()
	if id == "" {
		return fmt.Errorf("reaction id required")
	}
	if _, exists := n.reactions[id]; exists {
		return ErrDuplicate{Entity: EntityReaction, ID: id}
	}
	n.reactions[id] = r
	n.reactionOrder = append(n.reactionOrder, id)
	return nil
}

// RemoveReaction drops a reaction and its parent links. Templates stay valid.
func (n *Network) RemoveReaction(id string) error {
	r, err := n.Reaction(id)
	if err != nil {
		return err
	}
	for _, ref := range r.Templates() {
		n.parents.unlink(ref, id)
	}
	delete(n.reactions, id)
	for i, rid := range n.reactionOrder {
		if rid == id {
			n.reactionOrder = append(n.reactionOrder[:i:i], n.reactionOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ParentReactions lists the reactions that consume the referenced template.
func (n *Network) ParentReactions(kind EntityType, id string) []string {
	return n.parents.reactions(TemplateRef{Kind: kind, ID: id})
}

// RecomputeAll rebuilds every reaction in insertion order and stops at the
// first failure.
func (n *Network) RecomputeAll() error {
	for _, id := range n.reactionOrder {
		if err := n.reactions[id].Update(); err != nil {
			return fmt.Errorf("update reaction %s: %w", id, err)
		}
	}
	return nil
}

func (n *Network) warn(rule string, entity EntityType, id string, format string, args ...any) {
	v := Violation{
		Rule:     rule,
		Severity: SeverityWarn,
		Message:  fmt.Sprintf(format, args...),
		Entity:   entity,
		EntityID: id,
	}
	n.warnings = append(n.warnings, v)
	n.logger.Warn(v.Message, "rule", rule, "entity", string(entity), "id", id)
}

// Warnings returns the recoverable conditions raised since the last drain.
func (n *Network) Warnings() []Violation {
	return append([]Violation(nil), n.warnings...)
}

// DrainWarnings returns and clears the collected warnings.
func (n *Network) DrainWarnings() []Violation {
	out := n.warnings
	n.warnings = nil
	return out
}

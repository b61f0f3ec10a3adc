package core

import (
	"fmt"

	"mecore/pkg/domain"
)

// Snapshot captures species, templates, reactions and global parameters.
func (n *Network) Snapshot() domain.NetworkSnapshot {
	snap := domain.NetworkSnapshot{Globals: n.globals.Clone()}
	for _, sp := range n.species.List() {
		snap.Species = append(snap.Species, *sp)
	}
	snap.Stoichiometric = entries(n.stoichiometric, func(t *StoichiometricData) domain.Stoichiometric { return t.Stoichiometric.Clone() })
	snap.Modifications = entries(n.modifications, func(t *ModificationData) domain.Modification { return t.Modification.Clone() })
	snap.Subreactions = entries(n.subreactions, func(t *SubreactionData) domain.Subreaction { return t.Subreaction.Clone() })
	snap.Complexes = entries(n.complexes, func(t *ComplexData) domain.ComplexFormation { return t.ComplexFormation.Clone() })
	snap.Transcriptions = entries(n.transcriptions, func(t *TranscriptionData) domain.Transcription { return t.Transcription.Clone() })
	snap.Translations = entries(n.translations, func(t *TranslationData) domain.Translation { return t.Translation.Clone() })
	snap.TRNAs = entries(n.trnas, func(t *TRNAData) domain.TRNACharging { return t.TRNACharging.Clone() })
	snap.Translocations = entries(n.translocations, func(t *TranslocationData) domain.Translocation { return t.Translocation.Clone() })
	snap.PostTranslations = entries(n.posttranslations, func(t *PostTranslationData) domain.PostTranslation { return t.PostTranslation.Clone() })
	snap.Generics = entries(n.generics, func(t *GenericData) domain.Generic { return t.Generic.Clone() })
	for _, r := range n.Reactions() {
		snap.Reactions = append(snap.Reactions, r.Record())
	}
	return snap
}

func entries[T Template, D any](store *TemplateStore[T], data func(T) D) []domain.Entry[D] {
	out := make([]domain.Entry[D], 0, store.Len())
	for _, t := range store.List() {
		out = append(out, domain.Entry[D]{ID: t.ID(), Data: data(t)})
	}
	return out
}

// NetworkFromSnapshot rebuilds a network. Reaction stoichiometry and bounds are
// restored as recorded; nothing is recomputed.
func NetworkFromSnapshot(snap domain.NetworkSnapshot, opts ...NetworkOption) (*Network, error) {
	n := NewNetwork(snap.Globals, opts...)
	for _, sp := range snap.Species {
		if err := n.AddSpecies(sp); err != nil {
			return nil, err
		}
	}
	steps := []func() error{
		func() error { return restoreTemplates(n, snap.Stoichiometric, NewStoichiometricData) },
		func() error { return restoreTemplates(n, snap.Modifications, NewModificationData) },
		func() error { return restoreTemplates(n, snap.Subreactions, NewSubreactionData) },
		func() error { return restoreTemplates(n, snap.Complexes, NewComplexData) },
		func() error { return restoreTemplates(n, snap.Transcriptions, NewTranscriptionData) },
		func() error { return restoreTemplates(n, snap.Translations, NewTranslationData) },
		func() error { return restoreTemplates(n, snap.TRNAs, NewTRNAData) },
		func() error { return restoreTemplates(n, snap.Translocations, NewTranslocationData) },
		func() error { return restoreTemplates(n, snap.PostTranslations, NewPostTranslationData) },
		func() error { return restoreTemplates(n, snap.Generics, NewGenericData) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	for _, rec := range snap.Reactions {
		if err := n.restoreReaction(rec); err != nil {
			return nil, fmt.Errorf("restore reaction %s: %w", rec.ID, err)
		}
	}
	// Constructor warnings were raised when the templates were first built.
	n.warnings = nil
	return n, nil
}

func restoreTemplates[D, T any](n *Network, items []domain.Entry[D], add func(*Network, string, D) (T, error)) error {
	for _, item := range items {
		if _, err := add(n, item.ID, item.Data); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy of the network sharing only the logger.
// Pending warnings are not copied.
func (n *Network) Clone() (*Network, error) {
	return NetworkFromSnapshot(n.Snapshot(), WithNetworkLogger(n.logger))
}

func (n *Network) restoreReaction(rec ReactionRecord) error {
	bindAll := func(bind func(TemplateRef) error) error {
		for _, ref := range rec.Templates {
			if err := bind(ref); err != nil {
				return err
			}
		}
		return nil
	}
	unexpected := func(ref TemplateRef) error {
		return fmt.Errorf("%s reaction cannot consume %s", rec.Kind, ref.Kind)
	}
	var (
		base *reactionBase
		err  error
	)
	switch rec.Kind {
	case domain.ReactionMetabolic:
		r, cerr := NewMetabolicReaction(n, rec.ID)
		if cerr != nil {
			return cerr
		}
		r.Keff, r.Reverse, base = rec.Keff, rec.Reverse, &r.reactionBase
		err = bindAll(func(ref TemplateRef) error {
			switch ref.Kind {
			case EntityStoichiometricData:
				return r.SetStoichiometricData(ref.ID)
			case EntityComplexData:
				return r.SetComplexData(ref.ID)
			}
			return unexpected(ref)
		})
	case domain.ReactionTranscription:
		r, cerr := NewTranscriptionReaction(n, rec.ID)
		if cerr != nil {
			return cerr
		}
		base = &r.reactionBase
		err = bindAll(func(ref TemplateRef) error { return r.SetTranscriptionData(ref.ID) })
	case domain.ReactionTranslation:
		r, cerr := NewTranslationReaction(n, rec.ID)
		if cerr != nil {
			return cerr
		}
		base = &r.reactionBase
		err = bindAll(func(ref TemplateRef) error { return r.SetTranslationData(ref.ID) })
	case domain.ReactionTRNACharging:
		r, cerr := NewTRNAChargingReaction(n, rec.ID)
		if cerr != nil {
			return cerr
		}
		base = &r.reactionBase
		err = bindAll(func(ref TemplateRef) error { return r.SetTRNAData(ref.ID) })
	case domain.ReactionGenericFormation:
		r, cerr := NewGenericFormationReaction(n, rec.ID)
		if cerr != nil {
			return cerr
		}
		base = &r.reactionBase
		err = bindAll(func(ref TemplateRef) error { return r.SetGenericData(ref.ID, rec.Component) })
	case domain.ReactionComplexFormation:
		r, cerr := NewComplexFormationReaction(n, rec.ID)
		if cerr != nil {
			return cerr
		}
		base = &r.reactionBase
		err = bindAll(func(ref TemplateRef) error { return r.SetComplexData(ref.ID) })
	case domain.ReactionPostTranslation:
		r, cerr := NewPostTranslationReaction(n, rec.ID)
		if cerr != nil {
			return cerr
		}
		base = &r.reactionBase
		err = bindAll(func(ref TemplateRef) error { return r.SetPostTranslationData(ref.ID) })
	default:
		return fmt.Errorf("unknown reaction kind %q", rec.Kind)
	}
	if err != nil {
		return err
	}
	base.restore(rec)
	return nil
}

package domain

import (
	"context"

	"mecore/pkg/symbolic"
)

// ReactionKind identifies a coupled reaction variant.
type ReactionKind string

// Coupled reaction variants.
const (
	ReactionMetabolic        ReactionKind = "metabolic"
	ReactionTranscription    ReactionKind = "transcription"
	ReactionTranslation      ReactionKind = "translation"
	ReactionTRNACharging     ReactionKind = "trna_charging"
	ReactionGenericFormation ReactionKind = "generic_formation"
	ReactionComplexFormation ReactionKind = "complex_formation"
	ReactionPostTranslation  ReactionKind = "posttranslation"
)

// Entry pairs a template id with its attribute record.
type Entry[T any] struct {
	ID   string `json:"id"`
	Data T      `json:"data"`
}

// TemplateRef is a typed, id-based reference from a reaction to a template.
type TemplateRef struct {
	Kind EntityType `json:"kind"`
	ID   string     `json:"id"`
}

// ReactionRecord is the persisted form of a coupled reaction.
type ReactionRecord struct {
	ID        string        `json:"id"`
	Kind      ReactionKind  `json:"kind"`
	Templates []TemplateRef `json:"templates,omitempty"`
	// Component is set on flat generic formation reactions.
	Component string `json:"component,omitempty"`
	// ComplexID is the product of a complex formation reaction.
	ComplexID     string                   `json:"complex_id,omitempty"`
	Keff          float64                  `json:"keff,omitempty"`
	Reverse       bool                     `json:"reverse,omitempty"`
	Stoichiometry map[string]symbolic.Expr `json:"stoichiometry"`
	LowerBound    float64                  `json:"lower_bound"`
	UpperBound    float64                  `json:"upper_bound"`
}

// NetworkSnapshot captures a point-in-time copy of a whole network.
type NetworkSnapshot struct {
	Globals          GlobalInfo                `json:"globals"`
	Species          []Species                 `json:"species"`
	Stoichiometric   []Entry[Stoichiometric]   `json:"stoichiometric_data"`
	Modifications    []Entry[Modification]     `json:"modification_data"`
	Subreactions     []Entry[Subreaction]      `json:"subreaction_data"`
	Complexes        []Entry[ComplexFormation] `json:"complex_data"`
	Transcriptions   []Entry[Transcription]    `json:"transcription_data"`
	Translations     []Entry[Translation]      `json:"translation_data"`
	TRNAs            []Entry[TRNACharging]     `json:"trna_data"`
	Translocations   []Entry[Translocation]    `json:"translocation_data"`
	PostTranslations []Entry[PostTranslation]  `json:"posttranslation_data"`
	Generics         []Entry[Generic]          `json:"generic_data"`
	Reactions        []ReactionRecord          `json:"reactions"`
}

// Buckets lists the snapshot sections in persistence order.
var Buckets = []string{
	"globals",
	"species",
	string(EntityStoichiometricData),
	string(EntityModificationData),
	string(EntitySubreactionData),
	string(EntityComplexData),
	string(EntityTranscriptionData),
	string(EntityTranslationData),
	string(EntityTRNAData),
	string(EntityTranslocationData),
	string(EntityPostTranslation),
	string(EntityGenericData),
	"reactions",
}

// BucketTarget returns a pointer to the snapshot field backing bucket, or nil
// for an unknown bucket name. Persistence backends marshal each target into
// its own row.
func (s *NetworkSnapshot) BucketTarget(bucket string) any {
	switch bucket {
	case "globals":
		return &s.Globals
	case "species":
		return &s.Species
	case string(EntityStoichiometricData):
		return &s.Stoichiometric
	case string(EntityModificationData):
		return &s.Modifications
	case string(EntitySubreactionData):
		return &s.Subreactions
	case string(EntityComplexData):
		return &s.Complexes
	case string(EntityTranscriptionData):
		return &s.Transcriptions
	case string(EntityTranslationData):
		return &s.Translations
	case string(EntityTRNAData):
		return &s.TRNAs
	case string(EntityTranslocationData):
		return &s.Translocations
	case string(EntityPostTranslation):
		return &s.PostTranslations
	case string(EntityGenericData):
		return &s.Generics
	case "reactions":
		return &s.Reactions
	default:
		return nil
	}
}

// SnapshotStore is a minimal abstraction over durable snapshot backends.
type SnapshotStore interface {
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot NetworkSnapshot) error
	// Load returns the stored snapshot; ok is false when nothing was saved yet.
	Load(ctx context.Context) (snapshot NetworkSnapshot, ok bool, err error)
}

// Package domain defines the persistent records, value types, and rule
// evaluation primitives shared by the mecore process network.
package domain

// EntityType identifies the kind of record held by a network store.
type EntityType string

// Supported entity type identifiers used in errors, violations and snapshot buckets.
const (
	// EntitySpecies identifies a species held by the registry.
	EntitySpecies EntityType = "species"
	// EntityReaction identifies a coupled reaction.
	EntityReaction EntityType = "reaction"

	EntityStoichiometricData EntityType = "stoichiometric_data"
	EntityModificationData   EntityType = "modification_data"
	EntitySubreactionData    EntityType = "subreaction_data"
	EntityComplexData        EntityType = "complex_data"
	EntityTranscriptionData  EntityType = "transcription_data"
	EntityTranslationData    EntityType = "translation_data"
	EntityTRNAData           EntityType = "trna_data"
	EntityTranslocationData  EntityType = "translocation_data"
	EntityPostTranslation    EntityType = "posttranslation_data"
	EntityGenericData        EntityType = "generic_data"
)

// TemplateKinds lists every template store kind in snapshot order.
var TemplateKinds = []EntityType{
	EntityStoichiometricData,
	EntityModificationData,
	EntitySubreactionData,
	EntityComplexData,
	EntityTranscriptionData,
	EntityTranslationData,
	EntityTRNAData,
	EntityTranslocationData,
	EntityPostTranslation,
	EntityGenericData,
}

// SpeciesKind tags the role a species plays in the network.
type SpeciesKind string

// Canonical species kinds. Generic pooled species are a tag on the same record
// rather than a distinct type.
const (
	SpeciesMetabolite      SpeciesKind = "metabolite"
	SpeciesTranscribedGene SpeciesKind = "transcribed_gene"
	SpeciesTranslatedGene  SpeciesKind = "translated_gene"
	SpeciesComplex         SpeciesKind = "complex"
	SpeciesGeneric         SpeciesKind = "generic"
)

// RNA types recognised on transcribed genes.
const (
	RNATypeMRNA  = "mRNA"
	RNATypeTRNA  = "tRNA"
	RNATypeRRNA  = "rRNA"
	RNATypeNCRNA = "ncRNA"
)

// Species is a named chemical or biological entity addressable by id.
type Species struct {
	ID          string      `json:"id" yaml:"id" validate:"required"`
	Kind        SpeciesKind `json:"kind" yaml:"kind"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Compartment string      `json:"compartment,omitempty" yaml:"compartment,omitempty"`
	// NucleotideSequence and RNAType are only meaningful on transcribed genes.
	NucleotideSequence string `json:"nucleotide_sequence,omitempty" yaml:"nucleotide_sequence,omitempty"`
	RNAType            string `json:"rna_type,omitempty" yaml:"rna_type,omitempty"`
}

// IsGeneric reports whether the species is a pooled stand-in.
func (s Species) IsGeneric() bool { return s.Kind == SpeciesGeneric }

// Severity captures rule and recompute outcomes.
type Severity string

// Severities determine commit behavior and logging.
const (
	// SeverityBlock blocks a service transaction from committing.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation or a recoverable recompute anomaly.
type Violation struct {
	Rule     string     `json:"rule"`
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
	Entity   EntityType `json:"entity,omitempty"`
	EntityID string     `json:"entity_id,omitempty"`
}

// Result aggregates violations.
type Result struct {
	Violations []Violation `json:"violations,omitempty"`
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// Warnings returns only the warn-level violations.
func (r Result) Warnings() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityWarn {
			out = append(out, v)
		}
	}
	return out
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}

package core

import (
	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

type (
	EntityType         = domain.EntityType
	ReactionKind       = domain.ReactionKind
	Severity           = domain.Severity
	Species            = domain.Species
	SpeciesKind        = domain.SpeciesKind
	GlobalInfo         = domain.GlobalInfo
	TemplateRef        = domain.TemplateRef
	ReactionRecord     = domain.ReactionRecord
	Violation          = domain.Violation
	Result             = domain.Result
	Rule               = domain.Rule
	RuleView           = domain.RuleView
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
	Expr               = symbolic.Expr
)

const (
	EntitySpecies            = domain.EntitySpecies
	EntityReaction           = domain.EntityReaction
	EntityStoichiometricData = domain.EntityStoichiometricData
	EntityModificationData   = domain.EntityModificationData
	EntitySubreactionData    = domain.EntitySubreactionData
	EntityComplexData        = domain.EntityComplexData
	EntityTranscriptionData  = domain.EntityTranscriptionData
	EntityTranslationData    = domain.EntityTranslationData
	EntityTRNAData           = domain.EntityTRNAData
	EntityTranslocationData  = domain.EntityTranslocationData
	EntityPostTranslation    = domain.EntityPostTranslation
	EntityGenericData        = domain.EntityGenericData
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	SpeciesMetabolite      = domain.SpeciesMetabolite
	SpeciesTranscribedGene = domain.SpeciesTranscribedGene
	SpeciesTranslatedGene  = domain.SpeciesTranslatedGene
	SpeciesComplex         = domain.SpeciesComplex
	SpeciesGeneric         = domain.SpeciesGeneric
)

// NewRulesEngine constructs an empty rules engine.
func NewRulesEngine() *RulesEngine { return domain.NewRulesEngine() }

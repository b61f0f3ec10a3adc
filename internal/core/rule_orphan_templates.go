package core

import (
	"context"
	"fmt"

	"mecore/pkg/domain"
)

// Template kinds consumed directly by a reaction. Modifications, subreactions
// and translocations are referenced through other templates instead.
var reactionTemplateKinds = []domain.EntityType{
	domain.EntityStoichiometricData,
	domain.EntityComplexData,
	domain.EntityTranscriptionData,
	domain.EntityTranslationData,
	domain.EntityTRNAData,
	domain.EntityPostTranslation,
	domain.EntityGenericData,
}

// NewOrphanTemplateRule logs templates that no reaction consumes.
func NewOrphanTemplateRule() domain.Rule {
	return orphanTemplateRule{}
}

type orphanTemplateRule struct{}

func (orphanTemplateRule) Name() string { return "orphan_template" }

func (r orphanTemplateRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	res := domain.Result{}
	for _, kind := range reactionTemplateKinds {
		for _, id := range view.TemplateIDs(kind) {
			if len(view.ParentReactions(kind, id)) > 0 {
				continue
			}
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityLog,
				Message:  fmt.Sprintf("%s %s is not consumed by any reaction", kind, id),
				Entity:   kind,
				EntityID: id,
			})
		}
	}
	return res, nil
}

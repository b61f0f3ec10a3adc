package core

import (
	"context"
	"fmt"

	"mecore/pkg/domain"
)

// NewReactionIntegrityRule blocks networks whose reactions reference missing
// templates or species.
func NewReactionIntegrityRule() domain.Rule {
	return reactionIntegrityRule{}
}

type reactionIntegrityRule struct{}

func (reactionIntegrityRule) Name() string { return "reaction_integrity" }

func (r reactionIntegrityRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	res := domain.Result{}
	for _, rec := range view.ListReactions() {
		for _, ref := range rec.Templates {
			if !view.HasTemplate(ref.Kind, ref.ID) {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     r.Name(),
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("reaction %s references missing %s %s", rec.ID, ref.Kind, ref.ID),
					Entity:   domain.EntityReaction,
					EntityID: rec.ID,
				})
			}
		}
		for _, id := range sortedKeys(rec.Stoichiometry) {
			if _, ok := view.FindSpecies(id); !ok {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     r.Name(),
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("reaction %s uses unregistered species %s", rec.ID, id),
					Entity:   domain.EntityReaction,
					EntityID: rec.ID,
				})
			}
		}
	}
	return res, nil
}

package core

import (
	"context"
	"fmt"

	"mecore/pkg/domain"
)

// NewComplexModificationRule warns about complex templates naming unknown
// modifications.
func NewComplexModificationRule() domain.Rule {
	return complexModificationRule{}
}

type complexModificationRule struct{}

func (complexModificationRule) Name() string { return "complex_modifications" }

func (r complexModificationRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	res := domain.Result{}
	for _, id := range view.TemplateIDs(domain.EntityComplexData) {
		complexData, ok := view.FindComplex(id)
		if !ok {
			continue
		}
		for _, mod := range sortedKeys(complexData.Modifications) {
			if view.HasTemplate(domain.EntityModificationData, mod) || view.HasTemplate(domain.EntitySubreactionData, mod) {
				continue
			}
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("complex %s references unknown modification %s", id, mod),
				Entity:   domain.EntityComplexData,
				EntityID: id,
			})
		}
	}
	return res, nil
}

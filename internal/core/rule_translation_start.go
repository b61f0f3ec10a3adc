package core

import (
	"context"
	"fmt"

	"mecore/internal/dogma"
	"mecore/pkg/domain"
)

// NewTranslationStartRule warns about coding sequences that do not open with
// a configured start codon.
func NewTranslationStartRule() domain.Rule {
	return translationStartRule{}
}

type translationStartRule struct{}

func (translationStartRule) Name() string { return "translation_start_codon" }

func (r translationStartRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	res := domain.Result{}
	globals := view.Globals()
	for _, id := range view.TemplateIDs(domain.EntityTranslationData) {
		tr, ok := view.FindTranslation(id)
		if !ok || tr.NucleotideSequence == "" {
			continue
		}
		first := dogma.ToRNA(tr.NucleotideSequence[:min(3, len(tr.NucleotideSequence))])
		if globals.IsStartCodon(first) {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%s starts with %q which is not a start codon", tr.MRNA, first),
			Entity:   domain.EntityTranslationData,
			EntityID: id,
		})
	}
	return res, nil
}

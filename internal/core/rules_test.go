package core

import (
	"context"
	"testing"

	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

func evaluate(t *testing.T, rule Rule, n *Network) Result {
	t.Helper()
	res, err := rule.Evaluate(context.Background(), newNetworkView(n))
	if err != nil {
		t.Fatalf("%s: %v", rule.Name(), err)
	}
	return res
}

func TestDefaultRulesEngineRegistersBuiltins(t *testing.T) {
	names := map[string]bool{}
	for _, r := range NewDefaultRulesEngine().Rules() {
		names[r.Name()] = true
	}
	for _, want := range []string{"reaction_integrity", "complex_modifications", "translation_start_codon", "orphan_template"} {
		if !names[want] {
			t.Fatalf("missing rule %s in %v", want, names)
		}
	}
}

func TestReactionIntegrityRuleBlocksUnregisteredSpecies(t *testing.T) {
	snap := domain.NetworkSnapshot{
		Species:        []domain.Species{{ID: "A"}},
		Stoichiometric: []domain.Entry[domain.Stoichiometric]{{ID: "T1", Data: domain.Stoichiometric{Stoichiometry: map[string]float64{"A": -1}}}},
		Reactions: []domain.ReactionRecord{{
			ID:            "r1",
			Kind:          domain.ReactionMetabolic,
			Templates:     []domain.TemplateRef{{Kind: EntityStoichiometricData, ID: "T1"}},
			Stoichiometry: map[string]symbolic.Expr{"A": symbolic.Const(-1), "ghost": symbolic.Const(1)},
		}},
	}
	n, err := NetworkFromSnapshot(snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	res := evaluate(t, NewReactionIntegrityRule(), n)
	if !res.HasBlocking() || len(res.Violations) != 1 || res.Violations[0].EntityID != "r1" {
		t.Fatalf("expected one blocking violation, got %+v", res.Violations)
	}

	clean := newTestNetwork(t)
	buildMetabolicScenario(t, clean)
	if res := evaluate(t, NewReactionIntegrityRule(), clean); len(res.Violations) != 0 {
		t.Fatalf("unexpected violations %+v", res.Violations)
	}
}

func TestComplexModificationRuleWarnsOnUnknownModification(t *testing.T) {
	n := newTestNetwork(t)
	if _, err := NewModificationData(n, "known", domain.Modification{}); err != nil {
		t.Fatalf("modification: %v", err)
	}
	if _, err := NewComplexData(n, "CPLX", domain.ComplexFormation{Modifications: map[string]float64{"known": 1, "unknown": 1}}); err != nil {
		t.Fatalf("complex: %v", err)
	}
	res := evaluate(t, NewComplexModificationRule(), n)
	warnings := res.Warnings()
	if len(warnings) != 1 || warnings[0].EntityID != "CPLX" {
		t.Fatalf("expected one warning, got %+v", res.Violations)
	}
}

func TestTranslationStartRule(t *testing.T) {
	n := newTestNetwork(t)
	if _, err := NewTranslationData(n, "good", domain.Translation{MRNA: "m1", NucleotideSequence: "ATGTAA"}); err != nil {
		t.Fatalf("template: %v", err)
	}
	if _, err := NewTranslationData(n, "bad", domain.Translation{MRNA: "m2", NucleotideSequence: "AAATAA"}); err != nil {
		t.Fatalf("template: %v", err)
	}
	if _, err := NewTranslationData(n, "empty", domain.Translation{MRNA: "m3"}); err != nil {
		t.Fatalf("template: %v", err)
	}
	res := evaluate(t, NewTranslationStartRule(), n)
	if len(res.Violations) != 1 || res.Violations[0].EntityID != "bad" || res.Violations[0].Severity != SeverityWarn {
		t.Fatalf("unexpected violations %+v", res.Violations)
	}
}

func TestOrphanTemplateRuleLogsUnusedTemplates(t *testing.T) {
	n := newTestNetwork(t)
	buildMetabolicScenario(t, n)
	if _, err := NewStoichiometricData(n, "unused", domain.Stoichiometric{}); err != nil {
		t.Fatalf("template: %v", err)
	}
	if _, err := NewModificationData(n, "never_checked", domain.Modification{}); err != nil {
		t.Fatalf("modification: %v", err)
	}
	res := evaluate(t, NewOrphanTemplateRule(), n)
	if len(res.Violations) != 1 || res.Violations[0].EntityID != "unused" || res.Violations[0].Severity != SeverityLog {
		t.Fatalf("unexpected violations %+v", res.Violations)
	}
	if res.HasBlocking() || len(res.Warnings()) != 0 {
		t.Fatalf("orphans are informational only")
	}
}

package core

import (
	"context"
	"errors"
	"testing"

	"mecore/pkg/domain"
)

type forbiddenSpeciesRule struct{ id string }

func (forbiddenSpeciesRule) Name() string { return "forbidden_species" }

func (r forbiddenSpeciesRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	if _, ok := view.FindSpecies(r.id); !ok {
		return domain.Result{}, nil
	}
	return domain.Result{Violations: []domain.Violation{{
		Rule:     r.Name(),
		Severity: SeverityBlock,
		Message:  r.id + " is not allowed",
		Entity:   EntitySpecies,
		EntityID: r.id,
	}}}, nil
}

func TestStoreCommitsSuccessfulTransactions(t *testing.T) {
	store := NewStore(nil, nil)
	res, err := store.RunInTransaction(context.Background(), func(tx *Network) error {
		_, err := NewGenericData(tx, "pool", domain.Generic{})
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if !hasWarning(res.Violations, ruleGenericPrefix) {
		t.Fatalf("warnings raised inside the transaction must be returned, got %+v", res)
	}
	snap := store.Snapshot()
	if len(snap.Generics) != 1 {
		t.Fatalf("transaction not committed")
	}
	err = store.View(context.Background(), func(v NetworkView) error {
		if !v.HasTemplate(EntityGenericData, "pool") {
			return errors.New("missing template")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestStoreRollsBackOnErrorAndBlockingRules(t *testing.T) {
	engine := NewRulesEngine()
	engine.Register(forbiddenSpeciesRule{id: "forbidden"})
	store := NewStore(NewNetwork(GlobalInfo{}), engine)
	ctx := context.Background()

	boom := errors.New("boom")
	if _, err := store.RunInTransaction(ctx, func(tx *Network) error {
		if err := tx.AddSpecies(Species{ID: "partial"}); err != nil {
			return err
		}
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	_, err := store.RunInTransaction(ctx, func(tx *Network) error {
		return tx.AddSpecies(Species{ID: "forbidden"})
	})
	var rve RuleViolationError
	if !errors.As(err, &rve) || !rve.Result.HasBlocking() {
		t.Fatalf("expected rule violation, got %v", err)
	}
	if got := len(store.Snapshot().Species); got != 0 {
		t.Fatalf("failed transactions must not commit, have %d species", got)
	}
	if store.Engine() != engine {
		t.Fatalf("engine accessor mismatch")
	}
}

func TestStoreRestoreAndEvaluate(t *testing.T) {
	src := newTestNetwork(t)
	buildMetabolicScenario(t, src)
	store := NewStore(nil, NewDefaultRulesEngine())
	if err := store.Restore(src.Snapshot()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	res, err := store.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.HasBlocking() {
		t.Fatalf("unexpected blocking violations %+v", res.Violations)
	}
	if err := store.Restore(domain.NetworkSnapshot{Reactions: []domain.ReactionRecord{{ID: "x", Kind: "bad"}}}); err == nil {
		t.Fatalf("expected restore error")
	}
	if len(store.Snapshot().Reactions) != 2 {
		t.Fatalf("failed restore must keep the previous network")
	}
}

func TestNetworkViewCopiesRecords(t *testing.T) {
	n := newTestNetwork(t)
	buildMetabolicScenario(t, n)
	if _, err := NewTranslationData(n, "p", domain.Translation{MRNA: "m", NucleotideSequence: "ATG"}); err != nil {
		t.Fatalf("translation: %v", err)
	}
	view := newNetworkView(n)
	c, ok := view.FindComplex("CPLX1")
	if !ok {
		t.Fatalf("complex not found")
	}
	c.Stoichiometry["p1"] = 99
	stored, _ := n.ComplexData().Get("CPLX1")
	if stored.Stoichiometry["p1"] != 1 {
		t.Fatalf("view leaked a mutable map")
	}
	if tr, ok := view.FindTranslation("p"); !ok || tr.MRNA != "m" {
		t.Fatalf("translation lookup failed")
	}
	if _, ok := view.FindTranslation("ghost"); ok {
		t.Fatalf("unexpected translation")
	}
	if _, ok := view.FindSpecies("A"); !ok || len(view.ListSpecies()) != n.Species().Len() {
		t.Fatalf("species view mismatch")
	}
	if len(view.ListReactions()) != 2 || view.Globals().RibosomeID != "ribosome" {
		t.Fatalf("reaction view mismatch")
	}
}

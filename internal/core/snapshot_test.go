package core

import (
	"testing"

	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

func buildMixedNetwork(t *testing.T) *Network {
	t.Helper()
	n := newTranslationNetwork(t)
	addSpecies(t, n, nucleotides...)
	addSpecies(t, n, "c1", "c2", "trnaK", "RNA_Polymerase", "SecY", "FtsY")
	buildMetabolicScenario(t, n)
	tr := buildTranscription(t, n, "ATGAAATTTTAA", "mrna1")
	if err := tr.Update(); err != nil {
		t.Fatalf("transcription: %v", err)
	}
	_, tl := buildTranslation(t, n, "ATGAAATTTTAA")
	if err := tl.Update(); err != nil {
		t.Fatalf("translation: %v", err)
	}
	charging := buildCharging(t, n, "CPLX1")
	if err := charging.Update(); err != nil {
		t.Fatalf("charging: %v", err)
	}
	g, _ := NewGenericData(n, "generic_x", domain.Generic{Components: []string{"c1", "c2"}})
	if _, err := g.CreateReactions(); err != nil {
		t.Fatalf("generic: %v", err)
	}
	pt := buildPostTranslation(t, n)
	if err := pt.Update(); err != nil {
		t.Fatalf("post-translation: %v", err)
	}
	return n
}

func TestSnapshotRoundTrip(t *testing.T) {
	n := buildMixedNetwork(t)
	snap := n.Snapshot()
	if len(snap.Reactions) != len(n.Reactions()) {
		t.Fatalf("snapshot lost reactions")
	}
	restored, err := NetworkFromSnapshot(snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(restored.Warnings()) != 0 {
		t.Fatalf("restore must not replay construction warnings")
	}
	if got, want := recordJSON(t, restored.Snapshot()), recordJSON(t, snap); got != want {
		t.Fatalf("round trip differs:\n%s\n%s", want, got)
	}
	if err := restored.RecomputeAll(); err != nil {
		t.Fatalf("recompute restored: %v", err)
	}
	if got, want := recordJSON(t, restored.Snapshot().Reactions), recordJSON(t, snap.Reactions); got != want {
		t.Fatalf("recompute after restore differs:\n%s\n%s", want, got)
	}
	if got := restored.ParentReactions(EntityGenericData, "generic_x"); len(got) != 2 {
		t.Fatalf("parent index not rebuilt, got %v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	n := newTestNetwork(t)
	r := buildMetabolicScenario(t, n)
	clone, err := n.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	addSpecies(t, clone, "C")
	data, _ := clone.StoichiometricData().Get("T1")
	data.Stoichiometry["C"] = 1
	if err := data.RecomputeDependents(); err != nil {
		t.Fatalf("recompute clone: %v", err)
	}
	if n.Species().Has("C") {
		t.Fatalf("clone shares the registry")
	}
	mustAbsent(t, r, "C")
	cr, _ := clone.Reaction(r.ID())
	mustExpr(t, cr, "C", symbolic.Const(1))
}

func TestNetworkFromSnapshotRejectsBadRecords(t *testing.T) {
	cases := map[string]domain.NetworkSnapshot{
		"unknown kind": {Reactions: []domain.ReactionRecord{{ID: "r", Kind: "mystery"}}},
		"missing template": {Reactions: []domain.ReactionRecord{{
			ID: "r", Kind: domain.ReactionMetabolic,
			Templates: []domain.TemplateRef{{Kind: EntityStoichiometricData, ID: "ghost"}},
		}}},
		"wrong template kind": {
			Stoichiometric: []domain.Entry[domain.Stoichiometric]{{ID: "T"}},
			Reactions: []domain.ReactionRecord{{
				ID: "r", Kind: domain.ReactionMetabolic,
				Templates: []domain.TemplateRef{{Kind: EntityTranslationData, ID: "T"}},
			}},
		},
		"duplicate species": {Species: []domain.Species{{ID: "a"}, {ID: "a"}}},
	}
	for name, snap := range cases {
		if _, err := NetworkFromSnapshot(snap); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

package core

import (
	"errors"
	"testing"

	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

func TestGenericFlatComponentsGetOneReactionEach(t *testing.T) {
	n := newTestNetwork(t, "c1", "c2")
	g, err := NewGenericData(n, "generic_x", domain.Generic{Components: []string{"c1", "c2"}})
	if err != nil {
		t.Fatalf("generic: %v", err)
	}
	reactions, err := g.CreateReactions()
	if err != nil {
		t.Fatalf("create reactions: %v", err)
	}
	if len(reactions) != 2 || reactions[0].ID() != "c1_to_generic_x" || reactions[1].ID() != "c2_to_generic_x" {
		t.Fatalf("unexpected reactions %v", g.ReactionIDs())
	}
	for i, c := range []string{"c1", "c2"} {
		r := reactions[i]
		if len(r.Stoichiometry()) != 2 {
			t.Fatalf("%s: unexpected stoichiometry %v", r.ID(), r.Stoichiometry())
		}
		mustExpr(t, r, "generic_x", symbolic.Const(1))
		mustExpr(t, r, c, symbolic.Const(-1))
		if r.Component() != c {
			t.Fatalf("component %q", r.Component())
		}
	}
	sp, err := n.Species().Get("generic_x")
	if err != nil || !sp.IsGeneric() {
		t.Fatalf("generic species not created: %v", err)
	}
	if len(n.Warnings()) != 0 {
		t.Fatalf("unexpected warnings %v", n.Warnings())
	}

	again, err := g.CreateReactions()
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if len(again) != 2 || len(n.Reactions()) != 2 {
		t.Fatalf("create reactions must reuse existing reactions, have %d", len(n.Reactions()))
	}
}

func TestGenericEditClearsReactionsItNoLongerLists(t *testing.T) {
	n := newTestNetwork(t, "c1", "c2")
	g, err := NewGenericData(n, "generic_x", domain.Generic{Components: []string{"c1", "c2"}})
	if err != nil {
		t.Fatalf("generic: %v", err)
	}
	if _, err := g.CreateReactions(); err != nil {
		t.Fatalf("create reactions: %v", err)
	}

	g.Components = []string{"c1"}
	if err := g.RecomputeDependents(); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	stale, err := n.Reaction("c2_to_generic_x")
	if err != nil {
		t.Fatalf("reaction: %v", err)
	}
	if len(stale.Stoichiometry()) != 0 {
		t.Fatalf("removed component still consumed: %v", stale.Stoichiometry())
	}
	if !hasWarning(n.DrainWarnings(), ruleStaleGeneric) {
		t.Fatalf("expected %s warning", ruleStaleGeneric)
	}
	kept, err := n.Reaction("c1_to_generic_x")
	if err != nil {
		t.Fatalf("reaction: %v", err)
	}
	mustExpr(t, kept, "c1", symbolic.Const(-1))
	mustExpr(t, kept, "generic_x", symbolic.Const(1))

	g.Components = nil
	g.Weights = map[string]float64{"c1": 0.5, "c2": 2}
	if err := g.RecomputeDependents(); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if _, err := g.CreateReactions(); err != nil {
		t.Fatalf("create weighted reaction: %v", err)
	}
	producers := 0
	for _, r := range n.Reactions() {
		if !r.Coefficient("generic_x").IsZero() {
			producers++
		}
	}
	if producers != 1 {
		t.Fatalf("generic_x produced by %d reactions, want 1", producers)
	}
	formation, err := n.Reaction("formation_generic_x")
	if err != nil {
		t.Fatalf("reaction: %v", err)
	}
	mustExpr(t, formation, "c1", symbolic.Const(-0.5))
	mustExpr(t, formation, "c2", symbolic.Const(-2))
}

func TestGenericWeightedUsesSingleReaction(t *testing.T) {
	n := newTestNetwork(t, "c1", "c2")
	g, err := NewGenericData(n, "pool", domain.Generic{Weights: map[string]float64{"c1": 0.5, "c2": 2}})
	if err != nil {
		t.Fatalf("generic: %v", err)
	}
	if !hasWarning(n.Warnings(), ruleGenericPrefix) {
		t.Fatalf("expected prefix warning")
	}
	reactions, err := g.CreateReactions()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(reactions) != 1 || reactions[0].ID() != "formation_pool" {
		t.Fatalf("unexpected reactions %v", g.ReactionIDs())
	}
	mustExpr(t, reactions[0], "pool", symbolic.Const(1))
	mustExpr(t, reactions[0], "c1", symbolic.Const(-0.5))
	mustExpr(t, reactions[0], "c2", symbolic.Const(-2))
}

func TestGenericFormationReactionIDClash(t *testing.T) {
	n := newTestNetwork(t, "c1", "A")
	if _, err := NewStoichiometricData(n, "T", domain.Stoichiometric{Stoichiometry: map[string]float64{"A": -1}}); err != nil {
		t.Fatalf("template: %v", err)
	}
	if _, err := NewMetabolicReaction(n, "c1_to_generic_y"); err != nil {
		t.Fatalf("reaction: %v", err)
	}
	g, _ := NewGenericData(n, "generic_y", domain.Generic{Components: []string{"c1"}})
	if _, err := g.CreateReactions(); !errors.As(err, new(ErrDuplicate)) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestComplexFormationCreatesSpeciesLazily(t *testing.T) {
	n := newTestNetwork(t, "fe2_c")
	if _, err := NewModificationData(n, "2fe2s", domain.Modification{Stoichiometry: map[string]float64{"fe2_c": -2}}); err != nil {
		t.Fatalf("modification: %v", err)
	}
	c, err := NewComplexData(n, "CPLX_dimer", domain.ComplexFormation{
		Stoichiometry: map[string]float64{"protein_a": 2, "protein_b": 1},
		Modifications: map[string]float64{"2fe2s": 1, "unknown_mod": 1},
	})
	if err != nil {
		t.Fatalf("complex: %v", err)
	}
	r, err := c.CreateComplexFormation()
	if err != nil {
		t.Fatalf("formation: %v", err)
	}
	mustExpr(t, r, "CPLX_dimer", symbolic.Const(1))
	mustExpr(t, r, "protein_a", symbolic.Const(-2))
	mustExpr(t, r, "protein_b", symbolic.Const(-1))
	mustExpr(t, r, "fe2_c", symbolic.Const(-2))
	for id, kind := range map[string]SpeciesKind{"CPLX_dimer": SpeciesComplex, "protein_a": SpeciesTranslatedGene} {
		sp, err := n.Species().Get(id)
		if err != nil || sp.Kind != kind {
			t.Fatalf("species %s: %+v %v", id, sp, err)
		}
	}
	if !hasWarning(n.Warnings(), ruleMissingModification) {
		t.Fatalf("expected missing modification warning")
	}
	if got, ok := c.Formation(); !ok || got != r {
		t.Fatalf("formation lookup failed")
	}
	if _, err := c.CreateComplexFormation(); !errors.As(err, new(ErrDuplicate)) {
		t.Fatalf("expected duplicate formation error, got %v", err)
	}
	mod, _ := n.ModificationData().Get("2fe2s")
	if users := mod.ComplexData(); len(users) != 1 || users[0].ID() != "CPLX_dimer" {
		t.Fatalf("modification users %v", users)
	}
}

func TestComplexAliasRedirectsProduct(t *testing.T) {
	n := newTestNetwork(t)
	c, _ := NewComplexData(n, "CPLX_mod", domain.ComplexFormation{Stoichiometry: map[string]float64{"sub": 1}})
	c.SetComplexID("CPLX")
	r, err := c.CreateComplexFormation()
	if err != nil {
		t.Fatalf("formation: %v", err)
	}
	mustExpr(t, r, "CPLX", symbolic.Const(1))
	mustAbsent(t, r, "CPLX_mod")
	if rec := r.Record(); rec.ComplexID != "CPLX" {
		t.Fatalf("record complex id %q", rec.ComplexID)
	}
	c.SetComplexID("CPLX_mod")
	if c.ComplexID() != "CPLX_mod" || c.ComplexAlias != "" {
		t.Fatalf("setting the template id must clear the alias")
	}
}

func buildPostTranslation(t *testing.T, n *Network) *PostTranslationReaction {
	t.Helper()
	if _, err := NewTranslocationData(n, "sec_translocation", domain.Translocation{
		Keff:                  65,
		Enzymes:               map[string]domain.Translocase{"SecY": {LengthDependent: true}, "FtsY": {FixedKeff: true}},
		LengthDependentEnergy: true,
		Stoichiometry:         map[string]float64{"atp_c": -1, "adp_c": 1},
	}); err != nil {
		t.Fatalf("translocation: %v", err)
	}
	if _, err := NewPostTranslationData(n, "p1_secretion", domain.PostTranslation{
		ProcessedProteinID:   "protein_p1_periplasm",
		UnprocessedProteinID: "protein_p1",
		Translocation:        map[string]float64{"sec_translocation": 1, "tat_translocation": 1},
	}); err != nil {
		t.Fatalf("post-translation: %v", err)
	}
	r, err := NewPostTranslationReaction(n, "translocation_p1")
	if err != nil {
		t.Fatalf("reaction: %v", err)
	}
	if err := r.SetPostTranslationData("p1_secretion"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	return r
}

func TestPostTranslationScalesWithProteinLength(t *testing.T) {
	n := newTranslationNetwork(t)
	addSpecies(t, n, "SecY", "FtsY")
	buildTranslation(t, n, "ATGAAATTTTAA")
	r := buildPostTranslation(t, n)
	if err := r.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	mustExpr(t, r, "protein_p1", symbolic.Const(-1))
	mustExpr(t, r, "protein_p1_periplasm", symbolic.Const(1))
	mustExpr(t, r, "atp_c", symbolic.Const(-3))
	mustExpr(t, r, "adp_c", symbolic.Const(3))
	mustExpr(t, r, "SecY", muOver(65).Scale(-3))
	mustExpr(t, r, "FtsY", muOver(n.Globals().DefaultKeff).Neg())
	if !hasWarning(n.Warnings(), ruleMissingTransport) {
		t.Fatalf("expected missing pathway warning")
	}
	data, _ := n.PostTranslationData().Get("p1_secretion")
	if data.PropensityScaling != 1 {
		t.Fatalf("propensity scaling defaults to 1, got %g", data.PropensityScaling)
	}
	if length, ok := data.ProteinLength(); !ok || length != 3 {
		t.Fatalf("protein length %d %v", length, ok)
	}
}

func TestPostTranslationWithoutTranslationWarns(t *testing.T) {
	n := newTestNetwork(t, "atp_c", "adp_c", "SecY", "FtsY")
	r := buildPostTranslation(t, n)
	if err := r.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !hasWarning(n.Warnings(), ruleProteinLength) {
		t.Fatalf("expected protein length warning")
	}
	mustAbsent(t, r, "SecY")
	mustAbsent(t, r, "atp_c")
}

func TestTRNAStructureWarnsOnAnomalies(t *testing.T) {
	n := newTestNetwork(t)
	head := "GCGGATTTAGCTCAGTT"
	region := "TCAGTCTCTAGAGCATAACCTCGCT"
	tail := "TCCCGGGTTCGAATCCCGTCGGGGACCAA"
	if err := n.AddSpecies(Species{ID: "trnaM", RNAType: domain.RNATypeTRNA, NucleotideSequence: head + "AGGAGA" + region + "ACTC" + tail}); err != nil {
		t.Fatalf("species: %v", err)
	}
	if err := n.AddSpecies(Species{ID: "trnaBad", RNAType: domain.RNATypeTRNA, NucleotideSequence: head + "ACACA" + region + "ACTC" + tail}); err != nil {
		t.Fatalf("species: %v", err)
	}
	good, _ := NewTRNAData(n, "trna_met", domain.TRNACharging{AminoAcid: "met__L_c", RNA: "trnaM", Anticodon: "CAT"})
	s, err := good.Structure()
	if err != nil {
		t.Fatalf("structure: %v", err)
	}
	if s.DLoop17To20 != "AxGGAGA" || len(n.Warnings()) != 0 {
		t.Fatalf("unexpected structure %+v warnings %v", s, n.Warnings())
	}
	bad, _ := NewTRNAData(n, "trna_bad", domain.TRNACharging{AminoAcid: "met__L_c", RNA: "trnaBad", Anticodon: "CAT"})
	if _, err := bad.Structure(); err != nil {
		t.Fatalf("anomalies must not fail: %v", err)
	}
	if !hasWarning(n.Warnings(), ruleTRNAStructure) {
		t.Fatalf("expected structure warning")
	}
	missing, _ := NewTRNAData(n, "trna_missing", domain.TRNACharging{AminoAcid: "met__L_c", RNA: "ghost"})
	if _, err := missing.Structure(); !errors.As(err, new(ErrNotFound)) {
		t.Fatalf("expected not found, got %v", err)
	}
}

package core

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

const tol = 1e-15

var (
	nucleotides   = []string{"atp_c", "utp_c", "gtp_c", "ctp_c", "ppi_c"}
	energySpecies = []string{"h2o_c", "h_c", "pi_c", "gtp_c", "gdp_c", "atp_c", "adp_c"}
)

func newTestNetwork(t *testing.T, species ...string) *Network {
	t.Helper()
	n := NewNetwork(GlobalInfo{})
	addSpecies(t, n, species...)
	return n
}

func addSpecies(t *testing.T, n *Network, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if n.Species().Has(id) {
			continue
		}
		if err := n.AddSpecies(Species{ID: id}); err != nil {
			t.Fatalf("add species %s: %v", id, err)
		}
	}
}

func mustExpr(t *testing.T, r Reaction, id string, want Expr) {
	t.Helper()
	got, ok := r.Stoichiometry()[id]
	if !ok {
		t.Fatalf("%s: no coefficient for %s in %v", r.ID(), id, r.Stoichiometry())
	}
	if !got.Equal(want, tol) {
		t.Fatalf("%s: coefficient of %s = %s, want %s", r.ID(), id, got, want)
	}
}

func mustAbsent(t *testing.T, r Reaction, id string) {
	t.Helper()
	if got, ok := r.Stoichiometry()[id]; ok {
		t.Fatalf("%s: unexpected coefficient %s for %s", r.ID(), got, id)
	}
}

func hasWarning(vs []Violation, rule string) bool {
	for _, v := range vs {
		if v.Rule == rule && v.Severity == SeverityWarn {
			return true
		}
	}
	return false
}

func muOver(k float64) Expr { return symbolic.Mu().Scale(1 / k / 3600) }

func recordJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-12 }

// buildMetabolicScenario wires T1 {A:-1, B:1} to CPLX1 at keff 65.
func buildMetabolicScenario(t *testing.T, n *Network) *MetabolicReaction {
	t.Helper()
	addSpecies(t, n, "A", "B")
	cplx, err := NewComplexData(n, "CPLX1", domain.ComplexFormation{Stoichiometry: map[string]float64{"p1": 1}})
	if err != nil {
		t.Fatalf("complex: %v", err)
	}
	if _, err := cplx.CreateComplexFormation(); err != nil {
		t.Fatalf("complex formation: %v", err)
	}
	if _, err := NewStoichiometricData(n, "T1", domain.Stoichiometric{
		Stoichiometry: map[string]float64{"A": -1, "B": 1},
		UpperBound:    1000,
	}); err != nil {
		t.Fatalf("stoichiometric data: %v", err)
	}
	r, err := NewMetabolicReaction(n, "T1_FWD_CPLX1")
	if err != nil {
		t.Fatalf("metabolic reaction: %v", err)
	}
	r.Keff = 65
	if err := r.SetStoichiometricData("T1"); err != nil {
		t.Fatalf("bind stoichiometry: %v", err)
	}
	if err := r.SetComplexData("CPLX1"); err != nil {
		t.Fatalf("bind complex: %v", err)
	}
	if err := r.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	return r
}

type captureLogger struct {
	mu    sync.Mutex
	warns []string
	errs  []string
}

func (l *captureLogger) Debug(string, ...any) {}
func (l *captureLogger) Info(string, ...any)  {}

func (l *captureLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *captureLogger) Error(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, msg)
}

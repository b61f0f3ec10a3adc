package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

func TestSQLiteStorePersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store, err := NewStore(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty database, got ok=%v err=%v", ok, err)
	}
	snap := domain.NetworkSnapshot{
		Globals: domain.DefaultGlobalInfo(),
		Species: []domain.Species{{ID: "atp_c", Kind: domain.SpeciesMetabolite}},
		Reactions: []domain.ReactionRecord{{
			ID:            "r1",
			Kind:          domain.ReactionMetabolic,
			Stoichiometry: map[string]symbolic.Expr{"atp_c": symbolic.Poly(-1, 0.5)},
			UpperBound:    1000,
		}},
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	snap.Species = append(snap.Species, domain.Species{ID: "adp_c"})
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	got, ok, err := reloaded.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got.Species) != 2 {
		t.Fatalf("expected 2 species after upsert, got %d", len(got.Species))
	}
	if !got.Reactions[0].Stoichiometry["atp_c"].Equal(symbolic.Poly(-1, 0.5), 0) {
		t.Fatalf("unexpected coefficient %s", got.Reactions[0].Stoichiometry["atp_c"])
	}
	var count int
	if err := reloaded.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != len(domain.Buckets) {
		t.Fatalf("expected %d bucket rows, got %d", len(domain.Buckets), count)
	}
	if reloaded.Path() != path {
		t.Fatalf("unexpected path %s", reloaded.Path())
	}
}

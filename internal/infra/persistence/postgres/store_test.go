package postgres

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"mecore/internal/infra/persistence/postgres/testutil"
	"mecore/pkg/domain"
)

func openStub(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	t.Cleanup(restore)
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, conn
}

func TestNewStoreCreatesStateTable(t *testing.T) {
	_, conn := openStub(t)
	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS state") && strings.Contains(stmt, "JSONB") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected state DDL, got execs: %v", conn.Execs)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, conn := openStub(t)
	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty state, ok=%v err=%v", ok, err)
	}
	snap := domain.NetworkSnapshot{
		Globals: domain.DefaultGlobalInfo(),
		Species: []domain.Species{{ID: "gtp_c", Kind: domain.SpeciesMetabolite}},
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if got := len(conn.Tables["state"]); got != len(domain.Buckets) {
		t.Fatalf("expected %d rows, got %d", len(domain.Buckets), got)
	}
	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if len(got.Species) != 1 || got.Species[0].ID != "gtp_c" {
		t.Fatalf("unexpected species %+v", got.Species)
	}
}

func TestNewStorePingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore(context.Background(), "postgres://example"); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestSaveCommitFailureSurfaces(t *testing.T) {
	store, conn := openStub(t)
	conn.FailCommit = true
	if err := store.Save(context.Background(), domain.NetworkSnapshot{}); err == nil || !strings.Contains(err.Error(), "commit") {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestSaveExecFailureSurfaces(t *testing.T) {
	store, conn := openStub(t)
	conn.FailExec = true
	if err := store.Save(context.Background(), domain.NetworkSnapshot{}); err == nil || !strings.Contains(err.Error(), "upsert globals") {
		t.Fatalf("expected upsert error, got %v", err)
	}
}

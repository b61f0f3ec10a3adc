package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mecore/internal/blob"
	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

func sampleSnapshot() domain.NetworkSnapshot {
	return domain.NetworkSnapshot{
		Globals: domain.DefaultGlobalInfo(),
		Species: []domain.Species{{ID: "A"}, {ID: "B"}, {ID: "CPLX1", Kind: domain.SpeciesComplex}},
		Reactions: []domain.ReactionRecord{{
			ID:   "T1_FWD_CPLX1",
			Kind: domain.ReactionMetabolic,
			Stoichiometry: map[string]symbolic.Expr{
				"B":     symbolic.Const(1),
				"A":     symbolic.Const(-1),
				"CPLX1": symbolic.Mu().Scale(-0.5),
			},
			UpperBound: 1000,
		}},
	}
}

func fixedID() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-000000000001") }

func TestExportWritesRun(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	exp := New(store, WithIDGenerator(fixedID), WithClock(func() time.Time { return created }))

	m, err := exp.Export(ctx, sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, fixedID().String(), m.RunID)
	assert.Equal(t, created, m.CreatedAt)
	assert.Equal(t, 3, m.Species)
	assert.Equal(t, 1, m.Reactions)
	require.Len(t, m.Artifacts, 2)
	assert.Equal(t, RunKey(m.RunID, SnapshotFile), m.Artifacts[0].Key)
	assert.Equal(t, m.RunID, m.Artifacts[1].Metadata["run-id"])

	snap, err := ReadSnapshot(ctx, store, m.RunID)
	require.NoError(t, err)
	want, _ := json.Marshal(sampleSnapshot())
	got, _ := json.Marshal(snap)
	assert.JSONEq(t, string(want), string(got))

	_, rc, err := store.Get(ctx, RunKey(m.RunID, ManifestFile))
	require.NoError(t, err)
	defer rc.Close()
	var manifest Manifest
	require.NoError(t, json.NewDecoder(rc).Decode(&manifest))
	assert.Equal(t, m.RunID, manifest.RunID)

	runs, err := Runs(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{m.RunID}, runs)
}

func TestExportUsesFreshRunIDs(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	exp := New(store)
	first, err := exp.Export(ctx, sampleSnapshot())
	require.NoError(t, err)
	second, err := exp.Export(ctx, sampleSnapshot())
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	runs, err := Runs(ctx, store)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestExportFailsOnTakenRun(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	_, err := store.Put(ctx, RunKey(fixedID().String(), StoichiometryFile), strings.NewReader("x"), blob.PutOptions{})
	require.NoError(t, err)
	_, err = New(store, WithIDGenerator(fixedID)).Export(ctx, sampleSnapshot())
	require.Error(t, err)
	assert.True(t, errors.Is(err, blob.ErrExists))
	_, err = store.Head(ctx, RunKey(fixedID().String(), ManifestFile))
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestReadSnapshotRejectsCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	_, err := store.Put(ctx, RunKey("bad", SnapshotFile), bytes.NewReader([]byte("not snappy")), blob.PutOptions{})
	require.NoError(t, err)
	_, err = ReadSnapshot(ctx, store, "bad")
	assert.ErrorContains(t, err, "decompress")
	_, err = ReadSnapshot(ctx, store, "missing")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestWriteStoichiometry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStoichiometry(&buf, sampleSnapshot()))
	want := "reaction\tkind\tspecies\tcoefficient\tlower_bound\tupper_bound\n" +
		"T1_FWD_CPLX1\tmetabolic\tA\t-1\t0\t1000\n" +
		"T1_FWD_CPLX1\tmetabolic\tB\t1\t0\t1000\n" +
		"T1_FWD_CPLX1\tmetabolic\tCPLX1\t-0.5*mu\t0\t1000\n"
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriteStoichiometryPropagatesWriterErrors(t *testing.T) {
	assert.ErrorIs(t, WriteStoichiometry(failingWriter{}, sampleSnapshot()), io.ErrClosedPipe)
}

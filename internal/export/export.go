// Package export writes network snapshots to an artifact store. Every run
// lands under runs/<uuid>/ with a snappy-compressed JSON snapshot, a TSV
// stoichiometry table and a manifest describing both.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mecore/internal/blob"
	"mecore/pkg/domain"
)

// Artifact names written for every run.
const (
	SnapshotFile      = "snapshot.json.sz"
	StoichiometryFile = "stoichiometry.tsv"
	ManifestFile      = "manifest.json"

	runsPrefix = "runs"
)

// Manifest summarizes one export run.
type Manifest struct {
	RunID     string      `json:"run_id"`
	CreatedAt time.Time   `json:"created_at"`
	Species   int         `json:"species"`
	Reactions int         `json:"reactions"`
	Artifacts []blob.Info `json:"artifacts"`
}

// Exporter writes export runs to a blob store.
type Exporter struct {
	store blob.Store
	now   func() time.Time
	newID func() uuid.UUID
}

// Option customises an Exporter.
type Option func(*Exporter)

// WithClock overrides the manifest timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides run id generation.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(e *Exporter) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// New returns an exporter writing to store.
func New(store blob.Store, opts ...Option) *Exporter {
	e := &Exporter{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunKey returns the key of an artifact inside a run.
func RunKey(runID, name string) string { return path.Join(runsPrefix, runID, name) }

// Export writes snap as a new run. The data artifacts are uploaded
// concurrently; the manifest is written last so a run with a manifest is
// complete.
func (e *Exporter) Export(ctx context.Context, snap domain.NetworkSnapshot) (Manifest, error) {
	runID := e.newID().String()
	payload, err := json.Marshal(snap)
	if err != nil {
		return Manifest{}, fmt.Errorf("encode snapshot: %w", err)
	}
	var table bytes.Buffer
	if err := WriteStoichiometry(&table, snap); err != nil {
		return Manifest{}, err
	}
	meta := map[string]string{"run-id": runID}
	uploads := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{SnapshotFile, "application/x-snappy", snappy.Encode(nil, payload)},
		{StoichiometryFile, "text/tab-separated-values", table.Bytes()},
	}

	infos := make([]blob.Info, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			info, err := e.store.Put(gctx, RunKey(runID, up.name), bytes.NewReader(up.data), blob.PutOptions{
				ContentType: up.contentType,
				Metadata:    meta,
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", up.name, err)
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Manifest{}, err
	}

	m := Manifest{
		RunID:     runID,
		CreatedAt: e.now(),
		Species:   len(snap.Species),
		Reactions: len(snap.Reactions),
		Artifacts: infos,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("encode manifest: %w", err)
	}
	if _, err := e.store.Put(ctx, RunKey(runID, ManifestFile), bytes.NewReader(data), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    meta,
	}); err != nil {
		return Manifest{}, fmt.Errorf("upload %s: %w", ManifestFile, err)
	}
	return m, nil
}

// ReadSnapshot loads the snapshot written by a previous run.
func ReadSnapshot(ctx context.Context, store blob.Store, runID string) (domain.NetworkSnapshot, error) {
	_, rc, err := store.Get(ctx, RunKey(runID, SnapshotFile))
	if err != nil {
		return domain.NetworkSnapshot{}, err
	}
	defer rc.Close()
	compressed, err := io.ReadAll(rc)
	if err != nil {
		return domain.NetworkSnapshot{}, err
	}
	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return domain.NetworkSnapshot{}, fmt.Errorf("decompress snapshot: %w", err)
	}
	var snap domain.NetworkSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.NetworkSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Runs lists the run ids present in store, oldest key first.
func Runs(ctx context.Context, store blob.Store) ([]string, error) {
	infos, err := store.List(ctx, runsPrefix+"/")
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, info := range infos {
		rest := strings.TrimPrefix(info.Key, runsPrefix+"/")
		id, name, ok := strings.Cut(rest, "/")
		if ok && name == ManifestFile {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// WriteStoichiometry prints one row per reaction coefficient, reactions in
// snapshot order and species sorted, followed by the reaction bounds.
func WriteStoichiometry(w io.Writer, snap domain.NetworkSnapshot) error {
	var b strings.Builder
	b.WriteString("reaction\tkind\tspecies\tcoefficient\tlower_bound\tupper_bound\n")
	for _, rec := range snap.Reactions {
		ids := make([]string, 0, len(rec.Stoichiometry))
		for id := range rec.Stoichiometry {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		lower := strconv.FormatFloat(rec.LowerBound, 'g', -1, 64)
		upper := strconv.FormatFloat(rec.UpperBound, 'g', -1, 64)
		for _, id := range ids {
			fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.Kind, id, rec.Stoichiometry[id], lower, upper)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

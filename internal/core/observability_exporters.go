package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var expvarSeq uint64

// OperationStats aggregates the outcomes of one service operation.
type OperationStats struct {
	Success    int64   `json:"success"`
	Error      int64   `json:"error"`
	DurationMS float64 `json:"duration_ms_total"`
}

// ExpvarMetricsSnapshot is the value published under the recorder name.
type ExpvarMetricsSnapshot struct {
	Operations map[string]OperationStats `json:"operations"`
	// Warnings counts recoverable violations by rule name.
	Warnings   map[string]int64 `json:"warnings,omitempty"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// ExpvarMetricsRecorder publishes operation outcomes and warning counts via
// expvar.
type ExpvarMetricsRecorder struct {
	name string

	mu         sync.Mutex
	operations map[string]OperationStats
	warnings   map[string]int64
}

// NewExpvarMetricsRecorder publishes a recorder under name, or under a
// generated unique name when name is empty.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("mecore_network_metrics_%d", atomic.AddUint64(&expvarSeq, 1))
	}
	rec := &ExpvarMetricsRecorder{
		name:       name,
		operations: make(map[string]OperationStats),
		warnings:   make(map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any { return rec.Snapshot() }))
	return rec
}

// Name returns the expvar key.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Snapshot copies the current totals.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make(map[string]OperationStats, len(r.operations))
	for op, st := range r.operations {
		ops[op] = st
	}
	var warnings map[string]int64
	if len(r.warnings) > 0 {
		warnings = make(map[string]int64, len(r.warnings))
		for rule, n := range r.warnings {
			warnings[rule] = n
		}
	}
	return ExpvarMetricsSnapshot{Operations: ops, Warnings: warnings, RecordedAt: time.Now().UTC()}
}

// Observe implements MetricsRecorder. Unnamed operations are dropped.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.operations[operation]
	if success {
		st.Success++
	} else {
		st.Error++
	}
	st.DurationMS += float64(duration) / float64(time.Millisecond)
	r.operations[operation] = st
}

// ObserveWarnings implements WarningsRecorder.
func (r *ExpvarMetricsRecorder) ObserveWarnings(_ context.Context, _ string, warnings []Violation) {
	if len(warnings) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range warnings {
		r.warnings[v.Rule]++
	}
}

// JSONTraceEntry is one finished span.
type JSONTraceEntry struct {
	Operation  string    `json:"operation"`
	Trace      uint64    `json:"trace"`
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// JSONTraceTracer writes one JSON line per finished span and keeps every
// entry for Entries.
type JSONTraceTracer struct {
	seq atomic.Uint64
	now func() time.Time

	mu      sync.Mutex
	out     io.Writer
	entries []JSONTraceEntry
}

// NewJSONTracer writes spans to w. A nil writer only keeps them.
func NewJSONTracer(w io.Writer) *JSONTraceTracer {
	return &JSONTraceTracer{out: w, now: func() time.Time { return time.Now().UTC() }}
}

// Entries returns the finished spans in end order.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]JSONTraceEntry(nil), t.entries...)
}

// Start implements Tracer. Trace ids count up from 1 in start order.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonTraceSpan{tracer: t, entry: JSONTraceEntry{
		Operation: operation,
		Trace:     t.seq.Add(1),
		StartedAt: t.now(),
	}}
}

func (t *JSONTraceTracer) finish(entry JSONTraceEntry) {
	line, err := json.Marshal(entry)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if t.out != nil && err == nil {
		_, _ = t.out.Write(append(line, '\n'))
	}
}

type jsonTraceSpan struct {
	tracer *JSONTraceTracer
	entry  JSONTraceEntry
	once   sync.Once
}

func (s *jsonTraceSpan) End(err error) {
	s.once.Do(func() {
		e := s.entry
		e.EndedAt = s.tracer.now()
		e.DurationMS = float64(e.EndedAt.Sub(e.StartedAt)) / float64(time.Millisecond)
		e.Status = "success"
		if err != nil {
			e.Status = "error"
			e.Error = err.Error()
		}
		s.tracer.finish(e)
	})
}

package core

import (
	"context"
	"errors"
	"fmt"

	"mecore/pkg/domain"
)

// SnapshotStore persists whole-network snapshots.
type SnapshotStore = domain.SnapshotStore

// Service exposes transactional, observed operations over a network store.
type Service struct {
	store    *Store
	logger   Logger
	clock    Clock
	audit    AuditRecorder
	metrics  MetricsRecorder
	tracer   Tracer
	snapshot SnapshotStore
}

// NewService constructs a service backed by store.
func NewService(store *Store, opts ...ServiceOption) *Service {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if store == nil {
		store = NewStore(nil, nil)
	}
	return &Service{
		store:    store,
		logger:   o.logger,
		clock:    o.clock,
		audit:    o.audit,
		metrics:  o.metrics,
		tracer:   o.tracer,
		snapshot: o.snapshot,
	}
}

// NewInMemoryService creates an empty network with the given globals and
// rules. The network logs through the service logger.
func NewInMemoryService(globals GlobalInfo, engine *RulesEngine, opts ...ServiceOption) *Service {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	network := NewNetwork(globals, WithNetworkLogger(o.logger))
	return NewService(NewStore(network, engine), opts...)
}

// Store returns the underlying store.
func (s *Service) Store() *Store { return s.store }

// Apply runs fn as one transaction and persists the committed network when a
// snapshot store is configured.
func (s *Service) Apply(ctx context.Context, operation string, fn func(*Network) error) (Result, error) {
	return s.observe(ctx, operation, func(ctx context.Context) (Result, error) {
		res, err := s.store.RunInTransaction(ctx, fn)
		if err != nil {
			return res, err
		}
		if s.snapshot != nil {
			if err := s.snapshot.Save(ctx, s.store.Snapshot()); err != nil {
				return res, fmt.Errorf("persist snapshot: %w", err)
			}
		}
		return res, nil
	})
}

// RecomputeAll rebuilds every reaction.
func (s *Service) RecomputeAll(ctx context.Context) (Result, error) {
	return s.Apply(ctx, "recompute_all", func(n *Network) error {
		return n.RecomputeAll()
	})
}

// RecomputeDependents rebuilds the parent reactions of one template.
func (s *Service) RecomputeDependents(ctx context.Context, kind EntityType, id string) (Result, error) {
	return s.Apply(ctx, "recompute_dependents", func(n *Network) error {
		t, err := n.Template(kind, id)
		if err != nil {
			return err
		}
		return t.RecomputeDependents()
	})
}

// Validate evaluates the rules against the committed network.
func (s *Service) Validate(ctx context.Context) (Result, error) {
	return s.observe(ctx, "validate", func(ctx context.Context) (Result, error) {
		res, err := s.store.Evaluate(ctx)
		if err != nil {
			return Result{}, err
		}
		if res.HasBlocking() {
			return res, RuleViolationError{Result: res}
		}
		return res, nil
	})
}

// Snapshot captures the committed network.
func (s *Service) Snapshot() domain.NetworkSnapshot { return s.store.Snapshot() }

// Save persists the committed network.
func (s *Service) Save(ctx context.Context) error {
	_, err := s.observe(ctx, "save", func(ctx context.Context) (Result, error) {
		if s.snapshot == nil {
			return Result{}, errors.New("no snapshot store configured")
		}
		return Result{}, s.snapshot.Save(ctx, s.store.Snapshot())
	})
	return err
}

// Load replaces the network with the persisted snapshot. It reports false
// when nothing was persisted yet.
func (s *Service) Load(ctx context.Context) (bool, error) {
	var found bool
	_, err := s.observe(ctx, "load", func(ctx context.Context) (Result, error) {
		if s.snapshot == nil {
			return Result{}, errors.New("no snapshot store configured")
		}
		snap, ok, err := s.snapshot.Load(ctx)
		if err != nil || !ok {
			return Result{}, err
		}
		found = true
		return Result{}, s.store.Restore(snap)
	})
	return found, err
}

func (s *Service) observe(ctx context.Context, operation string, fn func(context.Context) (Result, error)) (Result, error) {
	started := s.clock.Now()
	ctx, span := s.tracer.Start(ctx, operation)
	res, err := fn(ctx)
	duration := s.clock.Now().Sub(started)
	span.End(err)
	s.metrics.Observe(ctx, operation, err == nil, duration)
	if wr, ok := s.metrics.(WarningsRecorder); ok {
		wr.ObserveWarnings(ctx, operation, res.Warnings())
	}

	entry := AuditEntry{
		Operation: operation,
		Status:    AuditStatusSuccess,
		Warnings:  len(res.Warnings()),
		Duration:  duration,
		Timestamp: started,
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
		s.logger.Error("operation failed", "operation", operation, "error", err)
	} else {
		s.logger.Debug("operation completed", "operation", operation, "warnings", entry.Warnings, "duration", duration)
	}
	s.audit.Record(ctx, entry)
	return res, err
}

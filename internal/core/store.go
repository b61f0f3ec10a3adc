package core

import (
	"context"
	"sync"

	"mecore/pkg/domain"
)

// Store serializes access to a network. Edits run against a copy that is
// committed only when no rule reports a blocking violation.
type Store struct {
	mu      sync.RWMutex
	network *Network
	engine  *RulesEngine
}

// NewStore wraps network. A nil network starts empty with default globals; a
// nil engine evaluates no rules.
func NewStore(network *Network, engine *RulesEngine) *Store {
	if network == nil {
		network = NewNetwork(GlobalInfo{})
	}
	if engine == nil {
		engine = NewRulesEngine()
	}
	return &Store{network: network, engine: engine}
}

// RunInTransaction applies fn to a copy of the network. Warnings raised while
// fn runs are returned with the rule results.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx *Network) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.network.Clone()
	if err != nil {
		return Result{}, err
	}
	if err := fn(tx); err != nil {
		return Result{Violations: tx.DrainWarnings()}, err
	}
	result := Result{Violations: tx.DrainWarnings()}
	res, err := s.engine.Evaluate(ctx, newNetworkView(tx))
	if err != nil {
		return result, err
	}
	result.Merge(res)
	if res.HasBlocking() {
		return result, RuleViolationError{Result: result}
	}
	s.network = tx
	return result, nil
}

// View executes fn against the current network without copying it.
func (s *Store) View(_ context.Context, fn func(NetworkView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(newNetworkView(s.network))
}

// Evaluate runs the rules against the current network.
func (s *Store) Evaluate(ctx context.Context) (Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Evaluate(ctx, newNetworkView(s.network))
}

// Snapshot captures the current network.
func (s *Store) Snapshot() domain.NetworkSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network.Snapshot()
}

// Restore replaces the network with one rebuilt from snap.
func (s *Store) Restore(snap domain.NetworkSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := NetworkFromSnapshot(snap, WithNetworkLogger(s.network.logger))
	if err != nil {
		return err
	}
	s.network = n
	return nil
}

// Engine returns the rules engine.
func (s *Store) Engine() *RulesEngine { return s.engine }

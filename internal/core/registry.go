package core

import "fmt"

// SpeciesRegistry holds every species of a network keyed by id. Iteration
// follows insertion order.
type SpeciesRegistry struct {
	order []string
	items map[string]*Species
}

func newSpeciesRegistry() *SpeciesRegistry {
	return &SpeciesRegistry{items: make(map[string]*Species)}
}

// Get returns the species registered under id.
func (r *SpeciesRegistry) Get(id string) (*Species, error) {
	sp, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound{Entity: EntitySpecies, ID: id}
	}
	return sp, nil
}

// Has reports whether id is registered.
func (r *SpeciesRegistry) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

// Add registers sp. Ids must be non-empty and unique.
func (r *SpeciesRegistry) Add(sp *Species) error {
	if sp == nil || sp.ID == "" {
		return fmt.Errorf("species id required")
	}
	if _, exists := r.items[sp.ID]; exists {
		return ErrDuplicate{Entity: EntitySpecies, ID: sp.ID}
	}
	if sp.Kind == "" {
		sp.Kind = SpeciesMetabolite
	}
	r.items[sp.ID] = sp
	r.order = append(r.order, sp.ID)
	return nil
}

// GetOrCreate returns the species under id, registering a new one of the given
// kind when absent. The boolean reports whether a species was created.
func (r *SpeciesRegistry) GetOrCreate(id string, kind SpeciesKind) (*Species, bool) {
	if sp, ok := r.items[id]; ok {
		return sp, false
	}
	sp := &Species{ID: id, Kind: kind}
	r.items[id] = sp
	r.order = append(r.order, id)
	return sp, true
}

// List returns the species in insertion order.
func (r *SpeciesRegistry) List() []*Species {
	out := make([]*Species, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Len reports the number of registered species.
func (r *SpeciesRegistry) Len() int { return len(r.order) }

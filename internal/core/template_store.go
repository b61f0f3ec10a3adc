package core

// TemplateStore is an insertion-ordered collection of one template kind.
type TemplateStore[T Template] struct {
	kind  EntityType
	order []string
	items map[string]T
}

func newTemplateStore[T Template](kind EntityType) *TemplateStore[T] {
	return &TemplateStore[T]{kind: kind, items: make(map[string]T)}
}

// Kind reports the template kind held by the store.
func (s *TemplateStore[T]) Kind() EntityType { return s.kind }

// Add registers t, rejecting duplicate ids.
func (s *TemplateStore[T]) Add(t T) error {
	id := t.ID()
	if _, exists := s.items[id]; exists {
		return ErrDuplicate{Entity: s.kind, ID: id}
	}
	s.items[id] = t
	s.order = append(s.order, id)
	return nil
}

// Get returns the template registered under id.
func (s *TemplateStore[T]) Get(id string) (T, error) {
	t, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound{Entity: s.kind, ID: id}
	}
	return t, nil
}

// Has reports whether id is registered.
func (s *TemplateStore[T]) Has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// List returns the templates in insertion order.
func (s *TemplateStore[T]) List() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// IDs returns the template ids in insertion order.
func (s *TemplateStore[T]) IDs() []string {
	return append([]string(nil), s.order...)
}

// Len reports the number of templates.
func (s *TemplateStore[T]) Len() int { return len(s.order) }

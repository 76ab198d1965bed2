package services

import (
	"fmt"
	"iter"
	"slices"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// AnnotationStore is an insertion-ordered collection of annotations.
// It is not safe for concurrent use; EditorService serialises access.
type AnnotationStore struct {
	items []domain.Annotation
	index map[string]int
}

// NewAnnotationStore creates an empty store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{index: make(map[string]int)}
}

// Append adds an annotation at the end.
func (s *AnnotationStore) Append(a domain.Annotation) error {
	if a.ID == "" {
		return fmt.Errorf("%w: annotation id is empty", domain.ErrInvalidInput)
	}
	if _, exists := s.index[a.ID]; exists {
		return fmt.Errorf("%w: duplicate annotation id %s", domain.ErrInvalidInput, a.ID)
	}
	s.index[a.ID] = len(s.items)
	s.items = append(s.items, a)
	return nil
}

// Update applies a patch in place and returns the updated annotation.
func (s *AnnotationStore) Update(id string, patch domain.AnnotationPatch) (domain.Annotation, error) {
	i, ok := s.index[id]
	if !ok {
		return domain.Annotation{}, fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	s.items[i] = patch.Apply(s.items[i])
	return s.items[i], nil
}

// Remove deletes an annotation, keeping the order of the rest.
func (s *AnnotationStore) Remove(id string) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	return nil
}

// Get returns an annotation by ID.
func (s *AnnotationStore) Get(id string) (domain.Annotation, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Annotation{}, false
	}
	return s.items[i], true
}

// All returns a copy of every annotation in insertion order.
func (s *AnnotationStore) All() []domain.Annotation {
	return slices.Clone(s.items)
}

// ByPage yields the annotations of one page in insertion order.
// The sequence is lazy and may be ranged over any number of times.
func (s *AnnotationStore) ByPage(page int) iter.Seq[domain.Annotation] {
	return func(yield func(domain.Annotation) bool) {
		for _, a := range s.items {
			if a.PageIndex != page {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Len returns the number of annotations.
func (s *AnnotationStore) Len() int {
	return len(s.items)
}

// Clear removes every annotation.
func (s *AnnotationStore) Clear() {
	s.items = nil
	clear(s.index)
}

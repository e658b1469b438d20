package cart

import (
	"context"
	"slices"

	"go.uber.org/multierr"
)

type remover interface {
	Remove(ctx context.Context, id int64) error
}

// Selection tracks the cart ids marked for a bulk action while the cart view
// is in edit mode. The zero value is an empty, inactive selection.
type Selection struct {
	ids    []int64
	active bool
}

// Enter switches the cart view into edit mode.
func (s *Selection) Enter() {
	s.active = true
}

// Exit leaves edit mode and drops the selection.
func (s *Selection) Exit() {
	s.active = false
	s.Clear()
}

func (s *Selection) Active() bool {
	return s.active
}

// Toggle adds id when absent and removes it when present.
func (s *Selection) Toggle(id int64) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// SelectAll replaces the selection with ids.
func (s *Selection) SelectAll(ids []int64) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		if !slices.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
}

func (s *Selection) Clear() {
	s.ids = nil
}

func (s *Selection) Contains(id int64) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []int64 {
	return slices.Clone(s.ids)
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// DeleteSelected removes every selected id from store exactly once, then
// clears the selection. Removal walks a snapshot so the store may shrink
// underneath. Persistence errors are combined and returned after clearing.
func (s *Selection) DeleteSelected(ctx context.Context, store remover) error {
	snapshot := s.IDs()
	var errs error
	for _, id := range snapshot {
		errs = multierr.Append(errs, store.Remove(ctx, id))
	}
	s.Clear()
	return errs
}

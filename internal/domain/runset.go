package domain

import "slices"

// RunSet is a set of run identifiers.
type RunSet map[string]struct{}

func NewRunSet(ids ...string) RunSet {
	s := make(RunSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s RunSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Intersects reports whether any of ids is in the set.
func (s RunSet) Intersects(ids []string) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Equal reports whether the set holds exactly the given ids.
func (s RunSet) Equal(ids []string) bool {
	other := NewRunSet(ids...)
	if len(other) != len(s) {
		return false
	}
	for id := range other {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order.
func (s RunSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

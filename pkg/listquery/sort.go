package listquery

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is a sort direction, ASC or DESC.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

var directions = []string{string(Ascending), string(Descending)}

// ParseDirection parses s case-insensitively. Empty input yields Ascending.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Ascending, nil
	}
	d := Direction(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Validate reports whether d is exactly ASC or DESC.
func (d Direction) Validate() error {
	if d != Ascending && d != Descending {
		return Invalid("sort", string(d), directions...)
	}
	return nil
}

// Comparator orders two records, returning a negative, zero, or positive int.
type Comparator[T any] func(a, b T) int

// By builds a Comparator from a field accessor using the key's natural ordering.
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Sorter holds the named sort fields a record type supports.
type Sorter[T any] struct {
	defaultField string
	fields       map[string]Comparator[T]
	names        []string
}

// NewSorter creates a Sorter whose default field is registered with compare.
func NewSorter[T any](defaultField string, compare Comparator[T]) *Sorter[T] {
	s := &Sorter[T]{
		defaultField: defaultField,
		fields:       make(map[string]Comparator[T]),
	}
	return s.Field(defaultField, compare)
}

// Field registers an additional sort field.
func (s *Sorter[T]) Field(name string, compare Comparator[T]) *Sorter[T] {
	if _, ok := s.fields[name]; !ok {
		s.names = append(s.names, name)
	}
	s.fields[name] = compare
	return s
}

// Default returns the field used when none is requested.
func (s *Sorter[T]) Default() string {
	return s.defaultField
}

// Fields returns the registered field names in registration order.
func (s *Sorter[T]) Fields() []string {
	return slices.Clone(s.names)
}

// Resolve returns the comparator for field. Empty field resolves to the default.
func (s *Sorter[T]) Resolve(field string) (Comparator[T], error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		field = s.defaultField
	}
	compare, ok := s.fields[field]
	if !ok {
		return nil, Invalid("sort_by", field, s.names...)
	}
	return compare, nil
}

// Sort orders items in place. Ascending order is stable with ties kept in
// their original order; Descending is the exact reverse of that order.
func (s *Sorter[T]) Sort(items []T, field string, dir Direction) error {
	if err := dir.Validate(); err != nil {
		return err
	}
	compare, err := s.Resolve(field)
	if err != nil {
		return err
	}
	sortStable(items, compare, dir)
	return nil
}

func sortStable[T any](items []T, compare Comparator[T], dir Direction) {
	slices.SortStableFunc(items, compare)
	if dir == Descending {
		slices.Reverse(items)
	}
}

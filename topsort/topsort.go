// Package topsort orders named items after their declared dependencies.
package topsort

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/colorhl"
)

type mark int

const (
	unvisited mark = iota
	visiting
	visited
)

// Sort returns the keys of items ordered so that every key comes after all
// of its dependencies. Keys are visited in ascending order and dependencies
// in declared order, so the result is deterministic. A dependency that is
// not itself a key of items is emitted as a leaf.
//
// A dependency cycle yields an error wrapping colorhl.ErrCyclicDependency.
func Sort[K cmp.Ordered](items map[K][]K) ([]K, error) {
	marks := make(map[K]mark, len(items))
	order := make([]K, 0, len(items))

	var visit func(k K) error
	visit = func(k K) error {
		switch marks[k] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("%w: %v", colorhl.ErrCyclicDependency, k)
		}
		marks[k] = visiting
		for _, dep := range items[k] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		marks[k] = visited
		order = append(order, k)
		return nil
	}

	for _, k := range slices.Sorted(maps.Keys(items)) {
		if err := visit(k); err != nil {
			return nil, err
		}
	}
	return order, nil
}

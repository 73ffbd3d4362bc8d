// Package highlight keeps rendered color regions in sync with a desired
// set using the fewest highlight and unhighlight calls.
package highlight

import (
	"maps"
	"slices"

	"github.com/fwojciec/colorhl"
)

type entry struct {
	color         colorhl.Color
	pendingDelete bool
}

// Cache remembers which regions a Highlighter currently renders.
//
// A Cache is owned by a single trigger and is not safe for concurrent use.
type Cache struct {
	hl      colorhl.Highlighter
	entries map[colorhl.Span]entry
}

// NewCache returns an empty cache rendering through hl.
func NewCache(hl colorhl.Highlighter) *Cache {
	return &Cache{
		hl:      hl,
		entries: make(map[colorhl.Span]entry),
	}
}

// Reconcile makes the rendered regions equal desired.
//
// Unchanged regions are left alone. Within the pass every unhighlight
// precedes every highlight, and Done is called exactly once at the end.
func (c *Cache) Reconcile(desired []colorhl.Region) {
	c.reconcile(desired, func(colorhl.Span) bool { return true })
}

// ReconcileWithin is like Reconcile, but only regions intersecting bounds
// may be removed. Regions elsewhere stay rendered even when absent from
// desired.
func (c *Cache) ReconcileWithin(desired []colorhl.Region, bounds []colorhl.Span) {
	c.reconcile(desired, func(s colorhl.Span) bool {
		return colorhl.IntersectsAny(s, bounds)
	})
}

func (c *Cache) reconcile(desired []colorhl.Region, invalidate func(colorhl.Span) bool) {
	for span, e := range c.entries {
		if invalidate(span) {
			e.pendingDelete = true
			c.entries[span] = e
		}
	}

	var changed, added []colorhl.Region
	queued := make(map[colorhl.Span]int) // span -> index in added
	for _, r := range desired {
		if i, ok := queued[r.Span]; ok {
			// Not rendered yet: the later color replaces the queued one.
			added[i].Color = r.Color
			c.entries[r.Span] = entry{color: r.Color}
			continue
		}
		if e, ok := c.entries[r.Span]; ok {
			if e.color == r.Color {
				e.pendingDelete = false
				c.entries[r.Span] = e
				continue
			}
			changed = append(changed, colorhl.Region{Span: r.Span, Color: e.color})
		}
		c.entries[r.Span] = entry{color: r.Color}
		queued[r.Span] = len(added)
		added = append(added, r)
	}

	var removed []colorhl.Region
	for _, span := range slices.SortedFunc(maps.Keys(c.entries), colorhl.Compare) {
		if e := c.entries[span]; e.pendingDelete {
			removed = append(removed, colorhl.Region{Span: span, Color: e.color})
			delete(c.entries, span)
		}
	}

	b := c.hl.NewBatch()
	for _, r := range changed {
		b.Unhighlight(r)
	}
	for _, r := range removed {
		b.Unhighlight(r)
	}
	for _, r := range added {
		b.Highlight(r)
	}
	b.Done()
}

// Clear unhighlights every region and empties the cache.
func (c *Cache) Clear() {
	b := c.hl.NewBatch()
	for _, r := range c.Regions() {
		b.Unhighlight(r)
	}
	clear(c.entries)
	b.Done()
}

// Regions returns the rendered regions ordered by span.
func (c *Cache) Regions() []colorhl.Region {
	out := make([]colorhl.Region, 0, len(c.entries))
	for _, span := range slices.SortedFunc(maps.Keys(c.entries), colorhl.Compare) {
		out = append(out, colorhl.Region{Span: span, Color: c.entries[span].color})
	}
	return out
}

// Len returns the number of rendered regions.
func (c *Cache) Len() int {
	return len(c.entries)
}

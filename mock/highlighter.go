// Package mock provides test doubles for colorhl interfaces.
package mock

import "github.com/fwojciec/colorhl"

// Compile-time interface verification.
var (
	_ colorhl.Highlighter = (*Highlighter)(nil)
	_ colorhl.Batch       = (*Batch)(nil)
	_ colorhl.Clipboard   = (*Clipboard)(nil)
)

// Highlighter is a mock implementation of colorhl.Highlighter.
type Highlighter struct {
	NewBatchFn func() colorhl.Batch
}

func (h *Highlighter) NewBatch() colorhl.Batch {
	return h.NewBatchFn()
}

// Batch is a mock implementation of colorhl.Batch.
type Batch struct {
	HighlightFn   func(r colorhl.Region)
	UnhighlightFn func(r colorhl.Region)
	DoneFn        func()
}

func (b *Batch) Highlight(r colorhl.Region) {
	b.HighlightFn(r)
}

func (b *Batch) Unhighlight(r colorhl.Region) {
	b.UnhighlightFn(r)
}

func (b *Batch) Done() {
	b.DoneFn()
}

// Clipboard is a mock implementation of colorhl.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

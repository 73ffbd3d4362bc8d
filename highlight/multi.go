package highlight

import "github.com/fwojciec/colorhl"

var _ colorhl.Highlighter = Multi(nil)

// Multi renders through several highlighters. Each pass opens one batch per
// highlighter, so strategies never share per-pass state.
type Multi []colorhl.Highlighter

// NewBatch implements colorhl.Highlighter.
func (m Multi) NewBatch() colorhl.Batch {
	batches := make(multiBatch, len(m))
	for i, hl := range m {
		batches[i] = hl.NewBatch()
	}
	return batches
}

type multiBatch []colorhl.Batch

func (m multiBatch) Highlight(r colorhl.Region) {
	for _, b := range m {
		b.Highlight(r)
	}
}

func (m multiBatch) Unhighlight(r colorhl.Region) {
	for _, b := range m {
		b.Unhighlight(r)
	}
}

func (m multiBatch) Done() {
	for _, b := range m {
		b.Done()
	}
}

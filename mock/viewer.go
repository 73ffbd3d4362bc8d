package mock

import (
	"context"

	"github.com/fwojciec/colorhl"
)

// Compile-time interface verification.
var _ colorhl.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of colorhl.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, doc colorhl.Document) error
}

func (v *Viewer) View(ctx context.Context, doc colorhl.Document) error {
	return v.ViewFn(ctx, doc)
}

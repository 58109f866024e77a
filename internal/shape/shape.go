// Package shape holds the immutable description of an animated progress shape:
// its colors, curve constants and sizing, and the contract hosts use to drive it.
package shape

import "github.com/iburimskiy/cycloid-progress/internal/surface"

// Shape is driven by a host once per size change and once per frame.
type Shape interface {
	OnSizeChanged(width, height int) error
	OnDraw(s surface.Surface) error
	// OnSave returns an opaque snapshot accepted by OnRestore.
	OnSave() any
	// OnRestore applies a snapshot from OnSave. Anything else is ignored.
	OnRestore(state any)
	SetProgress(value int)
}

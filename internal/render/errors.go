package render

import "errors"

// Failure categories surfaced by the composer. Callers can distinguish a bad
// configuration from a geometry mismatch or a failed overlay draw instead of
// receiving a free-text status string.
var (
	// ErrInvalidConfig covers negative offsets, nil or empty volumes and
	// unknown colormap names.
	ErrInvalidConfig = errors.New("invalid drawing configuration")

	// ErrShapeMismatch is returned when a mask grid does not match the base
	// grid geometry.
	ErrShapeMismatch = errors.New("grid shape mismatch")

	// ErrOverlayDraw is returned when contour extraction or drawing fails.
	// The base grid is still returned unmodified alongside it.
	ErrOverlayDraw = errors.New("contour overlay drawing failed")
)

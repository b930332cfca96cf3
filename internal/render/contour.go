package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"nifti-gridview/internal/volume"
)

// DrawContourOverlay tiles mask with the same geometry pipeline as
// ComposeGrid, extracts the outer boundaries of its foreground regions and
// draws them onto base in the given color and stroke thickness. Multiple
// masks are composited by calling this sequentially, each with its own color.
//
// An all-zero mask returns base unchanged with a nil error. When contour
// extraction or drawing fails, base is returned unmodified together with an
// error wrapping ErrOverlayDraw so callers can tell the two apart.
func DrawContourOverlay(base *image.RGBA, mask *volume.Volume, c color.RGBA, thickness int, opts Options) (*image.RGBA, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base grid", ErrInvalidConfig)
	}
	if thickness <= 0 {
		return base, fmt.Errorf("%w: thickness %d", ErrInvalidConfig, thickness)
	}

	prepared, lay, err := prepareForTiling(mask, opts)
	if err != nil {
		return base, err
	}

	bounds := base.Bounds()
	if lay.gridWidth() != bounds.Dx() || lay.gridHeight() != bounds.Dy() {
		return base, fmt.Errorf("%w: mask grid %dx%d vs base %dx%d", ErrShapeMismatch,
			lay.gridWidth(), lay.gridHeight(), bounds.Dx(), bounds.Dy())
	}

	if !prepared.HasForeground() {
		return base, nil
	}

	out, err := drawContours(base, tileGray(prepared, lay, false), lay, c, thickness)
	if err != nil {
		return base, fmt.Errorf("%w: %v", ErrOverlayDraw, err)
	}
	return out, nil
}

// drawContours runs the OpenCV contour extraction and drawing. OpenCV
// failures surface as panics through cgo, so the whole section is guarded and
// mapped onto an error return.
func drawContours(base *image.RGBA, maskGrid []uint8, lay layout, c color.RGBA, thickness int) (out *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("contour drawing panicked: %v", r)
		}
	}()

	maskMat, err := gocv.NewMatFromBytes(lay.gridHeight(), lay.gridWidth(), gocv.MatTypeCV8UC1, maskGrid)
	if err != nil {
		return nil, fmt.Errorf("mask Mat creation failed: %w", err)
	}
	defer maskMat.Close()

	contours := gocv.FindContours(maskMat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return base, nil
	}

	baseMat, err := rgbaToBGRMat(base)
	if err != nil {
		return nil, fmt.Errorf("base Mat creation failed: %w", err)
	}
	defer baseMat.Close()

	gocv.DrawContours(&baseMat, contours, -1, c, thickness)

	return bgrMatToRGBA(&baseMat)
}

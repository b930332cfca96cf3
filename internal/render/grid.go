// Package render composes 3D volumes into tiled 2D grid images and overlays
// segmentation mask contours, delegating colormap lookup and contour
// extraction to OpenCV.
package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"nifti-gridview/internal/volume"
)

// ComposeGrid tiles the depth slices of vol into one 8-bit RGB image. Pixel
// intensities are normalized to the full 0-255 range before the selected
// colormap is applied. The result is a pure function of (vol, opts).
func ComposeGrid(vol *volume.Volume, opts Options) (*image.RGBA, error) {
	cm, useColormap, err := lookupColormap(opts.Colormap)
	if err != nil {
		return nil, err
	}

	prepared, lay, err := prepareForTiling(vol, opts)
	if err != nil {
		return nil, err
	}

	gray := tileGray(prepared, lay, true)
	gw := lay.gridWidth()
	gh := lay.gridHeight()

	if !useColormap {
		return grayToRGBA(gray, gw, gh), nil
	}

	grayMat, err := gocv.NewMatFromBytes(gh, gw, gocv.MatTypeCV8UC1, gray)
	if err != nil {
		return nil, fmt.Errorf("grid Mat creation failed: %w", err)
	}
	defer grayMat.Close()

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.ApplyColorMap(grayMat, &colored, cm)

	rgba, err := bgrMatToRGBA(&colored)
	if err != nil {
		return nil, fmt.Errorf("colormap conversion failed: %w", err)
	}
	return rgba, nil
}

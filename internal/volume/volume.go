// Package volume holds the 3D scan container shared by the NIfTI reader and
// the grid composer. Axes are interpreted as (depth, height, width): a stack
// of 2D slices along depth.
package volume

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Volume is a 3D numeric array stored as a flat slice in depth-major order.
// Once loaded it is treated as immutable; operations return new volumes.
type Volume struct {
	Depth  int
	Height int
	Width  int
	Data   []float64
}

// New allocates a zero-filled volume of the given dimensions.
func New(depth, height, width int) (*Volume, error) {
	if depth <= 0 || height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid volume dimensions %dx%dx%d", depth, height, width)
	}

	return &Volume{
		Depth:  depth,
		Height: height,
		Width:  width,
		Data:   make([]float64, depth*height*width),
	}, nil
}

// NewFromData wraps an existing flat slice as a volume.
func NewFromData(depth, height, width int, data []float64) (*Volume, error) {
	if depth <= 0 || height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid volume dimensions %dx%dx%d", depth, height, width)
	}
	if len(data) != depth*height*width {
		return nil, fmt.Errorf("data length %d does not match dimensions %dx%dx%d",
			len(data), depth, height, width)
	}

	return &Volume{
		Depth:  depth,
		Height: height,
		Width:  width,
		Data:   data,
	}, nil
}

// At returns the voxel value at (z, y, x). Callers are expected to stay in
// bounds; the index arithmetic matches NIfTI storage order (x fastest).
func (v *Volume) At(z, y, x int) float64 {
	return v.Data[z*v.Height*v.Width+y*v.Width+x]
}

// Set writes the voxel value at (z, y, x). Used only while a reader is
// filling a freshly allocated volume.
func (v *Volume) Set(z, y, x int, value float64) {
	v.Data[z*v.Height*v.Width+y*v.Width+x] = value
}

// Slice returns the 2D slice at depth z as a view into the volume data.
// The returned slice must not be mutated.
func (v *Volume) Slice(z int) ([]float64, error) {
	if z < 0 || z >= v.Depth {
		return nil, fmt.Errorf("slice index %d out of range [0, %d)", z, v.Depth)
	}

	stride := v.Height * v.Width
	return v.Data[z*stride : (z+1)*stride], nil
}

// SubRange restricts the volume to depth slices lo..hi inclusive, matching
// the display-range controls in the viewer. The returned volume shares no
// data with the receiver.
func (v *Volume) SubRange(lo, hi int) (*Volume, error) {
	if lo < 0 || hi >= v.Depth || lo > hi {
		return nil, fmt.Errorf("depth range [%d, %d] out of bounds for depth %d", lo, hi, v.Depth)
	}

	stride := v.Height * v.Width
	out := make([]float64, (hi-lo+1)*stride)
	copy(out, v.Data[lo*stride:(hi+1)*stride])

	return &Volume{
		Depth:  hi - lo + 1,
		Height: v.Height,
		Width:  v.Width,
		Data:   out,
	}, nil
}

// PadDepth prepends n zero-filled slices along the depth axis.
func (v *Volume) PadDepth(n int) (*Volume, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative depth padding %d", n)
	}
	if n == 0 {
		return v, nil
	}

	stride := v.Height * v.Width
	out := make([]float64, (v.Depth+n)*stride)
	copy(out[n*stride:], v.Data)

	return &Volume{
		Depth:  v.Depth + n,
		Height: v.Height,
		Width:  v.Width,
		Data:   out,
	}, nil
}

// CropHW crops every slice to rows [y0, y1) and columns [x0, x1). The depth
// axis is untouched. Bounds must already be clipped to the volume extents.
func (v *Volume) CropHW(y0, y1, x0, x1 int) (*Volume, error) {
	if y0 < 0 || y1 > v.Height || x0 < 0 || x1 > v.Width || y0 >= y1 || x0 >= x1 {
		return nil, fmt.Errorf("crop window [%d:%d, %d:%d] invalid for %dx%d slices",
			y0, y1, x0, x1, v.Height, v.Width)
	}

	h := y1 - y0
	w := x1 - x0
	out := make([]float64, v.Depth*h*w)
	for z := 0; z < v.Depth; z++ {
		for y := y0; y < y1; y++ {
			src := z*v.Height*v.Width + y*v.Width
			dst := z*h*w + (y-y0)*w
			copy(out[dst:dst+w], v.Data[src+x0:src+x1])
		}
	}

	return &Volume{
		Depth:  v.Depth,
		Height: h,
		Width:  w,
		Data:   out,
	}, nil
}

// MinMax returns the minimum and maximum voxel values.
func (v *Volume) MinMax() (float64, float64) {
	return floats.Min(v.Data), floats.Max(v.Data)
}

// HasForeground reports whether any voxel is nonzero. Used to short-circuit
// contour overlays for empty masks.
func (v *Volume) HasForeground() bool {
	for _, val := range v.Data {
		if val != 0 {
			return true
		}
	}
	return false
}

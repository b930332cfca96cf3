package render

import (
	"fmt"
	"math"

	"nifti-gridview/internal/volume"
)

// Options is the display configuration for one composition. It is rebuilt on
// every interaction and copied before a background task starts.
type Options struct {
	// Offset is the number of blank slices prepended along depth.
	Offset int

	// Columns is the grid column count; zero selects
	// ceil(sqrt(effective depth)) automatically.
	Columns int

	// Margin is the padding width between and around grid cells.
	Margin int

	// Background is the fill value for margins and offset slices.
	Background uint8

	// Colormap names an entry of the colormap table; empty or "Default"
	// passes grayscale through.
	Colormap string

	// Crop optionally restricts every slice to a window around a center
	// point. The depth axis is untouched.
	Crop *Crop
}

// Crop is a center-plus-size window over the spatial axes.
type Crop struct {
	CenterY int
	CenterX int
	SizeY   int
	SizeX   int
}

// layout captures the tiling geometry shared by the base grid and every mask
// overlay. Base and overlays are produced through the same prepareForTiling
// call so the two can never disagree.
type layout struct {
	depth      int
	rows       int
	cols       int
	sliceH     int
	sliceW     int
	margin     int
	background uint8
}

func (l layout) gridWidth() int {
	return l.cols*l.sliceW + (l.cols+1)*l.margin
}

func (l layout) gridHeight() int {
	return l.rows*l.sliceH + (l.rows+1)*l.margin
}

// prepareForTiling applies the depth offset, resolves the column count from
// the effective depth, and clips and applies the crop window. Both
// ComposeGrid and DrawContourOverlay go through here.
func prepareForTiling(vol *volume.Volume, opts Options) (*volume.Volume, layout, error) {
	if vol == nil || len(vol.Data) == 0 {
		return nil, layout{}, fmt.Errorf("%w: nil or empty volume", ErrInvalidConfig)
	}
	if opts.Offset < 0 {
		return nil, layout{}, fmt.Errorf("%w: negative offset %d", ErrInvalidConfig, opts.Offset)
	}
	if opts.Margin < 0 {
		return nil, layout{}, fmt.Errorf("%w: negative margin %d", ErrInvalidConfig, opts.Margin)
	}

	prepared := vol
	if opts.Offset > 0 {
		padded, err := vol.PadDepth(opts.Offset)
		if err != nil {
			return nil, layout{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		prepared = padded
	}

	// Column count derives from the depth after offset padding.
	cols := opts.Columns
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(prepared.Depth))))
	}

	if opts.Crop != nil {
		y0, y1 := clipAxis(opts.Crop.CenterY, opts.Crop.SizeY, prepared.Height)
		x0, x1 := clipAxis(opts.Crop.CenterX, opts.Crop.SizeX, prepared.Width)
		cropped, err := prepared.CropHW(y0, y1, x0, x1)
		if err != nil {
			return nil, layout{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		prepared = cropped
	}

	rows := (prepared.Depth + cols - 1) / cols

	lay := layout{
		depth:      prepared.Depth,
		rows:       rows,
		cols:       cols,
		sliceH:     prepared.Height,
		sliceW:     prepared.Width,
		margin:     opts.Margin,
		background: opts.Background,
	}

	return prepared, lay, nil
}

// clipAxis floors the lower crop bound at 0 and caps the upper bound at the
// axis extent, for any center and size including oversize windows.
func clipAxis(center, size, extent int) (int, int) {
	lower := center - size/2
	if lower < 0 {
		lower = 0
	}
	upper := lower + size
	if upper > extent {
		upper = extent
	}
	if lower >= upper {
		// Degenerate window after clipping keeps a single line so the crop
		// still produces a valid slice.
		if upper < extent {
			return upper, upper + 1
		}
		return extent - 1, extent
	}
	return lower, upper
}

// tileGray arranges the prepared slices into a row-major grid of 8-bit
// pixels. With normalize set, intensities map min to 0 and max to 255; a
// constant volume fills cells with the background value. Without it, values
// are clamped into 0..255 unchanged, which is the mask path.
func tileGray(vol *volume.Volume, lay layout, normalize bool) []uint8 {
	gw := lay.gridWidth()
	gh := lay.gridHeight()

	out := make([]uint8, gw*gh)
	if lay.background != 0 {
		for i := range out {
			out[i] = lay.background
		}
	}

	var lo, hi float64
	if normalize {
		lo, hi = vol.MinMax()
	}

	for z := 0; z < lay.depth; z++ {
		row := z / lay.cols
		col := z % lay.cols
		y0 := lay.margin + row*(lay.sliceH+lay.margin)
		x0 := lay.margin + col*(lay.sliceW+lay.margin)

		for y := 0; y < lay.sliceH; y++ {
			src := z*lay.sliceH*lay.sliceW + y*lay.sliceW
			dst := (y0+y)*gw + x0
			for x := 0; x < lay.sliceW; x++ {
				out[dst+x] = quantize(vol.Data[src+x], lo, hi, normalize, lay.background)
			}
		}
	}

	return out
}

func quantize(v, lo, hi float64, normalize bool, background uint8) uint8 {
	if normalize {
		if hi <= lo {
			return background
		}
		scaled := (v - lo) / (hi - lo) * 255.0
		return uint8(math.Round(scaled))
	}

	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

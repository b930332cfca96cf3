package render

import (
	"fmt"

	"gocv.io/x/gocv"
)

// DefaultColormap leaves the grid as grayscale RGB without a lookup table.
const DefaultColormap = "Default"

// colormaps maps the user-facing names to OpenCV colormap identifiers.
var colormaps = map[string]gocv.ColormapTypes{
	"Parula":  gocv.ColormapParula,
	"Autumn":  gocv.ColormapAutumn,
	"Bone":    gocv.ColormapBone,
	"Jet":     gocv.ColormapJet,
	"Rainbow": gocv.ColormapRainbow,
	"Ocean":   gocv.ColormapOcean,
	"Summer":  gocv.ColormapSummer,
	"Spring":  gocv.ColormapSpring,
	"Cool":    gocv.ColormapCool,
	"HSV":     gocv.ColormapHsv,
	"Pink":    gocv.ColormapPink,
	"Hot":     gocv.ColormapHot,
}

// colormapOrder keeps the GUI selector stable across runs.
var colormapOrder = []string{
	DefaultColormap, "Parula", "Autumn", "Bone", "Jet", "Rainbow",
	"Ocean", "Summer", "Spring", "Cool", "HSV", "Pink", "Hot",
}

// ColormapNames returns the selectable colormap names in display order.
func ColormapNames() []string {
	names := make([]string, len(colormapOrder))
	copy(names, colormapOrder)
	return names
}

// lookupColormap resolves a name to its OpenCV identifier. The empty string
// is treated as Default.
func lookupColormap(name string) (gocv.ColormapTypes, bool, error) {
	if name == "" || name == DefaultColormap {
		return 0, false, nil
	}

	cm, ok := colormaps[name]
	if !ok {
		return 0, false, fmt.Errorf("%w: unknown colormap %q", ErrInvalidConfig, name)
	}
	return cm, true, nil
}

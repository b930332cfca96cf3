package render

import (
	"errors"
	"image"
	"testing"
)

func pixelsEqual(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

// TestComposeGridScenario checks the (4,10,10) reference scenario: auto
// column count 2, 2 rows, 10x10 cells plus margins.
func TestComposeGridScenario(t *testing.T) {
	vol := gradientVolume(4, 10, 10)

	img, err := ComposeGrid(vol, Options{Margin: 1})
	if err != nil {
		t.Fatalf("Failed to compose: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 23 || bounds.Dy() != 23 {
		t.Errorf("Expected 23x23 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

// TestComposeGridNormalization verifies min maps to 0 and max to 255
func TestComposeGridNormalization(t *testing.T) {
	vol := gradientVolume(4, 4, 4)

	img, err := ComposeGrid(vol, Options{Margin: 0})
	if err != nil {
		t.Fatalf("Failed to compose: %v", err)
	}

	lo, hi := uint8(255), uint8(0)
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			v := img.RGBAAt(x, y).R
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo != 0 || hi != 255 {
		t.Errorf("Expected normalized range [0, 255], got [%d, %d]", lo, hi)
	}
}

// TestComposeGridConstantVolume verifies a constant input fills with the
// configured background value
func TestComposeGridConstantVolume(t *testing.T) {
	vol := constantVolume(4, 4, 4, 7)

	img, err := ComposeGrid(vol, Options{Margin: 1, Background: 13})
	if err != nil {
		t.Fatalf("Failed to compose: %v", err)
	}

	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if img.RGBAAt(x, y).R != 13 {
				t.Fatalf("Expected background value 13 at (%d,%d), got %d", x, y, img.RGBAAt(x, y).R)
			}
		}
	}
}

// TestComposeGridOffsetEquivalence verifies composing with offset k equals
// composing the volume with k zero slices prepended and offset 0
func TestComposeGridOffsetEquivalence(t *testing.T) {
	vol := gradientVolume(4, 6, 6)
	// Include a zero voxel so padding does not change the intensity range
	vol.Data[0] = 0

	withOffset, err := ComposeGrid(vol, Options{Offset: 3, Margin: 1})
	if err != nil {
		t.Fatalf("Failed to compose with offset: %v", err)
	}

	padded, err := vol.PadDepth(3)
	if err != nil {
		t.Fatal(err)
	}
	prePadded, err := ComposeGrid(padded, Options{Margin: 1})
	if err != nil {
		t.Fatalf("Failed to compose pre-padded: %v", err)
	}

	if !pixelsEqual(withOffset, prePadded) {
		t.Error("Offset composition differs from pre-padded composition")
	}
}

// TestComposeGridExplicitColumns verifies the output geometry follows a
// configured column count with a partially filled last row
func TestComposeGridExplicitColumns(t *testing.T) {
	vol := gradientVolume(5, 8, 8)

	img, err := ComposeGrid(vol, Options{Columns: 3, Margin: 2})
	if err != nil {
		t.Fatalf("Failed to compose: %v", err)
	}

	// 3 columns, 2 rows: width 3*8+4*2, height 2*8+3*2
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 22 {
		t.Errorf("Expected 32x22 image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

// TestComposeGridDeterministic verifies identical inputs give identical
// output
func TestComposeGridDeterministic(t *testing.T) {
	vol := gradientVolume(4, 5, 5)
	opts := Options{Margin: 1, Offset: 1}

	a, err := ComposeGrid(vol, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComposeGrid(vol, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !pixelsEqual(a, b) {
		t.Error("Composition is not deterministic")
	}
}

// TestComposeGridUnknownColormap verifies the configuration error
func TestComposeGridUnknownColormap(t *testing.T) {
	_, err := ComposeGrid(gradientVolume(2, 4, 4), Options{Colormap: "Inferno"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

// TestColormapNames verifies Default leads the stable name order
func TestColormapNames(t *testing.T) {
	names := ColormapNames()
	if len(names) != len(colormaps)+1 {
		t.Errorf("Expected %d names, got %d", len(colormaps)+1, len(names))
	}
	if names[0] != DefaultColormap {
		t.Errorf("Expected %q first, got %q", DefaultColormap, names[0])
	}
	for _, name := range names[1:] {
		if _, ok := colormaps[name]; !ok {
			t.Errorf("Name %q missing from colormap table", name)
		}
	}
}

package volume

import "testing"

func makeSequential(depth, height, width int) *Volume {
	vol, err := New(depth, height, width)
	if err != nil {
		panic(err)
	}
	for i := range vol.Data {
		vol.Data[i] = float64(i)
	}
	return vol
}

// TestNewFromData verifies dimension validation against the data length
func TestNewFromData(t *testing.T) {
	data := make([]float64, 2*3*4)

	vol, err := NewFromData(2, 3, 4, data)
	if err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}
	if vol.Depth != 2 || vol.Height != 3 || vol.Width != 4 {
		t.Errorf("Expected dimensions 2x3x4, got %dx%dx%d", vol.Depth, vol.Height, vol.Width)
	}

	if _, err := NewFromData(2, 3, 5, data); err == nil {
		t.Error("Expected error for mismatched data length")
	}
	if _, err := NewFromData(0, 3, 4, nil); err == nil {
		t.Error("Expected error for zero dimension")
	}
}

// TestAtIndexing verifies the depth-major voxel ordering
func TestAtIndexing(t *testing.T) {
	vol := makeSequential(2, 3, 4)

	if got := vol.At(0, 0, 0); got != 0 {
		t.Errorf("Expected voxel (0,0,0) = 0, got %f", got)
	}
	if got := vol.At(0, 1, 2); got != 6 {
		t.Errorf("Expected voxel (0,1,2) = 6, got %f", got)
	}
	if got := vol.At(1, 2, 3); got != 23 {
		t.Errorf("Expected voxel (1,2,3) = 23, got %f", got)
	}
}

// TestSubRange verifies inclusive depth-range restriction
func TestSubRange(t *testing.T) {
	vol := makeSequential(5, 2, 2)

	sub, err := vol.SubRange(1, 3)
	if err != nil {
		t.Fatalf("Failed to restrict range: %v", err)
	}
	if sub.Depth != 3 {
		t.Errorf("Expected depth 3, got %d", sub.Depth)
	}
	if got := sub.At(0, 0, 0); got != vol.At(1, 0, 0) {
		t.Errorf("Expected first slice of range to match slice 1, got %f", got)
	}

	// The restriction must not alias the source
	sub.Set(0, 0, 0, -1)
	if vol.At(1, 0, 0) == -1 {
		t.Error("SubRange aliases the source volume")
	}

	if _, err := vol.SubRange(3, 1); err == nil {
		t.Error("Expected error for inverted range")
	}
	if _, err := vol.SubRange(0, 5); err == nil {
		t.Error("Expected error for out-of-bounds range")
	}
}

// TestPadDepth verifies zero-slice prepending
func TestPadDepth(t *testing.T) {
	vol := makeSequential(2, 2, 2)

	padded, err := vol.PadDepth(3)
	if err != nil {
		t.Fatalf("Failed to pad depth: %v", err)
	}
	if padded.Depth != 5 {
		t.Errorf("Expected depth 5, got %d", padded.Depth)
	}

	for z := 0; z < 3; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				if padded.At(z, y, x) != 0 {
					t.Fatalf("Expected prepended slice %d to be zero-filled", z)
				}
			}
		}
	}
	if got := padded.At(3, 0, 0); got != vol.At(0, 0, 0) {
		t.Errorf("Expected original data after padding, got %f", got)
	}

	if _, err := vol.PadDepth(-1); err == nil {
		t.Error("Expected error for negative padding")
	}

	same, err := vol.PadDepth(0)
	if err != nil || same != vol {
		t.Error("Expected zero padding to return the receiver")
	}
}

// TestCropHW verifies spatial cropping leaves the depth axis untouched
func TestCropHW(t *testing.T) {
	vol := makeSequential(2, 4, 4)

	cropped, err := vol.CropHW(1, 3, 0, 2)
	if err != nil {
		t.Fatalf("Failed to crop: %v", err)
	}
	if cropped.Depth != 2 || cropped.Height != 2 || cropped.Width != 2 {
		t.Errorf("Expected 2x2x2, got %dx%dx%d", cropped.Depth, cropped.Height, cropped.Width)
	}
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				if cropped.At(z, y, x) != vol.At(z, y+1, x) {
					t.Fatalf("Crop value mismatch at (%d,%d,%d)", z, y, x)
				}
			}
		}
	}

	if _, err := vol.CropHW(3, 1, 0, 2); err == nil {
		t.Error("Expected error for inverted crop window")
	}
	if _, err := vol.CropHW(0, 5, 0, 2); err == nil {
		t.Error("Expected error for out-of-bounds crop window")
	}
}

// TestMinMax verifies the intensity range scan
func TestMinMax(t *testing.T) {
	vol := makeSequential(2, 2, 2)
	lo, hi := vol.MinMax()
	if lo != 0 || hi != 7 {
		t.Errorf("Expected range [0, 7], got [%f, %f]", lo, hi)
	}
}

// TestHasForeground verifies the empty-mask short circuit
func TestHasForeground(t *testing.T) {
	vol, _ := New(2, 2, 2)
	if vol.HasForeground() {
		t.Error("Expected zero volume to have no foreground")
	}

	vol.Set(1, 1, 1, 2)
	if !vol.HasForeground() {
		t.Error("Expected nonzero volume to have foreground")
	}
}

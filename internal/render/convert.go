package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// grayToRGBA broadcasts a single-channel grid to RGB so grayscale and
// colormapped outputs share one type.
func grayToRGBA(gray []uint8, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := gray[y*width+x]
			i := img.PixOffset(x, y)
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}
	return img
}

// bgrMatToRGBA converts a 3-channel BGR Mat to an RGBA image.
func bgrMatToRGBA(mat *gocv.Mat) (*image.RGBA, error) {
	if mat.Empty() || mat.Channels() != 3 {
		return nil, fmt.Errorf("expected 3-channel Mat, got %d channels", mat.Channels())
	}

	rows := mat.Rows()
	cols := mat.Cols()

	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("Mat data access failed: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			src := (y*cols + x) * 3
			dst := img.PixOffset(x, y)
			img.Pix[dst] = data[src+2]
			img.Pix[dst+1] = data[src+1]
			img.Pix[dst+2] = data[src]
			img.Pix[dst+3] = 255
		}
	}
	return img, nil
}

// rgbaToBGRMat converts an RGBA image to a 3-channel BGR Mat. The caller owns
// the returned Mat.
func rgbaToBGRMat(img *image.RGBA) (gocv.Mat, error) {
	bounds := img.Bounds()
	rows := bounds.Dy()
	cols := bounds.Dx()

	data := make([]uint8, rows*cols*3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			src := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			dst := (y*cols + x) * 3
			data[dst] = img.Pix[src+2]
			data[dst+1] = img.Pix[src+1]
			data[dst+2] = img.Pix[src]
		}
	}

	return gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC3, data)
}

package niio

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/render"
)

// WriterConfig captures everything the exporter needs: destination,
// encoding, the drawing configuration and per-mask outline colors.
type WriterConfig struct {
	Dest      string
	Format    string // "png" or "jpeg"; anything else falls back to png
	Options   render.Options
	Thickness int
	Colors    []color.RGBA // one per mask reader, missing entries default to yellow
}

// Writer exports one composed grid image per source volume.
type Writer struct {
	source *Reader
	masks  []*Reader
	cfg    WriterConfig
	logger logger.Logger
}

// NewWriter validates the destination folder and builds a writer over the
// given source and mask readers.
func NewWriter(source *Reader, masks []*Reader, cfg WriterConfig, log logger.Logger) (*Writer, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: no source reader", render.ErrInvalidConfig)
	}

	info, err := os.Stat(cfg.Dest)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: destination %s is not a directory", ErrIO, cfg.Dest)
	}

	return &Writer{
		source: source,
		masks:  masks,
		cfg:    cfg,
		logger: log,
	}, nil
}

// Write composes and encodes every source volume into the destination
// folder, reporting 0-100 progress and per-file status.
func (w *Writer) Write(progress func(int), status func(string)) error {
	keys := w.source.Keys()
	n := len(keys)
	if n == 0 {
		return fmt.Errorf("%w: source folder has no volumes", render.ErrInvalidConfig)
	}

	for i, key := range keys {
		if status != nil {
			status("Exporting: " + key)
		}

		img, err := w.compose(key)
		if err != nil {
			return err
		}

		if err := w.encode(key, img); err != nil {
			return err
		}

		if progress != nil {
			progress((100 * (i + 1)) / n)
		}
	}

	w.logger.Info("Writer", "export complete", map[string]interface{}{
		"dest":  w.cfg.Dest,
		"count": n,
	})
	if status != nil {
		status("Ready.")
	}
	return nil
}

func (w *Writer) compose(key string) (*image.RGBA, error) {
	vol, err := w.source.At(key)
	if err != nil {
		return nil, err
	}

	img, err := render.ComposeGrid(vol, w.cfg.Options)
	if err != nil {
		return nil, err
	}

	for i, maskReader := range w.masks {
		mask, err := maskReader.At(key)
		if err != nil {
			// A mask folder may not cover every source volume.
			w.logger.Warning("Writer", "mask missing for volume", map[string]interface{}{
				"key":  key,
				"mask": maskReader.Root(),
			})
			continue
		}

		img, err = render.DrawContourOverlay(img, mask, w.maskColor(i), w.cfg.Thickness, w.cfg.Options)
		if err != nil {
			// Overlay failures keep the base grid but are surfaced, not
			// swallowed.
			w.logger.Warning("Writer", "contour overlay failed", map[string]interface{}{
				"key":   key,
				"mask":  maskReader.Root(),
				"error": err.Error(),
			})
		}
	}

	return img, nil
}

func (w *Writer) maskColor(i int) color.RGBA {
	if i < len(w.cfg.Colors) {
		return w.cfg.Colors[i]
	}
	return color.RGBA{R: 255, G: 255, B: 0, A: 255}
}

func (w *Writer) encode(key string, img *image.RGBA) error {
	format := w.cfg.Format
	if format != "jpeg" {
		format = "png"
	}

	name := exportName(key, format)
	path := filepath.Join(w.cfg.Dest, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	switch format {
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrIO, path, err)
	}

	w.logger.Debug("Writer", "image written", map[string]interface{}{
		"path":   path,
		"format": format,
	})
	return nil
}

// exportName swaps the NIfTI suffix for the image format extension.
func exportName(key, format string) string {
	lower := strings.ToLower(key)
	switch {
	case strings.HasSuffix(lower, ".nii.gz"):
		key = key[:len(key)-len(".nii.gz")]
	case strings.HasSuffix(lower, ".nii"):
		key = key[:len(key)-len(".nii")]
	}
	return key + "." + format
}

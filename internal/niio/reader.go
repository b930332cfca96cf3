// Package niio discovers NIfTI files in a folder, loads them into a keyed
// volume store and exports composed grid images.
package niio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/nifti"
	"nifti-gridview/internal/volume"
)

// ErrIO marks filesystem and decoding failures so callers can separate them
// from configuration errors.
var ErrIO = errors.New("image I/O failed")

// ReaderConfig describes one source folder.
type ReaderConfig struct {
	// Root is the folder scanned for .nii / .nii.gz files.
	Root string

	// Labels rounds voxel values to integer labels on load, the mode used
	// for segmentation mask folders.
	Labels bool
}

// Reader discovers NIfTI files in a folder and exposes them by
// filename-derived key in discovery order.
type Reader struct {
	mu      sync.RWMutex
	cfg     ReaderConfig
	keys    []string
	volumes map[string]*volume.Volume
	logger  logger.Logger
}

// NewReader scans the configured folder. Files are keyed by filename and
// ordered lexically; volumes load on ReadAll or lazily on first access.
func NewReader(cfg ReaderConfig, log logger.Logger) (*Reader, error) {
	entries, err := os.ReadDir(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %v", ErrIO, cfg.Root, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !nifti.IsNIfTIFile(entry.Name()) {
			continue
		}
		keys = append(keys, entry.Name())
	}
	sort.Strings(keys)

	log.Info("Reader", "folder scanned", map[string]interface{}{
		"root":  cfg.Root,
		"files": len(keys),
		"masks": cfg.Labels,
	})

	return &Reader{
		cfg:     cfg,
		keys:    keys,
		volumes: make(map[string]*volume.Volume, len(keys)),
		logger:  log,
	}, nil
}

// Len returns the number of discovered files.
func (r *Reader) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Keys returns the filename keys in discovery order.
func (r *Reader) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Root returns the scanned folder path.
func (r *Reader) Root() string {
	return r.cfg.Root
}

// At returns the volume for key, loading it from disk if it has not been
// read yet.
func (r *Reader) At(key string) (*volume.Volume, error) {
	r.mu.RLock()
	vol, ok := r.volumes[key]
	r.mu.RUnlock()
	if ok {
		return vol, nil
	}

	found := false
	for _, k := range r.keys {
		if k == key {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown volume key %q", key)
	}

	return r.load(key)
}

// ReadAll loads every discovered file, reporting integer 0-100 progress and
// a textual status message per file.
func (r *Reader) ReadAll(progress func(int), status func(string)) error {
	keys := r.Keys()
	n := len(keys)

	for i, key := range keys {
		if status != nil {
			status("Handling: " + key)
		}
		if _, err := r.load(key); err != nil {
			return err
		}
		if progress != nil {
			progress((100 * (i + 1)) / n)
		}
	}

	if status != nil {
		status("Ready.")
	}
	return nil
}

func (r *Reader) load(key string) (*volume.Volume, error) {
	path := filepath.Join(r.cfg.Root, key)

	vol, err := nifti.Open(path)
	if err != nil {
		r.logger.Error("Reader", err, map[string]interface{}{"key": key})
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if r.cfg.Labels {
		for i, v := range vol.Data {
			vol.Data[i] = math.Round(v)
		}
	}

	r.mu.Lock()
	r.volumes[key] = vol
	r.mu.Unlock()

	r.logger.Debug("Reader", "volume loaded", map[string]interface{}{
		"key":   key,
		"depth": vol.Depth,
		"shape": fmt.Sprintf("%dx%d", vol.Height, vol.Width),
	})

	return vol, nil
}

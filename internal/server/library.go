package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/h1w0xxx/molrec/internal/sdf"
)

// loadOrBuildIndex reads the .index file next to an SD file, scanning the
// SD file itself when no index exists.
func loadOrBuildIndex(sdfPath string) ([]int64, error) {
	offsets, err := sdf.LoadIndex(sdf.IndexPath(sdfPath))
	if err == nil {
		return offsets, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	f, err := os.Open(sdfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	offsets, err = sdf.BuildIndex(f)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", sdfPath, err)
	}
	return offsets, nil
}

package frames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	framePrefix = "frame_"
	frameSuffix = ".jpg"
)

// Path returns the filename for a given 1-based frame number
func Path(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", framePrefix, n, frameSuffix))
}

// Index extracts the frame number from a filename like "frame_12.jpg".
// It returns 0 when the name is not a frame file.
func Index(name string) int {
	name = filepath.Base(name)
	if !strings.HasPrefix(name, framePrefix) || !strings.HasSuffix(name, frameSuffix) {
		return 0
	}
	numberStr := strings.TrimSuffix(strings.TrimPrefix(name, framePrefix), frameSuffix)

	if num, err := strconv.Atoi(numberStr); err == nil && num > 0 {
		return num
	}
	return 0
}

// List returns the contiguous run frame_1.jpg, frame_2.jpg, ... found in dir.
// Enumeration stops at the first missing index, so leftovers from an older,
// longer run that sit past a gap are ignored.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading frames directory: %w", ErrIO, err)
	}

	present := make(map[int]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if n := Index(entry.Name()); n > 0 {
			present[n] = true
		}
	}

	var paths []string
	for n := 1; present[n]; n++ {
		paths = append(paths, Path(dir, n))
	}
	return paths, nil
}

// Count reports how many contiguous frames are available in dir.
func Count(dir string) (int, error) {
	paths, err := List(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	return len(paths), nil
}

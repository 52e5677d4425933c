package recolour

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aeroglass/aerotint/internal/colour"
	"github.com/aeroglass/aerotint/internal/xpm"
)

// FamilyColour is one distinct palette colour within the marker family,
// with the minimum distance to the marker seen across all scanned
// resources.
type FamilyColour struct {
	Hex      string
	Distance float64
}

// listFiles returns all files under dir with the given extension, sorted by
// path. A missing dir yields an empty list.
func listFiles(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s files under %s: %w", ext, dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// BuildFamily scans the XPM resources under dir and returns the distinct
// palette colours within cfg.Threshold of the marker, ordered by increasing
// distance. The marker itself records distance 0; ties keep encounter
// order. Control resources are skipped when tintButtons is false. An empty
// result means there is nothing to recolour, not an error.
func (cfg Config) BuildFamily(dir string, tintButtons bool) ([]FamilyColour, error) {
	files, err := listFiles(dir, ".xpm")
	if err != nil {
		return nil, err
	}

	distances := make(map[string]float64)
	var order []string

	for _, path := range files {
		if !tintButtons && cfg.Categorize(path) == CategoryControl {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for _, entry := range xpm.Parse(string(data)) {
			if entry.Hex == cfg.Marker.Hex() {
				if _, seen := distances[entry.Hex]; !seen {
					order = append(order, entry.Hex)
				}
				distances[entry.Hex] = 0
				continue
			}
			c, err := colour.ParseHex(entry.Hex)
			if err != nil {
				continue
			}
			d := colour.Distance(c, cfg.Marker)
			if d > cfg.Threshold {
				continue
			}
			if prev, seen := distances[entry.Hex]; !seen || d < prev {
				if !seen {
					order = append(order, entry.Hex)
				}
				distances[entry.Hex] = d
			}
		}
	}

	family := make([]FamilyColour, 0, len(order))
	for _, hex := range order {
		family = append(family, FamilyColour{Hex: hex, Distance: distances[hex]})
	}
	sort.SliceStable(family, func(i, j int) bool {
		return family[i].Distance < family[j].Distance
	})
	return family, nil
}

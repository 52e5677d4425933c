package xfconf

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var menuOpacityLineRe = regexp.MustCompile(`(?m)^menu-opacity\s*=.*$`)

// WhiskerRCFiles lists the whiskermenu rc files under the panel config
// directory of the given home. A missing directory yields an empty list.
func WhiskerRCFiles(home string) ([]string, error) {
	panelDir := filepath.Join(home, ".config", "xfce4", "panel")
	matches, err := filepath.Glob(filepath.Join(panelDir, "whiskermenu*.rc"))
	if err != nil {
		return nil, fmt.Errorf("globbing whisker rc files: %w", err)
	}
	var files []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// SetWhiskerRCOpacity upserts "menu-opacity=<percent>" in every whisker rc
// file under home, replacing an existing line or appending one. Returns
// the number of files changed.
func SetWhiskerRCOpacity(home string, percent int) (int, error) {
	percent = clampPercent(percent)
	files, err := WhiskerRCFiles(home)
	if err != nil {
		return 0, err
	}

	line := fmt.Sprintf("menu-opacity=%d", percent)
	changed := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return changed, fmt.Errorf("reading %s: %w", path, err)
		}
		txt := string(data)

		var out string
		if menuOpacityLineRe.MatchString(txt) {
			out = menuOpacityLineRe.ReplaceAllString(txt, line)
		} else {
			sep := ""
			if !strings.HasSuffix(txt, "\n") && txt != "" {
				sep = "\n"
			}
			out = txt + sep + line + "\n"
		}

		if out == txt {
			continue
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return changed, fmt.Errorf("writing %s: %w", path, err)
		}
		changed++
	}
	return changed, nil
}

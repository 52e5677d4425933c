// Package csspatch rewrites the panel colour declaration and the opacity
// call sites of the theme's GTK stylesheet in place.
package csspatch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	panelBaseRe = regexp.MustCompile(`(@define-color\s+panel_base\s+)(#[0-9a-fA-F]{6})(\s*;)`)
	alphaRe     = regexp.MustCompile(`alpha\(@(edge_dark|edge_light|panel_base),\s*(0(?:\.\d+)?|1(?:\.0+)?)\)`)
)

// Apply substitutes hex into the panel_base declaration and opacity into
// every alpha() call site of text. The declaration must be present; its
// absence is an error because the stylesheet contract is broken.
func Apply(text, hex string, opacity float64) (string, error) {
	if !panelBaseRe.MatchString(text) {
		return "", fmt.Errorf("no '@define-color panel_base ...;' declaration found")
	}

	replaced := false
	out := panelBaseRe.ReplaceAllStringFunc(text, func(m string) string {
		if replaced {
			return m
		}
		replaced = true
		sub := panelBaseRe.FindStringSubmatch(m)
		return sub[1] + hex + sub[3]
	})

	op := fmt.Sprintf("%.2f", opacity)
	out = alphaRe.ReplaceAllString(out, "alpha(@$1, "+op+")")
	return out, nil
}

// Patch applies the substitution to the stylesheet at path, writing only
// when the content changed.
func Patch(path, hex string, opacity float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading stylesheet %s: %w", path, err)
	}
	out, err := Apply(string(data), hex, opacity)
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	if out == string(data) {
		return nil
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing stylesheet %s: %w", path, err)
	}
	return nil
}

// Locate probes the known stylesheet locations under the theme root and
// returns the first that exists.
func Locate(themeRoot string) (string, error) {
	candidates := []string{
		filepath.Join(themeRoot, "gtk-3.0", "widgets", "aero-elements.css"),
		filepath.Join(themeRoot, "gtk-3.0", "aero-elements.css"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("aero-elements.css not found under %s", themeRoot)
}

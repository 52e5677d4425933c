// Package recolour implements the marker-family recolouring engine for
// window-decoration templates. Template XPMs paint their recolourable
// regions in shades of a fixed marker colour; on apply, the engine copies
// the template tree and substitutes every palette colour near the marker
// with its analog around a target colour, preserving shading.
package recolour

import "github.com/aeroglass/aerotint/internal/colour"

// Config carries the engine constants. It is an explicit immutable value so
// tests can run with alternate markers and thresholds; the engine never
// mutates it.
type Config struct {
	// Marker is the reference colour templates use to mark recolourable
	// regions.
	Marker colour.RGB

	// Threshold is the family width around the marker, as Euclidean
	// distance in unit RGB space. Widen it if a template uses more shades.
	Threshold float64

	// ButtonPrefixes names the filename categories that count as window
	// button glyphs, skipped when button tinting is off.
	ButtonPrefixes map[string]bool

	// TemplateNames are the directory names probed under the theme root,
	// in order.
	TemplateNames []string
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		Marker:    colour.RGB{R: 0xe2, G: 0xda, B: 0x9d},
		Threshold: 0.26,
		ButtonPrefixes: map[string]bool{
			"close":    true,
			"hide":     true,
			"maximize": true,
			"menu":     true,
			"shade":    true,
			"stick":    true,
		},
		TemplateNames: []string{
			"xfwm4-template",
			"xfwm4_template",
			"xfwm4.template",
			"xfwm4-tpl",
		},
	}
}

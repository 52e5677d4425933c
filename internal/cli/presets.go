package cli

import (
	"fmt"
	"strings"

	"github.com/aeroglass/aerotint/internal/colour"
)

// Preset is a named base colour offered by the theme.
type Preset struct {
	Name string
	Hex  string
}

// Presets are the stock accent colours, in display order.
var Presets = []Preset{
	{Name: "Sky", Hex: "#afcbe6"},
	{Name: "Twilight", Hex: "#396cb6"},
	{Name: "Sea", Hex: "#80d1d1"},
	{Name: "Leaf", Hex: "#8bc483"},
	{Name: "Lime", Hex: "#bed999"},
	{Name: "Sun", Hex: "#e2da9d"},
	{Name: "Pumpkin", Hex: "#ebb767"},
	{Name: "Ruby", Hex: "#ce4444"},
	{Name: "Fuchsia", Hex: "#e783bf"},
	{Name: "Blush", Hex: "#e7d0e5"},
	{Name: "Violet", Hex: "#9d80b8"},
	{Name: "Lavender", Hex: "#c3b4c5"},
	{Name: "Taupe", Hex: "#bfb7a1"},
	{Name: "Chocolate", Hex: "#724c4c"},
	{Name: "Slate", Hex: "#939393"},
	{Name: "Frost", Hex: "#e3e3e3"},
}

// ResolveColour turns a --color argument into a colour: either a preset
// name (case-insensitive) or a hex value. The returned name is the preset
// name, or "Custom" for raw hex input.
func ResolveColour(arg string) (colour.RGB, string, error) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, arg) {
			c, err := colour.ParseHex(p.Hex)
			return c, p.Name, err
		}
	}
	c, err := colour.ParseHex(arg)
	if err != nil {
		return colour.RGB{}, "", fmt.Errorf("%q is neither a preset name nor a hex colour: %w", arg, err)
	}
	// A custom value may still collide with a preset.
	for _, p := range Presets {
		if p.Hex == c.Hex() {
			return c, p.Name, nil
		}
	}
	return c, "Custom", nil
}

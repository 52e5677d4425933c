package recolour

import (
	"path/filepath"
	"strings"
)

// Category classifies a decoration resource by its functional role, derived
// from the filename's leading token before the first "-".
type Category int

const (
	// CategoryControl is an interactive window button glyph
	// (close, hide, maximize, menu, shade, stick).
	CategoryControl Category = iota
	// CategoryFrame is a window border or title piece.
	CategoryFrame
	// CategoryOther is anything else in the tree.
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryControl:
		return "control"
	case CategoryFrame:
		return "frame"
	default:
		return "other"
	}
}

// framePrefixes are the xfwm4 border piece names.
var framePrefixes = map[string]bool{
	"bottom": true,
	"left":   true,
	"right":  true,
	"title":  true,
	"top":    true,
}

// Prefix returns the lowercase leading token of a resource filename, up to
// its first "-". "close-active.xpm" yields "close".
func Prefix(name string) string {
	base := filepath.Base(name)
	if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[:i]
	}
	return strings.ToLower(base)
}

// Categorize maps a resource filename to its Category under the given
// configuration. The extension is ignored; only the leading token counts.
func (cfg Config) Categorize(name string) Category {
	p := Prefix(name)
	p = strings.TrimSuffix(p, filepath.Ext(p))
	switch {
	case cfg.ButtonPrefixes[p]:
		return CategoryControl
	case framePrefixes[p]:
		return CategoryFrame
	default:
		return CategoryOther
	}
}

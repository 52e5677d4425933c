package recolour

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/aeroglass/aerotint/internal/colour"
	"github.com/aeroglass/aerotint/internal/xpm"
)

// Outcome describes how a recolour run ended. Structural outcomes are
// report states, not errors: callers render them without a failure path.
type Outcome int

const (
	// OutcomeRecoloured means the working tree was regenerated and
	// rewritten.
	OutcomeRecoloured Outcome = iota
	// OutcomeTemplateNotFound means no template directory exists under the
	// theme root; nothing was mutated.
	OutcomeTemplateNotFound
	// OutcomeNoResources means the template was copied but holds no XPM
	// resources.
	OutcomeNoResources
	// OutcomeEmptyFamily means no palette colour fell within the marker
	// threshold; the copied tree is left as the template verbatim.
	OutcomeEmptyFamily
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecoloured:
		return "recoloured"
	case OutcomeTemplateNotFound:
		return "template not found"
	case OutcomeNoResources:
		return "template has no XPM resources"
	case OutcomeEmptyFamily:
		return "marker family empty"
	default:
		return "unknown"
	}
}

// Options are the per-run policy knobs.
type Options struct {
	// Target is the colour the marker family is remapped onto.
	Target colour.RGB

	// TintButtons recolours window button glyphs too. When false, Control
	// resources neither contribute family colours nor get rewritten.
	TintButtons bool

	// DropDuplicates removes PNG files that shadow a just-recoloured XPM
	// of the same stem, so consumers preferring PNG fall back to the
	// recoloured XPM.
	DropDuplicates bool
}

// Report summarizes one recolour run.
type Report struct {
	Outcome           Outcome `json:"outcome"`
	Template          string  `json:"template,omitempty"`
	Marker            string  `json:"marker"`
	Target            string  `json:"target"`
	FamilySize        int     `json:"family_size"`
	FilesModified     int     `json:"files_modified"`
	EntriesModified   int     `json:"entries_modified"`
	TintButtons       bool    `json:"tint_buttons"`
	DuplicatesRemoved int     `json:"duplicates_removed"`
}

// String renders the report in a single status line.
func (r Report) String() string {
	if r.Outcome == OutcomeTemplateNotFound {
		return fmt.Sprintf("xfwm4: no template folder found (marker %s)", r.Marker)
	}
	tint := "off"
	if r.TintButtons {
		tint = "on"
	}
	return fmt.Sprintf(
		"xfwm4: template=%s %s, marker=%s -> target=%s, family=%d colours, modified %d files (%d palette entries), tint-buttons=%s, duplicates removed=%d",
		r.Template, r.Outcome, r.Marker, r.Target, r.FamilySize,
		r.FilesModified, r.EntriesModified, tint, r.DuplicatesRemoved,
	)
}

// Engine runs recolour passes. It owns no state between runs beyond its
// configuration and logger.
type Engine struct {
	cfg Config
	log hclog.Logger
}

// NewEngine builds an Engine. A nil logger disables logging.
func NewEngine(cfg Config, log hclog.Logger) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{cfg: cfg, log: log}
}

// FindTemplate probes the configured template directory names under
// themeRoot and returns the first that exists, or "" if none do.
func (e *Engine) FindTemplate(themeRoot string) string {
	for _, name := range e.cfg.TemplateNames {
		dir := filepath.Join(themeRoot, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// Recolour regenerates workDir from the template under themeRoot and
// rewrites its palette colours toward opts.Target. The working tree is
// fully replaced, never merged. Structural shortfalls (no template, no
// resources, empty family) come back as Report outcomes with a nil error;
// an error is returned only for I/O failures, which abort the run and
// leave already-rewritten files in place.
func (e *Engine) Recolour(themeRoot, workDir string, opts Options) (Report, error) {
	report := Report{
		Marker:      e.cfg.Marker.Hex(),
		Target:      opts.Target.Hex(),
		TintButtons: opts.TintButtons,
	}

	templateDir := e.FindTemplate(themeRoot)
	if templateDir == "" {
		report.Outcome = OutcomeTemplateNotFound
		return report, nil
	}
	report.Template = filepath.Base(templateDir)

	if err := replaceTree(templateDir, workDir); err != nil {
		return report, err
	}

	files, err := listFiles(workDir, ".xpm")
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		report.Outcome = OutcomeNoResources
		return report, nil
	}

	family, err := e.cfg.BuildFamily(workDir, opts.TintButtons)
	if err != nil {
		return report, err
	}
	report.FamilySize = len(family)
	if len(family) == 0 {
		report.Outcome = OutcomeEmptyFamily
		e.log.Debug("no colours near marker", "marker", report.Marker, "threshold", e.cfg.Threshold)
		return report, nil
	}

	mapping := e.cfg.BuildMapping(family, opts.Target)
	e.log.Debug("built family mapping", "family", len(family), "target", report.Target)

	rewritten := make(map[string]bool)
	for _, path := range files {
		if !opts.TintButtons && e.cfg.Categorize(path) == CategoryControl {
			continue
		}
		n, err := rewriteFile(path, mapping)
		if err != nil {
			return report, err
		}
		if n > 0 {
			report.FilesModified++
			report.EntriesModified += n
			rewritten[stem(path)] = true
			e.log.Debug("recoloured", "file", filepath.Base(path), "entries", n)
		}
	}

	if opts.DropDuplicates {
		removed, err := dropShadowedPNGs(workDir, rewritten)
		if err != nil {
			return report, err
		}
		report.DuplicatesRemoved = removed
	}

	report.Outcome = OutcomeRecoloured
	return report, nil
}

// rewriteFile applies the mapping to one XPM, writing only when something
// changed.
func rewriteFile(path string, mapping map[string]string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	out, changed := xpm.Rewrite(string(data), mapping)
	if changed == 0 {
		return 0, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return changed, nil
}

// replaceTree removes dst and copies src in its place.
func replaceTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("removing %s: %w", dst, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// dropShadowedPNGs deletes every PNG under dir whose stem matches a
// just-rewritten XPM, forcing consumers onto the recoloured XPMs.
func dropShadowedPNGs(dir string, stems map[string]bool) (int, error) {
	if len(stems) == 0 {
		return 0, nil
	}

	pngs, err := listFiles(dir, ".png")
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, p := range pngs {
		if !stems[stem(p)] {
			continue
		}
		if err := os.Remove(p); err != nil {
			return removed, fmt.Errorf("removing duplicate %s: %w", p, err)
		}
		removed++
	}
	return removed, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

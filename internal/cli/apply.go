package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/aeroglass/aerotint/internal/backup"
	"github.com/aeroglass/aerotint/internal/colour"
	"github.com/aeroglass/aerotint/internal/csspatch"
	"github.com/aeroglass/aerotint/internal/recolour"
	"github.com/aeroglass/aerotint/internal/session"
	"github.com/aeroglass/aerotint/internal/settings"
	"github.com/aeroglass/aerotint/internal/xfconf"
)

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply an accent colour to the stylesheet and window decorations",
		Long: `Apply computes the displayed colour and opacity from the base colour,
intensity and transparency, patches the stylesheet, syncs panel and window
manager opacity, regenerates the xfwm4 decorations from the template, and
restarts the affected desktop processes.

Saved settings provide the defaults; flags given on the command line win.

Examples:
  # Apply the Twilight preset
  aerotint apply --color twilight

  # A custom colour, less intense, no transparency
  aerotint apply --color '#8bc483' --intensity 40 --transparency=false

  # Recolour the window buttons too and prefer recoloured XPMs
  aerotint apply --color ruby --tint-buttons --drop-duplicates

  # See what would change without touching anything
  aerotint apply --color sky --dry-run`,
		RunE: runApply,
	}

	cmd.Flags().StringP("color", "c", "", "base colour: preset name or #RRGGBB (default: saved setting)")
	cmd.Flags().Int("intensity", -1, "colour intensity, 0-100 (default: saved setting)")
	cmd.Flags().Bool("transparency", true, "enable transparency")
	cmd.Flags().Bool("tint-buttons", true, "recolour window button glyphs too")
	cmd.Flags().Bool("drop-duplicates", false, "remove PNG duplicates so recoloured XPMs win")
	cmd.Flags().Bool("backup", true, "snapshot the previous generated xfwm4 dir before replacing it")
	cmd.Flags().Bool("sync-whisker", true, "sync whisker menu background opacity")
	cmd.Flags().Bool("sync-frame-opacity", true, "sync xfwm4 frame opacity")
	cmd.Flags().Bool("restart", true, "restart xfwm4 and xfce4-panel after applying")
	cmd.Flags().Bool("force-reload", true, "re-set the xfwm4 theme to force a reload")
	cmd.Flags().Bool("dry-run", false, "report what would change without mutating anything")
	cmd.Flags().Bool("save", false, "persist the resolved options as the new defaults")
	return cmd
}

// applyOptions are the fully resolved knobs for one apply run.
type applyOptions struct {
	base         colour.RGB
	name         string
	transparency bool
	intensity    int

	tintButtons    bool
	dropDuplicates bool
	backup         bool
	syncWhisker    bool
	syncFrame      bool
	restart        bool
	forceReload    bool
	dryRun         bool
	save           bool
}

// resolveApplyOptions merges saved settings with explicit flags; a flag the
// user set always wins over the settings file.
func resolveApplyOptions(cmd *cobra.Command, saved settings.Settings) (applyOptions, error) {
	opts := applyOptions{
		name:         saved.SelectedName,
		transparency: saved.EnableTransparency,
		intensity:    saved.Intensity,
		tintButtons:  saved.TintButtons,
		backup:       saved.BackupEachApply,
		syncWhisker:  saved.SyncWhisker,
		syncFrame:    saved.SyncFrameOpacity,
		restart:      saved.RestartWM || saved.RestartPanel,
		forceReload:  saved.ForceThemeReload,

		dropDuplicates: saved.DropDuplicates,
	}

	colourArg, _ := cmd.Flags().GetString("color")
	if colourArg == "" {
		colourArg = saved.BaseHex
	}
	base, name, err := ResolveColour(colourArg)
	if err != nil {
		return opts, err
	}
	opts.base = base
	if cmd.Flags().Changed("color") || opts.name == "" {
		opts.name = name
	}

	if cmd.Flags().Changed("intensity") {
		opts.intensity, _ = cmd.Flags().GetInt("intensity")
	}
	if opts.intensity < 0 || opts.intensity > 100 {
		return opts, fmt.Errorf("intensity %d out of range 0-100", opts.intensity)
	}

	boolFlag := func(name string, dst *bool) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetBool(name)
		}
	}
	boolFlag("transparency", &opts.transparency)
	boolFlag("tint-buttons", &opts.tintButtons)
	boolFlag("drop-duplicates", &opts.dropDuplicates)
	boolFlag("backup", &opts.backup)
	boolFlag("sync-whisker", &opts.syncWhisker)
	boolFlag("sync-frame-opacity", &opts.syncFrame)
	boolFlag("restart", &opts.restart)
	boolFlag("force-reload", &opts.forceReload)

	opts.dryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.save, _ = cmd.Flags().GetBool("save")
	return opts, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	root := themeRoot(cmd)

	settingsPath, err := settings.Path()
	if err != nil {
		return err
	}
	saved, err := settings.Load(settingsPath)
	if err != nil {
		log.Warn("settings unreadable, using defaults", "error", err)
	}

	opts, err := resolveApplyOptions(cmd, saved)
	if err != nil {
		return err
	}

	final, opacity := colour.Blend(opts.base, opts.transparency, opts.intensity)
	percent := 100
	if opts.transparency {
		percent = colour.OpacityPercent(opacity)
	}
	log.Info("resolved accent",
		"name", opts.name, "base", opts.base.Hex(),
		"final", final.Hex(), "opacity", fmt.Sprintf("%.2f", opacity))

	engine := recolour.NewEngine(recolour.DefaultConfig(), log)
	workDir := filepath.Join(root, "xfwm4")

	if opts.dryRun {
		return dryRun(cmd, engine, root, final, opts)
	}

	// Stylesheet first, so a patch failure stops the run before the
	// decoration tree is replaced. A missing stylesheet is only skipped.
	cssPath, err := csspatch.Locate(root)
	if err != nil {
		log.Warn("stylesheet not found, skipping CSS patch", "error", err)
	} else {
		if err := csspatch.Patch(cssPath, final.Hex(), opacity); err != nil {
			return err
		}
		log.Info("stylesheet patched", "file", cssPath, "panel_base", final.Hex(), "alpha", fmt.Sprintf("%.2f", opacity))
	}

	if opts.syncWhisker {
		syncWhisker(log, percent)
	}
	if opts.syncFrame {
		if err := xfconf.New().SetFrameOpacity(percent); err != nil {
			log.Warn("frame opacity sync failed", "error", err)
		} else {
			log.Info("frame opacity synced", "percent", percent)
		}
	}

	if opts.backup {
		if _, err := os.Stat(workDir); err == nil {
			archive, err := backup.Snapshot(workDir, filepath.Join(root, "xfwm4-backups"))
			if err != nil {
				return fmt.Errorf("backing up %s: %w", workDir, err)
			}
			log.Info("previous decorations archived", "archive", filepath.Base(archive))
		}
	}

	report, err := engine.Recolour(root, workDir, recolour.Options{
		Target:         final,
		TintButtons:    opts.tintButtons,
		DropDuplicates: opts.dropDuplicates,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.String())

	if opts.restart {
		restartDesktop(log, opts.forceReload)
	}

	if opts.save {
		saved.SelectedName = opts.name
		saved.BaseHex = opts.base.Hex()
		saved.EnableTransparency = opts.transparency
		saved.Intensity = opts.intensity
		saved.TintButtons = opts.tintButtons
		saved.DropDuplicates = opts.dropDuplicates
		saved.BackupEachApply = opts.backup
		saved.SyncWhisker = opts.syncWhisker
		saved.SyncFrameOpacity = opts.syncFrame
		saved.ForceThemeReload = opts.forceReload
		if err := settings.Save(settingsPath, saved); err != nil {
			return err
		}
		log.Info("settings saved", "file", settingsPath)
	}
	return nil
}

// dryRun reports the would-be outcome from the template without touching
// the working tree, the stylesheet, or the configuration store.
func dryRun(cmd *cobra.Command, engine *recolour.Engine, root string, target colour.RGB, opts applyOptions) error {
	out := cmd.OutOrStdout()

	templateDir := engine.FindTemplate(root)
	if templateDir == "" {
		fmt.Fprintln(out, "dry run: no template folder found")
		return nil
	}

	cfg := recolour.DefaultConfig()
	family, err := cfg.BuildFamily(templateDir, opts.tintButtons)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "dry run: template=%s, marker=%s, target=%s, family=%d colours\n",
		filepath.Base(templateDir), cfg.Marker.Hex(), target.Hex(), len(family))
	for _, fc := range family {
		src, err := colour.ParseHex(fc.Hex)
		if err != nil {
			continue
		}
		mapped := recolour.MapColour(src, cfg.Marker, target)
		fmt.Fprintf(out, "  %s -> %s (distance %.3f)\n", fc.Hex, mapped.Hex(), fc.Distance)
	}
	return nil
}

func syncWhisker(log hclog.Logger, percent int) {
	if ids, err := xfconf.New().SetWhiskerOpacity(percent); err != nil {
		log.Warn("whisker opacity sync failed", "error", err)
	} else if len(ids) > 0 {
		log.Info("whisker opacity synced", "plugins", ids, "percent", percent)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	if changed, err := xfconf.SetWhiskerRCOpacity(home, percent); err != nil {
		log.Warn("whisker rc sync failed", "error", err)
	} else if changed > 0 {
		log.Info("whisker rc files updated", "files", changed, "percent", percent)
	}
}

func restartDesktop(log hclog.Logger, forceReload bool) {
	mgr := session.New(log)
	if err := mgr.RestartWindowManager(); err != nil {
		log.Warn("xfwm4 restart failed", "error", err)
	} else {
		log.Info("xfwm4 restarted")
	}
	if forceReload {
		if theme, err := xfconf.New().ReloadWindowManagerTheme(); err != nil {
			log.Warn("theme reload failed", "error", err)
		} else {
			log.Info("xfwm4 theme re-set", "theme", theme)
		}
	}
	// Restarting a panel that is not running would start one; only poke
	// an existing instance.
	if up, err := session.Running("xfce4-panel"); err != nil || !up {
		log.Debug("panel not running, restart skipped", "error", err)
		return
	}
	if err := mgr.RestartPanel(); err != nil {
		log.Warn("panel restart failed", "error", err)
	} else {
		log.Info("xfce4-panel restarted")
	}
}

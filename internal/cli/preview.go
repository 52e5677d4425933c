package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aeroglass/aerotint/internal/colour"
	"github.com/aeroglass/aerotint/internal/recolour"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the resolved colour, opacity and marker family without applying",
		Long: `Preview resolves the accent colour exactly like apply, then prints the
displayed colour and opacity, and the marker family the template would
recolour, with the mapped replacement for each member.

Nothing is written; the template is only read.`,
		RunE: runPreview,
	}
	cmd.Flags().StringP("color", "c", "", "base colour: preset name or #RRGGBB (default: saved setting)")
	cmd.Flags().Int("intensity", 75, "colour intensity, 0-100")
	cmd.Flags().Bool("transparency", true, "enable transparency")
	cmd.Flags().Bool("tint-buttons", true, "include window button glyphs in the family scan")
	cmd.Flags().Bool("presets", false, "list the available presets and exit")
	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	coloured := term.IsTerminal(int(os.Stdout.Fd()))

	if list, _ := cmd.Flags().GetBool("presets"); list {
		for _, p := range Presets {
			c, err := colour.ParseHex(p.Hex)
			if err != nil {
				continue
			}
			fmt.Fprintf(out, "%s %-10s %s\n", swatch(c, coloured), p.Name, p.Hex)
		}
		return nil
	}

	colourArg, _ := cmd.Flags().GetString("color")
	if colourArg == "" {
		colourArg = Presets[0].Hex
	}
	base, name, err := ResolveColour(colourArg)
	if err != nil {
		return err
	}
	intensity, _ := cmd.Flags().GetInt("intensity")
	transparency, _ := cmd.Flags().GetBool("transparency")
	tintButtons, _ := cmd.Flags().GetBool("tint-buttons")

	final, opacity := colour.Blend(base, transparency, intensity)
	fmt.Fprintf(out, "%s %s: base=%s final=%s opacity=%.2f intensity=%d\n",
		swatch(final, coloured), name, base.Hex(), final.Hex(), opacity, intensity)

	root := themeRoot(cmd)
	engine := recolour.NewEngine(recolour.DefaultConfig(), newLogger(cmd))
	templateDir := engine.FindTemplate(root)
	if templateDir == "" {
		fmt.Fprintln(out, "no template folder found; decorations would be untouched")
		return nil
	}

	cfg := recolour.DefaultConfig()
	family, err := cfg.BuildFamily(templateDir, tintButtons)
	if err != nil {
		return err
	}
	if len(family) == 0 {
		fmt.Fprintf(out, "template %s: no colours near marker %s\n",
			filepath.Base(templateDir), cfg.Marker.Hex())
		return nil
	}

	fmt.Fprintf(out, "template %s: %d family colours near marker %s\n",
		filepath.Base(templateDir), len(family), cfg.Marker.Hex())
	for _, fc := range family {
		src, err := colour.ParseHex(fc.Hex)
		if err != nil {
			continue
		}
		mapped := recolour.MapColour(src, cfg.Marker, final)
		fmt.Fprintf(out, "  %s %s -> %s %s (distance %.3f)\n",
			swatch(src, coloured), fc.Hex, swatch(mapped, coloured), mapped.Hex(), fc.Distance)
	}
	return nil
}

// swatch renders a truecolor block for the colour when the output is a
// terminal, and nothing otherwise.
func swatch(c colour.RGB, coloured bool) string {
	if !coloured {
		return " "
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
}

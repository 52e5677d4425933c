// Package cli provides the command-line interface for aerotint.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/aeroglass/aerotint/internal/version"
)

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aerotint",
		Short: "Recolour an Aero-style XFCE theme around a target accent colour",
		Long: `Aerotint derives an accent colour from a preset or hex value and propagates
it into a themed desktop: the GTK stylesheet's panel colour and opacity, and
the xfwm4 window decorations.

Decorations are regenerated from a sentinel template: recolourable regions in
the template XPMs are painted in shades of a marker colour (#e2da9d by
default), and on apply every palette colour near the marker is substituted
with its analog around the target, preserving shading and highlights.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringP("theme-root", "r", ".", "theme root directory (holds the template and generated xfwm4 dir)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newRestoreCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}

// newLogger builds the command logger from the persistent verbosity flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	if quiet {
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "aerotint",
		Output: os.Stderr,
		Level:  level,
	})
}

// themeRoot resolves the theme root flag to an absolute-ish usable path.
func themeRoot(cmd *cobra.Command) string {
	root, _ := cmd.Flags().GetString("theme-root")
	if root == "" {
		root = "."
	}
	return root
}

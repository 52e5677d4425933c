// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aeroglass/aerotint/internal/cli"
)

// setupThemeRoot creates a theme root with a decoration template holding one
// marker-family XPM and returns its path.
func setupThemeRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	// Keep settings lookups away from the real user configuration.
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))

	templateDir := filepath.Join(root, "xfwm4-template")
	if err := os.MkdirAll(templateDir, 0o755); err != nil {
		t.Fatalf("Failed to create template dir: %v", err)
	}

	xpm := "/* XPM */\nstatic char * top_active_xpm[] = {\n" +
		"\"2 2 2 1\",\n" +
		"\"a \tc #e2da9d\",\n" +
		"\"b \tc #d8cf8a\",\n" +
		"\"ab\",\n\"ba\"};\n"
	if err := os.WriteFile(filepath.Join(templateDir, "top-active.xpm"), []byte(xpm), 0o644); err != nil {
		t.Fatalf("Failed to write template XPM: %v", err)
	}
	return root
}

// TestApplyDryRun drives the apply command end to end in dry-run mode, which
// must report the family mapping without creating the working tree.
func TestApplyDryRun(t *testing.T) {
	root := setupThemeRoot(t)

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)

	rootCmd.SetArgs([]string{"apply", "--color", "#396cb6", "--dry-run", "--quiet", "--theme-root", root})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := outBuf.String()
	if !strings.Contains(out, "dry run: template=xfwm4-template") {
		t.Errorf("Expected dry run header, got: %q", out)
	}
	if !strings.Contains(out, "family=2 colours") {
		t.Errorf("Expected two family colours, got: %q", out)
	}
	if !strings.Contains(out, "#e2da9d ->") || !strings.Contains(out, "#d8cf8a ->") {
		t.Errorf("Expected per-colour mappings, got: %q", out)
	}

	if _, err := os.Stat(filepath.Join(root, "xfwm4")); !os.IsNotExist(err) {
		t.Errorf("Dry run must not create the working tree, stat err = %v", err)
	}
}

// TestApplyDryRunNoTemplate checks the report when the theme root holds no
// template folder at all.
func TestApplyDryRunNoTemplate(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))

	var outBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&outBuf)

	rootCmd.SetArgs([]string{"apply", "--color", "sky", "--dry-run", "--quiet", "--theme-root", root})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(outBuf.String(), "dry run: no template folder found") {
		t.Errorf("Expected missing-template notice, got: %q", outBuf.String())
	}
}

// TestApplyIntensityOutOfRange checks that an out-of-range intensity is
// rejected before anything runs.
func TestApplyIntensityOutOfRange(t *testing.T) {
	root := setupThemeRoot(t)

	for _, intensity := range []int{-2, 101} {
		var outBuf bytes.Buffer
		rootCmd := cli.NewRootCmd()
		rootCmd.SetOut(&outBuf)
		rootCmd.SetErr(&outBuf)

		rootCmd.SetArgs([]string{
			"apply", "--color", "sky", "--dry-run", "--quiet",
			"--intensity", fmt.Sprintf("%d", intensity),
			"--theme-root", root,
		})
		err := rootCmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "out of range") {
			t.Errorf("intensity %d: expected range error, got %v", intensity, err)
		}
	}
}
